// internal/app/system/listing/names.go
package listing

import (
	"github.com/trueportme/adminconsole/internal/app/system/filterset"
	"github.com/trueportme/adminconsole/internal/app/system/namecache"
)

// ResolveRef flattens the reference at rec[idField], which the API sends
// as a plain id or an embedded object, into an id at idField and a display
// name at nameField. Names learned along the way are recorded in names. A
// reference whose name stays unknown gets no nameField, so filters on it
// never match.
func ResolveRef(names *namecache.Cache, rec filterset.Record, idField, nameField string) {
	e := namecache.EntryFrom(rec[idField], filterset.Str(rec, nameField))
	if e.ID == "" {
		return
	}
	names.RecordNames(e)
	rec[idField] = e.ID
	if name := names.ResolveName(e.ID, e.Name); name != e.ID {
		rec[nameField] = name
	} else {
		delete(rec, nameField)
	}
}

// ResolveRefs resolves the reference at idField in every record. Names
// embedded anywhere in recs are recorded before any record is resolved, so
// a bare id resolves even when its name only arrives in a later record.
func ResolveRefs(names *namecache.Cache, recs []filterset.Record, idField, nameField string) {
	entries := make([]namecache.Entry, 0, len(recs))
	for _, rec := range recs {
		entries = append(entries, namecache.EntryFrom(rec[idField], filterset.Str(rec, nameField)))
	}
	names.RecordNames(entries...)
	for _, rec := range recs {
		ResolveRef(names, rec, idField, nameField)
	}
}
