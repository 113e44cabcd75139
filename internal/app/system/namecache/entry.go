// internal/app/system/namecache/entry.go
package namecache

import (
	"encoding/json"
	"strconv"
)

// EntryFrom flattens an id reference as the API sends it into an Entry.
// v may be a plain string id or an embedded object carrying "_id" (or
// "id") and optionally "name". inline is used when the object has no name
// of its own. Anything else yields an Entry with an empty ID, which
// RecordNames skips.
func EntryFrom(v any, inline string) Entry {
	switch t := v.(type) {
	case string:
		return Entry{ID: t, Name: inline}
	case map[string]any:
		e := Entry{ID: scalar(t["_id"]), Name: scalar(t["name"])}
		if e.ID == "" {
			e.ID = scalar(t["id"])
		}
		if e.Name == "" {
			e.Name = inline
		}
		return e
	case json.RawMessage:
		var decoded any
		if err := json.Unmarshal(t, &decoded); err != nil {
			return Entry{}
		}
		return EntryFrom(decoded, inline)
	}
	return Entry{}
}

func scalar(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}
