// internal/app/system/namecache/loader.go
package namecache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/graph-gophers/dataloader"
)

// FetchFunc looks up display names for ids in one round trip. ids it does
// not know may be left out of the result.
type FetchFunc func(ctx context.Context, ids []string) (map[string]string, error)

// Loader fills a Cache with names it does not have yet. Concurrent Warm
// calls landing within the batch window are combined into one fetch.
type Loader struct {
	cache  *Cache
	loader *dataloader.Loader
}

// NewLoader wires fetch to cache. The dataloader's own cache is disabled;
// cache is the only memory.
func NewLoader(cache *Cache, fetch FetchFunc) *Loader {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		results := make([]*dataloader.Result, len(keys))
		names, err := fetch(ctx, keys.Keys())
		if err != nil {
			for i := range results {
				results[i] = &dataloader.Result{Error: err}
			}
			return results
		}
		for i, k := range keys {
			results[i] = &dataloader.Result{Data: names[k.String()]}
		}
		return results
	}

	return &Loader{
		cache: cache,
		loader: dataloader.NewBatchedLoader(batchFn,
			dataloader.WithCache(&dataloader.NoCache{}),
			dataloader.WithWait(5*time.Millisecond),
		),
	}
}

// Cache returns the cache this loader fills.
func (l *Loader) Cache() *Cache { return l.cache }

// Warm fetches names for the ids not yet cached and records them. Ids the
// backend does not know stay uncached, so ResolveName keeps falling back
// for them. The first fetch error is returned; names fetched before it are
// still recorded.
func (l *Loader) Warm(ctx context.Context, ids []string) error {
	missing := l.cache.Missing(ids)
	if len(missing) == 0 {
		return nil
	}

	thunk := l.loader.LoadMany(ctx, dataloader.NewKeysFromStrings(missing))
	data, errs := thunk()

	var firstErr error
	entries := make([]Entry, 0, len(missing))
	for i, id := range missing {
		if i < len(errs) && errs[i] != nil {
			if firstErr == nil {
				firstErr = errs[i]
			}
			continue
		}
		if i >= len(data) {
			continue
		}
		if name, ok := data[i].(string); ok {
			entries = append(entries, Entry{ID: id, Name: name})
		}
	}
	l.cache.RecordNames(entries...)

	if firstErr != nil {
		if errors.Is(firstErr, context.Canceled) || errors.Is(firstErr, context.DeadlineExceeded) {
			return firstErr
		}
		return fmt.Errorf("warm names: %w", firstErr)
	}
	return nil
}
