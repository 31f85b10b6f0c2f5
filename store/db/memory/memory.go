// Package memory implements the record store driver on in-process maps.
// It backs demo mode and tests; the query semantics mirror the mongo
// driver (case-insensitive substring search, sort/skip/limit cursor).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/placedex/placedex/store"
)

// DB is the in-process record store.
type DB struct {
	mu       sync.RWMutex
	users    map[int64]*store.User
	posts    map[int64]*store.Post
	comments map[int64]*store.Comment
}

// NewDB creates an empty in-process record store.
func NewDB() *DB {
	return &DB{
		users:    make(map[int64]*store.User),
		posts:    make(map[int64]*store.Post),
		comments: make(map[int64]*store.Comment),
	}
}

func (*DB) Ping(context.Context) error {
	return nil
}

func (*DB) Close(context.Context) error {
	return nil
}

// matches reports whether a lower-cased search term occurs in any of the
// candidate fields. An empty term matches everything.
func matches(search string, fields ...string) bool {
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// page applies the skip/limit cursor to an already sorted slice.
func page[T any](items []T, skip, limit int64) []T {
	if skip >= int64(len(items)) {
		return nil
	}
	items = items[skip:]
	if limit < int64(len(items)) {
		items = items[:limit]
	}
	return items
}

// orderBy sorts items by the given less function, inverted when
// descending, with the id as tie-breaker so ordering is stable across
// calls.
func orderBy[T any](items []T, less func(a, b T) bool, id func(T) int64, descending bool) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if less(a, b) != less(b, a) {
			if descending {
				return less(b, a)
			}
			return less(a, b)
		}
		return id(a) < id(b)
	})
}
