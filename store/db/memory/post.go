package memory

import (
	"context"

	"github.com/placedex/placedex/store"
)

func (d *DB) GetPost(_ context.Context, id int64) (*store.Post, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	p, ok := d.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (d *DB) findPosts(q *store.PostQuery) []*store.Post {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*store.Post, 0, len(d.posts))
	for _, p := range d.posts {
		if q.UserID != nil && p.UserID != *q.UserID {
			continue
		}
		if matches(q.Search, p.Title, p.Body) {
			copied := *p
			out = append(out, &copied)
		}
	}

	var less func(a, b *store.Post) bool
	switch q.SortBy {
	case "userId":
		less = func(a, b *store.Post) bool { return a.UserID < b.UserID }
	case "title":
		less = func(a, b *store.Post) bool { return a.Title < b.Title }
	default:
		less = func(a, b *store.Post) bool { return a.ID < b.ID }
	}
	orderBy(out, less, func(p *store.Post) int64 { return p.ID }, q.Descending())
	return out
}

func (d *DB) ListPosts(_ context.Context, q *store.PostQuery) ([]*store.Post, error) {
	return page(d.findPosts(q), q.Skip(), q.Limit), nil
}

func (d *DB) CountPosts(_ context.Context, q *store.PostQuery) (int64, error) {
	return int64(len(d.findPosts(q))), nil
}

func (d *DB) ListPostsByUser(_ context.Context, userID int64) ([]*store.Post, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []*store.Post
	for _, p := range d.posts {
		if p.UserID == userID {
			copied := *p
			out = append(out, &copied)
		}
	}
	orderBy(out, func(a, b *store.Post) bool { return a.ID < b.ID }, func(p *store.Post) int64 { return p.ID }, false)
	return out, nil
}

func (d *DB) DeletePostsByUser(_ context.Context, userID int64) ([]int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var ids []int64
	for id, p := range d.posts {
		if p.UserID == userID {
			ids = append(ids, id)
			delete(d.posts, id)
		}
	}
	return ids, nil
}

func (d *DB) ReplacePosts(_ context.Context, posts []*store.Post) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.posts = make(map[int64]*store.Post, len(posts))
	for _, p := range posts {
		copied := *p
		d.posts[copied.ID] = &copied
	}
	return nil
}
