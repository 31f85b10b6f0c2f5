package memory

import (
	"context"

	"github.com/placedex/placedex/store"
)

func (d *DB) findComments(q *store.CommentQuery) []*store.Comment {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*store.Comment, 0, len(d.comments))
	for _, c := range d.comments {
		if q.PostID != nil && c.PostID != *q.PostID {
			continue
		}
		if matches(q.Search, c.Name, c.Email, c.Body) {
			copied := *c
			out = append(out, &copied)
		}
	}

	var less func(a, b *store.Comment) bool
	switch q.SortBy {
	case "postId":
		less = func(a, b *store.Comment) bool { return a.PostID < b.PostID }
	case "name":
		less = func(a, b *store.Comment) bool { return a.Name < b.Name }
	case "email":
		less = func(a, b *store.Comment) bool { return a.Email < b.Email }
	default:
		less = func(a, b *store.Comment) bool { return a.ID < b.ID }
	}
	orderBy(out, less, func(c *store.Comment) int64 { return c.ID }, q.Descending())
	return out
}

func (d *DB) ListComments(_ context.Context, q *store.CommentQuery) ([]*store.Comment, error) {
	return page(d.findComments(q), q.Skip(), q.Limit), nil
}

func (d *DB) CountComments(_ context.Context, q *store.CommentQuery) (int64, error) {
	return int64(len(d.findComments(q))), nil
}

func (d *DB) DeleteCommentsByPosts(_ context.Context, postIDs []int64) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	members := make(map[int64]bool, len(postIDs))
	for _, id := range postIDs {
		members[id] = true
	}
	var deleted int64
	for id, c := range d.comments {
		if members[c.PostID] {
			delete(d.comments, id)
			deleted++
		}
	}
	return deleted, nil
}

func (d *DB) ReplaceComments(_ context.Context, comments []*store.Comment) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.comments = make(map[int64]*store.Comment, len(comments))
	for _, c := range comments {
		copied := *c
		d.comments[copied.ID] = &copied
	}
	return nil
}
