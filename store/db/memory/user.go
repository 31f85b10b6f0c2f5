package memory

import (
	"context"

	"github.com/placedex/placedex/store"
)

func (d *DB) CreateUser(_ context.Context, create *store.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	u := *create
	d.users[u.ID] = &u
	return nil
}

func (d *DB) GetUser(_ context.Context, id int64) (*store.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

// findUsers filters and sorts under the read lock; pagination happens on
// the caller's copy.
func (d *DB) findUsers(q *store.Query) []*store.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]*store.User, 0, len(d.users))
	for _, u := range d.users {
		if matches(q.Search, u.Name, u.Username, u.Email) {
			copied := *u
			out = append(out, &copied)
		}
	}

	var less func(a, b *store.User) bool
	switch q.SortBy {
	case "name":
		less = func(a, b *store.User) bool { return a.Name < b.Name }
	case "username":
		less = func(a, b *store.User) bool { return a.Username < b.Username }
	case "email":
		less = func(a, b *store.User) bool { return a.Email < b.Email }
	default:
		less = func(a, b *store.User) bool { return a.ID < b.ID }
	}
	orderBy(out, less, func(u *store.User) int64 { return u.ID }, q.Descending())
	return out
}

func (d *DB) ListUsers(_ context.Context, q *store.Query) ([]*store.User, error) {
	return page(d.findUsers(q), q.Skip(), q.Limit), nil
}

func (d *DB) CountUsers(_ context.Context, q *store.Query) (int64, error) {
	return int64(len(d.findUsers(q))), nil
}

func (d *DB) DeleteUser(_ context.Context, id int64) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.users[id]; !ok {
		return 0, nil
	}
	delete(d.users, id)
	return 1, nil
}

func (d *DB) ReplaceUsers(_ context.Context, users []*store.User) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = make(map[int64]*store.User, len(users))
	for _, u := range users {
		copied := *u
		d.users[copied.ID] = &copied
	}
	return nil
}
