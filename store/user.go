package store

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/placedex/placedex/store/cache"
)

// User is a user record as ingested from the remote source.
type User struct {
	ID       int64  `json:"id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Username string `json:"username" bson:"username"`
	Email    string `json:"email" bson:"email"`
	Phone    string `json:"phone,omitempty" bson:"phone,omitempty"`
	Website  string `json:"website,omitempty" bson:"website,omitempty"`
}

// userSortFields is the allow-list for ListUsers. The order is also the
// order shown to clients in the rejection message.
var userSortFields = []string{"id", "name", "username", "email"}

// ListUsersRequest carries the raw parameters of a user collection read.
type ListUsersRequest struct {
	ListRequest
}

// Normalize produces the query descriptor or a ValidationError.
func (r *ListUsersRequest) Normalize() (*Query, error) {
	return r.normalize(userSortFields, "id")
}

// UserListResult is the response payload of a user collection read. The
// whole envelope is what gets cached, so a hit never re-derives totals.
type UserListResult struct {
	Page       int64   `json:"page"`
	Limit      int64   `json:"limit"`
	TotalUsers int64   `json:"totalUsers"`
	TotalPages int64   `json:"totalPages"`
	Users      []*User `json:"users"`
	Cached     bool    `json:"cached"`
}

// GetUser returns the user and whether it was served from cache.
func (s *Store) GetUser(ctx context.Context, id int64) (*User, bool, error) {
	key := cache.EntityKey(cache.NamespaceUsers, id)
	if raw, ok := s.userCache.Get(ctx, key); ok {
		user := &User{}
		if err := json.Unmarshal(raw, user); err == nil {
			return user, true, nil
		}
	}

	user, err := s.driver.GetUser(ctx, id)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to get user")
	}
	if user == nil {
		return nil, false, ErrNotFound
	}

	if raw, err := json.Marshal(user); err == nil {
		s.userCache.Set(ctx, key, raw)
	}
	return user, false, nil
}

// ListUsers serves a paginated, searchable, sortable user collection
// read through the cache.
func (s *Store) ListUsers(ctx context.Context, req *ListUsersRequest) (*UserListResult, error) {
	q, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	key := cache.ListKey(cache.NamespaceUsers, q.Page, q.Limit, q.Search, q.SortBy, q.Order)
	if raw, ok := s.userCache.Get(ctx, key); ok {
		result := &UserListResult{}
		if err := json.Unmarshal(raw, result); err == nil {
			result.Cached = true
			return result, nil
		}
	}

	users, err := s.driver.ListUsers(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	total, err := s.driver.CountUsers(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}
	if users == nil {
		users = []*User{}
	}

	result := &UserListResult{
		Page:       q.Page,
		Limit:      q.Limit,
		TotalUsers: total,
		TotalPages: totalPages(total, q.Limit),
		Users:      users,
	}
	if raw, err := json.Marshal(result); err == nil {
		s.userCache.Set(ctx, key, raw)
	}
	return result, nil
}

// CreateUser inserts a new user. Inserting an id that is already present
// fails with ErrAlreadyExists before touching the collection.
func (s *Store) CreateUser(ctx context.Context, create *User) (*User, error) {
	existing, err := s.driver.GetUser(ctx, create.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check for existing user")
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	if err := s.driver.CreateUser(ctx, create); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}
	s.userCache.InvalidatePrefix(ctx, cache.NamespaceUsers)
	return create, nil
}

// DeleteUser removes the user and cascades to their posts and those
// posts' comments, then invalidates every affected namespace.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	deleted, err := s.driver.DeleteUser(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	if deleted == 0 {
		return ErrNotFound
	}

	postIDs, err := s.driver.DeletePostsByUser(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to delete posts of user")
	}
	if len(postIDs) > 0 {
		if _, err := s.driver.DeleteCommentsByPosts(ctx, postIDs); err != nil {
			return errors.Wrap(err, "failed to delete comments of user posts")
		}
	}

	s.userCache.InvalidatePrefix(ctx, cache.NamespaceUsers)
	s.postCache.InvalidatePrefix(ctx, cache.NamespacePosts)
	s.commentCache.InvalidatePrefix(ctx, cache.NamespaceComments)
	return nil
}
