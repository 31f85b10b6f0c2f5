package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/placedex/placedex/store/cache"
)

// Post is a post record as ingested from the remote source.
type Post struct {
	ID     int64  `json:"id" bson:"_id"`
	UserID int64  `json:"userId" bson:"userId"`
	Title  string `json:"title" bson:"title"`
	Body   string `json:"body" bson:"body"`
}

var postSortFields = []string{"id", "userId", "title"}

// ListPostsRequest carries the raw parameters of a post collection read.
// UserID, when present, restricts the result to one author.
type ListPostsRequest struct {
	ListRequest
	UserID string
}

// PostQuery is the normalized descriptor of a post collection read.
type PostQuery struct {
	Query
	UserID *int64
}

// Normalize produces the query descriptor or a ValidationError.
func (r *ListPostsRequest) Normalize() (*PostQuery, error) {
	q, err := r.normalize(postSortFields, "id")
	if err != nil {
		return nil, err
	}
	userID, err := parseOptionalID(r.UserID, "userId")
	if err != nil {
		return nil, err
	}
	return &PostQuery{Query: *q, UserID: userID}, nil
}

// PostListResult is the cached response payload of a post collection read.
type PostListResult struct {
	Page       int64   `json:"page"`
	Limit      int64   `json:"limit"`
	TotalPosts int64   `json:"totalPosts"`
	TotalPages int64   `json:"totalPages"`
	Posts      []*Post `json:"posts"`
	Cached     bool    `json:"cached"`
}

// UserPostsResult is the cached payload of a user-scoped post read.
type UserPostsResult struct {
	Posts  []*Post `json:"posts"`
	Cached bool    `json:"cached"`
}

// GetPost returns the post and whether it was served from cache.
func (s *Store) GetPost(ctx context.Context, id int64) (*Post, bool, error) {
	key := cache.EntityKey(cache.NamespacePosts, id)
	if raw, ok := s.postCache.Get(ctx, key); ok {
		post := &Post{}
		if err := json.Unmarshal(raw, post); err == nil {
			return post, true, nil
		}
	}

	post, err := s.driver.GetPost(ctx, id)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to get post")
	}
	if post == nil {
		return nil, false, ErrNotFound
	}

	if raw, err := json.Marshal(post); err == nil {
		s.postCache.Set(ctx, key, raw)
	}
	return post, false, nil
}

// ListPosts serves a paginated post collection read through the cache.
func (s *Store) ListPosts(ctx context.Context, req *ListPostsRequest) (*PostListResult, error) {
	q, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	userFilter := ""
	if q.UserID != nil {
		userFilter = fmt.Sprintf("%d", *q.UserID)
	}
	key := cache.ListKey(cache.NamespacePosts, q.Page, q.Limit, q.Search, q.SortBy, q.Order, "userId="+userFilter)
	if raw, ok := s.postCache.Get(ctx, key); ok {
		result := &PostListResult{}
		if err := json.Unmarshal(raw, result); err == nil {
			result.Cached = true
			return result, nil
		}
	}

	posts, err := s.driver.ListPosts(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}
	total, err := s.driver.CountPosts(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count posts")
	}
	if posts == nil {
		posts = []*Post{}
	}

	result := &PostListResult{
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPosts: total,
		TotalPages: totalPages(total, q.Limit),
		Posts:      posts,
	}
	if raw, err := json.Marshal(result); err == nil {
		s.postCache.Set(ctx, key, raw)
	}
	return result, nil
}

// ListUserPosts returns every post of one user, cache-checked under the
// posts namespace so any post write invalidates it too. The user must
// exist; a missing user is ErrNotFound.
func (s *Store) ListUserPosts(ctx context.Context, userID int64) (*UserPostsResult, error) {
	user, err := s.driver.GetUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	if user == nil {
		return nil, ErrNotFound
	}

	key := cache.RelationKey(cache.NamespacePosts, "user", userID)
	if raw, ok := s.postCache.Get(ctx, key); ok {
		result := &UserPostsResult{}
		if err := json.Unmarshal(raw, result); err == nil {
			result.Cached = true
			return result, nil
		}
	}

	posts, err := s.driver.ListPostsByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts of user")
	}
	if posts == nil {
		posts = []*Post{}
	}

	result := &UserPostsResult{Posts: posts}
	if raw, err := json.Marshal(result); err == nil {
		s.postCache.Set(ctx, key, raw)
	}
	return result, nil
}
