package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/placedex/placedex/store/cache"
)

// Comment is a comment record as ingested from the remote source.
type Comment struct {
	ID     int64  `json:"id" bson:"_id"`
	PostID int64  `json:"postId" bson:"postId"`
	Name   string `json:"name" bson:"name"`
	Email  string `json:"email" bson:"email"`
	Body   string `json:"body" bson:"body"`
}

var commentSortFields = []string{"id", "postId", "name", "email"}

// ListCommentsRequest carries the raw parameters of a comment collection
// read. PostID, when present, restricts the result to one post.
type ListCommentsRequest struct {
	ListRequest
	PostID string
}

// CommentQuery is the normalized descriptor of a comment collection read.
type CommentQuery struct {
	Query
	PostID *int64
}

// Normalize produces the query descriptor or a ValidationError.
func (r *ListCommentsRequest) Normalize() (*CommentQuery, error) {
	q, err := r.normalize(commentSortFields, "id")
	if err != nil {
		return nil, err
	}
	postID, err := parseOptionalID(r.PostID, "postId")
	if err != nil {
		return nil, err
	}
	return &CommentQuery{Query: *q, PostID: postID}, nil
}

// CommentListResult is the cached response payload of a comment
// collection read.
type CommentListResult struct {
	Page          int64      `json:"page"`
	Limit         int64      `json:"limit"`
	TotalComments int64      `json:"totalComments"`
	TotalPages    int64      `json:"totalPages"`
	Comments      []*Comment `json:"comments"`
	Cached        bool       `json:"cached"`
}

// ListComments serves a paginated comment collection read through the
// cache.
func (s *Store) ListComments(ctx context.Context, req *ListCommentsRequest) (*CommentListResult, error) {
	q, err := req.Normalize()
	if err != nil {
		return nil, err
	}

	postFilter := ""
	if q.PostID != nil {
		postFilter = fmt.Sprintf("%d", *q.PostID)
	}
	key := cache.ListKey(cache.NamespaceComments, q.Page, q.Limit, q.Search, q.SortBy, q.Order, "postId="+postFilter)
	if raw, ok := s.commentCache.Get(ctx, key); ok {
		result := &CommentListResult{}
		if err := json.Unmarshal(raw, result); err == nil {
			result.Cached = true
			return result, nil
		}
	}

	comments, err := s.driver.ListComments(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}
	total, err := s.driver.CountComments(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count comments")
	}
	if comments == nil {
		comments = []*Comment{}
	}

	result := &CommentListResult{
		Page:          q.Page,
		Limit:         q.Limit,
		TotalComments: total,
		TotalPages:    totalPages(total, q.Limit),
		Comments:      comments,
	}
	if raw, err := json.Marshal(result); err == nil {
		s.commentCache.Set(ctx, key, raw)
	}
	return result, nil
}
