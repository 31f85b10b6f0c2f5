package store

import (
	"context"
)

// Driver is the record store contract. Implementations are document
// collections with find/insert/delete/count under a normalized query and
// a sort/skip/limit cursor; nothing here assumes guarantees beyond
// single-document atomicity. Get methods return (nil, nil) when the
// record is absent; the store maps that to ErrNotFound.
type Driver interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	// User collection.
	CreateUser(ctx context.Context, create *User) error
	GetUser(ctx context.Context, id int64) (*User, error)
	ListUsers(ctx context.Context, query *Query) ([]*User, error)
	CountUsers(ctx context.Context, query *Query) (int64, error)
	DeleteUser(ctx context.Context, id int64) (int64, error)
	ReplaceUsers(ctx context.Context, users []*User) error

	// Post collection.
	GetPost(ctx context.Context, id int64) (*Post, error)
	ListPosts(ctx context.Context, query *PostQuery) ([]*Post, error)
	CountPosts(ctx context.Context, query *PostQuery) (int64, error)
	ListPostsByUser(ctx context.Context, userID int64) ([]*Post, error)
	DeletePostsByUser(ctx context.Context, userID int64) ([]int64, error)
	ReplacePosts(ctx context.Context, posts []*Post) error

	// Comment collection.
	ListComments(ctx context.Context, query *CommentQuery) ([]*Comment, error)
	CountComments(ctx context.Context, query *CommentQuery) (int64, error)
	DeleteCommentsByPosts(ctx context.Context, postIDs []int64) (int64, error)
	ReplaceComments(ctx context.Context, comments []*Comment) error
}
