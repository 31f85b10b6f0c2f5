package mongo

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placedex/placedex/store"
)

func (d *DB) comments() *mongo.Collection {
	return d.db.Collection("comments")
}

func commentFilter(q *store.CommentQuery) bson.M {
	filter := bson.M{}
	if q.PostID != nil {
		filter["postId"] = *q.PostID
	}
	if q.Search != "" {
		re := searchRegex(q.Search)
		filter["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"email": re},
			bson.M{"body": re},
		}
	}
	return filter
}

func (d *DB) ListComments(ctx context.Context, q *store.CommentQuery) ([]*store.Comment, error) {
	cur, err := d.comments().Find(ctx, commentFilter(q), findOptions(&q.Query))
	if err != nil {
		return nil, errors.Wrap(err, "find comments")
	}
	defer cur.Close(ctx)

	var comments []*store.Comment
	if err := cur.All(ctx, &comments); err != nil {
		return nil, errors.Wrap(err, "decode comments")
	}
	return comments, nil
}

func (d *DB) CountComments(ctx context.Context, q *store.CommentQuery) (int64, error) {
	count, err := d.comments().CountDocuments(ctx, commentFilter(q))
	return count, errors.Wrap(err, "count comments")
}

func (d *DB) DeleteCommentsByPosts(ctx context.Context, postIDs []int64) (int64, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}
	res, err := d.comments().DeleteMany(ctx, bson.M{"postId": bson.M{"$in": postIDs}})
	if err != nil {
		return 0, errors.Wrap(err, "delete comments of posts")
	}
	return res.DeletedCount, nil
}

func (d *DB) ReplaceComments(ctx context.Context, comments []*store.Comment) error {
	docs := make([]interface{}, 0, len(comments))
	for _, c := range comments {
		docs = append(docs, c)
	}
	return replaceAll(ctx, d.comments(), docs)
}
