package mongo

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/placedex/placedex/store"
)

func (d *DB) posts() *mongo.Collection {
	return d.db.Collection("posts")
}

func postFilter(q *store.PostQuery) bson.M {
	filter := bson.M{}
	if q.UserID != nil {
		filter["userId"] = *q.UserID
	}
	if q.Search != "" {
		re := searchRegex(q.Search)
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"body": re},
		}
	}
	return filter
}

func (d *DB) GetPost(ctx context.Context, id int64) (*store.Post, error) {
	post := &store.Post{}
	err := d.posts().FindOne(ctx, bson.M{"_id": id}).Decode(post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find post")
	}
	return post, nil
}

func (d *DB) ListPosts(ctx context.Context, q *store.PostQuery) ([]*store.Post, error) {
	cur, err := d.posts().Find(ctx, postFilter(q), findOptions(&q.Query))
	if err != nil {
		return nil, errors.Wrap(err, "find posts")
	}
	defer cur.Close(ctx)

	var posts []*store.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "decode posts")
	}
	return posts, nil
}

func (d *DB) CountPosts(ctx context.Context, q *store.PostQuery) (int64, error) {
	count, err := d.posts().CountDocuments(ctx, postFilter(q))
	return count, errors.Wrap(err, "count posts")
}

func (d *DB) ListPostsByUser(ctx context.Context, userID int64) ([]*store.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := d.posts().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find posts of user")
	}
	defer cur.Close(ctx)

	var posts []*store.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "decode posts of user")
	}
	return posts, nil
}

func (d *DB) DeletePostsByUser(ctx context.Context, userID int64) ([]int64, error) {
	// Collect the ids first so the caller can cascade to comments.
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cur, err := d.posts().Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find post ids of user")
	}
	defer cur.Close(ctx)

	var docs []struct {
		ID int64 `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode post ids of user")
	}
	ids := make([]int64, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	if _, err := d.posts().DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return nil, errors.Wrap(err, "delete posts of user")
	}
	return ids, nil
}

func (d *DB) ReplacePosts(ctx context.Context, posts []*store.Post) error {
	docs := make([]interface{}, 0, len(posts))
	for _, p := range posts {
		docs = append(docs, p)
	}
	return replaceAll(ctx, d.posts(), docs)
}
