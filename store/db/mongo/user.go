package mongo

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/placedex/placedex/store"
)

func (d *DB) users() *mongo.Collection {
	return d.db.Collection("users")
}

// userFilter matches the search term against name, username and email,
// combined with OR. An empty search matches everything.
func userFilter(q *store.Query) bson.M {
	if q.Search == "" {
		return bson.M{}
	}
	re := searchRegex(q.Search)
	return bson.M{"$or": bson.A{
		bson.M{"name": re},
		bson.M{"username": re},
		bson.M{"email": re},
	}}
}

func (d *DB) CreateUser(ctx context.Context, create *store.User) error {
	_, err := d.users().InsertOne(ctx, create)
	return errors.Wrap(err, "insert user")
}

func (d *DB) GetUser(ctx context.Context, id int64) (*store.User, error) {
	user := &store.User{}
	err := d.users().FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return user, nil
}

func (d *DB) ListUsers(ctx context.Context, q *store.Query) ([]*store.User, error) {
	cur, err := d.users().Find(ctx, userFilter(q), findOptions(q))
	if err != nil {
		return nil, errors.Wrap(err, "find users")
	}
	defer cur.Close(ctx)

	var users []*store.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "decode users")
	}
	return users, nil
}

func (d *DB) CountUsers(ctx context.Context, q *store.Query) (int64, error) {
	count, err := d.users().CountDocuments(ctx, userFilter(q))
	return count, errors.Wrap(err, "count users")
}

func (d *DB) DeleteUser(ctx context.Context, id int64) (int64, error) {
	res, err := d.users().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, errors.Wrap(err, "delete user")
	}
	return res.DeletedCount, nil
}

func (d *DB) ReplaceUsers(ctx context.Context, users []*store.User) error {
	docs := make([]interface{}, 0, len(users))
	for _, u := range users {
		docs = append(docs, u)
	}
	return replaceAll(ctx, d.users(), docs)
}
