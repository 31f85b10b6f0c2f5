// Package mongo implements the record store driver on a MongoDB
// database, one collection per record type.
package mongo

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/placedex/placedex/internal/profile"
	"github.com/placedex/placedex/store"
)

// DB holds the mongo client and the database the collections live in.
type DB struct {
	client  *mongo.Client
	db      *mongo.Database
	profile *profile.Profile
}

// NewDB connects to the database named by the profile and verifies the
// connection.
func NewDB(ctx context.Context, p *profile.Profile) (store.Driver, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(p.DSN))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to mongo at %s", p.DSN)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "failed to ping mongo")
	}

	return &DB{
		client:  client,
		db:      client.Database(p.Database),
		profile: p,
	}, nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, nil)
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// sortDoc maps the normalized sort field onto the stored field name and
// direction. Record ids are stored under _id.
func sortDoc(sortBy string, descending bool) bson.D {
	field := sortBy
	if field == "id" {
		field = "_id"
	}
	direction := 1
	if descending {
		direction = -1
	}
	return bson.D{{Key: field, Value: direction}}
}

// searchRegex builds the case-insensitive substring predicate for one
// field. The search term is quoted so it never acts as a pattern.
func searchRegex(search string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
}

func findOptions(q *store.Query) *options.FindOptions {
	return options.Find().
		SetSort(sortDoc(q.SortBy, q.Descending())).
		SetSkip(q.Skip()).
		SetLimit(q.Limit)
}

// replaceAll swaps the full contents of a collection in two steps. The
// record store contract only guarantees single-document atomicity, so a
// reader between the steps can observe a partial collection; /load is an
// administrative operation and accepts that.
func replaceAll(ctx context.Context, c *mongo.Collection, docs []interface{}) error {
	if _, err := c.DeleteMany(ctx, bson.M{}); err != nil {
		return errors.Wrapf(err, "failed to clear collection %s", c.Name())
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := c.InsertMany(ctx, docs); err != nil {
		return errors.Wrapf(err, "failed to fill collection %s", c.Name())
	}
	return nil
}
