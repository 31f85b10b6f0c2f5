// Package db provides the record store driver factory.
package db

import (
	"context"

	"github.com/pkg/errors"

	"github.com/placedex/placedex/internal/profile"
	"github.com/placedex/placedex/store"
	"github.com/placedex/placedex/store/db/memory"
	"github.com/placedex/placedex/store/db/mongo"
)

// NewDriver creates a record store driver based on the profile.
// Mongo is the production driver; the memory driver backs demo mode and
// tests.
func NewDriver(ctx context.Context, p *profile.Profile) (store.Driver, error) {
	var driver store.Driver
	var err error

	switch p.Driver {
	case "mongo":
		driver, err = mongo.NewDB(ctx, p)
	case "memory":
		driver = memory.NewDB()
	default:
		return nil, errors.Errorf("unknown record store driver %q: only 'mongo' and 'memory' are supported", p.Driver)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to create record store driver")
	}
	return driver, nil
}
