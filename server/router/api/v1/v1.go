// Package v1 provides the HTTP handlers of the public API.
package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/placedex/placedex/internal/profile"
	"github.com/placedex/placedex/plugin/placeholder"
	"github.com/placedex/placedex/store"
)

type APIV1Service struct {
	Profile *profile.Profile
	Store   *store.Store
	Source  *placeholder.Client
}

func NewAPIV1Service(profile *profile.Profile, store *store.Store, source *placeholder.Client) *APIV1Service {
	return &APIV1Service{
		Profile: profile,
		Store:   store,
		Source:  source,
	}
}

// RegisterRoutes registers the public API on the given Echo instance.
// The paths are the external contract; keep them stable.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", s.Healthz)
	e.GET("/load", s.LoadData)

	e.GET("/users", s.ListUsers)
	e.PUT("/users", s.CreateUser)
	e.GET("/users/:id", s.GetUser)
	e.DELETE("/users/:id", s.DeleteUser)
	e.GET("/users/:id/posts", s.ListUserPosts)

	e.GET("/posts", s.ListPosts)
	e.GET("/posts/:id", s.GetPost)

	e.GET("/comments", s.ListComments)
}

func (s *APIV1Service) Healthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// errorJSON writes the error envelope every failure path uses.
func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// storeError maps a store failure onto the HTTP contract. notFound is
// the client-facing message for ErrNotFound; internal is the generic
// message for everything unexpected.
func storeError(c echo.Context, err error, notFound, internal string) error {
	var validation *store.ValidationError
	switch {
	case errors.As(err, &validation):
		return errorJSON(c, http.StatusBadRequest, validation.Message)
	case errors.Is(err, store.ErrNotFound):
		return errorJSON(c, http.StatusNotFound, notFound)
	default:
		slog.Error("store operation failed", "path", c.Request().URL.Path, "error", err)
		return errorJSON(c, http.StatusInternalServerError, internal)
	}
}
