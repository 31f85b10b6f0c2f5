// Package server wires the HTTP transport around the store.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/placedex/placedex/internal/profile"
	"github.com/placedex/placedex/plugin/placeholder"
	"github.com/placedex/placedex/server/middleware"
	apiv1 "github.com/placedex/placedex/server/router/api/v1"
	"github.com/placedex/placedex/store"
)

type Server struct {
	e *echo.Echo

	Profile *profile.Profile
	Store   *store.Store
}

func NewServer(profile *profile.Profile, store *store.Store) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(middleware.RequestLogger())
	e.Use(middleware.RateLimit(middleware.NewRateLimiter()))

	source := placeholder.NewClient(profile.SourceURL)
	apiv1.NewAPIV1Service(profile, store, source).RegisterRoutes(e)

	return &Server{
		e:       e,
		Profile: profile,
		Store:   store,
	}
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	slog.Info("server listening", "addr", s.Profile.ListenAddr(), "mode", s.Profile.Mode)
	return s.e.Start(s.Profile.ListenAddr())
}

// Shutdown drains in-flight requests and closes the store.
func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.e.Shutdown(ctx); err != nil {
		slog.Error("failed to shut down server", "error", err)
	}
	if err := s.Store.Close(ctx); err != nil {
		slog.Error("failed to close store", "error", err)
	}
	slog.Info("server stopped")
}

// Echo exposes the underlying router, mainly for handler tests.
func (s *Server) Echo() *echo.Echo {
	return s.e
}
