package v1

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// LoadData handles GET /load: one full ingestion from the remote source
// into the record store. Every namespace is cache-cold afterwards.
func (s *APIV1Service) LoadData(c echo.Context) error {
	ctx := c.Request().Context()

	snapshot, err := s.Source.Fetch(ctx)
	if err != nil {
		slog.Error("ingestion fetch failed", "source", s.Profile.SourceURL, "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to load data")
	}

	if err := s.Store.ReplaceAll(ctx, snapshot.Users, snapshot.Posts, snapshot.Comments); err != nil {
		slog.Error("ingestion store failed", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to load data")
	}

	slog.Info("ingestion complete",
		slog.Int("users", len(snapshot.Users)),
		slog.Int("posts", len(snapshot.Posts)),
		slog.Int("comments", len(snapshot.Comments)),
	)
	return c.NoContent(http.StatusOK)
}
