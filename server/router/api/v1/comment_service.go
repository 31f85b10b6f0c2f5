package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/placedex/placedex/store"
)

// ListComments handles GET /comments?page&limit&search&sortBy&order&postId.
func (s *APIV1Service) ListComments(c echo.Context) error {
	req := &store.ListCommentsRequest{
		ListRequest: store.ListRequest{
			Page:   c.QueryParam("page"),
			Limit:  c.QueryParam("limit"),
			Search: c.QueryParam("search"),
			SortBy: c.QueryParam("sortBy"),
			Order:  c.QueryParam("order"),
		},
		PostID: c.QueryParam("postId"),
	}

	result, err := s.Store.ListComments(c.Request().Context(), req)
	if err != nil {
		return storeError(c, err, "Comment not found", "Failed to list comments")
	}
	return c.JSON(http.StatusOK, result)
}
