package v1

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/placedex/placedex/store"
)

// GetPost handles GET /posts/{id}.
func (s *APIV1Service) GetPost(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid postId")
	}

	post, cached, err := s.Store.GetPost(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "Post not found", "Failed to get post")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"post":   post,
		"cached": cached,
	})
}

// ListPosts handles GET /posts?page&limit&search&sortBy&order&userId.
func (s *APIV1Service) ListPosts(c echo.Context) error {
	req := &store.ListPostsRequest{
		ListRequest: store.ListRequest{
			Page:   c.QueryParam("page"),
			Limit:  c.QueryParam("limit"),
			Search: c.QueryParam("search"),
			SortBy: c.QueryParam("sortBy"),
			Order:  c.QueryParam("order"),
		},
		UserID: c.QueryParam("userId"),
	}

	result, err := s.Store.ListPosts(c.Request().Context(), req)
	if err != nil {
		return storeError(c, err, "Post not found", "Failed to list posts")
	}
	return c.JSON(http.StatusOK, result)
}
