package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/placedex/placedex/store"
)

// GetUser handles GET /users/{id}.
func (s *APIV1Service) GetUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid userId")
	}

	user, cached, err := s.Store.GetUser(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "User not found", "Failed to get user")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"user":   user,
		"cached": cached,
	})
}

// ListUsers handles GET /users?page&limit&search&sortBy&order.
func (s *APIV1Service) ListUsers(c echo.Context) error {
	req := &store.ListUsersRequest{
		ListRequest: store.ListRequest{
			Page:   c.QueryParam("page"),
			Limit:  c.QueryParam("limit"),
			Search: c.QueryParam("search"),
			SortBy: c.QueryParam("sortBy"),
			Order:  c.QueryParam("order"),
		},
	}

	result, err := s.Store.ListUsers(c.Request().Context(), req)
	if err != nil {
		return storeError(c, err, "User not found", "Failed to list users")
	}
	return c.JSON(http.StatusOK, result)
}

// CreateUser handles PUT /users. The body must be a JSON user with a
// numeric id; a duplicate id is rejected before the insert.
func (s *APIV1Service) CreateUser(c echo.Context) error {
	user := &store.User{}
	if err := json.NewDecoder(c.Request().Body).Decode(user); err != nil || user.ID <= 0 {
		return errorJSON(c, http.StatusBadRequest, "Invalid user data")
	}

	created, err := s.Store.CreateUser(c.Request().Context(), user)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return errorJSON(c, http.StatusBadRequest, "User already exists.")
		}
		return storeError(c, err, "User not found", "Failed to create user")
	}

	c.Response().Header().Set("Location", fmt.Sprintf("/users/%d", created.ID))
	return c.JSON(http.StatusCreated, created)
}

// DeleteUser handles DELETE /users/{id}. Deleting a user also removes
// their posts and those posts' comments.
func (s *APIV1Service) DeleteUser(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid userId")
	}

	if err := s.Store.DeleteUser(c.Request().Context(), id); err != nil {
		return storeError(c, err, "User not found", "Failed to delete user")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// ListUserPosts handles GET /users/{id}/posts.
func (s *APIV1Service) ListUserPosts(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid userId")
	}

	result, err := s.Store.ListUserPosts(c.Request().Context(), id)
	if err != nil {
		return storeError(c, err, "User not found", "Failed to list posts of user")
	}
	return c.JSON(http.StatusOK, result)
}
