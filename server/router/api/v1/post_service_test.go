package v1_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/placedex/placedex/server"
	"github.com/placedex/placedex/store"
)

func seedPosts(t *testing.T, srv *server.Server) {
	t.Helper()
	users := []*store.User{
		{ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "leanne@april.biz"},
		{ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "ervin@melissa.tv"},
	}
	posts := []*store.Post{
		{ID: 11, UserID: 1, Title: "qui est esse", Body: "est rerum"},
		{ID: 12, UserID: 1, Title: "sunt aut facere", Body: "quia et"},
		{ID: 13, UserID: 2, Title: "ea molestias", Body: "et iusto"},
	}
	comments := []*store.Comment{
		{ID: 101, PostID: 11, Name: "id labore", Email: "Eliseo@gardner.biz", Body: "laudantium enim"},
		{ID: 102, PostID: 13, Name: "quo vero", Email: "Jayne_Kuhic@sydney.com", Body: "est natus"},
	}
	require.NoError(t, srv.Store.ReplaceAll(context.Background(), users, posts, comments))
}

func TestGetPost(t *testing.T) {
	e, srv := newTestAPI(t)
	seedPosts(t, srv)

	rec := doRequest(e, http.MethodGet, "/posts/11", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decodeJSON(t, rec)
	assert.Equal(t, false, first["cached"])

	rec = doRequest(e, http.MethodGet, "/posts/11", nil)
	second := decodeJSON(t, rec)
	assert.Equal(t, true, second["cached"])
	assert.Equal(t, first["post"], second["post"])

	rec = doRequest(e, http.MethodGet, "/posts/999", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Post not found", decodeJSON(t, rec)["error"])

	rec = doRequest(e, http.MethodGet, "/posts/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid postId", decodeJSON(t, rec)["error"])
}

func TestListPosts(t *testing.T) {
	e, srv := newTestAPI(t)
	seedPosts(t, srv)

	rec := doRequest(e, http.MethodGet, "/posts?userId=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, float64(2), body["totalPosts"])

	rec = doRequest(e, http.MethodGet, "/posts?search=MOLESTIAS", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeJSON(t, rec)["totalPosts"])

	rec = doRequest(e, http.MethodGet, "/posts?sortBy=email", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeJSON(t, rec)["error"], "id, userId, title")
}

func TestListUserPostsEndpoint(t *testing.T) {
	e, srv := newTestAPI(t)
	seedPosts(t, srv)

	rec := doRequest(e, http.MethodGet, "/users/1/posts", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, false, body["cached"])
	assert.Len(t, body["posts"], 2)

	rec = doRequest(e, http.MethodGet, "/users/1/posts", nil)
	assert.Equal(t, true, decodeJSON(t, rec)["cached"])

	rec = doRequest(e, http.MethodGet, "/users/404/posts", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", decodeJSON(t, rec)["error"])
}

func TestListComments(t *testing.T) {
	e, srv := newTestAPI(t)
	seedPosts(t, srv)

	rec := doRequest(e, http.MethodGet, "/comments", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON(t, rec)
	assert.Equal(t, float64(2), body["totalComments"])
	assert.Equal(t, false, body["cached"])

	rec = doRequest(e, http.MethodGet, "/comments?postId=11", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decodeJSON(t, rec)["totalComments"])

	rec = doRequest(e, http.MethodGet, "/comments?postId=nope", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid postId value", decodeJSON(t, rec)["error"])
}
