package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsersRequestNormalize(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		req := &ListUsersRequest{}
		q, err := req.Normalize()
		require.NoError(t, err)
		assert.Equal(t, int64(1), q.Page)
		assert.Equal(t, int64(5), q.Limit)
		assert.Equal(t, "", q.Search)
		assert.Equal(t, "id", q.SortBy)
		assert.Equal(t, OrderAsc, q.Order)
		assert.Equal(t, int64(0), q.Skip())
	})

	t.Run("SkipArithmetic", func(t *testing.T) {
		req := &ListUsersRequest{ListRequest: ListRequest{Page: "4", Limit: "10"}}
		q, err := req.Normalize()
		require.NoError(t, err)
		assert.Equal(t, int64(30), q.Skip())
	})

	t.Run("SearchLowerCased", func(t *testing.T) {
		req := &ListUsersRequest{ListRequest: ListRequest{Search: "  ALICE "}}
		q, err := req.Normalize()
		require.NoError(t, err)
		assert.Equal(t, "alice", q.Search)
	})

	t.Run("DescToken", func(t *testing.T) {
		req := &ListUsersRequest{ListRequest: ListRequest{Order: "DESC"}}
		q, err := req.Normalize()
		require.NoError(t, err)
		assert.True(t, q.Descending())

		req = &ListUsersRequest{ListRequest: ListRequest{Order: "anything-else"}}
		q, err = req.Normalize()
		require.NoError(t, err)
		assert.False(t, q.Descending())
	})

	t.Run("InvalidPageOrLimit", func(t *testing.T) {
		for _, r := range []ListRequest{
			{Page: "0"},
			{Page: "-1"},
			{Page: "abc"},
			{Limit: "0"},
			{Limit: "x"},
		} {
			req := &ListUsersRequest{ListRequest: r}
			_, err := req.Normalize()
			require.Error(t, err)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, "Invalid page or limit value", validation.Message)
		}
	})

	t.Run("InvalidSortByNamesValidSet", func(t *testing.T) {
		req := &ListUsersRequest{ListRequest: ListRequest{SortBy: "foo"}}
		_, err := req.Normalize()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "Invalid sortBy field. Valid fields are: id, name, username, email", validation.Message)
	})
}

func TestListPostsRequestNormalize(t *testing.T) {
	t.Run("UserIDFilter", func(t *testing.T) {
		req := &ListPostsRequest{UserID: "3"}
		q, err := req.Normalize()
		require.NoError(t, err)
		require.NotNil(t, q.UserID)
		assert.Equal(t, int64(3), *q.UserID)
	})

	t.Run("UserIDOmitted", func(t *testing.T) {
		req := &ListPostsRequest{}
		q, err := req.Normalize()
		require.NoError(t, err)
		assert.Nil(t, q.UserID)
	})

	t.Run("UserIDInvalid", func(t *testing.T) {
		req := &ListPostsRequest{UserID: "nope"}
		_, err := req.Normalize()
		var validation *ValidationError
		require.ErrorAs(t, err, &validation)
		assert.Equal(t, "Invalid userId value", validation.Message)
	})
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total, limit, want int64
	}{
		{0, 5, 0},
		{1, 5, 1},
		{5, 5, 1},
		{6, 5, 2},
		{10, 3, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, totalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}
