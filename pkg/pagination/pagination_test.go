package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/marcosovalle/shopfront-backend/pkg/errors"
)

func TestPaginateWindows(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	cases := []struct {
		page      int
		wantLen   int
		wantFirst int
	}{
		{page: 1, wantLen: 10, wantFirst: 0},
		{page: 2, wantLen: 10, wantFirst: 10},
		{page: 3, wantLen: 5, wantFirst: 20},
		{page: 4, wantLen: 0},
	}
	for _, tc := range cases {
		got, meta, err := Paginate(items, Request{Page: tc.page, PageSize: 10})
		require.NoError(t, err)
		assert.Len(t, got, tc.wantLen, "page %d", tc.page)
		assert.Equal(t, 25, meta.TotalItems)
		assert.Equal(t, 3, meta.TotalPages)
		if tc.wantLen > 0 {
			assert.Equal(t, tc.wantFirst, got[0], "page %d", tc.page)
		}
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	got, meta, err := Paginate([]string{}, Request{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, meta.TotalItems)
	assert.Equal(t, 0, meta.TotalPages)
}

func TestPaginateRejectsNonPositivePageSize(t *testing.T) {
	for _, size := range []int{0, -3} {
		_, _, err := Paginate([]int{1, 2, 3}, Request{Page: 1, PageSize: size})
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	}
}

func TestNormalizeDefaultsPage(t *testing.T) {
	req, err := Request{Page: 0, PageSize: 5}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, 1, req.Page)

	req, err = Request{Page: 1, PageSize: MaxPageSize + 50}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, MaxPageSize, req.PageSize)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 0, TotalPages(10, 0))
}
