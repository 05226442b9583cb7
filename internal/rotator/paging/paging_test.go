package paging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCursorTotalPages(t *testing.T) {
	type testCase struct {
		name          string
		totalRows     uint64
		pageSize      uint64
		expectedPages uint64
	}

	testCases := []testCase{
		{
			name:          "Empty set",
			totalRows:     0,
			pageSize:      100,
			expectedPages: 0,
		},
		{
			name:          "Single row",
			totalRows:     1,
			pageSize:      100,
			expectedPages: 1,
		},
		{
			name:          "One row less than page size",
			totalRows:     99,
			pageSize:      100,
			expectedPages: 1,
		},
		{
			name:          "Exactly one page",
			totalRows:     100,
			pageSize:      100,
			expectedPages: 1,
		},
		{
			name:          "One row more than page size",
			totalRows:     101,
			pageSize:      100,
			expectedPages: 2,
		},
		{
			name:          "Large multiple",
			totalRows:     1_000_000,
			pageSize:      1000,
			expectedPages: 1000,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cursor, err := NewCursor(tc.totalRows, tc.pageSize)
			require.NoError(t, err)
			require.Equal(t, tc.expectedPages, cursor.TotalPages())
		})
	}
}

func TestCursorPageAt(t *testing.T) {
	cursor, err := NewCursor(250, 100)
	require.NoError(t, err)

	require.Equal(t, uint64(3), cursor.TotalPages())

	page, err := cursor.PageAt(1)
	require.NoError(t, err)
	require.Equal(t, Page{Index: 1, Offset: 0, Limit: 100}, page)

	page, err = cursor.PageAt(2)
	require.NoError(t, err)
	require.Equal(t, Page{Index: 2, Offset: 100, Limit: 100}, page)

	// final partial page still covers the remainder
	page, err = cursor.PageAt(3)
	require.NoError(t, err)
	require.Equal(t, Page{Index: 3, Offset: 200, Limit: 50}, page)

	_, err = cursor.PageAt(0)
	require.Error(t, err)

	_, err = cursor.PageAt(4)
	require.Error(t, err)
}

func TestCursorResumeCoversAllRows(t *testing.T) {
	cursor, err := NewCursor(1050, 100)
	require.NoError(t, err)

	// starting iteration at an arbitrary page visits each remaining row exactly once
	covered := uint64(0)

	for index := uint64(4); index <= cursor.TotalPages(); index++ {
		page, err := cursor.PageAt(index)
		require.NoError(t, err)
		require.Equal(t, (index-1)*100, page.Offset)

		covered += page.Limit
	}

	require.Equal(t, uint64(1050-300), covered)
}

func TestCursorZeroPageSize(t *testing.T) {
	_, err := NewCursor(100, 0)
	require.Error(t, err)
}
