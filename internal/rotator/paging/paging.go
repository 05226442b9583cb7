package paging

import (
	"github.com/pkg/errors"
)

// Page describes one fixed-size window of the ordered ticket set.
// Index is 1-based; Offset is the 0-based ordinal of the first row;
// Limit is the number of rows in this window, which is smaller than
// the page size only for the final page.
type Page struct {
	Index  uint64
	Offset uint64
	Limit  uint64
}

// Cursor maps a total row count and a fixed page size onto a deterministic,
// monotonically increasing sequence of pages. Iteration may start at any
// page index, which is what makes cheap resumption possible.
type Cursor struct {
	totalRows uint64
	pageSize  uint64
}

// NewCursor function creates Cursor object.
func NewCursor(totalRows, pageSize uint64) (*Cursor, error) {
	if pageSize == 0 {
		return nil, errors.New("page size should be greater than 0")
	}

	return &Cursor{
		totalRows: totalRows,
		pageSize:  pageSize,
	}, nil
}

// TotalPages returns the number of pages needed to cover all rows.
// A zero-row set yields zero pages.
func (c *Cursor) TotalPages() uint64 {
	return (c.totalRows + c.pageSize - 1) / c.pageSize
}

func (c *Cursor) TotalRows() uint64 {
	return c.totalRows
}

func (c *Cursor) PageSize() uint64 {
	return c.pageSize
}

// PageAt returns the page with the given 1-based index, clipped to the
// total row count for the final page.
func (c *Cursor) PageAt(index uint64) (Page, error) {
	if index < 1 || index > c.TotalPages() {
		return Page{}, errors.Errorf("page index %d out of range [1, %d]", index, c.TotalPages())
	}

	offset := (index - 1) * c.pageSize
	limit := min(c.pageSize, c.totalRows-offset)

	return Page{
		Index:  index,
		Offset: offset,
		Limit:  limit,
	}, nil
}
