package table

import (
	"errors"

	"rowdb/pkg/cursor"
	"rowdb/pkg/row"
)

// TableCursor walks a table's rows in insertion order.
type TableCursor struct {
	table  *Table
	rownum int64
}

var _ cursor.Cursor = (*TableCursor)(nil)

// TableStart returns a cursor positioned just before the table's first row.
func (table *Table) TableStart() *TableCursor {
	return &TableCursor{table: table, rownum: -1}
}

// Next advances the cursor. Returns false once the cursor has moved past the
// last row.
func (c *TableCursor) Next() bool {
	c.rownum++
	return c.rownum < c.table.numRows
}

// GetRow decodes and returns the row at the position of the cursor.
func (c *TableCursor) GetRow() (row.Row, error) {
	if c.rownum < 0 || c.rownum >= c.table.numRows {
		return row.Row{}, errors.New("cursor is not positioned on a row")
	}
	slot, err := c.table.pager.RowSlot(c.rownum)
	if err != nil {
		return row.Row{}, err
	}
	return row.UnmarshalRow(slot), nil
}

// Close indicates that the cursor is done being used.
func (c *TableCursor) Close() {}
