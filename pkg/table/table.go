// Package table implements the single fixed-schema table of the database:
// a monotonically growing collection of rows stored in arena pages.
package table

import (
	"errors"

	"rowdb/pkg/pager"
	"rowdb/pkg/row"
)

// Error returned by Insert once the table holds pager.MaxRows rows.
var ErrTableFull = errors.New("table full")

// Table tracks how many rows exist and orchestrates the pager for insert and
// scan. The table exclusively owns its pages; rows are never deleted or
// updated, so numRows only grows.
type Table struct {
	pager   *pager.Pager
	numRows int64
}

// New constructs an empty table backed by a fresh arena.
func New() *Table {
	return &Table{pager: pager.New()}
}

// GetPager returns the pager backing this table.
func (table *Table) GetPager() *pager.Pager {
	return table.pager
}

// GetNumRows returns the number of rows inserted so far.
func (table *Table) GetNumRows() int64 {
	return table.numRows
}

// Insert appends a row to the table. Returns ErrTableFull at capacity;
// a failed insert performs no mutation.
func (table *Table) Insert(r row.Row) error {
	if table.numRows >= pager.MaxRows {
		return ErrTableFull
	}
	slot, err := table.pager.RowSlot(table.numRows)
	if err != nil {
		return err
	}
	copy(slot, r.Marshal())
	table.numRows++
	return nil
}

// Select returns every row in insertion order. Calling it twice without an
// intervening insert yields identical results.
func (table *Table) Select() ([]row.Row, error) {
	rows := make([]row.Row, 0, table.numRows)
	c := table.TableStart()
	defer c.Close()
	for c.Next() {
		r, err := c.GetRow()
		if err != nil {
			return nil, err
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// Close tears the table down, releasing all of its pages at once.
func (table *Table) Close() {
	table.pager.Close()
	table.numRows = 0
}
