package cursor

import (
	"rowdb/pkg/row"
)

// Interface for a cursor that traverses a table.
type Cursor interface {
	Next() bool               //Moves the cursor to the next row in the table
	GetRow() (row.Row, error) //Returns the row at the position of the cursor
	Close()                   //Called to indicate that the cursor is done being used
}
