// Package row implements the fixed-width row format stored in table pages.
package row

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

// Field widths of the fixed row schema, in bytes.
const (
	IdSize       = 4
	UsernameSize = 32
	EmailSize    = 255

	// RowSize is the serialized size of one row.
	RowSize = IdSize + UsernameSize + EmailSize
)

// Byte offsets of each field within a serialized row.
const (
	idOffset       = 0
	usernameOffset = idOffset + IdSize
	emailOffset    = usernameOffset + UsernameSize
)

// Row is one fixed-schema record: a 32-bit id and two zero-padded text
// columns. The id is a natural identifier only; uniqueness is not enforced
// by this layer.
type Row struct {
	Id       uint32
	Username [UsernameSize]byte
	Email    [EmailSize]byte
}

// New constructs a Row from raw text fields. Oversized fields are silently
// truncated to their column width; undersized fields are zero-padded.
func New(id uint32, username string, email string) Row {
	row := Row{Id: id}
	copy(row.Username[:], username)
	copy(row.Email[:], email)
	return row
}

// Marshal serializes a row into a RowSize byte array, with the id in
// little-endian order.
func (row Row) Marshal() []byte {
	newdata := make([]byte, RowSize)
	binary.LittleEndian.PutUint32(newdata[idOffset:], row.Id)
	copy(newdata[usernameOffset:emailOffset], row.Username[:])
	copy(newdata[emailOffset:], row.Email[:])
	return newdata
}

// UnmarshalRow deserializes a byte array into a row.
// The data must hold at least RowSize bytes; slots handed out by the pager
// satisfy this by construction.
func UnmarshalRow(data []byte) Row {
	var row Row
	row.Id = binary.LittleEndian.Uint32(data[idOffset:])
	copy(row.Username[:], data[usernameOffset:emailOffset])
	copy(row.Email[:], data[emailOffset:emailOffset+EmailSize])
	return row
}

// GetUsername returns the username column with trailing padding trimmed.
// Invalid byte sequences are replaced with U+FFFD rather than erroring.
func (row Row) GetUsername() string {
	return fieldString(row.Username[:])
}

// GetEmail returns the email column with trailing padding trimmed.
// Invalid byte sequences are replaced with U+FFFD rather than erroring.
func (row Row) GetEmail() string {
	return fieldString(row.Email[:])
}

func fieldString(field []byte) string {
	trimmed := bytes.TrimRight(field, "\x00")
	return strings.ToValidUTF8(string(trimmed), "�")
}

// Print writes the row to the specified writer in the following format:
// (<id>, <username>, <email>)
func (row Row) Print(w io.Writer) {
	fmt.Fprintf(w, "(%d, %s, %s)\n", row.Id, row.GetUsername(), row.GetEmail())
}
