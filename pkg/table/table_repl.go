package table

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"rowdb/pkg/cursor"
	"rowdb/pkg/repl"
	"rowdb/pkg/row"
)

// Creates a Table REPL for the given table. Every command runs under one
// exclusive mutex, so the same REPL may be served from several connections;
// the storage layer itself stays single-threaded.
func TableRepl(t *Table) *repl.REPL {
	var mtx sync.Mutex
	lock := func(action repl.ReplCommand) repl.ReplCommand {
		return func(payload string, replConfig *repl.REPLConfig) (string, error) {
			mtx.Lock()
			defer mtx.Unlock()
			return action(payload, replConfig)
		}
	}

	r := repl.NewRepl()
	r.AddCommand("insert", lock(func(payload string, replConfig *repl.REPLConfig) (string, error) {
		return "", HandleInsert(t, payload)
	}), "Insert a row. usage: insert <id> <username> <email>")

	r.AddCommand("select", lock(func(payload string, replConfig *repl.REPLConfig) (string, error) {
		return HandleSelect(t, payload)
	}), "Print every row in insertion order. usage: select")

	r.AddCommand("count", lock(func(payload string, replConfig *repl.REPLConfig) (string, error) {
		return HandleCount(t, payload)
	}), "Print the number of rows. usage: count")

	r.AddCommand(".exit", func(payload string, replConfig *repl.REPLConfig) (string, error) {
		return "", repl.ErrExit
	}, "Leave the repl. usage: .exit")

	return r
}

// Handle insert.
func HandleInsert(t *Table, payload string) (err error) {
	fields := strings.Fields(payload)
	// Usage: insert <id> <username> <email>
	if len(fields) != 4 {
		return errors.New("usage: insert <id> <username> <email>")
	}
	id, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return fmt.Errorf("insert error: %v", err)
	}
	if err = t.Insert(row.New(uint32(id), fields[2], fields[3])); err != nil {
		return fmt.Errorf("insert error: %v", err)
	}
	return nil
}

// Handle select.
func HandleSelect(t *Table, payload string) (output string, err error) {
	fields := strings.Fields(payload)
	// Usage: select
	if len(fields) != 1 {
		return "", errors.New("usage: select")
	}
	w := new(strings.Builder)
	var c cursor.Cursor = t.TableStart()
	defer c.Close()
	for c.Next() {
		r, err := c.GetRow()
		if err != nil {
			return "", fmt.Errorf("select error: %v", err)
		}
		r.Print(w)
	}
	return w.String(), nil
}

// Handle count.
func HandleCount(t *Table, payload string) (output string, err error) {
	fields := strings.Fields(payload)
	// Usage: count
	if len(fields) != 1 {
		return "", errors.New("usage: count")
	}
	return fmt.Sprintf("%d\n", t.GetNumRows()), nil
}
