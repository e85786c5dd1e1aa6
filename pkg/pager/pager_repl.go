package pager

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"rowdb/pkg/repl"
)

// Creates a Pager REPL for inspecting the arena backing a table.
func PagerRepl(p *Pager) *repl.REPL {
	r := repl.NewRepl()

	r.AddCommand("pager_print", func(payload string, replConfig *repl.REPLConfig) (string, error) {
		return HandlePagerPrint(p, payload)
	}, "Print out the state of the pager. usage: pager_print")

	r.AddCommand("pager_alloc", func(payload string, replConfig *repl.REPLConfig) (string, error) {
		return "", HandlePagerAlloc(p, payload)
	}, "Allocate a page. usage: pager_alloc <page_num>")

	r.AddCommand("pager_read", func(payload string, replConfig *repl.REPLConfig) (string, error) {
		return HandlePagerRead(p, payload)
	}, "Read data from an allocated page. usage: pager_read <page_num>")

	r.AddCommand("pager_checksum", func(payload string, replConfig *repl.REPLConfig) (string, error) {
		return HandlePagerChecksum(p, payload)
	}, "Print the checksum of an allocated page. usage: pager_checksum <page_num>")

	return r
}

// Function to print out state of the pager.
func HandlePagerPrint(p *Pager, payload string) (output string, err error) {
	fields := strings.Fields(payload)
	// Usage: pager_print
	if len(fields) != 1 {
		return "", errors.New("usage: pager_print")
	}

	w := new(strings.Builder)
	io.WriteString(w, fmt.Sprintf("numAllocated: %v\n", p.GetNumAllocated()))
	io.WriteString(w, "allocated: ")
	for pagenum := int64(0); pagenum < MaxPages; pagenum++ {
		if p.IsAllocated(pagenum) {
			io.WriteString(w, fmt.Sprintf("%v, ", pagenum))
		}
	}
	io.WriteString(w, "\n")
	return w.String(), nil
}

// Function to force allocation of a page.
func HandlePagerAlloc(p *Pager, payload string) (err error) {
	fields := strings.Fields(payload)
	// Usage: pager_alloc <page_num>
	if len(fields) != 2 {
		return fmt.Errorf("usage: pager_alloc <page_num>")
	}
	var pNum int
	if pNum, err = strconv.Atoi(fields[1]); err != nil {
		return err
	}
	_, err = p.GetPage(int64(pNum))
	return err
}

// Function to print out the contents of an allocated page.
func HandlePagerRead(p *Pager, payload string) (output string, err error) {
	fields := strings.Fields(payload)
	// Usage: pager_read <page_num>
	if len(fields) != 2 {
		return "", fmt.Errorf("usage: pager_read <page_num>")
	}
	var pNum int
	if pNum, err = strconv.Atoi(fields[1]); err != nil {
		return "", err
	}
	if !p.IsAllocated(int64(pNum)) {
		return "", errors.New("page not allocated; did you pager_alloc it first?")
	}
	page, err := p.GetPage(int64(pNum))
	if err != nil {
		return "", err
	}
	w := new(strings.Builder)
	io.WriteString(w, string(page.GetData()))
	io.WriteString(w, "\n")
	return w.String(), nil
}

// Function to print the checksum of an allocated page.
func HandlePagerChecksum(p *Pager, payload string) (output string, err error) {
	fields := strings.Fields(payload)
	// Usage: pager_checksum <page_num>
	if len(fields) != 2 {
		return "", fmt.Errorf("usage: pager_checksum <page_num>")
	}
	var pNum int
	if pNum, err = strconv.Atoi(fields[1]); err != nil {
		return "", err
	}
	if !p.IsAllocated(int64(pNum)) {
		return "", errors.New("page not allocated; did you pager_alloc it first?")
	}
	page, err := p.GetPage(int64(pNum))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("checksum: %v\n", XxChecksum(page)), nil
}
