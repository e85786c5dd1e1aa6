// Package pager implements the in-memory page arena backing a table, and the
// row-to-slot addressing over it.
package pager

import (
	"errors"

	"rowdb/pkg/row"

	"github.com/bits-and-blooms/bitset"
	"github.com/ncw/directio"
)

// Pagesize is the size of an individual page (ie the maximum number of bytes
// that the page can hold) - defaults to 4kb.
const Pagesize int64 = directio.BlockSize

// MaxPages is the number of page slots in a pager's arena.
const MaxPages int64 = 100

// RowsPerPage is how many whole rows fit in one page. The remainder bytes of
// each page stay unused so that a row never spans two pages.
const RowsPerPage = Pagesize / row.RowSize

// MaxRows is the row capacity of a fully allocated arena.
const MaxRows = RowsPerPage * MaxPages

// Error for when a page number falls outside the arena
var ErrInvalidPagenum = errors.New("pagenum outside of arena")

// Pager is a data structure that manages a fixed arena of lazily allocated
// pages. A page does not exist until a row falling inside it is first
// touched, and pages are only ever freed all at once on Close.
type Pager struct {
	pages     []*Page        // The arena; entries whose page has not been touched yet are nil.
	allocated *bitset.BitSet // Marks which arena slots hold an allocated page.
}

// New constructs a new Pager with an empty arena.
func New() *Pager {
	return &Pager{
		pages:     make([]*Page, MaxPages),
		allocated: bitset.New(uint(MaxPages)),
	}
}

// GetNumAllocated returns the number of pages allocated so far.
func (pager *Pager) GetNumAllocated() int64 {
	return int64(pager.allocated.Count())
}

// IsAllocated reports whether the page at pagenum has been allocated.
func (pager *Pager) IsAllocated(pagenum int64) bool {
	return pagenum >= 0 && pagenum < MaxPages && pager.allocated.Test(uint(pagenum))
}

// GetPage returns the page at the given pagenum, allocating a zeroed frame
// for it on first touch. Errors if pagenum falls outside the arena.
func (pager *Pager) GetPage(pagenum int64) (*Page, error) {
	if pagenum < 0 || pagenum >= MaxPages {
		return nil, ErrInvalidPagenum
	}
	if !pager.allocated.Test(uint(pagenum)) {
		pager.pages[pagenum] = &Page{
			pager:   pager,
			pagenum: pagenum,
			data:    directio.AlignedBlock(int(Pagesize)),
		}
		pager.allocated.Set(uint(pagenum))
	}
	return pager.pages[pagenum], nil
}

// RowSlot returns the mutable byte range holding the given row number,
// allocating the backing page if needed. The returned slice is always exactly
// row.RowSize bytes long. Callers must not hold the slice across a Close.
func (pager *Pager) RowSlot(rownum int64) ([]byte, error) {
	if rownum < 0 {
		return nil, ErrInvalidPagenum
	}
	pagenum := rownum / RowsPerPage
	offset := rownum % RowsPerPage * row.RowSize
	page, err := pager.GetPage(pagenum)
	if err != nil {
		return nil, err
	}
	return page.data[offset : offset+row.RowSize], nil
}

// Close releases the whole arena at once. Pages have no individual lifecycle.
func (pager *Pager) Close() {
	pager.pages = make([]*Page, MaxPages)
	pager.allocated.ClearAll()
}
