package pager_test

import (
	"errors"
	"testing"

	"rowdb/pkg/pager"
	"rowdb/pkg/row"
)

// setupPager creates a new pager and queues its teardown.
func setupPager(t *testing.T) *pager.Pager {
	t.Parallel()
	p := pager.New()
	t.Cleanup(p.Close)
	return p
}

// rowSlot wraps a call to Pager.RowSlot(rownum) with error checking.
func rowSlot(t *testing.T, p *pager.Pager, rownum int64) []byte {
	slot, err := p.RowSlot(rownum)
	if err != nil {
		t.Fatalf("Error getting slot for row %d: %s", rownum, err)
	}
	if int64(len(slot)) != row.RowSize {
		t.Fatalf("Expected slot of %d bytes for row %d, but found %d", int64(row.RowSize), rownum, len(slot))
	}
	return slot
}

func TestPager(t *testing.T) {
	t.Run("NewPager", testNewPager)
	t.Run("DerivedConstants", testDerivedConstants)
	t.Run("LazyAllocation", testLazyAllocation)
	t.Run("ZeroFilledPages", testZeroFilledPages)
	t.Run("SlotAddressing", testSlotAddressing)
	t.Run("SlotsDontOverlap", testSlotsDontOverlap)
	t.Run("InvalidPagenum", testInvalidPagenum)
	t.Run("Close", testClose)
}

/*
Sets up a new pager and checks that its arena starts out empty.
*/
func testNewPager(t *testing.T) {
	p := setupPager(t)
	if p.GetNumAllocated() != 0 {
		t.Error("Expected a fresh pager to have no allocated pages, but found", p.GetNumAllocated())
	}
}

/*
Checks the derived addressing constants against the fixed row schema.
*/
func testDerivedConstants(t *testing.T) {
	t.Parallel()
	if pager.Pagesize != 4096 {
		t.Error("Expected 4096-byte pages, but found", pager.Pagesize)
	}
	if pager.RowsPerPage != 14 {
		t.Error("Expected 14 rows per page, but found", pager.RowsPerPage)
	}
	if pager.MaxRows != 1400 {
		t.Error("Expected a capacity of 1400 rows, but found", pager.MaxRows)
	}
}

/*
Checks that pages only come into existence when a row inside them is first
touched, and that rows sharing a page share its allocation.
*/
func testLazyAllocation(t *testing.T) {
	p := setupPager(t)
	rowSlot(t, p, 0)
	if p.GetNumAllocated() != 1 || !p.IsAllocated(0) {
		t.Fatal("Expected touching row 0 to allocate exactly page 0")
	}
	rowSlot(t, p, pager.RowsPerPage-1)
	if p.GetNumAllocated() != 1 {
		t.Error("Expected the last row of page 0 to reuse the existing page")
	}
	rowSlot(t, p, pager.RowsPerPage)
	if p.GetNumAllocated() != 2 || !p.IsAllocated(1) {
		t.Error("Expected the first row of page 1 to allocate page 1")
	}
	if p.IsAllocated(2) {
		t.Error("Page 2 was allocated without any of its rows being touched")
	}
}

/*
Checks that a freshly allocated page is zero-initialized, so its never-written
rows decode to a row with id 0 and empty text fields.
*/
func testZeroFilledPages(t *testing.T) {
	p := setupPager(t)
	page, err := p.GetPage(5)
	if err != nil {
		t.Fatal("Error getting page 5:", err)
	}
	data := page.GetData()
	if int64(len(data)) != pager.Pagesize {
		t.Fatalf("Expected a %d-byte frame, but found %d bytes", pager.Pagesize, len(data))
	}
	for i, b := range data {
		if b != 0 {
			t.Fatalf("Expected a zeroed frame, but found %#x at byte %d", b, i)
		}
	}
	empty := row.UnmarshalRow(rowSlot(t, p, 5*pager.RowsPerPage))
	if empty.Id != 0 || empty.GetUsername() != "" || empty.GetEmail() != "" {
		t.Error("Expected a never-written slot to decode to an empty row")
	}
}

/*
Checks that a row's slot lives in page rownum/RowsPerPage at byte offset
(rownum%RowsPerPage)*RowSize.
*/
func testSlotAddressing(t *testing.T) {
	p := setupPager(t)
	for _, rownum := range []int64{0, 1, 13, 14, 27, 700, pager.MaxRows - 1} {
		slot := rowSlot(t, p, rownum)
		slot[0] = byte(rownum)

		pagenum := rownum / pager.RowsPerPage
		offset := rownum % pager.RowsPerPage * row.RowSize
		page, err := p.GetPage(pagenum)
		if err != nil {
			t.Fatalf("Error getting page %d: %s", pagenum, err)
		}
		if page.GetData()[offset] != byte(rownum) {
			t.Errorf("Slot for row %d is not at page %d offset %d", rownum, pagenum, offset)
		}
	}
}

/*
Fills the slots of two pages' worth of rows with distinct bytes and checks
that no write bled into any other slot.
*/
func testSlotsDontOverlap(t *testing.T) {
	p := setupPager(t)
	numRows := 2 * pager.RowsPerPage
	for rownum := int64(0); rownum < numRows; rownum++ {
		slot := rowSlot(t, p, rownum)
		for i := range slot {
			slot[i] = byte(rownum + 1)
		}
	}
	for rownum := int64(0); rownum < numRows; rownum++ {
		slot := rowSlot(t, p, rownum)
		for i, b := range slot {
			if b != byte(rownum+1) {
				t.Fatalf("Slot for row %d was clobbered at byte %d", rownum, i)
			}
		}
	}
}

/*
Checks that addressing outside the arena is a capacity violation.
*/
func testInvalidPagenum(t *testing.T) {
	p := setupPager(t)
	if _, err := p.GetPage(pager.MaxPages); !errors.Is(err, pager.ErrInvalidPagenum) {
		t.Error("Expected ErrInvalidPagenum for a pagenum past the arena, but found", err)
	}
	if _, err := p.GetPage(-1); !errors.Is(err, pager.ErrInvalidPagenum) {
		t.Error("Expected ErrInvalidPagenum for a negative pagenum, but found", err)
	}
	if _, err := p.RowSlot(pager.MaxRows); !errors.Is(err, pager.ErrInvalidPagenum) {
		t.Error("Expected ErrInvalidPagenum for a row past capacity, but found", err)
	}
	// Small negative rownums would round toward page 0; they must error, not
	// slice at a negative offset.
	for _, rownum := range []int64{-1, -pager.RowsPerPage + 1, -pager.RowsPerPage} {
		if _, err := p.RowSlot(rownum); !errors.Is(err, pager.ErrInvalidPagenum) {
			t.Errorf("Expected ErrInvalidPagenum for row %d, but found %v", rownum, err)
		}
	}
	if p.GetNumAllocated() != 0 {
		t.Error("A rejected request should not allocate anything")
	}
}

/*
Checks that Close releases every page at once and that the pager is usable
again afterwards.
*/
func testClose(t *testing.T) {
	p := setupPager(t)
	rowSlot(t, p, 0)[0] = 0xff
	p.Close()
	if p.GetNumAllocated() != 0 {
		t.Fatal("Expected no allocated pages after Close, but found", p.GetNumAllocated())
	}
	if slot := rowSlot(t, p, 0); slot[0] != 0 {
		t.Error("Expected a fresh zeroed slot after Close")
	}
}
