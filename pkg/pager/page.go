package pager

// Page holds one fixed-size frame of row data in a pager's arena.
type Page struct {
	pager   *Pager // Pointer to the pager that this page belongs to
	pagenum int64  // Position of the page within the arena
	data    []byte // The actual Pagesize bytes of the page
}

// GetPager returns the pager this page belongs to.
func (page *Page) GetPager() *Pager {
	return page.pager
}

// GetPageNum returns the page's pagenum (unique identifier).
func (page *Page) GetPageNum() int64 {
	return page.pagenum
}

// GetData returns the byte data held by the page.
func (page *Page) GetData() []byte {
	return page.data
}

// Update updates this page with `size` bytes of the given data slice at the
// specified offset.
func (page *Page) Update(data []byte, offset int64, size int64) {
	copy(page.data[offset:offset+size], data)
}
