package table

import (
	"fmt"

	"rowdb/pkg/pager"
)

// IsTable checks a table's structural invariants: the row count is within
// capacity and exactly the pages the row count implies have been allocated.
func IsTable(table *Table) error {
	numRows := table.numRows
	if numRows > pager.MaxRows {
		return fmt.Errorf("row count %d exceeds capacity %d", numRows, pager.MaxRows)
	}
	needed := (numRows + pager.RowsPerPage - 1) / pager.RowsPerPage
	for pagenum := int64(0); pagenum < needed; pagenum++ {
		if !table.pager.IsAllocated(pagenum) {
			return fmt.Errorf("page %d holds rows but was never allocated", pagenum)
		}
	}
	for pagenum := needed; pagenum < pager.MaxPages; pagenum++ {
		if table.pager.IsAllocated(pagenum) {
			return fmt.Errorf("page %d is allocated beyond the last row", pagenum)
		}
	}
	return nil
}

// Checksums returns the checksum of every allocated page, in page order.
func Checksums(table *Table) ([]uint64, error) {
	var sums []uint64
	for pagenum := int64(0); pagenum < pager.MaxPages; pagenum++ {
		if !table.pager.IsAllocated(pagenum) {
			continue
		}
		page, err := table.pager.GetPage(pagenum)
		if err != nil {
			return nil, err
		}
		sums = append(sums, pager.XxChecksum(page))
	}
	return sums, nil
}

// Fingerprint hashes every row slot in order into a single value. Two tables
// holding identical rows in identical order have equal fingerprints.
func Fingerprint(table *Table) (uint64, error) {
	h := pager.NewFingerprint()
	for rownum := int64(0); rownum < table.numRows; rownum++ {
		slot, err := table.pager.RowSlot(rownum)
		if err != nil {
			return 0, err
		}
		h.Write(slot)
	}
	return h.Sum64(), nil
}
