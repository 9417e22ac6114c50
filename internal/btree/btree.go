// Package btree implements the three read-only table/index B-tree
// traversal algorithms: full table scan, primary-key descent, and index
// descent, each exposed as a lazy internal/seq.Seq.
package btree

import (
	"github.com/lindeneg/litescan/internal/format"
	"github.com/lindeneg/litescan/internal/seq"
	"github.com/lindeneg/litescan/internal/value"
)

// loadPage is the one place page numbers turn into parsed pages, so every
// traversal shares the same (db, pageSize) binding.
type loadPage func(pageNumber int) (*format.Page, error)

func pager(db []byte, pageSize int) loadPage {
	return func(pageNumber int) (*format.Page, error) {
		return format.ParsePage(pageNumber, pageSize, db)
	}
}

// childOrderTable lists an interior-table page's children in key order:
// each cell's left child, then the right-most pointer.
func childOrderTable(page *format.Page) ([]uint32, error) {
	offsets, err := page.CellOffsets()
	if err != nil {
		return nil, err
	}
	children := make([]uint32, 0, len(offsets)+1)
	for _, off := range offsets {
		cell, err := format.ParseInteriorTableCell(page, off)
		if err != nil {
			return nil, err
		}
		children = append(children, cell.LeftChild)
	}
	children = append(children, page.Header.RightMostPointer)
	return children, nil
}

// FullTableScan descends a table B-tree in row-id order, emitting every
// leaf-table cell exactly once. Each Next call performs bounded work: it
// decodes at most one page's worth of children or cells before returning
// or continuing its internal loop.
func FullTableScan(db []byte, pageSize int, rootPage int) seq.Seq[*format.LeafTableCell] {
	load := pager(db, pageSize)

	pageStack := []int{rootPage}
	pending := []*format.LeafTableCell{}

	return seq.Func[*format.LeafTableCell](func() (*format.LeafTableCell, bool, error) {
		var zero *format.LeafTableCell
		for {
			if len(pending) > 0 {
				c := pending[0]
				pending = pending[1:]
				return c, true, nil
			}
			if len(pageStack) == 0 {
				return zero, false, nil
			}

			pageNumber := pageStack[len(pageStack)-1]
			pageStack = pageStack[:len(pageStack)-1]

			page, err := load(pageNumber)
			if err != nil {
				return zero, false, err
			}

			switch page.Header.Type {
			case format.PageLeafTable:
				offsets, err := page.CellOffsets()
				if err != nil {
					return zero, false, err
				}
				for _, off := range offsets {
					cell, err := format.ParseLeafTableCell(page, off)
					if err != nil {
						return zero, false, err
					}
					pending = append(pending, cell)
				}

			case format.PageInteriorTable:
				children, err := childOrderTable(page)
				if err != nil {
					return zero, false, err
				}
				for i := len(children) - 1; i >= 0; i-- {
					pageStack = append(pageStack, int(children[i]))
				}

			default:
				return zero, false, errf("full table scan reached a non-table page (%s) at page %d", page.Header.Type, pageNumber)
			}
		}
	})
}

// PKScan performs the primary-key descent for row id pk on the table
// rooted at rootPage, returning at most one cell.
func PKScan(db []byte, pageSize int, rootPage int, pk int64) (*format.LeafTableCell, bool, error) {
	load := pager(db, pageSize)

	pageNumber := rootPage
	for {
		page, err := load(pageNumber)
		if err != nil {
			return nil, false, err
		}

		switch page.Header.Type {
		case format.PageLeafTable:
			offsets, err := page.CellOffsets()
			if err != nil {
				return nil, false, err
			}
			for _, off := range offsets {
				cell, err := format.ParseLeafTableCell(page, off)
				if err != nil {
					return nil, false, err
				}
				if cell.RowID == pk {
					return cell, true, nil
				}
			}
			return nil, false, nil

		case format.PageInteriorTable:
			offsets, err := page.CellOffsets()
			if err != nil {
				return nil, false, err
			}
			next := page.Header.RightMostPointer
			for _, off := range offsets {
				cell, err := format.ParseInteriorTableCell(page, off)
				if err != nil {
					return nil, false, err
				}
				if cell.RowID >= pk {
					next = cell.LeftChild
					break
				}
			}
			pageNumber = int(next)

		default:
			return nil, false, errf("primary-key descent reached a non-table page (%s) at page %d", page.Header.Type, pageNumber)
		}
	}
}

// IndexScan performs the index descent for key k on the index rooted at
// indexRoot, joining each match to the full row via a PK descent on
// tableRoot.
func IndexScan(db []byte, pageSize int, indexRoot int, tableRoot int, k value.Value) seq.Seq[*format.LeafTableCell] {
	load := pager(db, pageSize)

	matches := []*format.LeafIndexCell{}
	started := false

	var descend func(pageNumber int) error
	descend = func(pageNumber int) error {
		page, err := load(pageNumber)
		if err != nil {
			return err
		}

		switch page.Header.Type {
		case format.PageLeafIndex:
			offsets, err := page.CellOffsets()
			if err != nil {
				return err
			}
			for _, off := range offsets {
				cell, err := format.ParseLeafIndexCell(page, off)
				if err != nil {
					return err
				}
				cmp, err := compareIndexKey(cell.Record, k)
				if err != nil {
					return err
				}
				if cmp < 0 {
					continue
				}
				if cmp > 0 {
					return nil
				}
				matches = append(matches, cell)
			}
			return nil

		case format.PageInteriorIndex:
			offsets, err := page.CellOffsets()
			if err != nil {
				return err
			}
			for _, off := range offsets {
				cell, err := format.ParseInteriorIndexCell(page, off)
				if err != nil {
					return err
				}
				cmp, err := compareIndexKey(cell.Record, k)
				if err != nil {
					return err
				}
				if cmp >= 0 {
					if err := descend(int(cell.LeftChild)); err != nil {
						return err
					}
				}
			}
			return descend(int(page.Header.RightMostPointer))

		default:
			return errf("index descent reached a non-index page (%s) at page %d", page.Header.Type, pageNumber)
		}
	}

	pos := 0
	return seq.Func[*format.LeafTableCell](func() (*format.LeafTableCell, bool, error) {
		var zero *format.LeafTableCell
		if !started {
			started = true
			if err := descend(indexRoot); err != nil {
				return zero, false, err
			}
		}
		for pos < len(matches) {
			cell := matches[pos]
			pos++
			rowID, err := cell.RowID()
			if err != nil {
				return zero, false, err
			}
			row, ok, err := PKScan(db, pageSize, tableRoot, rowID)
			if err != nil {
				return zero, false, err
			}
			if !ok {
				continue
			}
			return row, true, nil
		}
		return zero, false, nil
	})
}

// compareIndexKey compares an index record's leading key column (column 0)
// against k, returning <0, 0, >0.
func compareIndexKey(rec *format.Record, k value.Value) (int, error) {
	if len(rec.Columns) == 0 {
		return 0, errf("index record has no key column")
	}
	v, err := ColContentToValue(rec.Columns[0])
	if err != nil {
		return 0, err
	}
	return value.Compare(v, k)
}

// ColContentToValue lifts a decoded record column into the runtime Value
// model shared by index-key comparison and the query executor.
func ColContentToValue(c *format.ColContent) (value.Value, error) {
	switch c.Kind {
	case format.ColNull:
		return value.NewNull(), nil
	case format.ColInt, format.ColZero, format.ColOne:
		return value.NewInt(c.I), nil
	case format.ColFloat:
		return value.NewFloat(c.F), nil
	case format.ColBlob:
		return value.NewBlob(c.Bytes), nil
	case format.ColText:
		return value.NewText(string(c.Bytes)), nil
	default:
		return value.Value{}, errf("unrecognized column kind")
	}
}
