package format

// LeafTableCell is a table B-tree leaf cell: a full row, keyed by its
// integer row id.
type LeafTableCell struct {
	RowID  int64
	Record *Record
}

// InteriorTableCell is a table B-tree interior cell: a child page pointer
// plus the largest row id reachable through it.
type InteriorTableCell struct {
	LeftChild uint32
	RowID     int64
}

// LeafIndexCell is an index B-tree leaf cell: an index key record whose
// last column is the indexed row's integer row id.
type LeafIndexCell struct {
	Record *Record
}

// InteriorIndexCell is an index B-tree interior cell: a child page pointer
// plus the index key record that separates it from its right sibling.
type InteriorIndexCell struct {
	LeftChild uint32
	Record    *Record
}

// ParseLeafTableCell decodes a cell from a leaf-table page. Panics if page
// is not a leaf-table page: cell layout is selected strictly by page type,
// and dispatching the wrong parser on a page is a programming error, not a
// malformed-input condition.
func ParseLeafTableCell(page *Page, offset int) (*LeafTableCell, error) {
	if page.Header.Type != PageLeafTable {
		panic("ParseLeafTableCell: page is not leaf-table")
	}
	buf := page.Data[offset:]

	payloadSize, n, err := ReadVarint(buf)
	if err != nil {
		return nil, errf("leaf-table cell payload size: %v", err)
	}
	buf = buf[n:]

	rowID, n, err := ReadVarint(buf)
	if err != nil {
		return nil, errf("leaf-table cell row id: %v", err)
	}
	buf = buf[n:]

	if int64(len(buf)) < payloadSize {
		return nil, errf("leaf-table cell payload truncated")
	}
	rec, err := ParseRecord(buf[:payloadSize])
	if err != nil {
		return nil, err
	}

	return &LeafTableCell{RowID: rowID, Record: rec}, nil
}

// ParseInteriorTableCell decodes a cell from an interior-table page.
func ParseInteriorTableCell(page *Page, offset int) (*InteriorTableCell, error) {
	if page.Header.Type != PageInteriorTable {
		panic("ParseInteriorTableCell: page is not interior-table")
	}
	buf := page.Data[offset:]
	if len(buf) < 4 {
		return nil, errf("interior-table cell truncated: missing child pointer")
	}
	child := ReadU32(buf[:4])

	rowID, _, err := ReadVarint(buf[4:])
	if err != nil {
		return nil, errf("interior-table cell row id: %v", err)
	}

	return &InteriorTableCell{LeftChild: child, RowID: rowID}, nil
}

// ParseLeafIndexCell decodes a cell from a leaf-index page.
func ParseLeafIndexCell(page *Page, offset int) (*LeafIndexCell, error) {
	if page.Header.Type != PageLeafIndex {
		panic("ParseLeafIndexCell: page is not leaf-index")
	}
	buf := page.Data[offset:]

	payloadSize, n, err := ReadVarint(buf)
	if err != nil {
		return nil, errf("leaf-index cell payload size: %v", err)
	}
	buf = buf[n:]

	if int64(len(buf)) < payloadSize {
		return nil, errf("leaf-index cell payload truncated")
	}
	rec, err := ParseRecord(buf[:payloadSize])
	if err != nil {
		return nil, err
	}

	return &LeafIndexCell{Record: rec}, nil
}

// ParseInteriorIndexCell decodes a cell from an interior-index page.
func ParseInteriorIndexCell(page *Page, offset int) (*InteriorIndexCell, error) {
	if page.Header.Type != PageInteriorIndex {
		panic("ParseInteriorIndexCell: page is not interior-index")
	}
	buf := page.Data[offset:]
	if len(buf) < 4 {
		return nil, errf("interior-index cell truncated: missing child pointer")
	}
	child := ReadU32(buf[:4])
	buf = buf[4:]

	payloadSize, n, err := ReadVarint(buf)
	if err != nil {
		return nil, errf("interior-index cell payload size: %v", err)
	}
	buf = buf[n:]

	if int64(len(buf)) < payloadSize {
		return nil, errf("interior-index cell payload truncated")
	}
	rec, err := ParseRecord(buf[:payloadSize])
	if err != nil {
		return nil, err
	}

	return &InteriorIndexCell{LeftChild: child, Record: rec}, nil
}

// RowID extracts the trailing row id column from an index record: an
// index record's last column is always the referenced row's row id.
func (c *LeafIndexCell) RowID() (int64, error) {
	return recordRowID(c.Record)
}

// RowID extracts the trailing row id column from an interior index record.
func (c *InteriorIndexCell) RowID() (int64, error) {
	return recordRowID(c.Record)
}

func recordRowID(rec *Record) (int64, error) {
	if len(rec.Columns) == 0 {
		return 0, errf("index record has no columns")
	}
	last := rec.Columns[len(rec.Columns)-1]
	v, ok := last.AsInt64()
	if !ok {
		return 0, errf("index record's trailing row id column is not integral")
	}
	return v, nil
}
