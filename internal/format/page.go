package format

// Page bundles a decoded page header with the raw page_size-byte window of
// the file it was parsed from.
//
// Page 1 is the schema table's root: its page header begins at file offset
// 100 (just past the database header), but the cell-pointer array it
// parses contains offsets measured from the file origin — which happens
// to coincide with Data's own origin, since Data for page 1 always starts
// at file offset 0. Every other page starts at (n-1)*page_size and its
// cell-pointer offsets are relative to that same start. So no separate
// base-offset adjustment is needed at the cell-pointer level; IsSchemaRoot
// only shifts where within Data the header and, following it, the
// cell-pointer array begin.
type Page struct {
	Header       *PageHeader
	Data         []byte
	IsSchemaRoot bool
}

// ParsePage decodes the page at the given 1-based page number; on-disk
// offsets are always (n-1)*page_size.
func ParsePage(pageNumber int, pageSize int, db []byte) (*Page, error) {
	if pageNumber < 1 {
		return nil, errf("page numbers are 1-based, got %d", pageNumber)
	}
	offset := (pageNumber - 1) * pageSize
	if offset+pageSize > len(db) {
		return nil, errf("page %d (offset %d, size %d) exceeds file length %d", pageNumber, offset, pageSize, len(db))
	}

	isSchemaRoot := pageNumber == 1
	headerOffset := offset
	if isSchemaRoot {
		headerOffset += HeaderSize
	}

	header, err := ParsePageHeader(db[headerOffset : offset+pageSize])
	if err != nil {
		return nil, errf("page %d: %v", pageNumber, err)
	}

	return &Page{
		Header:       header,
		Data:         db[offset : offset+pageSize],
		IsSchemaRoot: isSchemaRoot,
	}, nil
}

// headerOffsetInData is the byte offset, within Data, of the first byte of
// the page header.
func (p *Page) headerOffsetInData() int {
	if p.IsSchemaRoot {
		return HeaderSize
	}
	return 0
}

// FreeBytes returns the number of unused bytes on this page: the gap
// between the end of the cell-pointer array and the start of the content
// area, plus any fragmented free bytes the header tracks separately.
func (p *Page) FreeBytes() int {
	cellPtrEnd := p.headerOffsetInData() + p.Header.Size() + int(p.Header.CellCount)*2
	gap := int(p.Header.ContentAreaStart) - cellPtrEnd
	if gap < 0 {
		gap = 0
	}
	return gap + int(p.Header.FragmentedFreeBytes)
}

// CellOffsets decodes the cell-pointer array immediately following the
// page header: CellCount big-endian 2-byte offsets into Data, in
// declaration order.
func (p *Page) CellOffsets() ([]int, error) {
	start := p.headerOffsetInData() + p.Header.Size()
	n := int(p.Header.CellCount)
	need := start + n*2
	if need > len(p.Data) {
		return nil, errf("cell-pointer array (page type %s) runs past page bounds", p.Header.Type)
	}

	offsets := make([]int, n)
	for i := 0; i < n; i++ {
		off := int(ReadU16(p.Data[start+i*2 : start+i*2+2]))
		if off >= len(p.Data) {
			return nil, errf("cell pointer %d out of bounds (%d >= page size %d)", i, off, len(p.Data))
		}
		offsets[i] = off
	}
	return offsets, nil
}
