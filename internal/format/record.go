package format

// Record is a decoded table/index row body: a varint header giving each
// column's serial type, followed by the
// concatenated column payloads in the same order.
type Record struct {
	Columns []*ColContent
}

// ParseRecord decodes a record from buf, which must start at the record's
// header_size varint and extend at least through the last column's payload.
func ParseRecord(buf []byte) (*Record, error) {
	headerSize, n, err := ReadVarint(buf)
	if err != nil {
		return nil, errf("record header size: %v", err)
	}
	if int(headerSize) > len(buf) {
		return nil, errf("record header size %d exceeds available %d bytes", headerSize, len(buf))
	}

	serialTypes, err := ReadVarints(buf[n:int(headerSize)])
	if err != nil {
		return nil, errf("record serial types: %v", err)
	}

	body := buf[headerSize:]
	cols := make([]*ColContent, len(serialTypes))
	pos := 0
	for i, st := range serialTypes {
		size, err := SerialTypeSize(st)
		if err != nil {
			return nil, errf("record column %d: %v", i, err)
		}
		if pos+size > len(body) {
			return nil, errf("record column %d payload exceeds record body", i)
		}
		col, err := ParseColContent(st, body[pos:pos+size])
		if err != nil {
			return nil, errf("record column %d: %v", i, err)
		}
		cols[i] = col
		pos += size
	}

	return &Record{Columns: cols}, nil
}

// Col returns the i-th column, or nil if i is out of range.
func (r *Record) Col(i int) *ColContent {
	if i < 0 || i >= len(r.Columns) {
		return nil
	}
	return r.Columns[i]
}
