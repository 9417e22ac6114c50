package format

// ColKind enumerates the decoded shape of a record column, derived from its
// serial type.
type ColKind uint8

const (
	ColNull ColKind = iota
	ColInt
	ColFloat
	ColZero // serial type 8: constant integer 0
	ColOne  // serial type 9: constant integer 1
	ColBlob
	ColText
)

// ColContent is the decoded content of a single record column. Exactly one
// of I/F/Bytes is meaningful, selected by Kind.
type ColContent struct {
	Kind  ColKind
	I     int64
	F     float64
	Bytes []byte // Blob or Text payload, sharing the record's backing array
}

// SerialTypeSize returns the number of payload bytes a serial type occupies
// in the record body.
func SerialTypeSize(serialType int64) (int, error) {
	switch {
	case serialType == 0, serialType == 8, serialType == 9:
		return 0, nil
	case serialType == 1:
		return 1, nil
	case serialType == 2:
		return 2, nil
	case serialType == 3:
		return 3, nil
	case serialType == 4:
		return 4, nil
	case serialType == 5:
		return 6, nil
	case serialType == 6, serialType == 7:
		return 8, nil
	case serialType >= 12 && serialType%2 == 0:
		return int((serialType - 12) / 2), nil
	case serialType >= 13 && serialType%2 == 1:
		return int((serialType - 13) / 2), nil
	case serialType == 10, serialType == 11:
		return 0, errf("reserved serial type %d", serialType)
	default:
		return 0, errf("negative or malformed serial type %d", serialType)
	}
}

// ParseColContent decodes the serial type's payload from buf, which must
// hold at least SerialTypeSize(serialType) bytes at its start.
func ParseColContent(serialType int64, buf []byte) (*ColContent, error) {
	size, err := SerialTypeSize(serialType)
	if err != nil {
		return nil, err
	}
	if len(buf) < size {
		return nil, errf("column content truncated: need %d bytes, have %d", size, len(buf))
	}

	switch {
	case serialType == 0:
		return &ColContent{Kind: ColNull}, nil
	case serialType == 1:
		return &ColContent{Kind: ColInt, I: ReadI8(buf)}, nil
	case serialType == 2:
		return &ColContent{Kind: ColInt, I: ReadI16(buf)}, nil
	case serialType == 3:
		return &ColContent{Kind: ColInt, I: ReadI24(buf)}, nil
	case serialType == 4:
		return &ColContent{Kind: ColInt, I: ReadI32(buf)}, nil
	case serialType == 5:
		return &ColContent{Kind: ColInt, I: ReadI48(buf)}, nil
	case serialType == 6:
		return &ColContent{Kind: ColInt, I: ReadI64(buf)}, nil
	case serialType == 7:
		bits := ReadI64(buf)
		return &ColContent{Kind: ColFloat, F: float64FromBits(bits)}, nil
	case serialType == 8:
		return &ColContent{Kind: ColZero, I: 0}, nil
	case serialType == 9:
		return &ColContent{Kind: ColOne, I: 1}, nil
	case serialType >= 12 && serialType%2 == 0:
		return &ColContent{Kind: ColBlob, Bytes: buf[:size]}, nil
	default: // odd, >= 13
		return &ColContent{Kind: ColText, Bytes: buf[:size]}, nil
	}
}

// AsInt64 converts content known to hold an integral value (Int, Zero, One)
// to int64; Null converts to 0.
func (c *ColContent) AsInt64() (int64, bool) {
	switch c.Kind {
	case ColInt, ColZero, ColOne:
		return c.I, true
	case ColNull:
		return 0, true
	default:
		return 0, false
	}
}

// IsNull reports whether this column holds SQL NULL.
func (c *ColContent) IsNull() bool { return c.Kind == ColNull }
