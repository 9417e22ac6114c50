package format

// HeaderSize is the fixed size, in bytes, of the database file header.
const HeaderSize = 100

const headerMagic = "SQLite format 3\x00"

// TextEncoding enumerates the database's declared text encoding.
type TextEncoding uint32

const (
	EncUTF8    TextEncoding = 1
	EncUTF16LE TextEncoding = 2
	EncUTF16BE TextEncoding = 3
)

func (e TextEncoding) String() string {
	switch e {
	case EncUTF8:
		return "utf8"
	case EncUTF16LE:
		return "utf16le"
	case EncUTF16BE:
		return "utf16be"
	default:
		return "unknown"
	}
}

// DatabaseHeader is the decoded form of the first 100 bytes of the file.
// All multi-byte fields are big-endian on disk.
type DatabaseHeader struct {
	PageSize            uint16
	WriteVersion        uint8
	ReadVersion         uint8
	ReservedBytes       uint8
	MaxPayloadFraction  uint8
	MinPayloadFraction  uint8
	LeafPayloadFraction uint8
	FileChangeCounter   uint32
	PageCount           uint32
	FirstFreelistPage   uint32
	FreelistPageCount   uint32
	SchemaCookie        uint32
	SchemaFormat        uint32
	DefaultCacheSize    uint32
	AutovacuumTopRoot   uint32
	TextEncoding        TextEncoding
	UserVersion         uint32
	IncrementalVacuum   uint32
	ApplicationID       uint32
	VersionValidFor     uint32
	SoftwareVersion     uint32
}

// ParseDatabaseHeader decodes the fixed 100-byte header at the start of
// the file buffer.
func ParseDatabaseHeader(db []byte) (*DatabaseHeader, error) {
	if len(db) < HeaderSize {
		return nil, errf("database file shorter than the %d-byte header", HeaderSize)
	}
	if string(db[:16]) != headerMagic {
		return nil, errf("not a SQLite database: bad header string %q", db[:16])
	}

	enc := TextEncoding(ReadU32(db[56:60]))
	switch enc {
	case EncUTF8, EncUTF16LE, EncUTF16BE:
	default:
		return nil, errf("invalid text encoding tag: %d", enc)
	}

	return &DatabaseHeader{
		PageSize:            ReadU16(db[16:18]),
		WriteVersion:        db[18],
		ReadVersion:         db[19],
		ReservedBytes:       db[20],
		MaxPayloadFraction:  db[21],
		MinPayloadFraction:  db[22],
		LeafPayloadFraction: db[23],
		FileChangeCounter:   ReadU32(db[24:28]),
		PageCount:           ReadU32(db[28:32]),
		FirstFreelistPage:   ReadU32(db[32:36]),
		FreelistPageCount:   ReadU32(db[36:40]),
		SchemaCookie:        ReadU32(db[40:44]),
		SchemaFormat:        ReadU32(db[44:48]),
		DefaultCacheSize:    ReadU32(db[48:52]),
		AutovacuumTopRoot:   ReadU32(db[52:56]),
		TextEncoding:        enc,
		UserVersion:         ReadU32(db[60:64]),
		IncrementalVacuum:   ReadU32(db[64:68]),
		ApplicationID:       ReadU32(db[68:72]),
		VersionValidFor:     ReadU32(db[92:96]),
		SoftwareVersion:     ReadU32(db[96:100]),
	}, nil
}

// EffectivePageSize resolves the header's page-size field, interpreting
// the legacy value 1 as 65536.
func (h *DatabaseHeader) EffectivePageSize() int {
	if h.PageSize == 1 {
		return 65536
	}
	return int(h.PageSize)
}
