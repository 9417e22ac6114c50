package format

// ReadVarint decodes a SQLite varint: big-endian, 1 to 9 bytes, each of the
// first 8 bytes contributing its low 7 bits and signalling continuation
// via its high bit; a 9th byte (if reached) contributes all 8 of its bits
// regardless of its high bit. Termination is the first byte with a clear
// high bit, or the 9th byte, whichever comes first.
//
// Returns the decoded value and the number of bytes consumed (1..=9).
func ReadVarint(buf []byte) (int64, int, error) {
	if len(buf) == 0 {
		return 0, 0, errf("varint: empty input")
	}

	var v int64
	n := 0
	for i := 0; i < len(buf) && i < 9; i++ {
		b := buf[i]
		n++
		if i == 8 {
			v = (v << 8) | int64(b)
			break
		}
		v = (v << 7) | int64(b&0x7f)
		if b&0x80 == 0 {
			break
		}
	}
	if n < 9 && buf[n-1]&0x80 != 0 {
		return 0, 0, errf("varint: truncated input, only %d byte(s) available", len(buf))
	}
	return v, n, nil
}

// ReadVarints decodes consecutive varints from buf until it is exhausted,
// used to decode a record header's run of serial-type codes.
func ReadVarints(buf []byte) ([]int64, error) {
	var out []int64
	i := 0
	for i < len(buf) {
		v, n, err := ReadVarint(buf[i:])
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		i += n
	}
	return out, nil
}
