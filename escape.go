package bsonjson

// escapeCString escapes bytes starting at t.in[start] up to (not
// including) the first zero byte, leaving t.inIdx at that zero byte. Used
// for key names, which carry no stored length on the wire. The scan never
// looks past limit (the enclosing container's docEnd): a key with no
// terminator before its container ends is malformed, not an invitation to
// go hunting through whatever bytes happen to follow in the buffer.
func (t *Transcoder) escapeCString(start, limit int) error {
	if limit > len(t.in) {
		limit = len(t.in)
	}
	end := start
	for end < limit && t.in[end] != 0x00 {
		end++
	}
	if end >= limit {
		return t.fail(ErrSizeExceedsInput)
	}
	if err := t.escapeBytes(start, end-start); err != nil {
		return err
	}
	t.inIdx = end
	return nil
}

// escapeBytes escapes exactly n bytes starting at t.in[start], writing
// the result (with JSON string escaping applied per the ECMA-404 §9
// table) to the output. It does not write the surrounding quotes — callers
// do that, since some callers (keys) wrap differently than others.
func (t *Transcoder) escapeBytes(start, n int) error {
	in := t.in
	i := start
	limit := start + n
	runStart := i

	flush := func(upTo int) error {
		if upTo > runStart {
			if err := t.write(in[runStart:upTo]); err != nil {
				return err
			}
		}
		return nil
	}

	if selectedVariant == variantWide {
		for limit-i >= 8 {
			word := le64(in[i : i+8])
			if !needsEscapeWord(word) {
				i += 8
				continue
			}
			break
		}
	}

	for i < limit {
		c := in[i]
		if c >= 0x20 && c != 0x22 && c != 0x5C {
			i++
			continue
		}
		if err := flush(i); err != nil {
			return err
		}
		if err := t.writeEscape(c); err != nil {
			return err
		}
		i++
		runStart = i

		// Resume the wide scan after handling the scalar escape, same as
		// the spec's "emit the non-escape prefix as a block, then handle
		// the first escape scalar-ly" description.
		if selectedVariant == variantWide {
			for limit-i >= 8 {
				word := le64(in[i : i+8])
				if !needsEscapeWord(word) {
					i += 8
					continue
				}
				break
			}
		}
	}
	return flush(limit)
}

// writeEscape writes the JSON escape sequence for a single byte known to
// require escaping (c < 0x20, or c in {'"', '\\'}).
func (t *Transcoder) writeEscape(c byte) error {
	switch c {
	case 0x08:
		return t.write([]byte{'\\', 'b'})
	case 0x09:
		return t.write([]byte{'\\', 't'})
	case 0x0A:
		return t.write([]byte{'\\', 'n'})
	case 0x0C:
		return t.write([]byte{'\\', 'f'})
	case 0x0D:
		return t.write([]byte{'\\', 'r'})
	case 0x22:
		return t.write([]byte{'\\', '"'})
	case 0x5C:
		return t.write([]byte{'\\', '\\'})
	default:
		var buf [6]byte
		buf[0] = '\\'
		buf[1] = 'u'
		buf[2] = '0'
		buf[3] = '0'
		buf[4] = lowerHexDigit(c >> 4)
		buf[5] = lowerHexDigit(c & 0x0F)
		return t.write(buf[:])
	}
}

func lowerHexDigit(n byte) byte {
	if n < 10 {
		return '0' + n
	}
	return 'a' + (n - 10)
}

// le64 reads 8 bytes as a little-endian uint64, used only to test for
// escape-triggering bytes (never to interpret the bytes numerically, so
// endianness choice here is arbitrary but must stay self-consistent with
// the masks below).
func le64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}

const loMask = 0x0101010101010101
const hiMask = 0x8080808080808080

// needsEscapeWord reports whether any of the 8 bytes packed into word is
// < 0x20, or equal to 0x22 ('"') or 0x5C ('\\') — the three conditions
// that require JSON escaping. Implemented with the standard SWAR
// (SIMD-within-a-register) byte-test tricks: one pass to test "any byte <
// 0x20" and two passes (via XOR-then-zero-test) for the two exact-byte
// matches, OR'd together. This is the "vector of bytes" fast path the
// spec allows for optimized variants; on hardware IsaDispatch reports as
// not having a wide lane, escapeBytes falls back to the byte-at-a-time
// loop, and both paths are required to (and do) produce identical output.
func needsEscapeWord(word uint64) bool {
	hasLessThan0x20 := (word-loMask*0x20) &^ word & hiMask
	hasQuote := hasZeroByte(word ^ (loMask * 0x22))
	hasBackslash := hasZeroByte(word ^ (loMask * 0x5C))
	return hasLessThan0x20 != 0 || hasQuote || hasBackslash
}

func hasZeroByte(v uint64) bool {
	return (v-loMask)&^v&hiMask != 0
}
