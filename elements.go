package bsonjson

import "math"

const (
	maxInt32Width  = 11
	maxInt64Width  = 20
	maxDoubleWidth = 32 // sign + 17 significant digits + '.' + 'e' + sign + 3 exponent digits, rounded up
)

// transcodeElement dispatches a single BSON element's value (the tag and
// key have already been consumed/emitted by transcodeObject) to the
// matching JSON emitter, per the table in spec §4.8. limit is the
// enclosing container's docEnd, passed through to nested OBJECT/ARRAY
// elements so their own size validation can't overclaim bytes beyond it.
func (t *Transcoder) transcodeElement(elemType byte, limit int) error {
	switch elemType {
	case tagString:
		return t.transcodeString()
	case tagObjectID:
		return t.transcodeObjectID()
	case tagInt32:
		return t.transcodeInt32()
	case tagFloat:
		return t.transcodeFloat()
	case tagDate:
		return t.transcodeDate()
	case tagBool:
		return t.transcodeBool()
	case tagObject:
		return t.transcodeObject(false, limit)
	case tagArray:
		return t.transcodeObject(true, limit)
	case tagNull:
		return t.write(jsonNull)
	case tagInt64:
		return t.transcodeInt64()
	case tagUndefined:
		// No on-wire payload and no JSON output; the comma-suppression
		// decision happens in transcodeObject.
		return nil
	case tagBinary, tagRegexp, tagDBPointer, tagJavascript, tagSymbol,
		tagJSScope, tagTimestamp, tagDecimal128, tagMinKey, tagMaxKey:
		return t.fail(ErrIncompatibleType)
	default:
		return t.fail(ErrUnknownType)
	}
}

var (
	jsonNull  = []byte("null")
	jsonTrue  = []byte("true")
	jsonFalse = []byte("false")
)

// transcodeString handles STRING (tag 2): int32 length prefix, `length-1`
// payload bytes, trailing null.
func (t *Transcoder) transcodeString() error {
	if len(t.in)-t.inIdx < 4 {
		return t.fail(ErrBadStringLength)
	}
	size := readInt32LE(t.in[t.inIdx : t.inIdx+4])
	t.inIdx += 4

	if size < 1 || int(size) > len(t.in)-t.inIdx {
		return t.fail(ErrBadStringLength)
	}
	if t.in[t.inIdx+int(size)-1] != 0x00 {
		return t.fail(ErrBadStringLength)
	}

	if err := t.writeByte('"'); err != nil {
		return err
	}
	if err := t.escapeBytes(t.inIdx, int(size)-1); err != nil {
		return err
	}
	t.inIdx += int(size) // payload + trailing null
	return t.writeByte('"')
}

// transcodeObjectID handles OID (tag 7): 12 raw bytes, rendered as 24 hex
// characters.
func (t *Transcoder) transcodeObjectID() error {
	if len(t.in)-t.inIdx < objectIDLen {
		return t.fail(ErrSizeExceedsInput)
	}
	oid := t.in[t.inIdx : t.inIdx+objectIDLen]
	t.inIdx += objectIDLen

	if err := t.writeByte('"'); err != nil {
		return err
	}
	if err := t.appendFormatted(objectIDHexLen, func(dst []byte) []byte {
		return formatObjectID(dst, oid)
	}); err != nil {
		return err
	}
	return t.writeByte('"')
}

// transcodeInt32 handles INT (tag 16): a little-endian int32.
func (t *Transcoder) transcodeInt32() error {
	if len(t.in)-t.inIdx < 4 {
		return t.fail(ErrSizeExceedsInput)
	}
	v := readInt32LE(t.in[t.inIdx : t.inIdx+4])
	t.inIdx += 4
	return t.appendFormatted(maxInt32Width, func(dst []byte) []byte {
		return formatInt32(dst, v)
	})
}

// transcodeInt64 handles LONG (tag 18): a little-endian int64.
func (t *Transcoder) transcodeInt64() error {
	if len(t.in)-t.inIdx < 8 {
		return t.fail(ErrSizeExceedsInput)
	}
	v := readInt64LE(t.in[t.inIdx : t.inIdx+8])
	t.inIdx += 8
	return t.appendFormatted(maxInt64Width, func(dst []byte) []byte {
		return formatInt64(dst, v)
	})
}

// transcodeFloat handles NUMBER (tag 1): a little-endian IEEE-754 double.
// Non-finite values render as the JSON literal null (spec §4.2, §9 S5).
func (t *Transcoder) transcodeFloat() error {
	if len(t.in)-t.inIdx < 8 {
		return t.fail(ErrSizeExceedsInput)
	}
	d := readDoubleLE(t.in[t.inIdx : t.inIdx+8])
	t.inIdx += 8

	if math.IsNaN(d) || math.IsInf(d, 0) {
		return t.write(jsonNull)
	}
	return t.appendFormatted(maxDoubleWidth, func(dst []byte) []byte {
		return formatDouble(dst, d)
	})
}

// transcodeDate handles DATE (tag 9): a little-endian int64 of Unix
// milliseconds, rendered as a quoted ISO-8601 UTC string.
func (t *Transcoder) transcodeDate() error {
	if len(t.in)-t.inIdx < 8 {
		return t.fail(ErrSizeExceedsInput)
	}
	ms := readInt64LE(t.in[t.inIdx : t.inIdx+8])
	t.inIdx += 8

	if err := t.writeByte('"'); err != nil {
		return err
	}
	if err := t.appendFormatted(dateLen, func(dst []byte) []byte {
		return formatDate(dst, ms)
	}); err != nil {
		return err
	}
	return t.writeByte('"')
}

// transcodeBool handles BOOLEAN (tag 8): a single byte, 0x00 or 0x01.
func (t *Transcoder) transcodeBool() error {
	if t.inIdx >= len(t.in) {
		return t.fail(ErrIllegalBoolean)
	}
	b := t.in[t.inIdx]
	t.inIdx++

	switch b {
	case 0x00:
		return t.write(jsonFalse)
	case 0x01:
		return t.write(jsonTrue)
	default:
		return t.fail(ErrIllegalBoolean)
	}
}

// appendFormatted ensures room for the formatter's worst-case width, then
// calls f to append the actual (typically shorter) formatted bytes onto
// t.out, advancing t.outIdx by however much f actually wrote.
func (t *Transcoder) appendFormatted(maxWidth int, f func(dst []byte) []byte) error {
	if err := t.ensureSpace(maxWidth); err != nil {
		return err
	}
	t.out = f(t.out[:t.outIdx])
	t.outIdx = len(t.out)
	return nil
}
