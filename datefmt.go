package bsonjson

import "time"

// dateLen is the fixed width of the ISO-8601 form YYYY-MM-DDTHH:MM:SS.mmmZ.
const dateLen = 24

// formatDate appends the ISO-8601 UTC millisecond-precision rendering of
// msSinceEpoch to dst, bit-exact with JavaScript's Date.prototype.toISOString
// for years within 0000-9999. Calendar math (leap years, month lengths) is
// delegated to time.Time rather than hand-rolled, since stdlib time is the
// correct tool here and no pack library improves on it; only the final
// field formatting is done manually because time.Format's reference-layout
// machinery doesn't expose sub-millisecond truncation or negative-year
// zero-padding the way this spec requires.
func formatDate(dst []byte, msSinceEpoch int64) []byte {
	t := time.UnixMilli(msSinceEpoch).UTC()

	year, month, day := t.Date()
	hour, minute, sec := t.Clock()
	ms := t.Nanosecond() / int(time.Millisecond)

	n := len(dst)
	dst = append(dst, make([]byte, dateLen)...)
	b := dst[n:]

	writePadded(b[0:4], year, 4)
	b[4] = '-'
	writePadded(b[5:7], int(month), 2)
	b[7] = '-'
	writePadded(b[8:10], day, 2)
	b[10] = 'T'
	writePadded(b[11:13], hour, 2)
	b[13] = ':'
	writePadded(b[14:16], minute, 2)
	b[16] = ':'
	writePadded(b[17:19], sec, 2)
	b[19] = '.'
	writePadded(b[20:23], ms, 3)
	b[23] = 'Z'

	return dst
}

// writePadded writes the decimal digits of v into buf (len(buf) == width),
// zero-padded on the left. v is assumed non-negative and to fit in width
// digits (true for all calendar fields formatDate passes in, including
// four-digit years per spec's documented 0000-9999 range).
func writePadded(buf []byte, v int, width int) {
	for i := width - 1; i >= 0; i-- {
		buf[i] = byte('0' + v%10)
		v /= 10
	}
}
