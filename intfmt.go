package bsonjson

// digitPairs is the classic two-digit decimal lookup table: digitPairs[2*v]
// and digitPairs[2*v+1] are the decimal digits of v for 0 <= v <= 99.
const digitPairs = "00010203040506070809" +
	"10111213141516171819" +
	"20212223242526272829" +
	"30313233343536373839" +
	"40414243444546474849" +
	"50515253545556575859" +
	"60616263646566676869" +
	"70717273747576777879" +
	"80818283848586878889" +
	"90919293949596979899"

// formatInt64 appends the decimal representation of v to dst and returns
// the extended slice. Matches spec's two-digit-table approach: it peels
// off two decimal digits at a time from the low end, writing backwards
// into a small scratch array, then copies forward.
func formatInt64(dst []byte, v int64) []byte {
	if v == 0 {
		return append(dst, '0')
	}

	var buf [20]byte // room for the up-to-19 digits of a 64-bit magnitude; the sign is appended separately
	i := len(buf)

	neg := v < 0
	// Avoid overflow on math.MinInt64 by working in uint64 from here on.
	u := uint64(v)
	if neg {
		u = uint64(-v)
	}

	for u >= 100 {
		q := u / 100
		r := u - q*100
		i -= 2
		buf[i] = digitPairs[2*r]
		buf[i+1] = digitPairs[2*r+1]
		u = q
	}
	if u >= 10 {
		i -= 2
		buf[i] = digitPairs[2*u]
		buf[i+1] = digitPairs[2*u+1]
	} else {
		i--
		buf[i] = byte('0' + u)
	}

	if neg {
		dst = append(dst, '-')
	}
	return append(dst, buf[i:]...)
}

// formatInt32 appends the decimal representation of v to dst.
func formatInt32(dst []byte, v int32) []byte {
	return formatInt64(dst, int64(v))
}

// digitCountOfSmallPositive returns the number of decimal digits of v, for
// v >= 0. Used by the Transcoder to skip array index keys (which are
// always "0", "1", "2", ... in ascending order) without reading them byte
// by byte.
func digitCountOfSmallPositive(v int) int {
	switch {
	case v < 10:
		return 1
	case v < 100:
		return 2
	case v < 1000:
		return 3
	case v < 10000:
		return 4
	case v < 100000:
		return 5
	case v < 1000000:
		return 6
	case v < 10000000:
		return 7
	case v < 100000000:
		return 8
	case v < 1000000000:
		return 9
	default:
		// v = (v/1e9)*1e9 + remainder, and the remainder always occupies
		// exactly 9 digits (zero-padded), so the total digit count is
		// always 9 more than the digit count of the leading part.
		return 9 + digitCountOfSmallPositive(v/1000000000)
	}
}
