package bsonjson

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatInt64(t *testing.T) {
	cases := []int64{
		0, 1, -1, 9, 10, 99, 100, -100, 12345,
		2147483647, -2147483648,
		9223372036854775807, -9223372036854775808,
	}
	for _, v := range cases {
		got := string(formatInt64(nil, v))
		assert.Equal(t, strconv.FormatInt(v, 10), got)
	}
}

func TestFormatInt32(t *testing.T) {
	cases := []int32{0, 1, -1, 99, -99, 2147483647, -2147483648}
	for _, v := range cases {
		got := string(formatInt32(nil, v))
		assert.Equal(t, strconv.FormatInt(int64(v), 10), got)
	}
}

func TestFormatInt64AppendsToExistingSlice(t *testing.T) {
	dst := []byte("x:")
	got := formatInt64(dst, 42)
	assert.Equal(t, "x:42", string(got))
}

func TestDigitCountOfSmallPositive(t *testing.T) {
	cases := map[int]int{
		0: 1, 9: 1, 10: 2, 99: 2, 100: 3, 999999999: 9, 1000000000: 10,
		9999999999: 10, 10000000000: 11, 2147483647: 10,
	}
	for v, want := range cases {
		assert.Equal(t, want, digitCountOfSmallPositive(v), "v=%d", v)
	}
}
