package bsonjson

import (
	"encoding/hex"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justdoinc/bson-to-json/internal/bsonfixture"
)

func transcode(t *testing.T, doc bsonfixture.Doc, opts Options) string {
	t.Helper()
	raw, err := doc.Encode()
	require.NoError(t, err, "encoding fixture %v", doc)
	got, err := Transcode(raw, opts)
	require.NoError(t, err, "transcoding fixture %v", doc)
	return string(got)
}

// S1: empty object.
func TestTranscodeEmptyObject(t *testing.T) {
	got := transcode(t, bsonfixture.Map{}, Options{})
	assert.Equal(t, "{}", got)
}

// S2: single int field.
func TestTranscodeSingleInt(t *testing.T) {
	got := transcode(t, bsonfixture.Map{"n": bsonfixture.Int32(42)}, Options{})
	assert.Equal(t, `{"n":42}`, got)
}

// S3: string containing a tab and a newline.
func TestTranscodeStringWithControlChars(t *testing.T) {
	got := transcode(t, bsonfixture.Map{"s": bsonfixture.String("a\tb\nc")}, Options{})
	assert.Equal(t, `{"s":"a\tb\nc"}`, got)
}

// S4: boolean and null inside a nested array.
func TestTranscodeBoolNullNestedArray(t *testing.T) {
	doc := bsonfixture.Slice{
		{Key: "flags", Val: bsonfixture.Array{bsonfixture.Bool(true), bsonfixture.Bool(false), bsonfixture.Null{}}},
	}
	got := transcode(t, doc, Options{})
	assert.Equal(t, `{"flags":[true,false,null]}`, got)
}

// S5: NaN and Infinity doubles both render as the JSON literal null.
func TestTranscodeNonFiniteDoubles(t *testing.T) {
	doc := bsonfixture.Slice{
		{Key: "a", Val: bsonfixture.Float(math.NaN())},
		{Key: "b", Val: bsonfixture.Float(math.Inf(1))},
		{Key: "c", Val: bsonfixture.Float(math.Inf(-1))},
	}
	got := transcode(t, doc, Options{})
	assert.Equal(t, `{"a":null,"b":null,"c":null}`, got)
}

// S6: ObjectId renders as a 24-character lowercase hex string.
func TestTranscodeObjectID(t *testing.T) {
	oid := bsonfixture.ObjectId{0x5f, 0x1d, 0x7b, 0x00, 0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0}
	got := transcode(t, bsonfixture.Map{"_id": oid}, Options{})
	assert.Equal(t, `{"_id":"`+hex.EncodeToString(oid)+`"}`, got)
}

// S7: UTC datetime renders as a quoted ISO-8601 string.
func TestTranscodeDate(t *testing.T) {
	d := bsonfixture.UTCDateTime(1700000000000)
	got := transcode(t, bsonfixture.Map{"at": d}, Options{})
	assert.Equal(t, `{"at":"2023-11-14T22:13:20.000Z"}`, got)
}

// S8: PAUSE-mode streaming and REALLOC transcoding of the same document
// produce byte-identical concatenated output, across a range of chunk
// sizes including several too small to hold a single formatted value.
func TestTranscodeStreamingMatchesRealloc(t *testing.T) {
	doc := bsonfixture.Map{
		"name":   bsonfixture.String("widget"),
		"count":  bsonfixture.Int64(123456789012),
		"price":  bsonfixture.Float(19.99),
		"active": bsonfixture.Bool(true),
		"tags":   bsonfixture.Array{bsonfixture.String("a"), bsonfixture.String("b"), bsonfixture.String("c")},
	}
	raw, err := doc.Encode()
	require.NoError(t, err)

	want, err := Transcode(raw, Options{})
	require.NoError(t, err)

	for _, chunkSize := range []int{1, 4, 16, 64} {
		s, err := NewStream(raw, Options{ChunkSize: chunkSize})
		require.NoError(t, err)

		var got []byte
		for {
			chunk, done, err := s.Next()
			require.NoError(t, err)
			got = append(got, chunk...)
			if done {
				break
			}
		}
		require.NoError(t, s.Close())
		assert.Equal(t, string(want), string(got), "chunkSize=%d", chunkSize)
	}
}

// S9: a corrupted size prefix is reported as an error, not a panic.
func TestTranscodeCorruptedSize(t *testing.T) {
	raw := []byte{0xFF, 0xFF, 0xFF, 0x7F, 0x00}
	_, err := Transcode(raw, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSizeExceedsInput))
}

func TestTranscodeTooShort(t *testing.T) {
	_, err := Transcode([]byte{1, 2, 3}, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSizeTooSmall))
}

func TestTranscodeTopLevelArray(t *testing.T) {
	doc := bsonfixture.Slice{
		{Key: "0", Val: bsonfixture.Int32(1)},
		{Key: "1", Val: bsonfixture.Int32(2)},
		{Key: "2", Val: bsonfixture.Int32(3)},
	}
	raw, err := doc.Encode()
	require.NoError(t, err)
	got, err := Transcode(raw, Options{IsArray: true})
	require.NoError(t, err)
	assert.Equal(t, "[1,2,3]", string(got))
}

func TestTranscodeUndefinedSuppressesComma(t *testing.T) {
	doc := bsonfixture.Slice{
		{Key: "a", Val: bsonfixture.Int32(1)},
		{Key: "b", Val: bsonfixture.Undefined{}},
		{Key: "c", Val: bsonfixture.Int32(2)},
	}
	got := transcode(t, doc, Options{})
	assert.Equal(t, `{"a":1,"c":2}`, got)
}

func TestTranscodeIncompatibleTypeFails(t *testing.T) {
	doc := bsonfixture.Map{"r": bsonfixture.Regexp{Pattern: "^a", Options: "i"}}
	raw, err := doc.Encode()
	require.NoError(t, err)
	_, err = Transcode(raw, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompatibleType))
}

func TestTranscodeDeepNestingFails(t *testing.T) {
	var doc bsonfixture.Doc = bsonfixture.Map{"v": bsonfixture.Int32(1)}
	for i := 0; i < 250; i++ {
		doc = bsonfixture.Map{"n": doc}
	}
	raw, err := doc.Encode()
	require.NoError(t, err)
	_, err = Transcode(raw, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errMaxDepthExceeded))
}

// A nested document's own size field, read naively, can be valid against
// the whole input buffer while still claiming bytes that belong to the
// enclosing container's trailing structure. Rejected as ErrSizeExceedsInput
// once the claim is checked against the enclosing container's remaining
// length instead of the whole buffer.
func TestTranscodeNestedSizeBoundedByEnclosingContainer(t *testing.T) {
	raw := []byte{
		0x09, 0x00, 0x00, 0x00, // outer size = 9
		0x03,      // OBJECT
		'a', 0x00, // key "a"
		0x0D, 0x00, 0x00, 0x00, // nested size = 13, would reach past outer's docEnd
		0x10, // INT32 tag
		'b', 'b', 'b', 'b', 'b', 'b', 'b', 'b', // unterminated key
	}
	_, err := Transcode(raw, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSizeExceedsInput))
}

// A key with no null terminator before its enclosing container's own
// docEnd is a structural error, not a slice-bounds panic — even when
// unrelated bytes belonging to an outer sibling happen to contain a zero
// further along in the buffer.
func TestTranscodeUnterminatedKeyFails(t *testing.T) {
	raw := []byte{
		0x18, 0x00, 0x00, 0x00, // outer size = 24
		0x03,      // OBJECT
		'a', 0x00, // key "a"
		0x0A, 0x00, 0x00, 0x00, // nested size = 10, docEnd = 17
		0x10,                          // INT32 tag
		'k', 'k', 'k', 'k', 'k', // unterminated key, fills nested doc to its own docEnd
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, // bytes belonging to the outer container, unrelated
		0x00, // outer's own terminator
	}
	_, err := Transcode(raw, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSizeExceedsInput))
}

func TestTranscodeFixedBufferTooSmallFails(t *testing.T) {
	doc := bsonfixture.Map{"s": bsonfixture.String("this string is far too long for the buffer")}
	raw, err := doc.Encode()
	require.NoError(t, err)

	_, err = Transcode(raw, Options{FixedBuffer: make([]byte, 4)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAllocationFailure))
}
