// Copyright 2013 Seth Bunce. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bsonfixture builds well-formed BSON documents programmatically,
// for use as test input to the transcoder. It is adapted from the BSON
// encoder this module was originally built around: transcoding needs a
// source of real BSON bytes covering every wire tag, including the ones
// JSON cannot represent, and hand-written byte literals for that don't
// read well in a test file.
package bsonfixture

// Wire type tags. Mirrors bsonjson's own tag constants; kept separate
// since this package has no dependency on the parent module and exists
// solely to produce bytes for it.
const (
	tagFloat       = 0x01
	tagString      = 0x02
	tagDocument    = 0x03
	tagArray       = 0x04
	tagBinary      = 0x05
	tagUndefined   = 0x06
	tagObjectID    = 0x07
	tagBool        = 0x08
	tagUTCDateTime = 0x09
	tagNull        = 0x0A
	tagRegexp      = 0x0B
	tagDBPointer   = 0x0C
	tagJavascript  = 0x0D
	tagSymbol      = 0x0E
	tagJSScope     = 0x0F
	tagInt32       = 0x10
	tagTimestamp   = 0x11
	tagInt64       = 0x12
	tagMinKey      = 0xFF
	tagMaxKey      = 0x7F
)

// Float is a BSON double.
type Float float64

// String is a BSON UTF-8 string.
type String string

// Array is a BSON array; elements may be any fixture type or a plain
// Go bool/int/int64/float64/string/time.Time/[]byte.
type Array []interface{}

// Binary is BSON binary data, always encoded as generic subtype 0x00.
type Binary []byte

// Undefined is the deprecated BSON undefined value.
type Undefined struct{}

// ObjectId is a 12-byte BSON ObjectId. Build one with NewObjectId.
type ObjectId []byte

// Bool is a BSON boolean.
type Bool bool

// UTCDateTime is milliseconds since the Unix epoch.
type UTCDateTime int64

// Null is the BSON null value.
type Null struct{}

// Regexp is a BSON regular expression, unsupported by JSON output.
type Regexp struct {
	Pattern string
	Options string
}

// DBPointer is the deprecated BSON DBPointer type, unsupported by JSON
// output.
type DBPointer struct {
	Name     string
	ObjectId ObjectId
}

// Javascript is BSON JavaScript code, unsupported by JSON output.
type Javascript string

// Symbol is a BSON symbol, unsupported by JSON output.
type Symbol string

// JavascriptScope is BSON JavaScript code with scope, unsupported by
// JSON output. Scope must be a Map.
type JavascriptScope struct {
	Javascript string
	Scope      Map
}

// Int32 is a BSON 32-bit integer.
type Int32 int32

// Timestamp is an internal MongoDB replication timestamp, unsupported by
// JSON output.
type Timestamp int64

// Int64 is a BSON 64-bit integer.
type Int64 int64

// MinKey is the BSON min-key sentinel, unsupported by JSON output.
type MinKey struct{}

// MaxKey is the BSON max-key sentinel, unsupported by JSON output.
type MaxKey struct{}

// Doc is satisfied by Map and Slice, the two document fixture types.
type Doc interface {
	Encode() (BSON, error)
	MustEncode() BSON
}

// Map is an unordered BSON document fixture.
type Map map[string]interface{}

// Slice is an ordered BSON document fixture, for tests that care about
// key order (e.g. the transcoder's comma placement).
type Slice []Pair

// Pair is one element of a Slice.
type Pair struct {
	Key string
	Val interface{}
}

// BSON is a raw, already-encoded document.
type BSON []byte

// Encode returns the document unchanged.
func (b BSON) Encode() (BSON, error) { return b, nil }

// MustEncode returns the document unchanged.
func (b BSON) MustEncode() BSON { return b }

// Encode returns the BSON-encoded Map.
func (m Map) Encode() (BSON, error) {
	return encodeMap("", m)
}

// MustEncode encodes the Map, panicking on error. Fixture construction
// errors (a malformed ObjectId, an unencodable Go value) are programmer
// mistakes, not runtime conditions a test needs to handle.
func (m Map) MustEncode() BSON {
	b, err := encodeMap("", m)
	if err != nil {
		panic(err)
	}
	return b
}

// Encode returns the BSON-encoded Slice.
func (s Slice) Encode() (BSON, error) {
	return encodeSlice("", s)
}

// MustEncode encodes the Slice, panicking on error.
func (s Slice) MustEncode() BSON {
	b, err := encodeSlice("", s)
	if err != nil {
		panic(err)
	}
	return b
}
