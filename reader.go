package bsonjson

import (
	"encoding/binary"
	"math"
)

// readInt32LE reads a little-endian int32 from b[0:4]. Callers are
// responsible for ensuring len(b) >= 4 — the Transcoder enforces this via
// the structural size checks in spec §4.8, not by bounds-checking here.
func readInt32LE(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

// readInt64LE reads a little-endian int64 from b[0:8].
func readInt64LE(b []byte) int64 {
	return int64(binary.LittleEndian.Uint64(b))
}

// readDoubleLE reads a little-endian IEEE-754 binary64 from b[0:8].
func readDoubleLE(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
