package bsonjson

import "encoding/hex"

// objectIDLen is the wire size of a BSON ObjectId.
const objectIDLen = 12

// objectIDHexLen is the length of the formatted hex string.
const objectIDHexLen = objectIDLen * 2

// formatObjectID appends the 24-character lowercase hex rendering of a
// 12-byte ObjectId to dst. hex.Encode already produces exactly the
// low-nibble-second, no-delimiter, lowercase form the spec calls for, so
// there is nothing to hand-roll here.
func formatObjectID(dst []byte, oid []byte) []byte {
	n := len(dst)
	dst = append(dst, make([]byte, objectIDHexLen)...)
	hex.Encode(dst[n:], oid)
	return dst
}
