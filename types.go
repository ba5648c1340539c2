package bsonjson

import "github.com/sirupsen/logrus"

// Wire type tags, as laid out in the BSON spec. These are unexported;
// callers outside this package recognize "unsupported type" failures
// through ErrIncompatibleType and ErrUnknownType.
const (
	tagFloat       = 0x01
	tagString      = 0x02
	tagObject      = 0x03
	tagArray       = 0x04
	tagBinary      = 0x05
	tagUndefined   = 0x06
	tagObjectID    = 0x07
	tagBool        = 0x08
	tagDate        = 0x09
	tagNull        = 0x0A
	tagRegexp      = 0x0B
	tagDBPointer   = 0x0C
	tagJavascript  = 0x0D
	tagSymbol      = 0x0E
	tagJSScope     = 0x0F
	tagInt32       = 0x10
	tagTimestamp   = 0x11
	tagInt64       = 0x12
	tagDecimal128  = 0x13
	tagMinKey      = 0xFF
	tagMaxKey      = 0x7F
	tagEndOfObject = 0x00
)

// Mode selects the OutputSink growth policy.
type Mode int

const (
	// ModeRealloc grows the output buffer on demand and returns once the
	// whole document has been transcoded.
	ModeRealloc Mode = iota
	// ModePause hands fixed-size chunks to a consumer, blocking the
	// producer between chunks.
	ModePause
)

// Options configures a single Transcode/NewStream call.
type Options struct {
	// IsArray renders the top-level container as a JSON array instead of
	// an object.
	IsArray bool
	// ChunkSize is the initial output buffer capacity. Zero chooses a
	// default derived from len(input).
	ChunkSize int
	// FixedBuffer, if non-nil, backs the output and disables growth, in
	// both Transcode and NewStream (where it is reused for every chunk);
	// running out of room in it is a hard ErrAllocationFailure.
	FixedBuffer []byte
	// Logger receives Debug/Warn diagnostics. Defaults to a
	// package-level logger discarding below Warn.
	Logger *logrus.Logger
}

func (o Options) logger() *logrus.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return defaultLogger
}
