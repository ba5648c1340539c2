package bsonjson

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// maxDepth bounds container nesting. Not part of the original stable
// error-message set, but guards the same kind of pathological input the
// teacher's maxDocLen constant in decode.go guards against.
const maxDepth = 200

// Transcoder walks one BSON document exactly once, producing JSON bytes.
// A Transcoder instance is used for a single transcode and then discarded.
type Transcoder struct {
	in    []byte
	inIdx int

	out    []byte
	outIdx int

	mode        Mode
	fixedBuffer bool
	err         error
	depth       int
	log         *logrus.Entry

	// PAUSE-mode synchronization (§5). Unused in ModeRealloc.
	mu           sync.Mutex
	cond         *sync.Cond
	producerDone bool
}

// newTranscoder allocates the initial output buffer, or adopts
// opts.FixedBuffer as it. It does not validate opts.
func newTranscoder(input []byte, opts Options, mode Mode) (*Transcoder, error) {
	t := &Transcoder{
		in:   input,
		mode: mode,
		log:  opts.logger().WithField("component", "transcoder"),
	}

	if opts.FixedBuffer != nil {
		t.out = opts.FixedBuffer[:0]
		t.fixedBuffer = true
	} else {
		cap0 := opts.ChunkSize
		if cap0 <= 0 {
			cap0 = len(input) * 10 / 4
			if cap0 < 16 {
				cap0 = 16
			}
		}
		t.out = make([]byte, 0, cap0)
	}

	return t, nil
}

// Transcode converts a single BSON document to JSON in REALLOC mode,
// returning the finished buffer or the first error encountered.
func Transcode(input []byte, opts Options) ([]byte, error) {
	t, err := newTranscoder(input, opts, ModeRealloc)
	if err != nil {
		return nil, err
	}
	if err := t.run(opts.IsArray); err != nil {
		return nil, err
	}
	return t.out[:t.outIdx], nil
}

// run performs the top-level validation and walk. isArray is read here
// (rather than stashed on Transcoder) so the same struct literal works
// whether called from Transcode or from a Stream's producer goroutine.
func (t *Transcoder) run(isArray bool) error {
	if t.mode == ModePause {
		// The sentinel handshake itself (t.outIdx = cap(t.out)+1) already
		// happened synchronously in NewStream, before this goroutine was
		// started, so there's no race with the consumer's first Next call
		// over who sets it. All that's left here is waiting for that
		// first pull.
		t.mu.Lock()
		for t.outIdx != 0 {
			t.cond.Wait()
		}
		t.mu.Unlock()
	}

	err := t.transcodeTop(isArray)

	if t.mode == ModePause {
		t.mu.Lock()
		t.producerDone = true
		if err != nil {
			t.err = err
		}
		t.cond.Signal()
		t.mu.Unlock()
	}

	return err
}

// transcodeTop validates the top-level length prefix and trailing zero,
// then dispatches into the recursive walk.
func (t *Transcoder) transcodeTop(isArray bool) error {
	if len(t.in) < 5 {
		return t.fail(ErrSizeTooSmall)
	}
	size := readInt32LE(t.in[0:4])
	if size < 5 {
		return t.fail(ErrSizeTooSmall)
	}
	if int(size) > len(t.in) {
		return t.fail(ErrSizeExceedsInput)
	}
	if t.in[size-1] != 0x00 {
		return t.fail(ErrInvalidArrayTerminator)
	}

	return t.transcodeObject(isArray, int(size))
}

// fail sets the sticky error (first one wins) and returns it.
func (t *Transcoder) fail(err error) error {
	if t.err == nil {
		t.err = err
		t.log.WithError(err).Warn("bsonjson: transcode failed")
	}
	return t.err
}

// transcodeObject walks one BSON document/array starting at t.inIdx,
// emitting the matching JSON container. isArray selects '['/']' framing
// and numeric-index key skipping over '{'/'}' framing and escaped string
// keys. limit is the byte offset this container's enclosing container (or,
// at the top level, the top-level size prefix) already committed to: a
// nested document's own size is validated against limit rather than
// len(t.in), so a corrupted nested size field can't claim bytes that
// structurally belong to an outer sibling or to the enclosing terminator.
func (t *Transcoder) transcodeObject(isArray bool, limit int) error {
	t.depth++
	if t.depth > maxDepth {
		return t.fail(errMaxDepthExceeded)
	}
	if t.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		t.log.WithField("depth", t.depth).WithField("isArray", isArray).Debug("bsonjson: entering container")
		defer t.log.WithField("depth", t.depth).Debug("bsonjson: leaving container")
	}
	defer func() { t.depth-- }()

	if limit-t.inIdx < 4 {
		return t.fail(ErrSizeExceedsInput)
	}
	size := readInt32LE(t.in[t.inIdx : t.inIdx+4])
	if size < 5 {
		return t.fail(ErrSizeTooSmall)
	}
	if int(size) > limit-t.inIdx {
		return t.fail(ErrSizeExceedsInput)
	}
	docEnd := t.inIdx + int(size)
	t.inIdx += 4

	if err := t.writeByte(openBrace(isArray)); err != nil {
		return err
	}

	wroteAny := false
	arrIdx := 0
	for {
		if t.inIdx >= docEnd {
			return t.fail(ErrSizeExceedsInput)
		}
		elemType := t.in[t.inIdx]
		t.inIdx++

		if elemType == tagEndOfObject {
			if t.inIdx != docEnd {
				return t.fail(ErrInvalidArrayTerminator)
			}
			return t.writeByte(closeBrace(isArray))
		}

		// UNDEFINED contributes no output (and, per §9's resolution,
		// no comma either) — decide the comma based on whether this
		// element is about to actually write something, not on how many
		// elements have been visited so far.
		producesOutput := elemType != tagUndefined
		if producesOutput {
			if wroteAny {
				if err := t.writeByte(','); err != nil {
					return err
				}
			}
		}

		if isArray {
			// Array keys are "0", "1", "2", ... in order; skip the digits
			// plus the null terminator without reading them.
			skip := digitCountOfSmallPositive(arrIdx) + 1
			if t.inIdx+skip > docEnd {
				return t.fail(ErrSizeExceedsInput)
			}
			if in := t.in[t.inIdx+skip-1]; in != 0x00 {
				return t.fail(ErrInvalidArrayTerminator)
			}
			t.inIdx += skip
			arrIdx++
		} else if !producesOutput {
			// UNDEFINED writes nothing, not even its key: step over the
			// key bytes and their null terminator.
			end := t.inIdx
			for end < docEnd && t.in[end] != 0x00 {
				end++
			}
			if end >= docEnd {
				return t.fail(ErrSizeExceedsInput)
			}
			t.inIdx = end + 1
		} else {
			if err := t.writeByte('"'); err != nil {
				return err
			}
			if err := t.escapeCString(t.inIdx, docEnd); err != nil {
				return err
			}
			t.inIdx++ // consume the trailing null escapeCString stopped at
			if err := t.write([]byte{'"', ':'}); err != nil {
				return err
			}
		}

		if err := t.transcodeElement(elemType, docEnd); err != nil {
			return err
		}

		if producesOutput {
			wroteAny = true
		}
	}
}

func openBrace(isArray bool) byte {
	if isArray {
		return '['
	}
	return '{'
}

func closeBrace(isArray bool) byte {
	if isArray {
		return ']'
	}
	return '}'
}
