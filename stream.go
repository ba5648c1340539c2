package bsonjson

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// Stream is the consumer-facing handle to a ModePause transcode: a
// producer goroutine walks the BSON input and blocks whenever the output
// buffer fills, waiting for Next to drain it.
type Stream struct {
	t  *Transcoder
	eg *errgroup.Group
}

// NewStream starts transcoding input in PAUSE mode and returns a Stream
// the caller drains with repeated calls to Next.
func NewStream(input []byte, opts Options) (*Stream, error) {
	t, err := newTranscoder(input, opts, ModePause)
	if err != nil {
		return nil, err
	}
	t.cond = sync.NewCond(&t.mu)

	// Perform the initial handshake synchronously, before the producer
	// goroutine is even started: mark the buffer "not yet produced" so
	// that whichever of Next or the producer goroutine actually runs
	// first, the sentinel is already in place rather than being a race
	// between the two to set it.
	t.mu.Lock()
	t.outIdx = cap(t.out) + 1
	t.mu.Unlock()

	eg := &errgroup.Group{}
	eg.Go(func() error {
		return t.run(opts.IsArray)
	})

	return &Stream{t: t, eg: eg}, nil
}

// Next returns the next chunk of JSON bytes. done is true once the
// producer has finished and this was the final (possibly empty) chunk.
// The returned slice aliases the Transcoder's internal buffer and is only
// valid until the next call to Next.
func (s *Stream) Next() (chunk []byte, done bool, err error) {
	t := s.t
	t.mu.Lock()
	defer t.mu.Unlock()

	// Declare the previous chunk drained and wake the producer — the
	// "consuming a chunk" half of the §5 protocol.
	t.outIdx = 0
	t.cond.Signal()

	for t.outIdx == 0 && !t.producerDone {
		t.cond.Wait()
	}

	if t.err != nil {
		return nil, true, t.err
	}

	n := t.outIdx
	return t.out[:n], t.producerDone, nil
}

// Close waits for the producer goroutine to finish. There is no
// cancellation in the protocol: a producer waiting for its first pull or
// for a full chunk to be drained only continues when Next is called, so
// Close on a Stream abandoned before done blocks indefinitely.
func (s *Stream) Close() error {
	return s.eg.Wait()
}
