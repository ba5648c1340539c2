package bsonjson

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justdoinc/bson-to-json/internal/bsonfixture"
)

func TestStreamPropagatesProducerError(t *testing.T) {
	s, err := NewStream([]byte{1, 2, 3}, Options{})
	require.NoError(t, err)

	_, done, err := s.Next()
	require.Error(t, err)
	assert.True(t, done)
	assert.True(t, errors.Is(err, ErrSizeTooSmall))

	require.Error(t, s.Close())
}

func TestStreamFixedBufferReusesBackingArray(t *testing.T) {
	doc := bsonfixture.Map{
		"a": bsonfixture.Int32(1),
		"b": bsonfixture.Int32(2),
		"c": bsonfixture.Int32(3),
	}
	raw, err := doc.Encode()
	require.NoError(t, err, "encoding fixture %v", doc)

	// 16 bytes cannot hold the 19-byte output, so it arrives in several
	// chunks, each of which must live in buf's backing array.
	buf := make([]byte, 0, 16)
	s, err := NewStream(raw, Options{FixedBuffer: buf})
	require.NoError(t, err)

	var got []byte
	chunks := 0
	for {
		chunk, done, err := s.Next()
		require.NoError(t, err)
		if len(chunk) > 0 {
			chunks++
			assert.Same(t, &buf[:1][0], &chunk[0])
		}
		got = append(got, chunk...)
		if done {
			break
		}
	}
	require.NoError(t, s.Close())
	assert.Greater(t, chunks, 1)

	want, err := Transcode(raw, Options{})
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestStreamEmptyDocumentCompletesImmediately(t *testing.T) {
	raw, err := bsonfixture.Map{}.Encode()
	require.NoError(t, err)

	s, err := NewStream(raw, Options{})
	require.NoError(t, err)

	chunk, done, err := s.Next()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(chunk))
	assert.True(t, done)
	require.NoError(t, s.Close())
}
