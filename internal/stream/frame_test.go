package stream

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteContentFraming(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteContent(&buf, "hello"))
	assert.Equal(t, "data: {\"content\":\"hello\"}\n\n", buf.String())
}

func TestWriteErrorFraming(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteError(&buf, "boom"))
	assert.Equal(t, "data: {\"error\":\"boom\"}\n\n", buf.String())
}

func TestWriteDoneFraming(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDone(&buf))
	assert.Equal(t, "data: [DONE]\n\n", buf.String())
}

// flushRecorder counts flushes so the relay's frame-by-frame delivery is
// observable.
type flushRecorder struct {
	bytes.Buffer
	flushes int
}

func (f *flushRecorder) Flush() { f.flushes++ }

func TestWriteFlushesPerFrame(t *testing.T) {
	var rec flushRecorder
	require.NoError(t, WriteContent(&rec, "a"))
	require.NoError(t, WriteContent(&rec, "b"))
	require.NoError(t, WriteDone(&rec))
	assert.Equal(t, 3, rec.flushes)
}

func TestWriterConsumerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteContent(&buf, "one "))
	require.NoError(t, WriteContent(&buf, "two"))
	require.NoError(t, WriteDone(&buf))
	got, err := Consume(strings.NewReader(buf.String()), nil)
	require.NoError(t, err)
	assert.Equal(t, "one two", got)
}
