package stream

import (
	"encoding/json" // JSON encoding of frame payloads
	"io"            // Writer interface for the relay side
)

// Wire framing constants shared by the relay and the consumer
const (
	dataPrefix = "data: "  // Every frame line starts with this prefix
	doneToken  = "[DONE]"  // Literal payload signalling normal stream end
	frameTail  = "\n\n"    // Every frame is terminated by a blank line
)

// Payload is the JSON body of a single data: frame.
type Payload struct {
	Content string `json:"content,omitempty"` // Fragment appended to the in-progress reply
	Error   string `json:"error,omitempty"`   // User-facing error text
}

// flusher is implemented by response writers that can push buffered bytes.
type flusher interface {
	Flush()
}

// writeFrame writes one data: frame and flushes it if the writer supports it
func writeFrame(w io.Writer, payload string) error {
	if _, err := io.WriteString(w, dataPrefix+payload+frameTail); err != nil {
		return err // Propagate the write failure
	}
	if f, ok := w.(flusher); ok {
		f.Flush() // Push the frame out immediately
	}
	return nil
}

// WriteContent writes a content fragment frame.
func WriteContent(w io.Writer, content string) error {
	b, err := json.Marshal(Payload{Content: content}) // Encode the fragment
	if err != nil {
		return err // Encoding failure
	}
	return writeFrame(w, string(b))
}

// WriteError writes an error frame carrying user-facing error text.
func WriteError(w io.Writer, msg string) error {
	b, err := json.Marshal(Payload{Error: msg}) // Encode the error text
	if err != nil {
		return err // Encoding failure
	}
	return writeFrame(w, string(b))
}

// WriteDone writes the terminal [DONE] frame.
func WriteDone(w io.Writer) error {
	return writeFrame(w, doneToken)
}
