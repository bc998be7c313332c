package stream

import (
	"bytes"         // Splitting buffered bytes on newlines
	"encoding/json" // Parsing frame payloads
	"errors"        // Error payloads become plain errors
	"io"            // Reader interface for the client side
	"strings"       // Accumulating the reply text
)

// Consume reads a line-framed chat stream from r until the [DONE] token or the
// end of the stream. Content fragments are appended to an accumulating reply
// in arrival order; after each fragment onUpdate (if non-nil) is called with
// the full text so far. Frames whose payload is not valid JSON are skipped.
// An error payload terminates the read and is returned as an error together
// with whatever text accumulated before it.
//
// Frames may be split arbitrarily across reads, including mid-line and
// mid-rune: bytes are buffered until a full line arrives, and only complete
// lines are decoded as text.
func Consume(r io.Reader, onUpdate func(string)) (string, error) {
	var reply strings.Builder    // Accumulated reply text
	var pending []byte           // Trailing partial line carried to the next read
	buf := make([]byte, 4096)    // Read buffer
	for {
		n, err := r.Read(buf)
		if n > 0 {
			pending = append(pending, buf[:n]...) // Buffer the new bytes
			// Process every complete line; keep the remainder for the next read
			for {
				i := bytes.IndexByte(pending, '\n')
				if i < 0 {
					break // No complete line buffered yet
				}
				line := string(bytes.TrimRight(pending[:i], "\r")) // Complete line, CR stripped
				pending = pending[i+1:]                            // Drop the consumed line
				done, perr := consumeLine(line, &reply, onUpdate)
				if perr != nil {
					return reply.String(), perr // Error payload ends the stream
				}
				if done {
					return reply.String(), nil // [DONE] ends the stream immediately
				}
			}
		}
		if err == io.EOF {
			return reply.String(), nil // Natural end of stream
		}
		if err != nil {
			return reply.String(), err // Read failure aborts the loop
		}
	}
}

// consumeLine handles one complete line of the stream. It reports whether the
// stream is finished and returns an error for error payloads.
func consumeLine(line string, reply *strings.Builder, onUpdate func(string)) (bool, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, dataPrefix) {
		return false, nil // Blank separators and unknown lines are ignored
	}
	payload := strings.TrimSpace(line[len(dataPrefix):])
	if payload == doneToken {
		return true, nil // Normal termination
	}
	var p Payload
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return false, nil // Malformed JSON is skipped, not fatal
	}
	if p.Error != "" {
		return true, errors.New(p.Error) // Error payload ends the stream
	}
	if p.Content != "" {
		reply.WriteString(p.Content) // Append-only accumulation in arrival order
		if onUpdate != nil {
			onUpdate(reply.String()) // Show the text accumulated so far
		}
	}
	return false, nil
}
