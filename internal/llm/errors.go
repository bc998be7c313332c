package llm

import (
	"context" // Deadline errors
	"errors"  // Error unwrapping
	"net"     // Network error types
	"net/url" // Transport errors are wrapped in url.Error
)

// IsTimeout reports whether err was caused by the provider call exceeding its
// deadline.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true // Context deadline hit
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true // Transport-level timeout
	}
	return false
}

// IsUnreachable reports whether err is a connection-level failure reaching the
// provider (refused, DNS failure, broken transport). Timeouts are classified
// separately by IsTimeout.
func IsUnreachable(err error) bool {
	if err == nil || IsTimeout(err) {
		return false // Not a connection failure
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true // Host could not be resolved
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true // Dial or read failed at the socket level
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true // Transport failed before a response arrived
	}
	return false
}
