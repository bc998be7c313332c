package stream

import "strings" // Substring matching against error text

// Canned user-facing messages substituted for raw errors.
const (
	MsgTimeout     = "The assistant took too long to respond. Please try again in a moment."
	MsgConnection  = "Unable to reach the assistant service. Please check your connection and try again."
	MsgUnavailable = "The assistant service is temporarily unavailable. Please try again later."
	MsgRateLimited = "The assistant is handling too many requests right now. Please try again shortly."
	MsgRejected    = "The assistant service rejected the request. Please contact support if this keeps happening."
	MsgUpstream    = "The assistant service ran into a problem. Please try again."
	MsgGeneric     = "Something went wrong while talking to the assistant. Please try again."
)

// cannedLookup maps error-text substrings to canned messages. First match
// wins, so more specific entries come before broader ones.
var cannedLookup = []struct {
	match   string // Substring searched for in the error text (lowercased)
	message string // Canned message shown to the user
}{
	{"timed out", MsgTimeout},
	{"timeout", MsgTimeout},
	{"deadline exceeded", MsgTimeout},
	{"429", MsgRateLimited},
	{"rate limit", MsgRateLimited},
	{"401", MsgRejected},
	{"403", MsgRejected},
	{"503", MsgUnavailable},
	{"unavailable", MsgUnavailable},
	{"500", MsgUpstream},
	{"502", MsgUpstream},
	{"connection", MsgConnection},
	{"refused", MsgConnection},
	{"unreachable", MsgConnection},
	{"no such host", MsgConnection},
}

// CannedMessage maps an error to a fixed user-facing message by matching
// substrings of the error text against the lookup table. Unmatched errors get
// the generic message. A nil error also maps to the generic message.
func CannedMessage(err error) string {
	if err == nil {
		return MsgGeneric // Nothing to classify
	}
	text := strings.ToLower(err.Error())
	for _, entry := range cannedLookup {
		if strings.Contains(text, entry.match) {
			return entry.message // First match wins
		}
	}
	return MsgGeneric // No entry matched
}
