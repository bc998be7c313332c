package api

import (
	"context"  // Timeout enforcement on the provider call
	"fmt"      // Prompt and fallback formatting
	"io"       // Writer interface for the stream
	"net/http" // HTTP status codes
	"strings"  // Fallback chunking
	"time"     // Pacing the fallback animation

	"paydash/internal/domain"     // Importing domain models
	"paydash/internal/llm"        // Provider client
	"paydash/internal/middleware" // Session user access
	"paydash/internal/stream"     // Chat wire framing

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// ChatRequest is the chat relay request body.
type ChatRequest struct {
	Message string        `json:"message" binding:"required"` // New user message
	History []llm.Message `json:"history"`                    // Prior role-tagged conversation
}

// ChatHandler bridges the browser's chat request to the external provider's
// streaming endpoint. It loads the user's business context from the local
// store, forwards the conversation with a bounded timeout, and re-frames the
// provider's content deltas into the data: {"content": ...} / data: [DONE]
// wire protocol.
//
// Provider failures never surface as HTTP errors: timeouts become an error
// frame the client maps to a canned message, and connection failures degrade
// to a locally-built informational reply streamed in the same framing.
func ChatHandler(db *gorm.DB, client *llm.Client, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c) // Get user loaded by SessionAuth
		if !ok {
			// Reject before contacting the provider
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
			return
		}
		var req ChatRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Load the business context before opening the stream so a provider
		// failure can still fall back to local data
		stats, err := loadBusinessStats(db, user.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load business data"})
			return
		}

		// Streaming response headers
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("X-Accel-Buffering", "no") // Disable proxy buffering
		c.Status(http.StatusOK)

		// System instruction + prior history + the new message
		msgs := make([]llm.Message, 0, len(req.History)+2)
		msgs = append(msgs, llm.Message{Role: "system", Content: systemPrompt(user, stats)})
		for _, m := range req.History {
			if m.Role == "user" || m.Role == "assistant" {
				msgs = append(msgs, m) // Only conversation roles are forwarded
			}
		}
		msgs = append(msgs, llm.Message{Role: "user", Content: req.Message})

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout) // Bounded provider call
		defer cancel()

		err = client.StreamChat(ctx, msgs, func(delta string) error {
			return stream.WriteContent(c.Writer, delta) // Re-frame each content delta
		})
		switch {
		case err == nil:
			// Provider stream relayed cleanly
		case llm.IsTimeout(err):
			logrus.WithFields(logrus.Fields{
				"username": user.Username, // Requesting account
			}).Warn("Chat provider timed out")
			// The "timed out" wording is what the client's canned lookup keys on
			_ = stream.WriteError(c.Writer, "The request to the assistant timed out. Please try again.")
		case llm.IsUnreachable(err):
			logrus.WithFields(logrus.Fields{
				"username": user.Username, // Requesting account
				"error":    err.Error(),   // Connection failure detail
			}).Warn("Chat provider unreachable, serving local fallback")
			// Degrade to a locally-built reply instead of a hard failure
			streamFallback(c.Writer, FallbackReply(user, stats))
		default:
			logrus.WithFields(logrus.Fields{
				"username": user.Username, // Requesting account
				"error":    err.Error(),   // Unexpected failure detail
			}).Error("Chat relay failed")
			// The client substitutes a canned message by matching substrings
			// (status codes included) of this error text
			_ = stream.WriteError(c.Writer, "The assistant request failed: "+err.Error())
		}
		_ = stream.WriteDone(c.Writer) // The stream always terminates cleanly
	}
}

// systemPrompt formats the user's stored business data into the fixed context
// template sent ahead of the conversation.
func systemPrompt(user domain.User, stats BusinessStats) string {
	return fmt.Sprintf(`You are the AI business assistant embedded in the PayDash merchant dashboard.
Answer questions about this merchant's business using the data below. Be concise and friendly, and format money with a dollar sign.

Merchant: %s (%s)
Business: %s
Current balance: $%s
Completed sales total: $%s
Transactions: %d total (%d completed, %d pending, %d failed, %d cancelled)
Customers on record: %d
Products listed: %d`,
		user.FullName, user.Username,
		user.BusinessName,
		user.Balance.StringFixed(2),
		stats.TotalSales.StringFixed(2),
		stats.TransactionCount,
		stats.StatusCounts[domain.StatusCompleted],
		stats.StatusCounts[domain.StatusPending],
		stats.StatusCounts[domain.StatusFailed],
		stats.StatusCounts[domain.StatusCancelled],
		stats.CustomerCount,
		stats.ProductCount)
}

// FallbackReply builds the locally-generated reply streamed when the provider
// cannot be reached. The figures come from the store as of this request.
func FallbackReply(user domain.User, stats BusinessStats) string {
	return fmt.Sprintf("I couldn't reach the AI service just now, but here's a quick summary from your dashboard data: your current balance is $%s, completed sales total $%s, and you have %d transactions on record (%d completed, %d pending) across %d customers. Please try the assistant again in a moment.",
		user.Balance.StringFixed(2),
		stats.TotalSales.StringFixed(2),
		stats.TransactionCount,
		stats.StatusCounts[domain.StatusCompleted],
		stats.StatusCounts[domain.StatusPending],
		stats.CustomerCount)
}

// fallbackChunkDelay paces the fallback reply so it animates like a live
// stream.
const fallbackChunkDelay = 20 * time.Millisecond

// streamFallback writes text as a sequence of word-sized content frames. The
// chunks concatenate to exactly the input text.
func streamFallback(w io.Writer, text string) {
	for _, chunk := range strings.SplitAfter(text, " ") {
		if chunk == "" {
			continue // SplitAfter can yield a trailing empty chunk
		}
		if err := stream.WriteContent(w, chunk); err != nil {
			return // Client went away
		}
		time.Sleep(fallbackChunkDelay) // Pace the animation
	}
}
