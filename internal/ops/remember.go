package ops

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ldelaney/coachmem/internal/db"
	"github.com/ldelaney/coachmem/internal/errors"
	"github.com/ldelaney/coachmem/internal/memory"
)

// RememberInput contains parameters for the Remember operation.
type RememberInput struct {
	SessionID  string            // required
	Text       string            // required
	MemoryType string            // default: "conversation"
	Metadata   map[string]string // optional
}

// CaptureResult reports the outcome of a memory capture attempt.
// Capture is best-effort: failures are recorded here instead of being
// returned as errors, so a dead embedding provider never interrupts a
// coaching session.
type CaptureResult struct {
	SegmentID string `json:"segment_id,omitempty"`
	Stored    bool   `json:"stored"`
	Err       error  `json:"-"`
}

// Remember embeds text and stores it as a memory segment. It never
// fails loudly: validation problems, embedding failures and storage
// errors all come back as a not-stored CaptureResult.
func (m *Memory) Remember(ctx context.Context, input RememberInput) CaptureResult {
	result := m.capture(ctx, input)
	if result.Err != nil {
		m.Log.WithFields(logrus.Fields{
			"session_id":  input.SessionID,
			"memory_type": input.MemoryType,
		}).WithError(result.Err).Warn("memory capture failed")
	}
	return result
}

func (m *Memory) capture(ctx context.Context, input RememberInput) CaptureResult {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return CaptureResult{Err: errors.NewInvalidRequest("text is required")}
	}
	if strings.TrimSpace(input.SessionID) == "" {
		return CaptureResult{Err: errors.NewInvalidRequest("session_id is required")}
	}

	memoryType := input.MemoryType
	if memoryType == "" {
		memoryType = memory.TypeConversation
	}
	if !memory.ValidType(memoryType) {
		return CaptureResult{Err: errors.NewInvalidRequest("memory_type must be one of: conversation, insight, action")}
	}

	vector, err := m.Gateway.Embed(ctx, text)
	if err != nil {
		return CaptureResult{Err: err}
	}

	id, err := generateULID()
	if err != nil {
		return CaptureResult{Err: err}
	}

	seg := &memory.Segment{
		ID:         id,
		SessionID:  input.SessionID,
		Text:       text,
		Embedding:  vector,
		MemoryType: memoryType,
		Metadata:   input.Metadata,
		CreatedAt:  time.Now().Unix(),
	}

	if err := db.InsertSegment(ctx, m.DB, seg); err != nil {
		return CaptureResult{Err: err}
	}

	return CaptureResult{SegmentID: id, Stored: true}
}
