package ops

import (
	"context"
	"strings"
	"time"

	"github.com/ldelaney/coachmem/internal/db"
	"github.com/ldelaney/coachmem/internal/errors"
	"github.com/ldelaney/coachmem/internal/memory"
)

// LogMessageInput contains parameters for the LogMessage operation.
type LogMessageInput struct {
	SessionID string // required
	Sender    string // required: "user" or "coach"
	Text      string // required
	Timestamp int64  // default: now
}

// LogMessageOutput contains the stored message's identifier.
type LogMessageOutput struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Timestamp int64  `json:"timestamp"`
}

// LogMessage appends one turn to a session's conversation history.
func (m *Memory) LogMessage(ctx context.Context, input LogMessageInput) (*LogMessageOutput, error) {
	sessionID := strings.TrimSpace(input.SessionID)
	if sessionID == "" {
		return nil, errors.NewInvalidRequest("session_id is required")
	}
	if input.Sender != memory.SenderUser && input.Sender != memory.SenderCoach {
		return nil, errors.NewInvalidRequest("sender must be one of: user, coach")
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, errors.NewInvalidRequest("text is required")
	}

	timestamp := input.Timestamp
	if timestamp == 0 {
		timestamp = time.Now().Unix()
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	msg := &memory.SessionMessage{
		ID:        id,
		SessionID: sessionID,
		Sender:    input.Sender,
		Text:      input.Text,
		Timestamp: timestamp,
	}
	if err := db.InsertMessage(ctx, m.DB, msg); err != nil {
		return nil, err
	}

	return &LogMessageOutput{ID: id, SessionID: sessionID, Timestamp: timestamp}, nil
}

// SessionHistory returns the last n messages of a session in
// chronological order. A session with no messages is reported as not
// found.
func (m *Memory) SessionHistory(ctx context.Context, sessionID string, n int) ([]memory.SessionMessage, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, errors.NewInvalidRequest("session_id is required")
	}
	if n <= 0 {
		n = m.Cfg.SegmentWindow
	}

	messages, err := db.RecentMessages(ctx, m.DB, sessionID, n)
	if err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, errors.NewNotFound("session " + sessionID)
	}
	return messages, nil
}
