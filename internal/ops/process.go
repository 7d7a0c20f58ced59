package ops

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ldelaney/coachmem/internal/db"
	"github.com/ldelaney/coachmem/internal/errors"
	"github.com/ldelaney/coachmem/internal/memory"
)

// ProcessOutput reports what a session-processing pass produced.
type ProcessOutput struct {
	SessionID     string `json:"session_id"`
	SegmentsFound int    `json:"segments_found"`
	Stored        int    `json:"stored"`
	Dropped       int    `json:"dropped"`
}

// ProcessSession extracts user/coach exchange pairs from a session's
// recent history and captures each one as a conversation memory.
// Individual capture failures are counted, not raised.
func (m *Memory) ProcessSession(ctx context.Context, sessionID string) (*ProcessOutput, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, errors.NewInvalidRequest("session_id is required")
	}

	messages, err := db.RecentMessages(ctx, m.DB, sessionID, m.Cfg.SegmentWindow)
	if err != nil {
		return nil, err
	}

	segments := memory.ExtractSegments(messages, m.Cfg.SegmentWindow)

	out := &ProcessOutput{
		SessionID:     sessionID,
		SegmentsFound: len(segments),
	}

	for _, text := range segments {
		result := m.Remember(ctx, RememberInput{
			SessionID:  sessionID,
			Text:       text,
			MemoryType: memory.TypeConversation,
			Metadata:   map[string]string{"source": "session_processing"},
		})
		if result.Stored {
			out.Stored++
		} else {
			out.Dropped++
		}
	}

	m.Log.WithFields(logrus.Fields{
		"session_id": sessionID,
		"found":      out.SegmentsFound,
		"stored":     out.Stored,
		"dropped":    out.Dropped,
	}).Info("session processed")

	return out, nil
}
