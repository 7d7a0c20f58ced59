// Package memory defines the data model of the coach's long-term memory:
// persisted conversation segments with their embedding vectors, plus the
// pure logic that extracts segments from session history and ranks them by
// semantic similarity.
package memory

// Memory types, mirroring how segments are used downstream.
const (
	TypeConversation = "conversation"
	TypeInsight      = "insight"
	TypeAction       = "action"
)

// ValidType reports whether t is a known memory type.
func ValidType(t string) bool {
	switch t {
	case TypeConversation, TypeInsight, TypeAction:
		return true
	}
	return false
}

// Segment is a persisted unit of prior conversation retained for later
// semantic retrieval. Segments are immutable once created and belong to
// exactly one session.
type Segment struct {
	// ID is a ULID that uniquely identifies this segment
	ID string `json:"id"`

	// SessionID is the owning coaching session
	SessionID string `json:"session_id"`

	// Text is the conversation excerpt that was embedded
	Text string `json:"text"`

	// Embedding is the fixed-dimensionality vector for Text
	Embedding []float32 `json:"-"`

	// MemoryType is one of TypeConversation, TypeInsight or TypeAction
	MemoryType string `json:"memory_type"`

	// Metadata carries optional key-value context (stored as JSON in DB)
	Metadata map[string]string `json:"metadata,omitempty"`

	// CreatedAt is the Unix timestamp when the segment was stored
	CreatedAt int64 `json:"created_at"`
}

// ScoredSegment pairs a stored segment with its cosine similarity to a
// query. Produced only by search; never persisted.
type ScoredSegment struct {
	Segment
	Similarity float64 `json:"similarity"`
}

// Sender values for SessionMessage.
const (
	SenderUser  = "user"
	SenderCoach = "coach"
)

// SessionMessage is one turn of a coaching conversation, ordered by
// Timestamp within a session.
type SessionMessage struct {
	ID        string `json:"id"`
	SessionID string `json:"session_id"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}
