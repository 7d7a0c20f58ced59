package db

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/ldelaney/coachmem/internal/errors"
	"github.com/ldelaney/coachmem/internal/memory"
)

// InsertSegment stores a new memory segment. The embedding vector and
// metadata are JSON-encoded; SQLite has no native vector column.
func InsertSegment(ctx context.Context, db *sql.DB, seg *memory.Segment) error {
	embeddingJSON, err := json.Marshal(seg.Embedding)
	if err != nil {
		return errors.NewInternal(err)
	}

	var metadataJSON sql.NullString
	if len(seg.Metadata) > 0 {
		data, err := json.Marshal(seg.Metadata)
		if err != nil {
			return errors.NewInternal(err)
		}
		metadataJSON = sql.NullString{String: string(data), Valid: true}
	}

	memoryType := seg.MemoryType
	if memoryType == "" {
		memoryType = memory.TypeConversation
	}

	query := `
		INSERT INTO memory_segments (
			id, session_id, text, embedding, memory_type, metadata_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = db.ExecContext(ctx, query,
		seg.ID, seg.SessionID, seg.Text, string(embeddingJSON),
		memoryType, metadataJSON, seg.CreatedAt,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// RecentSegments returns up to limit segments, most recent first. This is
// the bounded candidate set the similarity ranker scans; it is not an
// approximate-nearest-neighbor index.
func RecentSegments(ctx context.Context, db *sql.DB, limit int) ([]*memory.Segment, error) {
	query := `
		SELECT id, session_id, text, embedding, memory_type, metadata_json, created_at
		FROM memory_segments
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var segments []*memory.Segment
	for rows.Next() {
		seg, err := scanSegment(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return segments, nil
}

// SessionSegmentCount returns how many segments a session owns.
func SessionSegmentCount(ctx context.Context, db *sql.DB, sessionID string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM memory_segments WHERE session_id = ?`, sessionID,
	).Scan(&count)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// InsertMessage stores one session message.
func InsertMessage(ctx context.Context, db *sql.DB, msg *memory.SessionMessage) error {
	query := `
		INSERT INTO session_messages (id, session_id, sender, text, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query,
		msg.ID, msg.SessionID, msg.Sender, msg.Text, msg.Timestamp,
	)
	if err != nil {
		return errors.NewInternal(err)
	}

	return nil
}

// RecentMessages returns the last n messages of a session in chronological
// order (oldest first), the shape segment extraction consumes.
func RecentMessages(ctx context.Context, db *sql.DB, sessionID string, n int) ([]memory.SessionMessage, error) {
	// Fetch newest-first with the limit, then reverse.
	query := `
		SELECT id, session_id, sender, text, timestamp
		FROM session_messages
		WHERE session_id = ?
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := db.QueryContext(ctx, query, sessionID, n)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var messages []memory.SessionMessage
	for rows.Next() {
		var m memory.SessionMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Sender, &m.Text, &m.Timestamp); err != nil {
			return nil, errors.NewInternal(err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// scanSegment scans a single row into a Segment struct. A corrupt
// embedding column is returned as an empty vector rather than an error;
// the ranker scores it zero and moves on.
func scanSegment(rows *sql.Rows) (*memory.Segment, error) {
	var (
		seg          memory.Segment
		embeddingRaw string
		metadataJSON sql.NullString
	)

	err := rows.Scan(
		&seg.ID, &seg.SessionID, &seg.Text, &embeddingRaw,
		&seg.MemoryType, &metadataJSON, &seg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(embeddingRaw), &seg.Embedding); err != nil {
		seg.Embedding = nil
	}

	if metadataJSON.Valid && metadataJSON.String != "" {
		if err := json.Unmarshal([]byte(metadataJSON.String), &seg.Metadata); err != nil {
			return nil, err
		}
	}

	return &seg, nil
}
