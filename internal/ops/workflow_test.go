package ops

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ldelaney/coachmem/internal/memory"
)

// TestFullWorkflow exercises the complete memory lifecycle:
// log messages → process session → search → direct remember → search again
func TestFullWorkflow(t *testing.T) {
	gw := &fakeGateway{vectors: map[string][]float32{}, fallback: []float32{0, 0, 1}}
	m := testMemory(t, gw)
	ctx := context.Background()

	session := "workflow-session"

	// 1. Log a coaching exchange
	turns := []struct {
		sender, text string
	}{
		{memory.SenderUser, "I froze during my presentation again"},
		{memory.SenderCoach, "What happened right before you froze?"},
		{memory.SenderUser, "I saw my manager frown"},
		{memory.SenderCoach, "So the trigger is reading the room, not the content"},
	}
	for i, turn := range turns {
		_, err := m.LogMessage(ctx, LogMessageInput{
			SessionID: session,
			Sender:    turn.sender,
			Text:      turn.text,
			Timestamp: int64(i + 1),
		})
		require.NoError(t, err)
	}

	// 2. Process the session into memory segments
	gw.vectors["User: I froze during my presentation again\nCoach: What happened right before you froze?"] = []float32{1, 0, 0}
	gw.vectors["User: I saw my manager frown\nCoach: So the trigger is reading the room, not the content"] = []float32{0.9, 0.1, 0}

	processOut, err := m.ProcessSession(ctx, session)
	require.NoError(t, err)
	require.Equal(t, 2, processOut.SegmentsFound)
	require.Equal(t, 2, processOut.Stored)

	// 3. Search for the presentation anxiety memory
	gw.vectors["presentation anxiety"] = []float32{1, 0, 0}
	searchOut, err := m.Search(ctx, SearchInput{Query: "presentation anxiety"})
	require.NoError(t, err)
	require.Len(t, searchOut.Results, 2)
	require.Contains(t, searchOut.Results[0].Text, "froze during my presentation")
	require.GreaterOrEqual(t, searchOut.Results[0].Similarity, searchOut.Results[1].Similarity)

	// 4. Capture a standalone insight
	gw.vectors["Trigger is audience reaction, not material"] = []float32{0.95, 0.05, 0}
	result := m.Remember(ctx, RememberInput{
		SessionID:  session,
		Text:       "Trigger is audience reaction, not material",
		MemoryType: memory.TypeInsight,
	})
	require.True(t, result.Stored)
	require.NotEmpty(t, result.SegmentID)

	// 5. Search again: the insight joins the ranking
	searchOut, err = m.Search(ctx, SearchInput{Query: "presentation anxiety"})
	require.NoError(t, err)
	require.Len(t, searchOut.Results, 3)
}
