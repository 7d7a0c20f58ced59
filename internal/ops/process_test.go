package ops

import (
	"context"
	"fmt"
	"testing"

	"github.com/ldelaney/coachmem/internal/db"
	"github.com/ldelaney/coachmem/internal/errors"
	"github.com/ldelaney/coachmem/internal/memory"
)

func logTurn(t *testing.T, m *Memory, session, sender, text string, ts int64) {
	t.Helper()
	_, err := m.LogMessage(context.Background(), LogMessageInput{
		SessionID: session,
		Sender:    sender,
		Text:      text,
		Timestamp: ts,
	})
	if err != nil {
		t.Fatalf("LogMessage failed: %v", err)
	}
}

func TestProcessSession_CapturesExchangePairs(t *testing.T) {
	gw := &fakeGateway{fallback: []float32{1, 0}}
	m := testMemory(t, gw)
	ctx := context.Background()

	logTurn(t, m, "s1", memory.SenderUser, "how do I build a habit?", 1)
	logTurn(t, m, "s1", memory.SenderCoach, "anchor it to something you already do", 2)
	logTurn(t, m, "s1", memory.SenderUser, "like morning coffee?", 3)
	logTurn(t, m, "s1", memory.SenderCoach, "exactly", 4)

	out, err := m.ProcessSession(ctx, "s1")
	if err != nil {
		t.Fatalf("ProcessSession failed: %v", err)
	}
	if out.SegmentsFound != 2 || out.Stored != 2 || out.Dropped != 0 {
		t.Errorf("out = %+v, want 2 found, 2 stored", out)
	}

	count, err := db.SessionSegmentCount(ctx, m.DB, "s1")
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 2 {
		t.Errorf("stored segments = %d, want 2", count)
	}
}

func TestProcessSession_CountsDroppedCaptures(t *testing.T) {
	gw := &fakeGateway{} // every embedding fails
	m := testMemory(t, gw)

	logTurn(t, m, "s1", memory.SenderUser, "Q", 1)
	logTurn(t, m, "s1", memory.SenderCoach, "A", 2)

	out, err := m.ProcessSession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("ProcessSession failed: %v", err)
	}
	if out.SegmentsFound != 1 || out.Stored != 0 || out.Dropped != 1 {
		t.Errorf("out = %+v, want 1 found, 0 stored, 1 dropped", out)
	}
}

func TestProcessSession_OnlyScansRecentWindow(t *testing.T) {
	gw := &fakeGateway{fallback: []float32{1}}
	m := testMemory(t, gw)
	m.Cfg.SegmentWindow = 4

	// Ten exchanges; only the last two fit the window.
	for i := 0; i < 10; i++ {
		logTurn(t, m, "s1", memory.SenderUser, fmt.Sprintf("Q%d", i), int64(2*i+1))
		logTurn(t, m, "s1", memory.SenderCoach, fmt.Sprintf("A%d", i), int64(2*i+2))
	}

	out, err := m.ProcessSession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("ProcessSession failed: %v", err)
	}
	if out.SegmentsFound != 2 {
		t.Errorf("SegmentsFound = %d, want 2 from the recent window", out.SegmentsFound)
	}
}

func TestProcessSession_EmptySession(t *testing.T) {
	m := testMemory(t, &fakeGateway{fallback: []float32{1}})

	out, err := m.ProcessSession(context.Background(), "nothing-here")
	if err != nil {
		t.Fatalf("ProcessSession failed: %v", err)
	}
	if out.SegmentsFound != 0 {
		t.Errorf("SegmentsFound = %d, want 0", out.SegmentsFound)
	}
}

func TestProcessSession_RequiresSessionID(t *testing.T) {
	m := testMemory(t, &fakeGateway{fallback: []float32{1}})

	_, err := m.ProcessSession(context.Background(), "  ")
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("err = %v, want ErrInvalidRequest", err)
	}
}
