package memory

import (
	"fmt"
	"testing"
)

func msg(sender, text string, ts int64) SessionMessage {
	return SessionMessage{
		ID:        fmt.Sprintf("m-%d", ts),
		SessionID: "s1",
		Sender:    sender,
		Text:      text,
		Timestamp: ts,
	}
}

func TestExtractSegments_PairsUserWithCoachReply(t *testing.T) {
	messages := []SessionMessage{
		msg(SenderUser, "Q1", 1),
		msg(SenderCoach, "A1", 2),
		msg(SenderUser, "Q2", 3),
	}

	segments := ExtractSegments(messages, 20)

	if len(segments) != 1 {
		t.Fatalf("len(segments) = %d, want 1", len(segments))
	}
	if segments[0] != "User: Q1\nCoach: A1" {
		t.Errorf("segments[0] = %q, want %q", segments[0], "User: Q1\nCoach: A1")
	}
}

func TestExtractSegments_DropsUnansweredTurns(t *testing.T) {
	messages := []SessionMessage{
		msg(SenderUser, "Q1", 1),
		msg(SenderUser, "Q2", 2),
		msg(SenderCoach, "A2", 3),
		msg(SenderCoach, "A2-followup", 4),
		msg(SenderUser, "Q3", 5),
	}

	segments := ExtractSegments(messages, 20)

	if len(segments) != 1 {
		t.Fatalf("len(segments) = %d, want 1", len(segments))
	}
	if segments[0] != "User: Q2\nCoach: A2" {
		t.Errorf("segments[0] = %q, want %q", segments[0], "User: Q2\nCoach: A2")
	}
}

func TestExtractSegments_WindowLimitsScan(t *testing.T) {
	// Only the most recent 2 messages are scanned; the old exchange at the
	// front must not contribute a segment.
	messages := []SessionMessage{
		msg(SenderUser, "old question", 1),
		msg(SenderCoach, "old answer", 2),
		msg(SenderUser, "new question", 3),
		msg(SenderCoach, "new answer", 4),
	}

	segments := ExtractSegments(messages, 2)

	if len(segments) != 1 {
		t.Fatalf("len(segments) = %d, want 1", len(segments))
	}
	if segments[0] != "User: new question\nCoach: new answer" {
		t.Errorf("segments[0] = %q", segments[0])
	}
}

func TestExtractSegments_CapsAtFive(t *testing.T) {
	var messages []SessionMessage
	for i := 0; i < 10; i++ {
		messages = append(messages,
			msg(SenderUser, fmt.Sprintf("Q%d", i), int64(2*i)),
			msg(SenderCoach, fmt.Sprintf("A%d", i), int64(2*i+1)),
		)
	}

	segments := ExtractSegments(messages, 100)

	if len(segments) != MaxSegmentsPerPass {
		t.Fatalf("len(segments) = %d, want %d", len(segments), MaxSegmentsPerPass)
	}
	// Chronological order: the earliest pairs win, not the latest.
	if segments[0] != "User: Q0\nCoach: A0" {
		t.Errorf("segments[0] = %q, want the oldest pair", segments[0])
	}
}

func TestExtractSegments_Empty(t *testing.T) {
	if segments := ExtractSegments(nil, 20); segments != nil {
		t.Errorf("ExtractSegments(nil) = %v, want nil", segments)
	}

	coachOnly := []SessionMessage{msg(SenderCoach, "hello!", 1)}
	if segments := ExtractSegments(coachOnly, 20); segments != nil {
		t.Errorf("ExtractSegments(coach-only) = %v, want nil", segments)
	}
}

func TestExtractSegments_DefaultWindow(t *testing.T) {
	var messages []SessionMessage
	for i := 0; i < 30; i++ {
		sender := SenderUser
		if i%2 == 1 {
			sender = SenderCoach
		}
		messages = append(messages, msg(sender, fmt.Sprintf("t%d", i), int64(i)))
	}

	// window <= 0 falls back to the default 20-message window: the first
	// pair inside that window is (t10, t11).
	segments := ExtractSegments(messages, 0)
	if len(segments) == 0 {
		t.Fatal("expected segments from default window")
	}
	if segments[0] != "User: t10\nCoach: t11" {
		t.Errorf("segments[0] = %q, want pair from inside the default window", segments[0])
	}
}
