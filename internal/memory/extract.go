package memory

import "fmt"

// Segment extraction limits.
const (
	// DefaultSegmentWindow is how many recent messages are scanned per pass.
	DefaultSegmentWindow = 20

	// MaxSegmentsPerPass caps how many segments one pass may emit. Segments
	// are taken in chronological order; importance scoring is a non-goal.
	MaxSegmentsPerPass = 5
)

// ExtractSegments scans the most recent window messages (oldest to newest,
// messages must already be ordered by timestamp ascending) and pairs each
// user message with the coach reply that immediately follows it, formatted
// as "User: ...\nCoach: ...". User messages with no adjacent coach reply
// are dropped silently; partial turns do not count as memories.
//
// A non-positive window falls back to DefaultSegmentWindow.
func ExtractSegments(messages []SessionMessage, window int) []string {
	if window <= 0 {
		window = DefaultSegmentWindow
	}
	if len(messages) > window {
		messages = messages[len(messages)-window:]
	}

	var segments []string
	for i := 0; i+1 < len(messages); i++ {
		if messages[i].Sender != SenderUser || messages[i+1].Sender != SenderCoach {
			continue
		}
		segments = append(segments, fmt.Sprintf("User: %s\nCoach: %s", messages[i].Text, messages[i+1].Text))
		if len(segments) == MaxSegmentsPerPass {
			break
		}
	}
	return segments
}
