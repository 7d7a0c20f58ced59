package embedding

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanText_NewlinesBecomeSpaces(t *testing.T) {
	got := CleanText("User: stuck on my goal\nCoach: break it down")
	want := "User: stuck on my goal Coach: break it down"
	if got != want {
		t.Errorf("CleanText = %q, want %q", got, want)
	}
}

func TestCleanText_TrimsWhitespace(t *testing.T) {
	if got := CleanText("  \n hello \r\n "); got != "hello" {
		t.Errorf("CleanText = %q, want %q", got, "hello")
	}
}

func TestCleanText_TruncatesLongInput(t *testing.T) {
	long := strings.Repeat("a", MaxInputRunes+500)
	got := CleanText(long)
	if utf8.RuneCountInString(got) != MaxInputRunes {
		t.Errorf("rune count = %d, want %d", utf8.RuneCountInString(got), MaxInputRunes)
	}
}

func TestCleanText_TruncationIsRuneSafe(t *testing.T) {
	long := strings.Repeat("é", MaxInputRunes+10)
	got := CleanText(long)
	if !utf8.ValidString(got) {
		t.Error("truncated output is not valid UTF-8")
	}
	if utf8.RuneCountInString(got) != MaxInputRunes {
		t.Errorf("rune count = %d, want %d", utf8.RuneCountInString(got), MaxInputRunes)
	}
}

func TestCleanText_Empty(t *testing.T) {
	if got := CleanText("   \n  "); got != "" {
		t.Errorf("CleanText(whitespace) = %q, want empty", got)
	}
}
