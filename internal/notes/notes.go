// Package notes renders a session's conversation history as markdown
// session notes, optionally converted to HTML for the web surface.
package notes

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/ldelaney/coachmem/internal/memory"
)

var renderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Markdown builds session notes from messages in chronological order.
// Each turn becomes a labelled blockquote under a session heading.
func Markdown(sessionID string, messages []memory.SessionMessage) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Session notes: %s\n\n", sessionID)

	if len(messages) == 0 {
		b.WriteString("_No messages recorded._\n")
		return b.String()
	}

	first := time.Unix(messages[0].Timestamp, 0).UTC()
	last := time.Unix(messages[len(messages)-1].Timestamp, 0).UTC()
	fmt.Fprintf(&b, "%d messages, %s to %s\n\n",
		len(messages),
		first.Format("2006-01-02 15:04"),
		last.Format("2006-01-02 15:04"),
	)

	for _, msg := range messages {
		label := "Coach"
		if msg.Sender == memory.SenderUser {
			label = "Client"
		}
		fmt.Fprintf(&b, "**%s**\n\n", label)
		for _, line := range strings.Split(msg.Text, "\n") {
			fmt.Fprintf(&b, "> %s\n", line)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// HTML renders markdown session notes to HTML.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
