// Package embedding turns text into vectors via an external provider.
// The Gateway interface keeps the provider swappable; tests plug in
// fakes instead of hitting the network.
package embedding

import (
	"context"
	"fmt"
	"strings"

	"github.com/ldelaney/coachmem/internal/errors"
)

// MaxInputRunes caps the text sent to the provider. Longer inputs are
// truncated, not rejected.
const MaxInputRunes = 8000

// Gateway produces an embedding vector for a piece of text.
type Gateway interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Disabled is a Gateway used when no provider credentials are
// configured. Every call fails, which the memory writer degrades
// gracefully around.
type Disabled struct{}

// Embed always fails.
func (Disabled) Embed(context.Context, string) ([]float32, error) {
	return nil, errors.NewEmbeddingFailed(fmt.Errorf("no embedding provider configured (set OPENAI_API_KEY)"))
}

// CleanText normalizes text before embedding: newlines become spaces,
// surrounding whitespace is trimmed, and the result is truncated to
// MaxInputRunes runes.
func CleanText(text string) string {
	cleaned := strings.ReplaceAll(text, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	cleaned = strings.TrimSpace(cleaned)

	runes := []rune(cleaned)
	if len(runes) > MaxInputRunes {
		cleaned = string(runes[:MaxInputRunes])
	}
	return cleaned
}
