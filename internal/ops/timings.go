package ops

import (
	"github.com/ldelaney/coachmem/internal/errors"
	"github.com/ldelaney/coachmem/internal/transcript"
)

// TimingsInput contains parameters for the Timings operation.
type TimingsInput struct {
	Text     string  // required
	Duration float64 // required: audio duration in seconds
}

// TimingsOutput pairs each token with its estimated start offset.
type TimingsOutput struct {
	Tokens  []transcript.Token      `json:"tokens"`
	Offsets []transcript.WordOffset `json:"offsets"`
}

// Timings tokenizes transcript text and estimates per-word start
// offsets across the given audio duration.
func Timings(input TimingsInput) (*TimingsOutput, error) {
	if input.Text == "" {
		return nil, errors.NewInvalidRequest("text is required")
	}
	if input.Duration <= 0 {
		return nil, errors.NewInvalidRequest("duration must be a positive number of seconds")
	}

	tokens := transcript.Split(input.Text)
	offsets := transcript.Allocate(tokens, input.Duration)
	if offsets == nil {
		return nil, errors.NewInvalidRequest("could not allocate timings for the given text and duration")
	}

	return &TimingsOutput{Tokens: tokens, Offsets: offsets}, nil
}
