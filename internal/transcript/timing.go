package transcript

import (
	"math"
	"strings"
)

// Pause bonuses added to a token's weight when it carries punctuation.
// Sentence terminators pause longest, then clause separators, then dashes.
const (
	sentencePause = 1.5
	clausePause   = 0.8
	dashPause     = 0.5
)

// WordOffset is the estimated start time of one token during audio playback.
type WordOffset struct {
	// TokenIndex is the position of the token this offset belongs to.
	TokenIndex int `json:"token_index"`

	// Start is the offset in seconds from the beginning of the audio.
	Start float64 `json:"start"`
}

// Estimator converts a token sequence into relative speaking weights.
// Allocate divides the audio duration proportionally to these weights, so
// any implementation returning one positive weight per token produces a
// valid schedule. The default is SyllableEstimator; a real text-to-speech
// timing model could be substituted without touching the resolver.
type Estimator interface {
	Weights(tokens []Token) []float64
}

// SyllableEstimator weights each token by its estimated syllable count plus
// a pause bonus for punctuation. The base weight of 1 guarantees every
// token gets a positive share of the duration.
type SyllableEstimator struct{}

// Weights implements Estimator.
func (SyllableEstimator) Weights(tokens []Token) []float64 {
	weights := make([]float64, len(tokens))
	for i, tok := range tokens {
		w := 1.0 + 0.5*float64(CountSyllables(bareWord(tok.Text)))
		switch {
		case strings.ContainsAny(tok.Text, ".!?"):
			w += sentencePause
		case strings.ContainsAny(tok.Text, ",;:"):
			w += clausePause
		case strings.ContainsAny(tok.Text, "-–—"):
			w += dashPause
		}
		weights[i] = w
	}
	return weights
}

// Allocate distributes totalDuration across tokens using the default
// syllable estimator. See AllocateWith.
func Allocate(tokens []Token, totalDuration float64) []WordOffset {
	return AllocateWith(SyllableEstimator{}, tokens, totalDuration)
}

// AllocateWith distributes totalDuration across tokens proportionally to
// the estimator's weights, producing one monotonically non-decreasing start
// offset per token. The first offset is always 0 and every offset is
// strictly less than totalDuration; the last token's implicit end is the
// total duration itself, so the schedule is gapless.
//
// It returns nil when tokens is empty or totalDuration is zero, negative,
// NaN or infinite; callers must treat nil as "timing unavailable", which
// is a routine state before audio metadata has loaded.
func AllocateWith(est Estimator, tokens []Token, totalDuration float64) []WordOffset {
	if len(tokens) == 0 || !validDuration(totalDuration) {
		return nil
	}

	weights := est.Weights(tokens)
	if len(weights) != len(tokens) {
		return nil
	}

	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return nil
	}

	offsets := make([]WordOffset, len(tokens))
	elapsed := 0.0
	for i := range tokens {
		offsets[i] = WordOffset{TokenIndex: i, Start: elapsed}
		elapsed += weights[i] / total * totalDuration
	}

	return offsets
}

// validDuration reports whether d can be divided into word timings.
func validDuration(d float64) bool {
	return d > 0 && !math.IsNaN(d) && !math.IsInf(d, 0)
}
