package transcript

// NoActiveWord is returned by ResolveActive when no token should be
// highlighted.
const NoActiveWord = -1

// ResolveActive returns the index of the token being spoken at currentTime,
// or NoActiveWord. A token is active from its own start offset up to the
// next token's start offset; the last token runs to totalDuration.
//
// Empty offsets or a non-finite/non-positive duration resolve to
// NoActiveWord so callers can fall back to unhighlighted text; both occur
// routinely while audio metadata is still loading and are not errors. When
// currentTime has passed the last computed boundary (end-of-playback clock
// jitter) the last token stays active instead of flickering to none.
//
// The function holds no state between calls, so it can be sampled at any
// rate without synchronization.
func ResolveActive(offsets []WordOffset, currentTime, totalDuration float64) int {
	if len(offsets) == 0 || !validDuration(totalDuration) {
		return NoActiveWord
	}

	last := len(offsets) - 1
	for i := range offsets {
		end := totalDuration
		if i < last {
			end = offsets[i+1].Start
		}
		if currentTime >= offsets[i].Start && currentTime < end {
			return i
		}
	}

	if currentTime >= offsets[last].Start {
		return last
	}

	return NoActiveWord
}

// ActiveWord tokenizes text, allocates timings for the given duration and
// resolves the active token in one pass, the shape a render loop consumes.
// The returned index is NoActiveWord whenever timings are unavailable or
// the offset count does not match the token count.
func ActiveWord(text string, currentTime, totalDuration float64) ([]Token, int) {
	tokens := Split(text)
	offsets := Allocate(tokens, totalDuration)
	if len(offsets) != len(tokens) {
		return tokens, NoActiveWord
	}
	return tokens, ResolveActive(offsets, currentTime, totalDuration)
}
