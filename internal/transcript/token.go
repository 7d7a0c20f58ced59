// Package transcript estimates word-level playback timings for synthesized
// coach speech and resolves which word is being spoken at a given playback
// time. Everything in this package is a pure function of its inputs, so it
// can be called on every UI refresh tick from any number of concurrent
// playback sessions without coordination.
package transcript

// Token is a whitespace-delimited unit of text plus its trailing separator.
// Concatenating the Text of every token in a Split result reproduces the
// original input exactly.
type Token struct {
	// Text is the word together with its trailing whitespace.
	Text string `json:"text"`

	// Index is the token's position in the sequence.
	Index int `json:"index"`
}

// Split breaks text into word tokens, each keeping its own trailing
// whitespace. Leading whitespace is folded into the first token so the
// round-trip guarantee holds. Input with no whitespace-delimited words
// (whitespace-only) yields a single token holding the input verbatim, so
// the result is never empty for non-empty input. Empty input yields nil.
func Split(text string) []Token {
	if text == "" {
		return nil
	}

	i := 0
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	if i == len(text) {
		// Whitespace-only input
		return []Token{{Text: text, Index: 0}}
	}

	var tokens []Token
	start := 0
	for i < len(text) {
		for i < len(text) && !isSpace(text[i]) {
			i++
		}
		for i < len(text) && isSpace(text[i]) {
			i++
		}
		tokens = append(tokens, Token{Text: text[start:i], Index: len(tokens)})
		start = i
	}

	return tokens
}

// isSpace reports whether b is an ASCII whitespace byte. Multi-byte
// Unicode spaces are treated as word characters, which only makes the
// surrounding token slightly longer; timings stay valid.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// bareWord strips everything except letters, digits and underscores,
// leaving the word the syllable estimator should look at.
func bareWord(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch {
		case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9', b == '_':
			out = append(out, b)
		case b >= 0x80:
			// Keep non-ASCII runes; they are likely letters.
			out = append(out, b)
		}
	}
	return string(out)
}
