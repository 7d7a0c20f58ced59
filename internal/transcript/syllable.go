package transcript

import (
	"strings"
	"unicode/utf8"
)

const vowels = "aeiouy"

// CountSyllables approximates the syllable count of a single word. The word
// is lower-cased, a silent trailing suffix ("-e", "-ed", "-es" after a
// consonant) and a leading "y" are stripped, and the remaining vowel groups
// are counted as syllable nuclei. The result is always at least 1.
//
// This is a speaking-time heuristic, not a dictionary lookup: only the
// monotonic relationship between word complexity and estimated duration
// matters to the timing allocator.
func CountSyllables(word string) int {
	word = strings.ToLower(strings.TrimSpace(word))
	if utf8.RuneCountInString(word) <= 3 {
		return 1
	}

	word = stripSilentSuffix(word)
	word = strings.TrimPrefix(word, "y")

	if n := countVowelGroups(word); n > 1 {
		return n
	}
	return 1
}

// stripSilentSuffix removes a trailing "<consonant>es", "ed" or
// "<consonant>e". The consonant is removed along with the suffix; it no
// longer separates vowel groups once the silent ending is gone.
func stripSilentSuffix(w string) string {
	n := len(w)
	switch {
	case n >= 3 && strings.HasSuffix(w, "es") && !isSuffixVowel(w[n-3]):
		return w[:n-3]
	case n >= 2 && strings.HasSuffix(w, "ed"):
		return w[:n-2]
	case n >= 2 && strings.HasSuffix(w, "e") && !isSuffixVowel(w[n-2]):
		return w[:n-2]
	}
	return w
}

// isSuffixVowel reports whether b blocks silent-suffix stripping. "l" is
// included so words like "whistles" and "able" keep their final syllable.
func isSuffixVowel(b byte) bool {
	return b == 'l' || strings.IndexByte(vowels, b) >= 0
}

// countVowelGroups counts vowel runs, treating up to two adjacent vowels as
// one nucleus (a run of three vowels counts twice).
func countVowelGroups(w string) int {
	count, run := 0, 0
	for i := 0; i < len(w); i++ {
		if strings.IndexByte(vowels, w[i]) >= 0 {
			run++
			continue
		}
		count += (run + 1) / 2
		run = 0
	}
	return count + (run+1)/2
}
