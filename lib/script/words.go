package script

import (
	"strings"
	"unicode/utf8"
)

// Alphabets is a set of letter groups accepted by the tokenizer as word characters.
type Alphabets uint8

// letter groups, can be combined with |
const (
	LatinLetters Alphabets = 1 << iota
	CyrillicLetters
	UkrainianLetters
	GreekLetters
)

// predefined sets used by detectors
const (
	// MixedAlphabets is the set for character-confusion detection, greek is handled separately
	MixedAlphabets = LatinLetters | CyrillicLetters | UkrainianLetters
	// GreekAlphabets is the set for greek symbol detection
	GreekAlphabets = LatinLetters | CyrillicLetters | UkrainianLetters | GreekLetters
)

// Accepts checks if a character is a word character for this set
func (a Alphabets) Accepts(r rune) bool {
	if a&LatinLetters != 0 && inSpans(r, latinSpans) {
		return true
	}
	if a&CyrillicLetters != 0 && inSpans(r, russianLetters) {
		return true
	}
	if a&UkrainianLetters != 0 && inSpans(r, ukrainianLetters) {
		return true
	}
	if a&GreekLetters != 0 && inSpans(r, greekSpans) {
		return true
	}
	return false
}

func (a Alphabets) String() string {
	names := []string{}
	for _, g := range []struct {
		bit  Alphabets
		name string
	}{{LatinLetters, "latin"}, {CyrillicLetters, "cyrillic"}, {UkrainianLetters, "ukrainian"}, {GreekLetters, "greek"}} {
		if a&g.bit != 0 {
			names = append(names, g.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}

// Words splits text into maximal runs of characters accepted by the given set.
// Words keep the original case and order, everything else is a separator.
func Words(text string, set Alphabets) []string {
	res := []string{}
	start := -1
	for i, r := range text {
		// invalid utf-8 bytes decode to RuneError and act as separators
		if r != utf8.RuneError && set.Accepts(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			res = append(res, text[start:i])
			start = -1
		}
	}
	if start >= 0 {
		res = append(res, text[start:])
	}
	return res
}
