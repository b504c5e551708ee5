// Package script classifies characters into coarse script categories and splits text into words
// made of letters from a configured set of alphabets. Both rule detectors share the range table below.
package script

// Category is a coarse script category of a single character.
type Category int

// enum of supported script categories
const (
	Unclassified Category = iota
	Latin
	Cyrillic
	Greek
)

func (c Category) String() string {
	switch c {
	case Latin:
		return "latin"
	case Cyrillic:
		return "cyrillic"
	case Greek:
		return "greek"
	default:
		return "unclassified"
	}
}

// span is an inclusive range of code points
type span struct {
	lo, hi rune
}

func (s span) has(r rune) bool { return r >= s.lo && r <= s.hi }

// range table, the single source of truth for both classification and tokenizing
var (
	latinSpans    = []span{{'A', 'Z'}, {'a', 'z'}}
	cyrillicSpans = []span{{0x0400, 0x04FF}}
	greekSpans    = []span{{0x0370, 0x03FF}, {0x1F00, 0x1FFF}}

	// letters accepted as cyrillic word characters: basic russian block plus Ё/ё
	russianLetters = []span{{'А', 'я'}, {'Ё', 'Ё'}, {'ё', 'ё'}}
	// ukrainian-specific letters outside of the basic block
	ukrainianLetters = []span{{'І', 'І'}, {'Ї', 'Ї'}, {'Є', 'Є'}, {'Ґ', 'Ґ'}, {'і', 'і'}, {'ї', 'ї'}, {'є', 'є'}, {'ґ', 'ґ'}}
)

func inSpans(r rune, spans []span) bool {
	for _, s := range spans {
		if s.has(r) {
			return true
		}
	}
	return false
}

// Classify returns the script category of a character.
// Everything outside of latin letters, cyrillic and greek blocks is Unclassified.
func Classify(r rune) Category {
	switch {
	case inSpans(r, latinSpans):
		return Latin
	case inSpans(r, cyrillicSpans):
		return Cyrillic
	case inSpans(r, greekSpans):
		return Greek
	default:
		return Unclassified
	}
}

// IsGreek checks if a character belongs to one of greek blocks
func IsGreek(r rune) bool { return inSpans(r, greekSpans) }
