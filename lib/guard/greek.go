package guard

import (
	"github.com/umputun/tg-guard/lib/script"
)

// GreekMatch is a greek character found in a message and the word containing it
type GreekMatch struct {
	Symbol string
	Word   string
}

// FindGreekSymbol looks for the first word with a greek character, using the default greek-aware alphabets.
func FindGreekSymbol(text string) (GreekMatch, bool) {
	return findGreekSymbol(text, script.GreekAlphabets)
}

// findGreekSymbol scans words left to right and stops on the first greek character.
// set has to include greek letters, otherwise greek characters never get into words.
func findGreekSymbol(text string, set script.Alphabets) (GreekMatch, bool) {
	for _, word := range script.Words(text, set|script.GreekLetters) {
		for _, r := range word {
			if script.IsGreek(r) {
				return GreekMatch{Symbol: string(r), Word: word}, true
			}
		}
	}
	return GreekMatch{}, false
}
