package guard

import (
	"github.com/umputun/tg-guard/lib/script"
)

// minConfusedChars is the number of characters from a minority script making a word suspicious.
// a single foreign look-alike is treated as a typo.
const minConfusedChars = 2

// FindMixedAlphabetWord returns the first word mixing latin and cyrillic scripts where a minority script
// contributes at least two characters. Greek is not considered here, it has its own rule.
func FindMixedAlphabetWord(text string) (string, bool) {
	for _, word := range script.Words(text, script.MixedAlphabets) {
		if isConfused(word) {
			return word, true
		}
	}
	return "", false
}

// scriptCount is a histogram bucket, buckets are kept in the first-encounter order
type scriptCount struct {
	cat   script.Category
	count int
}

// histogram counts classified characters per script, unclassified characters are ignored
func histogram(word string) []scriptCount {
	res := make([]scriptCount, 0, 2)
	for _, r := range word {
		cat := script.Classify(r)
		if cat == script.Unclassified {
			continue
		}
		found := false
		for i := range res {
			if res[i].cat == cat {
				res[i].count++
				found = true
				break
			}
		}
		if !found {
			res = append(res, scriptCount{cat: cat, count: 1})
		}
	}
	return res
}

// isConfused checks a single word. The dominant script is the most frequent one, ties go to the first encountered.
// Only the flag matters, which script is labeled dominant is not exposed.
func isConfused(word string) bool {
	hist := histogram(word)
	if len(hist) < 2 {
		return false
	}

	dominant := 0
	for i, h := range hist {
		if h.count > hist[dominant].count {
			dominant = i
		}
	}

	for i, h := range hist {
		if i != dominant && h.count >= minConfusedChars {
			return true
		}
	}
	return false
}
