package guard

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Keywords is an ordered, immutable set of spam phrases.
// The zero value is an empty set and never matches.
type Keywords struct {
	list []string
}

// NewKeywords makes a keyword set from phrases, preserving the order.
// Empty and whitespace-only phrases are dropped, an empty phrase would match every message.
func NewKeywords(phrases ...string) Keywords {
	res := Keywords{list: make([]string, 0, len(phrases))}
	for _, p := range phrases {
		if strings.TrimSpace(p) == "" {
			continue
		}
		res.list = append(res.list, p)
	}
	return res
}

// LoadKeywords reads a json array of strings from the reader
func LoadKeywords(r io.Reader) (Keywords, error) {
	var phrases []string
	if err := json.NewDecoder(r).Decode(&phrases); err != nil {
		return Keywords{}, fmt.Errorf("failed to decode keywords: %w", err)
	}
	return NewKeywords(phrases...), nil
}

// Find returns the first keyword, in the list order, contained in the text. Matching is case-insensitive
// substring search, keywords are often multi-word phrases or contain non-letters.
// The keyword is returned in its original form.
func (k Keywords) Find(text string) (string, bool) {
	if len(k.list) == 0 || text == "" {
		return "", false
	}
	lowerText := strings.ToLower(text)
	for _, kw := range k.list {
		if kw == "" {
			continue
		}
		if strings.Contains(lowerText, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}

// Len returns the number of keywords
func (k Keywords) Len() int { return len(k.list) }

// List returns a copy of keywords
func (k Keywords) List() []string {
	res := make([]string, len(k.list))
	copy(res, k.list)
	return res
}
