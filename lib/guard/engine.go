// Package guard implements message validation rules against character-confusion spam.
// Rules are evaluated in a fixed order: greek symbols, mixed alphabets, spam keywords.
// The first rule rejecting a message wins, rules after it are not evaluated.
//
// Engine is immutable after creation and safe for concurrent use.
package guard

import (
	"fmt"

	"github.com/umputun/tg-guard/lib/script"
	"github.com/umputun/tg-guard/lib/verdict"
)

// Config defines engine parameters
type Config struct {
	Keywords       Keywords         // spam phrases, empty set disables keyword rule matching
	GreekAlphabets script.Alphabets // letters making words for greek rule, script.GreekAlphabets if zero
}

// Engine validates messages with the ordered list of rules
type Engine struct {
	keywords    Keywords
	greekLetter script.Alphabets
	rules       []rule
}

// rule checks a message and returns a rejection result if the message violates it
type rule struct {
	name  verdict.Rule
	check func(text string) (verdict.Result, bool)
}

// NewEngine makes an engine with the given config
func NewEngine(c Config) *Engine {
	res := &Engine{keywords: c.Keywords, greekLetter: c.GreekAlphabets}
	if res.greekLetter == 0 {
		res.greekLetter = script.GreekAlphabets
	}
	// order matters: the cheapest and most certain rule goes first, keywords scale with the list size
	res.rules = []rule{
		{name: verdict.RuleGreek, check: res.greekRule},
		{name: verdict.RuleMixed, check: res.mixedRule},
		{name: verdict.RuleKeyword, check: res.keywordRule},
	}
	return res
}

// Validate checks the message against all rules and returns the first rejection, or a valid result
func (e *Engine) Validate(text string) verdict.Result {
	for _, r := range e.rules {
		if res, rejected := r.check(text); rejected {
			return res
		}
	}
	return verdict.Pass()
}

// Rules returns rule names in the evaluation order
func (e *Engine) Rules() []verdict.Rule {
	res := make([]verdict.Rule, 0, len(e.rules))
	for _, r := range e.rules {
		res = append(res, r.name)
	}
	return res
}

// Keywords returns the keyword set used by the engine
func (e *Engine) Keywords() Keywords { return e.keywords }

func (e *Engine) greekRule(text string) (verdict.Result, bool) {
	m, ok := findGreekSymbol(text, e.greekLetter)
	if !ok {
		return verdict.Result{}, false
	}
	return verdict.Reject(verdict.RuleGreek, m.Word,
		fmt.Sprintf("Message contains Greek alphabet symbol '%s' in word '%s'", m.Symbol, m.Word)), true
}

func (e *Engine) mixedRule(text string) (verdict.Result, bool) {
	word, ok := FindMixedAlphabetWord(text)
	if !ok {
		return verdict.Result{}, false
	}
	return verdict.Reject(verdict.RuleMixed, word,
		fmt.Sprintf("Message contains mixed alphabets in word '%s' (character confusion attack)", word)), true
}

func (e *Engine) keywordRule(text string) (verdict.Result, bool) {
	kw, ok := e.keywords.Find(text)
	if !ok {
		return verdict.Result{}, false
	}
	return verdict.Reject(verdict.RuleKeyword, kw, fmt.Sprintf("Message matched spam keyword '%s'", kw)), true
}

// ValidateMessage checks a single message with the default engine configuration and given keywords
func ValidateMessage(text string, kw Keywords) verdict.Result {
	return NewEngine(Config{Keywords: kw}).Validate(text)
}
