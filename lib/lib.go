// Package lib provides message validation against character-confusion spam. The primary type in this package
// is the Engine, which checks a message text with a fixed, ordered set of rules and returns a Result
// explaining which rule fired and what literal part of the message triggered it.
//
// The Engine is immutable and safe for concurrent use.
//
// Rules, evaluated in this order, the first rejecting rule wins:
//
//   - greek_rule: any word containing a greek character (U+0370–U+03FF, U+1F00–U+1FFF). Greek letters
//     are a common trick to obfuscate links and names in otherwise latin or cyrillic spam.
//
//   - mixed_rule: a word mixing latin and cyrillic letters where the minority script contributes two or more
//     characters. A single foreign look-alike letter is treated as a typo and tolerated.
//
//   - keyword_rule: case-insensitive substring match against a list of known spam phrases. Keywords are
//     passed to the engine with Config.Keywords, LoadKeywords reads them from a json array of strings.
//     Empty phrases are ignored.
//
// Example:
//
//	kw, err := lib.LoadKeywords(fh)
//	if err != nil {
//		kw = lib.Keywords{} // fail open, greek and mixed rules still work
//	}
//	engine := lib.NewEngine(lib.Config{Keywords: kw})
//	res := engine.Validate("buy crypto now")
//	if !res.Valid {
//		log.Printf("rejected by %s, trigger %q: %s", res.Rule, res.Trigger, res.Reason)
//	}
package lib

import (
	"github.com/umputun/tg-guard/lib/guard"
	"github.com/umputun/tg-guard/lib/script"
	"github.com/umputun/tg-guard/lib/verdict"
)

// Engine is an alias for guard.Engine
type Engine = guard.Engine

// Config is an alias for guard.Config
type Config = guard.Config

// Keywords is an alias for guard.Keywords
type Keywords = guard.Keywords

// Result is an alias for verdict.Result
type Result = verdict.Result

// Rule is an alias for verdict.Rule
type Rule = verdict.Rule

// Alphabets is an alias for script.Alphabets
type Alphabets = script.Alphabets

// rules, in evaluation order
const (
	RuleGreek   = verdict.RuleGreek
	RuleMixed   = verdict.RuleMixed
	RuleKeyword = verdict.RuleKeyword
)

// NewEngine makes a new Engine with the given config
var NewEngine = guard.NewEngine

// NewKeywords makes keywords from the list of phrases
var NewKeywords = guard.NewKeywords

// LoadKeywords reads keywords from a json array of strings
var LoadKeywords = guard.LoadKeywords
