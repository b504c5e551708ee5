// Package verdict defines the result of a message validation shared by the library and its clients.
package verdict

import "fmt"

// Rule is a name of the rule that rejected a message
type Rule string

// enum of rules, in evaluation order
const (
	RuleNone    Rule = ""
	RuleGreek   Rule = "greek_rule"
	RuleMixed   Rule = "mixed_rule"
	RuleKeyword Rule = "keyword_rule"
)

// Result is a result of message validation.
// Valid is false if and only if Rule is set, Trigger is the literal part of the message caused the rejection.
type Result struct {
	Valid   bool   `json:"is_valid"`               // true if message passed all rules
	Reason  string `json:"reason,omitempty"`       // human-readable reason, empty for valid messages
	Rule    Rule   `json:"rule_name,omitempty"`    // rule fired, empty for valid messages
	Trigger string `json:"trigger_word,omitempty"` // word or keyword fired the rule
}

// Pass makes a result for a message passed all rules
func Pass() Result {
	return Result{Valid: true}
}

// Reject makes a result for a message rejected by the rule
func Reject(rule Rule, trigger, reason string) Result {
	return Result{Valid: false, Rule: rule, Trigger: trigger, Reason: reason}
}

func (r Result) String() string {
	if r.Valid {
		return "valid"
	}
	return fmt.Sprintf("%s: %q, %s", r.Rule, r.Trigger, r.Reason)
}

