package guard

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/umputun/tg-guard/lib/script"
	"github.com/umputun/tg-guard/lib/verdict"
)

func TestEngine_Validate(t *testing.T) {
	e := NewEngine(Config{Keywords: NewKeywords("crypto now", "free money", "")})

	tests := []struct {
		name string
		text string
		want verdict.Result
	}{
		{"empty", "", verdict.Result{Valid: true}},
		{"whitespace only", " \n\t ", verdict.Result{Valid: true}},
		{"no letters", "12345 !!! 😀 ... 42", verdict.Result{Valid: true}},
		{"hello world", "Hello world", verdict.Result{Valid: true}},
		{
			name: "greek in mixed word",
			text: "Привіт ωорлд",
			want: verdict.Result{Rule: verdict.RuleGreek, Trigger: "ωорлд",
				Reason: "Message contains Greek alphabet symbol 'ω' in word 'ωорлд'"},
		},
		{"single cyrillic letter is a typo", "Cаnada", verdict.Result{Valid: true}},
		{
			name: "confusion attack",
			text: "Cанаda",
			want: verdict.Result{Rule: verdict.RuleMixed, Trigger: "Cанаda",
				Reason: "Message contains mixed alphabets in word 'Cанаda' (character confusion attack)"},
		},
		{
			name: "keyword",
			text: "buy crypto now",
			want: verdict.Result{Rule: verdict.RuleKeyword, Trigger: "crypto now",
				Reason: "Message matched spam keyword 'crypto now'"},
		},
		{
			name: "keyword case insensitive",
			text: "FREE Money now",
			want: verdict.Result{Rule: verdict.RuleKeyword, Trigger: "free money",
				Reason: "Message matched spam keyword 'free money'"},
		},
		{
			name: "greek wins over confusion and keyword",
			text: "Cанаda buy crypto now gοοd",
			want: verdict.Result{Rule: verdict.RuleGreek, Trigger: "gοοd",
				Reason: "Message contains Greek alphabet symbol 'ο' in word 'gοοd'"},
		},
		{
			name: "confusion wins over keyword",
			text: "buy crypto now Cанаda",
			want: verdict.Result{Rule: verdict.RuleMixed, Trigger: "Cанаda",
				Reason: "Message contains mixed alphabets in word 'Cанаda' (character confusion attack)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Validate(tt.text))
		})
	}
}

func TestEngine_NoKeywords(t *testing.T) {
	e := NewEngine(Config{})
	assert.Equal(t, verdict.Pass(), e.Validate("buy crypto now"))
	assert.Equal(t, 0, e.Keywords().Len())
	assert.Equal(t, verdict.RuleMixed, e.Validate("Cанаda").Rule)
}

func TestEngine_Rules(t *testing.T) {
	e := NewEngine(Config{})
	assert.Equal(t, []verdict.Rule{verdict.RuleGreek, verdict.RuleMixed, verdict.RuleKeyword}, e.Rules())
}

func TestEngine_GreekAlphabets(t *testing.T) {
	def := NewEngine(Config{})
	assert.Equal(t, "їλ", def.Validate("їλ").Trigger)

	noUkr := NewEngine(Config{GreekAlphabets: script.LatinLetters | script.CyrillicLetters | script.GreekLetters})
	assert.Equal(t, "λ", noUkr.Validate("їλ").Trigger)
}

func TestEngine_GreekAlwaysWins(t *testing.T) {
	e := NewEngine(Config{Keywords: NewKeywords("spam")})
	texts := []string{"spam α", "α spam", "Cанаda β", "hello wοrld", "x Ω"}
	for _, text := range texts {
		res := e.Validate(text)
		assert.False(t, res.Valid, text)
		assert.Equal(t, verdict.RuleGreek, res.Rule, text)
	}
}

func TestEngine_Idempotent(t *testing.T) {
	e := NewEngine(Config{Keywords: NewKeywords("crypto now")})
	for _, text := range []string{"", "Hello", "Cанаda", "Привіт ωорлд", "buy crypto now"} {
		assert.Equal(t, e.Validate(text), e.Validate(text), text)
	}
}

func TestEngine_ValidInvariant(t *testing.T) {
	e := NewEngine(Config{Keywords: NewKeywords("crypto")})
	for _, text := range []string{"", "ok", "crypto", "Cанаda", "σ", "Cаnada", "abc 123"} {
		res := e.Validate(text)
		assert.Equal(t, res.Valid, res.Rule == verdict.RuleNone, text)
		if !res.Valid {
			assert.Contains(t, text, res.Trigger, "trigger is a literal part of the text")
		}
	}
}

func TestEngine_Concurrent(t *testing.T) {
	e := NewEngine(Config{Keywords: NewKeywords("crypto now")})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := fmt.Sprintf("message %d buy crypto now", i)
			assert.Equal(t, verdict.RuleKeyword, e.Validate(text).Rule)
		}(i)
	}
	wg.Wait()
}

func TestValidateMessage(t *testing.T) {
	res := ValidateMessage("buy crypto now", NewKeywords("crypto now"))
	assert.Equal(t, verdict.RuleKeyword, res.Rule)
	assert.Equal(t, "crypto now", res.Trigger)

	assert.True(t, ValidateMessage("Hello world", Keywords{}).Valid)
	assert.True(t, ValidateMessage("anything at all", NewKeywords("")).Valid)
}
