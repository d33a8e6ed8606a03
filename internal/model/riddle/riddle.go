package riddle

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Riddle pairs a question with the answer that unlocks the gate.
type Riddle struct {
	Question string `json:"question"`
	Answer   string `json:"-"`
}

// Seed provides the fixed pool of easy riddles served by the gate.
func Seed() []Riddle {
	return []Riddle{
		{Question: "What is 2 + 2?", Answer: "4"},
		{Question: `What is the reverse of "abc"?`, Answer: "cba"},
		{Question: "If you have one apple and get one more, how many apples?", Answer: "2"},
		{Question: "What is 3 * 3?", Answer: "9"},
		{Question: "The binary for decimal 1 is?", Answer: "1"},
		{Question: "What comes next in sequence 1,2,3, ? ", Answer: "4"},
		{Question: `What is the length of the string "hi"?`, Answer: "2"},
		{Question: "If f(0)=0 and f(n)=n for small n, f(2)=?", Answer: "2"},
		{Question: "Simple logic: True AND False is?", Answer: "false"},
		{Question: "What is 10 divided by 2?", Answer: "5"},
	}
}

// Normalize trims surrounding whitespace and lowercases s so that answers
// and guesses compare case- and whitespace-insensitively.
func Normalize(s string) string {
	trimmed := strings.TrimSpace(norm.NFC.String(s))
	// Casers carry state, so each call gets its own.
	return cases.Lower(language.Und).String(trimmed)
}
