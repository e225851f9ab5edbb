package source

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

// Token codes (start at 1 to avoid clash with parsly.EOF).
const (
	numberCode = iota + 1
	rangeCode
	commaCode
	wordCode
)

// Token definitions
var (
	whitespaceToken = parsly.NewToken(0, "Whitespace", matcher.NewWhiteSpace())
	numberToken     = parsly.NewToken(numberCode, "Number", newNumberMatcher())
	rangeToken      = parsly.NewToken(rangeCode, "..", matcher.NewFragment(".."))
	commaToken      = parsly.NewToken(commaCode, ",", matcher.NewByte(','))
	wordToken       = parsly.NewToken(wordCode, "Word", newWordMatcher())
)

// Custom matchers
func newNumberMatcher() parsly.Matcher {
	return &numberMatcher{}
}

func newWordMatcher() parsly.Matcher {
	return &wordMatcher{}
}

// numberMatcher matches a signed integer or decimal literal
type numberMatcher struct{}

func (m *numberMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size {
		return 0
	}

	matched := 0
	if input[pos] == '-' {
		matched++
		pos++
	}

	digits := 0
	for pos < size && isDigit(input[pos]) {
		matched++
		digits++
		pos++
	}
	if digits == 0 {
		return 0
	}

	// Consume a fraction only when the dot is followed by a digit,
	// so the range operator ".." stays intact
	if pos+1 < size && input[pos] == '.' && isDigit(input[pos+1]) {
		matched++
		pos++
		for pos < size && isDigit(input[pos]) {
			matched++
			pos++
		}
	}
	return matched
}

// wordMatcher matches a bare word item
type wordMatcher struct{}

func (m *wordMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize

	if pos >= size {
		return 0
	}

	// First character must be a letter or underscore
	if !isLetter(input[pos]) && input[pos] != '_' {
		return 0
	}

	matched := 1
	for i := pos + 1; i < size; i++ {
		if isLetter(input[i]) || isDigit(input[i]) || input[i] == '_' || input[i] == '-' {
			matched++
			continue
		}
		break
	}
	return matched
}

// Helper functions
func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
