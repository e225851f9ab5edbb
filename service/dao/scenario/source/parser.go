package source

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/parsly"
)

// maxRangeSpan caps how many items a range expression may materialize.
const maxRangeSpan = 1 << 20

// Parse evaluates a scenario source expression in one of two forms: an
// inclusive integer range "1..100", or a comma separated list of scalars
// "1, 2, 3" (numbers or bare words). A single scalar yields a one-element
// list; empty input yields an empty list.
func Parse(input []byte) ([]interface{}, error) {
	cursor := parsly.NewCursor("", input, 0)

	matched := cursor.MatchAfterOptional(whitespaceToken, numberToken, wordToken)
	switch matched.Code {
	case numberToken.Code:
		first := matched.Text(cursor)
		if cursor.MatchAfterOptional(whitespaceToken, rangeToken).Code == rangeToken.Code {
			return parseRange(cursor, first)
		}
		return parseList(cursor, scalar(first))
	case wordToken.Code:
		return parseList(cursor, matched.Text(cursor))
	case parsly.EOF:
		return []interface{}{}, nil
	default:
		return nil, cursor.NewError(numberToken, wordToken)
	}
}

// parseRange expands from..to into consecutive integers.
func parseRange(cursor *parsly.Cursor, first string) ([]interface{}, error) {
	matched := cursor.MatchAfterOptional(whitespaceToken, numberToken)
	if matched.Code != numberToken.Code {
		return nil, cursor.NewError(numberToken)
	}
	last := matched.Text(cursor)
	if err := ensureConsumed(cursor); err != nil {
		return nil, err
	}
	from, err := strconv.Atoi(first)
	if err != nil {
		return nil, fmt.Errorf("range bounds must be integers, had %q", first)
	}
	to, err := strconv.Atoi(last)
	if err != nil {
		return nil, fmt.Errorf("range bounds must be integers, had %q", last)
	}
	if from > to {
		return nil, fmt.Errorf("descending range %d..%d", from, to)
	}
	if span := to - from + 1; span > maxRangeSpan {
		return nil, fmt.Errorf("range %d..%d exceeds %d items", from, to, maxRangeSpan)
	}
	items := make([]interface{}, 0, to-from+1)
	for i := from; i <= to; i++ {
		items = append(items, i)
	}
	return items, nil
}

// parseList collects the remaining comma separated values.
func parseList(cursor *parsly.Cursor, first interface{}) ([]interface{}, error) {
	items := []interface{}{first}
	for cursor.MatchAfterOptional(whitespaceToken, commaToken).Code == commaToken.Code {
		matched := cursor.MatchAfterOptional(whitespaceToken, numberToken, wordToken)
		switch matched.Code {
		case numberToken.Code:
			items = append(items, scalar(matched.Text(cursor)))
		case wordToken.Code:
			items = append(items, matched.Text(cursor))
		default:
			return nil, cursor.NewError(numberToken, wordToken)
		}
	}
	if err := ensureConsumed(cursor); err != nil {
		return nil, err
	}
	return items, nil
}

// scalar converts matched number text to its native value.
func scalar(text string) interface{} {
	if strings.IndexByte(text, '.') >= 0 {
		f, _ := strconv.ParseFloat(text, 64)
		return f
	}
	i, err := strconv.Atoi(text)
	if err != nil {
		return text
	}
	return i
}

// ensureConsumed rejects trailing input past the recognized expression.
func ensureConsumed(cursor *parsly.Cursor) error {
	cursor.MatchOne(whitespaceToken)
	if cursor.HasMore() {
		return fmt.Errorf("unexpected %q at position %d", string(cursor.Input[cursor.Pos:]), cursor.Pos)
	}
	return nil
}
