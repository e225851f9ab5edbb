package coordinator

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// Verify reports whether the output sequence reproduces the source
// element-wise: same length, same items, same order.
func Verify[T comparable](source, output []T) bool {
	if len(source) != len(output) {
		return false
	}
	for i := range source {
		if source[i] != output[i] {
			return false
		}
	}
	return true
}

// Diff renders a unified diff between the source and output sequences, one
// item per line, for journaling verification failures.
func Diff[T any](source, output []T) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        render(source),
		B:        render(output),
		FromFile: "source",
		ToFile:   "output",
		Context:  2,
	})
	if err != nil {
		return ""
	}
	return diff
}

func render[T any](items []T) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = fmt.Sprintf("%v\n", item)
	}
	return out
}
