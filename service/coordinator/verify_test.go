package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerify(t *testing.T) {
	assert.True(t, Verify([]int{1, 2, 3}, []int{1, 2, 3}))
	assert.True(t, Verify(nil, []int{}))
	assert.False(t, Verify([]int{1, 2, 3}, []int{1, 3, 2}))
	assert.False(t, Verify([]int{1, 2, 3}, []int{1, 2}))
	assert.False(t, Verify([]string{"a"}, []string{"b"}))
}

func TestDiff(t *testing.T) {
	diff := Diff([]int{1, 2, 3}, []int{1, 2, 4})
	assert.Contains(t, diff, "--- source")
	assert.Contains(t, diff, "+++ output")
	assert.Contains(t, diff, "-3")
	assert.Contains(t, diff, "+4")

	assert.Empty(t, Diff([]int{1}, []int{1}))
}
