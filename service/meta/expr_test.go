package meta

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnvExpr(t *testing.T) {
	testCases := []struct {
		description string
		env         map[string]string
		input       string
		expected    string
	}{
		{
			description: "no expressions",
			input:       "capacity: 3",
			expected:    "capacity: 3",
		},
		{
			description: "single expression",
			env:         map[string]string{"CONVEYOR_CAP": "8"},
			input:       "capacity: ${env.CONVEYOR_CAP}",
			expected:    "capacity: 8",
		},
		{
			description: "repeated expressions",
			env:         map[string]string{"A_1": "x", "B_2": "y"},
			input:       "${env.A_1}/${env.B_2}/${env.A_1}",
			expected:    "x/y/x",
		},
		{
			description: "unset variable expands to empty",
			input:       "label=${env.CONVEYOR_UNSET}.",
			expected:    "label=.",
		},
		{
			description: "unterminated expression stays literal, nested still expands",
			env:         map[string]string{"CONVEYOR_CAP": "8"},
			input:       "a ${env.CONVEYOR_CAP and ${env.CONVEYOR_UNSET} b",
			expected:    "a ${env.CONVEYOR_CAP and  b",
		},
		{
			description: "empty key expands to empty",
			input:       "a ${env.} b",
			expected:    "a  b",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			for _, key := range []string{"CONVEYOR_CAP", "CONVEYOR_UNSET", "A_1", "B_2"} {
				_ = os.Unsetenv(key)
			}
			for key, value := range testCase.env {
				t.Setenv(key, value)
			}
			assert.Equal(t, testCase.expected, expandEnvExpr(testCase.input), testCase.description)
		})
	}
}
