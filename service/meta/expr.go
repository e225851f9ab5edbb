package meta

import (
	"os"
	"strings"
	"unicode"
)

const envExprPrefix = "${env."

// expandEnvExpr substitutes every ${env.KEY} occurrence in a loaded document
// with the value of the KEY environment variable.  Unset variables expand to
// an empty string and malformed expressions stay in the output verbatim.
func expandEnvExpr(value string) string {
	if !strings.Contains(value, envExprPrefix) {
		return value
	}
	var out strings.Builder
	for len(value) > 0 {
		offset := strings.Index(value, envExprPrefix)
		if offset < 0 {
			out.WriteString(value)
			break
		}
		out.WriteString(value[:offset])
		value = value[offset+len(envExprPrefix):]
		closing := strings.IndexByte(value, '}')
		if closing < 0 {
			// unterminated expression, keep the tail as literal text
			out.WriteString(envExprPrefix)
			out.WriteString(value)
			break
		}
		key := value[:closing]
		if !isEnvKey(key) {
			// not a key after all, emit the prefix verbatim and rescan the
			// remainder so nested expressions still expand
			out.WriteString(envExprPrefix)
			continue
		}
		out.WriteString(os.Getenv(key))
		value = value[closing+1:]
	}
	return out.String()
}

// isEnvKey accepts letters, digits and underscores; an empty key expands to
// an empty value rather than failing the whole document.
func isEnvKey(key string) bool {
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
