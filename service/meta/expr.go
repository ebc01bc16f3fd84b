package meta

import (
	"os"
	"strings"
	"unicode"
)

// expandEnvExpr replaces every ${env.KEY} occurrence in the input with the
// value of the environment variable KEY, or "" when unset.  Keys may contain
// letters, digits and underscores; an expression with any other character is
// left as literal text apart from the consumed prefix, and a missing closing
// brace turns the remainder of the input into literal text.
func expandEnvExpr(value string) string {
	const prefix = "${env."
	var b strings.Builder
	i := 0
	for {
		idx := strings.Index(value[i:], prefix)
		if idx < 0 {
			b.WriteString(value[i:])
			break
		}

		b.WriteString(value[i : i+idx])
		startKey := i + idx + len(prefix)

		endKey := strings.IndexByte(value[startKey:], '}')
		if endKey < 0 {
			b.WriteString(value[i+idx:])
			break
		}

		key := value[startKey : startKey+endKey]

		valid := true
		for _, r := range key {
			if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
				valid = false
				break
			}
		}

		if valid {
			b.WriteString(os.Getenv(key))
		} else {
			// Emit the detected prefix as literal and rescan right after it
			// so nested expressions are still processed.
			b.WriteString(value[i+idx : startKey])
			i = startKey
			continue
		}

		i = startKey + endKey + 1
	}

	return b.String()
}
