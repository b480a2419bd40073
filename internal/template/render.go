package template

import (
	"regexp"

	"github.com/jubbon/isolde-sub000/internal/errors"
)

// tokenRegex matches {{TOKEN}} placeholders. Token names are uppercase with
// digits and underscores; anything else passes through untouched.
var tokenRegex = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_]*)\}\}`)

// Render substitutes every {{TOKEN}} in text with its table value. Every
// token present in the text must exist in the table; the first unknown token
// aborts rendering with an error naming the template and the token. An empty
// string in the table is a defined value and substitutes normally.
func Render(name string, text []byte, table Table) ([]byte, error) {
	var missing string
	out := tokenRegex.ReplaceAllFunc(text, func(match []byte) []byte {
		token := string(match[2 : len(match)-2])
		value, ok := table[token]
		if !ok {
			if missing == "" {
				missing = token
			}
			return match
		}
		return []byte(value)
	})

	if missing != "" {
		return nil, errors.RenderFailed(name, missing)
	}
	return out, nil
}
