package replace

import (
	"fmt"
	"regexp"

	"github.com/samber/lo"
)

// tokenRx represents regex matching variable tokens written as %name% or {name}
var tokenRx = regexp.MustCompile(`%([A-Za-z0-9_.-]+)%|\{([A-Za-z0-9_.-]+)\}`)

// Variables returns <text> with tokens replaced by values of <pairs> given as name, value, name, value, ...
//
// Tokens of unknown variables are kept as is. Trailing name without value is ignored.
func Variables(text string, pairs ...any) string {
	if len(pairs) < 2 {
		return text
	}
	values := make(map[string]any, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		values[fmt.Sprint(pairs[i])] = pairs[i+1]
	}
	return tokenRx.ReplaceAllStringFunc(text, func(token string) string {
		match := tokenRx.FindStringSubmatch(token)
		if value, ok := values[match[1]+match[2]]; ok {
			return fmt.Sprint(value)
		}
		return token
	})
}

// VariablesList returns copy of <list> with tokens in every item replaced by values of <pairs>
func VariablesList(list []string, pairs ...any) []string {
	return lo.Map(list, func(item string, _ int) string {
		return Variables(item, pairs...)
	})
}
