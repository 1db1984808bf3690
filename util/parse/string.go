package parse

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// indentRx represents regex which 1st capturing group contains 1 or more space characters in the beginnging of the line
var indentRx = regexp.MustCompile(`^( +).*`)

// GetIndent returns amount of space characters in the beginning of the <line>
func GetIndent(line string) int {
	if matches := indentRx.FindStringSubmatch(line); len(matches) > 1 {
		return len(matches[1])
	}
	return 0
}

// LastPathItem returns last item in <path> split by <delim> or <path> if <delim> is empty or last item is empty
func LastPathItem(path, delim string) string {
	if delim == "" {
		return path
	}
	item, _ := lo.Last(strings.Split(path, delim))
	return lo.Ternary(item == "", path, item)
}

// ParentPath returns <path> without it's last item split by <delim>.
//
// Returns empty string if <path> has only one item or <delim> is empty.
func ParentPath(path, delim string) string {
	if delim == "" {
		return ""
	}
	idx := strings.LastIndex(path, delim)
	return lo.Ternary(idx < 0, "", path[:max(idx, 0)])
}

// JoinPath returns <parent> and <child> joined with <delim>, omitting <delim> if any of them is empty
func JoinPath(parent, child, delim string) string {
	return strings.Join(lo.Compact([]string{parent, child}), delim)
}
