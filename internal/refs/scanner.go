// Package refs implements the {{Variable Name}} reference engine: scanning
// nested export structures for symbolic references, counting exact
// occurrences, and expanding variable-to-variable reference chains.
package refs

import (
	"regexp"
	"sort"
	"strings"
)

// refPattern matches a double-brace-wrapped span. The character class
// excludes '}' so adjacent references like "{{A}} {{B}}" split correctly.
var refPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// ScanString returns the set of reference names embedded in s.
func ScanString(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, m := range refPattern.FindAllStringSubmatch(s, -1) {
		out[m[1]] = struct{}{}
	}
	return out
}

// Scan returns the set of reference names reachable from value. Strings are
// pattern-matched, map values and list elements are scanned recursively,
// and every other JSON scalar contributes nothing. Map keys are never
// scanned.
func Scan(value any) map[string]struct{} {
	out := make(map[string]struct{})
	scanInto(value, out)
	return out
}

func scanInto(value any, out map[string]struct{}) {
	switch v := value.(type) {
	case string:
		for _, m := range refPattern.FindAllStringSubmatch(v, -1) {
			out[m[1]] = struct{}{}
		}
	case map[string]any:
		for _, item := range v {
			scanInto(item, out)
		}
	case []any:
		for _, item := range v {
			scanInto(item, out)
		}
	}
}

// CountOccurrences counts non-overlapping occurrences of the literal token
// {{name}} within all string content reachable from value. The name is
// matched as a literal, so regex metacharacters in variable names are inert.
func CountOccurrences(value any, name string) int {
	token := "{{" + name + "}}"
	return countToken(value, token)
}

func countToken(value any, token string) int {
	switch v := value.(type) {
	case string:
		return strings.Count(v, token)
	case map[string]any:
		n := 0
		for _, item := range v {
			n += countToken(item, token)
		}
		return n
	case []any:
		n := 0
		for _, item := range v {
			n += countToken(item, token)
		}
		return n
	}
	return 0
}

// SortedNames returns the members of a reference set in lexical order.
func SortedNames(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
