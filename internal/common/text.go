package common

import "strings"

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// CollapseSpace trims s and squeezes internal whitespace runs down to
// single spaces.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
