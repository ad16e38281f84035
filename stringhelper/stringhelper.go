package stringhelper

import "strings"

// RemoveEmptyAndDeduplicate trims each entry, drops blanks and keeps the first
// occurrence of every remaining value.
func RemoveEmptyAndDeduplicate(in []string) []string {
	seen := map[string]struct{}{}
	ret := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, exists := seen[s]; exists {
			continue
		}
		seen[s] = struct{}{}
		ret = append(ret, s)
	}
	return ret
}
