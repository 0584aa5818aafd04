package logincode

import "strings"

// Denylisted reports whether a candidate code matches the fixed set of
// cosmetic filters: the substring "666", four consecutive ascending
// digits, four consecutive descending digits, or four identical digits.
// These are superstition filters, not security filters; clients depend
// on this exact rule set, so it must not be tightened or relaxed.
func Denylisted(code string) bool {
	if strings.Contains(code, "666") {
		return true
	}
	if len(code) != codeLength {
		return false
	}

	ascending, descending, identical := true, true, true
	for i := 1; i < len(code); i++ {
		prev, cur := code[i-1], code[i]
		if cur != prev+1 {
			ascending = false
		}
		if cur != prev-1 {
			descending = false
		}
		if cur != prev {
			identical = false
		}
	}
	return ascending || descending || identical
}
