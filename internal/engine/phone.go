package engine

import (
	"regexp"
	"strings"
)

// phonePattern accepts an optional leading plus followed by 7 to 15 digits,
// the length range of international subscriber numbers.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// NormalizePhone canonicalizes a user-supplied phone number. Common separator
// characters are dropped, an international 00 prefix becomes a plus, and the
// result must match phonePattern. The second return reports acceptance.
func NormalizePhone(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && b.Len() == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')' || r == '/':
			// separator, dropped
		default:
			return "", false
		}
	}
	n := b.String()
	if strings.HasPrefix(n, "00") {
		n = "+" + n[2:]
	}
	if !phonePattern.MatchString(n) {
		return "", false
	}
	return n, true
}
