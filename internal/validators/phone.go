package validators

import "strings"

// NormalizePhone keeps digits and a leading "+". It returns "" when fewer
// than 6 digits remain.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)

	var b strings.Builder
	digits := 0
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			digits++
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}

	if digits < 6 || digits > 15 {
		return ""
	}
	return b.String()
}
