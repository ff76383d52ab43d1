package format

import (
	"fmt"
	"strings"
)

// Price formats an amount in cents as US dollars.
// Example: Price(1350) => "$13.50"
func Price(minor int64) string {
	neg := minor < 0
	if neg {
		minor = -minor
	}
	major := minor / 100
	cents := minor % 100
	out := "$" + thousandSep(major) + fmt.Sprintf(".%02d", cents)
	if neg {
		return "-" + out
	}
	return out
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	if neg {
		return "-" + out
	}
	return out
}
