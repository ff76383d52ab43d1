package format

import "testing"

func TestPrice(t *testing.T) {
	cases := []struct {
		minor int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{99, "$0.99"},
		{100, "$1.00"},
		{250, "$2.50"},
		{1350, "$13.50"},
		{123456, "$1,234.56"},
		{100000000, "$1,000,000.00"},
		{-1350, "-$13.50"},
	}
	for _, tc := range cases {
		if got := Price(tc.minor); got != tc.want {
			t.Errorf("Price(%d) = %q, want %q", tc.minor, got, tc.want)
		}
	}
}
