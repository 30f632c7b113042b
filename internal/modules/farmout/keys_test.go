// README: Key normalization tests.
package farmout

import "testing"

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"---", ""},
		{"enroute", "enroute"},
		{"En Route", "en_route"},
		{"EN-ROUTE", "en_route"},
		{"Farm_Out Unassigned", "farm_out_unassigned"},
		{"farm-out!!status", "farm_out_status"},
		{"  Passenger On Board  ", "passenger_on_board"},
		{"__already_normal__", "already_normal"},
		{"a  b\t c", "a_b_c"},
		{"123-ABC", "123_abc"},
	}
	for _, tc := range cases {
		if got := NormalizeKey(tc.in); got != tc.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeKeyIdempotent(t *testing.T) {
	inputs := []string{
		"", "En Route", "Farm_Out Unassigned", "  weird -- INPUT 42 ",
		"already_canonical", "!!!", "Ünïcode Stuff", "a-b_c d",
	}
	for _, in := range inputs {
		once := NormalizeKey(in)
		twice := NormalizeKey(once)
		if once != twice {
			t.Errorf("NormalizeKey not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
