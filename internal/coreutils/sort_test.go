// SPDX-License-Identifier: MPL-2.0

package coreutils

import "testing"

func TestSortUniq(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t)
	e.write("/words", "pear\napple\nPear\napple\nbanana\n")
	e.write("/nums", "10\n9\n-1\n100\n")
	e.write("/runs", "a\na\nb\nc\nc\nc\n")

	tests := []struct {
		line string
		want string
	}{
		{"sort words", "Pear\napple\napple\nbanana\npear"},
		{"sort -r words", "pear\nbanana\napple\napple\nPear"},
		{"sort -u words", "Pear\napple\nbanana\npear"},
		{"sort -f words", "apple\napple\nbanana\npear\nPear"},
		{"sort nums", "-1\n10\n100\n9"},
		{"sort -n nums", "-1\n9\n10\n100"},
		{"uniq runs", "a\nb\nc"},
		{"uniq -c runs", "      2 a\n      1 b\n      3 c"},
		{"uniq -d runs", "a\nc"},
		{"uniq -u runs", "b"},
	}
	for _, tt := range tests {
		if got := e.output(tt.line); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestLeadingNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"  3.5 apples", 3.5},
		{"-7x", -7},
		{"abc", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := leadingNumber(tt.in); got != tt.want {
			t.Errorf("leadingNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
