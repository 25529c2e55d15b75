package domain

import "testing"

func TestFormatDocument(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12345678900", "123.456.789-00"},
		{"123.456.789-00", "123.456.789-00"},
		{"12345678000190", "12.345.678/0001-90"},
		{"", ""},
		{"12345", "12345"},
	}
	for _, tc := range tests {
		if got := FormatDocument(tc.in); got != tc.want {
			t.Errorf("FormatDocument(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
