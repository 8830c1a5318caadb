package utils

import "testing"

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"aapl", "AAPL"},
		{"  msft  ", "MSFT"},
		{"$TSLA", "TSLA"},
		{"$nvda", "NVDA"},
		{"BRK.B", "BRK.B"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTicker(tt.input); got != tt.expected {
			t.Errorf("NormalizeTicker(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestToYahooSymbol(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"AAPL", "AAPL"},
		{"brk.b", "BRK-B"},
		{"BF.A", "BF-A"},
	}
	for _, tt := range tests {
		if got := ToYahooSymbol(tt.input); got != tt.expected {
			t.Errorf("ToYahooSymbol(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFromYahooSymbol(t *testing.T) {
	if got := FromYahooSymbol("BRK-B"); got != "BRK.B" {
		t.Errorf("FromYahooSymbol(BRK-B) = %q, want BRK.B", got)
	}
}
