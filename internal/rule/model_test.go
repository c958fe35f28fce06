package rule

import (
	"testing"
)

func TestNormalizeTicker(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "lowercase with spaces", input: " tsla ", expected: "TSLA"},
		{name: "already normalized", input: "TSLA", expected: "TSLA"},
		{name: "mixed case", input: "aApL", expected: "AAPL"},
		{name: "tabs and newlines", input: "\tmsft\n", expected: "MSFT"},
		{name: "blank", input: "   ", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTicker(tt.input)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}

			// Normalization is idempotent.
			if again := NormalizeTicker(got); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Direction
		wantErr bool
	}{
		{name: "above", input: "ABOVE", want: DirectionAbove},
		{name: "below", input: "BELOW", want: DirectionBelow},
		{name: "lowercase rejected", input: "above", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "garbage rejected", input: "SIDEWAYS", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestTickerDirectionKey(t *testing.T) {
	r := &Rule{Ticker: "TSLA", Direction: DirectionAbove}
	if got := r.TickerDirection(); got != "TSLA#ABOVE" {
		t.Errorf("expected TSLA#ABOVE, got %q", got)
	}
	if got := TickerDirectionKey("AAPL", DirectionBelow); got != "AAPL#BELOW" {
		t.Errorf("expected AAPL#BELOW, got %q", got)
	}
}
