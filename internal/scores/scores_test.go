package scores

import (
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.8, 80},
		{0.1, 10},
		{1, 100},
		{0.004, 0},
		{0.005, 1},
		{0, 0},
		{1.5, 1.5},
		{80, 80},
		{-0.5, -0.5},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Fatalf("Normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestColorHex(t *testing.T) {
	tests := map[string]string{
		"RED":    "#ef4444",
		"ORANGE": "#f97316",
		"GREEN":  "#22c55e",
		"BLUE":   "#3b82f6",
		"":       "#3b82f6",
		"red":    "#3b82f6",
	}
	for in, want := range tests {
		if got := ColorHex(in); got != want {
			t.Fatalf("ColorHex(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	tests := map[string]string{"GREEN": "Stable", "ORANGE": "Elevated", "RED": "Critical", "PURPLE": "Clear"}
	for in, want := range tests {
		if got := StatusLabel(in); got != want {
			t.Fatalf("StatusLabel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestBarColorThresholds(t *testing.T) {
	tests := []struct {
		score int
		want  RGB
	}{
		{69, BarOrange},
		{70, BarRed},
		{100, BarRed},
		{34, BarGreen},
		{35, BarOrange},
		{0, BarGreen},
	}
	for _, tt := range tests {
		if got := BarColor(tt.score); got != tt.want {
			t.Fatalf("BarColor(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := map[string]int{
		"80%":    80,
		"  42 %": 42,
		"-5%":    -5,
		"+7":     7,
		"12.9%":  12,
		"abc":    0,
		"":       0,
		"%80":    0,
	}
	for in, want := range tests {
		if got := ParseLeadingInt(in); got != want {
			t.Fatalf("ParseLeadingInt(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Label(Normalize(0.8)); got != "80%" {
		t.Fatalf("unexpected label %s", got)
	}
	if got := Label(1.5); got != "1.5%" {
		t.Fatalf("unexpected label %s", got)
	}
}
