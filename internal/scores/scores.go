// Package scores holds the display rules shared by the chat controller and
// the PDF report: fraction normalization, color lookups and label parsing.
package scores

import (
	"math"
	"strings"
)

const (
	HexRed     = "#ef4444"
	HexOrange  = "#f97316"
	HexGreen   = "#22c55e"
	HexDefault = "#3b82f6"
)

// RGB is an 8-bit color triple.
type RGB struct{ R, G, B int }

var (
	BarRed    = RGB{239, 68, 68}
	BarOrange = RGB{249, 115, 22}
	BarGreen  = RGB{34, 197, 94}
)

// Normalize converts a score to the percentage shown on screen. Values in
// (0,1] are fractions and become round(s*100); anything else is unchanged.
// NaN counts as 0.
func Normalize(s float64) float64 {
	if math.IsNaN(s) {
		return 0
	}
	if s > 0 && s <= 1 {
		return math.Round(s * 100)
	}
	return s
}

// ColorHex maps a color tag to its accent hex.
func ColorHex(color string) string {
	switch color {
	case "RED":
		return HexRed
	case "ORANGE":
		return HexOrange
	case "GREEN":
		return HexGreen
	default:
		return HexDefault
	}
}

// StatusLabel maps a color tag to the status text.
func StatusLabel(color string) string {
	switch color {
	case "GREEN":
		return "Stable"
	case "ORANGE":
		return "Elevated"
	case "RED":
		return "Critical"
	default:
		return "Clear"
	}
}

// BarColor picks the report bar color: >=70 red, >=35 orange, else green.
func BarColor(score int) RGB {
	switch {
	case score >= 70:
		return BarRed
	case score >= 35:
		return BarOrange
	default:
		return BarGreen
	}
}

// ParseLeadingInt reads an integer the way parseInt does: optional leading
// whitespace and sign, then decimal digits. No digits yields 0.
func ParseLeadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		if n > (math.MaxInt32-int(c-'0'))/10 {
			n = math.MaxInt32
			break
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		return -n
	}
	return n
}

// Label formats a displayed percentage, e.g. 80 -> "80%".
func Label(pct float64) string {
	return formatNumber(pct) + "%"
}
