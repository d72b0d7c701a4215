package css

import (
	"fmt"
	"strings"
)

type Color struct {
	R, G, B uint8
}

// Hex renders the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGB returns the channels scaled to 0..1.
func (c Color) RGB() (r, g, b float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// palette is the closed set of named text colors.
var palette = map[string]Color{
	"red":   {255, 0, 0},
	"green": {0, 255, 0},
	"blue":  {0, 0, 255},
}

// ParseColor looks a name up in the palette.
func ParseColor(colorStr string) (Color, bool) {
	color, ok := palette[strings.ToLower(strings.TrimSpace(colorStr))]
	return color, ok
}

// ParseHex parses #rgb and #rrggbb notations, and falls back to the palette.
func ParseHex(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		return ParseColor(s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, false
	}
	var c Color
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return Color{}, false
	}
	return c, true
}
