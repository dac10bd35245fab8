package ink

import (
	"fmt"
	"strconv"
	"strings"
)

// Persisted records use CSS-style color strings, so the renderer has to
// accept hex, rgb()/rgba() and the handful of names the toolbar offers.
var namedColors = map[string][3]float64{
	"black":  {0, 0, 0},
	"white":  {1, 1, 1},
	"red":    {1, 0, 0},
	"green":  {0, 0.5, 0},
	"blue":   {0, 0, 1},
	"yellow": {1, 0.85, 0.1},
	"orange": {1, 0.6, 0},
	"purple": {0.5, 0, 0.5},
}

// parseColor returns r, g, b in [0,1]. Unparsable input falls back to
// black rather than failing; a bad color should not drop a stroke.
func parseColor(s string) (float64, float64, float64) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c[0], c[1], c[2]
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		inner := s[strings.Index(s, "(")+1 : strings.LastIndex(s, ")")]
		parts := strings.Split(inner, ",")
		if len(parts) >= 3 {
			var ch [3]float64
			for i := 0; i < 3; i++ {
				v, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
				if err != nil {
					return 0, 0, 0
				}
				ch[i] = clamp(v/255, 0, 1)
			}
			return ch[0], ch[1], ch[2]
		}
	}
	return 0, 0, 0
}

// ColorRGB returns the 8-bit channels of a CSS-style color string, for
// callers outside the renderer (PDF export draws with the same colors).
func ColorRGB(s string) (uint8, uint8, uint8) {
	r, g, b := parseColor(s)
	return to8(r), to8(g), to8(b)
}

func parseHex(hex string) (float64, float64, float64) {
	switch len(hex) {
	case 3:
		hex = fmt.Sprintf("%c%c%c%c%c%c", hex[0], hex[0], hex[1], hex[1], hex[2], hex[2])
	case 6, 8:
	default:
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex[:6], 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return float64(v>>16&0xff) / 255, float64(v>>8&0xff) / 255, float64(v&0xff) / 255
}
