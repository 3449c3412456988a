package ui

import (
	"image/color"
	"strconv"
	"strings"
)

// parseColor understands "#rrggbb", "#rgb" and a few names the UI offers.
// Unparseable values fall back to black.
func parseColor(s string) color.Color {
	switch strings.ToLower(s) {
	case "black":
		return color.Black
	case "white":
		return color.White
	case "red":
		return color.NRGBA{R: 255, A: 255}
	case "green":
		return color.NRGBA{G: 255, A: 255}
	case "blue":
		return color.NRGBA{B: 255, A: 255}
	}
	if len(s) == 4 && s[0] == '#' {
		s = "#" + strings.Repeat(string(s[1]), 2) +
			strings.Repeat(string(s[2]), 2) + strings.Repeat(string(s[3]), 2)
	}
	if len(s) == 7 && s[0] == '#' {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			return color.NRGBA{
				R: uint8(v >> 16),
				G: uint8(v >> 8),
				B: uint8(v),
				A: 255,
			}
		}
	}
	return color.Black
}

func applyOpacity(c color.Color, opacity float32) color.Color {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	r, g, b, _ := c.RGBA()
	return color.NRGBA{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
		A: uint8(opacity * 255),
	}
}

// hexOf maps a color value back to its "#rrggbb" form for storage.
func hexOf(c color.Color) string {
	r, g, b, _ := c.RGBA()
	const digits = "0123456789abcdef"
	out := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []uint32{r >> 8, g >> 8, b >> 8} {
		out[1+i*2] = digits[v>>4]
		out[2+i*2] = digits[v&0xf]
	}
	return string(out)
}
