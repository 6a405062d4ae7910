// Package palette defines the fixed set of colours walls, goals and markers use.
package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Saturated colours are used for visual walls and placed markers.
var (
	Black   = color.RGBA{0, 0, 0, 255}
	White   = color.RGBA{255, 255, 255, 255}
	Red     = color.RGBA{255, 0, 0, 255}
	Green   = color.RGBA{0, 255, 0, 255}
	Blue    = color.RGBA{0, 0, 255, 255}
	Cyan    = color.RGBA{0, 255, 255, 255}
	Magenta = color.RGBA{255, 0, 255, 255}
	Yellow  = color.RGBA{255, 255, 0, 255}
	Orange  = color.RGBA{255, 128, 0, 255}
)

// Pale colours fill goal regions.
var (
	LightGrey   = color.RGBA{192, 192, 192, 255}
	PaleRed     = color.RGBA{255, 192, 192, 255}
	PaleGreen   = color.RGBA{192, 255, 192, 255}
	PaleBlue    = color.RGBA{192, 192, 255, 255}
	PaleCyan    = color.RGBA{192, 255, 255, 255}
	PaleMagenta = color.RGBA{255, 192, 255, 255}
	PaleYellow  = color.RGBA{255, 255, 192, 255}
	PaleOrange  = color.RGBA{255, 224, 192, 255}
)

var byName = map[string]color.RGBA{
	"black":        Black,
	"white":        White,
	"red":          Red,
	"green":        Green,
	"blue":         Blue,
	"cyan":         Cyan,
	"magenta":      Magenta,
	"yellow":       Yellow,
	"orange":       Orange,
	"light_grey":   LightGrey,
	"pale_red":     PaleRed,
	"pale_green":   PaleGreen,
	"pale_blue":    PaleBlue,
	"pale_cyan":    PaleCyan,
	"pale_magenta": PaleMagenta,
	"pale_yellow":  PaleYellow,
	"pale_orange":  PaleOrange,
}

var saturated = map[color.RGBA]color.RGBA{
	LightGrey:   Black,
	PaleRed:     Red,
	PaleGreen:   Green,
	PaleBlue:    Blue,
	PaleCyan:    Cyan,
	PaleMagenta: Magenta,
	PaleYellow:  Yellow,
	PaleOrange:  Orange,
}

// Saturated returns the strong colour matching a pale goal colour.
// Colours without a counterpart map to black.
func Saturated(c color.RGBA) color.RGBA {
	if s, ok := saturated[c]; ok {
		return s
	}
	return Black
}

// Pale returns the pale counterpart of a saturated colour, or light grey.
func Pale(c color.RGBA) color.RGBA {
	for pale, strong := range saturated {
		if strong == c {
			return pale
		}
	}
	return LightGrey
}

// Parse resolves a palette name ("pale_cyan") or a "#RRGGBB" hex string.
func Parse(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := byName[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		var r, g, b uint8
		if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
		}
		return color.RGBA{r, g, b, 255}, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
}

// Name returns the palette name of c, or its hex form when c is not a named colour.
func Name(c color.RGBA) string {
	for name, v := range byName {
		if v == c {
			return name
		}
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Names lists every palette name in sorted order.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
