package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ttacon/chalk"

	"chosenoffset.com/sightline/internal/core/palette"
	"chosenoffset.com/sightline/internal/core/raycast"
)

const block = "█"

// terminalColors maps the palette onto the eight ANSI colours. Pale goal
// colours never reach the sightline, so only wall colours are listed.
var terminalColors = map[color.RGBA]chalk.Color{
	palette.Black:   chalk.Black,
	palette.Red:     chalk.Red,
	palette.Green:   chalk.Green,
	palette.Blue:    chalk.Blue,
	palette.Cyan:    chalk.Cyan,
	palette.Magenta: chalk.Magenta,
	palette.Yellow:  chalk.Yellow,
	palette.Orange:  chalk.Yellow,
}

func colorName(c color.RGBA) string {
	return palette.Name(c)
}

// cells expands spans into one colour per column; background columns are nil
func cells(spans []raycast.Span, width int) []*color.RGBA {
	out := make([]*color.RGBA, width)
	for i := range spans {
		s := &spans[i]
		for x := s.XStart; x < s.XStart+s.Width && x < width; x++ {
			if x >= 0 {
				out[x] = &s.Color
			}
		}
	}
	return out
}

// preview draws the sightline as a row of coloured blocks
func preview(spans []raycast.Span, width int) string {
	var b strings.Builder
	for _, c := range cells(spans, width) {
		if c == nil {
			b.WriteString(" ")
			continue
		}
		ansi, ok := terminalColors[*c]
		if !ok {
			ansi = chalk.White
		}
		b.WriteString(ansi.Color(block))
	}
	fmt.Fprint(&b, chalk.Reset)
	return b.String()
}
