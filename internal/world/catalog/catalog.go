// Package catalog holds the built-in levels in play order.
package catalog

import (
	"math"

	"github.com/pkg/errors"

	"chosenoffset.com/sightline/internal/core/level"
	"chosenoffset.com/sightline/internal/world/levelfile"
)

func pts(coords ...float64) [][2]float64 {
	out := make([][2]float64, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, [2]float64{coords[i], coords[i+1]})
	}
	return out
}

func closed(colors []string, coords ...float64) levelfile.PolygonDef {
	return levelfile.PolygonDef{Points: pts(coords...), Colors: colors}
}

func open(colors []string, coords ...float64) levelfile.PolygonDef {
	return levelfile.PolygonDef{Points: pts(coords...), Open: true, Colors: colors}
}

func goal(color string, coords ...float64) levelfile.PolygonDef {
	return levelfile.PolygonDef{Points: pts(coords...), Color: color}
}

func c(names ...string) []string {
	return names
}

func start(x, y float64) levelfile.Point {
	return levelfile.Point{X: x, Y: y}
}

var plus = levelfile.Definition{
	Name:       "plus",
	Start:      start(250, 250),
	StartAngle: -math.Pi / 2,
	Walls: []levelfile.PolygonDef{
		closed(c("green", "blue", "green", "green", "orange", "green", "green", "magenta", "green", "green", "red", "green"),
			200, 300, 100, 300, 100, 200, 200, 200, // left arm
			200, 100, 300, 100, 300, 200, // top arm
			400, 200, 400, 300, 300, 300, // right arm
			300, 400, 200, 400), // bottom arm
	},
	Goals: []levelfile.PolygonDef{
		goal("pale_blue", 200, 300, 100, 300, 100, 200, 200, 200),
		goal("pale_orange", 200, 200, 200, 100, 300, 100, 300, 200),
		goal("pale_magenta", 300, 200, 400, 200, 400, 300, 300, 300),
		goal("pale_red", 300, 300, 300, 400, 200, 400, 200, 300),
	},
}

var twoSpikes = levelfile.Definition{
	Name:       "two-spikes",
	Start:      start(250, 275),
	StartAngle: math.Pi / 2,
	Walls: []levelfile.PolygonDef{
		closed(c("cyan", "magenta", "orange", "orange", "orange"),
			100, 125, 250, 225, 400, 125, 400, 325, 100, 325),
	},
	Goals: []levelfile.PolygonDef{
		goal("pale_cyan", 100, 125, 250, 225, 100, 225),
		goal("pale_magenta", 400, 125, 250, 225, 400, 225),
		goal("pale_orange", 100, 225, 400, 225, 400, 325, 100, 325),
	},
}

var triangle = levelfile.Definition{
	Name:       "triangle",
	Start:      start(457, 100),
	StartAngle: math.Pi / 4 * 3,
	Walls: []levelfile.PolygonDef{
		closed(c("magenta", "yellow", "red"), 250, 150, 175, 280, 325, 280),
	},
	Goals: []levelfile.PolygonDef{
		goal("pale_magenta", 250, 150, 175, 280, 48, 205, 122, 77),
		goal("pale_red", 250, 150, 325, 280, 452, 205, 378, 77),
		goal("pale_yellow", 325, 280, 175, 280, 175, 430, 325, 430),
	},
}

var box = c("cyan", "magenta", "cyan", "magenta")

var threeBoxes = levelfile.Definition{
	Name:       "three-boxes",
	Start:      start(250, 312),
	StartAngle: -math.Pi / 2,
	Walls: []levelfile.PolygonDef{
		open(c("yellow", "red"), 50, 50, 50, 400, 450, 400),
		closed(box, 140, 175, 190, 175, 190, 225, 140, 225),
		closed(box, 225, 175, 275, 175, 275, 225, 225, 225),
		closed(box, 310, 175, 360, 175, 360, 225, 310, 225),
	},
	Goals: []levelfile.PolygonDef{
		goal("pale_magenta", 50, 175, 100, 175, 100, 225, 50, 225),
		goal("pale_cyan", 225, 350, 275, 350, 275, 400, 225, 400),
	},
}

var singleLine = levelfile.Definition{
	Name:       "single-line",
	Start:      start(120, 350),
	StartAngle: -math.Pi / 2,
	Walls: []levelfile.PolygonDef{
		open(c("green"), 200, 200, 300, 300),
	},
	Goals: []levelfile.PolygonDef{
		goal("pale_yellow", 200, 200, 300, 300, 350, 250, 250, 150),
		goal("pale_green", 200, 200, 300, 300, 250, 350, 150, 250),
	},
}

var boxception = levelfile.Definition{
	Name:       "boxception",
	Start:      start(300, 300),
	StartAngle: math.Pi / 5,
	Walls: []levelfile.PolygonDef{
		closed(c("cyan", "cyan", "red", "red"), 100, 100, 400, 100, 400, 400, 100, 400),
		closed(c("red", "cyan", "cyan", "red"), 225, 225, 275, 225, 275, 275, 225, 275),
	},
	Goals: []levelfile.PolygonDef{
		goal("pale_cyan", 100, 100, 400, 100, 275, 225, 225, 225),
		goal("pale_red", 400, 400, 100, 400, 225, 275, 275, 275),
	},
}

var pentagon = levelfile.Definition{
	Name:       "pentagon",
	Start:      start(39, 404),
	StartAngle: -math.Pi / 3,
	Walls: []levelfile.PolygonDef{
		open(c("orange"), 199, 133, 149, 169), // top left
		open(c("orange"), 301, 133, 351, 169), // top right
		open(c("orange"), 383, 266, 363, 325), // bottom right
		open(c("orange"), 281, 386, 219, 386), // bottom
		open(c("orange"), 117, 266, 137, 325), // bottom left
	},
	Goals: []levelfile.PolygonDef{
		goal("pale_orange", 250, 231, 273, 248, 264, 275, 236, 275, 227, 248),
	},
}

var buckets = levelfile.Definition{
	Name:       "buckets",
	Start:      start(357, 137),
	StartAngle: math.Pi / 3 * 2,
	Walls: []levelfile.PolygonDef{
		open(c("red", "green", "blue"), 100, 100, 100, 400, 400, 400, 400, 100),
		open(c("red", "green", "blue"), 200, 200, 200, 300, 300, 300, 300, 200),
	},
	Goals: []levelfile.PolygonDef{
		goal("pale_green", 200, 200, 200, 300, 300, 300, 300, 200),
		goal("pale_red", 100, 100, 200, 100, 200, 200, 100, 200),
		goal("pale_blue", 300, 100, 400, 100, 400, 200, 300, 200),
		goal("pale_cyan", 100, 300, 200, 300, 200, 400, 100, 400),
		goal("pale_magenta", 300, 300, 300, 400, 400, 400, 400, 300),
	},
}

var twoLines = levelfile.Definition{
	Name:       "two-lines",
	Start:      start(65, 357),
	StartAngle: -math.Pi / 3,
	Walls: []levelfile.PolygonDef{
		open(c("cyan"), 200, 200, 400, 200),
		open(c("yellow"), 100, 300, 300, 300),
	},
	Goals: []levelfile.PolygonDef{
		goal("pale_orange", 200, 200, 200, 300, 300, 300, 300, 200),
		goal("pale_cyan", 300, 100, 400, 100, 400, 200, 300, 200),
		goal("pale_yellow", 100, 300, 200, 300, 200, 400, 100, 400),
	},
}

var wings = levelfile.Definition{
	Name:       "wings",
	Start:      start(50, 250),
	StartAngle: 0,
	Walls: []levelfile.PolygonDef{
		open(c("magenta", "cyan", "magenta"), 113, 260, 200, 240, 300, 240, 387, 260),
	},
	Goals: []levelfile.PolygonDef{
		goal("pale_cyan", 200, 240, 300, 240, 300, 340, 200, 340),
		goal("pale_magenta", 113, 260, 200, 240, 180, 153, 93, 173),
		goal("pale_yellow", 387, 260, 300, 240, 320, 153, 407, 173),
	},
}

var hexagon = levelfile.Definition{
	Name:       "hexagon",
	Start:      start(240, 275),
	StartAngle: math.Pi,
	Walls: []levelfile.PolygonDef{
		closed(c("red", "magenta", "red", "red", "magenta", "red"),
			250, 108, 374, 179, 374, 321, 250, 392, 127, 321, 127, 179),
		open(c("orange"), 250, 250, 250, 199), // up
		open(c("orange"), 250, 250, 205, 276), // bottom left
		open(c("orange"), 250, 250, 295, 276), // bottom right
	},
	Goals: []levelfile.PolygonDef{
		goal("pale_orange", 250, 250, 250, 199, 205, 225, 205, 276),
		goal("pale_magenta", 250, 250, 250, 199, 295, 225, 295, 276),
	},
}

var elbow = levelfile.Definition{
	Name:       "elbow",
	Start:      start(400, 50),
	StartAngle: math.Pi / 4 * 3,
	Walls: []levelfile.PolygonDef{
		open(c("cyan", "cyan"), 200, 200, 300, 200, 200, 300),
	},
	Goals: []levelfile.PolygonDef{
		goal("pale_cyan", 200, 200, 300, 200, 200, 300),
		goal("pale_orange", 200, 200, 250, 200, 250, 150, 200, 150),
	},
}

var keyhole = levelfile.Definition{
	Name:       "keyhole",
	Start:      start(150, 150),
	StartAngle: math.Pi / 4,
	Walls: []levelfile.PolygonDef{
		closed(c("green", "green", "green"), 131, 100, 390, 250, 131, 400),
		closed(c("cyan", "cyan", "cyan", "cyan"), 203, 239, 260, 239, 260, 260, 203, 260),
	},
	Goals: []levelfile.PolygonDef{
		goal("pale_green", 390, 250, 341, 222, 341, 278),
		goal("pale_cyan", 203, 239, 203, 260, 182, 260, 182, 239),
		goal("pale_orange", 203, 239, 260, 239, 260, 182, 203, 182),
	},
}

var h = levelfile.Definition{
	Name:       "h",
	Start:      start(350, 250),
	StartAngle: math.Pi,
	Walls: []levelfile.PolygonDef{
		closed(c("yellow",
			"green", "green", "green", // top bucket
			"yellow", "green", "yellow", "green", "yellow",
			"green", "green", "green", // bottom bucket
			"yellow", "green", "yellow", "green"),
			100, 100, 200, 100, 200, 200,
			300, 200, 300, 100, 400, 100,
			400, 200, 400, 300, 400, 400,
			300, 400, 300, 300, 200, 300,
			200, 400, 100, 400, 100, 300,
			100, 200),
	},
	Goals: []levelfile.PolygonDef{
		goal("pale_green", 100, 100, 200, 100, 200, 200, 100, 200),
		goal("pale_magenta", 300, 100, 400, 100, 400, 200, 300, 200),
		goal("pale_cyan", 100, 300, 200, 300, 200, 400, 100, 400),
		goal("pale_yellow", 300, 300, 400, 300, 400, 400, 300, 400),
	},
}

// grid generates the lattice of short red lines. Coordinates are truncated
// to whole units.
func grid() levelfile.Definition {
	const margin = 50.0
	spacing := 400.0 / 11
	step := math.Trunc(spacing)

	var walls []levelfile.PolygonDef
	for row := 0; row < 4; row++ {
		for column := 0; column < 3; column++ {
			x1 := math.Trunc(spacing*float64(column)*3+spacing*2) + margin
			y := math.Trunc(spacing*float64(row)*3+spacing) + margin
			walls = append(walls, open(c("red"), x1, y, x1+step, y))
		}
	}
	// No middle line on the bottom row.
	walls = append(walls[:len(walls)-2], walls[len(walls)-1])

	for column := 0; column < 4; column++ {
		for row := 0; row < 3; row++ {
			x := math.Trunc(spacing*float64(column)*3+spacing) + margin
			y1 := math.Trunc(spacing*float64(row)*3+spacing*2) + margin
			walls = append(walls, open(c("red"), x, y1, x, y1+step))
		}
	}

	square := func(color string, x1, y1 float64) levelfile.PolygonDef {
		x2 := x1 + math.Trunc(spacing*3)
		y2 := y1 + math.Trunc(spacing*3)
		return goal(color, x1, y1, x2, y1, x2, y2, x1, y2)
	}

	return levelfile.Definition{
		Name:       "grid",
		Start:      start(250, 250),
		StartAngle: math.Pi,
		Walls:      walls,
		Goals: []levelfile.PolygonDef{
			square("pale_red", math.Trunc(spacing*4+margin), math.Trunc(spacing*7+margin)),  // bottom middle
			square("pale_cyan", math.Trunc(spacing+margin), math.Trunc(spacing*4+margin)),   // middle left
			square("pale_orange", math.Trunc(spacing*7+margin), math.Trunc(spacing+margin)), // top right
		},
	}
}

// Definitions returns every built-in level in play order. The first one is
// the tutorial.
func Definitions() []levelfile.Definition {
	return []levelfile.Definition{
		threeBoxes,
		twoSpikes,
		triangle,
		plus,
		singleLine,
		pentagon,
		wings,
		twoLines,
		buckets,
		h,
		boxception,
		hexagon,
		elbow,
		keyhole,
		grid(),
	}
}

// ByName returns the built-in level with the given name.
func ByName(name string) (levelfile.Definition, bool) {
	for _, def := range Definitions() {
		if def.Name == name {
			return def, true
		}
	}
	return levelfile.Definition{}, false
}

// Levels builds every built-in level.
func Levels(clearance float64) ([]*level.Level, error) {
	defs := Definitions()
	levels := make([]*level.Level, 0, len(defs))
	for i := range defs {
		lvl, err := levelfile.Build(&defs[i], clearance)
		if err != nil {
			return nil, errors.Wrapf(err, "built-in level %d", i)
		}
		levels = append(levels, lvl)
	}
	return levels, nil
}
