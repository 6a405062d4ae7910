// Package levelfile reads and writes level definitions as JSON and builds
// playable levels from them.
package levelfile

import (
	"encoding/json"
	"image/color"
	"os"

	"github.com/pkg/errors"

	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/level"
	"chosenoffset.com/sightline/internal/core/palette"
)

// Point is a JSON coordinate pair
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PolygonDef describes one wall or goal polygon
type PolygonDef struct {
	Points [][2]float64 `json:"points"`
	Open   bool         `json:"open,omitempty"`   // Walls only: leave the last point unjoined
	Colors []string     `json:"colors,omitempty"` // One per segment, in point order
	Color  string       `json:"color,omitempty"`  // Goal fill, or a single colour for every wall segment
}

// Definition is a complete level as stored on disk
type Definition struct {
	Name       string       `json:"name"`
	Start      Point        `json:"start"`
	StartAngle float64      `json:"start_angle"` // Radians
	Walls      []PolygonDef `json:"walls"`
	Goals      []PolygonDef `json:"goals"`
}

// Load reads a level definition from a JSON file
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read level file %s", path)
	}

	def, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "level file %s", path)
	}
	return def, nil
}

// Parse decodes and validates a level definition
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, errors.Wrap(err, "failed to parse level")
	}
	if err := validateDefinition(&def); err != nil {
		return nil, errors.Wrap(err, "invalid level")
	}
	return &def, nil
}

// Save writes a level definition as indented JSON
func Save(path string, def *Definition) error {
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "failed to encode level %s", def.Name)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write level file %s", path)
	}
	return nil
}

// validateDefinition checks the structure; geometry problems are left to level.Validate
func validateDefinition(def *Definition) error {
	if len(def.Walls) == 0 {
		return errors.New("level has no walls")
	}
	for i, w := range def.Walls {
		if len(w.Points) < 2 {
			return errors.Errorf("wall %d needs at least 2 points, got %d", i, len(w.Points))
		}
	}
	for i, g := range def.Goals {
		if len(g.Points) < 3 {
			return errors.Errorf("goal %d needs at least 3 points, got %d", i, len(g.Points))
		}
		if g.Open {
			return errors.Errorf("goal %d cannot be open", i)
		}
	}
	return nil
}

func toPoints(raw [][2]float64) []geometry.Point {
	pts := make([]geometry.Point, len(raw))
	for i, p := range raw {
		pts[i] = geometry.Point{X: p[0], Y: p[1]}
	}
	return pts
}

func parseColors(names []string) ([]color.RGBA, error) {
	colors := make([]color.RGBA, len(names))
	for i, name := range names {
		c, err := palette.Parse(name)
		if err != nil {
			return nil, errors.Wrapf(err, "colour %d", i)
		}
		colors[i] = c
	}
	return colors, nil
}

// buildWall creates a visual wall and paints its segments
func buildWall(def PolygonDef) (*geometry.Polygon, error) {
	poly := geometry.NewPolygon(toPoints(def.Points), !def.Open)

	switch {
	case len(def.Colors) > 0:
		colors, err := parseColors(def.Colors)
		if err != nil {
			return nil, err
		}
		if err := poly.SetColors(colors); err != nil {
			return nil, err
		}
	case def.Color != "":
		c, err := palette.Parse(def.Color)
		if err != nil {
			return nil, err
		}
		colors := make([]color.RGBA, len(poly.Segments))
		for i := range colors {
			colors[i] = c
		}
		if err := poly.SetColors(colors); err != nil {
			return nil, err
		}
	}
	return poly, nil
}

// buildGoal creates a closed goal region
func buildGoal(def PolygonDef) (*geometry.Polygon, error) {
	poly := geometry.NewPolygon(toPoints(def.Points), true)
	poly.Color = palette.LightGrey
	if def.Color != "" {
		c, err := palette.Parse(def.Color)
		if err != nil {
			return nil, err
		}
		poly.Color = c
	}
	return poly, nil
}

// Build turns a definition into a level with the given wall clearance
func Build(def *Definition, clearance float64) (*level.Level, error) {
	if def == nil {
		return nil, errors.New("nil level definition")
	}
	if err := validateDefinition(def); err != nil {
		return nil, errors.Wrapf(err, "invalid level %q", def.Name)
	}

	walls := make([]*geometry.Polygon, len(def.Walls))
	for i, w := range def.Walls {
		poly, err := buildWall(w)
		if err != nil {
			return nil, errors.Wrapf(err, "level %q wall %d", def.Name, i)
		}
		walls[i] = poly
	}

	goals := make([]*geometry.Polygon, len(def.Goals))
	for i, g := range def.Goals {
		poly, err := buildGoal(g)
		if err != nil {
			return nil, errors.Wrapf(err, "level %q goal %d", def.Name, i)
		}
		goals[i] = poly
	}

	start := geometry.Point{X: def.Start.X, Y: def.Start.Y}
	lvl := level.FromPolygons(walls, goals, start, def.StartAngle, clearance)
	lvl.Name = def.Name
	return lvl, nil
}
