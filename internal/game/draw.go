package game

import (
	"image/color"
	"math"

	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/palette"
	"chosenoffset.com/sightline/internal/core/session"
	"chosenoffset.com/sightline/internal/render"
)

// Marker slot layout for the HUD row under the sightline.
const (
	slotRadius  = 8
	slotGap     = 8
	slotSpacing = 2*slotRadius + slotGap
	slotOffset  = 40 // Below the top of the sightline
)

var (
	textBackdrop  = color.RGBA{40, 40, 40, 255}
	boundaryColor = color.RGBA{230, 230, 230, 255}
)

// Draw renders the frame: the optional map first, the sightline over it,
// then the marker slots.
func (g *Game) Draw(screen render.Image) {
	screen.Fill(palette.White)

	if g.Session.Finished() {
		g.drawText(screen, "All levels complete. Thanks for playing!", 20, 20)
		return
	}

	if g.ShowMap {
		g.drawMap(screen)
	}
	g.drawSightline(screen)
	g.drawSlots(screen)

	lvl := g.Session.Level()
	g.drawText(screen, lvl.Name, 4, 4)
}

func (g *Game) drawSightline(screen render.Image) {
	top := float32(g.Config.Display.SightlineY)
	height := float32(g.Config.Display.SightlineHeight)
	for _, span := range g.spans {
		g.Renderer.FillRect(screen, float32(span.XStart), top, float32(span.Width), height, span.Color)
	}
}

// drawSlots shows one circle per goal: filled once a marker is placed, in
// the marker's colour once the level is won.
func (g *Game) drawSlots(screen render.Image) {
	goals := len(g.Session.Level().Goals)
	markers := g.Session.Markers()
	won := g.Session.Won()

	rowWidth := slotSpacing*goals - slotGap
	y := float32(g.Config.Display.SightlineY + slotOffset)
	for i := 0; i < goals; i++ {
		x := float32(g.Config.Display.Width/2-rowWidth/2+i*slotSpacing+slotRadius)

		clr := palette.Black
		if won && i < len(markers) {
			clr = markers[i].Color
		}
		if i < len(markers) {
			g.Renderer.FillCircle(screen, x, y, slotRadius, clr)
		} else {
			g.Renderer.StrokeCircle(screen, x, y, slotRadius, 1, clr)
		}
	}
}

// drawMap draws the level from above: goals, boundary, walls, markers and
// the player with its field of view.
func (g *Game) drawMap(screen render.Image) {
	lvl := g.Session.Level()
	offset := geometry.Point{Y: float64(g.Config.Display.SightlineY)}

	for _, goal := range lvl.Goals {
		for _, s := range goal.Segments {
			g.line(screen, offset, s, 1, goal.Color)
		}
	}
	for _, s := range lvl.BoundarySegments() {
		g.line(screen, offset, s, 1, boundaryColor)
	}
	for _, wall := range lvl.Walls {
		for _, s := range wall.Segments {
			g.line(screen, offset, s, 2, s.Color)
		}
	}

	for _, m := range g.Session.PreviousMarkers() {
		g.marker(screen, offset, m, false)
	}
	if g.Session.Won() {
		for _, m := range g.Session.Markers() {
			g.marker(screen, offset, m, true)
		}
	}

	pos, angle := g.Session.Player()
	half := g.Config.View.FOV / 2
	for _, edge := range []float64{angle - half, angle + half} {
		tip := pos.Add(geometry.VectorToDifference(edge, 40))
		g.line(screen, offset, geometry.NewSegment(pos, tip), 1, palette.LightGrey)
	}
	p := pos.Add(offset)
	g.Renderer.FillCircle(screen, float32(p.X), float32(p.Y), 3, palette.Black)
}

func (g *Game) line(screen render.Image, offset geometry.Point, s geometry.Segment, width float32, clr color.Color) {
	a := s.Point1.Add(offset)
	b := s.Point2.Add(offset)
	g.Renderer.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr)
}

func (g *Game) marker(screen render.Image, offset geometry.Point, m session.Marker, filled bool) {
	p := m.Position.Add(offset)
	x, y := float32(math.Round(p.X)), float32(math.Round(p.Y))
	if filled {
		g.Renderer.FillCircle(screen, x, y, slotRadius, m.Color)
		return
	}
	g.Renderer.StrokeCircle(screen, x, y, slotRadius, 1, m.Color)
}

// drawText puts debug-font text on a dark backdrop so it reads on white.
func (g *Game) drawText(screen render.Image, text string, x, y int) {
	const charWidth, charHeight = 6, 16
	g.Renderer.FillRect(screen, float32(x-2), float32(y), float32(len(text)*charWidth+4), charHeight, textBackdrop)
	g.Renderer.DrawText(screen, text, x, y)
}
