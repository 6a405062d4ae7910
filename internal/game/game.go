package game

import (
	"errors"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/level"
	"chosenoffset.com/sightline/internal/core/player"
	"chosenoffset.com/sightline/internal/core/raycast"
	"chosenoffset.com/sightline/internal/core/session"
	"chosenoffset.com/sightline/internal/logging"
	"chosenoffset.com/sightline/internal/render"
)

// WinDelay is how many ticks a solved level stays on screen before the
// next one loads.
const WinDelay = 120

// Game is the play screen: it feeds input to the session and keeps the
// spans for the current frame.
type Game struct {
	Config   *config.Config
	Session  *session.Session
	Renderer render.Renderer
	InputMgr render.InputManager

	ShowMap bool

	spans     []raycast.Span
	winTimer  int
	lastX     int
	haveLastX bool
	log       *logrus.Entry
}

// NewGame starts a session over levels.
func NewGame(cfg *config.Config, levels []*level.Level, r render.Renderer, input render.InputManager) (*Game, error) {
	g := &Game{
		Config:   cfg,
		Renderer: r,
		InputMgr: input,
		log:      logging.For("game"),
	}
	s, err := session.New(levels, cfg.PlayerSettings(), g.handleEvent)
	if err != nil {
		return nil, err
	}
	g.Session = s
	g.log = g.log.WithField("session", s.ID.String())
	g.castRays()
	return g, nil
}

func (g *Game) handleEvent(e session.Event) {
	switch e.Kind {
	case session.Won:
		g.winTimer = WinDelay
	case session.LevelLoaded:
		g.winTimer = 0
	case session.Lost:
		g.log.WithField("level", e.Name).Debug("wrong guess, markers cleared")
	}
}

// Spans returns the sightline computed by the last Update.
func (g *Game) Spans() []raycast.Span {
	return g.spans
}

// ResetMouse forgets the last cursor position so the next frame does not
// turn the player by however far the cursor moved while released.
func (g *Game) ResetMouse() {
	g.haveLastX = false
}

// Update runs one frame: read input, move, handle clicks, cast rays.
func (g *Game) Update() error {
	if g.Session.Finished() {
		return nil
	}

	g.Session.Update(g.readInput())

	if g.InputMgr.IsMouseButtonJustReleased(render.MouseButtonLeft) {
		g.Session.PlaceMarker()
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyC) {
		g.Session.ClearMarkers()
		g.winTimer = 0
	}
	if g.InputMgr.IsKeyJustPressed(render.KeyM) {
		g.ShowMap = !g.ShowMap
	}

	if g.winTimer > 0 {
		g.winTimer--
		if g.winTimer == 0 {
			if err := g.advance(); err != nil {
				return err
			}
		}
	}

	g.castRays()
	return nil
}

// advance moves to the next level; running out of levels finishes the session.
func (g *Game) advance() error {
	err := g.Session.NextLevel()
	if errors.Is(err, session.ErrNoMoreLevels) {
		g.spans = nil
		return nil
	}
	return err
}

func (g *Game) readInput() player.Input {
	var held player.KeySet
	for _, k := range []struct {
		key  render.Key
		move player.Key
	}{
		{render.KeyW, player.KeyW},
		{render.KeyA, player.KeyA},
		{render.KeyS, player.KeyS},
		{render.KeyD, player.KeyD},
	} {
		if g.InputMgr.IsKeyPressed(k.key) {
			held = held.With(k.move)
		}
	}

	x, _ := g.InputMgr.CursorPosition()
	dx := 0
	if g.haveLastX {
		dx = x - g.lastX
	}
	g.lastX = x
	g.haveLastX = true

	return player.Input{MouseDeltaX: float64(dx), Held: held}
}

func (g *Game) castRays() {
	if g.Session.Finished() {
		g.spans = nil
		return
	}
	pos, angle := g.Session.Player()
	viewer := raycast.Viewer{Position: pos, Angle: angle}
	g.spans = raycast.RenderWith(viewer, g.Session.Level(), g.Config.View.FOV, g.Config.Display.Width, g.Config.RaycastOptions())
}
