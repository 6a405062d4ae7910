package game

import (
	"errors"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/level"
	"chosenoffset.com/sightline/internal/core/palette"
	"chosenoffset.com/sightline/internal/logging"
	"chosenoffset.com/sightline/internal/render"
)

// ErrQuit ends the game loop without an error.
var ErrQuit = errors.New("quit")

// State is what the manager is showing.
type State int

const (
	StatePlaying State = iota
	StatePaused
)

// Manager owns the window and switches between playing and paused.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	State        State
	Game         *Game
	Engine       render.Engine
	Renderer     render.Renderer
	InputMgr     render.InputManager
}

// NewManager creates a manager and starts a game on the first level.
func NewManager(engine render.Engine, r render.Renderer, input render.InputManager, cfg *config.Config, levels []*level.Level) (*Manager, error) {
	g, err := NewGame(cfg, levels, r, input)
	if err != nil {
		return nil, err
	}
	return &Manager{
		ScreenWidth:  cfg.Display.Width,
		ScreenHeight: cfg.Display.Height,
		State:        StatePlaying,
		Game:         g,
		Engine:       engine,
		Renderer:     r,
		InputMgr:     input,
	}, nil
}

// Run opens the window and blocks until the player quits.
func (m *Manager) Run() error {
	m.Engine.SetWindowSize(m.ScreenWidth, m.ScreenHeight)
	m.Engine.SetWindowTitle("Sightline")
	m.Engine.SetTPS(m.Game.Config.Display.TPS)
	m.Engine.SetCursorCaptured(true)

	logging.For("game").WithField("session", m.Game.Session.ID.String()).Info("starting")
	err := m.Engine.RunGame(m)
	if errors.Is(err, ErrQuit) {
		return nil
	}
	return err
}

// Update handles pausing and forwards to the game while playing.
func (m *Manager) Update() error {
	switch m.State {
	case StatePlaying:
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			m.pause()
			return nil
		}
		return m.Game.Update()

	case StatePaused:
		switch {
		case m.InputMgr.IsKeyJustPressed(render.KeyQ):
			return ErrQuit
		case m.InputMgr.IsKeyJustPressed(render.KeyEscape),
			m.InputMgr.IsMouseButtonJustReleased(render.MouseButtonLeft):
			m.resume()
		case m.InputMgr.IsKeyJustPressed(render.KeyN):
			if m.Game.Session.LevelIndex()+1 < m.Game.Session.LevelCount() {
				return m.changeLevel(m.Game.Session.NextLevel)
			}
		case m.InputMgr.IsKeyJustPressed(render.KeyP):
			return m.changeLevel(m.Game.Session.PreviousLevel)
		case m.InputMgr.IsKeyJustPressed(render.KeyM):
			m.Game.ShowMap = !m.Game.ShowMap
		}
	}
	return nil
}

func (m *Manager) changeLevel(change func() error) error {
	if err := change(); err != nil {
		return err
	}
	m.Game.castRays()
	return nil
}

func (m *Manager) pause() {
	m.State = StatePaused
	m.Engine.SetCursorCaptured(false)
}

func (m *Manager) resume() {
	m.State = StatePlaying
	m.Engine.SetCursorCaptured(true)
	m.Game.ResetMouse()
}

// Draw draws the game, with the pause help on top while paused.
func (m *Manager) Draw(screen render.Image) {
	m.Game.Draw(screen)
	if m.State != StatePaused {
		return
	}

	lines := []string{
		"Paused",
		"Esc or click: resume",
		"N / P: next / previous level",
		"M: toggle map    Q: quit",
	}
	y := m.ScreenHeight/2 - len(lines)*10
	m.Renderer.FillRect(screen, 0, float32(y-10), float32(m.ScreenWidth), float32(len(lines)*20+20), palette.LightGrey)
	for i, line := range lines {
		m.Game.drawText(screen, line, 40, y+i*20)
	}
}

// Layout keeps a fixed logical screen size.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	return m.ScreenWidth, m.ScreenHeight
}
