// Package session tracks one playthrough: the level list, the current level,
// the player and the markers placed so far.
package session

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/level"
	"chosenoffset.com/sightline/internal/core/palette"
	"chosenoffset.com/sightline/internal/core/player"
	"chosenoffset.com/sightline/internal/logging"
)

// StartAngleOffset nudges the start facing off exact right angles, where
// the sorted rays can leave a visible gap.
const StartAngleOffset = 1e-6

var (
	ErrNoLevels     = errors.New("session has no levels")
	ErrLevelRange   = errors.New("level index out of range")
	ErrNoMoreLevels = errors.New("no more levels")
)

// EventKind identifies a session event
type EventKind int

const (
	LevelLoaded EventKind = iota
	MarkerPlaced
	Won
	Lost
)

func (k EventKind) String() string {
	switch k {
	case LevelLoaded:
		return "level-loaded"
	case MarkerPlaced:
		return "marker-placed"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is sent to the sink after the session state has changed
type Event struct {
	Kind   EventKind
	Level  int
	Name   string
	Marker Marker // Set for MarkerPlaced
	Index  int    // Marker index for MarkerPlaced
}

// EventSink receives session events. It must not block.
type EventSink func(Event)

// Marker is a placed guess
type Marker struct {
	Position geometry.Point
	Color    color.RGBA
}

// Session is the state of one playthrough
type Session struct {
	mu sync.RWMutex

	ID uuid.UUID

	levels   []*level.Level
	current  int
	finished bool

	player   *player.Player
	markers  []Marker
	previous []Marker
	decided  bool
	won      bool

	sink EventSink
	log  *logrus.Entry
}

// New creates a session on the first level. sink may be nil.
func New(levels []*level.Level, settings player.Settings, sink EventSink) (*Session, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	id := uuid.New()
	s := &Session{
		ID:     id,
		levels: levels,
		player: player.New(settings),
		sink:   sink,
		log:    logging.For("session").WithField("session", id.String()),
	}
	if err := s.LoadLevel(0); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadLevel switches to level n, resetting the player and the markers
func (s *Session) LoadLevel(n int) error {
	s.mu.Lock()
	if n < 0 || n >= len(s.levels) {
		s.mu.Unlock()
		return fmt.Errorf("%w: %d of %d", ErrLevelRange, n, len(s.levels))
	}
	lvl := s.levels[n]
	s.current = n
	s.finished = false
	s.markers = nil
	s.previous = nil
	s.decided = false
	s.won = false
	s.player.GoTo(lvl.Start, lvl.StartAngle+StartAngleOffset)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"level": n,
		"name":  lvl.Name,
		"goals": len(lvl.Goals),
	}).Info("level loaded")
	s.emit(Event{Kind: LevelLoaded, Level: n, Name: lvl.Name})
	return nil
}

// NextLevel advances to the following level. Past the last one the session
// is finished and ErrNoMoreLevels is returned.
func (s *Session) NextLevel() error {
	s.mu.RLock()
	next := s.current + 1
	s.mu.RUnlock()

	if next >= len(s.levels) {
		s.mu.Lock()
		s.finished = true
		s.mu.Unlock()
		s.log.Info("all levels complete")
		return ErrNoMoreLevels
	}
	return s.LoadLevel(next)
}

// PreviousLevel goes back one level; on the first level it does nothing
func (s *Session) PreviousLevel() error {
	s.mu.RLock()
	prev := s.current - 1
	s.mu.RUnlock()

	if prev < 0 {
		return nil
	}
	return s.LoadLevel(prev)
}

// Update applies one frame of input to the player. Movement stops once the
// level is won or the session is finished.
func (s *Session) Update(in player.Input) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.finished || s.won {
		return
	}
	s.player.UpdateMovement(in, s.levels[s.current])
}

// PlaceMarker drops a marker at the player's position. It does nothing once
// every goal has a marker. Placing the last marker decides the level: a win
// keeps the markers, a loss moves them to PreviousMarkers for another try.
func (s *Session) PlaceMarker() (Marker, bool) {
	s.mu.Lock()
	lvl := s.levels[s.current]
	if s.finished || s.decided || len(s.markers) >= len(lvl.Goals) {
		s.mu.Unlock()
		return Marker{}, false
	}

	pos := s.player.Position
	m := Marker{Position: pos, Color: palette.Black}
	if i, ok := lvl.GoalAt(pos); ok {
		m.Color = palette.Saturated(lvl.Goals[i].Color)
	}
	s.markers = append(s.markers, m)
	index := len(s.markers) - 1

	events := []Event{{Kind: MarkerPlaced, Level: s.current, Name: lvl.Name, Marker: m, Index: index}}
	if len(s.markers) == len(lvl.Goals) {
		positions := make([]geometry.Point, len(s.markers))
		for i, placed := range s.markers {
			positions[i] = placed.Position
		}
		if lvl.CheckWin(positions) {
			s.decided = true
			s.won = true
			events = append(events, Event{Kind: Won, Level: s.current, Name: lvl.Name})
		} else {
			s.previous = s.markers
			s.markers = nil
			events = append(events, Event{Kind: Lost, Level: s.current, Name: lvl.Name})
		}
	}
	s.mu.Unlock()

	entry := s.log.WithFields(logrus.Fields{
		"level":  lvl.Name,
		"marker": index,
		"x":      pos.X,
		"y":      pos.Y,
	})
	entry.Debug("marker placed")
	for _, e := range events {
		if e.Kind == Won || e.Kind == Lost {
			entry.WithField("verdict", e.Kind.String()).Info("level decided")
		}
		s.emit(e)
	}
	return m, true
}

// ClearMarkers removes every placed marker and reopens the level
func (s *Session) ClearMarkers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers = nil
	s.decided = false
	s.won = false
}

// Markers returns a copy of the markers placed on the current level
func (s *Session) Markers() []Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Marker(nil), s.markers...)
}

// PreviousMarkers returns the markers of the last failed attempt
func (s *Session) PreviousMarkers() []Marker {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Marker(nil), s.previous...)
}

// Won reports whether the current level has been solved
func (s *Session) Won() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.won
}

// Finished reports whether the player has gone past the last level
func (s *Session) Finished() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.finished
}

// Level returns the current level
func (s *Session) Level() *level.Level {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.levels[s.current]
}

// LevelIndex returns the current level's position in play order
func (s *Session) LevelIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// LevelCount returns the number of levels in the session
func (s *Session) LevelCount() int {
	return len(s.levels)
}

// Player returns a snapshot of the player's position and facing
func (s *Session) Player() (geometry.Point, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Position, s.player.Angle
}

func (s *Session) emit(e Event) {
	if s.sink != nil {
		s.sink(e)
	}
}
