package player

// Key is a movement key.
type Key uint8

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
)

// KeySet is the set of movement keys held this frame.
type KeySet uint8

// NewKeySet returns a set holding keys.
func NewKeySet(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

// With returns s plus k.
func (s KeySet) With(k Key) KeySet {
	return s | 1<<k
}

// Has reports whether k is held.
func (s KeySet) Has(k Key) bool {
	return s&(1<<k) != 0
}

// Input is one frame's input snapshot.
type Input struct {
	MouseDeltaX float64
	Held        KeySet
}
