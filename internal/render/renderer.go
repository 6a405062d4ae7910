package render

import (
	"image"
	"image/color"
)

// Renderer abstracts the drawing primitives the game needs so the game
// logic does not depend on a graphics engine.
type Renderer interface {
	// Shapes
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1, strokeWidth float32, clr color.Color)
	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius, strokeWidth float32, clr color.Color)

	// Text is drawn with the engine's debug font.
	DrawText(dst Image, text string, x, y int)
}

// Image is a surface that can be drawn to.
type Image interface {
	Bounds() image.Rectangle
	Size() (width, height int)
	Fill(clr color.Color)
}

// InputManager handles input from the user (keyboard, mouse).
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	CursorPosition() (x, y int)
	IsMouseButtonJustReleased(button MouseButton) bool
}

// Key represents a keyboard key.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyM // Toggle the overhead map
	KeyC // Clear markers
	KeyN // Next level
	KeyP // Previous level
	KeyQ // Quit while paused
	KeyEscape
)

// MouseButton represents a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
)

// Game is called by the engine every tick and every frame.
type Game interface {
	// Update advances one tick.
	Update() error

	// Draw draws the current frame.
	Draw(screen Image)

	// Layout returns the logical screen size for the given window size.
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine manages the window and the game loop.
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetTPS(tps int)

	// SetCursorCaptured hides and locks the cursor so that only its
	// movement is reported.
	SetCursorCaptured(captured bool)

	// RunGame blocks until the game ends.
	RunGame(game Game) error
}
