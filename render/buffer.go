// Package render holds the backend-independent draw buffer the engine fills
// each frame and the graphics descriptors entities carry.
package render

import "github.com/go-gl/mathgl/mgl32"

// Color is an opaque RGB color.
type Color struct {
	R, G, B uint8
}

var (
	White = Color{255, 255, 255}
	Black = Color{0, 0, 0}
	Red   = Color{255, 0, 0}
	Green = Color{0, 255, 0}
	Blue  = Color{0, 0, 255}
)

// Kind tags a draw command.
type Kind int

const (
	KindRect Kind = iota
	KindCircle
	KindTriangle
	KindSprite
)

// Command is one primitive queued for the renderer. Positions are screen
// units with the origin at the screen center and y pointing up.
type Command struct {
	Kind     Kind
	Position mgl32.Vec2
	// Size is the full width and height for rects and sprites.
	Size mgl32.Vec2
	// Radius is used by circles and triangles.
	Radius   float32
	Color    Color
	SpriteID string
	FlipH    bool
	FlipV    bool
}

// DrawBuffer accumulates commands for one frame.
type DrawBuffer struct {
	commands []Command
}

func NewDrawBuffer(capacity int) *DrawBuffer {
	return &DrawBuffer{commands: make([]Command, 0, capacity)}
}

func (b *DrawBuffer) PushRect(pos mgl32.Vec2, width, height float32, c Color) {
	b.commands = append(b.commands, Command{
		Kind:     KindRect,
		Position: pos,
		Size:     mgl32.Vec2{width, height},
		Color:    c,
	})
}

func (b *DrawBuffer) PushCircle(pos mgl32.Vec2, radius float32, c Color) {
	b.commands = append(b.commands, Command{
		Kind:     KindCircle,
		Position: pos,
		Radius:   radius,
		Color:    c,
	})
}

func (b *DrawBuffer) PushTriangle(pos mgl32.Vec2, radius float32, c Color) {
	b.commands = append(b.commands, Command{
		Kind:     KindTriangle,
		Position: pos,
		Radius:   radius,
		Color:    c,
	})
}

func (b *DrawBuffer) PushSprite(pos mgl32.Vec2, id string, width, height float32, flipH, flipV bool) {
	b.commands = append(b.commands, Command{
		Kind:     KindSprite,
		Position: pos,
		Size:     mgl32.Vec2{width, height},
		SpriteID: id,
		FlipH:    flipH,
		FlipV:    flipV,
	})
}

// Commands returns the queued commands in submission order. The slice is
// reused after Reset.
func (b *DrawBuffer) Commands() []Command {
	return b.commands
}

func (b *DrawBuffer) Len() int {
	return len(b.commands)
}

func (b *DrawBuffer) Reset() {
	b.commands = b.commands[:0]
}
