package render

import "github.com/go-gl/mathgl/mgl32"

// Graphics describes how an entity is drawn. The engine calls Draw with the
// entity position once per frame.
type Graphics interface {
	Draw(buf *DrawBuffer, pos mgl32.Vec2)
}

type Rect struct {
	Width, Height float32
	Color         Color
}

func (r Rect) Draw(buf *DrawBuffer, pos mgl32.Vec2) {
	buf.PushRect(pos, r.Width, r.Height, r.Color)
}

type Circle struct {
	Radius float32
	Color  Color
}

func (c Circle) Draw(buf *DrawBuffer, pos mgl32.Vec2) {
	buf.PushCircle(pos, c.Radius, c.Color)
}

// Triangle is an upward pointing equilateral triangle inscribed in a circle
// of Radius.
type Triangle struct {
	Radius float32
	Color  Color
}

func (t Triangle) Draw(buf *DrawBuffer, pos mgl32.Vec2) {
	buf.PushTriangle(pos, t.Radius, t.Color)
}

// Sprite draws a region registered with the renderer under ID.
type Sprite struct {
	ID            string
	Width, Height float32
	FlipH, FlipV  bool
}

func (s Sprite) Draw(buf *DrawBuffer, pos mgl32.Vec2) {
	buf.PushSprite(pos, s.ID, s.Width, s.Height, s.FlipH, s.FlipV)
}
