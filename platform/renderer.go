package platform

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/warpcore/engine"
	"github.com/plus3/warpcore/input"
	"github.com/plus3/warpcore/render"
	"github.com/plus3/warpcore/ui"
	"go.uber.org/zap"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)

	buttonFill   = color.RGBA{60, 60, 60, 255}
	buttonBorder = color.RGBA{200, 200, 200, 255}
)

func init() {
	whiteImage.Fill(color.White)
}

// Renderer draws submitted frames onto the ebiten screen. Engine positions
// are y-up with the origin at the screen center; the camera maps them to
// window pixels.
type Renderer struct {
	log *zap.Logger

	commands []render.Command
	doc      *ui.Document
	data     map[string]string

	sprites map[string]*ebiten.Image
	verts   []ebiten.Vertex
	indices []uint16

	width, height int
	camera        mgl32.Mat3
}

func NewRenderer(log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		log:     log.Named("render"),
		sprites: make(map[string]*ebiten.Image),
	}
	r.Resize(640, 480)
	return r
}

// RegisterSprite makes img drawable under id.
func (r *Renderer) RegisterSprite(id string, img *ebiten.Image) {
	r.sprites[id] = img
}

// LoadSprite reads an image file and registers it under id.
func (r *Renderer) LoadSprite(id, path string) error {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return fmt.Errorf("load sprite %s: %w", path, err)
	}
	r.RegisterSprite(id, img)
	return nil
}

// Submit copies the frame's commands and routes a left click on a UI button
// to the frame's callbacks.
func (r *Renderer) Submit(frame engine.Frame) {
	r.commands = append(r.commands[:0], frame.Buffer.Commands()...)
	r.doc = frame.UI
	r.data = frame.Data

	if r.doc == nil || frame.Callbacks == nil || !frame.Mouse.Pressed(input.MouseLeft) {
		return
	}
	if el, ok := r.doc.ButtonAt(frame.Mouse.X, frame.Mouse.Y); ok {
		if err := frame.Callbacks.InvokeCallback(el.Binding); err != nil {
			r.log.Warn("ui callback failed", zap.String("binding", el.Binding), zap.Error(err))
		}
	}
}

// Resize rebuilds the camera for a new window size.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.camera = cameraMatrix(width, height)
}

func cameraMatrix(width, height int) mgl32.Mat3 {
	return mgl32.Translate2D(float32(width)/2, float32(height)/2).Mul3(mgl32.Scale2D(1, -1))
}

func (r *Renderer) project(p mgl32.Vec2) (float32, float32) {
	v := r.camera.Mul3x1(p.Vec3(1))
	return v.X(), v.Y()
}

// Draw renders the last submitted frame.
func (r *Renderer) Draw(screen *ebiten.Image) {
	for _, cmd := range r.commands {
		switch cmd.Kind {
		case render.KindRect:
			x, y := r.project(cmd.Position)
			w, h := cmd.Size.X(), cmd.Size.Y()
			vector.DrawFilledRect(screen, x-w/2, y-h/2, w, h, rgba(cmd.Color), true)
		case render.KindCircle:
			x, y := r.project(cmd.Position)
			vector.DrawFilledCircle(screen, x, y, cmd.Radius, rgba(cmd.Color), true)
		case render.KindTriangle:
			r.drawTriangle(screen, cmd)
		case render.KindSprite:
			r.drawSprite(screen, cmd)
		}
	}

	if r.doc != nil {
		r.drawUI(screen)
	}
}

func (r *Renderer) drawTriangle(screen *ebiten.Image, cmd render.Command) {
	var path vector.Path
	for i, p := range triangleVertices(cmd.Position, cmd.Radius) {
		x, y := r.project(p)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()

	r.verts, r.indices = path.AppendVerticesAndIndicesForFilling(r.verts[:0], r.indices[:0])
	cr, cg, cb := float32(cmd.Color.R)/255, float32(cmd.Color.G)/255, float32(cmd.Color.B)/255
	for i := range r.verts {
		r.verts[i].SrcX = 1
		r.verts[i].SrcY = 1
		r.verts[i].ColorR = cr
		r.verts[i].ColorG = cg
		r.verts[i].ColorB = cb
		r.verts[i].ColorA = 1
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	screen.DrawTriangles(r.verts, r.indices, whiteSubImage, op)
}

// triangleVertices returns the corners of an upward pointing equilateral
// triangle inscribed in a circle of radius around center.
func triangleVertices(center mgl32.Vec2, radius float32) [3]mgl32.Vec2 {
	var out [3]mgl32.Vec2
	for i := range out {
		angle := math.Pi/2 + float64(i)*2*math.Pi/3
		out[i] = center.Add(mgl32.Vec2{
			radius * float32(math.Cos(angle)),
			radius * float32(math.Sin(angle)),
		})
	}
	return out
}

func (r *Renderer) drawSprite(screen *ebiten.Image, cmd render.Command) {
	img, ok := r.sprites[cmd.SpriteID]
	if !ok {
		return
	}

	bounds := img.Bounds()
	sx := float64(cmd.Size.X()) / float64(bounds.Dx())
	sy := float64(cmd.Size.Y()) / float64(bounds.Dy())
	if cmd.FlipH {
		sx = -sx
	}
	if cmd.FlipV {
		sy = -sy
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(bounds.Dx())/2, -float64(bounds.Dy())/2)
	op.GeoM.Scale(sx, sy)
	x, y := r.project(cmd.Position)
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(img, op)
}

func (r *Renderer) drawUI(screen *ebiten.Image) {
	for _, el := range r.doc.Elements {
		text := r.doc.Text(el, r.data)
		switch el.Kind {
		case ui.ElementText:
			ebitenutil.DebugPrintAt(screen, text, int(el.X), int(el.Y))
		case ui.ElementButton:
			vector.DrawFilledRect(screen, el.X, el.Y, el.Width, el.Height, buttonFill, false)
			vector.StrokeRect(screen, el.X, el.Y, el.Width, el.Height, 1, buttonBorder, false)
			ebitenutil.DebugPrintAt(screen, text, int(el.X)+8, int(el.Y)+4)
		}
	}
}

func rgba(c render.Color) color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 255}
}
