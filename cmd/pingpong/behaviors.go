package main

import (
	"math/rand/v2"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/warpcore/audio"
	"github.com/plus3/warpcore/engine"
	"github.com/plus3/warpcore/input"
	"github.com/plus3/warpcore/physics"
	"github.com/plus3/warpcore/render"
	"go.uber.org/zap"
)

// paddleGraphics draws a rect lifted by half its height so it lines up with
// the paddle's collider.
type paddleGraphics struct {
	render.Rect
}

func (g paddleGraphics) Draw(buf *render.DrawBuffer, pos mgl32.Vec2) {
	g.Rect.Draw(buf, pos.Add(mgl32.Vec2{0, g.Height / 2}))
}

// Player moves its paddle with the arrow keys or W/S and scores on every
// return.
type Player struct {
	Speed float32 // physics units per second
	Limit float32 // max |y| in physics units
	Ball  physics.ColliderHandle
	Sound string

	score int
}

func (p *Player) OnTick(obj *engine.EntityView, ctx *engine.Context) {
	var dy float32
	if ctx.IsKeyDown(input.KeyArrowUp) || ctx.IsKeyDown(input.KeyW) {
		dy += p.Speed
	}
	if ctx.IsKeyDown(input.KeyArrowDown) || ctx.IsKeyDown(input.KeyS) {
		dy -= p.Speed
	}

	body := ctx.MustBody(obj.Body())
	pos := body.Translation()
	y := mgl32.Clamp(pos.Y()+dy*float32(ctx.DeltaTime), -p.Limit, p.Limit)
	body.SetTranslation(mgl32.Vec2{pos.X(), y})

	if _, hit := ctx.IsCollidingOnce(obj.Collider(), p.Ball); !hit {
		return
	}

	p.score++
	if err := ctx.SetData(scoreKey, strconv.Itoa(p.score)); err != nil {
		ctx.Logger().Warn("score update dropped", zap.Error(err))
	}
	if err := ctx.Broadcast([]byte("speedup")); err != nil {
		ctx.Logger().Warn("speedup dropped", zap.Error(err))
	}
	if p.Sound != "" {
		_ = ctx.PlaySound(audio.NewSource(p.Sound).WithVolume(0.6).WithPan(0.2))
	}
}

func (p *Player) Clone() engine.Behavior {
	c := *p
	return &c
}

// AI tracks the ball and nudges it off axis on contact.
type AI struct {
	Ball     physics.ColliderHandle
	BallBody physics.BodyHandle
	Kick     float32
}

func (a *AI) OnTick(obj *engine.EntityView, ctx *engine.Context) {
	ball := ctx.MustBody(a.BallBody)

	if _, hit := ctx.IsCollidingOnce(obj.Collider(), a.Ball); hit {
		ball.ResetForces()
		ball.ApplyImpulse(mgl32.Vec2{0, (rand.Float32()*2 - 1) * a.Kick})
	}

	body := ctx.MustBody(obj.Body())
	// The paddle's collider is lifted above its origin; center it on the ball.
	offset := ctx.ToPhysics(mgl32.Vec2{0, paddleHeight / 2}).Y()
	body.SetTranslation(mgl32.Vec2{body.Translation().X(), ball.Translation().Y() - offset})
}

func (a *AI) Clone() engine.Behavior {
	return a
}

// Barrier ends the round when the ball crosses it.
type Barrier struct {
	Ball physics.ColliderHandle
}

func (b *Barrier) OnTick(obj *engine.EntityView, ctx *engine.Context) {
	if _, crossed := ctx.IsCollidingWithSensorOnce(obj.Collider(), b.Ball); crossed {
		if err := ctx.LoadScene(failScene); err != nil {
			ctx.Logger().Warn("scene switch dropped", zap.Error(err))
		}
	}
}

func (b *Barrier) Clone() engine.Behavior {
	return b
}
