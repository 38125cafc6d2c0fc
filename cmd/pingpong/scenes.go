package main

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/warpcore/engine"
	"github.com/plus3/warpcore/physics"
	"github.com/plus3/warpcore/render"
	"github.com/plus3/warpcore/script"
	"go.uber.org/zap"
)

const (
	mainScene = "Main"
	failScene = "Fail"
	scoreKey  = "ScoreValue"

	paddleWidth  = 10
	paddleHeight = 80
	ballRadius   = 10
)

var (
	//go:embed assets/ball.lua
	ballScript string
	//go:embed assets/main.yaml
	mainUI []byte
	//go:embed assets/fail.yaml
	failUI []byte
)

// gameOptions tune the demo. Sound is the path of the bounce sample; empty
// keeps the game silent.
type gameOptions struct {
	Sound string
}

// setupScenes registers both scenes and activates Main.
func setupScenes(e *engine.Engine, opts gameOptions) error {
	if err := registerMain(e, opts); err != nil {
		return fmt.Errorf("register %s: %w", mainScene, err)
	}
	if err := registerFail(e); err != nil {
		return fmt.Errorf("register %s: %w", failScene, err)
	}
	return e.SetCurrentScene(mainScene)
}

func registerMain(e *engine.Engine, opts gameOptions) error {
	scene := e.RegisterScene(mainScene)
	scene.SetInitialData(scoreKey, "0")
	if err := scene.RegisterUISource("main.yaml", mainUI); err != nil {
		return err
	}

	width, height := e.Size()
	halfW, halfH := float32(width)/2, float32(height)/2

	ballBehavior, err := script.New("ball", ballScript, script.Options{})
	if err != nil {
		return err
	}

	ball := scene.RegisterGameObject(engine.NewBuilder().
		Position(mgl32.Vec2{0, 0}).
		RigidBody(physics.BodyDesc{Type: physics.Dynamic, FixedRotation: true}).
		Collider(physics.Circle(ballRadius).WithRestitution(1)).
		Graphics(render.Circle{Radius: ballRadius, Color: render.White}).
		Behavior(ballBehavior))

	paddle := physics.Rectangle(paddleWidth, paddleHeight).WithRestitution(1)
	paddleLook := paddleGraphics{render.Rect{Width: paddleWidth, Height: paddleHeight, Color: render.White}}
	limit := (halfH - paddleHeight) / e.Config().Physics.PixelsPerUnit

	scene.RegisterGameObject(engine.NewBuilder().
		Position(mgl32.Vec2{-halfW + 40, 0}).
		RigidBody(physics.BodyDesc{Type: physics.Kinematic}).
		Collider(paddle).
		Graphics(paddleLook).
		Behavior(&Player{Speed: 8, Limit: limit, Ball: ball.Collider(), Sound: opts.Sound}))

	scene.RegisterGameObject(engine.NewBuilder().
		Position(mgl32.Vec2{halfW - 40, 0}).
		RigidBody(physics.BodyDesc{Type: physics.Kinematic}).
		Collider(paddle).
		Graphics(paddleLook).
		Behavior(&AI{Ball: ball.Collider(), BallBody: ball.Body(), Kick: 2}))

	for _, y := range []float32{halfH, -halfH - 10} {
		scene.RegisterGameObject(engine.NewBuilder().
			Position(mgl32.Vec2{0, y}).
			RigidBody(physics.BodyDesc{Type: physics.Static}).
			Collider(physics.Rectangle(float32(width), 10).WithRestitution(1)).
			Graphics(paddleGraphics{render.Rect{Width: float32(width), Height: 10, Color: render.White}}))
	}

	for _, x := range []float32{-halfW, halfW} {
		scene.RegisterGameObject(engine.NewBuilder().
			Position(mgl32.Vec2{x, -halfH}).
			RigidBody(physics.BodyDesc{Type: physics.Static}).
			Collider(physics.Rectangle(10, float32(height)).WithSensor(true)).
			Behavior(&Barrier{Ball: ball.Collider()}))
	}

	return nil
}

func registerFail(e *engine.Engine) error {
	scene := e.RegisterScene(failScene)
	if err := scene.RegisterUISource("fail.yaml", failUI); err != nil {
		return err
	}

	scene.RegisterCallback("retry", func(ctx *engine.Context) {
		if err := ctx.LoadScene(mainScene); err != nil {
			ctx.Logger().Error("retry failed", zap.Error(err))
		}
	})
	return nil
}
