package script

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/warpcore/audio"
	"github.com/plus3/warpcore/input"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

func (b *Behavior) engineTable(L *lua.LState) *lua.LTable {
	t := L.NewTable()
	L.SetFuncs(t, map[string]lua.LGFunction{
		"key_down":       b.keyDown,
		"key_pressed":    b.keyPressed,
		"data":           b.data,
		"set_data":       b.setData,
		"insert_data":    b.insertData,
		"remove_data":    b.removeData,
		"switch_scene":   b.switchScene,
		"play_sound":     b.playSound,
		"colliding":      b.colliding,
		"colliding_once": b.collidingOnce,
		"sensor_once":    b.sensorOnce,
		"broadcast":      b.broadcast,
		"log":            b.log,
	})
	return t
}

func (b *Behavior) selfTable(L *lua.LState) *lua.LTable {
	t := L.NewTable()
	L.SetFuncs(t, map[string]lua.LGFunction{
		"position":      b.position,
		"set_position":  b.setPosition,
		"velocity":      b.velocity,
		"set_velocity":  b.setVelocity,
		"apply_impulse": b.applyImpulse,
		"collider":      b.collider,
	})
	return t
}

func checkKey(L *lua.LState, n int) input.Key {
	k, err := input.ParseKey(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return k
}

func (b *Behavior) keyDown(L *lua.LState) int {
	_, ctx := b.current(L)
	L.Push(lua.LBool(ctx.IsKeyDown(checkKey(L, 1))))
	return 1
}

func (b *Behavior) keyPressed(L *lua.LState) int {
	_, ctx := b.current(L)
	L.Push(lua.LBool(ctx.IsKeyPressed(checkKey(L, 1))))
	return 1
}

func (b *Behavior) data(L *lua.LState) int {
	_, ctx := b.current(L)
	v, ok := ctx.Data(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(v))
	return 1
}

// send reports a closed bus to the script as a Lua error.
func (b *Behavior) send(L *lua.LState, err error) int {
	if err != nil {
		L.RaiseError("%s", err)
	}
	return 0
}

func (b *Behavior) setData(L *lua.LState) int {
	_, ctx := b.current(L)
	return b.send(L, ctx.SetData(L.CheckString(1), L.CheckString(2)))
}

func (b *Behavior) insertData(L *lua.LState) int {
	_, ctx := b.current(L)
	return b.send(L, ctx.InsertData(L.CheckString(1), L.CheckString(2)))
}

func (b *Behavior) removeData(L *lua.LState) int {
	_, ctx := b.current(L)
	return b.send(L, ctx.RemoveData(L.CheckString(1)))
}

func (b *Behavior) switchScene(L *lua.LState) int {
	_, ctx := b.current(L)
	return b.send(L, ctx.LoadScene(L.CheckString(1)))
}

// play_sound(path [, volume [, pan]])
func (b *Behavior) playSound(L *lua.LState) int {
	_, ctx := b.current(L)
	src := audio.NewSource(L.CheckString(1)).
		WithVolume(float64(L.OptNumber(2, 1))).
		WithPan(float64(L.OptNumber(3, 0.5)))
	return b.send(L, ctx.PlaySound(src))
}

func (b *Behavior) colliding(L *lua.LState) int {
	_, ctx := b.current(L)
	L.Push(lua.LBool(ctx.IsColliding(checkCollider(L, 1), checkCollider(L, 2))))
	return 1
}

func (b *Behavior) collidingOnce(L *lua.LState) int {
	_, ctx := b.current(L)
	_, ok := ctx.IsCollidingOnce(checkCollider(L, 1), checkCollider(L, 2))
	L.Push(lua.LBool(ok))
	return 1
}

func (b *Behavior) sensorOnce(L *lua.LState) int {
	_, ctx := b.current(L)
	_, ok := ctx.IsCollidingWithSensorOnce(checkCollider(L, 1), checkCollider(L, 2))
	L.Push(lua.LBool(ok))
	return 1
}

func (b *Behavior) broadcast(L *lua.LState) int {
	_, ctx := b.current(L)
	return b.send(L, ctx.Broadcast([]byte(L.CheckString(1))))
}

func (b *Behavior) log(L *lua.LState) int {
	_, ctx := b.current(L)
	b.logger(ctx).Info(L.CheckString(1), zap.String("script", b.name))
	return 0
}

func (b *Behavior) position(L *lua.LState) int {
	obj, _ := b.current(L)
	pos := obj.Position()
	L.Push(lua.LNumber(pos.X()))
	L.Push(lua.LNumber(pos.Y()))
	return 2
}

func (b *Behavior) setPosition(L *lua.LState) int {
	obj, _ := b.current(L)
	obj.SetPosition(mgl32.Vec2{float32(L.CheckNumber(1)), float32(L.CheckNumber(2))})
	return 0
}

func (b *Behavior) velocity(L *lua.LState) int {
	obj, ctx := b.current(L)
	body, err := ctx.Body(obj.Body())
	if err != nil {
		b.fail(L, err)
	}
	v := body.LinearVelocity()
	L.Push(lua.LNumber(v.X()))
	L.Push(lua.LNumber(v.Y()))
	return 2
}

func (b *Behavior) setVelocity(L *lua.LState) int {
	obj, ctx := b.current(L)
	body, err := ctx.Body(obj.Body())
	if err != nil {
		b.fail(L, err)
	}
	body.SetLinearVelocity(mgl32.Vec2{float32(L.CheckNumber(1)), float32(L.CheckNumber(2))})
	return 0
}

func (b *Behavior) applyImpulse(L *lua.LState) int {
	obj, ctx := b.current(L)
	body, err := ctx.Body(obj.Body())
	if err != nil {
		b.fail(L, err)
	}
	body.ApplyImpulse(mgl32.Vec2{float32(L.CheckNumber(1)), float32(L.CheckNumber(2))})
	return 0
}

func (b *Behavior) collider(L *lua.LState) int {
	obj, _ := b.current(L)
	L.Push(colliderValue(L, obj.Collider()))
	return 1
}
