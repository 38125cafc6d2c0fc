// Package script runs entity behaviors written in Lua.
//
// A script defines any of the global functions on_tick(dt), on_load(),
// on_unload() and on_foreign_event(payload). Inside them it reaches the
// engine through two tables: engine (input, collision edges, data map and
// intents) and self (the entity the behavior is attached to). Collider
// handles are passed around as userdata; named handles from Options are set
// as globals before the chunk runs.
package script

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/plus3/warpcore/engine"
	"github.com/plus3/warpcore/physics"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

var errNoCall = errors.New("engine api used outside a callback")

// Options configures a scripted behavior.
type Options struct {
	// Handles are exposed to the script as globals of the same name.
	Handles map[string]physics.ColliderHandle
	// Logger receives Lua errors. Defaults to the engine logger of the
	// calling context.
	Logger *zap.Logger
}

// Behavior is an engine.Behavior backed by its own Lua VM. Every clone gets a
// fresh VM, so script globals are per scene visit.
type Behavior struct {
	name   string
	source string
	opts   Options

	vm *lua.LState

	// set for the duration of one callback
	obj   *engine.EntityView
	ctx   *engine.Context
	stale error
}

// New compiles source into a behavior. name identifies the script in logs
// and stats.
func New(name, source string, opts Options) (*Behavior, error) {
	b := &Behavior{name: name, source: source, opts: opts}
	if err := b.init(); err != nil {
		return nil, fmt.Errorf("load script %s: %w", name, err)
	}
	return b, nil
}

// Load reads a script from disk. The behavior is named after the file.
func Load(path string, opts Options) (*Behavior, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(name, string(src), opts)
}

func (b *Behavior) init() error {
	vm := lua.NewState()

	for name, h := range b.opts.Handles {
		vm.SetGlobal(name, colliderValue(vm, h))
	}
	vm.SetGlobal("engine", b.engineTable(vm))
	vm.SetGlobal("self", b.selfTable(vm))

	if err := vm.DoString(b.source); err != nil {
		vm.Close()
		return err
	}

	b.vm = vm
	return nil
}

// Name is the script name.
func (b *Behavior) Name() string {
	return b.name
}

func (b *Behavior) OnTick(obj *engine.EntityView, ctx *engine.Context) {
	b.call("on_tick", obj, ctx, lua.LNumber(ctx.DeltaTime))
}

func (b *Behavior) OnLoad(obj *engine.EntityView, ctx *engine.Context) {
	b.call("on_load", obj, ctx)
}

// OnUnload runs on_unload and closes the VM; the scene instance that owned
// this clone is discarded after unload.
func (b *Behavior) OnUnload(obj *engine.EntityView, ctx *engine.Context) {
	b.call("on_unload", obj, ctx)
	if b.vm != nil {
		b.vm.Close()
		b.vm = nil
	}
}

func (b *Behavior) OnForeignEvent(obj *engine.EntityView, ctx *engine.Context, payload []byte) {
	b.call("on_foreign_event", obj, ctx, lua.LString(payload))
}

func (b *Behavior) Clone() engine.Behavior {
	c := &Behavior{name: b.name, source: b.source, opts: b.opts}
	if err := c.init(); err != nil {
		b.logger(nil).Error("script clone failed", zap.String("script", b.name), zap.Error(err))
	}
	return c
}

func (b *Behavior) logger(ctx *engine.Context) *zap.Logger {
	if b.opts.Logger != nil {
		return b.opts.Logger
	}
	if ctx != nil {
		return ctx.Logger()
	}
	return zap.NewNop()
}

// call runs a global Lua function if the script defines it. A stale handle
// hit inside the script is re-raised as a Go panic after the VM unwinds so
// the dispatcher treats it like any other behavior.
func (b *Behavior) call(fn string, obj *engine.EntityView, ctx *engine.Context, args ...lua.LValue) {
	if b.vm == nil {
		return
	}
	f, ok := b.vm.GetGlobal(fn).(*lua.LFunction)
	if !ok {
		return
	}

	b.obj, b.ctx, b.stale = obj, ctx, nil
	err := b.vm.CallByParam(lua.P{
		Fn:      f,
		NRet:    0,
		Protect: true,
	}, args...)
	stale := b.stale
	b.obj, b.ctx, b.stale = nil, nil, nil

	if stale != nil {
		panic(stale)
	}
	if err != nil {
		b.logger(ctx).Error("lua callback failed",
			zap.String("script", b.name),
			zap.String("fn", fn),
			zap.Error(err))
	}
}

// current returns the view pair of the running callback or raises a Lua
// error.
func (b *Behavior) current(L *lua.LState) (*engine.EntityView, *engine.Context) {
	if b.ctx == nil {
		L.RaiseError("%s", errNoCall)
	}
	return b.obj, b.ctx
}

// fail records a stale handle and aborts the script.
func (b *Behavior) fail(L *lua.LState, err error) {
	if errors.Is(err, physics.ErrMissingHandle) {
		b.stale = err
	}
	L.RaiseError("%s", err)
}

func colliderValue(L *lua.LState, h physics.ColliderHandle) *lua.LUserData {
	ud := L.NewUserData()
	ud.Value = h
	return ud
}

func checkCollider(L *lua.LState, n int) physics.ColliderHandle {
	ud := L.CheckUserData(n)
	h, ok := ud.Value.(physics.ColliderHandle)
	if !ok {
		L.ArgError(n, "collider expected")
	}
	return h
}
