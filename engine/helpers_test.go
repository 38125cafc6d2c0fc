package engine_test

import (
	"time"

	"github.com/plus3/warpcore/audio"
	"github.com/plus3/warpcore/config"
	"github.com/plus3/warpcore/engine"
)

const frame = time.Second / 60

// recorder appends lifecycle calls to a shared log and optionally runs tick
// on every OnTick.
type recorder struct {
	name string
	log  *[]string
	tick func(obj *engine.EntityView, ctx *engine.Context)
}

func (r *recorder) OnTick(obj *engine.EntityView, ctx *engine.Context) {
	*r.log = append(*r.log, "tick "+r.name)
	if r.tick != nil {
		r.tick(obj, ctx)
	}
}

func (r *recorder) OnLoad(obj *engine.EntityView, ctx *engine.Context) {
	*r.log = append(*r.log, "load "+r.name)
}

func (r *recorder) OnUnload(obj *engine.EntityView, ctx *engine.Context) {
	*r.log = append(*r.log, "unload "+r.name)
}

func (r *recorder) Clone() engine.Behavior {
	c := *r
	return &c
}

type captureRenderer struct {
	frames  []engine.Frame
	resized [][2]int
}

func (r *captureRenderer) Submit(frame engine.Frame) {
	r.frames = append(r.frames, frame)
}

func (r *captureRenderer) Resize(width, height int) {
	r.resized = append(r.resized, [2]int{width, height})
}

func (r *captureRenderer) last() engine.Frame {
	return r.frames[len(r.frames)-1]
}

type captureAudio struct {
	played []audio.Source
}

func (a *captureAudio) Play(src audio.Source) error {
	a.played = append(a.played, src)
	return nil
}

func newEngine(opts ...engine.Option) *engine.Engine {
	return engine.New(config.Default(), opts...)
}

func newEngineWith(mutate func(cfg *config.Config), opts ...engine.Option) *engine.Engine {
	cfg := config.Default()
	mutate(cfg)
	return engine.New(cfg, opts...)
}
