package engine

import (
	"github.com/plus3/warpcore/input"
	"github.com/plus3/warpcore/render"
	"github.com/plus3/warpcore/ui"
)

// Frame is what the engine hands its renderer at the end of every tick.
type Frame struct {
	Scene  string
	Buffer *render.DrawBuffer
	UI     *ui.Document
	// Data is a copy of the scene data map for UI placeholders.
	Data      map[string]string
	Mouse     input.Mouse
	Callbacks CallbackInvoker
}

// CallbackInvoker runs a scene callback by name.
type CallbackInvoker interface {
	InvokeCallback(name string) error
}

// Renderer is the rendering collaborator. Submit is called once per tick and
// must not retain Buffer past the next Submit.
type Renderer interface {
	Submit(frame Frame)
	Resize(width, height int)
}
