package engine

import (
	"fmt"

	"github.com/plus3/warpcore/audio"
	"github.com/plus3/warpcore/physics"
	"github.com/vmihailenco/msgpack/v5"
)

// Intent is a deferred effect sent by a behavior and applied by the engine
// when the bus drains at the end of the frame.
type Intent interface {
	intent()
}

// SwitchScene makes the named scene active.
type SwitchScene struct {
	Name string
}

// SetData overwrites a key in the active scene's data map.
type SetData struct {
	Key, Value string
}

// InsertData adds or replaces a key in the active scene's data map.
type InsertData struct {
	Key, Value string
}

// RemoveData deletes a key from the active scene's data map.
type RemoveData struct {
	Key string
}

// PlaySound forwards a source to the audio collaborator.
type PlaySound struct {
	Source audio.Source
}

// PullEntityByCollider runs Fn against the entity owning Collider, after the
// behavior pass of the frame has finished.
type PullEntityByCollider struct {
	Collider physics.ColliderHandle
	Fn       func(obj *EntityView, ctx *Context)
}

// BroadcastUserEvent delivers Payload to every OnForeignEvent handler of the
// active scene.
type BroadcastUserEvent struct {
	Payload []byte
}

func (SwitchScene) intent()          {}
func (SetData) intent()              {}
func (InsertData) intent()           {}
func (RemoveData) intent()           {}
func (PlaySound) intent()            {}
func (PullEntityByCollider) intent() {}
func (BroadcastUserEvent) intent()   {}

func intentName(in Intent) string {
	switch v := in.(type) {
	case SwitchScene:
		return fmt.Sprintf("SwitchScene(%s)", v.Name)
	case SetData:
		return fmt.Sprintf("SetData(%s)", v.Key)
	case InsertData:
		return fmt.Sprintf("InsertData(%s)", v.Key)
	case RemoveData:
		return fmt.Sprintf("RemoveData(%s)", v.Key)
	case PlaySound:
		return fmt.Sprintf("PlaySound(%s)", v.Source.Path)
	case PullEntityByCollider:
		return fmt.Sprintf("PullEntityByCollider(%s)", v.Collider)
	case BroadcastUserEvent:
		return fmt.Sprintf("BroadcastUserEvent(%d bytes)", len(v.Payload))
	default:
		return fmt.Sprintf("%T", in)
	}
}

// EncodeUserEvent packs v into a broadcast payload.
func EncodeUserEvent(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

// DecodeUserEvent unpacks a payload produced by EncodeUserEvent.
func DecodeUserEvent(payload []byte, v any) error {
	return msgpack.Unmarshal(payload, v)
}
