package engine

import (
	"errors"
	"fmt"

	"github.com/plus3/warpcore/physics"
	"github.com/plus3/warpcore/ui"
)

var (
	// ErrMissingScene is returned when switching to an unregistered scene.
	ErrMissingScene = errors.New("missing scene")
	// ErrMissingHandle is returned by physics accessors given a stale or
	// foreign handle.
	ErrMissingHandle = physics.ErrMissingHandle
	// ErrChannelClosed is returned by sends after the engine shut down.
	ErrChannelClosed = errors.New("event channel closed")
	// ErrMissingCallback is returned when a UI binding names no callback.
	ErrMissingCallback = errors.New("missing callback")
	// ErrMalformedSceneAsset wraps UI parse failures at scene build time.
	ErrMalformedSceneAsset = ui.ErrMalformedSceneAsset
)

// MissingSceneError names the scene that could not be found.
type MissingSceneError struct {
	Name string
}

func (e *MissingSceneError) Error() string {
	return fmt.Sprintf("missing scene %q", e.Name)
}

func (e *MissingSceneError) Is(target error) bool {
	return target == ErrMissingScene
}
