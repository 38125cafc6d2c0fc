package physics

import (
	"errors"
	"fmt"
)

// ErrMissingHandle is returned when a handle is stale, was never issued or
// belongs to another world.
var ErrMissingHandle = errors.New("missing handle")

func missingBody(h BodyHandle) error {
	return fmt.Errorf("%w: %s", ErrMissingHandle, h)
}

func missingCollider(h ColliderHandle) error {
	return fmt.Errorf("%w: %s", ErrMissingHandle, h)
}
