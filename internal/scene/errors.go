package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateID is returned when an entity id is already live in the scene.
	ErrDuplicateID = errors.New("scene: duplicate entity id")

	// ErrWrongKind is returned when an asset does not fit the entity it was
	// requested for, e.g. a sprite handed to a model.
	ErrWrongKind = errors.New("scene: asset kind does not match entity")

	// ErrClosed is returned by adds after Close.
	ErrClosed = errors.New("scene: closed")
)

// AssetLoadError reports a visual that could not be loaded for an entity.
// It is fatal for the scene: a failed asynchronous load is returned by the
// next Tick.
type AssetLoadError struct {
	URI string
	ID  string
	Err error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("scene: load %q for %q: %v", e.URI, e.ID, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}
