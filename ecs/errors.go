package ecs

import (
	"errors"
	"fmt"
)

// Every error below signals a programming mistake. The World panics with an
// error wrapping one of them; recover and use errors.Is to tell them apart.
var (
	ErrUnregisteredComponent = errors.New("ecs: component not registered with this world")
	ErrBuilderUsed           = errors.New("ecs: entity builder already committed")
	ErrTooManyComponents     = errors.New("ecs: component limit reached")
	ErrFieldType             = errors.New("ecs: accessor type mismatch")
)

func unregistered(h any) error {
	return fmt.Errorf("%w: %v", ErrUnregisteredComponent, h)
}
