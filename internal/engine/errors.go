package engine

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("invalid state")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnknownBoss        = errors.New("unknown boss")
	ErrNoActiveBoss       = errors.New("no active boss")
	ErrInsufficientPoints = errors.New("insufficient dark points")
)

// NotFoundError reports a missing mission, domain, habit, reward or other keyed entity.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Key)
}

func (e NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StateError is returned when an operation is not allowed from the entity's current state.
type StateError struct {
	Entity string
	State  string
	Op     string
}

func (e StateError) Error() string {
	return fmt.Sprintf("cannot %s %s: %s", e.Op, e.Entity, e.State)
}

func (e StateError) Is(target error) bool { return target == ErrInvalidState }

type UnknownBossError struct {
	ID string
}

func (e UnknownBossError) Error() string {
	return fmt.Sprintf("boss %q does not exist", e.ID)
}

func (e UnknownBossError) Is(target error) bool { return target == ErrUnknownBoss }

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func indexNotFound(kind string, index int) error {
	return NotFoundError{Kind: kind, Key: fmt.Sprintf("#%d", index)}
}
