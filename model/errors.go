package model

import (
	"errors"
	"fmt"
)

// ErrNotImplemented marks calls into deliberately unimplemented methods.
// It signals an integration bug, not a data problem.
var ErrNotImplemented = errors.New("not implemented")

// NotImplementedError names the unimplemented operation.
type NotImplementedError struct {
	Op string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, ErrNotImplemented)
}

// Is makes errors.Is(err, ErrNotImplemented) match.
func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}
