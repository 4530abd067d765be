package pos

import (
	"errors"
	"fmt"
)

// Failure kinds. Match them with errors.Is.
var (
	ErrTransport = errors.New("transport failure")
	ErrDecode    = errors.New("decode failure")
	ErrRejected  = errors.New("rejected by server")
)

// Error is the classified outcome of a failed call.
type Error struct {
	Kind    error
	Op      string
	Message string // server supplied message, rejected envelopes only
	Err     error
}

func (e *Error) Error() string {
	s := fmt.Sprintf("pos: %s: %v", e.Op, e.Kind)
	if e.Message != "" {
		s += ": " + e.Message
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}
