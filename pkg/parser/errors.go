package parser

import (
	"errors"
	"fmt"
)

// Decode error kinds. Every error returned by a Parse function matches
// exactly one of them with errors.Is.
var (
	ErrMissingField = errors.New("missing field")
	ErrTypeMismatch = errors.New("type mismatch")
	ErrMalformed    = errors.New("malformed encoding")
	ErrOutOfRange   = errors.New("value out of range")
	ErrInvariant    = errors.New("invariant violation")
)

// DecodeError describes why a response could not be decoded.
type DecodeError struct {
	// Shape is the response being decoded, e.g. "FundedTx".
	Shape string
	// Field is the path of the offending value; empty for the whole body.
	Field string
	Kind  error
	Err   error
}

func (e *DecodeError) Error() string {
	where := e.Shape
	if e.Field != "" {
		where = fmt.Sprintf("%s.%s", e.Shape, e.Field)
	}
	if e.Err == nil {
		return fmt.Sprintf("decode %s: %v", where, e.Kind)
	}
	return fmt.Sprintf("decode %s: %v: %v", where, e.Kind, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the decode error kind carried by err, or nil.
func KindOf(err error) error {
	for _, kind := range []error{ErrMissingField, ErrTypeMismatch, ErrMalformed, ErrOutOfRange, ErrInvariant} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

func decodeErr(shape, field string, kind, err error) *DecodeError {
	return &DecodeError{Shape: shape, Field: field, Kind: kind, Err: err}
}

func decodeErrf(shape, field string, kind error, format string, args ...any) *DecodeError {
	return decodeErr(shape, field, kind, fmt.Errorf(format, args...))
}
