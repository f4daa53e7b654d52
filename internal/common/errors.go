package common

import (
	"errors"
	"fmt"
)

// Kind classifies failures so callers can map them to a response without
// inspecting the underlying cause.
type Kind int

const (
	KindInternal Kind = iota
	KindInput
	KindStorage
	KindDatabase
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindStorage:
		return "storage"
	case KindDatabase:
		return "database"
	case KindConfig:
		return "config"
	default:
		return "internal"
	}
}

// Error carries the kind and the failed operation alongside the cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E wraps err with a kind and operation name. A nil err stays nil.
func E(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the outermost classified error in the chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
