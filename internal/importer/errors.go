package importer

import (
	"errors"
	"fmt"
)

// Kind classifies import failures.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindDuplicateGame Kind = "duplicate_game"
	KindPatternMatch  Kind = "pattern_match"
	KindPersistence   Kind = "persistence"
)

var (
	ErrValidation    = errors.New("validation error")
	ErrDuplicateGame = errors.New("duplicate game")
	ErrPatternMatch  = errors.New("pattern match error")
	ErrPersistence   = errors.New("persistence error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindDuplicateGame:
		return ErrDuplicateGame
	case KindPatternMatch:
		return ErrPatternMatch
	default:
		return ErrPersistence
	}
}

// Error is the structured failure returned by Import and Rebuild. Field names
// the offending input (e.g. "filename", "Row") when there is one.
type Error struct {
	Kind    Kind
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind, so errors.Is(err,
// ErrDuplicateGame) works without a type assertion.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindOf returns the kind of an import error, or "" for other errors.
func KindOf(err error) Kind {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return ""
}

func newError(kind Kind, field, message string, err error) *Error {
	return &Error{Kind: kind, Field: field, Message: message, Err: err}
}

// asImportError keeps an *Error as is and classifies anything else as a
// persistence failure.
func asImportError(err error, message string) error {
	var ie *Error
	if errors.As(err, &ie) {
		return ie
	}
	return newError(KindPersistence, "", message, err)
}
