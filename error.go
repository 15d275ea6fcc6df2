package mustache

import (
	mjerrors "github.com/mustache-go/mustache/internal/errors"
)

// Error represents an error that occurred while parsing or rendering.
type Error = mjerrors.Error

// ErrorKind describes the type of error.
type ErrorKind = mjerrors.ErrorKind

const (
	ErrSyntax           = mjerrors.ErrSyntax
	ErrUnclosedTag      = mjerrors.ErrUnclosedTag
	ErrInvalidName      = mjerrors.ErrInvalidName
	ErrInvalidDelimiter = mjerrors.ErrInvalidDelimiter
	ErrUnopenedSection  = mjerrors.ErrUnopenedSection
	ErrSectionMismatch  = mjerrors.ErrSectionMismatch
	ErrUnclosedSection  = mjerrors.ErrUnclosedSection
	ErrUndefinedVar     = mjerrors.ErrUndefinedVar
	ErrInvalidArgument  = mjerrors.ErrInvalidArgument
	ErrBadPartial       = mjerrors.ErrBadPartial
	ErrLambda           = mjerrors.ErrLambda
	ErrOutOfFuel        = mjerrors.ErrOutOfFuel
	ErrRecursionLimit   = mjerrors.ErrRecursionLimit
	ErrCanceled         = mjerrors.ErrCanceled
)

// NewError creates a new error.
func NewError(kind ErrorKind, msg string) *Error {
	return mjerrors.New(kind, msg)
}
