// Package errors defines the error type shared by the parser and renderer.
package errors

import (
	"fmt"

	"github.com/mustache-go/mustache/syntax"
)

// ErrorKind describes the type of error.
type ErrorKind int

const (
	ErrSyntax ErrorKind = iota
	ErrUnclosedTag
	ErrInvalidName
	ErrInvalidDelimiter
	ErrUnopenedSection
	ErrSectionMismatch
	ErrUnclosedSection
	ErrUndefinedVar
	ErrInvalidArgument
	ErrBadPartial
	ErrLambda
	ErrOutOfFuel
	ErrRecursionLimit
	ErrCanceled
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax error"
	case ErrUnclosedTag:
		return "unclosed tag"
	case ErrInvalidName:
		return "invalid tag name"
	case ErrInvalidDelimiter:
		return "invalid delimiter"
	case ErrUnopenedSection:
		return "unopened section"
	case ErrSectionMismatch:
		return "section mismatch"
	case ErrUnclosedSection:
		return "unclosed section"
	case ErrUndefinedVar:
		return "undefined variable"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrBadPartial:
		return "bad partial"
	case ErrLambda:
		return "lambda failed"
	case ErrOutOfFuel:
		return "out of fuel"
	case ErrRecursionLimit:
		return "recursion limit exceeded"
	case ErrCanceled:
		return "render canceled"
	default:
		return "error"
	}
}

// IsParseError reports whether the kind is raised while parsing.
func (k ErrorKind) IsParseError() bool {
	switch k {
	case ErrSyntax, ErrUnclosedTag, ErrInvalidName, ErrInvalidDelimiter,
		ErrUnopenedSection, ErrSectionMismatch, ErrUnclosedSection:
		return true
	}
	return false
}

// Error represents an error that occurred while parsing or rendering.
type Error struct {
	Kind        ErrorKind
	Message     string
	Name        string       // tag name involved, if any
	Span        *syntax.Span // location in Source
	Source      string       // template source (for error display)
	Snippet     string       // bounded excerpt around the failing tag
	Suggestions []string     // similar names visible in the context
	cause       error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Message)
	if e.Span != nil {
		msg = fmt.Sprintf("%s (at line %d, column %d)", msg, e.Span.StartLine, e.Span.StartCol+1)
	}
	if e.Snippet != "" {
		msg = fmt.Sprintf("%s around %q", msg, e.Snippet)
	}
	return msg
}

// Format implements fmt.Formatter. The %+v verb renders the template
// location and suggestions.
func (e *Error) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('+') {
			formatErrorWithDebug(f, e, true)
			return
		}
		_, _ = fmt.Fprint(f, e.Error())
	case 's':
		_, _ = fmt.Fprint(f, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(f, "%q", e.Error())
	default:
		_, _ = fmt.Fprint(f, e.Error())
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches errors of the same kind, so that
// errors.Is(err, New(ErrUnclosedTag, "")) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New creates a new error.
func New(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Newf creates a new error with a formatted message.
func Newf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithOffset records the location of a byte offset in source.
func (e *Error) WithOffset(source string, offset int) *Error {
	span := syntax.NewSpan(source, offset, offset)
	e.Span = &span
	e.Source = source
	return e
}

// WithSpan adds span information to an error.
func (e *Error) WithSpan(span syntax.Span) *Error {
	e.Span = &span
	return e
}

// WithName adds the offending tag name.
func (e *Error) WithName(name string) *Error {
	e.Name = name
	return e
}

// WithSource adds source to an error.
func (e *Error) WithSource(source string) *Error {
	e.Source = source
	return e
}

// WithSnippet adds an excerpt of the surrounding template.
func (e *Error) WithSnippet(snippet string) *Error {
	e.Snippet = snippet
	return e
}

// WithSuggestions attaches names the caller may have meant.
func (e *Error) WithSuggestions(names []string) *Error {
	e.Suggestions = names
	return e
}

// WithCause records the underlying error.
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// Offset returns the byte offset of the error, or -1 if unknown.
func (e *Error) Offset() int {
	if e.Span == nil {
		return -1
	}
	return e.Span.StartOffset
}
