package core

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

type ErrorKind string

const (
	SyntaxErrorKind ErrorKind = "SyntaxError"
	NameErrorKind   ErrorKind = "NameError"
	TypeErrorKind   ErrorKind = "TypeError"
	ValueErrorKind  ErrorKind = "ValueError"
)

// SyntaxError is raised by the tokenizer and parser on the first token that
// does not fit. Index is the parser's token cursor, or -1 during tokenizing.
type SyntaxError struct {
	Expected string
	Actual   string
	Pos      Position
	Index    int
}

func (e *SyntaxError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("Syntax error at %s: expected %s, got %s", e.Pos, e.Expected, strconv.Quote(e.Actual))
	}
	return fmt.Sprintf("Syntax error at %s (token %d): expected %s, got %s", e.Pos, e.Index, e.Expected, strconv.Quote(e.Actual))
}

// Error is a failure while evaluating or emitting a tree.
type Error struct {
	Kind   ErrorKind
	Reason string
	Pos    Position
}

func (e *Error) Error() string {
	var label string
	switch e.Kind {
	case NameErrorKind:
		label = "Name error"
	case TypeErrorKind:
		label = "Type error"
	default:
		label = "Value error"
	}
	return fmt.Sprintf("%s at %s: %s", label, e.Pos, e.Reason)
}

func nameErrorf(pos Position, format string, args ...any) *Error {
	return &Error{Kind: NameErrorKind, Reason: fmt.Sprintf(format, args...), Pos: pos}
}

func typeErrorf(pos Position, format string, args ...any) *Error {
	return &Error{Kind: TypeErrorKind, Reason: fmt.Sprintf(format, args...), Pos: pos}
}

func valueErrorf(pos Position, format string, args ...any) *Error {
	return &Error{Kind: ValueErrorKind, Reason: fmt.Sprintf(format, args...), Pos: pos}
}

// KindOf classifies err, looking through wrapping. It returns "" for errors
// that did not come from this package.
func KindOf(err error) ErrorKind {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return SyntaxErrorKind
	}

	var langErr *Error
	if errors.As(err, &langErr) {
		return langErr.Kind
	}

	return ""
}
