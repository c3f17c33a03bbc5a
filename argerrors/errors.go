// Package argerrors defines the structured error surface raised by every
// other package in this module: signal construction, expression
// construction, parsing, and trace lookup.
package argerrors

import (
	"fmt"
	"strings"
)

// ErrorType identifies the kind of failure; the constants below list every
// kind this module raises.
type ErrorType string

const (
	MonotonicityError  ErrorType = "MonotonicityError"
	NonSampledPushError ErrorType = "NonSampledPushError"
	ArithmeticError    ErrorType = "ArithmeticError"
	TypeMismatch       ErrorType = "TypeMismatch"
	UnknownVariable    ErrorType = "UnknownVariable"
	ParseErrorType     ErrorType = "ParseError"
	DomainError        ErrorType = "DomainError"
)

// ParseSubKind further classifies a ParseError.
type ParseSubKind string

const (
	Syntax               ParseSubKind = "Syntax"
	ParseIntOverflow     ParseSubKind = "ParseIntOverflow"
	UnsupportedConstruct ParseSubKind = "UnsupportedConstruct"
)

// SourceSpan locates a ParseError in the original source text.
type SourceSpan struct {
	Line   int
	Column int
}

// ArgusError is the single concrete error type raised anywhere in this
// module. Callers can type-assert on Type (and, for ParseError, SubKind) to
// decide how to react; nothing here is retried internally.
type ArgusError struct {
	Type    ErrorType
	SubKind ParseSubKind // only meaningful when Type == ParseErrorType
	Message string
	Span    SourceSpan // only meaningful when Type == ParseErrorType
	Source  string     // the offending source line, if known
}

func (e *ArgusError) Error() string {
	var sb strings.Builder
	if e.Type == ParseErrorType {
		sb.WriteString(fmt.Sprintf("%s(%s): %s", e.Type, e.SubKind, e.Message))
		if e.Span.Line > 0 {
			sb.WriteString(fmt.Sprintf(" at %d:%d", e.Span.Line, e.Span.Column))
		}
	} else {
		sb.WriteString(fmt.Sprintf("%s: %s", e.Type, e.Message))
	}
	if e.Source != "" {
		sb.WriteString(fmt.Sprintf("\n  %d | %s", e.Span.Line, e.Source))
		if e.Span.Column > 0 {
			sb.WriteString("\n  " + strings.Repeat(" ", len(fmt.Sprintf("%d | ", e.Span.Line))+e.Span.Column-1) + "^")
		}
	}
	return sb.String()
}

// WithSource attaches the offending source line for display.
func (e *ArgusError) WithSource(source string) *ArgusError {
	e.Source = source
	return e
}

func New(t ErrorType, format string, args ...interface{}) *ArgusError {
	return &ArgusError{Type: t, Message: fmt.Sprintf(format, args...)}
}

func NewParseError(sub ParseSubKind, line, col int, format string, args ...interface{}) *ArgusError {
	return &ArgusError{
		Type:    ParseErrorType,
		SubKind: sub,
		Message: fmt.Sprintf(format, args...),
		Span:    SourceSpan{Line: line, Column: col},
	}
}
