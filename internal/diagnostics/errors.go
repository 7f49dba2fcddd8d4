package diagnostics

import (
	"errors"
	"fmt"

	"github.com/sampl-lang/sampl/internal/token"
)

type ErrorCode string

const (
	// Lexical
	ErrL001 ErrorCode = "L001" // invalid literal

	// Parser
	ErrP001 ErrorCode = "P001" // unexpected token
	ErrP002 ErrorCode = "P002" // no prefix parse function
	ErrP003 ErrorCode = "P003" // malformed construct

	// Analyzer
	ErrA001 ErrorCode = "A001" // undefined identifier
	ErrA002 ErrorCode = "A002" // type mismatch
	ErrA003 ErrorCode = "A003" // invalid type declaration
	ErrA004 ErrorCode = "A004" // duplicate identifier
	ErrA005 ErrorCode = "A005" // non-exhaustive or unreachable match
	ErrA006 ErrorCode = "A006" // reserved identifier

	// Classes
	ErrC001 ErrorCode = "C001" // cyclic dependency

	// Round trip
	ErrR001 ErrorCode = "R001"
)

var errorTemplates = map[ErrorCode]string{
	ErrL001: "invalid %s literal '%s'",
	ErrP001: "unexpected token: expected %s, got '%s'",
	ErrP002: "no prefix parse function for '%s' found",
	ErrP003: "%s",
	ErrA001: "undefined %s '%s'",
	ErrA002: "type mismatch: %s",
	ErrA003: "invalid type declaration: %s",
	ErrA004: "duplicate identifier '%s' in %s",
	ErrA005: "invalid match: %s",
	ErrA006: "reserved identifier '%s': names starting with '_' belong to generated code",
	ErrC001: "cyclic dependency: %s",
	ErrR001: "round trip mismatch: %s",
}

// Kinds that callers can test with errors.Is.
var (
	ErrInvalidLiteral         = &DiagnosticError{Code: ErrL001}
	ErrUndefinedIdentifier    = &DiagnosticError{Code: ErrA001}
	ErrTypeMismatch           = &DiagnosticError{Code: ErrA002}
	ErrInvalidTypeDeclaration = &DiagnosticError{Code: ErrA003}
	ErrDuplicateIdentifier    = &DiagnosticError{Code: ErrA004}
	ErrNonExhaustiveMatch     = &DiagnosticError{Code: ErrA005}
	ErrReservedIdentifier     = &DiagnosticError{Code: ErrA006}
	ErrCyclicDependency       = &DiagnosticError{Code: ErrC001}
	ErrRoundTrip              = &DiagnosticError{Code: ErrR001}
)

// DiagnosticError is a classified compilation error. Token points at the
// offending source position when one is known.
type DiagnosticError struct {
	Code  ErrorCode
	Token token.Token
	Args  []interface{}
	File  string
}

func NewError(code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Args: args}
}

// Message is the formatted description without position information.
func (e *DiagnosticError) Message() string {
	tmpl, ok := errorTemplates[e.Code]
	if !ok {
		return fmt.Sprint(e.Args...)
	}
	return fmt.Sprintf(tmpl, e.Args...)
}

func (e *DiagnosticError) Error() string {
	pos := ""
	if e.File != "" {
		pos = e.File + ":"
	}
	if e.Token.Line > 0 {
		pos += fmt.Sprintf("%d:%d:", e.Token.Line, e.Token.Column)
	}
	if pos != "" {
		pos += " "
	}
	return fmt.Sprintf("%serror[%s]: %s", pos, e.Code, e.Message())
}

// Is reports whether target is a DiagnosticError with the same code.
func (e *DiagnosticError) Is(target error) bool {
	var t *DiagnosticError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Line of the offending token, or 0 when unknown.
func (e *DiagnosticError) Line() int {
	return e.Token.Line
}

// AsDiagnostic unwraps err into a DiagnosticError when possible.
func AsDiagnostic(err error) (*DiagnosticError, bool) {
	var d *DiagnosticError
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
