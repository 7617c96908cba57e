// Package diagnostics defines the diagnostic record shared by the parser,
// the lint checker, the CLI and the LSP server.
package diagnostics

import (
	"fmt"

	"github.com/reflint/reflint/internal/token"
)

type Code string

// Parser error codes.
const (
	ErrP001 Code = "P001" // unexpected token
	ErrP002 Code = "P002" // unterminated item
	ErrP003 Code = "P003" // malformed generic parameter list
	ErrP004 Code = "P004" // malformed parameter
	ErrP005 Code = "P005" // malformed type expression
)

// Lint check codes.
const (
	LintNeedlessLifetimes Code = "L100"
)

type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one finding at a source position.
type Diagnostic struct {
	Code     Code
	Severity Severity
	Token    token.Token
	File     string
	Message  string
}

func (d *Diagnostic) Error() string {
	return d.Message
}

// Key is used for deduplication across stages.
func (d *Diagnostic) Key() string {
	return fmt.Sprintf("%d:%d:%s", d.Token.Line, d.Token.Column, d.Code)
}

// String renders the conventional path:line:col form.
func (d *Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s[%s]: %s",
		d.File, d.Token.Line, d.Token.Column, d.Severity, d.Code, d.Message)
}

func NewError(code Code, tok token.Token, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Token:    tok,
		Message:  fmt.Sprintf(format, args...),
	}
}

func NewWarning(code Code, tok token.Token, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Severity: SeverityWarning,
		Token:    tok,
		Message:  fmt.Sprintf(format, args...),
	}
}
