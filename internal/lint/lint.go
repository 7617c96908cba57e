// Package lint runs the elision check over parsed declarations and turns
// verdicts into diagnostics.
package lint

import (
	"github.com/reflint/reflint/internal/ast"
	"github.com/reflint/reflint/internal/diagnostics"
	"github.com/reflint/reflint/internal/elision"
)

// NeedlessLifetimesMessage is the one message this check emits; the
// checker decides where to flag, never how to rephrase.
const NeedlessLifetimesMessage = "explicit lifetimes given in parameter types where they could be elided"

// Reporter is the diagnostic sink. It is injected rather than global so
// the checker stays a pure function over declarations.
type Reporter interface {
	Report(d *diagnostics.Diagnostic)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(d *diagnostics.Diagnostic)

func (f ReporterFunc) Report(d *diagnostics.Diagnostic) { f(d) }

// Checker runs the needless-lifetimes check.
type Checker struct {
	reporter Reporter
}

func NewChecker(r Reporter) *Checker {
	return &Checker{reporter: r}
}

// CheckDecl analyzes one function declaration. Declarations that came out
// of a macro invocation are skipped entirely: their signatures were not
// written where they appear.
func (c *Checker) CheckDecl(fn *ast.FnDecl) {
	if fn.FromMacro {
		return
	}
	if elision.Check(fn) {
		d := diagnostics.NewWarning(diagnostics.LintNeedlessLifetimes, fn.Token, NeedlessLifetimesMessage)
		d.File = fn.File
		c.reporter.Report(d)
	}
}

// CheckFile analyzes every declaration of one parsed file.
func (c *Checker) CheckFile(decls []*ast.FnDecl) {
	for _, fn := range decls {
		c.CheckDecl(fn)
	}
}
