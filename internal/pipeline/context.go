package pipeline

import (
	"github.com/reflint/reflint/internal/ast"
	"github.com/reflint/reflint/internal/diagnostics"
	"github.com/reflint/reflint/internal/token"
)

// Processor is one stage of the pipeline.
type Processor interface {
	Process(ctx *Context) *Context
}

// Context carries one file through the stage chain. Each invocation owns
// its context exclusively; nothing is shared across files.
type Context struct {
	FilePath    string
	SourceCode  string
	TokenStream []token.Token
	Decls       []*ast.FnDecl
	Diagnostics []*diagnostics.Diagnostic
}

// AddDiagnostic appends d, stamping the file path when unset.
func (c *Context) AddDiagnostic(d *diagnostics.Diagnostic) {
	if d.File == "" {
		d.File = c.FilePath
	}
	c.Diagnostics = append(c.Diagnostics, d)
}

// HasErrors reports whether any error-severity diagnostic was collected.
func (c *Context) HasErrors() bool {
	for _, d := range c.Diagnostics {
		if d.Severity == diagnostics.SeverityError {
			return true
		}
	}
	return false
}
