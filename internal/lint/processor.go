package lint

import (
	"github.com/reflint/reflint/internal/diagnostics"
	"github.com/reflint/reflint/internal/pipeline"
)

// LintProcessor is the pipeline stage wrapping Checker; findings land in
// the context's diagnostics next to any parse errors.
type LintProcessor struct{}

func (lp *LintProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	checker := NewChecker(ReporterFunc(func(d *diagnostics.Diagnostic) {
		ctx.AddDiagnostic(d)
	}))
	checker.CheckFile(ctx.Decls)
	return ctx
}
