package parser

import (
	"github.com/reflint/reflint/internal/diagnostics"
	"github.com/reflint/reflint/internal/pipeline"
	"github.com/reflint/reflint/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	if ctx.TokenStream == nil {
		// Should not happen when the lexer stage runs first.
		ctx.AddDiagnostic(diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil"))
		return ctx
	}

	p := New(ctx.TokenStream, ctx)
	ctx.Decls = p.ParseFile()

	for _, fn := range ctx.Decls {
		fn.File = ctx.FilePath
	}
	for _, d := range ctx.Diagnostics {
		if d.File == "" {
			d.File = ctx.FilePath
		}
	}
	return ctx
}
