package lexer

import (
	"github.com/reflint/reflint/internal/pipeline"
	"github.com/reflint/reflint/internal/token"
)

type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.Context) *pipeline.Context {
	l := New(ctx.SourceCode)
	var stream []token.Token
	for {
		tok := l.NextToken()
		stream = append(stream, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	ctx.TokenStream = stream
	return ctx
}
