package main

import (
	"log"
	"strings"

	"github.com/reflint/reflint/internal/diagnostics"
	"github.com/reflint/reflint/internal/lexer"
	"github.com/reflint/reflint/internal/lint"
	"github.com/reflint/reflint/internal/parser"
	"github.com/reflint/reflint/internal/pipeline"
)

func (s *LanguageServer) lintAndPublish(uri string) {
	s.mu.RLock()
	text, ok := s.documents[uri]
	s.mu.RUnlock()
	if !ok {
		return
	}

	ctx := &pipeline.Context{FilePath: uriToPath(uri), SourceCode: text}
	ctx = pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&lint.LintProcessor{},
	).Run(ctx)

	s.sendNotification(NotificationMessage{
		Jsonrpc: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: convertDiagnostics(ctx.Diagnostics),
		},
	})
	log.Printf("published %d diagnostics for %s", len(ctx.Diagnostics), uri)
}

func convertDiagnostics(diags []*diagnostics.Diagnostic) []Diagnostic {
	result := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		severity := SeverityError
		if d.Severity == diagnostics.SeverityWarning {
			severity = SeverityWarning
		}
		result = append(result, Diagnostic{
			Range: Range{
				Start: Position{
					Line:      d.Token.Line - 1, // LSP uses 0-based indexing
					Character: d.Token.Column - 1,
				},
				End: Position{
					Line:      d.Token.Line - 1,
					Character: d.Token.Column - 1 + len(d.Token.Lexeme),
				},
			},
			Severity: severity,
			Code:     string(d.Code),
			Message:  d.Message,
			Source:   "reflint",
		})
	}
	return result
}

func uriToPath(uri string) string {
	return strings.TrimPrefix(uri, "file://")
}
