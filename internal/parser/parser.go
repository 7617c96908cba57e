// Package parser extracts function signatures from Rust source. It is a
// signature-level parser: fn items are parsed up to their body, bodies are
// skipped by brace matching, and every other item kind is recognized only
// far enough to be stepped over.
package parser

import (
	"github.com/reflint/reflint/internal/ast"
	"github.com/reflint/reflint/internal/diagnostics"
	"github.com/reflint/reflint/internal/pipeline"
	"github.com/reflint/reflint/internal/token"
)

type Parser struct {
	tokens    []token.Token
	pos       int // index of the token after peekToken
	curToken  token.Token
	peekToken token.Token
	ctx       *pipeline.Context
	decls     []*ast.FnDecl

	// tolerant suppresses diagnostics while parsing macro invocation
	// bodies, where arbitrary token trees are expected.
	tolerant bool

	// pendingGT counts '>' still owed after a '>>' closed two generic
	// argument lists at once.
	pendingGT int
}

func New(tokens []token.Token, ctx *pipeline.Context) *Parser {
	p := &Parser{tokens: tokens, ctx: ctx}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF, Line: p.curToken.Line, Column: p.curToken.Column}
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) errorf(code diagnostics.Code, tok token.Token, format string, args ...interface{}) {
	if p.tolerant {
		return
	}
	p.ctx.AddDiagnostic(diagnostics.NewError(code, tok, format, args...))
}

// ParseFile walks all items and returns the function declarations found.
func (p *Parser) ParseFile() []*ast.FnDecl {
	p.parseItems(token.EOF, false, false)
	return p.decls
}

// parseItems consumes items until the end token (which is consumed too,
// unless it is EOF). allowSelf is true inside impl and trait blocks.
func (p *Parser) parseItems(end token.TokenType, allowSelf, fromMacro bool) {
	for {
		if p.curTokenIs(end) {
			if end != token.EOF {
				p.nextToken()
			}
			return
		}
		if p.curTokenIs(token.EOF) {
			if !p.tolerant {
				p.errorf(diagnostics.ErrP002, p.curToken, "unexpected end of file inside block")
			}
			return
		}
		p.parseItem(allowSelf, fromMacro)
	}
}

func (p *Parser) parseItem(allowSelf, fromMacro bool) {
	switch {
	case p.curTokenIs(token.HASH):
		p.skipAttribute()
	case p.curTokenIs(token.PUB):
		p.nextToken()
		if p.curTokenIs(token.LPAREN) {
			p.skipBalanced(token.LPAREN, token.RPAREN)
		}
	case p.curTokenIs(token.CONST):
		if p.peekTokenIs(token.FN) {
			p.nextToken()
			// fall through to the fn on the next iteration
			return
		}
		p.skipUnknownItem() // const item
	case p.curTokenIs(token.ASYNC), p.curTokenIs(token.UNSAFE):
		p.nextToken()
	case p.curTokenIs(token.EXTERN):
		p.nextToken()
		if p.curTokenIs(token.STRING) {
			p.nextToken()
		}
		if p.curTokenIs(token.LBRACE) {
			// foreign block: fn declarations inside, no receivers
			p.nextToken()
			p.parseItems(token.RBRACE, false, fromMacro)
		}
	case p.curTokenIs(token.FN):
		if fn := p.parseFn(allowSelf, fromMacro); fn != nil {
			p.decls = append(p.decls, fn)
		}
	case p.curTokenIs(token.IMPL), p.curTokenIs(token.TRAIT):
		p.parseBlockItem(fromMacro)
	case p.curTokenIs(token.MOD):
		p.nextToken() // mod
		if p.curTokenIs(token.IDENT) {
			p.nextToken()
		}
		if p.curTokenIs(token.LBRACE) {
			p.nextToken()
			p.parseItems(token.RBRACE, false, fromMacro)
		} else if p.curTokenIs(token.SEMI) {
			p.nextToken()
		}
	case p.curTokenIs(token.IDENT) && p.peekTokenIs(token.BANG):
		p.parseMacroInvocation()
	default:
		p.skipUnknownItem()
	}
}

// parseBlockItem handles impl and trait items: the header is skipped up to
// the opening brace, then the block is searched for methods.
func (p *Parser) parseBlockItem(fromMacro bool) {
	for !p.curTokenIs(token.LBRACE) {
		if p.curTokenIs(token.SEMI) {
			// e.g. `trait Marker;` style declarations
			p.nextToken()
			return
		}
		if p.curTokenIs(token.EOF) {
			p.errorf(diagnostics.ErrP002, p.curToken, "unterminated impl or trait item")
			return
		}
		p.nextToken()
	}
	p.nextToken() // past '{'
	p.parseItems(token.RBRACE, true, fromMacro)
}

// parseMacroInvocation handles `name! { ... }` and `macro_rules! name { ... }`.
// Brace-delimited bodies are searched for items; whatever parses there is
// flagged as macro-generated, the rest is skipped silently.
func (p *Parser) parseMacroInvocation() {
	p.nextToken() // macro name
	p.nextToken() // '!'
	if p.curTokenIs(token.IDENT) {
		p.nextToken() // macro_rules! <name>
	}
	switch p.curToken.Type {
	case token.LBRACE:
		p.nextToken()
		wasTolerant := p.tolerant
		p.tolerant = true
		p.parseItems(token.RBRACE, true, true)
		p.tolerant = wasTolerant
	case token.LPAREN:
		p.skipBalanced(token.LPAREN, token.RPAREN)
		if p.curTokenIs(token.SEMI) {
			p.nextToken()
		}
	case token.LBRACKET:
		p.skipBalanced(token.LBRACKET, token.RBRACKET)
		if p.curTokenIs(token.SEMI) {
			p.nextToken()
		}
	}
}

// skipAttribute consumes `#[...]` and `#![...]`.
func (p *Parser) skipAttribute() {
	p.nextToken() // '#'
	if p.curTokenIs(token.BANG) {
		p.nextToken()
	}
	if p.curTokenIs(token.LBRACKET) {
		p.skipBalanced(token.LBRACKET, token.RBRACKET)
	}
}

// skipUnknownItem steps over an item kind the parser does not model
// (struct, enum, use, static, type, ...): everything up to a top-level
// semicolon or a balanced brace block.
func (p *Parser) skipUnknownItem() {
	for {
		switch p.curToken.Type {
		case token.SEMI:
			p.nextToken()
			return
		case token.LBRACE:
			p.skipBalanced(token.LBRACE, token.RBRACE)
			return
		case token.LPAREN:
			p.skipBalanced(token.LPAREN, token.RPAREN)
		case token.LBRACKET:
			p.skipBalanced(token.LBRACKET, token.RBRACKET)
		case token.RBRACE, token.EOF:
			// container end; leave it for the caller
			return
		default:
			p.nextToken()
		}
	}
}

// skipBalanced consumes from the current open token through its matching
// close token.
func (p *Parser) skipBalanced(open, close token.TokenType) {
	depth := 0
	for !p.curTokenIs(token.EOF) {
		switch p.curToken.Type {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				p.nextToken()
				return
			}
		}
		p.nextToken()
	}
	p.errorf(diagnostics.ErrP002, p.curToken, "unexpected end of file, unbalanced %q", string(open))
}
