package parser

import (
	"github.com/reflint/reflint/internal/ast"
	"github.com/reflint/reflint/internal/diagnostics"
	"github.com/reflint/reflint/internal/token"
)

// parseFn parses one fn item starting at the 'fn' token. On malformed
// input it records a diagnostic, resynchronizes past the item and returns
// nil.
func (p *Parser) parseFn(allowSelf, fromMacro bool) *ast.FnDecl {
	fnTok := p.curToken
	p.nextToken() // 'fn'

	if !p.curTokenIs(token.IDENT) {
		p.errorf(diagnostics.ErrP001, p.curToken, "expected function name, got %q", p.curToken.Lexeme)
		p.skipUnknownItem()
		return nil
	}
	fn := &ast.FnDecl{Token: fnTok, Name: p.curToken.Lexeme, FromMacro: fromMacro}
	p.nextToken()

	if p.curTokenIs(token.LT) {
		if !p.parseGenerics(fn) {
			p.skipUnknownItem()
			return nil
		}
	}

	if !p.curTokenIs(token.LPAREN) {
		p.errorf(diagnostics.ErrP001, p.curToken, "expected '(' after function name, got %q", p.curToken.Lexeme)
		p.skipUnknownItem()
		return nil
	}
	if !p.parseParams(fn, allowSelf) {
		p.skipUnknownItem()
		return nil
	}

	if p.curTokenIs(token.ARROW) {
		p.nextToken()
		ret := p.parseType()
		if ret == nil {
			p.skipUnknownItem()
			return nil
		}
		fn.Return = ret
	}

	if p.curTokenIs(token.WHERE) {
		p.skipWhereClause()
	}

	switch p.curToken.Type {
	case token.SEMI:
		p.nextToken()
	case token.LBRACE:
		p.skipBalanced(token.LBRACE, token.RBRACE)
	default:
		p.errorf(diagnostics.ErrP002, p.curToken, "expected ';' or function body, got %q", p.curToken.Lexeme)
		p.skipUnknownItem()
		return nil
	}

	return fn
}

// parseGenerics parses `<...>` after the function name. Lifetime and type
// parameter names are recorded; their bounds are constraints, not
// annotations, and are skipped.
func (p *Parser) parseGenerics(fn *ast.FnDecl) bool {
	p.nextToken() // '<'
	for {
		switch p.curToken.Type {
		case token.GT:
			p.nextToken()
			return true
		case token.EOF:
			p.errorf(diagnostics.ErrP003, p.curToken, "unterminated generic parameter list")
			return false
		case token.LIFETIME:
			fn.Generics = append(fn.Generics, &ast.GenericParam{
				Token: p.curToken, Name: p.curToken.Literal, Lifetime: true,
			})
			p.nextToken()
		case token.IDENT:
			fn.Generics = append(fn.Generics, &ast.GenericParam{
				Token: p.curToken, Name: p.curToken.Lexeme,
			})
			p.nextToken()
		case token.CONST:
			p.nextToken()
			if p.curTokenIs(token.IDENT) {
				fn.Generics = append(fn.Generics, &ast.GenericParam{
					Token: p.curToken, Name: p.curToken.Lexeme,
				})
				p.nextToken()
			}
		default:
			p.errorf(diagnostics.ErrP003, p.curToken, "unexpected %q in generic parameters", p.curToken.Lexeme)
			return false
		}

		if p.curTokenIs(token.COLON) {
			if !p.skipBounds() {
				return false
			}
		}
		switch p.curToken.Type {
		case token.COMMA:
			p.nextToken()
		case token.GT:
			p.nextToken()
			return true
		default:
			p.errorf(diagnostics.ErrP003, p.curToken, "expected ',' or '>' in generic parameters, got %q", p.curToken.Lexeme)
			return false
		}
	}
}

// skipBounds steps over `: Bound + 'a + ...` inside a generic parameter
// list, stopping before the ',' or '>' that ends the parameter. Nested
// angle brackets inside bounds are tracked; a '>>' that would close both a
// nested list and the parameter list leaves one '>' pending.
func (p *Parser) skipBounds() bool {
	depth := 0
	p.nextToken() // ':'
	for {
		switch p.curToken.Type {
		case token.LT:
			depth++
			p.nextToken()
		case token.GT:
			if depth == 0 {
				return true // parameter list close; caller consumes it
			}
			depth--
			p.nextToken()
		case token.SHR:
			switch {
			case depth >= 2:
				depth -= 2
				p.nextToken()
			case depth == 1:
				// closes the nested list and the parameter list
				depth = 0
				p.curToken = token.Token{Type: token.GT, Lexeme: ">", Literal: ">", Line: p.curToken.Line, Column: p.curToken.Column + 1}
				return true
			default:
				return true
			}
		case token.COMMA:
			if depth == 0 {
				return true
			}
			p.nextToken()
		case token.LPAREN:
			p.skipBalanced(token.LPAREN, token.RPAREN)
		case token.LBRACKET:
			p.skipBalanced(token.LBRACKET, token.RBRACKET)
		case token.EOF:
			p.errorf(diagnostics.ErrP003, p.curToken, "unterminated bounds in generic parameters")
			return false
		default:
			p.nextToken()
		}
	}
}

// parseParams parses the parenthesized parameter list, including the
// receiver forms of methods.
func (p *Parser) parseParams(fn *ast.FnDecl, allowSelf bool) bool {
	p.nextToken() // '('
	first := true
	for {
		switch p.curToken.Type {
		case token.RPAREN:
			p.nextToken()
			return true
		case token.EOF:
			p.errorf(diagnostics.ErrP004, p.curToken, "unterminated parameter list")
			return false
		case token.HASH:
			p.skipAttribute()
			continue
		case token.DOTDOTDOT:
			p.nextToken() // C-variadic marker
		default:
			if !p.parseParam(fn, allowSelf && first) {
				return false
			}
		}
		first = false
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
}

func (p *Parser) parseParam(fn *ast.FnDecl, receiverAllowed bool) bool {
	tok := p.curToken

	if receiverAllowed {
		switch {
		case p.curTokenIs(token.SELFKW):
			p.nextToken()
			if p.curTokenIs(token.COLON) {
				p.nextToken()
				ty := p.parseType()
				if ty == nil {
					return false
				}
				fn.Receiver = &ast.Receiver{Token: tok, Kind: ast.SelfTyped, Type: ty}
			} else {
				fn.Receiver = &ast.Receiver{Token: tok, Kind: ast.SelfValue}
			}
			return true
		case p.curTokenIs(token.MUT) && p.peekTokenIs(token.SELFKW):
			p.nextToken()
			p.nextToken()
			fn.Receiver = &ast.Receiver{Token: tok, Kind: ast.SelfValue, Mutable: true}
			return true
		case p.curTokenIs(token.AMP):
			// &self, &'a self, &mut self — or a plain reference type used
			// as an anonymous parameter; decided after the prefix.
			p.nextToken()
			var lt *ast.Lifetime
			if p.curTokenIs(token.LIFETIME) {
				lt = &ast.Lifetime{Token: p.curToken, Name: p.curToken.Literal}
				p.nextToken()
			}
			mutable := false
			if p.curTokenIs(token.MUT) {
				mutable = true
				p.nextToken()
			}
			if p.curTokenIs(token.SELFKW) {
				p.nextToken()
				fn.Receiver = &ast.Receiver{Token: tok, Kind: ast.SelfRef, Lifetime: lt, Mutable: mutable}
				return true
			}
			elem := p.parseType()
			if elem == nil {
				return false
			}
			fn.Params = append(fn.Params, &ast.Param{
				Token: tok, Name: "_",
				Type: &ast.RefType{Token: tok, Lifetime: lt, Mutable: mutable, Elem: elem},
			})
			return true
		}
	}

	// named pattern: `x: T`, `mut x: T`, `_: T`
	if p.curTokenIs(token.MUT) {
		p.nextToken()
	}
	if (p.curTokenIs(token.IDENT) || p.curTokenIs(token.UNDERSCORE)) && p.peekTokenIs(token.COLON) {
		name := p.curToken.Lexeme
		p.nextToken() // pattern
		p.nextToken() // ':'
		ty := p.parseType()
		if ty == nil {
			return false
		}
		fn.Params = append(fn.Params, &ast.Param{Token: tok, Name: name, Type: ty})
		return true
	}

	// anonymous parameter (trait method style): just a type
	ty := p.parseType()
	if ty == nil {
		p.errorf(diagnostics.ErrP004, tok, "malformed parameter starting at %q", tok.Lexeme)
		return false
	}
	fn.Params = append(fn.Params, &ast.Param{Token: tok, Name: "_", Type: ty})
	return true
}

// skipWhereClause steps over a where clause up to the function body or a
// terminating semicolon, neither of which is consumed.
func (p *Parser) skipWhereClause() {
	for {
		switch p.curToken.Type {
		case token.LBRACE, token.SEMI, token.EOF:
			return
		case token.LPAREN:
			p.skipBalanced(token.LPAREN, token.RPAREN)
		case token.LBRACKET:
			p.skipBalanced(token.LBRACKET, token.RBRACKET)
		default:
			p.nextToken()
		}
	}
}
