package parser

import (
	"strings"

	"github.com/reflint/reflint/internal/ast"
	"github.com/reflint/reflint/internal/diagnostics"
	"github.com/reflint/reflint/internal/token"
)

// parseType parses one type expression, consuming it fully. Returns nil
// after recording a diagnostic when the expression is malformed.
func (p *Parser) parseType() ast.Type {
	tok := p.curToken

	switch p.curToken.Type {
	case token.AMP:
		p.nextToken()
		return p.parseRefTail(tok)
	case token.ANDAND:
		// && is a double reference: the outer one carries no annotation
		p.nextToken()
		inner := p.parseRefTail(tok)
		if inner == nil {
			return nil
		}
		return &ast.RefType{Token: tok, Elem: inner}
	case token.STAR:
		p.nextToken()
		mutable := false
		switch p.curToken.Type {
		case token.CONST:
			p.nextToken()
		case token.MUT:
			mutable = true
			p.nextToken()
		}
		elem := p.parseType()
		if elem == nil {
			return nil
		}
		return &ast.RawPointerType{Token: tok, Mutable: mutable, Elem: elem}
	case token.LPAREN:
		return p.parseTupleOrParen(tok)
	case token.LBRACKET:
		return p.parseSliceOrArray(tok)
	case token.DYN:
		p.nextToken()
		return p.parseTraitObject(tok, false)
	case token.IMPL:
		p.nextToken()
		return p.parseTraitObject(tok, true)
	case token.UNDERSCORE:
		p.nextToken()
		return &ast.InferType{Token: tok}
	case token.UNSAFE, token.EXTERN, token.FN:
		return p.parseFnPointer(tok)
	case token.LT:
		return p.parseQualifiedPath(tok)
	case token.IDENT, token.SELFTYPE, token.SELFKW, token.CRATE:
		return p.parsePathType()
	default:
		p.errorf(diagnostics.ErrP005, tok, "unexpected %q in type expression", tok.Lexeme)
		return nil
	}
}

// parseRefTail parses the rest of a reference after '&': optional
// lifetime, optional mut, element type.
func (p *Parser) parseRefTail(tok token.Token) ast.Type {
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
	elem := p.parseType()
	if elem == nil {
		return nil
	}
	return &ast.RefType{Token: tok, Lifetime: lt, Mutable: mutable, Elem: elem}
}

func (p *Parser) parseTupleOrParen(tok token.Token) ast.Type {
	p.nextToken() // '('
	if p.curTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.TupleType{Token: tok} // unit
	}

	var elems []ast.Type
	sawComma := false
	for {
		el := p.parseType()
		if el == nil {
			return nil
		}
		elems = append(elems, el)
		if p.curTokenIs(token.COMMA) {
			sawComma = true
			p.nextToken()
			if p.curTokenIs(token.RPAREN) {
				break // trailing comma: (T,)
			}
			continue
		}
		break
	}
	if !p.curTokenIs(token.RPAREN) {
		p.errorf(diagnostics.ErrP005, p.curToken, "expected ')' in tuple type, got %q", p.curToken.Lexeme)
		return nil
	}
	p.nextToken()

	if len(elems) == 1 && !sawComma {
		return elems[0] // parenthesized type
	}
	return &ast.TupleType{Token: tok, Elems: elems}
}

func (p *Parser) parseSliceOrArray(tok token.Token) ast.Type {
	p.nextToken() // '['
	elem := p.parseType()
	if elem == nil {
		return nil
	}
	if p.curTokenIs(token.SEMI) {
		p.nextToken()
		var length strings.Builder
		for !p.curTokenIs(token.RBRACKET) {
			if p.curTokenIs(token.EOF) {
				p.errorf(diagnostics.ErrP005, p.curToken, "unterminated array type")
				return nil
			}
			length.WriteString(p.curToken.Lexeme)
			p.nextToken()
		}
		p.nextToken()
		return &ast.ArrayType{Token: tok, Elem: elem, Len: length.String()}
	}
	if !p.curTokenIs(token.RBRACKET) {
		p.errorf(diagnostics.ErrP005, p.curToken, "expected ']' in slice type, got %q", p.curToken.Lexeme)
		return nil
	}
	p.nextToken()
	return &ast.SliceType{Token: tok, Elem: elem}
}

// parseTraitObject parses `dyn Trait + Send + 'a` or `impl Trait + 'a`
// after the dyn/impl keyword. The lifetime bound is kept out of the trait
// list so it is never walked as an annotation.
func (p *Parser) parseTraitObject(tok token.Token, impl bool) ast.Type {
	obj := &ast.TraitObjectType{Token: tok, Impl: impl}
	for {
		if p.curTokenIs(token.QUESTION) {
			p.nextToken() // ?Sized
		}
		switch p.curToken.Type {
		case token.LIFETIME:
			if obj.Bound == nil {
				obj.Bound = &ast.Lifetime{Token: p.curToken, Name: p.curToken.Literal}
			}
			p.nextToken()
		case token.IDENT, token.SELFTYPE, token.CRATE, token.SELFKW:
			tr := p.parsePathType()
			if tr == nil {
				return nil
			}
			obj.Traits = append(obj.Traits, tr)
		case token.LPAREN:
			inner := p.parseTupleOrParen(p.curToken)
			if inner == nil {
				return nil
			}
			obj.Traits = append(obj.Traits, inner)
		default:
			p.errorf(diagnostics.ErrP005, p.curToken, "expected trait or lifetime, got %q", p.curToken.Lexeme)
			return nil
		}
		if !p.curTokenIs(token.PLUS) {
			break
		}
		p.nextToken()
	}
	if len(obj.Traits) == 0 {
		p.errorf(diagnostics.ErrP005, tok, "trait object without traits")
		return nil
	}
	return obj
}

// parseFnPointer parses `fn(T) -> U` with optional unsafe/extern "abi"
// qualifiers.
func (p *Parser) parseFnPointer(tok token.Token) ast.Type {
	if p.curTokenIs(token.UNSAFE) {
		p.nextToken()
	}
	if p.curTokenIs(token.EXTERN) {
		p.nextToken()
		if p.curTokenIs(token.STRING) {
			p.nextToken()
		}
	}
	if !p.curTokenIs(token.FN) {
		p.errorf(diagnostics.ErrP005, p.curToken, "expected 'fn', got %q", p.curToken.Lexeme)
		return nil
	}
	p.nextToken()
	if !p.curTokenIs(token.LPAREN) {
		p.errorf(diagnostics.ErrP005, p.curToken, "expected '(' in fn pointer type, got %q", p.curToken.Lexeme)
		return nil
	}
	p.nextToken()

	fnPtr := &ast.FnPointerType{Token: tok}
	for !p.curTokenIs(token.RPAREN) {
		if p.curTokenIs(token.EOF) {
			p.errorf(diagnostics.ErrP005, p.curToken, "unterminated fn pointer type")
			return nil
		}
		if p.curTokenIs(token.DOTDOTDOT) {
			p.nextToken()
			continue
		}
		// fn pointer params may be named: fn(x: i32)
		if (p.curTokenIs(token.IDENT) || p.curTokenIs(token.UNDERSCORE)) && p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
		}
		param := p.parseType()
		if param == nil {
			return nil
		}
		fnPtr.Params = append(fnPtr.Params, param)
		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.nextToken() // ')'

	if p.curTokenIs(token.ARROW) {
		p.nextToken()
		ret := p.parseType()
		if ret == nil {
			return nil
		}
		fnPtr.Return = ret
	}
	return fnPtr
}

// parseQualifiedPath parses `<T as Trait>::Segment::...`.
func (p *Parser) parseQualifiedPath(tok token.Token) ast.Type {
	p.nextToken() // '<'
	qual := &ast.QualifiedSelf{}
	inner := p.parseType()
	if inner == nil {
		return nil
	}
	qual.Type = inner
	if p.curTokenIs(token.IDENT) && p.curToken.Lexeme == "as" {
		p.nextToken()
		as := p.parsePathType()
		if as == nil {
			return nil
		}
		qual.As = as
	}
	if !p.takeGT() {
		p.errorf(diagnostics.ErrP005, p.curToken, "expected '>' in qualified path, got %q", p.curToken.Lexeme)
		return nil
	}

	path := &ast.PathType{Token: tok, Qual: qual}
	for p.curTokenIs(token.PATHSEP) {
		p.nextToken()
		if !p.curTokenIs(token.IDENT) {
			p.errorf(diagnostics.ErrP005, p.curToken, "expected path segment, got %q", p.curToken.Lexeme)
			return nil
		}
		path.Segments = append(path.Segments, p.curToken.Lexeme)
		p.nextToken()
	}
	if p.curTokenIs(token.LT) {
		args, ok := p.parseGenericArgs()
		if !ok {
			return nil
		}
		path.Args = args
	}
	if len(path.Segments) == 0 {
		p.errorf(diagnostics.ErrP005, tok, "qualified path without projection segment")
		return nil
	}
	return path
}

// parsePathType parses a plain path with optional generic arguments or
// Fn-trait parenthesized sugar.
func (p *Parser) parsePathType() ast.Type {
	tok := p.curToken
	path := &ast.PathType{Token: tok, Segments: []string{p.curToken.Lexeme}}
	p.nextToken()

	for p.curTokenIs(token.PATHSEP) {
		p.nextToken()
		if p.curTokenIs(token.LT) {
			// turbofish in type position: Vec::<T>
			args, ok := p.parseGenericArgs()
			if !ok {
				return nil
			}
			path.Args = args
			return path
		}
		if !p.curTokenIs(token.IDENT) && !p.curTokenIs(token.SELFTYPE) {
			p.errorf(diagnostics.ErrP005, p.curToken, "expected path segment, got %q", p.curToken.Lexeme)
			return nil
		}
		path.Segments = append(path.Segments, p.curToken.Lexeme)
		p.nextToken()
	}

	switch p.curToken.Type {
	case token.LT:
		args, ok := p.parseGenericArgs()
		if !ok {
			return nil
		}
		path.Args = args
	case token.LPAREN:
		// Fn-trait sugar: Fn(A, B) -> C
		p.nextToken()
		for !p.curTokenIs(token.RPAREN) {
			if p.curTokenIs(token.EOF) {
				p.errorf(diagnostics.ErrP005, p.curToken, "unterminated Fn trait arguments")
				return nil
			}
			arg := p.parseType()
			if arg == nil {
				return nil
			}
			path.Args = append(path.Args, ast.TypeArg{Type: arg})
			if p.curTokenIs(token.COMMA) {
				p.nextToken()
			}
		}
		p.nextToken() // ')'
		if p.curTokenIs(token.ARROW) {
			p.nextToken()
			out := p.parseType()
			if out == nil {
				return nil
			}
			path.Args = append(path.Args, ast.TypeArg{Binding: "Output", Type: out})
		}
	}
	return path
}

// parseGenericArgs parses `<...>` starting at '<': lifetimes, types,
// associated type bindings and const arguments.
func (p *Parser) parseGenericArgs() ([]ast.TypeArg, bool) {
	p.nextToken() // '<'
	var args []ast.TypeArg
	for {
		if p.takeGT() {
			return args, true
		}
		if p.curTokenIs(token.EOF) {
			p.errorf(diagnostics.ErrP005, p.curToken, "unterminated generic argument list")
			return nil, false
		}

		switch {
		case p.curTokenIs(token.LIFETIME):
			args = append(args, ast.TypeArg{
				Lifetime: &ast.Lifetime{Token: p.curToken, Name: p.curToken.Literal},
			})
			p.nextToken()
		case p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN):
			// associated type binding: Item = T
			binding := p.curToken.Lexeme
			p.nextToken()
			p.nextToken()
			ty := p.parseType()
			if ty == nil {
				return nil, false
			}
			args = append(args, ast.TypeArg{Binding: binding, Type: ty})
		case p.curTokenIs(token.INT), p.curTokenIs(token.STRING), p.curTokenIs(token.CHAR):
			// const argument, kept as written text
			args = append(args, ast.TypeArg{
				Type: &ast.PathType{Token: p.curToken, Segments: []string{p.curToken.Lexeme}},
			})
			p.nextToken()
		case p.curTokenIs(token.LBRACE):
			// const expression argument: skipped, not modeled
			braceTok := p.curToken
			p.skipBalanced(token.LBRACE, token.RBRACE)
			args = append(args, ast.TypeArg{
				Type: &ast.PathType{Token: braceTok, Segments: []string{"_"}},
			})
		default:
			ty := p.parseType()
			if ty == nil {
				return nil, false
			}
			args = append(args, ast.TypeArg{Type: ty})
		}

		if p.curTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
}

// takeGT consumes one '>' closing a generic argument list. A '>>' closes
// this list and leaves one '>' pending for the enclosing list.
func (p *Parser) takeGT() bool {
	if p.pendingGT > 0 {
		p.pendingGT--
		return true
	}
	switch p.curToken.Type {
	case token.GT:
		p.nextToken()
		return true
	case token.SHR:
		p.pendingGT = 1
		p.nextToken()
		return true
	}
	return false
}
