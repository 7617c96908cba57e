// Package prettyprinter renders parsed signatures back to one-line text.
// The output is normalized (single spaces, no attributes, no bodies); it
// exists for test assertions and the CLI's --explain output, not for
// round-tripping source.
package prettyprinter

import (
	"strings"

	"github.com/reflint/reflint/internal/ast"
)

// Signature renders fn as a single line: fn name<...>(...) -> T
func Signature(fn *ast.FnDecl) string {
	var b strings.Builder
	b.WriteString("fn ")
	b.WriteString(fn.Name)

	if len(fn.Generics) > 0 {
		b.WriteByte('<')
		for i, g := range fn.Generics {
			if i > 0 {
				b.WriteString(", ")
			}
			if g.Lifetime {
				b.WriteByte('\'')
			}
			b.WriteString(g.Name)
		}
		b.WriteByte('>')
	}

	b.WriteByte('(')
	needComma := false
	if fn.Receiver != nil {
		b.WriteString(receiver(fn.Receiver))
		needComma = true
	}
	for _, p := range fn.Params {
		if needComma {
			b.WriteString(", ")
		}
		needComma = true
		if p.Name != "_" {
			b.WriteString(p.Name)
			b.WriteString(": ")
		}
		b.WriteString(Type(p.Type))
	}
	b.WriteByte(')')

	if fn.Return != nil {
		b.WriteString(" -> ")
		b.WriteString(Type(fn.Return))
	}
	return b.String()
}

func receiver(r *ast.Receiver) string {
	switch r.Kind {
	case ast.SelfValue:
		if r.Mutable {
			return "mut self"
		}
		return "self"
	case ast.SelfRef:
		var b strings.Builder
		b.WriteByte('&')
		if r.Lifetime != nil {
			b.WriteByte('\'')
			b.WriteString(r.Lifetime.Name)
			b.WriteByte(' ')
		}
		if r.Mutable {
			b.WriteString("mut ")
		}
		b.WriteString("self")
		return b.String()
	case ast.SelfTyped:
		return "self: " + Type(r.Type)
	}
	return "self"
}

// Type renders one type expression.
func Type(t ast.Type) string {
	switch t := t.(type) {
	case *ast.RefType:
		var b strings.Builder
		b.WriteByte('&')
		if t.Lifetime != nil {
			b.WriteByte('\'')
			b.WriteString(t.Lifetime.Name)
			b.WriteByte(' ')
		}
		if t.Mutable {
			b.WriteString("mut ")
		}
		b.WriteString(Type(t.Elem))
		return b.String()
	case *ast.PathType:
		return pathType(t)
	case *ast.TupleType:
		elems := make([]string, len(t.Elems))
		for i, el := range t.Elems {
			elems[i] = Type(el)
		}
		if len(elems) == 1 {
			return "(" + elems[0] + ",)"
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case *ast.SliceType:
		return "[" + Type(t.Elem) + "]"
	case *ast.ArrayType:
		return "[" + Type(t.Elem) + "; " + t.Len + "]"
	case *ast.RawPointerType:
		if t.Mutable {
			return "*mut " + Type(t.Elem)
		}
		return "*const " + Type(t.Elem)
	case *ast.TraitObjectType:
		var b strings.Builder
		if t.Impl {
			b.WriteString("impl ")
		} else {
			b.WriteString("dyn ")
		}
		for i, tr := range t.Traits {
			if i > 0 {
				b.WriteString(" + ")
			}
			b.WriteString(Type(tr))
		}
		if t.Bound != nil {
			b.WriteString(" + '")
			b.WriteString(t.Bound.Name)
		}
		return b.String()
	case *ast.FnPointerType:
		var b strings.Builder
		b.WriteString("fn(")
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(Type(p))
		}
		b.WriteByte(')')
		if t.Return != nil {
			b.WriteString(" -> ")
			b.WriteString(Type(t.Return))
		}
		return b.String()
	case *ast.InferType:
		return "_"
	}
	return "?"
}

func pathType(t *ast.PathType) string {
	var b strings.Builder
	if t.Qual != nil {
		b.WriteByte('<')
		b.WriteString(Type(t.Qual.Type))
		if t.Qual.As != nil {
			b.WriteString(" as ")
			b.WriteString(Type(t.Qual.As))
		}
		b.WriteString(">::")
	}
	b.WriteString(strings.Join(t.Segments, "::"))
	if len(t.Args) > 0 {
		b.WriteByte('<')
		for i, arg := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			switch {
			case arg.Lifetime != nil:
				b.WriteByte('\'')
				b.WriteString(arg.Lifetime.Name)
			case arg.Binding != "":
				b.WriteString(arg.Binding)
				b.WriteString(" = ")
				b.WriteString(Type(arg.Type))
			default:
				b.WriteString(Type(arg.Type))
			}
		}
		b.WriteByte('>')
	}
	return b.String()
}
