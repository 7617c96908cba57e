package ast

import (
	"github.com/reflint/reflint/internal/token"
)

// Type is a type expression inside a signature.
type Type interface {
	Node
	typeNode()
}

// RefType is a reference: &T, &'a T, &mut T, &'a mut T.
type RefType struct {
	Token    token.Token // the '&' token
	Lifetime *Lifetime   // nil when the annotation is omitted
	Mutable  bool
	Elem     Type
}

func (t *RefType) typeNode()             {}
func (t *RefType) GetToken() token.Token { return t.Token }

// TypeArg is one argument of a generic application. Exactly one of the
// fields is set: Foo<'a, T, Item = U> yields a lifetime arg, a type arg and
// a binding arg.
type TypeArg struct {
	Lifetime *Lifetime
	Type     Type
	Binding  string // assoc type name for `Item = U`; Type holds U
}

// QualifiedSelf is the `<T as Trait>` prefix of a qualified path.
type QualifiedSelf struct {
	Type Type
	As   Type // nil when no `as Trait` is written
}

// PathType is a possibly qualified, possibly generic named type:
// i32, Vec<T>, std::slice::Iter<'a, T>, Self, <T as Trait>::Item.
// For the Fn-trait sugar Fn(A) -> B the parenthesized inputs become type
// args and the output becomes the binding "Output".
type PathType struct {
	Token    token.Token
	Qual     *QualifiedSelf
	Segments []string
	Args     []TypeArg
}

func (t *PathType) typeNode()             {}
func (t *PathType) GetToken() token.Token { return t.Token }

// TupleType is (T, U, ...). The unit type () is a TupleType with no
// elements.
type TupleType struct {
	Token token.Token // the '(' token
	Elems []Type
}

func (t *TupleType) typeNode()             {}
func (t *TupleType) GetToken() token.Token { return t.Token }

// SliceType is [T].
type SliceType struct {
	Token token.Token // the '[' token
	Elem  Type
}

func (t *SliceType) typeNode()             {}
func (t *SliceType) GetToken() token.Token { return t.Token }

// ArrayType is [T; N]. The length is kept as written text only.
type ArrayType struct {
	Token token.Token // the '[' token
	Elem  Type
	Len   string
}

func (t *ArrayType) typeNode()             {}
func (t *ArrayType) GetToken() token.Token { return t.Token }

// RawPointerType is *const T or *mut T. Raw pointers carry no lifetime.
type RawPointerType struct {
	Token   token.Token // the '*' token
	Mutable bool
	Elem    Type
}

func (t *RawPointerType) typeNode()             {}
func (t *RawPointerType) GetToken() token.Token { return t.Token }

// TraitObjectType is dyn Trait or impl Trait, with optional + bounds.
// A `+ 'a` suffix is a lifetime bound, not a reference annotation; it is
// kept separate so the extractor can skip it.
type TraitObjectType struct {
	Token  token.Token // the 'dyn' or 'impl' token
	Impl   bool        // impl Trait rather than dyn Trait
	Traits []Type      // one or more PathTypes joined by '+'
	Bound  *Lifetime   // the lifetime bound, if written
}

func (t *TraitObjectType) typeNode()             {}
func (t *TraitObjectType) GetToken() token.Token { return t.Token }

// FnPointerType is fn(T) -> U, with optional unsafe/extern qualifiers
// (not modeled beyond their presence in the source).
type FnPointerType struct {
	Token  token.Token // the 'fn' token
	Params []Type
	Return Type // nil when no return type is written
}

func (t *FnPointerType) typeNode()             {}
func (t *FnPointerType) GetToken() token.Token { return t.Token }

// InferType is the placeholder type _.
type InferType struct {
	Token token.Token
}

func (t *InferType) typeNode()             {}
func (t *InferType) GetToken() token.Token { return t.Token }

// Visitor dispatches over the type variants. WalkType drives it in
// pre-order.
type Visitor interface {
	VisitRef(*RefType)
	VisitPath(*PathType)
	VisitTuple(*TupleType)
	VisitSlice(*SliceType)
	VisitArray(*ArrayType)
	VisitRawPointer(*RawPointerType)
	VisitTraitObject(*TraitObjectType)
	VisitFnPointer(*FnPointerType)
	VisitInfer(*InferType)
}

// WalkType visits t and then recurses into its children. Trait-object
// lifetime bounds and generic-parameter bounds never appear as children, so
// a visitor only ever sees lifetimes that annotate references or generic
// arguments.
func WalkType(v Visitor, t Type) {
	switch t := t.(type) {
	case *RefType:
		v.VisitRef(t)
		WalkType(v, t.Elem)
	case *PathType:
		v.VisitPath(t)
		if t.Qual != nil {
			WalkType(v, t.Qual.Type)
			if t.Qual.As != nil {
				WalkType(v, t.Qual.As)
			}
		}
		for _, arg := range t.Args {
			if arg.Type != nil {
				WalkType(v, arg.Type)
			}
		}
	case *TupleType:
		v.VisitTuple(t)
		for _, el := range t.Elems {
			WalkType(v, el)
		}
	case *SliceType:
		v.VisitSlice(t)
		WalkType(v, t.Elem)
	case *ArrayType:
		v.VisitArray(t)
		WalkType(v, t.Elem)
	case *RawPointerType:
		v.VisitRawPointer(t)
		WalkType(v, t.Elem)
	case *TraitObjectType:
		v.VisitTraitObject(t)
		for _, tr := range t.Traits {
			WalkType(v, tr)
		}
	case *FnPointerType:
		v.VisitFnPointer(t)
		for _, param := range t.Params {
			WalkType(v, param)
		}
		if t.Return != nil {
			WalkType(v, t.Return)
		}
	case *InferType:
		v.VisitInfer(t)
	}
}
