// Package ast defines the signature-level syntax tree produced by the
// parser: function declarations and the type expressions appearing in them.
// Bodies and non-function items are not modeled.
package ast

import (
	"github.com/reflint/reflint/internal/token"
)

// Node is the common interface of all syntax nodes.
type Node interface {
	GetToken() token.Token
}

// Lifetime is a written lifetime annotation such as 'a or 'static.
// The anonymous lifetime '_ is represented with Name == "_".
type Lifetime struct {
	Token token.Token
	Name  string // without the leading quote
}

func (l *Lifetime) GetToken() token.Token { return l.Token }

// IsStatic reports whether the annotation is the whole-program lifetime.
func (l *Lifetime) IsStatic() bool { return l.Name == "static" }

// IsAnonymous reports whether the annotation is the explicit '_.
func (l *Lifetime) IsAnonymous() bool { return l.Name == "_" }

// GenericParam is one declared generic parameter of a function:
// a lifetime ('a, 'b: 'a), a type (T, T: Trait) or a const (const N: usize).
// Bounds are parsed but deliberately not modeled beyond their presence;
// they are constraints, not reference annotations.
type GenericParam struct {
	Token    token.Token
	Name     string
	Lifetime bool // declared with a leading quote
}

// SelfKind describes the receiver form of a method.
type SelfKind int

const (
	SelfNone  SelfKind = iota // free function, no receiver
	SelfValue                 // self, mut self
	SelfRef                   // &self, &'a self, &mut self
	SelfTyped                 // self: Type
)

// Receiver is the self parameter of a method. For SelfRef the lifetime is
// carried here, out-of-band from the parameter types; for SelfTyped the
// fully written type is carried instead.
type Receiver struct {
	Token    token.Token
	Kind     SelfKind
	Lifetime *Lifetime // only for SelfRef; nil means an unannotated &self
	Mutable  bool
	Type     Type // only for SelfTyped
}

// Param is one ordinary function parameter.
type Param struct {
	Token token.Token // the pattern's first token
	Name  string      // "_" for a wildcard pattern
	Type  Type
}

// FnDecl is one function signature. The body is never represented.
type FnDecl struct {
	Token     token.Token // the 'fn' token
	Name      string
	Generics  []*GenericParam
	Receiver  *Receiver // nil for free functions
	Params    []*Param
	Return    Type   // nil when no return type is written
	File      string // source path, set by the parser processor
	FromMacro bool   // declared inside a macro invocation body
}

func (f *FnDecl) GetToken() token.Token { return f.Token }
