package elision

import (
	"github.com/reflint/reflint/internal/ast"
)

// extractor records the region of every reference in a type expression in
// pre-order encounter sequence. Lifetimes appearing as generic arguments
// are recorded too; lifetime bounds never reach the walk (the AST keeps
// them out of the visited children).
type extractor struct {
	regions []Region
}

// record converts a written annotation (or its absence) to a Region.
func (e *extractor) record(lt *ast.Lifetime) {
	switch {
	case lt == nil || lt.IsAnonymous():
		e.regions = append(e.regions, UnnamedRegion())
	case lt.IsStatic():
		e.regions = append(e.regions, StaticRegion())
	default:
		e.regions = append(e.regions, NamedRegion(lt.Name))
	}
}

func (e *extractor) walk(t ast.Type) {
	ast.WalkType(e, t)
}

func (e *extractor) VisitRef(t *ast.RefType) {
	e.record(t.Lifetime)
}

func (e *extractor) VisitPath(t *ast.PathType) {
	// lifetimes used as generic arguments count as annotations
	for _, arg := range t.Args {
		if arg.Lifetime != nil {
			e.record(arg.Lifetime)
		}
	}
}

func (e *extractor) VisitTuple(*ast.TupleType)           {}
func (e *extractor) VisitSlice(*ast.SliceType)           {}
func (e *extractor) VisitArray(*ast.ArrayType)           {}
func (e *extractor) VisitRawPointer(*ast.RawPointerType) {}
func (e *extractor) VisitTraitObject(*ast.TraitObjectType) {
	// the `+ 'a` suffix is a bound, deliberately not recorded
}
func (e *extractor) VisitFnPointer(*ast.FnPointerType) {}
func (e *extractor) VisitInfer(*ast.InferType)         {}

// signatureRegions builds the input sequence (receiver first, then
// parameters) and the output sequence (explicit return type only) for one
// function declaration.
func signatureRegions(fn *ast.FnDecl) (inputs, outputs []Region) {
	in := &extractor{}

	if recv := fn.Receiver; recv != nil {
		switch recv.Kind {
		case ast.SelfRef:
			// the receiver's region is carried out-of-band from the
			// parameter types; record it directly
			in.record(recv.Lifetime)
		case ast.SelfTyped:
			in.walk(recv.Type)
		}
	}
	for _, param := range fn.Params {
		in.walk(param.Type)
	}

	out := &extractor{}
	if fn.Return != nil {
		out.walk(fn.Return)
	}
	return in.regions, out.regions
}
