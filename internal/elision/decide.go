package elision

import (
	"github.com/reflint/reflint/internal/ast"
)

// Check reports whether fn's explicit lifetime annotations could all be
// elided.
func Check(fn *ast.FnDecl) bool {
	inputs, outputs := signatureRegions(fn)
	return CouldUseElision(inputs, outputs)
}

// CouldUseElision is the eligibility decision over the extracted input and
// output region sequences. It is a total, deterministic function: every
// pair of sequences yields a definite answer, and re-running it on the
// same sequences always yields the same one.
func CouldUseElision(inputs, outputs []Region) bool {
	// no input references? easy case!
	if len(inputs) == 0 {
		return false
	}

	if len(outputs) == 0 {
		// a single reference that is already implicit needs no change
		if len(inputs) == 1 && inputs[0] == UnnamedRegion() {
			return false
		}
		// with no output reference, all-distinct input lifetimes elide:
		// each reference gets its own inferred lifetime anyway
		return len(inputs) == uniqueRegions(inputs)
	}

	// output references need a single output lifetime...
	if uniqueRegions(outputs) > 1 {
		return false
	}
	// ...and exactly one input reference with the same lifetime
	if len(inputs) != 1 {
		return false
	}
	in, out := inputs[0], outputs[0]
	switch {
	case in.Kind == Named && out.Kind == Named && in.Name == out.Name:
		return true
	case in.Kind == Named && out.Kind == Unnamed:
		return true
	case in.Kind == Unnamed && out.Kind == Named:
		return true
	}
	// already elided, different named lifetimes, or something static
	// going on
	return false
}
