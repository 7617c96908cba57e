package elision_test

import (
	"testing"

	"github.com/reflint/reflint/internal/ast"
	"github.com/reflint/reflint/internal/elision"
	"github.com/reflint/reflint/internal/lexer"
	"github.com/reflint/reflint/internal/parser"
	"github.com/reflint/reflint/internal/pipeline"
)

func parseDecls(t *testing.T, src string) []*ast.FnDecl {
	t.Helper()
	ctx := &pipeline.Context{FilePath: "test.rs", SourceCode: src}
	ctx = pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
	if ctx.HasErrors() {
		for _, d := range ctx.Diagnostics {
			t.Logf("diagnostic: %s", d.String())
		}
		t.Fatalf("parse errors in %q", src)
	}
	return ctx.Decls
}

func parseFn(t *testing.T, src string) *ast.FnDecl {
	t.Helper()
	decls := parseDecls(t, src)
	if len(decls) != 1 {
		t.Fatalf("expected 1 declaration in %q, got %d", src, len(decls))
	}
	return decls[0]
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		// no references at all: nothing to elide
		{"no_refs", "fn f(x: i32, y: u64) -> bool;", false},
		{"no_refs_no_return", "fn f();", false},

		// no output reference
		{"single_implicit_input", "fn f(x: &i32);", false},
		{"two_implicit_inputs", "fn f(x: &i32, y: &i32) -> i32;", false},
		{"single_named_input", "fn f<'a>(x: &'a i32);", true},
		{"single_static_input", "fn f(x: &'static i32);", true},
		{"distinct_named_inputs", "fn f<'a, 'b>(x: &'a i32, y: &'b i32);", true},
		{"named_plus_implicit", "fn f<'a>(x: &'a i32, y: &i32);", true},
		{"shared_named_inputs", "fn f<'a>(x: &'a i32, y: &'a i32);", false},
		{"three_distinct_inputs", "fn f<'a, 'b>(x: &'a i32, y: &'b i32, z: &'static i32);", true},

		// output references
		{"matching_single_pair", "fn f<'a>(x: &'a i32) -> &'a i32;", true},
		{"named_input_implicit_output", "fn f<'a>(x: &'a i32) -> &i32;", true},
		{"implicit_input_named_output", "fn f<'a>(x: &i32) -> &'a i32;", true},
		{"both_implicit", "fn f(x: &i32) -> &i32;", false},
		{"different_names", "fn f<'a, 'b>(x: &'a i32) -> &'b i32;", false},
		{"static_output", "fn f<'a>(x: &'a i32) -> &'static i32;", false},
		{"static_input_named_output", "fn f<'a>(x: &'static i32) -> &'a i32;", false},
		{"two_inputs_with_output", "fn f<'a, 'b>(x: &'a i32, y: &'b i32) -> &'a i32;", false},
		{"no_input_refs_with_output", "fn f<'a>(x: i32) -> &'a i32;", false},
		{"distinct_named_outputs", "fn f<'a, 'b>(x: &i32) -> (&'a i32, &'b i32);", false},
		{"same_named_outputs", "fn f<'a>(x: &'a i32) -> (&'a i32, &'a i32);", true},

		// references nested in composite types
		{"nested_generic_arg", "fn f<'a>(m: &'a Map<String, u32>) -> Vec<&'a String>;", true},
		{"lifetime_generic_arg", "fn f<'a>(it: Iter<'a, u8>) -> &'a u8;", true},
		{"nested_tuple", "fn f<'a, 'b>(pair: (&'a i32, &'b str));", true},
		{"nested_slice", "fn f<'a>(rows: &'a [Vec<u8>]) -> &'a Vec<u8>;", true},
		{"fn_pointer_refs", "fn f<'a>(cb: fn(&'a i32) -> &'a i32);", false},
		{"raw_pointer_no_region", "fn f(p: *const u8, x: &i32);", false},

		// bounds are constraints, not annotations
		{"bound_not_collected", "fn f<'a, 'b: 'a>(x: &'a i32, y: &'b i32);", true},
		{"type_bound_not_collected", "fn f<'a, T: 'a>(x: &'a T);", true},
		// the `+ 'a` bound is not collected, so the output side stays
		// empty and the single named input is eligible on its own
		{"trait_object_bound", "fn f<'a>(x: &'a dyn Read) -> Box<dyn Read + 'a>;", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fn := parseFn(t, tc.src)
			if got := elision.Check(fn); got != tc.want {
				t.Errorf("Check(%q) = %v, want %v", tc.src, got, tc.want)
			}
		})
	}
}

func TestCheckReceivers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want bool
	}{
		{"implicit_ref_receiver", "impl S { fn f(&self) -> &str; }", false},
		{"named_receiver_named_output", "impl S { fn f<'a>(&'a self) -> &'a str; }", true},
		{"named_receiver_implicit_output", "impl S { fn f<'a>(&'a self) -> &str; }", true},
		{"named_receiver_no_output", "impl S { fn f<'a>(&'a self); }", true},
		{"mut_receiver", "impl S { fn f<'a>(&'a mut self) -> &'a mut str; }", true},
		{"value_receiver", "impl S { fn f(self, x: &i32) -> &i32; }", false},
		{"typed_receiver", "impl S { fn f<'a>(self: &'a Box<Self>) -> &'a u8; }", true},
		{"receiver_plus_param", "impl S { fn f<'a>(&'a self, x: &'a str) -> &'a str; }", false},
		{"trait_method", "trait T { fn f<'a>(&'a self) -> &'a str; }", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fn := parseFn(t, tc.src)
			if got := elision.Check(fn); got != tc.want {
				t.Errorf("Check(%q) = %v, want %v", tc.src, got, tc.want)
			}
		})
	}
}

func TestCouldUseElision(t *testing.T) {
	a := elision.NamedRegion("a")
	b := elision.NamedRegion("b")
	un := elision.UnnamedRegion()
	st := elision.StaticRegion()

	tests := []struct {
		name    string
		inputs  []elision.Region
		outputs []elision.Region
		want    bool
	}{
		{"empty_inputs", nil, nil, false},
		{"empty_inputs_with_output", nil, []elision.Region{a}, false},
		{"single_unnamed", []elision.Region{un}, nil, false},
		{"single_named", []elision.Region{a}, nil, true},
		{"single_static", []elision.Region{st}, nil, true},
		{"distinct", []elision.Region{a, b, st, un}, nil, true},
		{"duplicate_named", []elision.Region{a, a}, nil, false},
		{"duplicate_unnamed", []elision.Region{un, un}, nil, false},
		{"matching_pair", []elision.Region{a}, []elision.Region{a}, true},
		{"named_to_unnamed", []elision.Region{a}, []elision.Region{un}, true},
		{"unnamed_to_named", []elision.Region{un}, []elision.Region{a}, true},
		{"unnamed_to_unnamed", []elision.Region{un}, []elision.Region{un}, false},
		{"mismatched_names", []elision.Region{a}, []elision.Region{b}, false},
		{"static_output", []elision.Region{a}, []elision.Region{st}, false},
		{"static_input", []elision.Region{st}, []elision.Region{a}, false},
		{"repeated_output", []elision.Region{a}, []elision.Region{a, a}, true},
		{"two_output_names", []elision.Region{a}, []elision.Region{a, b}, false},
		{"two_inputs_one_output", []elision.Region{a, b}, []elision.Region{a}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := elision.CouldUseElision(tc.inputs, tc.outputs); got != tc.want {
				t.Errorf("CouldUseElision(%v, %v) = %v, want %v", tc.inputs, tc.outputs, got, tc.want)
			}
			// the decider is pure: re-running never changes the verdict
			if again := elision.CouldUseElision(tc.inputs, tc.outputs); again != tc.want {
				t.Errorf("verdict not stable on re-run: got %v, want %v", again, tc.want)
			}
		})
	}
}

// The uniqueness count must not depend on discovery order; only the
// length check does.
func TestUniquenessOrderIndependent(t *testing.T) {
	a := elision.NamedRegion("a")
	b := elision.NamedRegion("b")
	st := elision.StaticRegion()

	orders := [][]elision.Region{
		{a, b, st},
		{st, b, a},
		{b, st, a},
	}
	for _, inputs := range orders {
		if !elision.CouldUseElision(inputs, nil) {
			t.Errorf("distinct inputs %v should be eligible regardless of order", inputs)
		}
	}
}
