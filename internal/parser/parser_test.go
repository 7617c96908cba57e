package parser_test

import (
	"strings"
	"testing"

	"github.com/reflint/reflint/internal/ast"
	"github.com/reflint/reflint/internal/lexer"
	"github.com/reflint/reflint/internal/parser"
	"github.com/reflint/reflint/internal/pipeline"
	"github.com/reflint/reflint/internal/prettyprinter"
)

func parse(t *testing.T, src string) *pipeline.Context {
	t.Helper()
	ctx := &pipeline.Context{FilePath: "test.rs", SourceCode: src}
	return pipeline.New(&lexer.LexerProcessor{}, &parser.ParserProcessor{}).Run(ctx)
}

func TestParseSignatures(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string // prettyprinted signatures, in order
	}{
		{"free_function", "fn f(x: &i32) -> &i32;",
			[]string{"fn f(x: &i32) -> &i32"}},
		{"no_params", "fn f();",
			[]string{"fn f()"}},
		{"generics_with_bounds", "fn f<'a, 'b: 'a, T: Clone>(x: &'a T, y: &'b str);",
			[]string{"fn f<'a, 'b, T>(x: &'a T, y: &'b str)"}},
		{"const_generic", "fn f<const N: usize>(x: [u8; N]) -> [u8; N];",
			[]string{"fn f<N>(x: [u8; N]) -> [u8; N]"}},
		{"tuple_and_unit", "fn f(x: (i32, &str)) -> ();",
			[]string{"fn f(x: (i32, &str)) -> ()"}},
		{"one_tuple", "fn f(x: (i32,));",
			[]string{"fn f(x: (i32,))"}},
		{"paren_type", "fn f(x: (&i32)) -> i32;",
			[]string{"fn f(x: &i32) -> i32"}},
		{"slice_and_array", "fn f(x: &[u8], y: [u8; 4]);",
			[]string{"fn f(x: &[u8], y: [u8; 4])"}},
		{"raw_pointers", "fn f(p: *const u8) -> *mut u8;",
			[]string{"fn f(p: *const u8) -> *mut u8"}},
		{"nested_generics", "fn f(v: Vec<Vec<u8>>) -> Map<String, Vec<u8>>;",
			[]string{"fn f(v: Vec<Vec<u8>>) -> Map<String, Vec<u8>>"}},
		{"lifetime_args", "fn f<'a>(it: std::slice::Iter<'a, u8>) -> &'a u8;",
			[]string{"fn f<'a>(it: std::slice::Iter<'a, u8>) -> &'a u8"}},
		{"double_reference", "fn f<'a>(x: &&'a i32);",
			[]string{"fn f<'a>(x: &&'a i32)"}},
		{"mut_reference", "fn f<'a>(x: &'a mut Vec<u8>);",
			[]string{"fn f<'a>(x: &'a mut Vec<u8>)"}},
		{"fn_pointer", "fn f(cb: fn(&i32) -> &i32);",
			[]string{"fn f(cb: fn(&i32) -> &i32)"}},
		{"trait_objects", "fn f(x: &dyn Read) -> Box<dyn Read + 'static>;",
			[]string{"fn f(x: &dyn Read) -> Box<dyn Read + 'static>"}},
		{"impl_trait", "fn f<'a>(x: &'a str) -> impl Iterator<Item = &'a str>;",
			[]string{"fn f<'a>(x: &'a str) -> impl Iterator<Item = &'a str>"}},
		{"qualified_path", "fn f(x: <T as IntoIterator>::Item);",
			[]string{"fn f(x: <T as IntoIterator>::Item)"}},
		{"turbofish", "fn f(v: Vec::<u8>);",
			[]string{"fn f(v: Vec<u8>)"}},
		{"infer_type", "fn f(x: &_);",
			[]string{"fn f(x: &_)"}},
		{"where_clause", "fn f<T>(x: T) -> T where T: Clone { x }",
			[]string{"fn f<T>(x: T) -> T"}},
		{"qualifiers", `pub unsafe extern "C" fn f(x: i32);`,
			[]string{"fn f(x: i32)"}},
		{"variadic_foreign", `extern "C" { fn printf(fmt: *const u8, ...); }`,
			[]string{"fn printf(fmt: *const u8)"}},
		{"wildcard_param", "fn f(_: &str);",
			[]string{"fn f(&str)"}},
		{"mut_pattern", "fn f(mut x: Vec<u8>);",
			[]string{"fn f(x: Vec<u8>)"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := parse(t, tc.src)
			if ctx.HasErrors() {
				for _, d := range ctx.Diagnostics {
					t.Logf("diagnostic: %s", d.String())
				}
				t.Fatalf("unexpected parse errors")
			}
			if len(ctx.Decls) != len(tc.want) {
				t.Fatalf("got %d declarations, want %d", len(ctx.Decls), len(tc.want))
			}
			for i, fn := range ctx.Decls {
				if got := prettyprinter.Signature(fn); got != tc.want[i] {
					t.Errorf("signature %d = %q, want %q", i, got, tc.want[i])
				}
			}
		})
	}
}

func TestParseReceivers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"shared_ref", "impl S { fn m(&self) {} }", "fn m(&self)"},
		{"named_ref", "impl S { fn m<'a>(&'a self) -> &'a u8 { &0 } }", "fn m<'a>(&'a self) -> &'a u8"},
		{"mut_ref", "impl S { fn m(&mut self) {} }", "fn m(&mut self)"},
		{"named_mut_ref", "impl S { fn m<'a>(&'a mut self) {} }", "fn m<'a>(&'a mut self)"},
		{"by_value", "impl S { fn m(self) {} }", "fn m(self)"},
		{"mut_value", "impl S { fn m(mut self) {} }", "fn m(mut self)"},
		{"typed", "impl S { fn m(self: Box<Self>) {} }", "fn m(self: Box<Self>)"},
		{"receiver_and_params", "impl S { fn m(&self, x: &str) -> &str { x } }", "fn m(&self, x: &str) -> &str"},
		{"trait_anonymous_param", "trait T { fn m(&self, i32); }", "fn m(&self, i32)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := parse(t, tc.src)
			if ctx.HasErrors() {
				t.Fatalf("unexpected parse errors: %v", ctx.Diagnostics)
			}
			if len(ctx.Decls) != 1 {
				t.Fatalf("got %d declarations, want 1", len(ctx.Decls))
			}
			if got := prettyprinter.Signature(ctx.Decls[0]); got != tc.want {
				t.Errorf("signature = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestItemSkipping(t *testing.T) {
	src := `
use std::io::Read;

struct Buf {
    data: Vec<u8>,
}

static GREETING: &str = "{ not a block }";

enum Mode { A, B }

const LIMIT: usize = 16;

fn keep(x: &i32) -> &i32 {
    if *x > 0 { x } else { x }
}

mod inner {
    fn nested(y: &str) {}
}
`
	ctx := parse(t, src)
	if ctx.HasErrors() {
		for _, d := range ctx.Diagnostics {
			t.Logf("diagnostic: %s", d.String())
		}
		t.Fatalf("unexpected parse errors")
	}
	var names []string
	for _, fn := range ctx.Decls {
		names = append(names, fn.Name)
	}
	if got := strings.Join(names, ","); got != "keep,nested" {
		t.Errorf("declarations = %s, want keep,nested", got)
	}
}

func TestMacroItemsFlagged(t *testing.T) {
	src := `
items! {
    fn generated<'a>(x: &'a str) -> &'a str {
        x
    }
}

fn written<'a>(x: &'a str) -> &'a str {
    x
}
`
	ctx := parse(t, src)
	if ctx.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", ctx.Diagnostics)
	}
	byName := make(map[string]*ast.FnDecl)
	for _, fn := range ctx.Decls {
		byName[fn.Name] = fn
	}
	gen, ok := byName["generated"]
	if !ok {
		t.Fatal("macro body declaration not found")
	}
	if !gen.FromMacro {
		t.Error("declaration inside macro invocation should be flagged FromMacro")
	}
	written, ok := byName["written"]
	if !ok {
		t.Fatal("top-level declaration not found")
	}
	if written.FromMacro {
		t.Error("top-level declaration wrongly flagged FromMacro")
	}
}

func TestMacroRulesSkippedSilently(t *testing.T) {
	src := `
macro_rules! getters {
    ($name:ident) => {
        fn $name(&self) -> &str { &self.inner }
    };
}

fn after(x: &str) {}
`
	ctx := parse(t, src)
	if ctx.HasErrors() {
		t.Fatalf("macro template produced parse errors: %v", ctx.Diagnostics)
	}
	for _, fn := range ctx.Decls {
		if fn.Name == "after" {
			return
		}
	}
	t.Error("declaration after macro definition was lost")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"missing_name", "fn (x: i32);"},
		{"unterminated_params", "fn f(x: i32"},
		{"bad_type", "fn f(x: @);"},
		{"unterminated_generics", "fn f<'a(x: &'a i32);"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctx := parse(t, tc.src)
			if !ctx.HasErrors() {
				t.Errorf("expected parse errors for %q", tc.src)
			}
		})
	}
}

func TestRecoveryAfterError(t *testing.T) {
	src := `
fn broken(x: @);

fn fine(x: &i32) -> &i32 { x }
`
	ctx := parse(t, src)
	if !ctx.HasErrors() {
		t.Fatal("expected a parse error for the broken declaration")
	}
	for _, fn := range ctx.Decls {
		if fn.Name == "fine" {
			return
		}
	}
	t.Error("parser did not recover to parse the following declaration")
}
