package resolver

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostic"
	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/scanner"
)

// recorder captures the depths reported for each resolved reference.
type recorder struct {
	depths map[ast.Expression]int
}

func newRecorder() *recorder {
	return &recorder{depths: make(map[ast.Expression]int)}
}

func (r *recorder) Resolve(expr ast.Expression, depth int) {
	r.depths[expr] = depth
}

func resolveSource(t *testing.T, source string) (*recorder, []diagnostic.Diagnostic) {
	t.Helper()
	tokens, scanDiags := scanner.New(source).Scan()
	if len(scanDiags) != 0 {
		t.Fatalf("unexpected scan diagnostics: %v", scanDiags)
	}
	statements, parseDiags := parser.New(tokens).Parse()
	if len(parseDiags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", parseDiags)
	}
	rec := newRecorder()
	return rec, New(rec).Resolve(statements)
}

func messagesOf(diags []diagnostic.Diagnostic) []string {
	msgs := make([]string, 0, len(diags))
	for _, d := range diags {
		msgs = append(msgs, d.Message)
	}
	return msgs
}

func assertMessages(t *testing.T, source string, want []string) {
	t.Helper()
	_, diags := resolveSource(t, source)
	if diff := cmp.Diff(want, messagesOf(diags)); diff != "" {
		t.Fatalf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveCleanProgram(t *testing.T) {
	_, diags := resolveSource(t, `
var a = 1;
fun f(x) { return x + a; }
print f(2);
`)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
}

func TestSelfReferencingInitializerInBlock(t *testing.T) {
	assertMessages(t, "{ var a = a; }",
		[]string{"Can't read local variable in its own initializer."})
}

func TestSelfReferencingInitializerAtTopLevel(t *testing.T) {
	assertMessages(t, "var a = a;",
		[]string{"Can't read local variable in its own initializer."})
}

func TestShadowingInitializerReadsOuterBinding(t *testing.T) {
	// The inner a's initializer may not read the declaration it initializes,
	// even though an outer a exists.
	assertMessages(t, "var a = 1; { var a = a; }",
		[]string{"Can't read local variable in its own initializer."})
}

func TestReturnAtTopLevel(t *testing.T) {
	assertMessages(t, "return 1;",
		[]string{"Can't return from top-level code."})
}

func TestReturnValueFromInitializer(t *testing.T) {
	assertMessages(t, "class A { init() { return 1; } }",
		[]string{"Can't return a value from an initializer."})
}

func TestBareReturnFromInitializerAllowed(t *testing.T) {
	assertMessages(t, "class A { init() { return; } }", []string{})
}

func TestThisOutsideClass(t *testing.T) {
	assertMessages(t, "print this;",
		[]string{"Can't use 'this' outside of a class."})
}

func TestThisInStandaloneFunction(t *testing.T) {
	assertMessages(t, "fun f() { return this; }",
		[]string{"Can't use 'this' outside of a class."})
}

func TestSuperOutsideClass(t *testing.T) {
	assertMessages(t, "print super.x;",
		[]string{"Can't use 'super' outside of a class."})
}

func TestSuperWithoutSuperclass(t *testing.T) {
	assertMessages(t, "class A { m() { return super.m(); } }",
		[]string{"Can't use 'super' in a class with no superclass."})
}

func TestClassInheritingFromItself(t *testing.T) {
	assertMessages(t, "class A < A {}",
		[]string{"A class can't inherit from itself."})
}

func TestMultipleErrorsAccumulate(t *testing.T) {
	assertMessages(t, "return 1;\nprint this;",
		[]string{
			"Can't return from top-level code.",
			"Can't use 'this' outside of a class.",
		})
}

func TestDepthsForNestedScopes(t *testing.T) {
	rec, diags := resolveSource(t, `
var a = 1;
{
  var b = 2;
  {
    print a;
    print b;
  }
}
`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
	got := map[string]int{}
	for expr, depth := range rec.depths {
		if v, ok := expr.(*ast.Variable); ok {
			got[v.Name.Lexeme] = depth
		}
	}
	want := map[string]int{"a": 2, "b": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("depths mismatch (-want +got):\n%s", diff)
	}
}

func TestShadowingResolvesToNearestBinding(t *testing.T) {
	rec, diags := resolveSource(t, `
var a = 1;
{
  var a = 2;
  print a;
}
`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
	for expr, depth := range rec.depths {
		v, ok := expr.(*ast.Variable)
		if !ok {
			continue
		}
		if v.Name.Lexeme == "a" && depth != 0 {
			t.Fatalf("print a should resolve to the inner scope, got depth %d", depth)
		}
	}
}

func TestFunctionParametersResolveAtDepthZero(t *testing.T) {
	rec, diags := resolveSource(t, "fun f(x) { return x; }")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics %v", diags)
	}
	found := false
	for expr, depth := range rec.depths {
		if v, ok := expr.(*ast.Variable); ok && v.Name.Lexeme == "x" {
			found = true
			if depth != 0 {
				t.Fatalf("parameter reference should be depth 0, got %d", depth)
			}
		}
	}
	if !found {
		t.Fatalf("no depth recorded for parameter reference")
	}
}

func TestSameScopeRedefinitionAllowed(t *testing.T) {
	assertMessages(t, "{ var a = 1; var a = 2; print a; }", []string{})
}
