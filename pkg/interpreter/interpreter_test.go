package interpreter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"lox/interpreter-go/pkg/parser"
	"lox/interpreter-go/pkg/resolver"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/scanner"
)

// runProgram scans, parses, resolves, and interprets source, returning what
// `print` wrote along with the last statement's value.
func runProgram(t *testing.T, source string) (string, runtime.Value, error) {
	t.Helper()
	tokens, scanDiags := scanner.New(source).Scan()
	if len(scanDiags) != 0 {
		t.Fatalf("unexpected scan diagnostics: %v", scanDiags)
	}
	statements, parseDiags := parser.New(tokens).Parse()
	if len(parseDiags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", parseDiags)
	}

	interp := New()
	var out bytes.Buffer
	interp.SetOutput(&out)
	if diags := resolver.New(interp).Resolve(statements); len(diags) != 0 {
		t.Fatalf("unexpected resolve diagnostics: %v", diags)
	}
	val, err := interp.Interpret(statements)
	return out.String(), val, err
}

func mustRun(t *testing.T, source string) string {
	t.Helper()
	out, _, err := runProgram(t, source)
	if err != nil {
		t.Fatalf("unexpected runtime error: %v", err)
	}
	return out
}

func mustFail(t *testing.T, source string) *RuntimeError {
	t.Helper()
	_, _, err := runProgram(t, source)
	if err == nil {
		t.Fatalf("expected a runtime error")
	}
	var re *RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RuntimeError, got %T: %v", err, err)
	}
	return re
}

func TestArithmeticAndGrouping(t *testing.T) {
	if out := mustRun(t, "print (1 + 2) * 3 - 4 / 2;"); out != "7\n" {
		t.Fatalf("got %q", out)
	}
}

func TestNumberFormatting(t *testing.T) {
	cases := map[string]string{
		"print 2;":         "2\n",
		"print 2.5;":       "2.5\n",
		"print 4 / 2;":     "2\n",
		"print 0.1 + 0.2;": "0.30000000000000004\n",
		"print -0.0;":      "-0\n",
	}
	for src, want := range cases {
		if out := mustRun(t, src); out != want {
			t.Errorf("%s printed %q, want %q", src, out, want)
		}
	}
}

func TestStringConcatenation(t *testing.T) {
	if out := mustRun(t, `print "foo" + "bar";`); out != "foobar\n" {
		t.Fatalf("got %q", out)
	}
}

func TestPlusTypeError(t *testing.T) {
	re := mustFail(t, `1 + "a";`)
	if re.Message != "Operands must be two numbers or two strings." {
		t.Fatalf("got %q", re.Message)
	}
	if re.Token.Line != 1 {
		t.Fatalf("wrong line %d", re.Token.Line)
	}
}

func TestComparisonTypeError(t *testing.T) {
	re := mustFail(t, `"a" < "b";`)
	if re.Message != "Operands must be numbers." {
		t.Fatalf("got %q", re.Message)
	}
}

func TestUnaryMinusTypeError(t *testing.T) {
	re := mustFail(t, `-"muffin";`)
	if re.Message != "Operand must be a number." {
		t.Fatalf("got %q", re.Message)
	}
}

func TestRuntimeErrorMentionsLine(t *testing.T) {
	re := mustFail(t, "var a = 1;\nvar b = 2;\na + nil;")
	if !strings.HasSuffix(re.Error(), "[line 3]") {
		t.Fatalf("got %q", re.Error())
	}
}

func TestTruthiness(t *testing.T) {
	out := mustRun(t, `
if (0) print "zero";
if ("") print "empty";
if (nil) print "nil"; else print "not nil";
if (false) print "false";
`)
	if out != "zero\nempty\nnot nil\n" {
		t.Fatalf("got %q", out)
	}
}

func TestEqualityNeverCoerces(t *testing.T) {
	out := mustRun(t, `
print 1 == 1;
print 1 == "1";
print nil == nil;
print nil == false;
print "a" != "b";
`)
	if out != "true\nfalse\ntrue\nfalse\ntrue\n" {
		t.Fatalf("got %q", out)
	}
}

func TestLogicalOperatorsReturnOperands(t *testing.T) {
	out := mustRun(t, `
print "hi" or 2;
print nil or "yes";
print nil and "no";
print 1 and 2;
`)
	if out != "hi\nyes\nnil\n2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestShortCircuitSkipsRightOperand(t *testing.T) {
	out := mustRun(t, `
var touched = false;
fun touch() { touched = true; return true; }
true or touch();
false and touch();
print touched;
`)
	if out != "false\n" {
		t.Fatalf("got %q", out)
	}
}

func TestAssignmentIsAnExpression(t *testing.T) {
	if out := mustRun(t, "var a = 1;\nprint a = 2;\nprint a;"); out != "2\n2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestUndefinedVariable(t *testing.T) {
	re := mustFail(t, "print ghost;")
	if re.Message != "Undefined variable 'ghost'." {
		t.Fatalf("got %q", re.Message)
	}
}

func TestUndefinedAssignmentTarget(t *testing.T) {
	re := mustFail(t, "ghost = 1;")
	if re.Message != "Undefined variable 'ghost'." {
		t.Fatalf("got %q", re.Message)
	}
}

func TestBlockScopingAndShadowing(t *testing.T) {
	out := mustRun(t, `
var a = 1;
{
  var a = 2;
  print a;
}
print a;
`)
	if out != "2\n1\n" {
		t.Fatalf("got %q", out)
	}
}

func TestUninitializedVariableIsNil(t *testing.T) {
	if out := mustRun(t, "var a;\nprint a;"); out != "nil\n" {
		t.Fatalf("got %q", out)
	}
}

func TestWhileLoop(t *testing.T) {
	out := mustRun(t, `
var i = 0;
while (i < 3) {
  print i;
  i = i + 1;
}
`)
	if out != "0\n1\n2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestClosureCapturesVariableNotValue(t *testing.T) {
	out := mustRun(t, `
fun makeCounter() {
  var count = 0;
  fun increment() {
    count = count + 1;
    return count;
  }
  return increment;
}
var counter = makeCounter();
print counter();
print counter();
`)
	if out != "1\n2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestClosureCapturesDefinitionScope(t *testing.T) {
	// The classic binding test: the closure must keep seeing the variable it
	// closed over, not whatever is in scope at the call site.
	out := mustRun(t, `
var a = "global";
{
  fun show() { print a; }
  show();
  var a = "block";
  show();
}
`)
	if out != "global\nglobal\n" {
		t.Fatalf("got %q", out)
	}
}

func TestRecursion(t *testing.T) {
	out := mustRun(t, `
fun fib(n) {
  if (n < 2) return n;
  return fib(n - 2) + fib(n - 1);
}
print fib(10);
`)
	if out != "55\n" {
		t.Fatalf("got %q", out)
	}
}

func TestReturnUnwindsNestedBlocks(t *testing.T) {
	out := mustRun(t, `
fun find() {
  var i = 0;
  while (true) {
    if (i == 2) return i;
    i = i + 1;
  }
}
print find();
`)
	if out != "2\n" {
		t.Fatalf("got %q", out)
	}
}

func TestFunctionWithoutReturnYieldsNil(t *testing.T) {
	if out := mustRun(t, "fun f() {}\nprint f();"); out != "nil\n" {
		t.Fatalf("got %q", out)
	}
}

func TestArityMismatch(t *testing.T) {
	re := mustFail(t, "fun f(a) {}\nf(1, 2);")
	if re.Message != "Expected 1 arguments but got 2." {
		t.Fatalf("got %q", re.Message)
	}
}

func TestCallingNonCallable(t *testing.T) {
	re := mustFail(t, `"not a function"();`)
	if re.Message != "Can only call functions and classes." {
		t.Fatalf("got %q", re.Message)
	}
}

func TestClassFieldsAndMethods(t *testing.T) {
	out := mustRun(t, `
class Point {
  init(x, y) {
    this.x = x;
    this.y = y;
  }
  sum() { return this.x + this.y; }
}
var p = Point(3, 4);
print p.sum();
p.x = 10;
print p.sum();
`)
	if out != "7\n14\n" {
		t.Fatalf("got %q", out)
	}
}

func TestFieldsShadowMethods(t *testing.T) {
	out := mustRun(t, `
class A {
  name() { return "method"; }
}
var a = A();
a.name = "field";
print a.name;
`)
	if out != "field\n" {
		t.Fatalf("got %q", out)
	}
}

func TestBoundMethodRemembersReceiver(t *testing.T) {
	out := mustRun(t, `
class Greeter {
  init(who) { this.who = who; }
  greet() { print this.who; }
}
var m = Greeter("world").greet;
m();
`)
	if out != "world\n" {
		t.Fatalf("got %q", out)
	}
}

func TestInitializerReturnsThisEvenOnBareReturn(t *testing.T) {
	out := mustRun(t, `
class A {
  init() {
    this.x = 1;
    return;
  }
}
var a = A();
print a.x;
print a.init() == a;
`)
	if out != "1\ntrue\n" {
		t.Fatalf("got %q", out)
	}
}

func TestInheritanceAndSuper(t *testing.T) {
	out := mustRun(t, `
class A {
  method() { print "A"; }
}
class B < A {
  method() {
    super.method();
    print "B";
  }
}
B().method();
`)
	if out != "A\nB\n" {
		t.Fatalf("got %q", out)
	}
}

func TestSuperSkipsReceiverClass(t *testing.T) {
	out := mustRun(t, `
class A { method() { print "A"; } }
class B < A { method() { print "B"; } test() { super.method(); } }
class C < B {}
C().test();
`)
	if out != "A\n" {
		t.Fatalf("got %q", out)
	}
}

func TestSuperclassMustBeClass(t *testing.T) {
	re := mustFail(t, "var NotAClass = 1;\nclass A < NotAClass {}")
	if re.Message != "Superclass must be a class." {
		t.Fatalf("got %q", re.Message)
	}
}

func TestPropertyAccessOnNonInstance(t *testing.T) {
	re := mustFail(t, "var x = 1;\nx.field;")
	if re.Message != "Only instances have properties." {
		t.Fatalf("got %q", re.Message)
	}
}

func TestPropertyAssignmentOnNonInstance(t *testing.T) {
	re := mustFail(t, "var x = 1;\nx.field = 2;")
	if re.Message != "Only instances have fields." {
		t.Fatalf("got %q", re.Message)
	}
}

func TestUndefinedProperty(t *testing.T) {
	re := mustFail(t, "class A {}\nA().missing;")
	if re.Message != "Undefined property 'missing'." {
		t.Fatalf("got %q", re.Message)
	}
}

func TestInterpretReturnsLastExpressionValue(t *testing.T) {
	_, val, err := runProgram(t, "1 + 2;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, ok := val.(runtime.NumberValue); !ok || n.Val != 3 {
		t.Fatalf("expected 3, got %#v", val)
	}
}

func TestClockIsDefined(t *testing.T) {
	_, val, err := runProgram(t, "clock();")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := val.(runtime.NumberValue); !ok {
		t.Fatalf("clock should return a number, got %#v", val)
	}
}

func TestStringify(t *testing.T) {
	cases := map[string]string{
		"print nil;":            "nil\n",
		"print true;":           "true\n",
		"print false;":          "false\n",
		`print "text";`:         "text\n",
		"fun f() {} print f;":   "<fn f>\n",
		"print clock;":          "<native fn>\n",
		"class A {} print A;":   "A\n",
		"class B {} print B();": "B instance\n",
	}
	for src, want := range cases {
		if out := mustRun(t, src); out != want {
			t.Errorf("%s printed %q, want %q", src, out, want)
		}
	}
}
