package interpreter

import (
	"fmt"
	"io"
	"os"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

// Interpreter executes resolved Lox statements against a chain of
// environments rooted at one global scope. Resolution distances arrive
// through Resolve ahead of execution, keyed by node identity.
type Interpreter struct {
	globals *runtime.Environment
	locals  map[ast.Expression]int
	out     io.Writer
}

// New returns an interpreter with the native builtins installed in a fresh
// global environment. Output defaults to stdout.
func New() *Interpreter {
	i := &Interpreter{
		globals: runtime.NewEnvironment(nil),
		locals:  make(map[ast.Expression]int),
		out:     os.Stdout,
	}
	defineNatives(i.globals)
	return i
}

// Globals returns the interpreter's global environment.
func (i *Interpreter) Globals() *runtime.Environment {
	return i.globals
}

// SetOutput redirects `print` output.
func (i *Interpreter) SetOutput(w io.Writer) {
	i.out = w
}

// Resolve records the scope distance for a variable reference. It implements
// resolver.Bindings; distances accumulate across calls, which is what lets a
// REPL session resolve each line separately.
func (i *Interpreter) Resolve(expr ast.Expression, depth int) {
	i.locals[expr] = depth
}

// Interpret executes top-level statements in order and returns the value of
// the last one (nil value for declarations and other non-expression
// statements). A runtime error terminates the run immediately.
func (i *Interpreter) Interpret(statements []ast.Statement) (runtime.Value, error) {
	var last runtime.Value = runtime.NilValue{}
	for _, stmt := range statements {
		val, err := i.executeStatement(stmt, i.globals)
		if err != nil {
			if _, ok := err.(returnSignal); ok {
				// The resolver rejects top-level returns; this guards
				// against unresolved statement lists.
				return nil, fmt.Errorf("return outside function")
			}
			return nil, err
		}
		last = val
	}
	return last, nil
}

// RuntimeError is fatal to the current execution and carries the offending
// token for its source line.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func runtimeErrorf(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// returnSignal unwinds exactly to the nearest enclosing call boundary. It is
// threaded through the error return so no caller between the `return` and
// its function can observe it.
type returnSignal struct {
	value runtime.Value
}

func (returnSignal) Error() string { return "return" }

// isTruthy: only nil and false are falsy; 0 and "" are truthy.
func isTruthy(val runtime.Value) bool {
	switch v := val.(type) {
	case runtime.BoolValue:
		return v.Val
	case runtime.NilValue:
		return false
	default:
		return true
	}
}

// isEqual compares nil/boolean/number/string by value and callables,
// classes, and instances by identity. No coercion between types.
func isEqual(a, b runtime.Value) bool {
	switch av := a.(type) {
	case runtime.NilValue:
		_, ok := b.(runtime.NilValue)
		return ok
	case runtime.BoolValue:
		bv, ok := b.(runtime.BoolValue)
		return ok && av.Val == bv.Val
	case runtime.NumberValue:
		bv, ok := b.(runtime.NumberValue)
		return ok && av.Val == bv.Val
	case runtime.StringValue:
		bv, ok := b.(runtime.StringValue)
		return ok && av.Val == bv.Val
	case *runtime.FunctionValue:
		bv, ok := b.(*runtime.FunctionValue)
		return ok && av == bv
	case runtime.NativeFunctionValue:
		// Natives are singletons keyed by name.
		bv, ok := b.(runtime.NativeFunctionValue)
		return ok && av.Name == bv.Name
	case *runtime.ClassValue:
		bv, ok := b.(*runtime.ClassValue)
		return ok && av == bv
	case *runtime.InstanceValue:
		bv, ok := b.(*runtime.InstanceValue)
		return ok && av == bv
	default:
		return false
	}
}
