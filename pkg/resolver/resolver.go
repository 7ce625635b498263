package resolver

import (
	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/diagnostic"
	"lox/interpreter-go/pkg/token"
)

// Bindings receives the scope distance computed for each resolved variable
// reference, keyed by node identity. The interpreter implements this.
type Bindings interface {
	Resolve(expr ast.Expression, depth int)
}

type functionType int

const (
	functionNone functionType = iota
	functionFunction
	functionInitializer
	functionMethod
)

type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver performs the single static pass between parsing and evaluation:
// it computes, for every variable reference, how many scopes out its binding
// lives, and enforces the scoping legality rules. Semantic errors accumulate;
// any nonzero count blocks execution.
type Resolver struct {
	bindings Bindings
	// scopes maps name to "initializer finished" for each nested scope. The
	// outermost entry tracks top-level declarations seen by this pass, so
	// self-referencing initializers are caught at any scope; names not found
	// in any scope fall back to global lookup at run time.
	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
	diagnostics     []diagnostic.Diagnostic
}

// New returns a resolver reporting scope distances into bindings.
func New(bindings Bindings) *Resolver {
	return &Resolver{bindings: bindings}
}

// Resolve analyzes a statement list and returns all semantic diagnostics.
func (r *Resolver) Resolve(statements []ast.Statement) []diagnostic.Diagnostic {
	r.beginScope()
	r.resolveStatements(statements)
	r.endScope()
	return r.diagnostics
}

func (r *Resolver) resolveStatements(statements []ast.Statement) {
	for _, stmt := range statements {
		r.resolveStatement(stmt)
	}
}

func (r *Resolver) resolveStatement(node ast.Statement) {
	switch n := node.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStatements(n.Statements)
		r.endScope()
	case *ast.VarDecl:
		// Declared-but-undefined until the initializer resolves, so a
		// self-referencing initializer is caught statically.
		r.declare(n.Name)
		if n.Initializer != nil {
			r.resolveExpression(n.Initializer)
		}
		r.define(n.Name)
	case *ast.FunctionDecl:
		r.declare(n.Name)
		r.define(n.Name)
		r.resolveFunction(n, functionFunction)
	case *ast.ClassDecl:
		r.resolveClass(n)
	case *ast.ExpressionStmt:
		r.resolveExpression(n.Expr)
	case *ast.PrintStmt:
		r.resolveExpression(n.Expr)
	case *ast.IfStmt:
		r.resolveExpression(n.Condition)
		r.resolveStatement(n.Then)
		if n.Else != nil {
			r.resolveStatement(n.Else)
		}
	case *ast.WhileStmt:
		r.resolveExpression(n.Condition)
		r.resolveStatement(n.Body)
	case *ast.ReturnStmt:
		if r.currentFunction == functionNone {
			r.errorAt(n.Keyword, "Can't return from top-level code.")
		}
		if n.Value != nil {
			if r.currentFunction == functionInitializer {
				r.errorAt(n.Keyword, "Can't return a value from an initializer.")
			}
			r.resolveExpression(n.Value)
		}
	}
}

func (r *Resolver) resolveExpression(node ast.Expression) {
	switch n := node.(type) {
	case *ast.Literal:
	case *ast.Grouping:
		r.resolveExpression(n.Expr)
	case *ast.Unary:
		r.resolveExpression(n.Right)
	case *ast.Binary:
		r.resolveExpression(n.Left)
		r.resolveExpression(n.Right)
	case *ast.Logical:
		r.resolveExpression(n.Left)
		r.resolveExpression(n.Right)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.peekScope()[n.Name.Lexeme]; ok && !defined {
				r.errorAt(n.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(n, n.Name)
	case *ast.Assign:
		r.resolveExpression(n.Value)
		r.resolveLocal(n, n.Name)
	case *ast.Call:
		r.resolveExpression(n.Callee)
		for _, arg := range n.Arguments {
			r.resolveExpression(arg)
		}
	case *ast.Get:
		// Property names are resolved dynamically; only the object matters.
		r.resolveExpression(n.Object)
	case *ast.Set:
		r.resolveExpression(n.Value)
		r.resolveExpression(n.Object)
	case *ast.This:
		if r.currentClass == classNone {
			r.errorAt(n.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(n, n.Keyword)
	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.errorAt(n.Keyword, "Can't use 'super' outside of a class.")
		case classClass:
			r.errorAt(n.Keyword, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(n, n.Keyword)
	}
}

func (r *Resolver) resolveClass(n *ast.ClassDecl) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(n.Name)
	r.define(n.Name)

	if n.Superclass != nil {
		if n.Superclass.Name.Lexeme == n.Name.Lexeme {
			r.errorAt(n.Superclass.Name, "A class can't inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpression(n.Superclass)

		r.beginScope()
		r.peekScope()["super"] = true
	}

	r.beginScope()
	r.peekScope()["this"] = true

	for _, method := range n.Methods {
		declaration := functionMethod
		if method.Name.Lexeme == "init" {
			declaration = functionInitializer
		}
		r.resolveFunction(method, declaration)
	}

	r.endScope()
	if n.Superclass != nil {
		r.endScope()
	}
	r.currentClass = enclosingClass
}

func (r *Resolver) resolveFunction(fn *ast.FunctionDecl, kind functionType) {
	enclosing := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStatements(fn.Body)
	r.endScope()

	r.currentFunction = enclosing
}

// resolveLocal records the number of scopes between a reference and its
// binding. No match means the name is assumed global and resolved directly
// against the global environment at run time.
func (r *Resolver) resolveLocal(expr ast.Expression, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.bindings.Resolve(expr, len(r.scopes)-1-i)
			return
		}
	}
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) peekScope() map[string]bool {
	return r.scopes[len(r.scopes)-1]
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.peekScope()[name.Lexeme] = true
}

func (r *Resolver) errorAt(tok token.Token, message string) {
	r.diagnostics = append(r.diagnostics, diagnostic.AtToken(tok, message))
}
