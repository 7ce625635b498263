package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
)

func (i *Interpreter) executeStatement(node ast.Statement, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.ExpressionStmt:
		return i.evaluateExpression(n.Expr, env)
	case *ast.PrintStmt:
		val, err := i.evaluateExpression(n.Expr, env)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(i.out, Stringify(val))
		return runtime.NilValue{}, nil
	case *ast.VarDecl:
		var value runtime.Value = runtime.NilValue{}
		if n.Initializer != nil {
			var err error
			value, err = i.evaluateExpression(n.Initializer, env)
			if err != nil {
				return nil, err
			}
		}
		env.Define(n.Name.Lexeme, value)
		return runtime.NilValue{}, nil
	case *ast.BlockStmt:
		if err := i.executeBlock(n.Statements, runtime.NewEnvironment(env)); err != nil {
			return nil, err
		}
		return runtime.NilValue{}, nil
	case *ast.IfStmt:
		condition, err := i.evaluateExpression(n.Condition, env)
		if err != nil {
			return nil, err
		}
		if isTruthy(condition) {
			return i.executeStatement(n.Then, env)
		}
		if n.Else != nil {
			return i.executeStatement(n.Else, env)
		}
		return runtime.NilValue{}, nil
	case *ast.WhileStmt:
		for {
			condition, err := i.evaluateExpression(n.Condition, env)
			if err != nil {
				return nil, err
			}
			if !isTruthy(condition) {
				return runtime.NilValue{}, nil
			}
			if _, err := i.executeStatement(n.Body, env); err != nil {
				return nil, err
			}
		}
	case *ast.FunctionDecl:
		// The closure is the declaring environment itself, so the function
		// observes later mutations to captured variables.
		env.Define(n.Name.Lexeme, &runtime.FunctionValue{Declaration: n, Closure: env})
		return runtime.NilValue{}, nil
	case *ast.ReturnStmt:
		var value runtime.Value = runtime.NilValue{}
		if n.Value != nil {
			var err error
			value, err = i.evaluateExpression(n.Value, env)
			if err != nil {
				return nil, err
			}
		}
		return nil, returnSignal{value: value}
	case *ast.ClassDecl:
		return i.executeClassDecl(n, env)
	default:
		return nil, fmt.Errorf("unsupported statement type: %s", n.NodeType())
	}
}

// executeBlock runs statements in the given environment; returnSignal and
// runtime errors propagate to the caller.
func (i *Interpreter) executeBlock(statements []ast.Statement, env *runtime.Environment) error {
	for _, stmt := range statements {
		if _, err := i.executeStatement(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interpreter) executeClassDecl(n *ast.ClassDecl, env *runtime.Environment) (runtime.Value, error) {
	var superclass *runtime.ClassValue
	if n.Superclass != nil {
		val, err := i.evaluateExpression(n.Superclass, env)
		if err != nil {
			return nil, err
		}
		sc, ok := val.(*runtime.ClassValue)
		if !ok {
			return nil, runtimeErrorf(n.Superclass.Name, "Superclass must be a class.")
		}
		superclass = sc
	}

	// Two-step binding lets methods refer to the class by name.
	env.Define(n.Name.Lexeme, runtime.NilValue{})

	methodEnv := env
	if superclass != nil {
		methodEnv = runtime.NewEnvironment(env)
		methodEnv.Define("super", superclass)
	}

	methods := make(map[string]*runtime.FunctionValue, len(n.Methods))
	for _, method := range n.Methods {
		methods[method.Name.Lexeme] = &runtime.FunctionValue{
			Declaration:   method,
			Closure:       methodEnv,
			IsInitializer: method.Name.Lexeme == "init",
		}
	}

	class := &runtime.ClassValue{Name: n.Name.Lexeme, Superclass: superclass, Methods: methods}
	if err := env.Assign(n.Name.Lexeme, class); err != nil {
		return nil, err
	}
	return runtime.NilValue{}, nil
}
