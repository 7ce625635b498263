package interpreter

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
	"lox/interpreter-go/pkg/runtime"
	"lox/interpreter-go/pkg/token"
)

func (i *Interpreter) evaluateExpression(node ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return literalValue(n)
	case *ast.Grouping:
		return i.evaluateExpression(n.Expr, env)
	case *ast.Unary:
		return i.evaluateUnary(n, env)
	case *ast.Binary:
		return i.evaluateBinary(n, env)
	case *ast.Logical:
		return i.evaluateLogical(n, env)
	case *ast.Variable:
		return i.lookUpVariable(n.Name, n, env)
	case *ast.Assign:
		return i.evaluateAssign(n, env)
	case *ast.Call:
		return i.evaluateCall(n, env)
	case *ast.Get:
		return i.evaluateGet(n, env)
	case *ast.Set:
		return i.evaluateSet(n, env)
	case *ast.This:
		return i.lookUpVariable(n.Keyword, n, env)
	case *ast.Super:
		return i.evaluateSuper(n, env)
	default:
		return nil, fmt.Errorf("unsupported expression type: %s", n.NodeType())
	}
}

func literalValue(n *ast.Literal) (runtime.Value, error) {
	switch v := n.Value.(type) {
	case nil:
		return runtime.NilValue{}, nil
	case bool:
		return runtime.BoolValue{Val: v}, nil
	case float64:
		return runtime.NumberValue{Val: v}, nil
	case string:
		return runtime.StringValue{Val: v}, nil
	default:
		return nil, fmt.Errorf("unsupported literal value %T", v)
	}
}

func (i *Interpreter) evaluateUnary(n *ast.Unary, env *runtime.Environment) (runtime.Value, error) {
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Kind {
	case token.Bang:
		return runtime.BoolValue{Val: !isTruthy(right)}, nil
	case token.Minus:
		num, ok := right.(runtime.NumberValue)
		if !ok {
			return nil, runtimeErrorf(n.Operator, "Operand must be a number.")
		}
		return runtime.NumberValue{Val: -num.Val}, nil
	default:
		return nil, fmt.Errorf("unsupported unary operator %s", n.Operator.Kind)
	}
}

func (i *Interpreter) evaluateBinary(n *ast.Binary, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluateExpression(n.Right, env)
	if err != nil {
		return nil, err
	}

	switch n.Operator.Kind {
	case token.EqualEqual:
		return runtime.BoolValue{Val: isEqual(left, right)}, nil
	case token.BangEqual:
		return runtime.BoolValue{Val: !isEqual(left, right)}, nil
	case token.Plus:
		switch l := left.(type) {
		case runtime.NumberValue:
			if r, ok := right.(runtime.NumberValue); ok {
				return runtime.NumberValue{Val: l.Val + r.Val}, nil
			}
		case runtime.StringValue:
			if r, ok := right.(runtime.StringValue); ok {
				return runtime.StringValue{Val: l.Val + r.Val}, nil
			}
		}
		return nil, runtimeErrorf(n.Operator, "Operands must be two numbers or two strings.")
	}

	l, lok := left.(runtime.NumberValue)
	r, rok := right.(runtime.NumberValue)
	if !lok || !rok {
		return nil, runtimeErrorf(n.Operator, "Operands must be numbers.")
	}

	switch n.Operator.Kind {
	case token.Minus:
		return runtime.NumberValue{Val: l.Val - r.Val}, nil
	case token.Star:
		return runtime.NumberValue{Val: l.Val * r.Val}, nil
	case token.Slash:
		// Ordinary IEEE division; divide-by-zero yields an infinity.
		return runtime.NumberValue{Val: l.Val / r.Val}, nil
	case token.Greater:
		return runtime.BoolValue{Val: l.Val > r.Val}, nil
	case token.GreaterEqual:
		return runtime.BoolValue{Val: l.Val >= r.Val}, nil
	case token.Less:
		return runtime.BoolValue{Val: l.Val < r.Val}, nil
	case token.LessEqual:
		return runtime.BoolValue{Val: l.Val <= r.Val}, nil
	default:
		return nil, fmt.Errorf("unsupported binary operator %s", n.Operator.Kind)
	}
}

func (i *Interpreter) evaluateLogical(n *ast.Logical, env *runtime.Environment) (runtime.Value, error) {
	left, err := i.evaluateExpression(n.Left, env)
	if err != nil {
		return nil, err
	}

	// Short-circuit: the left value itself is the result when it decides.
	if n.Operator.Kind == token.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return i.evaluateExpression(n.Right, env)
}

func (i *Interpreter) evaluateAssign(n *ast.Assign, env *runtime.Environment) (runtime.Value, error) {
	value, err := i.evaluateExpression(n.Value, env)
	if err != nil {
		return nil, err
	}

	if depth, ok := i.locals[n]; ok {
		if err := env.AssignAt(depth, n.Name.Lexeme, value); err != nil {
			return nil, runtimeErrorf(n.Name, "Undefined variable '%s'.", n.Name.Lexeme)
		}
	} else if err := i.globals.Assign(n.Name.Lexeme, value); err != nil {
		return nil, runtimeErrorf(n.Name, "Undefined variable '%s'.", n.Name.Lexeme)
	}
	return value, nil
}

func (i *Interpreter) evaluateCall(n *ast.Call, env *runtime.Environment) (runtime.Value, error) {
	callee, err := i.evaluateExpression(n.Callee, env)
	if err != nil {
		return nil, err
	}

	args := make([]runtime.Value, 0, len(n.Arguments))
	for _, argExpr := range n.Arguments {
		arg, err := i.evaluateExpression(argExpr, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	switch fn := callee.(type) {
	case *runtime.FunctionValue:
		if len(args) != fn.Arity() {
			return nil, runtimeErrorf(n.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
		}
		return i.callFunction(fn, args)
	case runtime.NativeFunctionValue:
		if len(args) != fn.Arity() {
			return nil, runtimeErrorf(n.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
		}
		result, err := fn.Impl(args)
		if err != nil {
			return nil, runtimeErrorf(n.Paren, "%s", err.Error())
		}
		return result, nil
	case *runtime.ClassValue:
		if len(args) != fn.Arity() {
			return nil, runtimeErrorf(n.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
		}
		return i.instantiate(fn, args)
	default:
		return nil, runtimeErrorf(n.Paren, "Can only call functions and classes.")
	}
}

// callFunction runs a function body in a fresh child of its closure and
// converts the return signal back into an ordinary value at this boundary.
func (i *Interpreter) callFunction(fn *runtime.FunctionValue, args []runtime.Value) (runtime.Value, error) {
	env := runtime.NewEnvironment(fn.Closure)
	for idx, param := range fn.Declaration.Params {
		env.Define(param.Lexeme, args[idx])
	}

	if err := i.executeBlock(fn.Declaration.Body, env); err != nil {
		ret, ok := err.(returnSignal)
		if !ok {
			return nil, err
		}
		if fn.IsInitializer {
			return fn.Closure.GetAt(0, "this")
		}
		return ret.value, nil
	}
	if fn.IsInitializer {
		return fn.Closure.GetAt(0, "this")
	}
	return runtime.NilValue{}, nil
}

// instantiate creates a fresh instance and runs `init` bound to it when the
// class chain defines one; the instance is the call's result regardless of
// what `init` returns.
func (i *Interpreter) instantiate(class *runtime.ClassValue, args []runtime.Value) (runtime.Value, error) {
	instance := runtime.NewInstance(class)
	if init := class.FindMethod("init"); init != nil {
		if _, err := i.callFunction(init.Bind(instance), args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (i *Interpreter) evaluateGet(n *ast.Get, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(n.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, runtimeErrorf(n.Name, "Only instances have properties.")
	}

	// Fields shadow methods; the most-derived class's method wins.
	if field, ok := instance.Fields[n.Name.Lexeme]; ok {
		return field, nil
	}
	if method := instance.Class.FindMethod(n.Name.Lexeme); method != nil {
		return method.Bind(instance), nil
	}
	return nil, runtimeErrorf(n.Name, "Undefined property '%s'.", n.Name.Lexeme)
}

func (i *Interpreter) evaluateSet(n *ast.Set, env *runtime.Environment) (runtime.Value, error) {
	object, err := i.evaluateExpression(n.Object, env)
	if err != nil {
		return nil, err
	}
	instance, ok := object.(*runtime.InstanceValue)
	if !ok {
		return nil, runtimeErrorf(n.Name, "Only instances have fields.")
	}

	value, err := i.evaluateExpression(n.Value, env)
	if err != nil {
		return nil, err
	}
	instance.Fields[n.Name.Lexeme] = value
	return value, nil
}

func (i *Interpreter) evaluateSuper(n *ast.Super, env *runtime.Environment) (runtime.Value, error) {
	// The resolver bound `super` at the class-definition scope and `this`
	// one scope inside it.
	depth := i.locals[n]
	superVal, err := env.GetAt(depth, "super")
	if err != nil {
		return nil, runtimeErrorf(n.Keyword, "%s", err.Error())
	}
	superclass := superVal.(*runtime.ClassValue)

	thisVal, err := env.GetAt(depth-1, "this")
	if err != nil {
		return nil, runtimeErrorf(n.Keyword, "%s", err.Error())
	}
	instance := thisVal.(*runtime.InstanceValue)

	method := superclass.FindMethod(n.Method.Lexeme)
	if method == nil {
		return nil, runtimeErrorf(n.Method, "Undefined property '%s'.", n.Method.Lexeme)
	}
	return method.Bind(instance), nil
}

// lookUpVariable reads through the resolved distance when one was recorded;
// unresolved references go straight to the global environment.
func (i *Interpreter) lookUpVariable(name token.Token, expr ast.Expression, env *runtime.Environment) (runtime.Value, error) {
	if depth, ok := i.locals[expr]; ok {
		val, err := env.GetAt(depth, name.Lexeme)
		if err != nil {
			return nil, runtimeErrorf(name, "Undefined variable '%s'.", name.Lexeme)
		}
		return val, nil
	}
	val, err := i.globals.Get(name.Lexeme)
	if err != nil {
		return nil, runtimeErrorf(name, "Undefined variable '%s'.", name.Lexeme)
	}
	return val, nil
}
