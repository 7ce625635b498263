package runtime

import (
	"fmt"

	"lox/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindNativeFunction
	KindClass
	KindInstance
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindFunction:
		return "function"
	case KindNativeFunction:
		return "native_function"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind { return KindBool }

// NumberValue is Lox's sole numeric type: a double-precision float.
type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind { return KindNumber }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Functions & closures
//-----------------------------------------------------------------------------

// FunctionValue pairs a declaration with the environment it closed over.
// Closures observe later mutations to captured variables because the
// environment is shared, not snapshotted.
type FunctionValue struct {
	Declaration   *ast.FunctionDecl
	Closure       *Environment
	IsInitializer bool
}

func (v *FunctionValue) Kind() Kind { return KindFunction }

// Arity reports the declared parameter count.
func (v *FunctionValue) Arity() int {
	return len(v.Declaration.Params)
}

// Bind returns a copy of the function whose closure has `this` bound to the
// given instance, capturing the receiver at the moment of lookup.
func (v *FunctionValue) Bind(instance *InstanceValue) *FunctionValue {
	env := NewEnvironment(v.Closure)
	env.Define("this", instance)
	return &FunctionValue{Declaration: v.Declaration, Closure: env, IsInitializer: v.IsInitializer}
}

type NativeFunc func(args []Value) (Value, error)

type NativeFunctionValue struct {
	Name    string
	NumArgs int
	Impl    NativeFunc
}

func (v NativeFunctionValue) Kind() Kind { return KindNativeFunction }

func (v NativeFunctionValue) Arity() int { return v.NumArgs }

//-----------------------------------------------------------------------------
// Classes & instances
//-----------------------------------------------------------------------------

type ClassValue struct {
	Name       string
	Superclass *ClassValue
	Methods    map[string]*FunctionValue
}

func (v *ClassValue) Kind() Kind { return KindClass }

// FindMethod walks the inheritance chain from the most-derived class out.
func (v *ClassValue) FindMethod(name string) *FunctionValue {
	if method, ok := v.Methods[name]; ok {
		return method
	}
	if v.Superclass != nil {
		return v.Superclass.FindMethod(name)
	}
	return nil
}

// Arity of a class call is the arity of its initializer, zero without one.
func (v *ClassValue) Arity() int {
	if init := v.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// InstanceValue holds per-object state. Fields shadow methods on lookup.
type InstanceValue struct {
	Class  *ClassValue
	Fields map[string]Value
}

func NewInstance(class *ClassValue) *InstanceValue {
	return &InstanceValue{Class: class, Fields: make(map[string]Value)}
}

func (v *InstanceValue) Kind() Kind { return KindInstance }
