package interpreter

import (
	"time"

	"lox/interpreter-go/pkg/runtime"
)

// defineNatives installs the builtin functions into the global environment.
func defineNatives(globals *runtime.Environment) {
	globals.Define("clock", runtime.NativeFunctionValue{
		Name:    "clock",
		NumArgs: 0,
		Impl: func(args []runtime.Value) (runtime.Value, error) {
			return runtime.NumberValue{Val: float64(time.Now().UnixNano()) / 1e9}, nil
		},
	})
}
