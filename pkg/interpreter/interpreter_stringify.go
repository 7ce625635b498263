package interpreter

import (
	"fmt"
	"math"
	"strconv"

	"lox/interpreter-go/pkg/runtime"
)

// Stringify renders a value the way `print` does: integral numbers drop the
// fractional part, nil prints as the literal, booleans as their words.
func Stringify(val runtime.Value) string {
	switch v := val.(type) {
	case runtime.NilValue:
		return "nil"
	case runtime.BoolValue:
		if v.Val {
			return "true"
		}
		return "false"
	case runtime.NumberValue:
		return formatNumber(v.Val)
	case runtime.StringValue:
		return v.Val
	case *runtime.FunctionValue:
		return fmt.Sprintf("<fn %s>", v.Declaration.Name.Lexeme)
	case runtime.NativeFunctionValue:
		return "<native fn>"
	case *runtime.ClassValue:
		return v.Name
	case *runtime.InstanceValue:
		return v.Class.Name + " instance"
	default:
		return fmt.Sprintf("[%s]", v.Kind())
	}
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && !math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
