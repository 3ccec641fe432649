package funcs

import (
	"fmt"
	"os"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// Env returns the "env" function. It takes a variable name and an optional
// default and evaluates to the variable value, the default when the
// variable is not set, or an empty string.
func Env() function.Function {
	spec := function.Spec{
		Description: "Returns the value of an environment variable",
		Params: []function.Parameter{
			{
				Name:        "name",
				Description: "name of the environment variable",
				Type:        cty.String,
			},
		},
		VarParam: &function.Parameter{
			Name:        "default",
			Description: "value used when the variable is not set",
			Type:        cty.String,
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			if len(args) > 2 {
				return cty.NilVal, fmt.Errorf("expected at most 2 arguments, got %d", len(args))
			}
			if v, ok := os.LookupEnv(args[0].AsString()); ok {
				return cty.StringVal(v), nil
			}
			if len(args) == 2 {
				return args[1], nil
			}
			return cty.StringVal(""), nil
		},
	}
	return function.New(&spec)
}
