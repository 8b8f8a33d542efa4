// This file maps HCL type expressions (e.g. `number`, `list(int)`) onto
// parameter type tags.

package manifest

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/nodegrid/internal/param"
)

// typeFromExpr converts a port's type expression into its tag.
func typeFromExpr(expr hcl.Expression) (param.Type, error) {
	if expr == nil {
		return param.Invalid, fmt.Errorf("missing type")
	}

	if keyword := hcl.ExprAsKeyword(expr); keyword != "" {
		t, err := param.ParseType(keyword)
		if err != nil {
			return param.Invalid, fmt.Errorf("%s: %w", expr.Range(), err)
		}
		return t, nil
	}

	call, diags := hcl.ExprCall(expr)
	if diags.HasErrors() {
		return param.Invalid, fmt.Errorf("%s: type must be a keyword like number or a constructor like list(number)", expr.Range())
	}
	if call.Name != "list" {
		return param.Invalid, fmt.Errorf("%s: unknown type constructor %q", expr.Range(), call.Name)
	}
	if len(call.Arguments) != 1 {
		return param.Invalid, fmt.Errorf("%s: list() requires exactly one argument, got %d", expr.Range(), len(call.Arguments))
	}

	switch elem := hcl.ExprAsKeyword(call.Arguments[0]); elem {
	case "number":
		return param.FloatArray, nil
	case "int":
		return param.IntArray, nil
	default:
		return param.Invalid, fmt.Errorf("%s: unsupported list element type %q", expr.Range(), elem)
	}
}
