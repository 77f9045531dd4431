package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Lookup resolves a variable name to a value. Returning false signals an
// undefined variable.
type Lookup func(name string) (any, bool)

// Evaluator evaluates expression trees over float64, string, and bool
// values.
type Evaluator struct {
	lookup Lookup
}

// NewEvaluator creates an evaluator resolving variables through the given
// lookup. A nil lookup leaves all variables undefined.
func NewEvaluator(lookup Lookup) *Evaluator {
	if lookup == nil {
		lookup = func(string) (any, bool) { return nil, false }
	}
	return &Evaluator{lookup: lookup}
}

// Eval parses and evaluates the input in one step.
func (e *Evaluator) Eval(input string) (any, error) {
	expr, err := Parse(input)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return e.EvalExpression(expr)
}

// EvalExpression evaluates a parsed expression tree.
func (e *Evaluator) EvalExpression(expr Expression) (any, error) {
	switch x := expr.(type) {
	case Literal:
		return x.Value, nil
	case Variable:
		v, ok := e.lookup(x.Name)
		if !ok {
			return nil, fmt.Errorf("undefined variable %q", x.Name)
		}
		return coerce(v), nil
	case Prefix:
		return e.evalPrefix(x)
	case Binary:
		return e.evalBinary(x)
	case Call:
		return e.evalCall(x)
	default:
		return nil, fmt.Errorf("unknown expression %T", expr)
	}
}

// coerce normalizes looked-up values: numeric strings become float64 so that
// config values participate in arithmetic.
func coerce(v any) any {
	switch t := v.(type) {
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case float64, string, bool:
		if s, ok := t.(string); ok {
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f
			}
			if s == "true" || s == "false" {
				return s == "true"
			}
		}
		return t
	default:
		return fmt.Sprint(v)
	}
}

func (e *Evaluator) evalPrefix(x Prefix) (any, error) {
	v, err := e.EvalExpression(x.Operand)
	if err != nil {
		return nil, err
	}
	switch x.Operator {
	case "-":
		f, ok := v.(float64)
		if !ok {
			return nil, fmt.Errorf("cannot negate %T", v)
		}
		return -f, nil
	case "!":
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("cannot logically negate %T", v)
		}
		return !b, nil
	}
	return nil, fmt.Errorf("unknown prefix operator %q", x.Operator)
}

func (e *Evaluator) evalBinary(x Binary) (any, error) {
	// short-circuit logical operators
	if x.Operator == "&&" || x.Operator == "||" {
		return e.evalLogical(x)
	}
	left, err := e.EvalExpression(x.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.EvalExpression(x.Right)
	if err != nil {
		return nil, err
	}

	if x.Operator == "+" {
		ls, lok := left.(string)
		rs, rok := right.(string)
		if lok || rok {
			if !lok {
				ls = stringify(left)
			}
			if !rok {
				rs = stringify(right)
			}
			return ls + rs, nil
		}
	}

	switch x.Operator {
	case "==":
		return left == right, nil
	case "!=":
		return left != right, nil
	}

	lf, lok := left.(float64)
	rf, rok := right.(float64)
	if !lok || !rok {
		return nil, fmt.Errorf("operator %q needs numbers, got %T and %T", x.Operator, left, right)
	}
	switch x.Operator {
	case "+":
		return lf + rf, nil
	case "-":
		return lf - rf, nil
	case "*":
		return lf * rf, nil
	case "/":
		if rf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return lf / rf, nil
	case "%":
		if rf == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return math.Mod(lf, rf), nil
	case "<":
		return lf < rf, nil
	case "<=":
		return lf <= rf, nil
	case ">":
		return lf > rf, nil
	case ">=":
		return lf >= rf, nil
	}
	return nil, fmt.Errorf("unknown operator %q", x.Operator)
}

func (e *Evaluator) evalLogical(x Binary) (any, error) {
	left, err := e.EvalExpression(x.Left)
	if err != nil {
		return nil, err
	}
	lb, ok := left.(bool)
	if !ok {
		return nil, fmt.Errorf("operator %q needs booleans, got %T", x.Operator, left)
	}
	if x.Operator == "&&" && !lb {
		return false, nil
	}
	if x.Operator == "||" && lb {
		return true, nil
	}
	right, err := e.EvalExpression(x.Right)
	if err != nil {
		return nil, err
	}
	rb, ok := right.(bool)
	if !ok {
		return nil, fmt.Errorf("operator %q needs booleans, got %T", x.Operator, right)
	}
	return rb, nil
}

func (e *Evaluator) evalCall(x Call) (any, error) {
	if x.Name == "if" {
		if len(x.Args) != 3 {
			return nil, fmt.Errorf("if needs 3 arguments, got %d", len(x.Args))
		}
		cond, err := e.EvalExpression(x.Args[0])
		if err != nil {
			return nil, err
		}
		b, ok := cond.(bool)
		if !ok {
			return nil, fmt.Errorf("if condition must be boolean, got %T", cond)
		}
		if b {
			return e.EvalExpression(x.Args[1])
		}
		return e.EvalExpression(x.Args[2])
	}

	args := make([]any, len(x.Args))
	for i, a := range x.Args {
		v, err := e.EvalExpression(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch x.Name {
	case "min", "max":
		if len(args) == 0 {
			return nil, fmt.Errorf("%s needs at least one argument", x.Name)
		}
		best, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("%s needs numbers", x.Name)
		}
		for _, a := range args[1:] {
			f, ok := a.(float64)
			if !ok {
				return nil, fmt.Errorf("%s needs numbers", x.Name)
			}
			if (x.Name == "min" && f < best) || (x.Name == "max" && f > best) {
				best = f
			}
		}
		return best, nil
	case "abs":
		if len(args) != 1 {
			return nil, fmt.Errorf("abs needs 1 argument")
		}
		f, ok := args[0].(float64)
		if !ok {
			return nil, fmt.Errorf("abs needs a number")
		}
		return math.Abs(f), nil
	case "len":
		if len(args) != 1 {
			return nil, fmt.Errorf("len needs 1 argument")
		}
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("len needs a string")
		}
		return float64(len(s)), nil
	case "upper", "lower":
		if len(args) != 1 {
			return nil, fmt.Errorf("%s needs 1 argument", x.Name)
		}
		s, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("%s needs a string", x.Name)
		}
		if x.Name == "upper" {
			return strings.ToUpper(s), nil
		}
		return strings.ToLower(s), nil
	}
	return nil, fmt.Errorf("unknown function %q", x.Name)
}

func stringify(v any) string {
	if f, ok := v.(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return fmt.Sprint(v)
}
