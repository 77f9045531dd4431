// Package parser implements a small top-down operator-precedence expression
// parser and evaluator. It backs the eval: values of the config package but
// is usable on its own.
package parser

import (
	"fmt"
	"strings"
)

// Expression is a parsed expression tree node.
type Expression interface {
	fmt.Stringer
}

// Literal is a constant value: a float64, string, or bool.
type Literal struct {
	Value any
}

func (l Literal) String() string { return fmt.Sprint(l.Value) }

// Variable references a named value resolved at evaluation time.
type Variable struct {
	Name string
}

func (v Variable) String() string { return v.Name }

// Prefix is a unary operator application.
type Prefix struct {
	Operator string
	Operand  Expression
}

func (p Prefix) String() string { return p.Operator + p.Operand.String() }

// Binary is a binary operator application.
type Binary struct {
	Operator    string
	Left, Right Expression
}

func (b Binary) String() string {
	return "(" + b.Left.String() + " " + b.Operator + " " + b.Right.String() + ")"
}

// Call is a builtin function invocation.
type Call struct {
	Name string
	Args []Expression
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}
