package kiwi

import (
	"fmt"
	"strings"
)

// Expression is a sum of terms plus a constant. A raw expression may mention
// the same variable in several terms; constraints reduce it on construction.
type Expression struct {
	Terms    []Term
	Constant float64
}

func NewExpression(constant float64, terms ...Term) Expression {
	return Expression{Terms: terms, Constant: constant}
}

func NewExpressionFromConstant(constant float64) Expression {
	return Expression{Constant: constant}
}

func NewExpressionFromTerm(term Term) Expression {
	return Expression{Terms: []Term{term}}
}

// Value computes the expression value against the variables' current values.
func (e Expression) Value() float64 {
	value := e.Constant
	for _, t := range e.Terms {
		value += t.Value()
	}
	return value
}

func (e Expression) clone() Expression {
	res := Expression{Terms: make([]Term, len(e.Terms)), Constant: e.Constant}
	copy(res.Terms, e.Terms)
	return res
}

func (e Expression) String() string {
	var sb strings.Builder
	for _, t := range e.Terms {
		fmt.Fprintf(&sb, "%v + ", t)
	}
	fmt.Fprintf(&sb, "%v", e.Constant)
	return sb.String()
}
