package kiwi

import (
	"fmt"
	"sync/atomic"
)

type Op uint8

const (
	EQ Op = iota
	GTE
	LTE
)

var OpTable = [...]string{
	EQ:  "==",
	GTE: ">=",
	LTE: "<=",
}

func (o Op) String() string { return OpTable[o] }

var constraintCount uint64

// Constraint relates a reduced expression to zero under an operator, with a
// strength. Constraints are compared by identity: re-presenting the same
// handle addresses the same tableau entry, while two constraints built from
// identical inputs remain distinct.
type Constraint struct {
	order uint64

	expression Expression
	op         Op
	strength   Priority
}

// NewConstraint builds a constraint from a raw expression. The expression is
// reduced (terms combined per variable, zero coefficients dropped) and the
// strength is clipped to [0, Required].
func NewConstraint(op Op, strength Priority, expr Expression) *Constraint {
	return &Constraint{
		order:      atomic.AddUint64(&constraintCount, 1),
		expression: reduce(expr),
		op:         op,
		strength:   Clip(strength),
	}
}

// WithStrength derives a constraint with the same expression and operator
// but a re-clipped strength. The result is a distinct identity.
func (c *Constraint) WithStrength(strength Priority) *Constraint {
	return &Constraint{
		order:      atomic.AddUint64(&constraintCount, 1),
		expression: c.expression,
		op:         c.op,
		strength:   Clip(strength),
	}
}

func (c *Constraint) Expression() Expression { return c.expression }
func (c *Constraint) Op() Op                 { return c.op }
func (c *Constraint) Strength() Priority     { return c.strength }

func (c *Constraint) String() string {
	return fmt.Sprintf("%v %v 0 | strength = %v", c.expression, c.op, float64(c.strength))
}

func (c *Constraint) less(o *Constraint) bool { return c.order < o.order }

// reduce concatenates terms involving the same variable and drops zero
// coefficients. The ordered map keeps the result deterministic.
func reduce(expr Expression) Expression {
	var merged assocMap[*Variable, float64]
	for _, t := range expr.Terms {
		if ref := merged.ref(t.Variable); ref != nil {
			*ref += t.Coefficient
		} else {
			merged.insert(t.Variable, t.Coefficient)
		}
	}
	terms := make([]Term, 0, merged.len())
	for _, e := range merged.entries {
		if e.value == 0 {
			continue
		}
		terms = append(terms, Term{Variable: e.key, Coefficient: e.value})
	}
	return Expression{Terms: terms, Constant: expr.Constant}
}
