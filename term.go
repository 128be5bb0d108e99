package kiwi

import "fmt"

// Term is a variable with a multiplicative coefficient.
type Term struct {
	Variable    *Variable
	Coefficient float64
}

func NewTerm(variable *Variable, coefficient float64) Term {
	return Term{Variable: variable, Coefficient: coefficient}
}

// Value computes the product of the coefficient and the variable value.
func (t Term) Value() float64 {
	return t.Coefficient * t.Variable.Value()
}

func (t Term) String() string {
	return fmt.Sprintf("%v * %v", t.Coefficient, t.Variable)
}
