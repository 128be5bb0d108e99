package kiwi

// Expression-building sugar. Go has no operator overloading, so the algebra
// is spelled out as value-returning methods; none of them mutate their
// receiver.

// T builds a term of the variable scaled by coeff.
func (v *Variable) T(coeff float64) Term { return Term{Variable: v, Coefficient: coeff} }

func (v *Variable) Add(o *Variable) Expression {
	return NewExpression(0, v.T(1), o.T(1))
}

func (v *Variable) Sub(o *Variable) Expression {
	return NewExpression(0, v.T(1), o.T(-1))
}

func (v *Variable) AddConstant(val float64) Expression {
	return NewExpression(val, v.T(1))
}

// EQ constrains the variable to a value at Required strength.
func (v *Variable) EQ(val float64) *Constraint {
	return NewConstraint(EQ, Required, NewExpression(-val, v.T(1)))
}

// GTE constrains the variable to be at least a value at Required strength.
func (v *Variable) GTE(val float64) *Constraint {
	return NewConstraint(GTE, Required, NewExpression(-val, v.T(1)))
}

// LTE constrains the variable to be at most a value at Required strength.
func (v *Variable) LTE(val float64) *Constraint {
	return NewConstraint(LTE, Required, NewExpression(-val, v.T(1)))
}

func (t Term) Negate() Term {
	t.Coefficient = -t.Coefficient
	return t
}

func (t Term) Mul(val float64) Term {
	t.Coefficient *= val
	return t
}

func (t Term) Div(val float64) Term {
	t.Coefficient /= val
	return t
}

func (e Expression) Negate() Expression {
	return e.MulConstant(-1)
}

func (e Expression) Add(o Expression) Expression {
	res := e.clone()
	res.Terms = append(res.Terms, o.Terms...)
	res.Constant += o.Constant
	return res
}

func (e Expression) Sub(o Expression) Expression {
	return e.Add(o.Negate())
}

func (e Expression) AddTerm(t Term) Expression {
	res := e.clone()
	res.Terms = append(res.Terms, t)
	return res
}

func (e Expression) SubTerm(t Term) Expression {
	return e.AddTerm(t.Negate())
}

func (e Expression) AddVariable(v *Variable) Expression {
	return e.AddTerm(v.T(1))
}

func (e Expression) SubVariable(v *Variable) Expression {
	return e.AddTerm(v.T(-1))
}

func (e Expression) AddConstant(val float64) Expression {
	e.Constant += val
	return e
}

func (e Expression) SubConstant(val float64) Expression {
	e.Constant -= val
	return e
}

func (e Expression) MulConstant(val float64) Expression {
	res := e.clone()
	res.Constant *= val
	for i := range res.Terms {
		res.Terms[i].Coefficient *= val
	}
	return res
}

func (e Expression) DivConstant(val float64) Expression {
	return e.MulConstant(1 / val)
}

// EQ constrains the expression to equal another at Required strength.
// Use WithStrength on the result for a weaker relation.
func (e Expression) EQ(rhs Expression) *Constraint {
	return NewConstraint(EQ, Required, e.Sub(rhs))
}

// GTE constrains the expression to be at least another at Required strength.
func (e Expression) GTE(rhs Expression) *Constraint {
	return NewConstraint(GTE, Required, e.Sub(rhs))
}

// LTE constrains the expression to be at most another at Required strength.
func (e Expression) LTE(rhs Expression) *Constraint {
	return NewConstraint(LTE, Required, e.Sub(rhs))
}
