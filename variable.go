package kiwi

import (
	"fmt"
	"sync/atomic"
)

var variableCount uint64

// Variable is an externally-addressable real-valued unknown. Handles are
// shared by identity: two variables with the same name are distinct, and the
// same handle must be re-presented to the solver to address its value.
//
// The solver writes Value during UpdateVariables; Name is caller-owned.
type Variable struct {
	order uint64

	name  string
	value float64
}

// NewVariable creates a variable. The name may be empty.
func NewVariable(name string) *Variable {
	return &Variable{order: atomic.AddUint64(&variableCount, 1), name: name}
}

func (v *Variable) Name() string { return v.name }

// SetName renames the variable and returns the prior name.
func (v *Variable) SetName(name string) string {
	old := v.name
	v.name = name
	return old
}

func (v *Variable) Value() float64 { return v.value }

func (v *Variable) String() string {
	if v.name == "" {
		return fmt.Sprintf("var%d", v.order)
	}
	return v.name
}

func (v *Variable) less(o *Variable) bool { return v.order < o.order }
