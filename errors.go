package kiwi

import (
	"errors"
	"fmt"
)

// ErrBadRequiredStrength is returned when an edit variable is registered at
// the Required strength.
var ErrBadRequiredStrength = errors.New("a required strength cannot be used in this context")

// UnsatisfiableConstraintError reports a required constraint the tableau
// cannot accommodate.
type UnsatisfiableConstraintError struct {
	Constraint *Constraint
}

func (e UnsatisfiableConstraintError) Error() string {
	return fmt.Sprintf("the constraint %v cannot be satisfied", e.Constraint)
}

// UnknownConstraintError reports removal or lookup of a constraint that was
// never added.
type UnknownConstraintError struct {
	Constraint *Constraint
}

func (e UnknownConstraintError) Error() string {
	return fmt.Sprintf("the constraint %v has not been added to the solver", e.Constraint)
}

// DuplicateConstraintError reports a constraint identity that is already
// registered.
type DuplicateConstraintError struct {
	Constraint *Constraint
}

func (e DuplicateConstraintError) Error() string {
	return fmt.Sprintf("the constraint %v has already been added to the solver", e.Constraint)
}

// UnknownEditVariableError reports an edit operation on a variable that was
// never registered as editable.
type UnknownEditVariableError struct {
	Variable *Variable
}

func (e UnknownEditVariableError) Error() string {
	return fmt.Sprintf("the edit variable %v has not been added to the solver", e.Variable)
}

// DuplicateEditVariableError reports a variable that is already registered
// as editable.
type DuplicateEditVariableError struct {
	Variable *Variable
}

func (e DuplicateEditVariableError) Error() string {
	return fmt.Sprintf("the edit variable %v has already been added to the solver", e.Variable)
}

// InternalSolverError reports an invariant violation reached during
// pivoting.
type InternalSolverError struct {
	Msg string
}

func (e InternalSolverError) Error() string { return e.Msg }
