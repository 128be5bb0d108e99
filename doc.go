// Package kiwi is an incremental linear constraint solver implementing the
// Cassowary algorithm.
//
// The solver maintains the simultaneous satisfaction of a collection of
// weighted linear equality and inequality constraints over real-valued
// variables, minimizing a weighted sum of constraint violations. It is built
// for interactive use: constraints and edit variables are added and removed
// repeatedly, values are suggested, and solutions are recomputed
// incrementally rather than from scratch.
//
//	left := kiwi.NewVariable("left")
//	width := kiwi.NewVariable("width")
//
//	s := kiwi.NewSolver()
//	s.AddConstraint(width.GTE(100))
//	s.AddConstraint(kiwi.NewConstraint(kiwi.GTE, kiwi.Required,
//		kiwi.NewExpression(0, left.T(1))))
//
//	s.AddEditVariable(left, kiwi.Strong)
//	s.SuggestValue(left, 20)
//	s.UpdateVariables()
package kiwi
