package kiwi

import (
	"fmt"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

// verifyInvariants checks the tableau invariants that must hold between
// public operations: feasibility (non-negative constants on restricted
// rows), zero-elision in every row, and primal optimality of the objective.
func (s *Solver) verifyInvariants() error {
	for _, e := range s.rows.entries {
		if e.key.kind != externalSymbol && e.value.constant < -epsilon {
			return fmt.Errorf("negative constant %v in row of %v:\n%s",
				e.value.constant, e.key, spew.Sdump(s.rows.entries))
		}
		for _, cell := range e.value.cells.entries {
			if nearZero(cell.value) {
				return fmt.Errorf("near-zero coefficient %v for %v in row of %v:\n%s",
					cell.value, cell.key, e.key, spew.Sdump(e.value))
			}
		}
	}

	for _, cell := range s.objective.cells.entries {
		if nearZero(cell.value) {
			return fmt.Errorf("near-zero coefficient %v for %v in objective:\n%s",
				cell.value, cell.key, spew.Sdump(s.objective))
		}
		if cell.key.kind != dummySymbol && cell.value < -epsilon {
			return fmt.Errorf("objective not optimal: coefficient %v for %v:\n%s",
				cell.value, cell.key, spew.Sdump(s.objective))
		}
	}

	if len(s.infeasible) != 0 {
		return fmt.Errorf("infeasible rows left behind: %v", s.infeasible)
	}

	return nil
}

func TestInvariantsAfterEachOperation(t *testing.T) {
	s := NewSolver()

	total := NewVariable("total")
	left := NewVariable("left")
	right := NewVariable("right")

	require.NoError(t, s.AddConstraint(NewConstraint(EQ, Required, NewExpression(0, total.T(1), left.T(-1), right.T(-1)))))
	require.NoError(t, s.verifyInvariants())

	weak := NewConstraint(EQ, Weak, NewExpression(-60, left.T(1)))
	require.NoError(t, s.AddConstraint(weak))
	require.NoError(t, s.verifyInvariants())

	require.NoError(t, s.AddEditVariable(total, Strong))
	require.NoError(t, s.verifyInvariants())

	require.NoError(t, s.SuggestValue(total, 300))
	require.NoError(t, s.verifyInvariants())

	require.NoError(t, s.RemoveConstraint(weak))
	require.NoError(t, s.verifyInvariants())

	require.NoError(t, s.RemoveEditVariable(total))
	require.NoError(t, s.verifyInvariants())
}

// buildColumns lays out n columns inside an edited container: each column
// keeps a required minimum width, prefers its suggested width weakly, and
// the widths sum to the container exactly.
func buildColumns(s *Solver, container *Variable, widths []int) ([]*Variable, []*Constraint, error) {
	cols := make([]*Variable, len(widths))
	weaks := make([]*Constraint, len(widths))

	sum := NewExpression(0, container.T(1))
	for i, w := range widths {
		cols[i] = NewVariable(fmt.Sprintf("col%d", i))

		if err := s.AddConstraint(cols[i].GTE(1)); err != nil {
			return nil, nil, err
		}

		weaks[i] = NewConstraint(EQ, Weak, NewExpression(float64(-w), cols[i].T(1)))
		if err := s.AddConstraint(weaks[i]); err != nil {
			return nil, nil, err
		}

		sum = sum.SubVariable(cols[i])
	}

	return cols, weaks, s.AddConstraint(NewConstraint(EQ, Required, sum))
}

func TestSolverProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("pivoting preserves tableau invariants", prop.ForAll(
		func(widths []int, first int, second int) bool {
			s := NewSolver()
			container := NewVariable("container")

			if err := s.AddEditVariable(container, Strong); err != nil {
				return false
			}
			if _, _, err := buildColumns(s, container, widths); err != nil {
				return false
			}
			if err := s.verifyInvariants(); err != nil {
				t.Log(err)
				return false
			}

			for _, suggestion := range []int{first, second} {
				if err := s.SuggestValue(container, float64(suggestion)); err != nil {
					return false
				}
				if err := s.verifyInvariants(); err != nil {
					t.Log(err)
					return false
				}
			}

			s.UpdateVariables()
			return true
		},
		gen.SliceOfN(3, gen.IntRange(1, 500)),
		gen.IntRange(3, 2000),
		gen.IntRange(3, 2000),
	))

	properties.Property("removing a constraint undoes its effect", prop.ForAll(
		func(widths []int, target int) bool {
			s := NewSolver()
			container := NewVariable("container")

			if err := s.AddEditVariable(container, Strong); err != nil {
				return false
			}
			cols, _, err := buildColumns(s, container, widths)
			if err != nil {
				return false
			}
			if err := s.SuggestValue(container, 1000); err != nil {
				return false
			}

			s.UpdateVariables()
			before := make([]float64, len(cols))
			for i, col := range cols {
				before[i] = col.Value()
			}

			extra := NewConstraint(EQ, Strong, NewExpression(float64(-target), cols[0].T(1)))
			if err := s.AddConstraint(extra); err != nil {
				return false
			}
			if err := s.RemoveConstraint(extra); err != nil {
				return false
			}
			if err := s.verifyInvariants(); err != nil {
				t.Log(err)
				return false
			}

			s.UpdateVariables()
			for i, col := range cols {
				if diff := col.Value() - before[i]; diff < -1e-6 || diff > 1e-6 {
					t.Logf("col%d drifted from %v to %v", i, before[i], col.Value())
					return false
				}
			}
			return true
		},
		gen.SliceOfN(3, gen.IntRange(1, 500)),
		gen.IntRange(1, 500),
	))

	properties.Property("suggested values are honored when feasible", prop.ForAll(
		func(value int) bool {
			s := NewSolver()
			x := NewVariable("x")

			if err := s.AddConstraint(x.GTE(10)); err != nil {
				return false
			}
			if err := s.AddEditVariable(x, Medium); err != nil {
				return false
			}
			if err := s.SuggestValue(x, float64(value)); err != nil {
				return false
			}

			s.UpdateVariables()

			want := float64(value)
			if value < 10 {
				want = 10
			}
			diff := x.Value() - want
			return diff > -1e-9 && diff < 1e-9 && s.verifyInvariants() == nil
		},
		gen.IntRange(-100, 100),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
