package kiwi

import "math"

// tag tracks the symbols introduced for a constraint: marker identifies the
// constraint in the tableau (slack for inequalities, error or dummy for
// equalities), other holds the negative error symbol when one exists. The
// tag is the handle used to dismantle the constraint on removal.
type tag struct {
	marker symbol
	other  symbol
}

type editInfo struct {
	tag        tag
	constraint *Constraint
	constant   float64
}

// Solver is the simplex tableau engine. It maintains an augmented tableau of
// rows keyed by basic symbols, an objective row accumulating error symbols
// weighted by their constraints' strengths, and the bookkeeping needed to
// add and remove constraints and edit variables incrementally.
//
// A Solver is not safe for concurrent use.
type Solver struct {
	cns   assocMap[*Constraint, tag]
	rows  assocMap[symbol, *row]
	vars  assocMap[*Variable, symbol]
	edits assocMap[*Variable, *editInfo]

	infeasible []symbol

	objective  *row
	artificial *row

	idTick uint64
}

func NewSolver() *Solver {
	return &Solver{objective: newRow(1.0), idTick: 1}
}

// AddConstraint adds a constraint to the solver.
//
// Fails with DuplicateConstraintError if the same constraint identity is
// already registered, and with UnsatisfiableConstraintError if the tableau
// cannot accommodate a required constraint. A failed add does not register
// the constraint; symbols reserved for its variables stay in the solver.
func (s *Solver) AddConstraint(c *Constraint) error {
	if s.cns.contains(c) {
		return DuplicateConstraintError{Constraint: c}
	}

	// Creating a row reserves symbols for the constraint's variables. If
	// the add fails those symbols linger in the var map; they are likely to
	// be reused by other constraints, so no aggressive cleanup is done.
	row, tag := s.createRow(c)
	subject := s.chooseSubject(row, tag)

	// If no valid entering symbol was found and the entire row is composed
	// of dummy variables, a zero constant means the constraint is redundant
	// and its dummy marker can enter the basis; a non-zero constant means
	// the constraint is unsatisfiable.
	if subject.zero() && s.allDummies(row) {
		if !nearZero(row.constant) {
			return UnsatisfiableConstraintError{Constraint: c}
		}
		subject = tag.marker
	}

	// If an entering symbol still isn't found the row must be added with an
	// artificial variable; failure there also means unsatisfiable.
	if subject.zero() {
		ok, err := s.addWithArtificialVariable(row)
		if err != nil {
			return err
		}
		if !ok {
			return UnsatisfiableConstraintError{Constraint: c}
		}
	} else {
		row.solveFor(subject)
		s.substitute(subject, row)
		s.rows.insert(subject, row)
	}

	s.cns.insert(c, tag)

	// Optimizing after each added constraint performs less aggregate work
	// due to a smaller average system size, and keeps the solver state
	// consistent between calls.
	return s.optimize(s.objective)
}

// RemoveConstraint removes a constraint from the solver.
//
// Fails with UnknownConstraintError if the constraint was never added.
func (s *Solver) RemoveConstraint(c *Constraint) error {
	tag, ok := s.cns.remove(c)
	if !ok {
		return UnknownConstraintError{Constraint: c}
	}

	// Remove the error effects from the objective *before* pivoting, or
	// substitutions into the objective will produce incorrect results.
	s.removeConstraintEffects(c, tag)

	// If the marker is basic, simply drop its row. Otherwise pivot the
	// marker into the basis and drop the pivoted row.
	if _, ok := s.rows.remove(tag.marker); !ok {
		leaving, row, ok := s.getMarkerLeavingRow(tag.marker)
		if !ok {
			return InternalSolverError{Msg: "failed to find leaving row"}
		}
		row.solveForSymbols(leaving, tag.marker)
		s.substitute(tag.marker, row)
	}

	return s.optimize(s.objective)
}

// HasConstraint reports whether the constraint has been added to the solver.
func (s *Solver) HasConstraint(c *Constraint) bool {
	return s.cns.contains(c)
}

// AddEditVariable registers a variable whose value may be suggested through
// SuggestValue. The strength must be below Required.
func (s *Solver) AddEditVariable(v *Variable, strength Priority) error {
	if s.edits.contains(v) {
		return DuplicateEditVariableError{Variable: v}
	}
	strength = Clip(strength)
	if strength == Required {
		return ErrBadRequiredStrength
	}

	cn := NewConstraint(EQ, strength, NewExpression(0, v.T(1)))
	if err := s.AddConstraint(cn); err != nil {
		return err
	}

	t, _ := s.cns.get(cn)
	s.edits.insert(v, &editInfo{tag: t, constraint: cn, constant: 0})
	return nil
}

// RemoveEditVariable unregisters an edit variable and its underlying
// constraint. The edit entry survives if the removal fails.
func (s *Solver) RemoveEditVariable(v *Variable) error {
	info, ok := s.edits.get(v)
	if !ok {
		return UnknownEditVariableError{Variable: v}
	}
	if err := s.RemoveConstraint(info.constraint); err != nil {
		return err
	}
	s.edits.remove(v)
	return nil
}

// HasEditVariable reports whether the variable is registered as editable.
func (s *Solver) HasEditVariable(v *Variable) bool {
	return s.edits.contains(v)
}

// SuggestValue suggests a value for an edit variable. The delta against the
// previous suggestion is applied directly to the tableau constants where
// possible; rows driven infeasible are repaired by a dual optimization.
func (s *Solver) SuggestValue(v *Variable, value float64) error {
	info, ok := s.edits.get(v)
	if !ok {
		return UnknownEditVariableError{Variable: v}
	}

	delta := value - info.constant
	info.constant = value

	// Check first if the positive error variable is basic.
	if row, ok := s.rows.get(info.tag.marker); ok {
		if row.add(-delta) < 0 {
			s.infeasible = append(s.infeasible, info.tag.marker)
		}
		return s.dualOptimize()
	}

	// Check next if the negative error variable is basic.
	if row, ok := s.rows.get(info.tag.other); ok {
		if row.add(delta) < 0 {
			s.infeasible = append(s.infeasible, info.tag.other)
		}
		return s.dualOptimize()
	}

	// Otherwise update each row where the error variables exist.
	for _, e := range s.rows.entries {
		coeff := e.value.coefficientFor(info.tag.marker)
		if coeff != 0 && e.value.add(delta*coeff) < 0 && e.key.kind != externalSymbol {
			s.infeasible = append(s.infeasible, e.key)
		}
	}

	return s.dualOptimize()
}

// UpdateVariables writes the current tableau values back to the external
// variables: the row constant for basic variables, zero otherwise.
func (s *Solver) UpdateVariables() {
	for _, e := range s.vars.entries {
		if row, ok := s.rows.get(e.value); ok {
			e.key.value = row.constant
		} else {
			e.key.value = 0
		}
	}
}

// Reset returns the solver to the empty starting condition, as if no
// constraints or edit variables had ever been added. Registered variables
// are zeroed, since a variable that was never solved for reads zero.
func (s *Solver) Reset() {
	for _, e := range s.vars.entries {
		e.key.value = 0
	}
	s.cns.clear()
	s.rows.clear()
	s.vars.clear()
	s.edits.clear()
	s.infeasible = s.infeasible[:0]
	s.objective = newRow(1.0)
	s.artificial = nil
	s.idTick = 1
}

// createRow converts a constraint into an augmented simplex row and its tag.
//
// External symbols that are already basic are substituted with their rows.
// The slack, error, and dummy bookkeeping depends on the operator and
// strength:
//
//  1. inequalities get a slack marker, plus an error symbol when the
//     strength is below required,
//  2. non-required equalities get a pair of error symbols,
//  3. required equalities get a dummy marker.
//
// The sign of the whole row is reversed if its constant is negative.
func (s *Solver) createRow(c *Constraint) (*row, tag) {
	expr := c.expression
	row := newRow(expr.Constant)
	t := tag{marker: invalid, other: invalid}

	for _, term := range expr.Terms {
		if nearZero(term.Coefficient) {
			continue
		}
		sym := s.getVarSymbol(term.Variable)
		if existing, ok := s.rows.get(sym); ok {
			row.insertRow(existing, term.Coefficient)
		} else {
			row.insertSymbol(sym, term.Coefficient)
		}
	}

	switch c.op {
	case LTE, GTE:
		coeff := 1.0
		if c.op == GTE {
			coeff = -1.0
		}
		slack := newSymbol(slackSymbol, s.nextSymbolID())
		row.insertSymbol(slack, coeff)
		t.marker = slack

		if c.strength < Required {
			err := newSymbol(errorSymbol, s.nextSymbolID())
			row.insertSymbol(err, -coeff)
			s.objective.insertSymbol(err, c.strength.Val())
			t.other = err
		}
	case EQ:
		if c.strength < Required {
			errplus := newSymbol(errorSymbol, s.nextSymbolID())
			errminus := newSymbol(errorSymbol, s.nextSymbolID())
			row.insertSymbol(errplus, -1.0) // v = eplus - eminus
			row.insertSymbol(errminus, 1.0) // v - eplus + eminus = 0
			s.objective.insertSymbol(errplus, c.strength.Val())
			s.objective.insertSymbol(errminus, c.strength.Val())
			t.marker = errplus
			t.other = errminus
		} else {
			dummy := newSymbol(dummySymbol, s.nextSymbolID())
			row.insertSymbol(dummy, 1.0)
			t.marker = dummy
		}
	}

	if row.constant < 0 {
		row.reverseSign()
	}

	return row, t
}

// chooseSubject picks the symbol to solve the row for:
//
//  1. the first external symbol in the row,
//  2. a slack marker, or an error marker with a negative coefficient,
//  3. the same test against the tag's other symbol.
//
// The invalid symbol is returned when no subject qualifies.
func (s *Solver) chooseSubject(row *row, t tag) symbol {
	for _, e := range row.cells.entries {
		if e.key.kind == externalSymbol {
			return e.key
		}
	}

	if t.marker.kind == slackSymbol || t.marker.kind == errorSymbol && row.coefficientFor(t.marker) < 0 {
		return t.marker
	}

	if t.other.kind == slackSymbol || t.other.kind == errorSymbol && row.coefficientFor(t.other) < 0 {
		return t.other
	}

	return invalid
}

// getVarSymbol returns the external symbol for a variable, reserving a fresh
// one on first sight.
func (s *Solver) getVarSymbol(v *Variable) symbol {
	if sym, ok := s.vars.get(v); ok {
		return sym
	}
	sym := newSymbol(externalSymbol, s.nextSymbolID())
	s.vars.insert(v, sym)
	return sym
}

func (s *Solver) allDummies(row *row) bool {
	for _, e := range row.cells.entries {
		if e.key.kind != dummySymbol {
			return false
		}
	}
	return true
}

// addWithArtificialVariable bootstraps a row that has no valid subject by
// optimizing a temporary artificial objective to zero. The artificial
// symbol is scrubbed from the tableau and the objective regardless of the
// outcome so the solver invariants survive an infeasible phase.
func (s *Solver) addWithArtificialVariable(row *row) (bool, error) {
	art := newSymbol(slackSymbol, s.nextSymbolID())
	s.rows.insert(art, row.clone())
	s.artificial = row.clone()

	optErr := s.optimize(s.artificial)
	success := nearZero(s.artificial.constant)
	s.artificial = nil

	// If the artificial variable remained basic, pivot it out of the basis
	// through any pivotable symbol left in its row.
	if artRow, ok := s.rows.remove(art); ok && !artRow.cells.empty() {
		entering := anyPivotableSymbol(artRow)
		if entering.zero() {
			success = false
		} else {
			artRow.solveForSymbols(art, entering)
			s.substitute(entering, artRow)
			s.rows.insert(entering, artRow)
		}
	}

	for _, e := range s.rows.entries {
		e.value.remove(art)
	}
	s.objective.remove(art)

	if optErr != nil {
		return false, optErr
	}
	return success, nil
}

// removeConstraintEffects backs the constraint's error symbols out of the
// objective.
func (s *Solver) removeConstraintEffects(c *Constraint, t tag) {
	if t.marker.kind == errorSymbol {
		s.removeMarkerEffects(t.marker, c.strength)
	}
	if t.other.kind == errorSymbol {
		s.removeMarkerEffects(t.other, c.strength)
	}
}

func (s *Solver) removeMarkerEffects(marker symbol, strength Priority) {
	if row, ok := s.rows.get(marker); ok {
		s.objective.insertRow(row, -strength.Val())
	} else {
		s.objective.insertSymbol(marker, -strength.Val())
	}
}

// getMarkerLeavingRow selects and removes the row to pivot a non-basic
// marker into, by precedence:
//
//  1. a restricted basic with a negative marker coefficient, minimizing
//     -constant/coefficient,
//  2. a restricted basic with a positive coefficient, minimizing
//     constant/coefficient,
//  3. the last external basic mentioning the marker.
func (s *Solver) getMarkerLeavingRow(marker symbol) (symbol, *row, bool) {
	r1 := math.MaxFloat64
	r2 := math.MaxFloat64

	first := invalid
	second := invalid
	third := invalid

	for _, e := range s.rows.entries {
		c := e.value.coefficientFor(marker)
		if c == 0 {
			continue
		}
		if e.key.kind == externalSymbol {
			third = e.key
		} else if c < 0 {
			if r := -e.value.constant / c; r < r1 {
				r1, first = r, e.key
			}
		} else {
			if r := e.value.constant / c; r < r2 {
				r2, second = r, e.key
			}
		}
	}

	leaving := first
	if leaving.zero() {
		leaving = second
	}
	if leaving.zero() {
		leaving = third
	}
	if leaving.zero() {
		return invalid, nil, false
	}

	row, _ := s.rows.remove(leaving)
	return leaving, row, true
}

// substitute replaces all instances of the parametric symbol in the tableau
// and the objective with the given row, queueing restricted rows whose
// constants turn negative for the dual optimization.
func (s *Solver) substitute(sym symbol, row *row) {
	for _, e := range s.rows.entries {
		e.value.substitute(sym, row)
		if e.key.kind != externalSymbol && e.value.constant < 0 {
			s.infeasible = append(s.infeasible, e.key)
		}
	}
	s.objective.substitute(sym, row)
	if s.artificial != nil {
		s.artificial.substitute(sym, row)
	}
}

// optimize pivots until the target row has no entering symbol left.
func (s *Solver) optimize(objective *row) error {
	for {
		entering := getEnteringSymbol(objective)
		if entering.zero() {
			return nil
		}

		leaving, row, ok := s.getLeavingRow(entering)
		if !ok {
			return InternalSolverError{Msg: "the objective is unbounded"}
		}

		row.solveForSymbols(leaving, entering)
		s.substitute(entering, row)
		s.rows.insert(entering, row)
	}
}

// dualOptimize restores feasibility after suggested values drove row
// constants negative. Each queued row is pivoted against the entering
// symbol minimizing the objective ratio.
func (s *Solver) dualOptimize() error {
	for len(s.infeasible) > 0 {
		leaving := s.infeasible[len(s.infeasible)-1]
		s.infeasible = s.infeasible[:len(s.infeasible)-1]

		row, ok := s.rows.get(leaving)
		if !ok || nearZero(row.constant) || row.constant >= 0 {
			continue
		}

		entering := s.getDualEnteringSymbol(row)
		if entering.zero() {
			return InternalSolverError{Msg: "dual optimize failed"}
		}

		s.rows.remove(leaving)
		row.solveForSymbols(leaving, entering)
		s.substitute(entering, row)
		s.rows.insert(entering, row)
	}
	return nil
}

// getEnteringSymbol returns the first non-dummy cell of the objective with a
// negative coefficient, or the invalid symbol when the objective is at its
// minimum.
func getEnteringSymbol(objective *row) symbol {
	for _, e := range objective.cells.entries {
		if e.key.kind != dummySymbol && e.value < 0 {
			return e.key
		}
	}
	return invalid
}

// getDualEnteringSymbol picks the entering symbol for a dual pivot: the
// non-dummy cell with a positive coefficient minimizing the ratio of its
// objective coefficient to its row coefficient. On a ratio tie the last
// candidate wins, which keeps the most recently suggested value in place.
func (s *Solver) getDualEnteringSymbol(row *row) symbol {
	entering := invalid
	ratio := math.MaxFloat64

	for _, e := range row.cells.entries {
		if e.value <= 0 || e.key.kind == dummySymbol {
			continue
		}
		if r := s.objective.coefficientFor(e.key) / e.value; r <= ratio {
			ratio, entering = r, e.key
		}
	}

	return entering
}

// getLeavingRow selects and removes the row holding the exit symbol for a
// primal pivot: the restricted basic with a negative entering coefficient
// minimizing -constant/coefficient. Not finding one means the objective is
// unbounded.
func (s *Solver) getLeavingRow(entering symbol) (symbol, *row, bool) {
	ratio := math.MaxFloat64
	found := invalid

	for _, e := range s.rows.entries {
		if e.key.kind == externalSymbol {
			continue
		}
		coeff := e.value.coefficientFor(entering)
		if coeff >= 0 {
			continue
		}
		if r := -e.value.constant / coeff; r < ratio {
			ratio, found = r, e.key
		}
	}

	if found.zero() {
		return invalid, nil, false
	}
	row, _ := s.rows.remove(found)
	return found, row, true
}

// anyPivotableSymbol returns the first slack or error symbol in the row.
func anyPivotableSymbol(row *row) symbol {
	for _, e := range row.cells.entries {
		if e.key.restricted() {
			return e.key
		}
	}
	return invalid
}

func (s *Solver) nextSymbolID() uint64 {
	s.idTick++
	return s.idTick
}
