package kiwi

// row is a sparse linear combination: constant + sum of coefficient*symbol.
// Keyed under a basic symbol in the tableau it means
// basic = constant + sum(cells).
//
// Every mutator elides cells whose coefficient lands within epsilon of zero
// on the spot, so coefficientFor never reports a misleading near-zero.
type row struct {
	constant float64
	cells    assocMap[symbol, float64]
}

func newRow(constant float64) *row {
	return &row{constant: constant}
}

func (r *row) clone() *row {
	res := &row{constant: r.constant}
	res.cells.entries = make([]entry[symbol, float64], len(r.cells.entries))
	copy(res.cells.entries, r.cells.entries)
	return res
}

// add adjusts the constant and returns the result.
func (r *row) add(value float64) float64 {
	r.constant += value
	return r.constant
}

// insertSymbol adds coeff to the symbol's cell, eliding it if the sum
// vanishes.
func (r *row) insertSymbol(sym symbol, coeff float64) {
	i, ok := r.cells.search(sym)
	if ok {
		r.cells.entries[i].value += coeff
		if nearZero(r.cells.entries[i].value) {
			r.cells.removeAt(i)
		}
		return
	}
	if !nearZero(coeff) {
		r.cells.insertAt(i, sym, coeff)
	}
}

// insertRow adds coeff*other into the row.
func (r *row) insertRow(other *row, coeff float64) {
	r.constant += other.constant * coeff
	for _, e := range other.cells.entries {
		r.insertSymbol(e.key, e.value*coeff)
	}
}

func (r *row) remove(sym symbol) {
	r.cells.remove(sym)
}

func (r *row) reverseSign() {
	r.constant = -r.constant
	for i := range r.cells.entries {
		r.cells.entries[i].value = -r.cells.entries[i].value
	}
}

// solveFor solves the row for the given symbol: the symbol's cell is
// removed and the row scaled by the negative inverse of its coefficient.
// A no-op if the symbol is absent.
func (r *row) solveFor(sym symbol) {
	i, ok := r.cells.search(sym)
	if !ok {
		return
	}

	coeff := -1.0 / r.cells.entries[i].value
	r.cells.removeAt(i)

	if coeff == 1.0 {
		return
	}

	r.constant *= coeff
	for i := range r.cells.entries {
		r.cells.entries[i].value *= coeff
	}
}

// solveForSymbols solves a row of the form x = b*y + c for y. The lhs symbol
// must not exist in the row; the rhs symbol must.
func (r *row) solveForSymbols(lhs, rhs symbol) {
	r.insertSymbol(lhs, -1.0)
	r.solveFor(rhs)
}

// coefficientFor returns the symbol's coefficient, or zero if absent.
func (r *row) coefficientFor(sym symbol) float64 {
	if c, ok := r.cells.get(sym); ok {
		return c
	}
	return 0
}

// substitute replaces the symbol, if present, with the given row scaled by
// the symbol's coefficient.
func (r *row) substitute(sym symbol, other *row) {
	if coeff, ok := r.cells.remove(sym); ok {
		r.insertRow(other, coeff)
	}
}
