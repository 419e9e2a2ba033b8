// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package pip

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/go-candl/pkg/polyhedron"
)

// rowFlag records what is known about the sign of a tableau row's parametric
// constant (i.e. its constant term plus parameter terms).
type rowFlag uint8

const (
	// unitRow marks a row which is a non-basic variable.  Its value is simply
	// its (virtual) column.
	unitRow rowFlag = 1 << iota
	// plusRow marks a row which is non-negative throughout the context.
	plusRow
	// minusRow marks a row which is negative somewhere in the context.
	minusRow
	// zeroRow marks a row whose parametric constant is zero.
	zeroRow
	// criticRow marks a row whose sign is undetermined, and which has no
	// positive variable coefficient.
	criticRow
	// unknownRow marks a row whose sign has not yet been determined.
	unknownRow
)

// sharedZero is returned for the implicit entries of unit rows.  It must never
// be mutated.
var sharedZero = big.NewInt(0)

type tableauRow struct {
	flags rowFlag
	// Column index of the non-basic variable, for unit rows.
	unit int
	// Coefficients, for non-unit rows.
	values []big.Int
	// Common denominator of all coefficients.
	denom big.Int
	// Position of the input constraint row this row was created from, or -1
	// for cuts and unknowns.
	origin int
	// Sorting key
	size big.Int
}

// Tableau is the dense representation manipulated by the solver.  The first
// nvar rows correspond to the unknowns, the remainder to inequalities.  The
// columns are laid out as follows:
//
//	[ variables | constant | parameters ]
//
// Every row r encodes the expression (sum_j r[j]*c_j) / denom(r) which must be
// non-negative.  A context tableau has no variables, and its columns are laid
// out as [ parameters | constant ].
type tableau struct {
	rows  []tableauRow
	width int
}

func newTableau(virtual, real, width int) *tableau {
	tab := &tableau{make([]tableauRow, virtual+real), width}
	//
	for i := range tab.rows {
		row := &tab.rows[i]
		row.denom.SetInt64(1)
		row.origin = -1
		//
		if i < virtual {
			row.flags = unitRow
			row.unit = i
		} else {
			row.flags = unknownRow
			row.values = make([]big.Int, width)
		}
	}
	//
	return tab
}

// height returns the number of rows in this tableau.
func (p *tableau) height() int {
	return len(p.rows)
}

// value returns the coefficient at a given row and column, taking unit rows
// into account.  The result must not be mutated.
func (p *tableau) value(i, j int) *big.Int {
	row := &p.rows[i]
	//
	if row.flags&unitRow != 0 {
		if row.unit == j {
			return &row.denom
		}
		//
		return sharedZero
	}
	//
	return &row.values[j]
}

// search returns the index of the first row with any of the given flags set,
// or -1 if there is none.
func (p *tableau) search(mask rowFlag) int {
	for i := range p.rows {
		if p.rows[i].flags&mask != 0 {
			return i
		}
	}
	//
	return -1
}

// appendRow adds a new (non-unit) row with a given flag and denominator,
// whose coefficients are copied from a given slice.  Missing trailing
// coefficients are zero.
func (p *tableau) appendRow(flags rowFlag, denom *big.Int, values []big.Int) {
	row := tableauRow{flags: flags, origin: -1, values: make([]big.Int, p.width)}
	row.denom.Set(denom)
	//
	for j := range values {
		row.values[j].Set(&values[j])
	}
	//
	p.rows = append(p.rows, row)
}

// insertColumn inserts a zero column at a given position in every non-unit
// row.
func (p *tableau) insertColumn(at int) {
	for i := range p.rows {
		row := &p.rows[i]
		//
		if row.flags&unitRow == 0 {
			nvalues := make([]big.Int, p.width+1)
			//
			for j := range row.values {
				if j < at {
					nvalues[j].Set(&row.values[j])
				} else {
					nvalues[j+1].Set(&row.values[j])
				}
			}
			//
			row.values = nvalues
		}
	}
	//
	p.width++
}

// clone returns a deep copy of this tableau, or nil when given nil.
func (p *tableau) clone() *tableau {
	if p == nil {
		return nil
	}
	//
	ntab := &tableau{make([]tableauRow, len(p.rows)), p.width}
	//
	for i := range p.rows {
		ntab.rows[i] = p.rows[i].clone()
	}
	//
	return ntab
}

func (p *tableauRow) clone() tableauRow {
	nrow := tableauRow{flags: p.flags, unit: p.unit, origin: p.origin}
	nrow.denom.Set(&p.denom)
	//
	if p.values != nil {
		nrow.values = make([]big.Int, len(p.values))
		for j := range p.values {
			nrow.values[j].Set(&p.values[j])
		}
	}
	//
	return nrow
}

// withVirtualRows returns a copy of a context tableau preceded by nvar unit
// rows, such that it can be solved as a problem over its parameters.
func (p *tableau) withVirtualRows(nvar int) *tableau {
	ntab := newTableau(nvar, 0, p.width)
	//
	for i := range p.rows {
		ntab.rows = append(ntab.rows, p.rows[i].clone())
	}
	//
	return ntab
}

// simplify divides every non-unit row by the gcd of its non-constant
// coefficients, rounding the constant down.  This is only valid when all
// variables and parameters are integral.
func (p *tableau) simplify(constant int) {
	var gcd, r big.Int
	//
	for i := range p.rows {
		row := &p.rows[i]
		if row.flags&unitRow != 0 {
			continue
		}
		//
		gcd.SetInt64(0)
		//
		for j := range row.values {
			if j != constant && row.values[j].Sign() != 0 {
				gcd.GCD(nil, nil, &gcd, &row.values[j])
				//
				if gcd.Cmp(big.NewInt(1)) == 0 {
					break
				}
			}
		}
		//
		if gcd.Sign() == 0 || gcd.Cmp(big.NewInt(1)) == 0 {
			continue
		}
		//
		for j := range row.values {
			if j == constant {
				row.values[j].DivMod(&row.values[j], &gcd, &r)
			} else {
				row.values[j].Quo(&row.values[j], &gcd)
			}
		}
	}
}

// sortRows orders the inequality rows by increasing magnitude of their
// largest variable coefficient, such that pivoting favours small rows.
func (p *tableau) sortRows(nvar int) {
	var (
		smax big.Int
		t    big.Int
	)
	//
	for i := nvar; i < len(p.rows); i++ {
		row := &p.rows[i]
		if row.flags&unitRow != 0 {
			continue
		}
		//
		row.size.SetInt64(0)
		//
		for j := 0; j < nvar; j++ {
			t.Quo(&row.values[j], &row.denom)
			t.Abs(&t)
			//
			if t.Cmp(&row.size) > 0 {
				row.size.Set(&t)
			}
		}
		//
		if row.size.Cmp(&smax) > 0 {
			smax.Set(&row.size)
		}
	}
	// Selection sort, leaving unit rows in place.
	for i := nvar; i < len(p.rows); i++ {
		if p.rows[i].flags&unitRow != 0 {
			continue
		}
		//
		s, pivi := &smax, i
		//
		for j := i; j < len(p.rows); j++ {
			if p.rows[j].flags&unitRow == 0 && p.rows[j].size.Cmp(s) < 0 {
				s, pivi = &p.rows[j].size, j
			}
		}
		//
		if pivi != i {
			p.rows[i], p.rows[pivi] = p.rows[pivi], p.rows[i]
		}
	}
}

// fromProblem translates the unknowns system of a problem into a tableau.
// The given matrix has columns [marker | unknowns | params | const], and the
// resulting tableau has columns:
//
//	[ unknowns | const | params | bignum | negated params ]
//
// The bignum column is only present when the shift is non-zero (and it does
// not already exist), whilst the negated parameter copies are only present for
// unrestricted parameters.  A positive shift prepares the system for
// maximisation (x = M - x'), whilst a negative shift prepares it for
// unrestricted unknowns (x = x' - M).  Equalities are split into two
// opposing inequalities.
func fromProblem(m *polyhedron.Matrix, nvar, shift, bignum, urs int) *tableau {
	var (
		bignumIsNew = shift != 0 && bignum > 0 && bignum > m.Columns()-2
		ncolumns    = m.Columns() - 1
		sum         big.Int
	)
	//
	if bignumIsNew {
		ncolumns++
	}
	//
	tab := newTableau(nvar, 0, ncolumns+urs)
	//
	for i := 0; i < m.Rows(); i++ {
		vals := make([]big.Int, tab.width)
		sum.SetInt64(0)
		//
		for j := 0; j < nvar; j++ {
			coeff := m.Get(i, 1+j)
			//
			if shift != 0 {
				sum.Add(&sum, coeff)
			}
			//
			if shift > 0 {
				vals[j].Neg(coeff)
			} else {
				vals[j].Set(coeff)
			}
		}
		// Parameters follow the constant
		for j, k := nvar+1, nvar+1; j < ncolumns; j++ {
			if bignumIsNew && j == bignum {
				continue
			}
			//
			vals[j].Set(m.Get(i, k))
			k++
		}
		//
		negateUrsColumns(vals, ncolumns, bignum, urs)
		//
		vals[nvar].Set(m.Get(i, m.Columns()-1))
		//
		if shift < 0 {
			sum.Neg(&sum)
		}
		//
		if shift != 0 && bignumIsNew {
			vals[bignum].Set(&sum)
		} else if shift != 0 {
			vals[bignum].Add(&vals[bignum], &sum)
		}
		//
		tab.appendConstraint(vals, m.IsEquality(i), nvar)
	}
	//
	return tab
}

// fromContext translates a parameter context into a tableau with columns:
//
//	[ params | bignum | negated params | const ]
//
// Here, bignum is given as a parameter index.  Unlike fromProblem, no shift is
// applied: the bignum is just another (non-negative) parameter.
func fromContext(m *polyhedron.Matrix, shift, bignum, urs int) *tableau {
	var (
		bignumIsNew = shift != 0 && bignum+1 > 0 && bignum+1 > m.Columns()-2
		ncolumns    = m.Columns() - 1
		nparams     = m.Columns() - 2
	)
	//
	if bignumIsNew {
		ncolumns++
		nparams++
	}
	//
	tab := newTableau(0, 0, ncolumns+urs)
	//
	for i := 0; i < m.Rows(); i++ {
		vals := make([]big.Int, tab.width)
		//
		for j := 0; j < nparams; j++ {
			if bignumIsNew && j == bignum {
				continue
			}
			//
			vals[j].Set(m.Get(i, 1+j))
		}
		//
		negateUrsColumns(vals, ncolumns-1, bignum, urs)
		//
		vals[nparams+urs].Set(m.Get(i, m.Columns()-1))
		//
		tab.appendConstraint(vals, m.IsEquality(i), 0)
	}
	//
	return tab
}

// negateUrsColumns fills the urs columns starting at a given offset with the
// negation of the parameter columns they shadow (skipping the bignum).
func negateUrsColumns(vals []big.Int, offset, bignum, urs int) {
	for j := 0; j < urs; j++ {
		posn := offset + j
		pos := posn - urs
		//
		if pos <= bignum {
			pos--
		}
		//
		vals[posn].Neg(&vals[pos])
	}
}

// appendConstraint appends a row for an inequality (or two rows for an
// equality) of an input system.  Each row records its position amongst the
// constraint rows, which follow a given number of virtual rows.
func (p *tableau) appendConstraint(vals []big.Int, equality bool, nvirtual int) {
	var rows = [][]big.Int{vals}
	//
	if equality {
		neg := make([]big.Int, len(vals))
		for j := range vals {
			neg[j].Neg(&vals[j])
		}
		//
		rows = append(rows, neg)
	}
	//
	for _, values := range rows {
		p.rows = append(p.rows, tableauRow{flags: unknownRow, origin: len(p.rows) - nvirtual, values: values})
		p.rows[len(p.rows)-1].denom.SetInt64(1)
	}
}

func (p *tableau) String() string {
	var (
		builder strings.Builder
		names   = []string{"unit", "+", "-", "0", "*", "?"}
	)
	//
	builder.WriteString(fmt.Sprintf("[%d x %d]\n", len(p.rows), p.width))
	//
	for i := range p.rows {
		row := &p.rows[i]
		//
		for n, name := range names {
			if row.flags&(1<<n) != 0 {
				builder.WriteString(name)
				builder.WriteString(" ")
			}
		}
		//
		if row.flags&unitRow != 0 {
			builder.WriteString(fmt.Sprintf("#%d\n", row.unit))
			continue
		}
		//
		builder.WriteString("[")
		//
		for j := range row.values {
			builder.WriteString(" ")
			builder.WriteString(row.values[j].String())
		}
		//
		builder.WriteString(fmt.Sprintf(" ]/%s\n", row.denom.String()))
	}
	//
	return builder.String()
}
