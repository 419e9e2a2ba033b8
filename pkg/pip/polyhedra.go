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

	"github.com/consensys/go-candl/pkg/polyhedron"
	"github.com/consensys/go-candl/pkg/util/collection/stack"
	"github.com/consensys/go-candl/pkg/util/math"
)

// region accumulates the constraints along a path of a quast.  Each
// constraint is an affine form over [ new parameters | parameters | constant ]
// which must be non-negative (or zero, for equalities).
type region struct {
	node        *Quast
	constraints []affineRow
	newparms    int
}

type affineRow struct {
	equality bool
	values   []big.Int
}

// ToPolyhedra converts a quast into the union of the regions (one per leaf
// with a solution) where each leaf applies.  Each region is a relation with
// columns [ marker | unknowns | new parameters | parameters | constant ],
// where the unknowns are constrained to equal the leaf's solution, and the
// new parameters on the path to the leaf appear as local dimensions bound by
// the definition of integer division.  Unknowns with an unbounded solution
// are left unconstrained, and leaves without a solution are omitted.
func ToPolyhedra(q *Quast, nvar int, npar int) polyhedron.Union {
	return regions(q, nvar, npar, false)
}

// NoSolutionPolyhedra converts a quast into the union of the regions where it
// has no solution, laid out as for ToPolyhedra (though without any constraint
// on the unknowns).  A nil quast has no solution anywhere, yielding a single
// unconstrained region.
func NoSolutionPolyhedra(q *Quast, nvar int, npar int) polyhedron.Union {
	if q == nil {
		m := polyhedron.NewMatrix(0, nvar+npar+2)
		m.SetAttributes(nvar, 0, 0, npar)
		//
		return polyhedron.Union{m}
	}
	//
	return regions(q, nvar, npar, true)
}

func regions(q *Quast, nvar int, npar int, voids bool) polyhedron.Union {
	var (
		result   polyhedron.Union
		locals   []int
		maxLocal = 0
		worklist = stack.NewStack[region]()
	)
	//
	if q == nil {
		return nil
	}
	//
	worklist.Push(region{node: q})
	//
	for !worklist.IsEmpty() {
		r := worklist.Pop()
		// Integer division definitions of any new parameters
		for i := range r.node.NewParms {
			np := &r.node.NewParms[i]
			//
			if np.Rank != npar+r.newparms {
				panic(fmt.Sprintf("new parameter has rank %d, expected %d", np.Rank, npar+r.newparms))
			}
			//
			r.newparms++
			r.constraints = append(r.constraints, divisionBounds(np, npar, r.newparms)...)
		}
		//
		switch {
		case r.node.IsSplit():
			then := r.extend(affineOf(r.node.Condition, npar, r.newparms, false))
			els := r.extend(affineOf(r.node.Condition, npar, r.newparms, true))
			//
			worklist.Push(region{r.node.Else, els, r.newparms})
			worklist.Push(region{r.node.Then, then, r.newparms})
		case r.node.IsLeaf() && !voids:
			result = append(result, r.toMatrix(nvar, npar))
			locals = append(locals, r.newparms)
			maxLocal = max(maxLocal, r.newparms)
		case r.node.IsVoid() && voids:
			r.node = nil
			result = append(result, r.toMatrix(nvar, npar))
			locals = append(locals, r.newparms)
			maxLocal = max(maxLocal, r.newparms)
		}
	}
	// Pad to a common number of local dimensions
	for i, m := range result {
		if locals[i] < maxLocal {
			m.InsertColumns(1+nvar+locals[i], maxLocal-locals[i])
		}
		//
		m.SetAttributes(nvar, 0, maxLocal, npar)
	}
	//
	return result
}

// extend returns a copy of this region's constraints with one more.
func (r *region) extend(row affineRow) []affineRow {
	constraints := make([]affineRow, len(r.constraints), len(r.constraints)+1)
	copy(constraints, r.constraints)
	//
	return append(constraints, row)
}

// toMatrix constructs the relation for this region, including the solution of
// its node (if it is a leaf).
func (r *region) toMatrix(nvar int, npar int) *polyhedron.Matrix {
	var (
		ncols = 1 + nvar + r.newparms + npar + 1
		m     = polyhedron.NewMatrix(0, ncols)
	)
	//
	if r.node != nil {
		for i, v := range r.node.List {
			if i >= nvar || v.IsUnbounded() {
				continue
			}
			//
			row := m.AppendRow()
			lcm := big.NewInt(1)
			//
			for j := range v.Den {
				lcm = math.Lcm(lcm, &v.Den[j])
			}
			//
			m.Set(row, 1+i, lcm)
			//
			for j := range v.Num {
				var t big.Int
				//
				t.Quo(lcm, &v.Den[j])
				t.Mul(&t, &v.Num[j])
				t.Neg(&t)
				m.Set(row, localColumn(j, nvar, npar, r.newparms, len(v.Num)), &t)
			}
		}
	}
	//
	for _, c := range r.constraints {
		row := m.AppendRow()
		//
		if !c.equality {
			m.MarkInequality(row)
		}
		//
		// Constraints from higher up the path lack later locals
		nl := len(c.values) - npar - 1
		//
		for j := range c.values {
			col := 1 + nvar + j
			//
			if j >= nl {
				col += r.newparms - nl
			}
			//
			m.Set(row, col, &c.values[j])
		}
	}
	//
	return m
}

// localColumn maps entry j of an affine form over [ parameters | new
// parameters | constant ] onto a column of the layout used by toMatrix.
func localColumn(j int, nvar int, npar int, nlocal int, n int) int {
	switch {
	case j == n-1:
		return 1 + nvar + nlocal + npar
	case j < npar:
		return 1 + nvar + nlocal + j
	default:
		return 1 + nvar + (j - npar)
	}
}

// affineOf converts a condition into a constraint over [ new parameters |
// parameters | constant ], either as c >= 0 or as its negation -c-1 >= 0.
func affineOf(v Vector, npar int, nlocal int, negate bool) affineRow {
	var (
		values = make([]big.Int, nlocal+npar+1)
		n      = v.Len()
	)
	//
	for j := range v.Num {
		col := localColumn(j, 0, npar, nlocal, n) - 1
		values[col].Set(&v.Num[j])
		//
		if negate {
			values[col].Neg(&values[col])
		}
	}
	//
	if negate {
		last := &values[len(values)-1]
		last.Sub(last, math.One)
	}
	//
	return affineRow{false, values}
}

// divisionBounds gives the two inequalities defining q = floor(e/D), namely
// e - D*q >= 0 and -e + D*q + D - 1 >= 0, where q is the last of nlocal new
// parameters.
func divisionBounds(np *NewParm, npar int, nlocal int) []affineRow {
	var (
		lower = affineOf(np.Vector, npar, nlocal, false)
		upper = affineOf(np.Vector, npar, nlocal, true)
		q     = nlocal - 1
	)
	//
	lower.values[q].Sub(&lower.values[q], &np.Divisor)
	upper.values[q].Add(&upper.values[q], &np.Divisor)
	// -e-1 + D*q + D
	last := &upper.values[len(upper.values)-1]
	last.Add(last, &np.Divisor)
	//
	return []affineRow{lower, upper}
}
