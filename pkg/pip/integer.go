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
	"math/big"

	"github.com/consensys/go-candl/pkg/util/math"
)

// cutOutcome describes the result of searching for a cut.
type cutOutcome uint8

const (
	// solutionIsIntegral indicates the current solution is already integral.
	solutionIsIntegral cutOutcome = iota
	// noIntegralSolution indicates the problem has no integral solution.
	noIntegralSolution
	// cutInserted indicates a cut was added to the tableau.
	cutInserted
)

// cut searches for a non-integral unknown in the current solution and, if one
// is found, adds a Gomory cut for it to the tableau.  When the fractional part
// of the unknown depends on the parameters, the cut requires a new parameter
// (defined by integer division) which is added to both tableau and context and
// returned.  An existing parameter with the same definition is reused instead,
// if there is one.
func (p *Session) cut(tab *tableau, context *tableau, nvar int, bignum int) (cutOutcome, *NewParm) {
	var (
		ncol  = tab.width
		nparm = ncol - nvar - 1
		x     big.Int
	)
	//
	for i := 0; i < nvar; i++ {
		row := &tab.rows[i]
		// Unit rows and rows with unit denominator are integral
		if row.flags&unitRow != 0 || isOne(&row.denom) {
			continue
		}
		//
		var (
			D       = math.Clone(&row.denom)
			cut     = make([]big.Int, ncol+1)
			okVar   = false
			okConst = false
			okParm  = false
		)
		// Variables
		for j := 0; j < nvar; j++ {
			cut[j].Set(math.FloorMod(&row.values[j], D))
			okVar = okVar || cut[j].Sign() > 0
		}
		// Constant
		x.Neg(&row.values[nvar])
		cut[nvar].Neg(math.FloorMod(&x, D))
		okConst = cut[nvar].Sign() != 0
		// Parameters, where the bignum is assumed divisible by anything.
		for j := nvar + 1; j < ncol; j++ {
			if j == bignum {
				continue
			}
			//
			x.Neg(&row.values[j])
			cut[j].Neg(math.FloorMod(&x, D))
			okParm = okParm || cut[j].Sign() != 0
		}
		//
		cut[ncol].Set(D)
		//
		switch {
		case !okParm && !okConst:
			// Integral row
			continue
		case !okParm && !okVar:
			return noIntegralSolution, nil
		case !okParm:
			if p.options.DeepestCut {
				deepenCut(cut, nvar, D)
			}
			//
			tab.appendRow(minusRow, D, cut[:ncol])
			p.stats.Cuts++
			//
			return cutInserted, nil
		}
		// Parametric cut
		var newparm *NewParm
		//
		parm := findParameter(context, nparm, cut[nvar:])
		//
		if parm < 0 {
			newparm = addParameter(tab, context, nparm, cut[nvar:])
			parm = nparm
		}
		//
		tab.appendRow(minusRow, D, cut[:ncol])
		last := &tab.rows[len(tab.rows)-1]
		last.values[nvar+1+parm].Add(&last.values[nvar+1+parm], D)
		// Without variable coefficients, the cut is a congruence on the
		// parameters whose sign must be decided against the context.
		if !okVar {
			last.flags = unknownRow
		}
		//
		p.stats.Cuts++
		//
		return cutInserted, newparm
	}
	//
	return solutionIsIntegral, nil
}

// deepenCut replaces a constant cut by a multiple (modulo D) which cuts
// deeper, as determined by the Bezout multiplier of its constant.
func deepenCut(cut []big.Int, nvar int, D *big.Int) {
	var t, delta, tau, d, lambda big.Int
	//
	t.Neg(&cut[nvar])
	delta.GCD(nil, nil, &t, D)
	tau.Quo(&t, &delta)
	d.Quo(D, &delta)
	t.Sub(&d, big.NewInt(1))
	lambda.Set(bezout(&t, &tau, &d))
	//
	for g := math.Gcd(&lambda, D); !isOne(g); g = math.Gcd(&lambda, D) {
		lambda.Add(&lambda, &d)
	}
	//
	for j := 0; j < nvar; j++ {
		t.Mul(&lambda, &cut[j])
		cut[j].Set(math.FloorMod(&t, D))
	}
	//
	t.Mul(&cut[nvar], &lambda)
	t.Set(math.FloorMod(&t, D))
	t.Sub(D, &t)
	cut[nvar].Neg(&t)
}

// bezout solves z*y = x (mod delta) for z, provided y and delta are coprime.
// Otherwise, zero is returned.
func bezout(x, y, delta *big.Int) *big.Int {
	var (
		a, b = big.NewInt(1), big.NewInt(0)
		c, d = big.NewInt(0), big.NewInt(1)
		u, v = math.Clone(y), math.Clone(delta)
		e, f big.Int
	)
	//
	for {
		q := math.FloorDiv(u, v)
		r := math.FloorMod(u, v)
		//
		if r.Sign() == 0 {
			break
		}
		//
		u, v = v, r
		e.Mul(q, c)
		e.Sub(a, &e)
		f.Mul(q, d)
		f.Sub(b, &f)
		a, b = c, d
		c, d = math.Clone(&e), math.Clone(&f)
	}
	//
	if !isOne(v) {
		return big.NewInt(0)
	}
	//
	a.Mul(c, x)
	//
	return math.FloorMod(a, delta)
}

// findParameter looks for an existing parameter of the context whose defining
// inequalities match the given cut, which is laid out as [ constant | params |
// divisor ].  Such a parameter must come after every parameter with a
// non-zero coefficient in the cut.  This returns -1 if there is none.
func findParameter(context *tableau, nparm int, cut []big.Int) int {
	var (
		D   = &cut[1+nparm]
		one = big.NewInt(1)
	)
	//
	if nparm == 0 || cut[nparm].Sign() != 0 {
		return -1
	}
	// Upper bound form: cut[0] + D - 1
	cut[0].Add(&cut[0], D)
	cut[0].Sub(&cut[0], one)
	//
	defer func() {
		cut[0].Add(&cut[0], one)
		cut[0].Sub(&cut[0], D)
	}()
	//
	for p := nparm - 1; p >= 0; p-- {
		if cut[1+p].Sign() != 0 {
			break
		} else if !hasCut(context, nparm, p, cut) {
			continue
		}
		// Lower bound form: the negation of the original cut
		cut[0].Add(&cut[0], one)
		cut[0].Sub(&cut[0], D)
		negateAll(cut)
		found := hasCut(context, nparm, p, cut)
		negateAll(cut)
		cut[0].Add(&cut[0], D)
		cut[0].Sub(&cut[0], one)
		//
		if found {
			return p
		}
	}
	//
	return -1
}

// hasCut checks whether the context contains a row matching the given cut
// with the divisor as the coefficient of parameter p.
func hasCut(context *tableau, nparm int, p int, cut []big.Int) bool {
	for i := range context.rows {
		row := context.rows[i].values
		//
		if row[p].Cmp(&cut[1+nparm]) != 0 || row[nparm].Cmp(&cut[0]) != 0 {
			continue
		}
		//
		matches := true
		//
		for col := p + 1; col < nparm && matches; col++ {
			matches = row[col].Sign() == 0
		}
		//
		for col := 0; col < p && matches; col++ {
			matches = row[col].Cmp(&cut[1+col]) == 0
		}
		//
		if matches {
			return true
		}
	}
	//
	return false
}

// addParameter introduces a new parameter q = floor(-(c.p + c0) / D) for a
// given cut, laid out as [ constant | params | divisor ].  The definition of
// integer division gives two inequalities which are added to the context:
//
//	0 <= -(c.p + c0) - D*q <= D - 1
func addParameter(tab *tableau, context *tableau, nparm int, cut []big.Int) *NewParm {
	var (
		D       = &cut[1+nparm]
		newparm = &NewParm{Rank: nparm, Vector: newVector(nparm + 1)}
		lower   = make([]big.Int, nparm+2)
		upper   = make([]big.Int, nparm+2)
	)
	//
	for j := 0; j < nparm; j++ {
		newparm.Vector.Num[j].Neg(&cut[1+j])
		lower[j].Neg(&cut[1+j])
		upper[j].Set(&cut[1+j])
	}
	//
	newparm.Vector.Num[nparm].Neg(&cut[0])
	newparm.Divisor.Set(D)
	//
	lower[nparm].Neg(D)
	upper[nparm].Set(D)
	lower[nparm+1].Neg(&cut[0])
	upper[nparm+1].Sub(&cut[0], big.NewInt(1))
	upper[nparm+1].Add(&upper[nparm+1], D)
	// Make room for the new parameter before the constant
	context.insertColumn(nparm)
	context.appendRow(unknownRow, big.NewInt(1), lower)
	context.appendRow(unknownRow, big.NewInt(1), upper)
	tab.insertColumn(tab.width)
	//
	return newparm
}

func negateAll(vals []big.Int) {
	for i := range vals {
		vals[i].Neg(&vals[i])
	}
}
