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
	"github.com/consensys/go-candl/pkg/util/math"
	log "github.com/sirupsen/logrus"
)

type exploreFlags uint8

const (
	integralSolutions exploreFlags = 1 << iota
	dualSolutions
)

// Statistics summarises the work performed by a session.
type Statistics struct {
	Pivots      uint
	Cuts        uint
	Splits      uint
	Feasibility uint
}

func (s Statistics) String() string {
	return fmt.Sprintf("%d pivots, %d cuts, %d splits, %d feasibility checks", s.Pivots, s.Cuts, s.Splits,
		s.Feasibility)
}

// Session solves parametric problems under a fixed set of options.  A session
// is not safe for concurrent use, but independent sessions are.
type Session struct {
	options Options
	stats   Statistics
}

// NewSession constructs a new session for the given options.
func NewSession(options Options) *Session {
	return &Session{options: options}
}

// Statistics returns the work performed by this session so far.
func (p *Session) Statistics() Statistics {
	return p.stats
}

// Solve computes the lexicographic minimum (or maximum) of the unknowns of a
// system subject to a context.  See Session.Solve for details.
func Solve(unknowns, context *polyhedron.Matrix, bignum int, options Options) *Quast {
	return NewSession(options).Solve(unknowns, context, bignum)
}

// Solve computes the lexicographic minimum (or maximum) of the unknowns of a
// system of constraints, parameterised over the parameters of a given context.
// The system is laid out as [ marker | unknowns | parameters | constant ], and
// the context as [ marker | parameters | constant ].  A nil context stands for
// the universe.  Either a non-negative bignum column (indexed over the
// system) is given, or -1 if there is none.  This returns nil when the system
// has no solution anywhere in the context (including when the context itself
// is empty).
func (p *Session) Solve(unknowns, context *polyhedron.Matrix, bignum int) *Quast {
	var (
		nparm  = 0
		shift  = 0
		urs    = 0
		flags  editFlags
		eflags exploreFlags
	)
	//
	if unknowns == nil {
		return nil
	} else if context != nil {
		nparm = context.Columns() - 2
	}
	//
	nvar := unknowns.Columns() - nparm - 2
	//
	if nvar < 0 {
		panic(fmt.Sprintf("system has fewer columns (%d) than context parameters (%d)", unknowns.Columns(), nparm))
	}
	//
	if p.options.Maximize {
		flags, shift = editMax, 1
	} else if p.options.UrsUnknowns {
		flags, shift = editShift, -1
	}
	//
	if p.options.UrsParams {
		urs = nparm
		//
		if bignum >= 0 {
			urs--
		}
	}
	// Maximisation and unrestricted unknowns rely on a bignum.
	if shift != 0 && bignum < 0 {
		bignum = unknowns.Columns() - 1
		flags |= editRemove
	}
	//
	if context == nil {
		context = polyhedron.NewMatrix(0, 2)
	}
	//
	ctx := fromContext(context, shift, bignum-nvar-1, urs)
	//
	if p.options.Integer {
		ctx.simplify(ctx.width - 1)
	}
	//
	if ctx.height() > 0 && !p.feasible(ctx, nil) {
		p.report()
		return nil
	}
	//
	tab := fromProblem(unknowns, nvar, shift, bignum, urs)
	//
	if p.options.Integer {
		tab.simplify(nvar)
		eflags |= integralSolutions
	} else if p.options.ComputeDual {
		eflags |= dualSolutions
	}
	//
	q := p.explore(tab, ctx, nvar, bignum, eflags)
	//
	if p.options.Simplify {
		q = simplify(q)
	}
	//
	q.edit(bignum-nvar-1, urs, flags)
	//
	if eflags&dualSolutions != 0 {
		q.mergeEqualityDuals(equalityRows(unknowns))
	}
	//
	p.report()
	//
	if q.IsVoid() {
		return nil
	}
	//
	return q
}

func (p *Session) report() {
	if p.options.Verbose {
		log.Debugf("pip: %s", p.stats.String())
	}
}

func equalityRows(m *polyhedron.Matrix) []bool {
	eqs := make([]bool, m.Rows())
	//
	for i := range eqs {
		eqs[i] = m.IsEquality(i)
	}
	//
	return eqs
}

// explore solves a given tableau within a given context, returning the quast
// of its solutions.  The tableau is modified in place, whilst the context is
// copied first.
func (p *Session) explore(tab *tableau, ctxt *tableau, nvar int, bignum int, flags exploreFlags) *Quast {
	var (
		context = ctxt.clone()
		root    *Quast
		tail    = &root
		pending []NewParm
	)
	// emit attaches a node at the current position, along with any new
	// parameters introduced since the last node.
	emit := func(node *Quast) *Quast {
		node.NewParms = pending
		pending = nil
		*tail = node
		//
		return node
	}
	//
	tab.sortRows(nvar)
	//
	for {
		pivi := tab.search(minusRow)
		//
		if pivi < 0 {
			pivi = examineCoefficients(tab, nvar, bignum)
		}
		//
		if pivi < 0 {
			p.compatibilityTest(tab, context, nvar)
			pivi = tab.search(minusRow)
		}
		//
		if pivi < 0 {
			if pivi = tab.search(criticRow); pivi < 0 {
				pivi = tab.search(unknownRow)
			}
			//
			if pivi >= 0 {
				// Split on the sign of this row
				cond := splitCondition(tab.rows[pivi].values, nvar, flags&integralSolutions != 0)
				context.appendRow(unknownRow, big.NewInt(1), cond)
				then := tab.clone()
				then.rows[pivi].flags = plusRow
				node := emit(&Quast{kind: splitNode, Condition: conditionVector(cond)})
				node.Then = p.explore(then, context, nvar, bignum, flags)
				tail = &node.Else
				// Continue where the condition is negative
				negateCondition(context.rows[context.height()-1].values)
				tab.rows[pivi].flags = minusRow
				p.stats.Splits++
			} else if flags&integralSolutions == 0 {
				emit(p.leaf(tab, nvar, flags))
				return root
			} else {
				outcome, newparm := p.cut(tab, context, nvar, bignum)
				//
				switch outcome {
				case solutionIsIntegral:
					emit(p.leaf(tab, nvar, flags))
					return root
				case noIntegralSolution:
					emit(&Quast{kind: voidNode})
					return root
				}
				//
				if newparm != nil {
					pending = append(pending, *newparm)
				}
				//
				continue
			}
		}
		//
		if !pivot(tab, pivi, nvar) {
			emit(&Quast{kind: voidNode})
			return root
		}
		//
		p.stats.Pivots++
	}
}

// compatibilityTest attempts to decide the sign of every undetermined row by
// checking which signs are compatible with the context.  This stops at the
// first row found to be always negative.
func (p *Session) compatibilityTest(tab *tableau, context *tableau, nvar int) {
	var nparm = tab.width - nvar - 1
	//
	if nparm == 0 {
		return
	}
	//
	for i := range tab.rows {
		row := &tab.rows[i]
		//
		if row.flags&(criticRow|unknownRow) == 0 {
			continue
		}
		//
		var (
			critic = isCritic(row.values, nvar)
			plus   = make([]big.Int, nparm+1)
			minus  = make([]big.Int, nparm+1)
		)
		//
		for j := 0; j < nparm; j++ {
			plus[j].Set(&row.values[nvar+1+j])
			minus[j].Neg(&row.values[nvar+1+j])
		}
		// Without a positive variable coefficient, the row must be strictly
		// positive to be usable.
		plus[nparm].Set(&row.values[nvar])
		//
		if !critic {
			plus[nparm].Sub(&plus[nparm], math.One)
		}
		//
		minus[nparm].Neg(&row.values[nvar])
		minus[nparm].Sub(&minus[nparm], math.One)
		//
		canBePositive := p.feasible(context, plus)
		canBeNegative := p.feasible(context, minus)
		//
		switch {
		case canBePositive && canBeNegative:
			if critic {
				row.flags = criticRow
			} else {
				row.flags = unknownRow
			}
		case canBeNegative:
			row.flags = minusRow
			return
		case canBePositive:
			row.flags = plusRow
		default:
			row.flags = zeroRow
		}
	}
}

// feasible checks whether a context (optionally extended with an additional
// constraint) contains an integral point.
func (p *Session) feasible(context *tableau, extra []big.Int) bool {
	var nparm = context.width - 1
	//
	tab := context.withVirtualRows(nparm)
	//
	if extra != nil {
		tab.appendRow(unknownRow, math.One, extra)
	}
	//
	p.stats.Feasibility++
	//
	return !p.explore(tab, nil, nparm, -1, integralSolutions).IsVoid()
}

// leaf constructs a solution node from the current values of the unknowns.
func (p *Session) leaf(tab *tableau, nvar int, flags exploreFlags) *Quast {
	var (
		nparm = tab.width - nvar - 1
		list  = make([]Vector, nvar)
	)
	//
	for i := 0; i < nvar; i++ {
		v := newVector(nparm + 1)
		denom := &tab.rows[i].denom
		//
		for j := 0; j < nparm; j++ {
			v.Num[j].Set(tab.value(i, nvar+1+j))
			v.Den[j].Set(denom)
		}
		//
		v.Num[nparm].Set(tab.value(i, nvar))
		v.Den[nparm].Set(denom)
		list[i] = v
	}
	//
	node := NewLeaf(list...)
	//
	if flags&dualSolutions != 0 {
		node.Dual = dualValues(tab, nvar)
	}
	//
	return node
}

// dualValues extracts one dual value per input constraint row, which is
// non-zero only for rows which ended up non-basic.
func dualValues(tab *tableau, nvar int) []Vector {
	var count = 0
	//
	for i := range tab.rows {
		count = max(count, tab.rows[i].origin+1)
	}
	//
	duals := make([]Vector, count)
	//
	for i := range duals {
		duals[i] = newVector(1)
	}
	//
	if nvar == 0 {
		return duals
	}
	//
	for i := range tab.rows {
		row := &tab.rows[i]
		//
		if row.origin >= 0 && row.flags&unitRow != 0 {
			duals[row.origin].Num[0].Set(tab.value(0, row.unit))
			duals[row.origin].Den[0].Set(&tab.rows[0].denom)
		}
	}
	//
	return duals
}

// splitCondition extracts the parametric part of a row as a context row
// [ parameters | constant ], reduced by the gcd of its parameter coefficients.
// For integral problems the constant is rounded down accordingly.
func splitCondition(values []big.Int, nvar int, integral bool) []big.Int {
	var (
		nparm = len(values) - nvar - 1
		cond  = make([]big.Int, nparm+1)
		com   big.Int
	)
	//
	for j := 0; j < nparm; j++ {
		com.GCD(nil, nil, &com, &values[nvar+1+j])
	}
	//
	if !integral {
		com.GCD(nil, nil, &com, &values[nvar])
	}
	//
	if com.Sign() == 0 {
		com.SetInt64(1)
	}
	//
	for j := 0; j < nparm; j++ {
		cond[j].Quo(&values[nvar+1+j], &com)
	}
	//
	if integral {
		cond[nparm].Set(math.FloorDiv(&values[nvar], &com))
	} else {
		cond[nparm].Quo(&values[nvar], &com)
	}
	//
	return cond
}

// negateCondition turns c >= 0 into -c-1 >= 0.
func negateCondition(cond []big.Int) {
	negateAll(cond)
	//
	last := &cond[len(cond)-1]
	last.Sub(last, math.One)
}

// conditionVector converts a context row into a vector laid out in the same
// way.
func conditionVector(cond []big.Int) Vector {
	v := newVector(len(cond))
	//
	for i := range cond {
		v.Num[i].Set(&cond[i])
	}
	//
	return v
}
