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
package candl

import (
	"math/big"
	"slices"

	"github.com/consensys/go-candl/pkg/pip"
	"github.com/consensys/go-candl/pkg/polyhedron"
)

// IsScalar determines whether a variable is a scalar, meaning every access
// to it has the array identifier as its only output dimension.
func (p *Scop) IsScalar(id int) bool {
	for _, s := range p.Statements {
		for _, a := range s.Accesses {
			if a.ArrayId() == id && a.OutputDims() > 1 {
				return false
			}
		}
	}
	//
	return true
}

// Scalars returns the scalar variables of this SCoP, in order of first
// reference.
func (p *Scop) Scalars() []int {
	var (
		scalars []int
		checked = make(map[int]bool)
	)
	//
	for _, s := range p.Statements {
		for _, a := range s.Accesses {
			id := a.ArrayId()
			//
			if id == polyhedron.NoArray || checked[id] {
				continue
			}
			//
			checked[id] = true
			//
			if p.IsScalar(id) {
				scalars = append(scalars, id)
			}
		}
	}
	//
	return scalars
}

// maxArrayId returns the largest array identifier used in this SCoP.
func (p *Scop) maxArrayId() int {
	n := 0
	//
	for _, s := range p.Statements {
		for _, a := range s.Accesses {
			n = max(n, a.ArrayId())
		}
	}
	//
	return n
}

// refvarChain returns, in textual order, the statements from dom onwards
// which refer to a given variable and share the first level loops with dom.
// When dom is nil, the chain starts at the first statement.
func refvarChain(scop *Scop, dom *Statement, id int, level int) []*Statement {
	var chain []*Statement
	//
	start := 0
	if dom != nil {
		start = slices.Index(scop.Statements, dom)
	} else if len(scop.Statements) > 0 {
		dom = scop.Statements[0]
	}
	//
	if start < 0 || dom == nil || dom.Depth < level {
		return nil
	}
	//
	for _, s := range scop.Statements[start:] {
		if s.Depth >= level && slices.Equal(s.Index[:level], dom.Index[:level]) &&
			s.references(id) != unreferenced {
			chain = append(chain, s)
		}
	}
	//
	return chain
}

// domainIsIncluded checks whether, on their first level common dimensions,
// the iteration domain of s1 covers that of s2.  Any further dimensions of s2
// are fixed at their lower bound.  This is decided by searching for a point
// of s2 which violates some constraint of s1.
func domainIsIncluded(s1, s2 *Statement, context *polyhedron.Matrix, level int) bool {
	var (
		n      = min(level, s1.Depth, s2.Depth)
		d1     = s1.Domain
		system = s2.Domain.Clone()
	)
	//
	for j := n; j < s2.Depth; j++ {
		if lb := lowerBound(s2.Domain, j); lb != nil {
			row := system.AppendRow()
			system.SetInt64(row, system.OutputColumn(j), -1)
			//
			for k := range lb {
				system.Set(row, system.ParamColumn(k), &lb[k])
			}
		}
	}
	//
	for i := 0; i < d1.Rows(); i++ {
		// Skip constraints on other dimensions
		if !d1.IsZeroRange(i, d1.OutputColumn(n), d1.ParamColumn(0)) {
			continue
		}
		//
		if violates(system, d1, i, n, true, context) {
			return false
		} else if d1.IsEquality(i) && violates(system, d1, i, n, false, context) {
			return false
		}
	}
	//
	return true
}

// violates checks whether a system has an integer point which lies strictly
// on the wrong side of a given constraint, restricted to its first n
// dimensions.  For an inequality (c >= 0) the point must satisfy c <= -1 (when
// negated); an equality can additionally be violated by c >= 1.
func violates(system *polyhedron.Matrix, rel *polyhedron.Matrix, row int, n int, negate bool,
	context *polyhedron.Matrix) bool {
	var (
		test = system.Clone()
		r    = test.AppendRow()
		src  = rel.Row(row)
		dst  = test.Row(r)
	)
	//
	test.MarkInequality(r)
	//
	for j := 0; j < n; j++ {
		dst[test.OutputColumn(j)].Set(&src[rel.OutputColumn(j)])
	}
	//
	for k := 0; k <= rel.Parameters(); k++ {
		dst[test.ParamColumn(k)].Set(&src[rel.ParamColumn(k)])
	}
	//
	if negate {
		test.NegateRow(r)
	}
	// Strict
	konst := &dst[test.ConstColumn()]
	konst.Sub(konst, big.NewInt(1))
	//
	return pip.HasIntegerPoint(test, context)
}

// lowerBound computes the value of the jth dimension at the lexicographic
// minimum of a domain, as an affine function of the parameters.  This returns
// nil when the minimum does not exist, differs between regions of the
// parameter space, or is not integral.
func lowerBound(domain *polyhedron.Matrix, j int) []big.Int {
	var (
		context = polyhedron.NewMatrix(0, domain.Parameters()+2)
		options = pip.IntegerPointOptions()
		bound   *pip.Vector
	)
	//
	q := pip.LexMin(domain, context, options)
	// Void regions are empty domains, and place no bound
	for _, leaf := range q.Leaves() {
		if len(leaf.NewParms) != 0 {
			return nil
		} else if !leaf.IsLeaf() {
			continue
		} else if j >= len(leaf.List) || (bound != nil && !bound.Equal(leaf.List[j])) {
			return nil
		}
		//
		bound = &leaf.List[j]
	}
	//
	if bound == nil || hasNewParms(q) {
		return nil
	}
	//
	lb := make([]big.Int, bound.Len())
	//
	for k := range lb {
		if !bound.Den[k].IsInt64() || bound.Den[k].Int64() != 1 {
			return nil
		}
		//
		lb[k].Set(&bound.Num[k])
	}
	//
	return lb
}

// hasNewParms checks whether any split node of a quast introduces new
// parameters.
func hasNewParms(q *pip.Quast) bool {
	if !q.IsSplit() {
		return false
	}
	//
	return len(q.NewParms) != 0 || hasNewParms(q.Then) || hasNewParms(q.Else)
}

// expandScalar adds a new (last) output dimension to every access of a given
// variable made by a list of statements.  The new dimension is constrained to
// zero until it is linked to an iterator.
func expandScalar(stmts []*Statement, id int) {
	for _, s := range stmts {
		for _, a := range s.Accesses {
			if a.ArrayId() != id {
				continue
			}
			//
			out := a.OutputDims()
			col := a.OutputColumn(out)
			a.InsertColumn(col)
			a.SetAttributes(out+1, a.InputDims(), a.LocalDims(), a.Parameters())
			//
			row := a.AppendRow()
			a.SetInt64(row, col, -1)
		}
	}
}

// analyzeScalars determines, for every scalar and every loop level, whether
// the scalar can be privatized in that loop.  A block of statements within a
// loop (in textual order) is privatizable when it starts with a definition,
// contains a use and no statement of the block covers more iterations than
// the definition.  Privatizable pairs of scalar and loop are recorded and,
// when requested, the scalar is expanded along the privatized loop.
func (p *analyzer) analyzeScalars() {
	p.privatizable = make(map[privatization]bool)
	//
	for _, id := range p.scop.Scalars() {
		first := slices.IndexFunc(p.scop.Statements, func(s *Statement) bool {
			return s.references(id) != unreferenced
		})
		//
		if first < 0 {
			continue
		}
		//
		var (
			fullchain = refvarChain(p.scop, p.scop.Statements[first], id, 0)
			depth     = 0
			offset    = 0
			expanded  = 0
			wasPriv   = false
		)
		//
		for _, s := range fullchain {
			depth = max(depth, s.Depth)
		}
		//
		for level := 1; level <= depth; level++ {
			if wasPriv {
				offset++
				wasPriv = false
			}
			//
			for next := 0; next < len(fullchain); {
				chain := refvarChain(p.scop, fullchain[next], id, level)
				//
				if len(chain) == 0 {
					next++
					continue
				}
				//
				if c, ok := p.privatizableBlock(chain, id, level); ok {
					loop := chain[0].Index[level-1]
					p.debugf("scalar %d can be privatized at loop %d", id, loop)
					//
					if p.options.ScalarExpansion {
						for ; expanded <= offset; expanded++ {
							expandScalar(fullchain, id)
						}
						//
						for _, s := range chain[c:] {
							linkExpansion(s, id, offset+1, level-1)
						}
						//
						wasPriv = true
					}
					//
					if p.options.ScalarPrivatization {
						p.privatizable[privatization{id, loop}] = true
					}
				}
				// Next block
				next = slices.Index(fullchain, chain[len(chain)-1]) + 1
			}
		}
	}
}

// privatizableBlock checks whether a chain of statements referring to a
// scalar forms a privatizable block.  This returns the position of the
// definition which dominates the rest of the block.
func (p *analyzer) privatizableBlock(chain []*Statement, id int, level int) (int, bool) {
	if chain[0].references(id) != defined {
		return 0, false
	}
	// There must be a use in the chain
	if !slices.ContainsFunc(chain[1:], func(s *Statement) bool { return s.references(id) == used }) {
		return 0, false
	}
	//
	c := 0
	//
	for c < len(chain) && chain[c].references(id) == defined {
		k := c + 1
		//
		for ; k < len(chain); k++ {
			if !domainIsIncluded(chain[c], chain[k], p.context, level) {
				// Another definition may still dominate the block
				if chain[c+1].references(id) != defined {
					return c, false
				}
				//
				break
			}
		}
		//
		if k == len(chain) {
			break
		}
		//
		c++
	}
	//
	return c, true
}

// linkExpansion sets the expanded dimension of every access to a variable
// made by a statement equal to a given iterator.
func linkExpansion(s *Statement, id int, dim int, iterator int) {
	for _, a := range s.Accesses {
		if a.ArrayId() == id {
			row := a.RowForDimension(dim)
			a.SetInt64(row, a.InputColumn(iterator), 1)
		}
	}
}
