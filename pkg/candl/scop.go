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
	"fmt"
	"math/big"
	"slices"

	"github.com/consensys/go-candl/pkg/polyhedron"
	"github.com/pkg/errors"
)

// Scop is a static control part: a sequence of statements whose iteration
// domains, schedules and array accesses are all affine in the enclosing loop
// iterators and a common set of parameters.
type Scop struct {
	// Context constrains the parameters.  This may be nil, in which case the
	// parameters are unconstrained (other than being non-negative).
	Context *polyhedron.Matrix
	// Statements in textual order.
	Statements []*Statement
}

// Statement describes a single statement of a SCoP.
type Statement struct {
	// Label is the textual position of this statement.
	Label int
	// Depth is the number of loops surrounding this statement.
	Depth int
	// Index identifies the loops surrounding this statement, from outermost
	// to innermost.  Two statements share a loop iff they have the same
	// identifier at the same position.
	Index []int
	// Domain is the iteration domain, with one output dimension per
	// surrounding loop.
	Domain *polyhedron.Matrix
	// Scattering maps each iteration to its execution date.
	Scattering *polyhedron.Matrix
	// Accesses holds the read and write access relations of this statement.
	// Note that scalar renaming and expansion rewrite these in place.
	Accesses []*polyhedron.Matrix
	// Commutative holds the labels of statements which this one commutes
	// with.
	Commutative []int
}

// Parameters returns the number of global parameters of this SCoP.
func (p *Scop) Parameters() int {
	if p.Context != nil {
		return p.Context.Columns() - 2
	} else if len(p.Statements) > 0 {
		return p.Statements[0].Domain.Parameters()
	}
	//
	return 0
}

// ContextOrUniverse returns the context of this SCoP, or an unconstrained
// context of the right width when none was given.
func (p *Scop) ContextOrUniverse() *polyhedron.Matrix {
	if p.Context != nil {
		return p.Context
	}
	//
	return polyhedron.NewRelation(polyhedron.Context, 0, 0, 0, 0, p.Parameters())
}

// Find returns the statement with a given label, or nil if there is none.
func (p *Scop) Find(label int) *Statement {
	for _, s := range p.Statements {
		if s.Label == label {
			return s
		}
	}
	//
	return nil
}

// Validate checks the structural consistency of this SCoP: every relation
// passes its integrity check, and everything agrees on the number of
// parameters.
func (p *Scop) Validate() error {
	nparams := p.Parameters()
	//
	if p.Context != nil {
		if err := p.Context.IntegrityCheck(); err != nil {
			return errors.Wrap(err, "context")
		}
	}
	//
	for i, s := range p.Statements {
		if s.Domain == nil {
			return errors.Errorf("statement %d has no domain", i)
		}
		//
		relations := append([]*polyhedron.Matrix{s.Domain}, s.Accesses...)
		//
		if s.Scattering != nil {
			relations = append(relations, s.Scattering)
		}
		//
		for _, r := range relations {
			if err := r.IntegrityCheck(); err != nil {
				return errors.Wrapf(err, "statement %d (%s)", i, r.Kind().String())
			} else if r.Parameters() != nparams {
				return errors.Errorf("statement %d (%s) has %d parameters (expected %d)", i, r.Kind().String(),
					r.Parameters(), nparams)
			}
		}
		//
		for j, a := range s.Accesses {
			if !a.Kind().IsAccess() {
				return errors.Errorf("statement %d access %d is a %s relation", i, j, a.Kind().String())
			} else if a.InputDims() != s.Domain.OutputDims() {
				return errors.Errorf("statement %d access %d has %d input dimensions (expected %d)", i, j,
					a.InputDims(), s.Domain.OutputDims())
			}
		}
		//
		if len(s.Index) != s.Depth {
			return errors.Errorf("statement %d has depth %d but %d loop indices", i, s.Depth, len(s.Index))
		}
	}
	//
	return nil
}

// CommonLoops returns the number of outermost loops shared by two statements.
func (p *Statement) CommonLoops(other *Statement) int {
	n := 0
	//
	for n < p.Depth && n < other.Depth && p.Index[n] == other.Index[n] {
		n++
	}
	//
	return n
}

// LoopPosition returns the position of a given loop in the index of this
// statement, or -1 if the statement is not surrounded by it.
func (p *Statement) LoopPosition(loop int) int {
	return slices.Index(p.Index[:p.Depth], loop)
}

// CommutesWith determines whether this statement has been declared to
// commute with another.
func (p *Statement) CommutesWith(other *Statement) bool {
	return slices.Contains(p.Commutative, other.Label) || slices.Contains(other.Commutative, p.Label)
}

func (p *Statement) String() string {
	return fmt.Sprintf("S%d", p.Label)
}

// reference classifies how a statement refers to a variable.
type reference uint8

const (
	unreferenced reference = iota
	used
	defined
	definedUsed
)

// references determines how this statement refers to a given variable.
func (p *Statement) references(id int) reference {
	var use, def bool
	//
	for _, a := range p.Accesses {
		if a.ArrayId() != id {
			continue
		} else if a.Kind() == polyhedron.Read {
			use = true
		} else {
			def = true
		}
	}
	//
	switch {
	case use && def:
		return definedUsed
	case def:
		return defined
	case use:
		return used
	default:
		return unreferenced
	}
}

// InitStatementOrder assigns labels, depths and loop indices to all
// statements from their (2d+1 form) scatterings.  Labels follow textual
// order.  Consecutive statements share a loop at a given position when their
// scattering constants agree on every preceding scalar dimension.
// Statements without a usable scattering share no loop with their
// predecessor.
func InitStatementOrder(scop *Scop) {
	var (
		next     = 0
		prev     *Statement
		prevBeta []*big.Int
	)
	//
	for i, s := range scop.Statements {
		s.Label = i
		s.Depth = s.Domain.OutputDims()
		s.Index = make([]int, s.Depth)
		//
		beta := scatteringBeta(s.Scattering, s.Depth)
		shared := 0
		//
		if prev != nil && beta != nil && prevBeta != nil {
			for shared < s.Depth && shared < prev.Depth && beta[shared].Cmp(prevBeta[shared]) == 0 {
				shared++
			}
		}
		//
		for k := range s.Index {
			if k < shared {
				s.Index[k] = prev.Index[k]
			} else {
				s.Index[k] = next
				next++
			}
		}
		//
		prev, prevBeta = s, beta
	}
}

// scatteringBeta extracts the constant (even) dimensions of a 2d+1
// scattering, or nil if they are not all defined by a constant equality.
func scatteringBeta(scattering *polyhedron.Matrix, depth int) []*big.Int {
	if scattering == nil || scattering.OutputDims() < 2*depth+1 {
		return nil
	}
	//
	beta := make([]*big.Int, depth+1)
	//
	for k := range beta {
		col := scattering.OutputColumn(2 * k)
		row := scattering.RowForDimension(2 * k)
		//
		if row < 0 || !scattering.IsZeroRange(row, 1, col) ||
			!scattering.IsZeroRange(row, col+1, scattering.ConstColumn()) {
			return nil
		}
		//
		var value, rem big.Int
		//
		value.QuoRem(scattering.Get(row, scattering.ConstColumn()), scattering.Get(row, col), &rem)
		//
		if rem.Sign() != 0 {
			return nil
		}
		//
		beta[k] = value.Neg(&value)
	}
	//
	return beta
}
