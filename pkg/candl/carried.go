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
	"github.com/consensys/go-candl/pkg/pip"
	"github.com/consensys/go-candl/pkg/polyhedron"
)

// IsLoopCarried determines whether a dependence is carried by a given loop.
// That is, whether there are dependent instances which agree on all outer
// iterators, but differ on the iterator of the loop.  The loop must surround
// source and target at the same position.
func IsLoopCarried(dep *Dependence, loop int) bool {
	var (
		i    = dep.Source.LoopPosition(loop)
		test = dep.Domain.Clone()
	)
	//
	if i < 0 || i != dep.Target.LoopPosition(loop) {
		return false
	}
	//
	for k := 0; k < i; k++ {
		row := test.AppendRow()
		test.SetInt64(row, dep.SourceColumn(k), -1)
		test.SetInt64(row, dep.TargetColumn(k), 1)
	}
	// source > target
	row := test.AppendRow()
	test.MarkInequality(row)
	test.SetInt64(row, dep.SourceColumn(i), 1)
	test.SetInt64(row, dep.TargetColumn(i), -1)
	test.SetInt64(row, test.ConstColumn(), -1)
	//
	if pip.HasRationalPoint(test, nil) {
		return true
	}
	// source < target
	test.SetInt64(row, dep.SourceColumn(i), -1)
	test.SetInt64(row, dep.TargetColumn(i), 1)
	//
	return pip.HasRationalPoint(test, nil)
}

// IsLoopIndependent determines whether a dependence can hold between
// instances with identical iterators.
func IsLoopIndependent(dep *Dependence) bool {
	test := dep.Domain.Clone()
	//
	for i := 0; i < min(dep.SourceDims, dep.TargetDims); i++ {
		row := test.AppendRow()
		test.SetInt64(row, dep.SourceColumn(i), 1)
		test.SetInt64(row, dep.TargetColumn(i), -1)
	}
	//
	return pip.HasRationalPoint(test, polyhedron.NewMatrix(0, test.Parameters()+2))
}

// pruneWithPrivatization restricts every dependence on a scalar which is
// privatizable in a loop carrying it to identical iterations of that loop.
// Such flow dependences become RAWScalarPrivatized, and dependences left
// without an integer point are removed.  This returns the number of
// dependences removed.
func (p *analyzer) pruneWithPrivatization(graph *Graph) int {
	if p.privatizable == nil {
		// The privatization table is computed without expansion
		options := p.options
		options.ScalarExpansion = false
		options.ScalarPrivatization = true
		//
		a := newAnalyzer(p.scop, options)
		a.analyzeScalars()
		p.privatizable = a.privatizable
	}
	//
	return graph.Retain(func(dep *Dependence) bool {
		refs, reft := dep.ArrayRefs()
		//
		pos, loop := p.privatizedLoop(dep.Source, refs)
		if pos < 0 {
			pos, loop = p.privatizedLoop(dep.Target, reft)
		}
		//
		if pos < 0 || !IsLoopCarried(dep, loop) {
			return true
		}
		//
		row := dep.Domain.AppendRow()
		dep.Domain.SetInt64(row, dep.SourceColumn(pos), 1)
		dep.Domain.SetInt64(row, dep.TargetColumn(pos), -1)
		//
		if dep.Kind == RAW {
			dep.Kind = RAWScalarPrivatized
		}
		//
		return pip.HasIntegerPoint(dep.Domain, nil)
	})
}

// privatizedLoop returns the position and identifier of the outermost loop
// surrounding a statement in which a given variable is privatizable, or -1
// if there is none.
func (p *analyzer) privatizedLoop(s *Statement, id int) (int, int) {
	for i := 0; i < s.Depth; i++ {
		if p.privatizable[privatization{id, s.Index[i]}] {
			return i, s.Index[i]
		}
	}
	//
	return -1, 0
}
