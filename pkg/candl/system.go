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

	"github.com/consensys/go-candl/pkg/pip"
	"github.com/consensys/go-candl/pkg/polyhedron"
	"github.com/consensys/go-candl/pkg/util/math"
)

// dependenceSystem determines whether a dependence of a given kind exists
// between two references at a given depth.  If so, the dependence is
// returned, otherwise nil.
func dependenceSystem(context *polyhedron.Matrix, source, target *Statement, refSource, refTarget int,
	kind Kind, depth int) *Dependence {
	// At depth 0, different statements are ordered textually.
	if source != target && depth == 0 && source.Label > target.Label {
		return nil
	}
	//
	dep := buildSystem(source, target, refSource, refTarget, depth, source.Label >= target.Label)
	//
	if !gcdTest(dep.Domain) || !pip.HasRationalPoint(dep.Domain, context) {
		return nil
	}
	//
	dep.Kind = kind
	//
	return dep
}

// buildSystem constructs the dependence domain for a given pair of references
// at a given depth.  Rows are, in order: the source domain, the target
// domain, the source access, the target access, the subscript equalities and
// finally the precedence constraints.  The last precedence constraint is
// strict when the source does not textually precede the target.
func buildSystem(source, target *Statement, refSource, refTarget int, depth int, strict bool) *Dependence {
	var (
		src = source.Accesses[refSource]
		tgt = target.Accesses[refTarget]
		dep = &Dependence{
			Source:             source,
			Target:             target,
			RefSource:          refSource,
			RefTarget:          refTarget,
			Depth:              depth,
			SourceDims:         source.Domain.OutputDims(),
			SourceAccessDims:   src.OutputDims(),
			TargetDims:         target.Domain.OutputDims(),
			TargetAccessDims:   tgt.OutputDims(),
			SourceLocals:       source.Domain.LocalDims(),
			SourceAccessLocals: src.LocalDims(),
			TargetLocals:       target.Domain.LocalDims(),
			TargetAccessLocals: tgt.LocalDims(),
		}
		out    = dep.SourceDims + dep.SourceAccessDims
		in     = dep.TargetDims + dep.TargetAccessDims
		locals = dep.SourceLocals + dep.SourceAccessLocals + dep.TargetLocals + dep.TargetAccessLocals
		system = polyhedron.NewRelation(polyhedron.Undefined, 0, out, in, locals, source.Domain.Parameters())
		// Start of each group of locals
		srcLocal    = system.LocalColumn(0)
		srcAccLocal = srcLocal + dep.SourceLocals
		tgtLocal    = srcAccLocal + dep.SourceAccessLocals
		tgtAccLocal = tgtLocal + dep.TargetLocals
	)
	//
	embed(system, source.Domain, 1, 0, srcLocal, false)
	embed(system, target.Domain, 1+out, 0, tgtLocal, false)
	embed(system, src, 1+dep.SourceDims, 1, srcAccLocal, false)
	embed(system, tgt, 1+out+dep.TargetDims, 1+out, tgtAccLocal, true)
	// Subscripts (including the array identifier) must match
	for i := 0; i < min(dep.SourceAccessDims, dep.TargetAccessDims); i++ {
		row := system.AppendRow()
		system.SetInt64(row, 1+dep.SourceDims+i, -1)
		system.SetInt64(row, 1+out+dep.TargetDims+i, 1)
	}
	//
	common := source.CommonLoops(target)
	//
	for i := 0; i < depth; i++ {
		row := system.AppendRow()
		system.SetInt64(row, dep.SourceColumn(i), -1)
		system.SetInt64(row, dep.TargetColumn(i), 1)
		//
		if i == depth-1 {
			system.MarkInequality(row)
			//
			if strict || depth < common {
				system.SetInt64(row, system.ConstColumn(), -1)
			}
		}
	}
	//
	dep.Domain = system
	//
	return dep
}

// embed appends the rows of a relation to a larger system, placing its
// output, input and local dimensions at given columns.  Parameters and
// constants line up with those of the system.  Equalities can optionally be
// negated.
func embed(system, rel *polyhedron.Matrix, outCol, inCol, localCol int, negateEqualities bool) {
	for i := 0; i < rel.Rows(); i++ {
		row := system.AppendRow()
		src := rel.Row(i)
		dst := system.Row(row)
		//
		dst[0].Set(&src[0])
		//
		for j := 0; j < rel.OutputDims(); j++ {
			dst[outCol+j].Set(&src[rel.OutputColumn(j)])
		}
		//
		for j := 0; j < rel.InputDims(); j++ {
			dst[inCol+j].Set(&src[rel.InputColumn(j)])
		}
		//
		for j := 0; j < rel.LocalDims(); j++ {
			dst[localCol+j].Set(&src[rel.LocalColumn(j)])
		}
		//
		for j := 0; j <= rel.Parameters(); j++ {
			dst[system.ParamColumn(j)].Set(&src[rel.ParamColumn(j)])
		}
		//
		if negateEqualities && rel.IsEquality(i) {
			system.NegateRow(row)
		}
	}
}

// gcdTest applies quick exactness checks to the equalities of a dependence
// system.  Every equality row is checked, not only those of the access
// relations: domain equalities and the rows tying source and target
// subscripts are covered as well.  This returns false only when the system
// certainly has no integer point: either an equality has no variables and no
// parameters but a non-zero constant, or the gcd of its variable coefficients
// does not divide its constant.  Equalities involving parameters are not
// checked.
func gcdTest(system *polyhedron.Matrix) bool {
	var (
		params = system.ParamColumn(0)
		konst  = system.ConstColumn()
	)
	//
	for i := 0; i < system.Rows(); i++ {
		if !system.IsEquality(i) {
			continue
		}
		//
		var (
			row       = system.Row(i)
			nullIter  = system.IsZeroRange(i, 1, params)
			nullParam = system.IsZeroRange(i, params, konst)
			nullConst = row[konst].Sign() == 0
		)
		//
		switch {
		case nullIter && nullParam && !nullConst:
			return false
		case nullIter && !gcdTestContext(system, i):
			return false
		case nullConst || !nullParam:
			continue
		}
		//
		coeffs := make([]*big.Int, 0, params-1)
		for j := 1; j < params; j++ {
			coeffs = append(coeffs, &row[j])
		}
		//
		if !math.Divides(math.GcdOf(coeffs...), &row[konst]) {
			return false
		}
	}
	//
	return true
}

// gcdTestContext checks an equality which involves only parameters against
// the context.  No such check is currently made, hence this always passes.
func gcdTestContext(_ *polyhedron.Matrix, _ int) bool {
	return true
}
