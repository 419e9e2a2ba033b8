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

	"github.com/consensys/go-candl/pkg/pip"
	"github.com/consensys/go-candl/pkg/polyhedron"
)

// Violation records that a candidate schedule executes the target of a
// dependence before its source, first at a given scattering dimension.
type Violation struct {
	Dependence *Dependence
	// Dimension is the scattering dimension (from 1) at which the order is
	// reversed.
	Dimension int
	// Domain holds the violating instances, laid out as the dependence domain
	// with the source scattering dimensions appended to the output dimensions
	// and the target ones to the input dimensions.
	Domain *polyhedron.Matrix
}

func (p *Violation) String() string {
	return fmt.Sprintf("%s violated at dimension %d", p.Dependence, p.Dimension)
}

// ComputeViolations computes the dependence graph of an original SCoP, and
// checks it against the scatterings of a transformed SCoP whose statements
// correspond (by label) to the original ones.  Unless FullCheck is set, this
// stops at the first violation.
func ComputeViolations(original, transformed *Scop, options Options) ([]*Violation, *Graph) {
	var (
		graph      = ComputeDependences(original, options)
		context    = original.ContextOrUniverse()
		violations []*Violation
	)
	//
	for _, dep := range graph.Edges() {
		source := transformed.Find(dep.Source.Label)
		target := transformed.Find(dep.Target.Label)
		//
		if source == nil || target == nil {
			panic(fmt.Sprintf("no transformed statement for %s", dep))
		} else if source.Scattering == nil || target.Scattering == nil {
			panic(fmt.Sprintf("missing scattering for %s", dep))
		}
		//
		vs := violationsOf(dep, context, source.Scattering, target.Scattering, options.FullCheck)
		violations = append(violations, vs...)
		//
		if len(vs) > 0 && !options.FullCheck {
			break
		}
	}
	//
	return violations, graph
}

// violationsOf checks a single dependence at every common scattering
// dimension.
func violationsOf(dep *Dependence, context *polyhedron.Matrix, src, tgt *polyhedron.Matrix,
	fullCheck bool) []*Violation {
	var violations []*Violation
	//
	for dim := 1; dim <= min(src.OutputDims(), tgt.OutputDims()); dim++ {
		system := violationSystem(dep, src, tgt, dim)
		//
		if pip.HasIntegerPoint(system, context) {
			violations = append(violations, &Violation{dep, dim, system})
			//
			if !fullCheck {
				break
			}
		}
	}
	//
	return violations
}

// violationSystem constructs the instances of a dependence whose scattering
// dates agree on the first dim-1 dimensions, and where the source comes
// strictly after the target at dimension dim.
func violationSystem(dep *Dependence, src, tgt *polyhedron.Matrix, dim int) *polyhedron.Matrix {
	var (
		domain = dep.Domain
		ns     = src.OutputDims()
		nt     = tgt.OutputDims()
		out    = domain.OutputDims()
		in     = domain.InputDims()
		nl     = domain.LocalDims()
		system = polyhedron.NewRelation(polyhedron.Undefined, 0, out+ns, in+nt, nl+src.LocalDims()+tgt.LocalDims(),
			domain.Parameters())
	)
	//
	embed(system, domain, 1, system.InputColumn(0), system.LocalColumn(0), false)
	embed(system, src, system.OutputColumn(out), dep.SourceColumn(0), system.LocalColumn(nl), false)
	embed(system, tgt, system.InputColumn(in), system.InputColumn(0), system.LocalColumn(nl+src.LocalDims()), false)
	//
	for k := 0; k < dim; k++ {
		row := system.AppendRow()
		system.SetInt64(row, system.OutputColumn(out+k), 1)
		system.SetInt64(row, system.InputColumn(in+k), -1)
		//
		if k == dim-1 {
			system.MarkInequality(row)
			system.SetInt64(row, system.ConstColumn(), -1)
		}
	}
	//
	return system
}
