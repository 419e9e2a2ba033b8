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
	log "github.com/sirupsen/logrus"
)

// lastWriter restricts every dependence (other than anti dependences) to its
// last source instance, for each target instance.  When the last source is
// described by several regions, the dependence is split into one edge per
// region, placed directly after the original.
func (p *analyzer) lastWriter(graph *Graph) {
	for i := 0; i < graph.Len(); i++ {
		dep := graph.Get(i)
		//
		if dep.Kind == WAR {
			continue
		}
		//
		domains := lastWriterDomains(dep)
		//
		if len(domains) == 0 {
			continue
		}
		//
		for k, domain := range domains[1:] {
			split := dep.Clone()
			split.Domain = domain
			graph.insert(i+1+k, split)
		}
		//
		dep.Domain = domains[0]
		i += len(domains) - 1
	}
}

// lastWriterDomains computes the parametric lexicographic maximum of the
// source instance (with the target instance as parameters), and conjoins each
// region of the result with the dependence domain.  Integer divisions in the
// result become new local dimensions.  This returns nil when the maximum
// cannot be computed.
func lastWriterDomains(dep *Dependence) []*polyhedron.Matrix {
	var (
		domain = dep.Domain
		ns     = dep.SourceDims + dep.SourceAccessDims
		nt     = dep.TargetDims + dep.TargetAccessDims
		nl     = domain.LocalDims()
		np     = domain.Parameters()
		// [ source | locals | target | parameters ]
		problem = polyhedron.NewMatrix(0, ns+nl+nt+np+2)
		// [ target | parameters ]
		context = polyhedron.NewMatrix(0, nt+np+2)
		options = pip.Options{Integer: true, Maximize: true, Simplify: true}
	)
	//
	for i := 0; i < domain.Rows(); i++ {
		var (
			src  = domain.Row(i)
			prow = problem.Row(problem.AppendRow())
		)
		//
		prow[0].Set(&src[0])
		//
		for k := 0; k < ns; k++ {
			prow[1+k].Set(&src[domain.OutputColumn(k)])
		}
		//
		for k := 0; k < nl; k++ {
			prow[1+ns+k].Set(&src[domain.LocalColumn(k)])
		}
		//
		for k := 0; k < nt; k++ {
			prow[1+ns+nl+k].Set(&src[domain.InputColumn(k)])
		}
		//
		for k := 0; k <= np; k++ {
			prow[1+ns+nl+nt+k].Set(&src[domain.ParamColumn(k)])
		}
		// Constraints on the target alone form the context
		if domain.IsZeroRange(i, 1, 1+ns) && domain.IsZeroRange(i, domain.LocalColumn(0), domain.ParamColumn(0)) {
			crow := context.Row(context.AppendRow())
			//
			crow[0].Set(&prow[0])
			//
			for k := 1; k < len(crow); k++ {
				crow[k].Set(&prow[ns+nl+k])
			}
		}
	}
	//
	q := pip.Solve(problem, context, -1, options)
	//
	if q == nil {
		log.Warnf("last writer of %s failed, leaving dependence unchanged", dep)
		return nil
	}
	//
	var (
		regions = pip.ToPolyhedra(q, ns+nl, nt+np)
		domains = make([]*polyhedron.Matrix, len(regions))
	)
	//
	for i, region := range regions {
		domains[i] = conjoinRegion(domain, region, ns, nt)
	}
	//
	return domains
}

// conjoinRegion adds the constraints of a region of the last writer quast to
// a dependence domain.  The region is laid out as [ source | locals | new
// locals | target | parameters ], where new locals are introduced by integer
// divisions and are appended to the locals of the domain.
func conjoinRegion(domain, region *polyhedron.Matrix, ns, nt int) *polyhedron.Matrix {
	var (
		nl    = domain.LocalDims()
		np    = domain.Parameters()
		extra = region.LocalDims()
		m     = domain.Clone()
	)
	//
	m.InsertColumns(m.ParamColumn(0), extra)
	m.SetAttributes(ns, nt, nl+extra, np)
	//
	for i := 0; i < region.Rows(); i++ {
		var (
			src = region.Row(i)
			dst = m.Row(m.AppendRow())
		)
		//
		dst[0].Set(&src[0])
		//
		for k := 0; k < ns; k++ {
			dst[m.OutputColumn(k)].Set(&src[1+k])
		}
		//
		for k := 0; k < nl+extra; k++ {
			dst[m.LocalColumn(k)].Set(&src[1+ns+k])
		}
		//
		for k := 0; k < nt; k++ {
			dst[m.InputColumn(k)].Set(&src[region.ParamColumn(k)])
		}
		//
		for k := 0; k <= np; k++ {
			dst[m.ParamColumn(k)].Set(&src[region.ParamColumn(nt+k)])
		}
	}
	//
	return m
}
