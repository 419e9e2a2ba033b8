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
	"testing"

	"github.com/consensys/go-candl/pkg/pip"
	"github.com/consensys/go-candl/pkg/polyhedron"
	"github.com/consensys/go-candl/pkg/util/assert"
)

func Test_Dependences_01(t *testing.T) {
	graph := ComputeDependences(shiftScop(), DefaultOptions())
	//
	assert.Equal(t, 1, graph.Len())
	checkDependence(t, graph.Get(0), 0, 1, RAW, 1)
}

func Test_Dependences_02(t *testing.T) {
	options := DefaultOptions()
	options.RAW = false
	//
	assert.Equal(t, 0, ComputeDependences(shiftScop(), options).Len())
}

func Test_Dependences_03(t *testing.T) {
	graph := ComputeDependences(privatizableScop(), DefaultOptions())
	//
	assert.Equal(t, 3, graph.Len())
	checkDependence(t, graph.Get(0), 0, 0, WAW, 1)
	checkDependence(t, graph.Get(1), 0, 1, RAW, 1)
	checkDependence(t, graph.Get(2), 1, 0, WAR, 1)
	//
	for _, dep := range graph.Edges() {
		refs, reft := dep.ArrayRefs()
		assert.Equal(t, 2, refs)
		assert.Equal(t, 2, reft)
	}
}

func Test_Dependences_04(t *testing.T) {
	// S0: x = 1; S1: y = x;
	scop := &Scop{nil, []*Statement{
		{Label: 0, Index: []int{}, Domain: flatDomain(0),
			Accesses: []*polyhedron.Matrix{scalarAccess(polyhedron.Write, 1, 0, 0)}},
		{Label: 1, Index: []int{}, Domain: flatDomain(0),
			Accesses: []*polyhedron.Matrix{
				scalarAccess(polyhedron.Write, 2, 0, 0),
				scalarAccess(polyhedron.Read, 1, 0, 0),
			}},
	}}
	//
	graph := ComputeDependences(scop, DefaultOptions())
	//
	assert.Equal(t, 1, graph.Len())
	checkDependence(t, graph.Get(0), 0, 1, RAW, 0)
	assert.Equal(t, 1, graph.Get(0).RefTarget)
}

func Test_Dependences_05(t *testing.T) {
	// for i { for j { S0: a[i] = a[i] } }
	var (
		domain = polyhedron.FromRows(polyhedron.Domain, 2, 0, 0, 1,
			[]int64{1, 1, 0, 0, 0},
			[]int64{1, -1, 0, 1, -1},
			[]int64{1, 0, 1, 0, 0},
			[]int64{1, 0, -1, 1, -1})
		access = func(kind polyhedron.Kind) *polyhedron.Matrix {
			return polyhedron.FromRows(kind, 2, 2, 0, 1,
				[]int64{0, -1, 0, 0, 0, 0, 1},
				[]int64{0, 0, -1, 1, 0, 0, 0})
		}
		scop = &Scop{positiveContext(), []*Statement{{
			Label: 0, Depth: 2, Index: []int{0, 1}, Domain: domain,
			Accesses: []*polyhedron.Matrix{access(polyhedron.Write), access(polyhedron.Read)},
		}}}
	)
	//
	graph := ComputeDependences(scop, DefaultOptions())
	// Carried by the inner loop only
	assert.Equal(t, 3, graph.Len())
	//
	for _, dep := range graph.Edges() {
		assert.Equal(t, 2, dep.Depth)
		assert.False(t, dep.Kind == RAR)
	}
}

func Test_Dependences_07(t *testing.T) {
	// for i { for j { S0: a[0] = a[0] } }
	var (
		domain = polyhedron.FromRows(polyhedron.Domain, 2, 0, 0, 1,
			[]int64{1, 1, 0, 0, 0},
			[]int64{1, -1, 0, 1, -1},
			[]int64{1, 0, 1, 0, 0},
			[]int64{1, 0, -1, 1, -1})
		access = func(kind polyhedron.Kind) *polyhedron.Matrix {
			return polyhedron.FromRows(kind, 2, 2, 0, 1,
				[]int64{0, -1, 0, 0, 0, 0, 1},
				[]int64{0, 0, -1, 0, 0, 0, 0})
		}
		scop = &Scop{positiveContext(), []*Statement{{
			Label: 0, Depth: 2, Index: []int{0, 1}, Domain: domain,
			Accesses: []*polyhedron.Matrix{access(polyhedron.Write), access(polyhedron.Read)},
		}}}
		depths [3]int
	)
	//
	graph := ComputeDependences(scop, DefaultOptions())
	// Carried by both loops
	for _, dep := range graph.Edges() {
		assert.True(t, dep.Depth >= 1 && dep.Depth <= 2, "unexpected depth %d", dep.Depth)
		depths[dep.Depth]++
	}
	//
	assert.Equal(t, 0, depths[0])
	assert.Equal(t, 3, depths[1])
	assert.Equal(t, 3, depths[2])
}

func Test_Dependences_06(t *testing.T) {
	options := DefaultOptions()
	options.RAR = true
	// Only a is read
	scop := shiftScop()
	scop.Statements[0].Accesses[0].SetKind(polyhedron.Read)
	graph := ComputeDependences(scop, options)
	//
	assert.Equal(t, 1, graph.Len())
	checkDependence(t, graph.Get(0), 0, 1, RAR, 1)
}

func Test_Commute_01(t *testing.T) {
	var (
		scop    = shiftScop()
		options = DefaultOptions()
	)
	//
	scop.Statements[1].Commutative = []int{0}
	assert.Equal(t, 1, ComputeDependences(scop, options).Len())
	//
	options.Commute = true
	assert.Equal(t, 0, ComputeDependences(scop, options).Len())
}

func Test_Privatization_01(t *testing.T) {
	options := DefaultOptions()
	options.ScalarPrivatization = true
	//
	graph := ComputeDependences(privatizableScop(), options)
	//
	assert.Equal(t, 1, graph.Len())
	checkDependence(t, graph.Get(0), 0, 1, RAWScalarPrivatized, 1)
	// Restricted to identical iterations
	assert.True(t, IsLoopIndependent(graph.Get(0)))
	assert.False(t, IsLoopCarried(graph.Get(0), 0))
}

func Test_Expansion_01(t *testing.T) {
	var (
		scop    = privatizableScop()
		options = DefaultOptions()
	)
	//
	options.ScalarExpansion = true
	graph := ComputeDependences(scop, options)
	//
	assert.Equal(t, 1, graph.Len())
	checkDependence(t, graph.Get(0), 0, 1, RAW, 1)
	// t became t[i]
	assert.Equal(t, 2, scop.Statements[0].Accesses[0].OutputDims())
	assert.Equal(t, 2, scop.Statements[1].Accesses[1].OutputDims())
	assert.Equal(t, 2, scop.Statements[0].Accesses[0].ArrayId())
	assert.Nil(t, scop.Validate())
}

func Test_Renaming_01(t *testing.T) {
	graph := ComputeDependences(renamingScop(), DefaultOptions())
	//
	assert.Equal(t, 5, graph.Len())
}

func Test_Renaming_02(t *testing.T) {
	var (
		scop    = renamingScop()
		options = DefaultOptions()
	)
	//
	options.ScalarRenaming = true
	graph := ComputeDependences(scop, options)
	//
	assert.Equal(t, 2, graph.Len())
	checkDependence(t, graph.Get(0), 0, 1, RAW, 0)
	checkDependence(t, graph.Get(1), 2, 3, RAW, 0)
	//
	assert.Equal(t, 4, scop.Statements[0].Accesses[0].ArrayId())
	assert.Equal(t, 4, scop.Statements[1].Accesses[1].ArrayId())
	assert.Equal(t, 5, scop.Statements[2].Accesses[0].ArrayId())
	assert.Equal(t, 5, scop.Statements[3].Accesses[1].ArrayId())
	// Other scalars untouched
	assert.Equal(t, 2, scop.Statements[1].Accesses[0].ArrayId())
	assert.Equal(t, 3, scop.Statements[3].Accesses[0].ArrayId())
}

func Test_Renaming_03(t *testing.T) {
	var (
		scop    = renamingScop()
		options = DefaultOptions()
	)
	// The first reference to t is a use
	scop.Statements[0].Accesses[0].SetKind(polyhedron.Read)
	options.ScalarRenaming = true
	//
	ComputeDependences(scop, options)
	//
	assert.Equal(t, 1, scop.Statements[2].Accesses[0].ArrayId())
}

func Test_LastWriter_01(t *testing.T) {
	var (
		options = DefaultOptions()
		scop    = lastWriterScop()
	)
	//
	options.LastWriter = true
	graph := ComputeDependences(scop, options)
	//
	var flows int
	//
	for _, dep := range graph.Edges() {
		assert.Nil(t, dep.Domain.IntegrityCheck())
		//
		if dep.Kind != RAW {
			continue
		}
		//
		flows++
		// The last write is at i == N-1
		assert.True(t, pip.HasRationalPoint(dep.Domain, scop.Context))
		assert.False(t, pip.HasRationalPoint(withSourceBelow(dep, -1, 1, -2), scop.Context))
	}
	//
	assert.True(t, flows > 0)
}

func Test_LastWriter_02(t *testing.T) {
	var (
		options = DefaultOptions()
		scop    = lastWriterScop()
	)
	// Without last writer, every write reaches the read
	graph := ComputeDependences(scop, options)
	//
	for _, dep := range graph.Edges() {
		if dep.Kind == RAW {
			assert.True(t, pip.HasRationalPoint(withSourceBelow(dep, -1, 1, -2), scop.Context))
		}
	}
}

func Test_LastWriter_03(t *testing.T) {
	var (
		options = DefaultOptions()
		scop    = lastWriterScop()
	)
	//
	options.LastWriter = true
	graph := ComputeDependences(scop, options)
	//
	for _, dep := range graph.Edges() {
		if dep.Kind != WAW {
			continue
		}
		// Each write is overwritten by the next one only: i == i'-1
		test := dep.Domain.Clone()
		row := test.AppendRow()
		test.MarkInequality(row)
		test.SetInt64(row, dep.SourceColumn(0), -1)
		test.SetInt64(row, dep.TargetColumn(0), 1)
		test.SetInt64(row, test.ConstColumn(), -2)
		//
		assert.True(t, pip.HasRationalPoint(dep.Domain, scop.Context))
		assert.False(t, pip.HasRationalPoint(test, scop.Context))
	}
}

func Test_PruneDups_01(t *testing.T) {
	graph := ComputeDependences(privatizableScop(), DefaultOptions())
	n := graph.Len()
	//
	graph.Add(graph.Get(1).Clone(), graph.Get(0).Clone())
	//
	assert.Equal(t, 2, PruneDups(graph))
	assert.Equal(t, n, graph.Len())
	assert.Equal(t, 0, PruneDups(graph))
}

func Test_PruneDups_02(t *testing.T) {
	options := DefaultOptions()
	options.PruneDups = true
	//
	assert.Equal(t, 3, ComputeDependences(privatizableScop(), options).Len())
}

func Test_Graph_01(t *testing.T) {
	var (
		graph = ComputeDependences(privatizableScop(), DefaultOptions())
		adj   = graph.Adjacency()
	)
	//
	assert.Equal(t, []int{0, 1}, adj.Outgoing[0])
	assert.Equal(t, []int{2}, adj.Outgoing[1])
	assert.Equal(t, []int{0, 2}, adj.Incoming[0])
	assert.Equal(t, []int{1}, adj.Incoming[1])
}

func Test_Graph_02(t *testing.T) {
	graph := ComputeDependences(privatizableScop(), DefaultOptions())
	//
	removed := graph.Retain(func(dep *Dependence) bool { return dep.Kind != WAW })
	//
	assert.Equal(t, 1, removed)
	assert.Equal(t, 2, graph.Len())
	assert.Equal(t, RAW, graph.Get(0).Kind)
	assert.Equal(t, WAR, graph.Get(1).Kind)
}

func Test_Kind_01(t *testing.T) {
	assert.Equal(t, "RAW", RAW.String())
	assert.Equal(t, "RAW_SCALPRIV", RAWScalarPrivatized.String())
	assert.Panics(t, func() { _ = Kind(42).String() })
}

func Test_OptionsFromEnv_01(t *testing.T) {
	t.Setenv("CANDL_RAR", "true")
	t.Setenv("CANDL_WAW", "false")
	//
	options := OptionsFromEnv(DefaultOptions())
	//
	assert.True(t, options.RAW)
	assert.True(t, options.WAR)
	assert.True(t, options.RAR)
	assert.False(t, options.WAW)
	assert.False(t, options.LastWriter)
}

func checkDependence(t *testing.T, dep *Dependence, source, target int, kind Kind, depth int) {
	assert.Equal(t, source, dep.Source.Label, "source of %s", dep)
	assert.Equal(t, target, dep.Target.Label, "target of %s", dep)
	assert.Equal(t, kind, dep.Kind, "kind of %s", dep)
	assert.Equal(t, depth, dep.Depth, "depth of %s", dep)
}

// Add the constraint c_s * source_0 + c_n * N + c >= 0 to a copy of the domain
// of a dependence.
func withSourceBelow(dep *Dependence, cs, cn, c int64) *polyhedron.Matrix {
	test := dep.Domain.Clone()
	row := test.AppendRow()
	//
	test.MarkInequality(row)
	test.SetInt64(row, dep.SourceColumn(0), cs)
	test.SetInt64(row, test.ParamColumn(0), cn)
	test.SetInt64(row, test.ConstColumn(), c)
	//
	return test
}

// for (i = 0; i < N; i++) { S0: a[0] = ...; } S1: ... = a[0];
func lastWriterScop() *Scop {
	return &Scop{positiveContext(), []*Statement{
		{
			Label: 0, Depth: 1, Index: []int{0}, Domain: loopDomain(),
			Accesses: []*polyhedron.Matrix{polyhedron.FromRows(polyhedron.Write, 2, 1, 0, 1,
				[]int64{0, -1, 0, 0, 0, 1},
				[]int64{0, 0, -1, 0, 0, 0})},
		},
		{
			Label: 1, Depth: 0, Index: []int{}, Domain: flatDomain(1),
			Accesses: []*polyhedron.Matrix{polyhedron.FromRows(polyhedron.Read, 2, 0, 0, 1,
				[]int64{0, -1, 0, 0, 1},
				[]int64{0, 0, -1, 0, 0})},
		},
	}}
}
