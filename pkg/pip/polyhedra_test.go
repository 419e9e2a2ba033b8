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
	"testing"

	"github.com/consensys/go-candl/pkg/polyhedron"
	"github.com/consensys/go-candl/pkg/util/assert"
)

func Test_ToPolyhedra_01(t *testing.T) {
	// x = max(0, n - 5)
	q := Solve(system(1, 1, []int64{1, 1, -1, 5}), polyhedron.NewMatrix(0, 3), -1, DefaultOptions())
	u := ToPolyhedra(q, 1, 1)
	//
	assert.Equal(t, 2, len(u))
	assert.Nil(t, u.IntegrityCheck())
	// x = 0 where 5 - n >= 0
	checkRows(t, u[0], []int64{0, 1, 0, 0}, []int64{1, 0, -1, 5})
	// x = n - 5 where n - 6 >= 0
	checkRows(t, u[1], []int64{0, 1, -1, 5}, []int64{1, 0, 1, -6})
}

func Test_ToPolyhedra_02(t *testing.T) {
	// x = n - (n div 2)
	q := Solve(system(1, 1, []int64{1, 2, -1, 0}), polyhedron.NewMatrix(0, 3), -1, DefaultOptions())
	u := ToPolyhedra(q, 1, 1)
	//
	assert.Equal(t, 1, len(u))
	assert.Equal(t, 1, u[0].LocalDims())
	checkRows(t, u[0], []int64{0, 1, 1, -1, 0}, []int64{1, 0, -2, 1, 0}, []int64{1, 0, 2, -1, 1})
}

func Test_ToPolyhedra_03(t *testing.T) {
	// Void leaves are omitted, whilst unbounded unknowns are unconstrained.
	unbounded := newVector(1)
	unbounded.Den[0].SetInt64(0)
	q := NewSplit(vector(1, 0), NewLeaf(unbounded), &Quast{})
	//
	u := ToPolyhedra(q, 1, 1)
	assert.Equal(t, 1, len(u))
	checkRows(t, u[0], []int64{1, 0, 1, 0})
	//
	v := NoSolutionPolyhedra(q, 1, 1)
	assert.Equal(t, 1, len(v))
	checkRows(t, v[0], []int64{1, 0, -1, -1})
}

func Test_ToPolyhedra_04(t *testing.T) {
	u := NoSolutionPolyhedra(nil, 2, 1)
	//
	assert.Equal(t, 1, len(u))
	assert.Equal(t, 0, u[0].Rows())
	assert.Equal(t, 5, u[0].Columns())
	assert.True(t, ToPolyhedra(nil, 2, 1) == nil)
}

func Test_ToPolyhedra_05(t *testing.T) {
	// Regions are padded to a common number of local dimensions.
	parm := NewParm{Rank: 1, Vector: vector(1, 0)}
	parm.Divisor.SetInt64(3)
	//
	then := NewLeaf(vector(0, 1, 0))
	then.NewParms = []NewParm{parm}
	q := NewSplit(vector(1, -1), then, NewLeaf(vector(0, 2)))
	//
	u := ToPolyhedra(q, 1, 1)
	assert.Equal(t, 2, len(u))
	assert.Equal(t, 5, u[0].Columns())
	assert.Equal(t, 5, u[1].Columns())
	assert.Equal(t, 1, u[1].LocalDims())
	// x = 2 where n - 1 < 0, with an unused local
	checkRows(t, u[1], []int64{0, 1, 0, 0, -2}, []int64{1, 0, 0, -1, 0})
}

func checkRows(t *testing.T, m *polyhedron.Matrix, rows ...[]int64) {
	assert.Equal(t, len(rows), m.Rows())
	//
	for i, row := range rows {
		assert.Equal(t, len(row), m.Columns())
		//
		for j, val := range row {
			assert.Equal(t, val, m.Get(i, j).Int64(), "row %d, column %d", i, j)
		}
	}
}
