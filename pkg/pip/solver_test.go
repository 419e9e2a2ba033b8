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
	"testing"

	"github.com/consensys/go-candl/pkg/polyhedron"
	"github.com/consensys/go-candl/pkg/util/assert"
)

// 5 <= x <= 10
var boundedSystem = [][]int64{
	{1, 1, -5},
	{1, -1, 10},
}

func Test_Solve_01(t *testing.T) {
	q := Solve(system(1, 0, boundedSystem...), nil, -1, DefaultOptions())
	checkLeaf(t, q, []int64{5})
}

func Test_Solve_02(t *testing.T) {
	q := LexMax(system(1, 0, boundedSystem...), nil, DefaultOptions())
	checkLeaf(t, q, []int64{10})
}

func Test_Solve_03(t *testing.T) {
	// 5 <= x <= 3
	q := Solve(system(1, 0, []int64{1, 1, -5}, []int64{1, -1, 3}), nil, -1, DefaultOptions())
	assert.True(t, q == nil)
}

func Test_Solve_04(t *testing.T) {
	// Context 0 >= 1
	ctx := polyhedron.FromRows(polyhedron.Undefined, 0, 0, 0, 0, []int64{1, -1})
	q := Solve(system(1, 0, boundedSystem...), ctx, -1, DefaultOptions())
	assert.True(t, q == nil)
}

func Test_Solve_05(t *testing.T) {
	assert.True(t, Solve(nil, nil, -1, DefaultOptions()) == nil)
}

func Test_Solve_06(t *testing.T) {
	// x >= n, giving x = n
	q := Solve(system(1, 1, []int64{1, 1, -1, 0}), polyhedron.NewMatrix(0, 3), -1, DefaultOptions())
	checkLeaf(t, q, []int64{1, 0})
}

func Test_Solve_07(t *testing.T) {
	// x >= n - 5, giving x = max(0, n - 5)
	q := Solve(system(1, 1, []int64{1, 1, -1, 5}), polyhedron.NewMatrix(0, 3), -1, DefaultOptions())
	//
	assert.True(t, q.IsSplit())
	assert.Equal(t, []int64{-1, 5}, nums(q.Condition))
	checkLeaf(t, q.Then, []int64{0, 0})
	checkLeaf(t, q.Else, []int64{1, -5})
}

func Test_Solve_08(t *testing.T) {
	// 2x >= 1 has rational minimum 1/2
	options := DefaultOptions()
	options.Integer = false
	q := Solve(system(1, 0, []int64{1, 2, -1}), nil, -1, options)
	//
	assert.True(t, q.IsLeaf())
	assert.Equal(t, int64(1), q.List[0].Num[0].Int64())
	assert.Equal(t, int64(2), q.List[0].Den[0].Int64())
}

func Test_Solve_09(t *testing.T) {
	// 2x - y >= 1 requires a cut, giving (x,y) = (1,0)
	q := Solve(system(2, 0, []int64{1, 2, -1, -1}), nil, -1, DefaultOptions())
	checkLeaf(t, q, []int64{1}, []int64{0})
}

func Test_Solve_10(t *testing.T) {
	// 2x >= n requires a new parameter q = n div 2, giving x = n - q
	q := Solve(system(1, 1, []int64{1, 2, -1, 0}), polyhedron.NewMatrix(0, 3), -1, DefaultOptions())
	//
	checkLeaf(t, q, []int64{1, -1, 0})
	assert.Equal(t, 1, len(q.NewParms))
	assert.Equal(t, 1, q.NewParms[0].Rank)
	assert.Equal(t, int64(2), q.NewParms[0].Divisor.Int64())
	assert.Equal(t, []int64{1, 0}, nums(q.NewParms[0].Vector))
}

func Test_Solve_11(t *testing.T) {
	// x <= 10 has no minimum over unrestricted unknowns
	options := DefaultOptions()
	options.UrsUnknowns = true
	q := Solve(system(1, 0, []int64{1, -1, 10}), nil, -1, options)
	//
	assert.True(t, q.IsLeaf())
	assert.True(t, q.List[0].IsUnbounded())
}

func Test_Solve_12(t *testing.T) {
	// Dual of x >= 5 under rational minimisation
	options := DefaultOptions()
	options.Integer = false
	options.ComputeDual = true
	q := Solve(system(1, 0, []int64{1, 1, -5}), nil, -1, options)
	//
	checkLeaf(t, q, []int64{5})
	assert.Equal(t, 1, len(q.Dual))
	assert.Equal(t, int64(1), q.Dual[0].Num[0].Int64())
}

func Test_Solve_13(t *testing.T) {
	session := NewSession(DefaultOptions())
	session.Solve(system(2, 0, []int64{1, 2, -1, -1}), nil, -1)
	//
	stats := session.Statistics()
	assert.Equal(t, uint(1), stats.Cuts)
	assert.Equal(t, uint(2), stats.Pivots)
}

func Test_RationalPoint_01(t *testing.T) {
	assert.True(t, HasRationalPoint(system(1, 0, boundedSystem...), nil))
	assert.False(t, HasRationalPoint(system(1, 0, []int64{1, 1, -5}, []int64{1, -1, 3}), nil))
	assert.True(t, HasRationalPoint(system(1, 0, []int64{1, -1, 10}), nil))
}

func Test_Simplify_01(t *testing.T) {
	cond := vector(1, -2)
	q := simplify(NewSplit(cond, NewLeaf(vector(0, 1)), NewLeaf(vector(0, 1))))
	//
	checkLeaf(t, q, []int64{0, 1})
}

func Test_Simplify_02(t *testing.T) {
	cond := vector(1, -2)
	q := simplify(NewSplit(cond, NewSplit(vector(1, 0), &Quast{}, &Quast{}), &Quast{}))
	//
	assert.True(t, q.IsVoid())
}

func Test_Simplify_03(t *testing.T) {
	cond := vector(1, -2)
	q := simplify(NewSplit(cond, NewLeaf(vector(0, 1)), NewLeaf(vector(0, 2))))
	//
	assert.True(t, q.IsSplit())
	assert.Equal(t, 2, len(q.Leaves()))
}

func Test_Quast_01(t *testing.T) {
	q := NewLeaf(vector(5))
	assert.Equal(t, "(list #[ 5])\n", q.String())
	//
	v := newVector(2)
	v.Num[0].SetInt64(1)
	v.Den[0].SetInt64(2)
	assert.Equal(t, "#[ 1/2 0]", v.String())
}

func Test_Quast_02(t *testing.T) {
	lhs := NewSplit(vector(1, 0), NewLeaf(vector(1, 0)), &Quast{})
	rhs := NewSplit(vector(1, 0), NewLeaf(vector(1, 0)), &Quast{})
	//
	assert.True(t, lhs.Equal(rhs))
	rhs.Then.List[0].Num[1].SetInt64(1)
	assert.False(t, lhs.Equal(rhs))
}

func Test_Edit_01(t *testing.T) {
	// [ M | p | p' | const ] with bignum at 0 and one urs copy
	v := vector(1, 3, 0, 6)
	v.Den[1].SetInt64(3)
	//
	e := v.edit(0, 1, editShift|editRemove)
	assert.Equal(t, []int64{1, 6}, nums(e))
	assert.Equal(t, int64(1), e.Den[0].Int64())
	assert.False(t, e.IsUnbounded())
	// A bignum coefficient other than one indicates an unbounded value
	v.Num[0].SetInt64(2)
	e = v.edit(0, 1, editShift|editRemove)
	assert.True(t, e.IsUnbounded())
}

// ============================================================================
// Helpers
// ============================================================================

func system(nvar, nparm int, rows ...[]int64) *polyhedron.Matrix {
	return polyhedron.FromRows(polyhedron.Undefined, nvar, 0, 0, nparm, rows...)
}

func vector(vals ...int64) Vector {
	v := newVector(len(vals))
	//
	for i, val := range vals {
		v.Num[i].SetInt64(val)
	}
	//
	return v
}

func nums(v Vector) []int64 {
	vals := make([]int64, v.Len())
	//
	for i := range vals {
		vals[i] = v.Num[i].Int64()
	}
	//
	return vals
}

// checkLeaf checks a quast is a leaf whose (integral) solution vectors match
// the expected values.
func checkLeaf(t *testing.T, q *Quast, expected ...[]int64) {
	assert.True(t, q.IsLeaf(), "expected leaf, got %v", q)
	assert.Equal(t, len(expected), len(q.List))
	//
	for i, vals := range expected {
		assert.Equal(t, vals, nums(q.List[i]))
		//
		for j := range q.List[i].Den {
			assert.Equal(t, 0, q.List[i].Den[j].Cmp(big.NewInt(1)))
		}
	}
}
