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
package polyhedron

import (
	"math/big"
	"testing"

	"github.com/consensys/go-candl/pkg/util/assert"
)

func Test_Matrix_01(t *testing.T) {
	m := NewRelation(Domain, 2, 2, 0, 0, 1)
	//
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 5, m.Columns())
	assert.Equal(t, 4, m.ConstColumn())
	assert.Equal(t, 3, m.ParamColumn(0))
	//
	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Columns(); j++ {
			assert.True(t, m.Get(i, j).Sign() == 0)
		}
	}
}

func Test_Matrix_02(t *testing.T) {
	m := FromRows(Domain, 1, 0, 0, 1,
		[]int64{1, 1, 0, 0},
		[]int64{1, -1, 1, -1})
	// Insert a row in the middle
	m.InsertRow(1)
	assert.Equal(t, 3, m.Rows())
	assert.True(t, m.IsZeroRange(1, 0, m.Columns()))
	assert.Equal(t, int64(-1), m.Get(2, 1).Int64())
	// Remove it again
	m.RemoveRow(1)
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, int64(-1), m.Get(1, 1).Int64())
}

func Test_Matrix_03(t *testing.T) {
	m := FromRows(Domain, 1, 0, 0, 1,
		[]int64{1, 1, 0, 0},
		[]int64{1, -1, 1, -1})
	// Insert a new output dimension
	m.InsertColumn(2)
	m.SetAttributes(2, 0, 0, 1)
	assert.Equal(t, 5, m.Columns())
	assert.Equal(t, int64(1), m.Get(1, 3).Int64())
	assert.Equal(t, int64(-1), m.Get(1, 4).Int64())
	assert.True(t, m.Get(1, 2).Sign() == 0)
	// Remove it again
	m.RemoveColumn(2)
	m.SetAttributes(1, 0, 0, 1)
	assert.True(t, m.Equal(FromRows(Domain, 1, 0, 0, 1, []int64{1, 1, 0, 0}, []int64{1, -1, 1, -1})))
}

func Test_Matrix_04(t *testing.T) {
	m := FromRows(Domain, 1, 0, 0, 0, []int64{1, 1, 0})
	n := m.Clone()
	// Mutating a clone does not affect the original.
	n.SetInt64(0, 2, 7)
	assert.Equal(t, int64(0), m.Get(0, 2).Int64())
	assert.False(t, m.Equal(n))
	//
	c := m.Concat(n)
	assert.Equal(t, 2, c.Rows())
	assert.Equal(t, int64(7), c.Get(1, 2).Int64())
	// Partial clones
	assert.Equal(t, 1, c.CloneRows(1).Rows())
	assert.Equal(t, 0, c.CloneRows(0).Rows())
}

func Test_Matrix_05(t *testing.T) {
	m := FromRows(Domain, 1, 0, 0, 0, []int64{1, 1, 0})
	// Mismatched column counts
	assert.Panics(t, func() { m.Concat(NewMatrix(1, 4)) })
	// Out-of-bounds access
	assert.Panics(t, func() { m.Get(1, 0) })
	assert.Panics(t, func() { m.Get(0, 3) })
	// Inconsistent attributes
	assert.Panics(t, func() { m.SetAttributes(2, 0, 0, 0) })
}

func Test_Matrix_06(t *testing.T) {
	m := FromRows(Domain, 1, 0, 0, 0, []int64{2, 1, 0})
	// Invalid marker
	assert.True(t, m.IntegrityCheck() != nil)
	assert.Panics(t, m.MustBeValid)
	//
	m.SetInt64(0, 0, 1)
	assert.Nil(t, m.IntegrityCheck())
	// Domains cannot have input dimensions
	m = NewRelation(Domain, 0, 1, 1, 0, 0)
	assert.True(t, m.IntegrityCheck() != nil)
	// Contexts cannot have output dimensions
	m = NewRelation(Context, 0, 1, 0, 0, 0)
	assert.True(t, m.IntegrityCheck() != nil)
}

func Test_Matrix_07(t *testing.T) {
	m := FromRows(Domain, 1, 0, 0, 0, []int64{1, 2, -3})
	m.NegateRow(0)
	//
	assert.Equal(t, int64(1), m.Get(0, 0).Int64())
	assert.Equal(t, int64(-2), m.Get(0, 1).Int64())
	assert.Equal(t, int64(3), m.Get(0, 2).Int64())
	// Aliasing through Get
	m.Get(0, 2).Add(m.Get(0, 2), big.NewInt(1))
	assert.Equal(t, int64(4), m.Get(0, 2).Int64())
}

func Test_Union_01(t *testing.T) {
	a := FromRows(Domain, 1, 0, 0, 0, []int64{1, 1, 0})
	b := FromRows(Domain, 1, 0, 0, 0, []int64{1, -1, 5})
	u := Union{a, b}
	//
	assert.Nil(t, u.IntegrityCheck())
	assert.True(t, u.First() == a)
	assert.Equal(t, 1, len(u.CloneN(1)))
	assert.True(t, u.Clone()[1].Equal(b))
	// Disagreeing attributes
	u = append(u, FromRows(Domain, 0, 0, 0, 1, []int64{1, 1, 0}))
	assert.True(t, u.IntegrityCheck() != nil)
	assert.True(t, Union{}.First() == nil)
}

func Test_Kind_01(t *testing.T) {
	for k := Undefined; k <= MayWrite; k++ {
		j, ok := ParseKind(k.String())
		assert.True(t, ok)
		assert.Equal(t, k, j)
	}
	//
	assert.True(t, Read.IsAccess())
	assert.True(t, MayWrite.IsWrite())
	assert.False(t, Read.IsWrite())
	assert.False(t, Domain.IsAccess())
}

func Test_ArrayId_01(t *testing.T) {
	// A[i] with A=3: rows -Arr + 3 == 0, -d + i == 0
	m := FromRows(Read, 2, 1, 0, 0,
		[]int64{0, -1, 0, 0, 3},
		[]int64{0, 0, -1, 1, 0})
	assert.Equal(t, 3, m.ArrayId())
	assert.Equal(t, 1, m.RowForDimension(1))
	//
	m.SetArrayId(5)
	assert.Equal(t, 5, m.ArrayId())
	// Orientation reversed: Arr - 2 == 0
	m = FromRows(Write, 1, 0, 0, 0, []int64{0, 1, -2})
	assert.Equal(t, 2, m.ArrayId())
	// Not an access
	m = FromRows(Domain, 1, 0, 0, 0, []int64{0, 1, -2})
	assert.Equal(t, NoArray, m.ArrayId())
	// Non-integer identifier
	m = FromRows(Read, 1, 0, 0, 0, []int64{0, 2, -3})
	assert.Equal(t, NoArray, m.ArrayId())
}
