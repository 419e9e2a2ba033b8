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
)

// NoArray is returned as the array identifier of relations which do not
// (properly) identify an array.
const NoArray = -1

// ArrayId extracts the array identifier of an access relation.  The
// identifier is held in the only row with a non-zero coefficient for the first
// output dimension (the "Arr" dimension), as in "-Arr + id == 0".  NoArray is
// returned if this is not an access relation, if there is no such row (or
// several), or if the identifier is not a positive integer.
func (p *Matrix) ArrayId() int {
	if !p.kind.IsAccess() || p.outputDims < 1 || len(p.rows) == 0 {
		return NoArray
	}
	//
	row := p.RowForDimension(0)
	if row < 0 {
		return NoArray
	}
	// The row must contain nothing but the Arr coefficient and the identifier.
	for j := 2; j < p.columns-1; j++ {
		if p.rows[row][j].Sign() != 0 {
			return NoArray
		}
	}
	//
	var id, rem big.Int
	//
	id.QuoRem(&p.rows[row][p.columns-1], &p.rows[row][1], &rem)
	id.Neg(&id)
	//
	if rem.Sign() != 0 || id.Sign() <= 0 || !id.IsInt64() {
		return NoArray
	}
	//
	return int(id.Int64())
}

// SetArrayId updates the array identifier of an access relation, keeping the
// orientation of its defining row.
func (p *Matrix) SetArrayId(id int) {
	row := p.RowForDimension(0)
	if row < 0 {
		panic("no array identifier in access relation")
	}
	//
	var v big.Int
	// -coeff * id
	v.Mul(&p.rows[row][1], big.NewInt(int64(id)))
	p.rows[row][p.columns-1].Neg(&v)
}

// RowForDimension returns the index of the only equality with a non-zero
// coefficient for the nth output dimension, or -1 if there is no such row (or
// more than one).
func (p *Matrix) RowForDimension(n int) int {
	var (
		col   = p.OutputColumn(n)
		found = -1
	)
	//
	if n < 0 || n >= p.outputDims {
		return -1
	}
	//
	for i, row := range p.rows {
		if row[0].Sign() == 0 && row[col].Sign() != 0 {
			if found >= 0 {
				return -1
			}
			//
			found = i
		}
	}
	//
	return found
}
