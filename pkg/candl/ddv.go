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
	"strings"

	"github.com/consensys/go-candl/pkg/pip"
	"github.com/consensys/go-candl/pkg/polyhedron"
)

// DistanceType classifies the distance (target minus source) between the
// iterators of dependent instances at some loop position.
type DistanceType uint8

const (
	// DistanceStar means the distance can take either sign.
	DistanceStar DistanceType = iota
	// DistanceEq means the distance is always zero.
	DistanceEq
	// DistancePlus means the distance can be positive but never negative.
	DistancePlus
	// DistanceMinus means the distance can be negative but never positive.
	DistanceMinus
	// DistanceScalar means the distance is a known non-zero constant.
	DistanceScalar
)

// Distance is a single entry of a dependence distance vector.
type Distance struct {
	Type DistanceType
	// Value of a scalar distance.
	Value int64
}

func (d Distance) String() string {
	switch d.Type {
	case DistanceStar:
		return "*"
	case DistanceEq:
		return "="
	case DistancePlus:
		return "+"
	case DistanceMinus:
		return "-"
	case DistanceScalar:
		return fmt.Sprintf("%d", d.Value)
	default:
		panic(fmt.Sprintf("unknown distance type (%d)", d.Type))
	}
}

// sign returns the signs which a distance can take.
func (d Distance) sign() (positive bool, negative bool) {
	switch d.Type {
	case DistancePlus:
		return true, false
	case DistanceMinus:
		return false, true
	case DistanceScalar:
		return d.Value > 0, d.Value < 0
	default:
		return false, false
	}
}

// DDV is the dependence distance vector of a dependence, for the loops
// surrounding its source up to (and including) a given loop.
type DDV struct {
	Loop       int
	Dependence *Dependence
	Distances  []Distance
}

func (p *DDV) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("loop=%d, (", p.Loop))
	//
	for i, d := range p.Distances {
		if i != 0 {
			builder.WriteString(", ")
		}
		//
		builder.WriteString(d.String())
	}
	//
	builder.WriteString(")")
	//
	return builder.String()
}

// ExtractDDVInLoop computes a distance vector for every dependence whose
// source and target are both surrounded by a given loop, at the same
// position.
func ExtractDDVInLoop(graph *Graph, loop int) []*DDV {
	var ddvs []*DDV
	//
	for _, dep := range graph.Edges() {
		var (
			src = dep.Source
			tgt = dep.Target
			n   = min(src.Depth, tgt.Depth)
		)
		//
		for i := 0; i < n; i++ {
			if src.Index[i] == tgt.Index[i] && tgt.Index[i] == loop {
				ddvs = append(ddvs, ComputeDDV(dep, loop, i+1))
				break
			}
		}
	}
	//
	return ddvs
}

// ComputeDDV computes the distance vector of a dependence over its first size
// loop positions.
func ComputeDDV(dep *Dependence, loop int, size int) *DDV {
	var (
		ddv  = &DDV{loop, dep, make([]Distance, size)}
		np   = dep.Domain.Parameters()
		test = dep.Domain.Clone()
	)
	// Leading distance dimension
	test.InsertColumn(1)
	test.SetAttributes(test.OutputDims()+1, test.InputDims(), test.LocalDims(), np)
	//
	row := test.AppendRow()
	//
	for i := range ddv.Distances {
		var (
			src = 1 + dep.SourceColumn(i)
			tgt = 1 + dep.TargetColumn(i)
		)
		//
		hasEq := distanceTest(test, row, src, tgt, 0)
		hasPlus := distanceTest(test, row, src, tgt, 1)
		hasMinus := distanceTest(test, row, src, tgt, -1)
		// min(target - source) and max(target - source)
		lo, okLo := constantDistance(test, row, src, tgt, 1, np)
		hi, okHi := constantDistance(test, row, src, tgt, -1, np)
		//
		switch {
		case okLo && okHi && lo.Cmp(hi.Neg(hi)) == 0 && lo.Sign() != 0 && lo.IsInt64():
			ddv.Distances[i] = Distance{DistanceScalar, lo.Int64()}
		case hasPlus && hasMinus:
			ddv.Distances[i] = Distance{Type: DistanceStar}
		case hasPlus:
			ddv.Distances[i] = Distance{Type: DistancePlus}
		case hasMinus:
			ddv.Distances[i] = Distance{Type: DistanceMinus}
		case hasEq:
			ddv.Distances[i] = Distance{Type: DistanceEq}
		default:
			ddv.Distances[i] = Distance{Type: DistanceStar}
		}
	}
	//
	return ddv
}

// distanceTest checks whether the distance at some position can be zero
// (sign 0), positive (sign 1) or negative (sign -1).
func distanceTest(test *polyhedron.Matrix, row int, src, tgt int, sign int64) bool {
	resetRow(test, row)
	//
	test.SetInt64(row, src, -sign)
	test.SetInt64(row, tgt, sign)
	//
	if sign == 0 {
		test.SetInt64(row, src, 1)
		test.SetInt64(row, tgt, -1)
	} else {
		test.MarkInequality(row)
		test.SetInt64(row, test.ConstColumn(), -1)
	}
	//
	return pip.HasRationalPoint(test, nil)
}

// constantDistance computes the minimum of sign*(target - source) at some
// position, provided it does not depend on the parameters.
func constantDistance(test *polyhedron.Matrix, row int, src, tgt int, sign int64, np int) (*big.Int, bool) {
	var value *big.Int
	//
	resetRow(test, row)
	// d = sign * (target - source)
	test.SetInt64(row, 1, -1)
	test.SetInt64(row, src, -sign)
	test.SetInt64(row, tgt, sign)
	//
	q := pip.Solve(test, polyhedron.NewMatrix(0, np+2), -1, pip.RationalPointOptions())
	//
	if q == nil {
		return nil, false
	}
	//
	for _, leaf := range q.Leaves() {
		if !leaf.IsLeaf() {
			continue
		}
		//
		v := leaf.List[0]
		//
		if v.IsUnbounded() || !v.Num[np].IsInt64() || !v.Den[np].IsInt64() || v.Den[np].Int64() != 1 {
			return nil, false
		}
		//
		for k := 0; k < np; k++ {
			if v.Num[k].Sign() != 0 {
				return nil, false
			}
		}
		//
		if value == nil {
			value = new(big.Int).Set(&v.Num[np])
		} else if value.Cmp(&v.Num[np]) != 0 {
			return nil, false
		}
	}
	//
	return value, value != nil
}

func resetRow(m *polyhedron.Matrix, row int) {
	for j := 0; j < m.Columns(); j++ {
		m.SetInt64(row, j, 0)
	}
}

// LoopsArePermutable determines whether two nested loops can be interchanged
// without reversing any dependence.  This is the case when, for each of the
// two loops, the distances of dependences within it never take both signs,
// and the loops do not carry distances of opposite signs.
func LoopsArePermutable(scop *Scop, graph *Graph, loop1, loop2 int) bool {
	var (
		ddvs1 = ExtractDDVInLoop(graph, loop1)
		ddvs2 = ExtractDDVInLoop(graph, loop2)
		dim1  = -1
		dim2  = -1
	)
	// A loop within which there are no dependences
	if len(ddvs1) == 0 || len(ddvs2) == 0 {
		return true
	}
	//
	for _, s := range scop.Statements {
		if dim1 < 0 {
			dim1 = s.LoopPosition(loop1)
		}
		//
		if dim2 < 0 {
			dim2 = s.LoopPosition(loop2)
		}
	}
	//
	var pos1, neg1, pos2, neg2 bool
	//
	for _, ddv := range append(ddvs1, ddvs2...) {
		// Only vectors reaching both loops are relevant
		if dim1 < 0 || dim2 < 0 || len(ddv.Distances) <= max(dim1, dim2) {
			continue
		}
		//
		d1, d2 := ddv.Distances[dim1], ddv.Distances[dim2]
		//
		if d1.Type == DistanceStar || d2.Type == DistanceStar {
			return false
		}
		//
		p1, n1 := d1.sign()
		p2, n2 := d2.sign()
		pos1, neg1 = pos1 || p1, neg1 || n1
		pos2, neg2 = pos2 || p2, neg2 || n2
		//
		if (pos1 && neg1) || (pos2 && neg2) {
			return false
		}
	}
	//
	return !((pos1 && neg2) || (neg1 && pos2))
}
