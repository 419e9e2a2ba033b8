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
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/go-candl/pkg/util/collection/stack"
	"github.com/consensys/go-candl/pkg/util/math"
)

// Vector is an affine form over the parameters of a problem (including any
// new parameters introduced along the way), with the constant term last.  Each
// entry is a rational number.  A vector whose denominators are all zero
// represents an unbounded value.
type Vector struct {
	Num []big.Int
	Den []big.Int
}

func newVector(n int) Vector {
	v := Vector{make([]big.Int, n), make([]big.Int, n)}
	//
	for i := range v.Den {
		v.Den[i].SetInt64(1)
	}
	//
	return v
}

// Len returns the number of entries in this vector.
func (v Vector) Len() int {
	return len(v.Num)
}

// IsUnbounded checks whether this vector represents an unbounded value.
func (v Vector) IsUnbounded() bool {
	if len(v.Den) == 0 {
		return false
	}
	//
	for i := range v.Den {
		if v.Den[i].Sign() != 0 {
			return false
		}
	}
	//
	return true
}

// Equal checks whether two vectors have identical entries.
func (v Vector) Equal(o Vector) bool {
	if len(v.Num) != len(o.Num) {
		return false
	}
	//
	for i := range v.Num {
		if v.Num[i].Cmp(&o.Num[i]) != 0 || v.Den[i].Cmp(&o.Den[i]) != 0 {
			return false
		}
	}
	//
	return true
}

func (v Vector) String() string {
	var builder strings.Builder
	//
	builder.WriteString("#[")
	//
	for i := range v.Num {
		builder.WriteString(" ")
		builder.WriteString(v.Num[i].String())
		//
		if !math.IsOne(&v.Den[i]) {
			builder.WriteString("/")
			builder.WriteString(v.Den[i].String())
		}
	}
	//
	builder.WriteString("]")
	//
	return builder.String()
}

// edit converts a raw solver vector into its final form: entries are reduced,
// the bignum is removed (or used to detect unbounded values) and the columns
// of unrestricted parameter copies are dropped.
func (v Vector) edit(bignum, urs int, flags editFlags) Vector {
	var (
		n         = v.Len() - urs
		firstUrs  = urs
		unbounded = false
		N         big.Int
	)
	//
	if flags&editRemove != 0 {
		n--
	}
	//
	if bignum >= 0 {
		firstUrs++
	}
	//
	out := newVector(n)
	//
	for j, k := 0, 0; j < v.Len() && k < n; j++ {
		D := &v.Den[j]
		d := math.Gcd(&v.Num[j], D)
		N.Set(&v.Num[j])
		//
		if flags&editShift != 0 && j == bignum {
			N.Sub(&N, D)
			unbounded = unbounded || N.Sign() != 0
		}
		//
		if (flags&editRemove != 0 && j == bignum) || (firstUrs <= j && j < firstUrs+urs) {
			continue
		}
		//
		if d.Sign() == 0 {
			d.SetInt64(1)
		}
		//
		out.Num[k].Quo(&N, d)
		//
		if flags&editNegate != 0 {
			out.Num[k].Neg(&out.Num[k])
		}
		//
		out.Den[k].Quo(D, d)
		k++
	}
	//
	if unbounded {
		for i := range out.Den {
			out.Den[i].SetInt64(0)
		}
	}
	//
	return out
}

// NewParm defines a parameter introduced by the solver as the integer
// division of an affine form over the preceding parameters.
type NewParm struct {
	// Rank is the position of this parameter amongst all parameters.
	Rank int
	// Vector is the affine form being divided.
	Vector Vector
	// Divisor is the (positive) divisor.
	Divisor big.Int
}

// Equal checks whether two new parameters have the same definition.
func (p *NewParm) Equal(o *NewParm) bool {
	return p.Rank == o.Rank && p.Divisor.Cmp(&o.Divisor) == 0 && p.Vector.Equal(o.Vector)
}

func (p *NewParm) String() string {
	return fmt.Sprintf("(newparm %d (div %s %s))", p.Rank, p.Vector.String(), p.Divisor.String())
}

type quastKind uint8

const (
	voidNode quastKind = iota
	leafNode
	splitNode
)

type editFlags uint8

const (
	editShift editFlags = 1 << iota
	editNegate
	editRemove
	editMax = editShift | editNegate
)

// Quast (quasi-affine selection tree) is the solution of a parametric
// problem.  Each node can first introduce new parameters.  A split node
// selects between two subtrees depending on the sign of an affine condition
// over the parameters: its Then branch applies where the condition is
// non-negative, and its Else branch where it is negative.  A leaf holds one
// vector per unknown.  A void node indicates there is no solution.
type Quast struct {
	kind quastKind
	// NewParms introduced by this node.
	NewParms []NewParm
	// Condition of a split node.
	Condition Vector
	// Branches of a split node.
	Then, Else *Quast
	// Solution of a leaf node.
	List []Vector
	// Dual solution of a leaf node, when requested.
	Dual []Vector
}

// NewLeaf constructs a leaf node from the given vectors.
func NewLeaf(list ...Vector) *Quast {
	return &Quast{kind: leafNode, List: list}
}

// NewSplit constructs a split node on a given condition.
func NewSplit(condition Vector, then *Quast, els *Quast) *Quast {
	return &Quast{kind: splitNode, Condition: condition, Then: then, Else: els}
}

// IsVoid checks whether this is a node without solution.  A nil quast is also
// considered void.
func (q *Quast) IsVoid() bool {
	return q == nil || q.kind == voidNode
}

// IsLeaf checks whether this is a solution node.
func (q *Quast) IsLeaf() bool {
	return q != nil && q.kind == leafNode
}

// IsSplit checks whether this is a decision node.
func (q *Quast) IsSplit() bool {
	return q != nil && q.kind == splitNode
}

// Equal checks whether two quasts are structurally identical.
func (q *Quast) Equal(o *Quast) bool {
	if q == nil || o == nil {
		return q.IsVoid() && o.IsVoid() && len(q.newParms()) == 0 && len(o.newParms()) == 0
	} else if q.kind != o.kind || len(q.NewParms) != len(o.NewParms) {
		return false
	}
	//
	for i := range q.NewParms {
		if !q.NewParms[i].Equal(&o.NewParms[i]) {
			return false
		}
	}
	//
	switch q.kind {
	case leafNode:
		return vectorsEqual(q.List, o.List) && vectorsEqual(q.Dual, o.Dual)
	case splitNode:
		return q.Condition.Equal(o.Condition) && q.Then.Equal(o.Then) && q.Else.Equal(o.Else)
	default:
		return true
	}
}

func (q *Quast) newParms() []NewParm {
	if q == nil {
		return nil
	}
	//
	return q.NewParms
}

func vectorsEqual(lhs []Vector, rhs []Vector) bool {
	if len(lhs) != len(rhs) {
		return false
	}
	//
	for i := range lhs {
		if !lhs[i].Equal(rhs[i]) {
			return false
		}
	}
	//
	return true
}

// Leaves returns every leaf of this quast (including void leaves) in
// depth-first order, where then branches precede else branches.
func (q *Quast) Leaves() []*Quast {
	var (
		leaves   []*Quast
		worklist = stack.NewStack[*Quast]()
	)
	//
	if q == nil {
		return nil
	}
	//
	worklist.Push(q)
	//
	for !worklist.IsEmpty() {
		node := worklist.Pop()
		//
		if node.IsSplit() {
			worklist.Push(node.Else)
			worklist.Push(node.Then)
		} else if node != nil {
			leaves = append(leaves, node)
		}
	}
	//
	return leaves
}

func (q *Quast) String() string {
	var builder strings.Builder
	//
	q.write(&builder, 0)
	//
	return builder.String()
}

func (q *Quast) write(builder *strings.Builder, indent int) {
	var prefix = strings.Repeat("  ", indent)
	//
	if q == nil {
		builder.WriteString(prefix)
		builder.WriteString("()\n")
		//
		return
	}
	//
	for i := range q.NewParms {
		builder.WriteString(prefix)
		builder.WriteString(q.NewParms[i].String())
		builder.WriteString("\n")
	}
	//
	switch q.kind {
	case voidNode:
		builder.WriteString(prefix)
		builder.WriteString("()\n")
	case leafNode:
		builder.WriteString(prefix)
		builder.WriteString("(list")
		//
		for _, v := range q.List {
			builder.WriteString(" ")
			builder.WriteString(v.String())
		}
		//
		builder.WriteString(")\n")
		//
		if q.Dual != nil {
			builder.WriteString(prefix)
			builder.WriteString("(dual")
			//
			for _, v := range q.Dual {
				builder.WriteString(" ")
				builder.WriteString(v.String())
			}
			//
			builder.WriteString(")\n")
		}
	case splitNode:
		builder.WriteString(prefix)
		builder.WriteString("(if ")
		builder.WriteString(q.Condition.String())
		builder.WriteString("\n")
		q.Then.write(builder, indent+1)
		q.Else.write(builder, indent+1)
		builder.WriteString(prefix)
		builder.WriteString(")\n")
	}
}

// simplify collapses split nodes whose branches both lack a solution, or
// whose branches are identical.
func simplify(q *Quast) *Quast {
	if !q.IsSplit() {
		return q
	}
	//
	q.Then = simplify(q.Then)
	q.Else = simplify(q.Else)
	//
	switch {
	case q.Then.IsVoid() && q.Else.IsVoid():
		return &Quast{kind: voidNode, NewParms: q.NewParms}
	case q.Then.Equal(q.Else):
		node := q.Then
		parms := make([]NewParm, 0, len(q.NewParms)+len(node.NewParms))
		parms = append(parms, q.NewParms...)
		node.NewParms = append(parms, node.NewParms...)
		//
		return node
	default:
		return q
	}
}

// edit rewrites every vector of this quast into its final form.
func (q *Quast) edit(bignum, urs int, flags editFlags) {
	if q == nil {
		return
	}
	//
	for i := range q.NewParms {
		np := &q.NewParms[i]
		np.Vector = np.Vector.edit(bignum, urs, flags&editRemove)
		np.Rank -= urs
		//
		if flags&editRemove != 0 {
			np.Rank--
		}
	}
	//
	switch q.kind {
	case leafNode:
		for i := range q.List {
			q.List[i] = q.List[i].edit(bignum, urs, flags)
		}
	case splitNode:
		q.Condition = q.Condition.edit(bignum, urs, flags&editRemove)
		q.Then.edit(bignum, urs, flags)
		q.Else.edit(bignum, urs, flags)
	}
}

// mergeEqualityDuals folds the dual values of the two inequalities generated
// for each equality of the original system into a single value.  The
// remaining duals then correspond one-to-one with the rows of that system.
func (q *Quast) mergeEqualityDuals(equalities []bool) {
	for _, leaf := range q.Leaves() {
		if !leaf.IsLeaf() || leaf.Dual == nil {
			continue
		}
		//
		var (
			merged = make([]Vector, 0, len(equalities))
			k      = 0
		)
		//
		for _, eq := range equalities {
			if k >= len(leaf.Dual) {
				break
			}
			//
			if !eq {
				merged = append(merged, leaf.Dual[k])
				k++
				//
				continue
			}
			//
			first, second := leaf.Dual[k], leaf.Dual[k+1]
			//
			if first.Num[0].Sign() != 0 {
				merged = append(merged, first)
			} else {
				second.Num[0].Neg(&second.Num[0])
				merged = append(merged, second)
			}
			//
			k += 2
		}
		//
		leaf.Dual = merged
	}
}
