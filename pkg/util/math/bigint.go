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
package math

import (
	"math/big"
)

// Zero is a shared read-only zero.  It must never be used as the receiver of
// an arithmetic operation.
var Zero = big.NewInt(0)

// One is a shared read-only one.  It must never be used as the receiver of an
// arithmetic operation.
var One = big.NewInt(1)

// NewInt constructs a fresh big integer from a machine integer.
func NewInt(v int64) *big.Int {
	return big.NewInt(v)
}

// Clone returns a fresh copy of a given big integer.
func Clone(v *big.Int) *big.Int {
	return new(big.Int).Set(v)
}

// FloorDiv computes floor(a/b) for any non-zero b.  Note that big.Int.Div
// implements Euclidean division, which only coincides with flooring division
// for positive divisors.
func FloorDiv(a, b *big.Int) *big.Int {
	var q, r big.Int
	//
	if b.Sign() == 0 {
		panic("division by zero")
	}
	//
	q.QuoRem(a, b, &r)
	// Quo truncates towards zero, so adjust when the signs differ.
	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(&q, One)
	}
	//
	return &q
}

// CeilDiv computes ceil(a/b) for any non-zero b.
func CeilDiv(a, b *big.Int) *big.Int {
	var na big.Int
	//
	q := FloorDiv(na.Neg(a), b)
	//
	return q.Neg(q)
}

// FloorMod computes a - b*floor(a/b).  For positive b the result lies in
// [0,b).
func FloorMod(a, b *big.Int) *big.Int {
	var m big.Int
	//
	q := FloorDiv(a, b)
	m.Mul(q, b)
	//
	return m.Sub(a, &m)
}

// Gcd returns the (non-negative) greatest common divisor of two integers,
// where gcd(0,0) = 0.
func Gcd(a, b *big.Int) *big.Int {
	var g big.Int
	//
	return g.GCD(nil, nil, a, b)
}

// GcdOf returns the non-negative greatest common divisor of all given integers,
// or zero when they are all zero (or none are given).
func GcdOf(vals ...*big.Int) *big.Int {
	var g = new(big.Int)
	//
	for _, v := range vals {
		if v.Sign() != 0 {
			g.GCD(nil, nil, g, v)
			//
			if g.Cmp(One) == 0 {
				break
			}
		}
	}
	//
	return g
}

// Lcm returns the non-negative least common multiple of two integers.
func Lcm(a, b *big.Int) *big.Int {
	var l big.Int
	//
	if a.Sign() == 0 || b.Sign() == 0 {
		return &l
	}
	//
	g := Gcd(a, b)
	l.Mul(a, b)
	l.Abs(&l)
	//
	return l.Quo(&l, g)
}

// Divides determines whether d divides n exactly.  Only zero divides zero.
func Divides(d, n *big.Int) bool {
	var r big.Int
	//
	if d.Sign() == 0 {
		return n.Sign() == 0
	}
	//
	return r.Rem(n, d).Sign() == 0
}

// IsOne checks whether a given integer equals one.
func IsOne(v *big.Int) bool {
	return v.Cmp(One) == 0
}

// IsMinusOne checks whether a given integer equals minus one.
func IsMinusOne(v *big.Int) bool {
	return v.IsInt64() && v.Int64() == -1
}
