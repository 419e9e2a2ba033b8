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

import "github.com/consensys/go-candl/pkg/polyhedron"

// HasRationalPoint checks whether a system, laid out as [ marker | unknowns |
// parameters | constant ], has a rational solution for some parameter values
// within a given context.  Both unknowns and parameters are unrestricted in
// sign.
func HasRationalPoint(system, context *polyhedron.Matrix) bool {
	return Solve(system, context, -1, RationalPointOptions()) != nil
}

// HasIntegerPoint checks whether a system has an integral solution for some
// parameter values within a given context.  As for HasRationalPoint, unknowns
// and parameters are unrestricted in sign.
func HasIntegerPoint(system, context *polyhedron.Matrix) bool {
	return Solve(system, context, -1, IntegerPointOptions()) != nil
}

// LexMin computes the lexicographic minimum of the unknowns of a system within
// a given context.
func LexMin(system, context *polyhedron.Matrix, options Options) *Quast {
	options.Maximize = false
	//
	return Solve(system, context, -1, options)
}

// LexMax computes the lexicographic maximum of the unknowns of a system within
// a given context.
func LexMax(system, context *polyhedron.Matrix, options Options) *Quast {
	options.Maximize = true
	//
	return Solve(system, context, -1, options)
}
