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

// Options controls how a parametric integer programming problem is solved.
type Options struct {
	// Integer requests integral solutions (via cuts).  Otherwise, rational
	// solutions are returned.
	Integer bool
	// Maximize requests the lexicographic maximum instead of the minimum.
	Maximize bool
	// Simplify collapses decision nodes whose branches are identical, including
	// splits where neither branch has a solution.
	Simplify bool
	// UrsParams treats parameters as unrestricted in sign, rather than
	// non-negative.
	UrsParams bool
	// UrsUnknowns treats unknowns as unrestricted in sign, rather than
	// non-negative.
	UrsUnknowns bool
	// DeepestCut selects the deepest constant cut (rather than the first one
	// found) when searching for integral solutions.
	DeepestCut bool
	// ComputeDual additionally returns the dual variables of each leaf.  This
	// only applies to rational problems.
	ComputeDual bool
	// Verbose reports solver statistics through the logger.
	Verbose bool
}

// DefaultOptions returns the default options: integral, non-negative
// lexicographic minimum without simplification.
func DefaultOptions() Options {
	return Options{Integer: true}
}

// RationalPointOptions returns the options used for feasibility queries: a
// rational solution over unrestricted unknowns and parameters.
func RationalPointOptions() Options {
	return Options{Simplify: true, UrsParams: true, UrsUnknowns: true}
}

// IntegerPointOptions returns the options used for integral feasibility
// checks.
func IntegerPointOptions() Options {
	options := RationalPointOptions()
	options.Integer = true
	//
	return options
}
