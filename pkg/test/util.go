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
package test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/consensys/go-candl/pkg/candl"
	"github.com/consensys/go-candl/pkg/scopfile"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the SCoP descriptions (yaml) and the corresponding dependence reports
// (deps) are found.
const TestDir = "../../testdata/scop"

// Check that the dependences computed for a given SCoP under a given set of
// options match those expected.  The variant names the file of expected
// dependences, as in "shift.default.deps".
func Check(t *testing.T, test string, variant string, options candl.Options) {
	var (
		scopFile   = fmt.Sprintf("%s/%s.yaml", TestDir, test)
		reportFile = fmt.Sprintf("%s/%s.%s.deps", TestDir, test, variant)
	)
	// Enable testing each scop in parallel
	t.Parallel()
	//
	scop, err := scopfile.ReadFile(scopFile)
	if err != nil {
		t.Fatalf("%s: %s", scopFile, err)
	}
	//
	expected, err := scopfile.ReadReport(reportFile)
	if err != nil {
		t.Fatalf("%s: %s", reportFile, err)
	}
	//
	graph := candl.ComputeDependences(scop, options)
	//
	if graph.Len() != len(expected.Dependences) {
		t.Fatalf("%s (%s): expected %d dependences, found %d", test, variant, len(expected.Dependences),
			graph.Len())
	}
	//
	for i, dep := range graph.Edges() {
		checkEdge(t, fmt.Sprintf("%s (%s), edge %d", test, variant, i), expected.Dependences[i], dep)
	}
}

// Check a computed dependence against its expected form.  Distances are only
// compared when expected.
func checkEdge(t *testing.T, id string, expected scopfile.Edge, dep *candl.Dependence) {
	actual := scopfile.NewEdge(dep, false, expected.Distances != nil)
	//
	if actual.Source != expected.Source || actual.Target != expected.Target {
		t.Errorf("%s: expected S%d -> S%d, found %s", id, expected.Source, expected.Target, dep)
	} else if actual.Kind != expected.Kind || actual.Depth != expected.Depth {
		t.Errorf("%s: expected %s at depth %d, found %s", id, expected.Kind, expected.Depth, dep)
	} else if !slices.Equal(actual.Refs, expected.Refs) {
		t.Errorf("%s: expected references %v, found %v", id, expected.Refs, actual.Refs)
	} else if !slices.Equal(actual.Distances, expected.Distances) {
		t.Errorf("%s: expected distances %v, found %v", id, expected.Distances, actual.Distances)
	}
}
