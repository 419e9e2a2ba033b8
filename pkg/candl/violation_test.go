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
	"testing"

	"github.com/consensys/go-candl/pkg/polyhedron"
	"github.com/consensys/go-candl/pkg/util/assert"
)

func Test_Violation_01(t *testing.T) {
	// Identity schedule
	violations, graph := ComputeViolations(shiftScop(), shiftScop(), DefaultOptions())
	//
	assert.Equal(t, 1, graph.Len())
	assert.Equal(t, 0, len(violations))
}

func Test_Violation_02(t *testing.T) {
	// Loop reversal
	transformed := shiftScop()
	transformed.Statements[0].Scattering = loopScattering(0, -1, 0)
	transformed.Statements[1].Scattering = loopScattering(0, -1, 1)
	//
	violations, _ := ComputeViolations(shiftScop(), transformed, DefaultOptions())
	//
	assert.Equal(t, 1, len(violations))
	assert.Equal(t, 2, violations[0].Dimension)
	assert.Equal(t, RAW, violations[0].Dependence.Kind)
	assert.Nil(t, violations[0].Domain.IntegrityCheck())
}

func Test_Violation_03(t *testing.T) {
	// Swapping statements within the loop body is legal
	transformed := shiftScop()
	transformed.Statements[0].Scattering = loopScattering(0, 1, 1)
	transformed.Statements[1].Scattering = loopScattering(0, 1, 0)
	//
	violations, _ := ComputeViolations(shiftScop(), transformed, DefaultOptions())
	//
	assert.Equal(t, 0, len(violations))
}

func Test_Violation_04(t *testing.T) {
	// Fission with S1 first violates the outer dimension
	var (
		transformed = shiftScop()
		options     = DefaultOptions()
	)
	//
	transformed.Statements[0].Scattering = loopScattering(1, 1, 0)
	transformed.Statements[1].Scattering = loopScattering(0, 1, 0)
	//
	violations, _ := ComputeViolations(shiftScop(), transformed, options)
	assert.Equal(t, 1, len(violations))
	assert.Equal(t, 1, violations[0].Dimension)
	//
	options.FullCheck = true
	violations, _ = ComputeViolations(shiftScop(), transformed, options)
	// Later dimensions require equal outer dates
	assert.Equal(t, 1, len(violations))
}

func Test_Violation_05(t *testing.T) {
	transformed := shiftScop()
	transformed.Statements[1].Scattering = nil
	//
	assert.Panics(t, func() { ComputeViolations(shiftScop(), transformed, DefaultOptions()) })
}

func Test_Violation_06(t *testing.T) {
	transformed := shiftScop()
	transformed.Statements = transformed.Statements[:1]
	//
	assert.Panics(t, func() { ComputeViolations(shiftScop(), transformed, DefaultOptions()) })
}

func Test_ViolationSystem_01(t *testing.T) {
	var (
		scop = shiftScop()
		dep  = ComputeDependences(scop, DefaultOptions()).Get(0)
		src  = loopScattering(0, 1, 0)
		tgt  = loopScattering(0, 1, 1)
	)
	//
	system := violationSystem(dep, src, tgt, 3)
	//
	assert.Equal(t, polyhedron.Undefined, system.Kind())
	assert.Equal(t, dep.Domain.OutputDims()+3, system.OutputDims())
	assert.Equal(t, dep.Domain.InputDims()+3, system.InputDims())
	assert.Equal(t, dep.Domain.Rows()+src.Rows()+tgt.Rows()+3, system.Rows())
	// 0 - 1 - 1 >= 0 on the last dimension
	assert.Equal(t, 0, len(violationsOf(dep, scop.Context, src, tgt, true)))
}
