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
package scopfile

import (
	"testing"

	"github.com/consensys/go-candl/pkg/pip"
	"github.com/consensys/go-candl/pkg/util/assert"
)

func Test_Problem_01(t *testing.T) {
	problem, err := ReadProblem(TestDir + "/pip/bounded.yaml")
	assert.Nil(t, err)
	//
	system, context, err := problem.Matrices()
	assert.Nil(t, err)
	assert.Equal(t, 0, context.Columns()-2)
	//
	q := pip.Solve(system, context, problem.BignumColumn(), problem.Options())
	//
	assert.True(t, q.IsLeaf())
	assert.Equal(t, 1, len(q.List))
	assert.Equal(t, int64(5), q.List[0].Num[0].Int64())
}

func Test_Problem_02(t *testing.T) {
	problem, err := ReadProblem(TestDir + "/pip/empty.yaml")
	assert.Nil(t, err)
	//
	system, context, err := problem.Matrices()
	assert.Nil(t, err)
	assert.True(t, pip.Solve(system, context, problem.BignumColumn(), problem.Options()) == nil)
}

func Test_Problem_03(t *testing.T) {
	problem, err := ReadProblem(TestDir + "/pip/parametric.yaml")
	assert.Nil(t, err)
	//
	system, context, err := problem.Matrices()
	assert.Nil(t, err)
	assert.Equal(t, 1, system.Parameters())
	assert.Equal(t, 1, context.Rows())
	//
	q := pip.Solve(system, context, problem.BignumColumn(), problem.Options())
	n := 0
	// i = N
	for _, leaf := range q.Leaves() {
		if leaf.IsLeaf() {
			assert.Equal(t, int64(1), leaf.List[0].Num[0].Int64())
			assert.Equal(t, int64(0), leaf.List[0].Num[1].Int64())
			n++
		}
	}
	//
	assert.True(t, n > 0)
}

func Test_Problem_04(t *testing.T) {
	problem, err := LoadProblem([]byte("parameters: 0\nunknowns: [[1, 1, -5]]\ninteger: false\nurs_unknowns: true\n"))
	//
	assert.Nil(t, err)
	assert.False(t, problem.Options().Integer)
	assert.True(t, problem.Options().UrsUnknowns)
	assert.Equal(t, -1, problem.BignumColumn())
}

func Test_Problem_05(t *testing.T) {
	_, err := LoadProblem([]byte("parameters: 0\nunknowns: []\n"))
	assert.True(t, err != nil)
	//
	problem, err := LoadProblem([]byte("parameters: 3\nunknowns: [[1, 1, -5]]\n"))
	assert.Nil(t, err)
	//
	_, _, err = problem.Matrices()
	assert.True(t, err != nil)
}

func Test_Problem_06(t *testing.T) {
	problem, err := LoadProblem([]byte("parameters: 0\nunknowns: [[1, 1, -5]]\nbignum: 7\n"))
	assert.Nil(t, err)
	//
	_, _, err = problem.Matrices()
	assert.True(t, err != nil)
}
