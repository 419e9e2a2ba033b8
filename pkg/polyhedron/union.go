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
	"fmt"

	"github.com/pkg/errors"
)

// Union is an ordered disjunction of polyhedra.  Most operations act on the
// first member only.
type Union []*Matrix

// First returns the first member of this union, or nil if it is empty.
func (p Union) First() *Matrix {
	if len(p) == 0 {
		return nil
	}
	//
	return p[0]
}

// CloneN returns a deep copy of the first n members of this union.
func (p Union) CloneN(n int) Union {
	if n < 0 || n > len(p) {
		panic(fmt.Sprintf("cannot clone %d members of a union of %d", n, len(p)))
	}
	//
	nunion := make(Union, n)
	//
	for i := 0; i < n; i++ {
		nunion[i] = p[i].Clone()
	}
	//
	return nunion
}

// Clone returns a deep copy of this union.
func (p Union) Clone() Union {
	return p.CloneN(len(p))
}

// IntegrityCheck checks every member individually, and additionally that all
// members agree on their kind and attributes.
func (p Union) IntegrityCheck() error {
	for i, m := range p {
		if err := m.IntegrityCheck(); err != nil {
			return errors.Wrapf(err, "union member %d", i)
		}
		//
		if i > 0 {
			first := p[0]
			if m.kind != first.kind || m.outputDims != first.outputDims || m.inputDims != first.inputDims ||
				m.localDims != first.localDims || m.parameters != first.parameters {
				return errors.Errorf("union member %d disagrees with first member on attributes", i)
			}
		}
	}
	//
	return nil
}
