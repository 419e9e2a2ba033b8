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

// PruneDups removes every dependence which is identical to an earlier one in
// the graph (same statements, references, kind, depth and domain).  This
// returns the number of dependences removed.
func PruneDups(graph *Graph) int {
	var kept []*Dependence
	//
	return graph.Retain(func(dep *Dependence) bool {
		for _, other := range kept {
			if dep.Equal(other) {
				return false
			}
		}
		//
		kept = append(kept, dep)
		//
		return true
	})
}
