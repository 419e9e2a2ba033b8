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

// renameScalars gives a fresh identifier to each group of statements which
// only ever see the value of a different definition of the same scalar.  A
// definition which does not cover the iterations of the previous one (on
// their common loops) does not start a new group.  This returns true if any
// access was renamed, in which case the dependence graph is stale.
func (p *analyzer) renameScalars() bool {
	var (
		stmts   = p.scop.Statements
		fresh   = p.scop.maxArrayId() + 1
		changed = false
	)
	//
	for _, id := range p.scop.Scalars() {
		chain := refvarChain(p.scop, nil, id, 0)
		// Nothing can be done when the first reference is a use
		if len(chain) == 0 || chain[0].references(id) != defined {
			continue
		}
		//
		var defs, uses []*Statement
		//
		for _, s := range chain {
			switch s.references(id) {
			case used, definedUsed:
				uses = append(uses, s)
			case defined:
				defs = append(defs, s)
			}
		}
		// Reaching definition of each statement
		var (
			current = make(map[*Statement]*Statement)
			last    *Statement
		)
		//
		for _, def := range defs {
			if last == nil {
				last = def
			} else if k := last.CommonLoops(def); k > 0 && !domainIsIncluded(last, def, p.context, k+1) {
				current[def] = last
				continue
			} else {
				last = def
			}
			//
			for _, use := range uses {
				if use.Label > def.Label {
					current[use] = def
				}
			}
		}
		//
		parts := make([]int, len(stmts))
		//
		for i, s := range stmts {
			parts[i] = -1
			//
			for j, def := range defs {
				if current[s] == def || (s == def && current[s] == nil) {
					parts[i] = j
				}
			}
		}
		//
		if !multiplePartitions(parts) {
			continue
		}
		//
		for i, s := range stmts {
			if parts[i] < 0 {
				continue
			}
			//
			for _, a := range s.Accesses {
				if a.ArrayId() == id {
					p.debugf("renamed scalar %d to %d in %s", id, fresh+parts[i], s)
					a.SetArrayId(fresh + parts[i])
				}
			}
		}
		//
		changed = true
		fresh += len(defs)
	}
	//
	return changed
}

func multiplePartitions(parts []int) bool {
	first := -1
	//
	for _, part := range parts {
		if part < 0 {
			continue
		} else if first < 0 {
			first = part
		} else if part != first {
			return true
		}
	}
	//
	return false
}
