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

import "fmt"

// Kind identifies the role a relation plays within a SCoP.  This determines
// which attribute combinations are legal for it.
type Kind uint8

const (
	// Undefined is used for intermediate systems (e.g. dependence domains)
	// which have no fixed role.
	Undefined Kind = iota
	// Context constrains the global parameters only.
	Context
	// Domain is the iteration domain of a statement.
	Domain
	// Scattering maps statement iterations to a logical execution date.
	Scattering
	// Read is an access relation which reads from an array.
	Read
	// Write is an access relation which (definitely) writes to an array.
	Write
	// MayWrite is an access relation which may write to an array.
	MayWrite
)

// IsAccess determines whether this kind describes an array access.
func (k Kind) IsAccess() bool {
	switch k {
	case Read, Write, MayWrite:
		return true
	case Undefined, Context, Domain, Scattering:
		return false
	default:
		panic(fmt.Sprintf("unknown relation kind (%d)", k))
	}
}

// IsWrite determines whether this kind describes a (possibly conditional)
// write access.
func (k Kind) IsWrite() bool {
	return k == Write || k == MayWrite
}

func (k Kind) String() string {
	switch k {
	case Undefined:
		return "undefined"
	case Context:
		return "context"
	case Domain:
		return "domain"
	case Scattering:
		return "scattering"
	case Read:
		return "read"
	case Write:
		return "write"
	case MayWrite:
		return "may_write"
	default:
		panic(fmt.Sprintf("unknown relation kind (%d)", k))
	}
}

// ParseKind converts the textual name of a kind (as produced by String) back
// into a Kind.
func ParseKind(name string) (Kind, bool) {
	for k := Undefined; k <= MayWrite; k++ {
		if k.String() == name {
			return k, true
		}
	}
	//
	return Undefined, false
}
