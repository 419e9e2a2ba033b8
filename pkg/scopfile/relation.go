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
	"github.com/consensys/go-candl/pkg/polyhedron"
	"github.com/pkg/errors"
)

// Relation is the YAML form of a constraint matrix.  Rows are laid out as
// [ marker | output | input | local | parameters | constant ], where a zero
// marker denotes an equality and a one an inequality (>= 0).
type Relation struct {
	// Type of an access relation (read, write or may_write).  This is
	// ignored for domains and scatterings.
	Type string `yaml:"type,omitempty"`
	// Output dimensions.  When omitted, these are whatever columns remain.
	Output *int `yaml:"output,omitempty"`
	// Input dimensions.  When omitted, these match the depth of the
	// enclosing statement (or zero for a domain).
	Input *int `yaml:"input,omitempty"`
	// Local (existentially quantified) dimensions.
	Local int   `yaml:"local,omitempty"`
	Rows  []Row `yaml:"rows"`
}

// NewRelation converts a matrix into its YAML form.
func NewRelation(m *polyhedron.Matrix) Relation {
	var (
		out  = m.OutputDims()
		in   = m.InputDims()
		rows = make([]Row, m.Rows())
		kind string
	)
	//
	if m.Kind().IsAccess() {
		kind = m.Kind().String()
	}
	//
	for i := range rows {
		rows[i] = make(Row, m.Columns())
		//
		for j := range rows[i] {
			rows[i][j].value.Set(m.Get(i, j))
		}
	}
	//
	return Relation{kind, &out, &in, m.LocalDims(), rows}
}

// Matrix converts this relation into a matrix of a given kind.  Access
// relations take their kind from the relation itself.  Every row must have
// the same width, and there must be a column for each parameter.  An empty
// relation (without rows) has no dimensions, unless they are given
// explicitly.
func (r *Relation) Matrix(kind polyhedron.Kind, depth int, params int) (*polyhedron.Matrix, error) {
	var (
		in      = 0
		columns = 2 + params + r.Local
	)
	//
	if kind.IsAccess() {
		var ok bool
		//
		if kind, ok = polyhedron.ParseKind(r.Type); !ok || !kind.IsAccess() {
			return nil, errors.Errorf("invalid access type \"%s\"", r.Type)
		}
	}
	//
	if kind != polyhedron.Domain && kind != polyhedron.Context {
		in = depth
	}
	//
	if r.Input != nil {
		in = *r.Input
	}
	//
	columns += in
	//
	if len(r.Rows) > 0 {
		columns = len(r.Rows[0])
	} else if r.Output != nil {
		columns += *r.Output
	}
	//
	out := columns - 2 - params - r.Local - in
	//
	if out < 0 || (r.Output != nil && *r.Output != out) {
		return nil, errors.Errorf("%d columns inconsistent with %d parameters", columns, params)
	} else if in < 0 || r.Local < 0 {
		return nil, errors.New("negative dimension count")
	}
	//
	m := polyhedron.NewRelation(kind, len(r.Rows), out, in, r.Local, params)
	//
	for i, row := range r.Rows {
		if len(row) != columns {
			return nil, errors.Errorf("row %d has %d columns (expected %d)", i, len(row), columns)
		}
		//
		for j := range row {
			m.Set(i, j, row[j].Big())
		}
	}
	//
	if err := m.IntegrityCheck(); err != nil {
		return nil, err
	}
	//
	return m, nil
}
