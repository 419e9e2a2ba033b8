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
	"bytes"
	"io"
	"os"

	"github.com/consensys/go-candl/pkg/candl"
	"github.com/consensys/go-candl/pkg/polyhedron"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is the YAML form of a SCoP.
type File struct {
	Parameters int         `yaml:"parameters"`
	Context    *Relation   `yaml:"context,omitempty"`
	Statements []Statement `yaml:"statements"`
}

// Statement is the YAML form of a single statement.  The loop index is
// optional and, when omitted from any statement, is derived for all of them
// from their scatterings.
type Statement struct {
	Index       []int      `yaml:"index,omitempty,flow"`
	Commutative []int      `yaml:"commutative,omitempty,flow"`
	Domain      Relation   `yaml:"domain"`
	Scattering  *Relation  `yaml:"scattering,omitempty"`
	Accesses    []Relation `yaml:"accesses"`
}

// ReadFile reads a SCoP from a given file.
func ReadFile(filename string) (*candl.Scop, error) {
	data, err := os.ReadFile(filename)
	//
	if err != nil {
		return nil, err
	}
	//
	scop, err := Load(data)
	//
	return scop, errors.Wrapf(err, "%s", filename)
}

// Load parses a SCoP from its YAML form.  Unknown fields are rejected.
func Load(data []byte) (*candl.Scop, error) {
	var file File
	//
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&file); err != nil {
		return nil, errors.Wrap(err, "malformed scop")
	}
	//
	return file.Scop()
}

// Scop converts this file into a SCoP, checking its consistency.
func (p *File) Scop() (*candl.Scop, error) {
	var (
		scop    = &candl.Scop{}
		indexed = true
	)
	//
	if p.Context != nil {
		context, err := p.Context.Matrix(polyhedron.Context, 0, p.Parameters)
		if err != nil {
			return nil, errors.Wrap(err, "context")
		}
		//
		scop.Context = context
	}
	//
	for i, s := range p.Statements {
		stmt, err := s.statement(i, p.Parameters)
		if err != nil {
			return nil, errors.Wrapf(err, "statement %d", i)
		}
		//
		indexed = indexed && (s.Index != nil || stmt.Depth == 0)
		scop.Statements = append(scop.Statements, stmt)
	}
	//
	if !indexed {
		candl.InitStatementOrder(scop)
	}
	//
	return scop, scop.Validate()
}

func (p *Statement) statement(label int, params int) (*candl.Statement, error) {
	var err error
	//
	stmt := &candl.Statement{Label: label, Index: p.Index, Commutative: p.Commutative}
	//
	if stmt.Domain, err = p.Domain.Matrix(polyhedron.Domain, 0, params); err != nil {
		return nil, errors.Wrap(err, "domain")
	}
	//
	stmt.Depth = stmt.Domain.OutputDims()
	//
	if stmt.Index == nil && stmt.Depth == 0 {
		stmt.Index = []int{}
	}
	//
	if p.Scattering != nil {
		if stmt.Scattering, err = p.Scattering.Matrix(polyhedron.Scattering, stmt.Depth, params); err != nil {
			return nil, errors.Wrap(err, "scattering")
		}
	}
	//
	for k, a := range p.Accesses {
		access, err := a.Matrix(polyhedron.Read, stmt.Depth, params)
		if err != nil {
			return nil, errors.Wrapf(err, "access %d", k)
		}
		//
		stmt.Accesses = append(stmt.Accesses, access)
	}
	//
	return stmt, nil
}

// NewFile converts a SCoP into its YAML form.
func NewFile(scop *candl.Scop) *File {
	file := &File{Parameters: scop.Parameters()}
	//
	if scop.Context != nil {
		context := NewRelation(scop.Context)
		file.Context = &context
	}
	//
	for _, s := range scop.Statements {
		stmt := Statement{Index: s.Index, Commutative: s.Commutative, Domain: NewRelation(s.Domain)}
		//
		if s.Scattering != nil {
			scattering := NewRelation(s.Scattering)
			stmt.Scattering = &scattering
		}
		//
		for _, a := range s.Accesses {
			stmt.Accesses = append(stmt.Accesses, NewRelation(a))
		}
		//
		file.Statements = append(file.Statements, stmt)
	}
	//
	return file
}

// Encode writes a SCoP in its YAML form.
func Encode(w io.Writer, scop *candl.Scop) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	//
	if err := encoder.Encode(NewFile(scop)); err != nil {
		return err
	}
	//
	return encoder.Close()
}
