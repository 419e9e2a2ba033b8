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
	"os"

	"github.com/consensys/go-candl/pkg/pip"
	"github.com/consensys/go-candl/pkg/polyhedron"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Problem is the YAML form of a parametric integer programming problem.  The
// unknowns are laid out as [ marker | unknowns | parameters | constant ], and
// the (optional) context as [ marker | parameters | constant ].
type Problem struct {
	Parameters int   `yaml:"parameters"`
	Unknowns   []Row `yaml:"unknowns"`
	Context    []Row `yaml:"context,omitempty"`
	// Bignum column, or -1 for none (the default).
	Bignum *int `yaml:"bignum,omitempty"`
	// Integer requests an integral solution (the default).
	Integer       *bool `yaml:"integer,omitempty"`
	UrsParameters bool  `yaml:"urs_parameters,omitempty"`
	UrsUnknowns   bool  `yaml:"urs_unknowns,omitempty"`
	Simplify      bool  `yaml:"simplify,omitempty"`
}

// ReadProblem reads a problem from a given file.
func ReadProblem(filename string) (*Problem, error) {
	data, err := os.ReadFile(filename)
	//
	if err != nil {
		return nil, err
	}
	//
	problem, err := LoadProblem(data)
	//
	return problem, errors.Wrapf(err, "%s", filename)
}

// LoadProblem parses a problem from its YAML form.
func LoadProblem(data []byte) (*Problem, error) {
	var problem Problem
	//
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&problem); err != nil {
		return nil, errors.Wrap(err, "malformed problem")
	} else if len(problem.Unknowns) == 0 {
		return nil, errors.New("problem without constraints")
	}
	//
	return &problem, nil
}

// Matrices returns the constraint matrices of this problem.
func (p *Problem) Matrices() (*polyhedron.Matrix, *polyhedron.Matrix, error) {
	var (
		width    = len(p.Unknowns[0])
		unknowns = width - 2 - p.Parameters
		rel      = Relation{Rows: p.Unknowns}
		ctx      = Relation{Rows: p.Context, Output: new(int)}
	)
	//
	if unknowns < 0 {
		return nil, nil, errors.Errorf("%d columns inconsistent with %d parameters", width, p.Parameters)
	}
	//
	system, err := rel.Matrix(polyhedron.Undefined, 0, p.Parameters)
	if err != nil {
		return nil, nil, errors.Wrap(err, "unknowns")
	}
	//
	context, err := ctx.Matrix(polyhedron.Context, 0, p.Parameters)
	if err != nil {
		return nil, nil, errors.Wrap(err, "context")
	} else if p.Bignum != nil && (*p.Bignum < 0 || *p.Bignum >= width) {
		return nil, nil, errors.Errorf("bignum column %d out of range", *p.Bignum)
	}
	//
	return system, context, nil
}

// BignumColumn returns the bignum column of this problem, or -1.
func (p *Problem) BignumColumn() int {
	if p.Bignum == nil {
		return -1
	}
	//
	return *p.Bignum
}

// Options returns the solver options of this problem.
func (p *Problem) Options() pip.Options {
	options := pip.DefaultOptions()
	//
	if p.Integer != nil {
		options.Integer = *p.Integer
	}
	//
	options.UrsParams = p.UrsParameters
	options.UrsUnknowns = p.UrsUnknowns
	options.Simplify = p.Simplify
	//
	return options
}
