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
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Edge is the YAML form of a single dependence.
type Edge struct {
	Source    int       `yaml:"source"`
	Target    int       `yaml:"target"`
	Kind      string    `yaml:"kind"`
	Depth     int       `yaml:"depth"`
	Refs      []int     `yaml:"refs,flow"`
	Domain    *Relation `yaml:"domain,omitempty"`
	Distances []string  `yaml:"distances,omitempty,flow"`
}

// Report is the YAML form of a dependence graph, optionally followed by the
// violations of a candidate schedule.
type Report struct {
	Dependences []Edge      `yaml:"dependences"`
	Violations  []Violation `yaml:"violations,omitempty"`
}

// Violation is the YAML form of a violated dependence.
type Violation struct {
	// Dependence is the index of the violated edge.
	Dependence int `yaml:"dependence"`
	Dimension  int `yaml:"dimension"`
}

// NewEdge converts a dependence into its YAML form.  Domains and distance
// vectors (over the loops common to source and target) are included on
// request.
func NewEdge(dep *candl.Dependence, domain bool, distances bool) Edge {
	edge := Edge{
		Source: dep.Source.Label,
		Target: dep.Target.Label,
		Kind:   dep.Kind.String(),
		Depth:  dep.Depth,
		Refs:   []int{dep.RefSource, dep.RefTarget},
	}
	//
	if domain {
		rel := NewRelation(dep.Domain)
		edge.Domain = &rel
	}
	//
	if n := dep.Source.CommonLoops(dep.Target); distances && n > 0 {
		ddv := candl.ComputeDDV(dep, dep.Source.Index[n-1], n)
		//
		for _, d := range ddv.Distances {
			edge.Distances = append(edge.Distances, d.String())
		}
	}
	//
	return edge
}

// NewReport converts a dependence graph into its YAML form.  Violations refer
// to edges of the graph.
func NewReport(graph *candl.Graph, violations []*candl.Violation, domains bool, distances bool) *Report {
	var report Report
	//
	for _, dep := range graph.Edges() {
		report.Dependences = append(report.Dependences, NewEdge(dep, domains, distances))
	}
	//
	for _, v := range violations {
		for i, dep := range graph.Edges() {
			if dep == v.Dependence {
				report.Violations = append(report.Violations, Violation{i, v.Dimension})
				break
			}
		}
	}
	//
	return &report
}

// EncodeReport writes a report in its YAML form.
func EncodeReport(w io.Writer, report *Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	//
	if err := encoder.Encode(report); err != nil {
		return err
	}
	//
	return encoder.Close()
}

// ReadReport reads a report from a given file.
func ReadReport(filename string) (*Report, error) {
	var report Report
	//
	data, err := os.ReadFile(filename)
	//
	if err != nil {
		return nil, err
	}
	//
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	//
	if err := decoder.Decode(&report); err != nil {
		return nil, errors.Wrapf(err, "%s", filename)
	}
	//
	return &report, nil
}
