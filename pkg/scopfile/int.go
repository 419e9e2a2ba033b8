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
	"math/big"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Int is an arbitrary precision matrix entry.  It is written as a plain YAML
// integer, irrespective of its size.
type Int struct {
	value big.Int
}

// NewInt constructs an entry from a machine integer.
func NewInt(v int64) Int {
	var i Int
	//
	i.value.SetInt64(v)
	//
	return i
}

// Big returns the value of this entry.
func (i *Int) Big() *big.Int {
	return &i.value
}

// MarshalYAML implements yaml.Marshaler.
func (i Int) MarshalYAML() (any, error) {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: i.value.String()}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (i *Int) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Errorf("line %d: expected integer", node.Line)
	} else if _, ok := i.value.SetString(node.Value, 0); !ok {
		return errors.Errorf("line %d: invalid integer \"%s\"", node.Line, node.Value)
	}
	//
	return nil
}

// Row is a single constraint, written on one line.
type Row []Int

// MarshalYAML implements yaml.Marshaler.
func (r Row) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	//
	for _, v := range r {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v.value.String()})
	}
	//
	return node, nil
}

// Ints converts machine integers into a row.
func Ints(vals ...int64) Row {
	row := make(Row, len(vals))
	//
	for k, v := range vals {
		row[k].value.SetInt64(v)
	}
	//
	return row
}
