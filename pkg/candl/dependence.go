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

import (
	"fmt"

	"github.com/consensys/go-candl/pkg/polyhedron"
)

// Kind identifies the type of a data dependence.
type Kind uint8

const (
	// RAW is a flow dependence (read-after-write).
	RAW Kind = iota
	// WAR is an anti dependence (write-after-read).
	WAR
	// WAW is an output dependence (write-after-write).
	WAW
	// RAR is an input dependence (read-after-read).
	RAR
	// RAWScalarPrivatized is a flow dependence on a privatizable scalar which
	// has been made loop-independent.
	RAWScalarPrivatized
)

func (k Kind) String() string {
	switch k {
	case RAW:
		return "RAW"
	case WAR:
		return "WAR"
	case WAW:
		return "WAW"
	case RAR:
		return "RAR"
	case RAWScalarPrivatized:
		return "RAW_SCALPRIV"
	default:
		panic(fmt.Sprintf("unknown dependence kind (%d)", k))
	}
}

// Dependence is a single edge of the dependence graph.  Its domain relates
// source and target instances, and is laid out as follows:
//
//	[ marker | source dims | source access dims | target dims | target access
//	dims | locals | parameters | constant ]
//
// The source domain and access dimensions are the output dimensions of the
// domain, the target ones its input dimensions.  Locals come in the order
// source domain, source access, target domain, target access, followed by
// any locals introduced by the last writer resolution.
type Dependence struct {
	Source    *Statement
	Target    *Statement
	RefSource int
	RefTarget int
	Kind      Kind
	Depth     int
	Domain    *polyhedron.Matrix
	// Dimension counts of each part of the domain.
	SourceDims         int
	SourceAccessDims   int
	TargetDims         int
	TargetAccessDims   int
	SourceLocals       int
	SourceAccessLocals int
	TargetLocals       int
	TargetAccessLocals int
}

// SourceAccess returns the access relation of the source reference.
func (p *Dependence) SourceAccess() *polyhedron.Matrix {
	return p.Source.Accesses[p.RefSource]
}

// TargetAccess returns the access relation of the target reference.
func (p *Dependence) TargetAccess() *polyhedron.Matrix {
	return p.Target.Accesses[p.RefTarget]
}

// ArrayRefs returns the array identifiers of the source and target
// references.
func (p *Dependence) ArrayRefs() (int, int) {
	return p.SourceAccess().ArrayId(), p.TargetAccess().ArrayId()
}

// SourceColumn returns the domain column of the ith source iterator.
func (p *Dependence) SourceColumn(i int) int {
	return 1 + i
}

// TargetColumn returns the domain column of the ith target iterator.
func (p *Dependence) TargetColumn(i int) int {
	return 1 + p.SourceDims + p.SourceAccessDims + i
}

// Clone returns a copy of this dependence with its own domain.
func (p *Dependence) Clone() *Dependence {
	dep := *p
	dep.Domain = p.Domain.Clone()
	//
	return &dep
}

// Equal determines whether two dependences relate the same references in the
// same way.
func (p *Dependence) Equal(other *Dependence) bool {
	return p.Source == other.Source && p.Target == other.Target && p.RefSource == other.RefSource &&
		p.RefTarget == other.RefTarget && p.Kind == other.Kind && p.Depth == other.Depth &&
		p.Domain.Equal(other.Domain)
}

func (p *Dependence) String() string {
	return fmt.Sprintf("%s -> %s [%s, depth %d, refs %d->%d]", p.Source, p.Target, p.Kind, p.Depth,
		p.RefSource, p.RefTarget)
}

// Graph is the dependence graph of a SCoP, held as an ordered list of edges.
// Edge indices are stable until edges are removed.
type Graph struct {
	edges []*Dependence
}

// NewGraph constructs a graph from a given list of edges.
func NewGraph(edges ...*Dependence) *Graph {
	return &Graph{edges}
}

// Len returns the number of edges in this graph.
func (p *Graph) Len() int {
	return len(p.edges)
}

// Get returns the ith edge of this graph.
func (p *Graph) Get(i int) *Dependence {
	return p.edges[i]
}

// Edges returns the edges of this graph.  The returned slice must not be
// modified.
func (p *Graph) Edges() []*Dependence {
	return p.edges
}

// Add appends one or more edges to this graph.
func (p *Graph) Add(deps ...*Dependence) {
	p.edges = append(p.edges, deps...)
}

// insert places a given edge at position i, shifting subsequent edges.
func (p *Graph) insert(i int, dep *Dependence) {
	p.edges = append(p.edges, nil)
	copy(p.edges[i+1:], p.edges[i:])
	p.edges[i] = dep
}

// Retain keeps only those edges which satisfy a given predicate, preserving
// their order.  This returns the number of edges removed.
func (p *Graph) Retain(keep func(*Dependence) bool) int {
	n := 0
	//
	for _, dep := range p.edges {
		if keep(dep) {
			p.edges[n] = dep
			n++
		}
	}
	//
	removed := len(p.edges) - n
	clear(p.edges[n:])
	p.edges = p.edges[:n]
	//
	return removed
}

// Adjacency indexes the edges of a graph by statement label.
type Adjacency struct {
	// Outgoing maps a statement label to the indices of edges it is the
	// source of.
	Outgoing map[int][]int
	// Incoming maps a statement label to the indices of edges it is the target
	// of.
	Incoming map[int][]int
}

// Adjacency builds the per-statement adjacency index of this graph.  The index
// is a snapshot and must be rebuilt after edges are added or removed.
func (p *Graph) Adjacency() Adjacency {
	adj := Adjacency{make(map[int][]int), make(map[int][]int)}
	//
	for i, dep := range p.edges {
		adj.Outgoing[dep.Source.Label] = append(adj.Outgoing[dep.Source.Label], i)
		adj.Incoming[dep.Target.Label] = append(adj.Incoming[dep.Target.Label], i)
	}
	//
	return adj
}
