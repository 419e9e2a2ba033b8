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
	"github.com/consensys/go-candl/pkg/polyhedron"
	log "github.com/sirupsen/logrus"
)

// ComputeDependences builds the dependence graph of a SCoP.  Every statement
// is analysed against itself and against every other statement (in both
// directions).  The optional passes then run in order: scalar renaming
// (which recomputes the whole graph when anything was renamed), pruning of
// privatizable scalars, last writer resolution and duplicate pruning.  Note
// that scalar renaming and expansion rewrite the access relations of the
// SCoP.
func ComputeDependences(scop *Scop, options Options) *Graph {
	return newAnalyzer(scop, options).run()
}

// analyzer holds the state of a single dependence analysis.
type analyzer struct {
	scop    *Scop
	options Options
	context *polyhedron.Matrix
	// Pairs of scalar and loop for which the scalar is privatizable.  This is
	// nil until the scalar analysis has run.
	privatizable map[privatization]bool
}

type privatization struct {
	variable int
	loop     int
}

func newAnalyzer(scop *Scop, options Options) *analyzer {
	return &analyzer{scop, options, scop.ContextOrUniverse(), nil}
}

func (p *analyzer) run() *Graph {
	if p.options.ScalarPrivatization || p.options.ScalarExpansion {
		p.analyzeScalars()
	}
	//
	graph := p.allPairs()
	//
	if p.options.ScalarRenaming && p.renameScalars() {
		options := p.options
		options.ScalarRenaming = false
		//
		p.debugf("scalars renamed, recomputing dependences")
		// Access relations changed underneath the graph
		return newAnalyzer(p.scop, options).run()
	}
	//
	if p.options.ScalarPrivatization {
		n := p.pruneWithPrivatization(graph)
		p.debugf("pruned %d dependences on privatizable scalars", n)
	}
	//
	if p.options.LastWriter {
		p.lastWriter(graph)
	}
	//
	if p.options.PruneDups {
		n := PruneDups(graph)
		p.debugf("pruned %d duplicate dependences", n)
	}
	//
	return graph
}

// allPairs analyses every ordered pair of statements, including each
// statement with itself.
func (p *analyzer) allPairs() *Graph {
	var (
		graph = NewGraph()
		stmts = p.scop.Statements
	)
	//
	for i, s := range stmts {
		graph.Add(p.between(s, s)...)
		//
		for _, t := range stmts[i+1:] {
			graph.Add(p.between(s, t)...)
			graph.Add(p.between(t, s)...)
		}
	}
	//
	p.debugf("analysed %d statements, found %d dependences", len(stmts), graph.Len())
	//
	return graph
}

// between computes all dependences from one statement to another, for every
// pair of references to the same array and every possible depth.
func (p *analyzer) between(source, target *Statement) []*Dependence {
	var (
		deps               []*Dependence
		minDepth, maxDepth int
	)
	//
	if p.options.Commute && source.CommutesWith(target) {
		return nil
	}
	// A statement instance cannot depend on itself, hence self dependences
	// start at depth 1.
	if source == target {
		minDepth, maxDepth = 1, source.Depth
	} else {
		if source.Depth > 0 && target.Depth > 0 && source.Index[0] == target.Index[0] {
			minDepth = 1
		}
		//
		maxDepth = source.CommonLoops(target)
	}
	//
	for rs, src := range source.Accesses {
		id := src.ArrayId()
		//
		for rt, tgt := range target.Accesses {
			kind, ok := p.kindOf(src.Kind(), tgt.Kind())
			//
			if !ok || tgt.ArrayId() != id {
				continue
			}
			//
			for depth := minDepth; depth <= maxDepth; depth++ {
				if dep := dependenceSystem(p.context, source, target, rs, rt, kind, depth); dep != nil {
					deps = append(deps, dep)
				}
			}
		}
	}
	//
	return deps
}

// kindOf determines the kind of dependence between a pair of accesses, and
// whether that kind was requested.
func (p *analyzer) kindOf(source, target polyhedron.Kind) (Kind, bool) {
	switch {
	case source == polyhedron.Read && target == polyhedron.Read:
		return RAR, p.options.RAR
	case source == polyhedron.Read:
		return WAR, p.options.WAR
	case target == polyhedron.Read:
		return RAW, p.options.RAW
	default:
		return WAW, p.options.WAW
	}
}

func (p *analyzer) debugf(format string, args ...any) {
	if p.options.Verbose {
		log.Debugf("candl: "+format, args...)
	}
}
