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
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/consensys/go-candl/pkg/candl"
	"github.com/consensys/go-candl/pkg/scopfile"
	"github.com/consensys/go-candl/pkg/util/termio"
)

// Print the edges of a dependence graph as a table, one edge per row.
func printDependences(graph *candl.Graph, ddv bool, width uint) {
	header := []string{"#", "source", "target", "kind", "depth", "refs", "rows"}
	//
	if ddv {
		header = append(header, "distances")
	}
	//
	tp := termio.NewTablePrinter(uint(len(header)), uint(1+graph.Len()))
	tp.SetRow(0, header...)
	//
	for i := uint(0); i < uint(len(header)); i++ {
		tp.SetEscape(i, 0, termio.BoldAnsiEscape())
	}
	//
	for i, dep := range graph.Edges() {
		row := []string{
			fmt.Sprintf("%d", i),
			dep.Source.String(),
			dep.Target.String(),
			dep.Kind.String(),
			fmt.Sprintf("%d", dep.Depth),
			fmt.Sprintf("%d -> %d", dep.RefSource, dep.RefTarget),
			fmt.Sprintf("%d", dep.Domain.Rows()),
		}
		//
		if ddv {
			row = append(row, distances(dep))
		}
		//
		tp.SetRow(uint(i+1), row...)
		tp.SetEscape(3, uint(i+1), kindEscape(dep.Kind))
	}
	//
	tp.AnsiEscapes(termio.IsTerminal(os.Stdout))
	tp.FitWidth(width)
	tp.Print(os.Stdout)
}

// Print the violations of a candidate schedule, one per line.
func printViolations(violations []*candl.Violation) {
	if len(violations) == 0 {
		fmt.Println("no violations")
		return
	}
	//
	tp := termio.NewTablePrinter(3, uint(1+len(violations)))
	tp.SetRow(0, "dependence", "kind", "dimension")
	//
	for i, v := range violations {
		tp.SetRow(uint(i+1), fmt.Sprintf("%s -> %s", v.Dependence.Source, v.Dependence.Target),
			v.Dependence.Kind.String(), fmt.Sprintf("%d", v.Dimension))
		tp.SetEscape(1, uint(i+1), kindEscape(v.Dependence.Kind))
	}
	//
	tp.AnsiEscapes(termio.IsTerminal(os.Stdout))
	tp.Print(os.Stdout)
}

// Distance vector of a dependence over the loops common to its source and
// target.
func distances(dep *candl.Dependence) string {
	edge := scopfile.NewEdge(dep, false, true)
	//
	return fmt.Sprintf("(%s)", strings.Join(edge.Distances, ", "))
}

func kindEscape(kind candl.Kind) termio.AnsiEscape {
	switch kind {
	case candl.RAW:
		return termio.NewAnsiEscape().FgColour(termio.TERM_RED)
	case candl.WAR:
		return termio.NewAnsiEscape().FgColour(termio.TERM_YELLOW)
	case candl.WAW:
		return termio.NewAnsiEscape().FgColour(termio.TERM_BLUE)
	case candl.RAR:
		return termio.NewAnsiEscape().FgColour(termio.TERM_GREEN)
	case candl.RAWScalarPrivatized:
		return termio.NewAnsiEscape().FgColour(termio.TERM_MAGENTA)
	default:
		panic(fmt.Sprintf("unknown dependence kind (%d)", kind))
	}
}
