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
package termio

import (
	"fmt"
	"io"
	"strings"
)

// TablePrinter is useful for printing tables to the terminal.
type TablePrinter struct {
	widths        []uint
	rows          [][]string
	escapes       [][]AnsiEscape
	enableEscapes bool
}

// NewTablePrinter constructs a new table with given dimensions.
func NewTablePrinter(width uint, height uint) *TablePrinter {
	widths := make([]uint, width)
	rows := make([][]string, height)
	escapes := make([][]AnsiEscape, height)
	// Construct the table
	for i := uint(0); i < height; i++ {
		rows[i] = make([]string, width)
		escapes[i] = make([]AnsiEscape, width)
	}

	return &TablePrinter{widths, rows, escapes, true}
}

// Set the contents of a given cell in this table
func (p *TablePrinter) Set(col uint, row uint, val string) {
	p.widths[col] = max(p.widths[col], uint(len(val)))
	p.rows[row][col] = val
}

// Get the contents of a given cell in this table
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// Height returns the height of this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// SetEscape set the colour to use when printing the contents of a given cell
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.escapes[row][col] = escape
}

// AnsiEscapes enables or disables the use of ANSI escapes (e.g. for showing
// colour).  Escapes should be disabled unless printing to a terminal.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// SetRow sets the contents of an entire row in this table
func (p *TablePrinter) SetRow(row uint, vals ...string) {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	//
	for i, val := range vals {
		p.Set(uint(i), row, val)
	}
}

// SetMaxWidth puts an upper bound on the width of a given column.
func (p *TablePrinter) SetMaxWidth(col uint, width uint) {
	p.widths[col] = min(p.widths[col], max(width, 3))
}

// FitWidth shrinks the last column so that every line fits within a given
// width.
func (p *TablePrinter) FitWidth(width uint) {
	var used uint
	//
	if len(p.widths) == 0 {
		return
	}
	//
	for _, w := range p.widths[:len(p.widths)-1] {
		used += w + 3
	}
	//
	if used+4 < width {
		p.SetMaxWidth(uint(len(p.widths)-1), width-used-4)
	} else {
		p.SetMaxWidth(uint(len(p.widths)-1), 0)
	}
}

// Print the table to a given writer.
func (p *TablePrinter) Print(w io.Writer) {
	var builder strings.Builder
	//
	for i, row := range p.rows {
		for j, col := range row {
			text := col
			width := int(p.widths[j])
			// Truncate long cells
			if len(col) > width {
				text = col[0:width-2] + ".."
			}
			//
			text = fmt.Sprintf("%-*s", width, text)
			//
			if p.enableEscapes {
				text = p.escapes[i][j].Wrap(text)
			}
			//
			builder.WriteString(" ")
			builder.WriteString(text)
			builder.WriteString(" |")
		}
		//
		builder.WriteString("\n")
	}
	//
	fmt.Fprint(w, builder.String())
}
