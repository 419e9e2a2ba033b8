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

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// Matrix is a dense constraint matrix describing a single polyhedron.  Each row
// is a constraint laid out as follows:
//
//	[ marker | output dims | input dims | local dims | parameters | constant ]
//
// A marker of 0 indicates an equality (row == 0), whilst a marker of 1
// indicates an inequality (row >= 0).  The structural attributes (number of
// output, input, local dimensions and parameters) always satisfy columns ==
// out + in + local + params + 2 once a matrix has been validated.
type Matrix struct {
	kind       Kind
	outputDims int
	inputDims  int
	localDims  int
	parameters int
	columns    int
	rows       [][]big.Int
}

// NewMatrix allocates a zero-filled matrix with a given number of rows and
// columns.  All non-marker, non-constant columns are initially treated as
// output dimensions.
func NewMatrix(rows, columns int) *Matrix {
	if rows < 0 || columns < 2 {
		panic(fmt.Sprintf("invalid matrix dimensions (%d x %d)", rows, columns))
	}
	//
	m := &Matrix{Undefined, columns - 2, 0, 0, 0, columns, make([][]big.Int, rows)}
	//
	for i := range m.rows {
		m.rows[i] = make([]big.Int, columns)
	}
	//
	return m
}

// NewRelation allocates a zero-filled matrix of a given kind whose column count
// is determined by its attributes.
func NewRelation(kind Kind, rows, out, in, local, params int) *Matrix {
	m := NewMatrix(rows, out+in+local+params+2)
	m.kind = kind
	m.SetAttributes(out, in, local, params)
	//
	return m
}

// FromRows constructs a relation from rows of machine integers.  This is
// primarily useful for tests and for loaders.
func FromRows(kind Kind, out, in, local, params int, rows ...[]int64) *Matrix {
	m := NewRelation(kind, len(rows), out, in, local, params)
	//
	for i, row := range rows {
		if len(row) != m.columns {
			panic(fmt.Sprintf("row %d has %d columns (expected %d)", i, len(row), m.columns))
		}
		//
		for j, v := range row {
			m.rows[i][j].SetInt64(v)
		}
	}
	//
	return m
}

// Kind returns the role of this relation.
func (p *Matrix) Kind() Kind {
	return p.kind
}

// SetKind updates the role of this relation.
func (p *Matrix) SetKind(kind Kind) {
	p.kind = kind
}

// Rows returns the number of constraints in this matrix.
func (p *Matrix) Rows() int {
	return len(p.rows)
}

// Columns returns the number of columns in this matrix (including the marker
// and constant columns).
func (p *Matrix) Columns() int {
	return p.columns
}

// OutputDims returns the number of output dimensions.
func (p *Matrix) OutputDims() int {
	return p.outputDims
}

// InputDims returns the number of input dimensions.
func (p *Matrix) InputDims() int {
	return p.inputDims
}

// LocalDims returns the number of local (existentially quantified) dimensions.
func (p *Matrix) LocalDims() int {
	return p.localDims
}

// Parameters returns the number of global parameters.
func (p *Matrix) Parameters() int {
	return p.parameters
}

// SetAttributes sets the structural attributes of this matrix, checking they
// are consistent with its column count.
func (p *Matrix) SetAttributes(out, in, local, params int) {
	if out < 0 || in < 0 || local < 0 || params < 0 {
		panic(fmt.Sprintf("negative attribute (%d,%d,%d,%d)", out, in, local, params))
	} else if out+in+local+params+2 != p.columns {
		panic(fmt.Sprintf("attributes (%d,%d,%d,%d) inconsistent with %d columns", out, in, local, params,
			p.columns))
	}
	//
	p.outputDims, p.inputDims, p.localDims, p.parameters = out, in, local, params
}

// OutputColumn returns the column index of the ith output dimension.
func (p *Matrix) OutputColumn(i int) int {
	return 1 + i
}

// InputColumn returns the column index of the ith input dimension.
func (p *Matrix) InputColumn(i int) int {
	return 1 + p.outputDims + i
}

// LocalColumn returns the column index of the ith local dimension.
func (p *Matrix) LocalColumn(i int) int {
	return 1 + p.outputDims + p.inputDims + i
}

// ParamColumn returns the column index of the ith parameter.
func (p *Matrix) ParamColumn(i int) int {
	return 1 + p.outputDims + p.inputDims + p.localDims + i
}

// ConstColumn returns the column index of the constant term.
func (p *Matrix) ConstColumn() int {
	return p.columns - 1
}

// Get returns the entry at a given row and column.  The returned value aliases
// the matrix storage, hence mutating it mutates the matrix.
func (p *Matrix) Get(row, col int) *big.Int {
	p.checkCell(row, col)
	//
	return &p.rows[row][col]
}

// Set assigns an entry at a given row and column.
func (p *Matrix) Set(row, col int, val *big.Int) {
	p.checkCell(row, col)
	p.rows[row][col].Set(val)
}

// SetInt64 assigns an entry at a given row and column from a machine integer.
func (p *Matrix) SetInt64(row, col int, val int64) {
	p.checkCell(row, col)
	p.rows[row][col].SetInt64(val)
}

// Row returns a given row.  The returned slice aliases the matrix storage.
func (p *Matrix) Row(row int) []big.Int {
	p.checkCell(row, 0)
	//
	return p.rows[row]
}

// IsEquality determines whether a given row is an equality.
func (p *Matrix) IsEquality(row int) bool {
	return p.Get(row, 0).Sign() == 0
}

// MarkEquality turns a given row into an equality.
func (p *Matrix) MarkEquality(row int) {
	p.SetInt64(row, 0, 0)
}

// MarkInequality turns a given row into an inequality.
func (p *Matrix) MarkInequality(row int) {
	p.SetInt64(row, 0, 1)
}

// IsZeroRange checks whether all entries of a row within the column range
// [from,to) are zero.
func (p *Matrix) IsZeroRange(row, from, to int) bool {
	r := p.Row(row)
	//
	for j := from; j < to; j++ {
		if r[j].Sign() != 0 {
			return false
		}
	}
	//
	return true
}

// NegateRow negates every coefficient of a given row, except the marker.
func (p *Matrix) NegateRow(row int) {
	r := p.Row(row)
	//
	for j := 1; j < p.columns; j++ {
		r[j].Neg(&r[j])
	}
}

// AppendRow adds a blank equality at the end of this matrix, and returns its
// index.
func (p *Matrix) AppendRow() int {
	p.InsertRows(len(p.rows), 1)
	//
	return len(p.rows) - 1
}

// InsertRow inserts a blank row at a given position, shifting all subsequent
// rows down.
func (p *Matrix) InsertRow(at int) {
	p.InsertRows(at, 1)
}

// InsertRows inserts n blank rows at a given position, shifting all subsequent
// rows down.
func (p *Matrix) InsertRows(at, n int) {
	if at < 0 || at > len(p.rows) || n < 0 {
		panic(fmt.Sprintf("invalid row insertion (%d rows at %d of %d)", n, at, len(p.rows)))
	}
	//
	blanks := make([][]big.Int, n)
	for i := range blanks {
		blanks[i] = make([]big.Int, p.columns)
	}
	//
	rows := make([][]big.Int, 0, len(p.rows)+n)
	rows = append(rows, p.rows[:at]...)
	rows = append(rows, blanks...)
	p.rows = append(rows, p.rows[at:]...)
}

// RemoveRow removes the row at a given position, shifting all subsequent rows
// up.
func (p *Matrix) RemoveRow(at int) {
	p.checkCell(at, 0)
	//
	p.rows = append(p.rows[:at], p.rows[at+1:]...)
}

// InsertColumn inserts a blank column at a given position, shifting all
// subsequent columns right.  Structural attributes are not updated, hence the
// caller is responsible for calling SetAttributes afterwards.
func (p *Matrix) InsertColumn(at int) {
	p.InsertColumns(at, 1)
}

// InsertColumns inserts n blank columns at a given position.  As for
// InsertColumn, structural attributes are not updated.
func (p *Matrix) InsertColumns(at, n int) {
	if at < 0 || at > p.columns || n < 0 {
		panic(fmt.Sprintf("invalid column insertion (%d columns at %d of %d)", n, at, p.columns))
	}
	//
	for i, row := range p.rows {
		nrow := make([]big.Int, p.columns+n)
		//
		for j := 0; j < at; j++ {
			nrow[j].Set(&row[j])
		}
		//
		for j := at; j < p.columns; j++ {
			nrow[j+n].Set(&row[j])
		}
		//
		p.rows[i] = nrow
	}
	//
	p.columns += n
}

// RemoveColumn removes the column at a given position.  As for InsertColumn,
// structural attributes are not updated.
func (p *Matrix) RemoveColumn(at int) {
	if at < 0 || at >= p.columns || p.columns <= 2 {
		panic(fmt.Sprintf("invalid column removal (%d of %d)", at, p.columns))
	}
	//
	for i, row := range p.rows {
		nrow := make([]big.Int, p.columns-1)
		//
		for j := 0; j < at; j++ {
			nrow[j].Set(&row[j])
		}
		//
		for j := at + 1; j < p.columns; j++ {
			nrow[j-1].Set(&row[j])
		}
		//
		p.rows[i] = nrow
	}
	//
	p.columns--
}

// Concat constructs a new matrix holding the rows of this matrix followed by
// the rows of another.  Both matrices must have the same number of columns;
// the result takes the attributes of this matrix.
func (p *Matrix) Concat(other *Matrix) *Matrix {
	if p.columns != other.columns {
		panic(fmt.Sprintf("cannot concatenate matrices with %d and %d columns", p.columns, other.columns))
	}
	//
	m := p.Clone()
	//
	for _, row := range other.rows {
		m.rows = append(m.rows, cloneRow(row))
	}
	//
	return m
}

// Clone returns a deep copy of this matrix.
func (p *Matrix) Clone() *Matrix {
	return p.CloneRows(len(p.rows))
}

// CloneRows returns a deep copy of this matrix, restricted to its first n rows.
func (p *Matrix) CloneRows(n int) *Matrix {
	if n < 0 || n > len(p.rows) {
		panic(fmt.Sprintf("cannot clone %d rows of %d", n, len(p.rows)))
	}
	//
	m := &Matrix{p.kind, p.outputDims, p.inputDims, p.localDims, p.parameters, p.columns, make([][]big.Int, n)}
	//
	for i := 0; i < n; i++ {
		m.rows[i] = cloneRow(p.rows[i])
	}
	//
	return m
}

// Equal determines whether two matrices have identical attributes and
// identical rows (in the same order).
func (p *Matrix) Equal(other *Matrix) bool {
	if p.kind != other.kind || p.columns != other.columns || len(p.rows) != len(other.rows) ||
		p.outputDims != other.outputDims || p.inputDims != other.inputDims ||
		p.localDims != other.localDims || p.parameters != other.parameters {
		return false
	}
	//
	for i := range p.rows {
		for j := range p.rows[i] {
			if p.rows[i][j].Cmp(&other.rows[i][j]) != 0 {
				return false
			}
		}
	}
	//
	return true
}

// IntegrityCheck reports structural problems with this matrix: attributes
// inconsistent with the column count, markers other than 0/1, or attributes
// illegal for the kind of relation.
func (p *Matrix) IntegrityCheck() error {
	if p.outputDims+p.inputDims+p.localDims+p.parameters+2 != p.columns {
		return errors.Errorf("attributes (%d,%d,%d,%d) inconsistent with %d columns", p.outputDims,
			p.inputDims, p.localDims, p.parameters, p.columns)
	}
	//
	for i, row := range p.rows {
		if len(row) != p.columns {
			return errors.Errorf("row %d has %d columns (expected %d)", i, len(row), p.columns)
		} else if row[0].Sign() != 0 && row[0].Cmp(big.NewInt(1)) != 0 {
			return errors.Errorf("row %d has invalid marker %s", i, row[0].String())
		}
	}
	//
	switch p.kind {
	case Context:
		if p.outputDims != 0 || p.inputDims != 0 {
			return errors.New("context with non-zero output or input dimensions")
		}
	case Domain:
		if p.inputDims != 0 {
			return errors.New("domain with non-zero input dimensions")
		}
	case Read, Write, MayWrite:
		if p.outputDims < 1 {
			return errors.New("access relation without array identifier dimension")
		}
	case Undefined, Scattering:
		// nothing more to check
	}
	//
	return nil
}

// MustBeValid panics if this matrix fails its integrity check.
func (p *Matrix) MustBeValid() {
	if err := p.IntegrityCheck(); err != nil {
		panic(fmt.Sprintf("malformed %s relation: %s", p.kind.String(), err.Error()))
	}
}

func (p *Matrix) String() string {
	var builder strings.Builder
	//
	builder.WriteString(fmt.Sprintf("%s %d %d %d %d %d %d\n", p.kind.String(), len(p.rows), p.columns,
		p.outputDims, p.inputDims, p.localDims, p.parameters))
	//
	for _, row := range p.rows {
		for j := range row {
			if j != 0 {
				builder.WriteString(" ")
			}
			//
			builder.WriteString(fmt.Sprintf("%3s", row[j].String()))
		}
		//
		builder.WriteString("\n")
	}
	//
	return builder.String()
}

func (p *Matrix) checkCell(row, col int) {
	if row < 0 || row >= len(p.rows) || col < 0 || col >= p.columns {
		panic(fmt.Sprintf("matrix access (%d,%d) out-of-bounds (%d x %d)", row, col, len(p.rows), p.columns))
	}
}

func cloneRow(row []big.Int) []big.Int {
	nrow := make([]big.Int, len(row))
	//
	for j := range row {
		nrow[j].Set(&row[j])
	}
	//
	return nrow
}
