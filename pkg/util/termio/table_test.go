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
	"strings"
	"testing"

	"github.com/consensys/go-candl/pkg/util/assert"
)

func Test_Table_01(t *testing.T) {
	var (
		tp  = NewTablePrinter(2, 2)
		out strings.Builder
	)
	//
	tp.SetRow(0, "a", "bb")
	tp.SetRow(1, "ccc", "d")
	tp.Print(&out)
	//
	assert.Equal(t, " a   | bb |\n ccc | d  |\n", out.String())
}

func Test_Table_02(t *testing.T) {
	var (
		tp  = NewTablePrinter(2, 1)
		out strings.Builder
	)
	//
	tp.SetRow(0, "a", "abcdefghij")
	tp.FitWidth(12)
	tp.Print(&out)
	// Last column shrunk to four characters
	assert.Equal(t, " a | ab.. |\n", out.String())
}

func Test_Table_03(t *testing.T) {
	var (
		tp  = NewTablePrinter(1, 1)
		out strings.Builder
	)
	//
	tp.Set(0, 0, "x")
	tp.SetEscape(0, 0, NewAnsiEscape().FgColour(TERM_RED))
	tp.Print(&out)
	assert.Equal(t, " \033[31mx\033[0m |\n", out.String())
	//
	out.Reset()
	tp.AnsiEscapes(false)
	tp.Print(&out)
	assert.Equal(t, " x |\n", out.String())
}

func Test_Table_04(t *testing.T) {
	tp := NewTablePrinter(2, 1)
	//
	assert.Panics(t, func() { tp.SetRow(0, "a") })
}

func Test_Escape_01(t *testing.T) {
	assert.Equal(t, "", NewAnsiEscape().Build())
	assert.Equal(t, "\033[1;32;44m", BoldAnsiEscape().FgColour(TERM_GREEN).BgColour(TERM_BLUE).Build())
	assert.Equal(t, "text", NewAnsiEscape().Wrap("text"))
}
