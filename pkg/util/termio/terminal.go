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
	"os"

	"golang.org/x/term"
)

// DEFAULT_WIDTH is assumed for output which is not a terminal.
const DEFAULT_WIDTH = uint(120)

// IsTerminal determines whether a given file is attached to a terminal.  ANSI
// escapes should only be written to terminals.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Width returns the number of columns of the terminal attached to a given
// file, or DEFAULT_WIDTH if there is none.
func Width(f *os.File) uint {
	if !IsTerminal(f) {
		return DEFAULT_WIDTH
	}
	//
	w, _, err := term.GetSize(int(f.Fd()))
	//
	if err != nil || w <= 0 {
		return DEFAULT_WIDTH
	}
	//
	return uint(w)
}
