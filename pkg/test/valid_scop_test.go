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
package test

import (
	"testing"

	"github.com/consensys/go-candl/pkg/candl"
)

// ===================================================================
// Default Analysis
// ===================================================================

func Test_Shift_01(t *testing.T) {
	Check(t, "shift", "default", candl.DefaultOptions())
}

func Test_Private_01(t *testing.T) {
	Check(t, "private", "default", candl.DefaultOptions())
}

func Test_Stencil_01(t *testing.T) {
	Check(t, "stencil", "default", candl.DefaultOptions())
}

func Test_Sequence_01(t *testing.T) {
	Check(t, "sequence", "default", candl.DefaultOptions())
}

func Test_Renaming_01(t *testing.T) {
	Check(t, "renaming", "default", candl.DefaultOptions())
}

// ===================================================================
// Scalar Analysis
// ===================================================================

func Test_Private_02(t *testing.T) {
	options := candl.DefaultOptions()
	options.ScalarPrivatization = true
	//
	Check(t, "private", "scalpriv", options)
}

func Test_Private_03(t *testing.T) {
	options := candl.DefaultOptions()
	options.ScalarExpansion = true
	//
	Check(t, "private", "expansion", options)
}

func Test_Renaming_02(t *testing.T) {
	options := candl.DefaultOptions()
	options.ScalarRenaming = true
	//
	Check(t, "renaming", "renaming", options)
}

// ===================================================================
// Pruning
// ===================================================================

func Test_Stencil_02(t *testing.T) {
	options := candl.DefaultOptions()
	options.PruneDups = true
	//
	Check(t, "stencil", "default", options)
}

func Test_Sequence_02(t *testing.T) {
	options := candl.DefaultOptions()
	options.LastWriter = true
	// Each value has a single writer already
	Check(t, "sequence", "default", options)
}
