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
	"testing"

	"github.com/consensys/go-candl/pkg/util/assert"
	"github.com/spf13/cobra"
)

func Test_AnalysisOptions_01(t *testing.T) {
	cmd := analysisCommand(t)
	options := getAnalysisOptions(cmd)
	//
	assert.True(t, options.RAW && options.WAR && options.WAW)
	assert.False(t, options.RAR || options.LastWriter || options.Verbose)
}

func Test_AnalysisOptions_02(t *testing.T) {
	t.Setenv("CANDL_RAR", "true")
	t.Setenv("CANDL_WAR", "false")
	//
	cmd := analysisCommand(t)
	options := getAnalysisOptions(cmd)
	//
	assert.True(t, options.RAR)
	assert.False(t, options.WAR)
}

func Test_AnalysisOptions_03(t *testing.T) {
	t.Setenv("CANDL_RAR", "true")
	t.Setenv("CANDL_LASTWRITER", "false")
	// Explicit flags take precedence over the environment.
	cmd := analysisCommand(t, "--rar=false", "--lastwriter", "-v")
	options := getAnalysisOptions(cmd)
	//
	assert.False(t, options.RAR)
	assert.True(t, options.LastWriter)
	assert.True(t, options.Verbose)
}

func analysisCommand(t *testing.T, args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().BoolP("verbose", "v", false, "")
	addAnalysisFlags(cmd)
	//
	assert.Nil(t, cmd.ParseFlags(args))
	//
	return cmd
}
