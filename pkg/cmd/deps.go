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

	"github.com/consensys/go-candl/pkg/candl"
	"github.com/consensys/go-candl/pkg/scopfile"
	"github.com/consensys/go-candl/pkg/util"
	"github.com/consensys/go-candl/pkg/util/termio"
	"github.com/spf13/cobra"
)

var depsCmd = &cobra.Command{
	Use:   "deps [flags] scop_file...",
	Short: "compute the data dependences of one or more SCoPs.",
	Long: `Compute the data dependences between the statements of one or more
	SCoPs, given as yaml files.  The kinds of dependence computed, and the
	passes applied to them, can also be set through CANDL_* environment
	variables.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		options := getAnalysisOptions(cmd)
		asYaml := GetFlag(cmd, "yaml")
		ddv := GetFlag(cmd, "ddv")
		domains := GetFlag(cmd, "domains")
		width := GetUint(cmd, "width")
		//
		if width == 0 {
			width = termio.Width(os.Stdout)
		}
		//
		for _, filename := range args {
			scop := readScopFile(filename)
			stats := util.NewPerfStats()
			graph := candl.ComputeDependences(scop, options)
			//
			stats.Log(fmt.Sprintf("Dependence analysis of %s", filename))
			//
			if asYaml {
				writeReport(scopfile.NewReport(graph, nil, domains, ddv))
			} else {
				if len(args) > 1 {
					fmt.Printf("%s:\n", filename)
				}
				//
				printDependences(graph, ddv, width)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
	addAnalysisFlags(depsCmd)
	depsCmd.Flags().Bool("yaml", false, "report dependences as yaml")
	depsCmd.Flags().Bool("ddv", false, "include dependence distance vectors")
	depsCmd.Flags().Bool("domains", false, "include dependence domains in yaml reports")
	depsCmd.Flags().Uint("width", 0, "maximum width of printed tables (0 uses the terminal width)")
}
