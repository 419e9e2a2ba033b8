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
	"github.com/spf13/cobra"
)

var violationCmd = &cobra.Command{
	Use:   "violation [flags] scop_file transformed_file",
	Short: "check a transformed schedule against the dependences of a SCoP.",
	Long: `Check whether the scatterings of a transformed SCoP respect the data
	dependences of the original.  Statements are matched by position.  This
	exits with status 1 when any dependence is violated.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		configureLogging(cmd)
		//
		options := getAnalysisOptions(cmd)
		options.FullCheck = options.FullCheck || GetFlag(cmd, "fullcheck")
		original := readScopFile(args[0])
		transformed := readScopFile(args[1])
		//
		if len(original.Statements) != len(transformed.Statements) {
			fmt.Printf("%s has %d statements, but %s has %d\n", args[0], len(original.Statements), args[1],
				len(transformed.Statements))
			os.Exit(2)
		}
		//
		stats := util.NewPerfStats()
		violations, graph := candl.ComputeViolations(original, transformed, options)
		stats.Log("Violation analysis")
		//
		if GetFlag(cmd, "yaml") {
			writeReport(scopfile.NewReport(graph, violations, GetFlag(cmd, "domains"), false))
		} else {
			printViolations(violations)
		}
		//
		if len(violations) > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(violationCmd)
	addAnalysisFlags(violationCmd)
	violationCmd.Flags().Bool("fullcheck", false, "report every violation, rather than only the first")
	violationCmd.Flags().Bool("yaml", false, "report dependences and violations as yaml")
	violationCmd.Flags().Bool("domains", false, "include dependence domains in yaml reports")
}
