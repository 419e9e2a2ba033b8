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

	"github.com/consensys/go-candl/pkg/pip"
	"github.com/spf13/cobra"
)

var lexminCmd = &cobra.Command{
	Use:   "lexmin [flags] problem_file",
	Short: "solve a parametric integer programming problem.",
	Long: `Compute the lexicographic minimum (or maximum) of the unknowns of a
	parametric problem, given as a yaml file, and print the resulting quast.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		verbose := configureLogging(cmd)
		problem := readProblemFile(args[0])
		//
		system, context, err := problem.Matrices()
		if err != nil {
			fmt.Printf("%s: %s\n", args[0], err)
			os.Exit(2)
		}
		//
		options := problem.Options()
		options.Maximize = GetFlag(cmd, "max")
		options.Simplify = options.Simplify || GetFlag(cmd, "simplify")
		options.Verbose = verbose
		//
		q := pip.Solve(system, context, problem.BignumColumn(), options)
		//
		if GetFlag(cmd, "regions") {
			nvar := system.Columns() - 2 - problem.Parameters
			//
			for i, region := range pip.ToPolyhedra(q, nvar, problem.Parameters) {
				fmt.Printf("region %d:\n%s\n", i, region.String())
			}
		} else {
			fmt.Print(q.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(lexminCmd)
	lexminCmd.Flags().Bool("max", false, "compute the lexicographic maximum")
	lexminCmd.Flags().Bool("simplify", false, "simplify the resulting quast")
	lexminCmd.Flags().Bool("regions", false, "print the solution as a union of polyhedra")
}
