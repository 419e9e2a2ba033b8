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
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Configure the log level from the verbose flag.
func configureLogging(cmd *cobra.Command) bool {
	verbose := GetFlag(cmd, "verbose")
	//
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	//
	return verbose
}

// analysisFlags maps the command-line flags controlling the analysis onto the
// corresponding options.
var analysisFlags = []struct {
	name  string
	usage string
	field func(*candl.Options) *bool
}{
	{"raw", "compute flow (read-after-write) dependences", func(o *candl.Options) *bool { return &o.RAW }},
	{"war", "compute anti (write-after-read) dependences", func(o *candl.Options) *bool { return &o.WAR }},
	{"waw", "compute output (write-after-write) dependences", func(o *candl.Options) *bool { return &o.WAW }},
	{"rar", "compute input (read-after-read) dependences", func(o *candl.Options) *bool { return &o.RAR }},
	{"commute", "ignore dependences between commutative statements",
		func(o *candl.Options) *bool { return &o.Commute }},
	{"lastwriter", "restrict dependences to the last writer", func(o *candl.Options) *bool { return &o.LastWriter }},
	{"scalpriv", "remove dependences on privatizable scalars",
		func(o *candl.Options) *bool { return &o.ScalarPrivatization }},
	{"renaming", "rename scalars with independent definitions",
		func(o *candl.Options) *bool { return &o.ScalarRenaming }},
	{"expansion", "expand privatizable scalars", func(o *candl.Options) *bool { return &o.ScalarExpansion }},
	{"prune-dups", "remove duplicate dependences", func(o *candl.Options) *bool { return &o.PruneDups }},
}

// Register the analysis flags with a given command.
func addAnalysisFlags(cmd *cobra.Command) {
	defaults := candl.DefaultOptions()
	//
	for _, f := range analysisFlags {
		cmd.Flags().Bool(f.name, *f.field(&defaults), f.usage)
	}
}

// Determine the analysis options for a given command.  These are the defaults,
// overridden by the CANDL_* environment variables, overridden in turn by any
// flags given explicitly.
func getAnalysisOptions(cmd *cobra.Command) candl.Options {
	options := candl.OptionsFromEnv(candl.DefaultOptions())
	//
	for _, f := range analysisFlags {
		if cmd.Flags().Changed(f.name) {
			*f.field(&options) = GetFlag(cmd, f.name)
		}
	}
	//
	options.Verbose = options.Verbose || GetFlag(cmd, "verbose")
	//
	return options
}

// Read a SCoP description, or exit if an error arises.
func readScopFile(filename string) *candl.Scop {
	scop, err := scopfile.ReadFile(filename)
	// Handle error
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return scop
}

// Read a problem description, or exit if an error arises.
func readProblemFile(filename string) *scopfile.Problem {
	problem, err := scopfile.ReadProblem(filename)
	// Handle error
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return problem
}

// Write a report to stdout, or exit if an error arises.
func writeReport(report *scopfile.Report) {
	if err := scopfile.EncodeReport(os.Stdout, report); err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
}
