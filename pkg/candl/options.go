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
package candl

import (
	"github.com/xyproto/env/v2"
)

// Options determines which dependences are computed, and which of the
// optional passes are run over the dependence graph.
type Options struct {
	// RAW computes flow dependences (read-after-write).
	RAW bool
	// WAR computes anti dependences (write-after-read).
	WAR bool
	// WAW computes output dependences (write-after-write).
	WAW bool
	// RAR computes input dependences (read-after-read).
	RAR bool
	// Commute skips statement pairs which are declared as commutative.
	Commute bool
	// ScalarRenaming renames scalars whose definitions partition their uses,
	// and recomputes the graph when anything was renamed.
	ScalarRenaming bool
	// ScalarExpansion turns privatizable scalars into arrays indexed by the
	// privatized loop.
	ScalarExpansion bool
	// ScalarPrivatization removes loop-carried dependences on scalars which
	// are privatizable for that loop.
	ScalarPrivatization bool
	// LastWriter restricts RAW, WAW and RAR dependences to the last source
	// instance.
	LastWriter bool
	// PruneDups removes dependences which duplicate an earlier one.
	PruneDups bool
	// FullCheck reports every violation, rather than stopping at the first.
	FullCheck bool
	// Verbose enables debug logging of each pass.
	Verbose bool
}

// DefaultOptions returns the options used when nothing is specified: flow,
// anti and output dependences, with no optional passes.
func DefaultOptions() Options {
	return Options{RAW: true, WAR: true, WAW: true}
}

// OptionsFromEnv overrides a given set of options with any of the CANDL_*
// environment variables which are set.
func OptionsFromEnv(base Options) Options {
	var overrides = []struct {
		name  string
		field *bool
	}{
		{"CANDL_RAW", &base.RAW},
		{"CANDL_WAR", &base.WAR},
		{"CANDL_WAW", &base.WAW},
		{"CANDL_RAR", &base.RAR},
		{"CANDL_COMMUTE", &base.Commute},
		{"CANDL_LASTWRITER", &base.LastWriter},
		{"CANDL_SCALPRIV", &base.ScalarPrivatization},
		{"CANDL_RENAMING", &base.ScalarRenaming},
		{"CANDL_EXPANSION", &base.ScalarExpansion},
		{"CANDL_PRUNE_DUPS", &base.PruneDups},
		{"CANDL_FULLCHECK", &base.FullCheck},
		{"CANDL_VERBOSE", &base.Verbose},
	}
	//
	for _, o := range overrides {
		if env.Has(o.name) {
			*o.field = env.Bool(o.name)
		}
	}
	//
	return base
}
