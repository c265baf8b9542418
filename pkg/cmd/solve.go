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
	"bytes"
	"fmt"
	"os"
	"runtime"

	"github.com/consensys/go-alu/pkg/analysis"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var solveCmd = &cobra.Command{
	Use:   "solve [flags] program_file...",
	Short: "determine the largest and smallest accepted inputs of a program.",
	Long: `Determine the largest and smallest sequences of digits which a given
	program accepts (i.e. for which it leaves zero in the accumulator).
	Each program is analysed symbolically in a single pass, and both results
	are confirmed by concrete execution.  When several programs are given,
	they are analysed concurrently.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) < 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(EXIT_USAGE)
		}
		//
		configureLogging(cmd)
		//
		var (
			config    = getAnalysisConfig(cmd)
			relations = GetFlag(cmd, "relations")
			jobs      = GetUint(cmd, "jobs")
			reports   = make([]bytes.Buffer, len(args))
			group     errgroup.Group
		)
		//
		group.SetLimit(int(max(1, jobs)))
		//
		for i, filename := range args {
			group.Go(func() error {
				if len(args) > 1 {
					fmt.Fprintf(&reports[i], "%s:\n", filename)
				}
				//
				return solveFile(&reports[i], filename, config, relations)
			})
		}
		// Reports are printed in order, regardless of completion order.
		err := group.Wait()
		//
		for i := range reports {
			fmt.Print(reports[i].String())
		}
		//
		exitOn(err)
	},
}

func solveFile(w *bytes.Buffer, filename string, config analysis.Config, relations bool) error {
	listing, err := loadProgram(w, filename)
	if err != nil {
		return err
	}
	//
	result, err := analysis.Run(listing.Program, config)
	//
	if relations {
		for i, r := range result.Relations {
			fmt.Fprintf(w, "relation (line %d): %s", lineOf(listing, r.Index), r.String())
			//
			if i < len(result.Constraints) {
				fmt.Fprintf(w, " [%s]", result.Constraints[i].String())
			}
			//
			fmt.Fprintln(w)
		}
	}
	//
	if err != nil {
		fmt.Fprintf(w, "%s: %s\n", filename, err)
		return &exitError{EXIT_ANALYSIS, err}
	}
	//
	fmt.Fprintf(w, "max: %s\n", result.MaxString())
	fmt.Fprintf(w, "min: %s\n", result.MinString())
	//
	return nil
}

func getAnalysisConfig(cmd *cobra.Command) analysis.Config {
	config := analysis.DefaultConfig()
	config.Hints = GetInt64Slice(cmd, "hints")
	config.Partial = GetInt64Slice(cmd, "partial")
	config.Digits = GetUint(cmd, "digits")
	//
	if cmd.Flags().Lookup("sat") != nil {
		config.SAT = GetFlag(cmd, "sat")
	}
	//
	return config
}

func addAnalysisFlags(cmd *cobra.Command) {
	config := analysis.DefaultConfig()
	cmd.Flags().Int64Slice("hints", config.Hints, "outcomes for undecided equality comparisons (in program order)")
	cmd.Flags().Int64Slice("partial", nil, "known values of the first inputs")
	cmd.Flags().Uint("digits", config.Digits, "number of inputs read by the program")
}

func init() {
	rootCmd.AddCommand(solveCmd)
	addAnalysisFlags(solveCmd)
	solveCmd.Flags().Bool("sat", false, "use the SAT solver rather than the pairwise solver")
	solveCmd.Flags().Bool("relations", false, "print the relations recorded during analysis")
	solveCmd.Flags().Uint("jobs", uint(runtime.NumCPU()), "maximum number of programs analysed concurrently")
}
