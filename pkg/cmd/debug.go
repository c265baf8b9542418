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

	"github.com/consensys/go-alu/pkg/alu"
	"github.com/consensys/go-alu/pkg/solver"
	"github.com/consensys/go-alu/pkg/symbolic"
	"github.com/spf13/cobra"
)

var debugCmd = &cobra.Command{
	Use:   "debug [flags] program_file",
	Short: "print the outcome of symbolically executing a program.",
	Long: `Symbolically execute a given program, and print the contents of each
	register afterwards along with the relations between digits which the
	program requires to hold.  Each unknown input digit is written #0, #1, etc.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(EXIT_USAGE)
		}
		//
		configureLogging(cmd)
		//
		var (
			config      = getAnalysisConfig(cmd)
			listing     = readProgramFile(args[0])
			interpreter = symbolic.NewInterpreter()
		)
		//
		relations, err := interpreter.Simulate(listing.Program, config.Hints, config.Partial)
		exitOn(err)
		//
		printRegisters(os.Stdout, func(v alu.Variable) string {
			return interpreter.Get(v).String()
		}, interpreter.Accumulator().IsZero(), isTerminal())
		//
		fmt.Println("requirements:")
		//
		for _, r := range relations {
			fmt.Printf("  line %d: %s", lineOf(listing, r.Index), r.String())
			//
			if c, err := solver.Normalise(r); err != nil {
				fmt.Printf(" (%s)\n", err)
			} else {
				fmt.Printf(" [%s]\n", c.String())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)
	addAnalysisFlags(debugCmd)
}
