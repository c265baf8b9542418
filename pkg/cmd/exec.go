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
	"github.com/consensys/go-alu/pkg/alu/machine"
	"github.com/spf13/cobra"
)

var execCmd = &cobra.Command{
	Use:   "exec [flags] program_file digits",
	Short: "execute a program concretely on a given sequence of digits.",
	Long: `Execute a program concretely on a given sequence of decimal digits (one
	input per digit), and print the final register values.  The exit code is
	nonzero if the program does not accept the digits.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(EXIT_USAGE)
		}
		//
		configureLogging(cmd)
		//
		var (
			listing = readProgramFile(args[0])
			inputs  = parseDigits(args[1])
			m       = machine.New()
		)
		//
		if err := m.Execute(listing.Program, inputs); err != nil {
			fmt.Println(err)
			os.Exit(EXIT_ANALYSIS)
		}
		//
		printRegisters(os.Stdout, func(v alu.Variable) string {
			return fmt.Sprintf("%d", m.Get(v))
		}, m.Accumulator() == 0, isTerminal())
		//
		if m.Accumulator() != 0 {
			fmt.Println("rejected")
			os.Exit(EXIT_ANALYSIS)
		}
		//
		fmt.Println("accepted")
	},
}

// Parse a string of decimal digits, exiting if it contains anything else.
func parseDigits(text string) []int64 {
	inputs := make([]int64, 0, len(text))
	//
	for _, c := range text {
		if c < '0' || c > '9' {
			fmt.Printf("invalid digit '%c' in \"%s\"\n", c, text)
			os.Exit(EXIT_USAGE)
		}
		//
		inputs = append(inputs, int64(c-'0'))
	}
	//
	return inputs
}

func init() {
	rootCmd.AddCommand(execCmd)
}
