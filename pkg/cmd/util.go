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
	"io"
	"os"
	"strings"

	"github.com/consensys/go-alu/pkg/alu"
	"github.com/consensys/go-alu/pkg/alu/assembler"
	"github.com/consensys/go-alu/pkg/util/source"
	"github.com/consensys/go-alu/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Exit codes
const (
	EXIT_USAGE    = 2
	EXIT_SYNTAX   = 3
	EXIT_ANALYSIS = 4
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	exitOnFlagError(err)
	//
	return r
}

// GetUint gets an expected unsigned integer flag, or exits if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	exitOnFlagError(err)
	//
	return r
}

// GetInt64Slice gets an expected integer list flag, or exits if an error
// arises.
func GetInt64Slice(cmd *cobra.Command, flag string) []int64 {
	r, err := cmd.Flags().GetInt64Slice(flag)
	exitOnFlagError(err)
	//
	return r
}

func exitOnFlagError(err error) {
	if err != nil {
		fmt.Println(err)
		os.Exit(EXIT_USAGE)
	}
}

// Configure log level
func configureLogging(cmd *cobra.Command) {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
}

// exitError associates an error with the exit code it should produce.
type exitError struct {
	code int
	err  error
}

func (p *exitError) Error() string {
	return p.err.Error()
}

// Read and parse a program file.  Syntax errors are written to the given
// writer.
func loadProgram(w io.Writer, filename string) (assembler.Listing, error) {
	srcfile, err := source.ReadFile(filename)
	if err != nil {
		return assembler.Listing{}, &exitError{EXIT_USAGE, err}
	}
	//
	listing, errs := assembler.Parse(srcfile)
	if len(errs) > 0 {
		for _, e := range errs {
			printSyntaxError(w, &e, isTerminal())
		}
		//
		return listing, &exitError{EXIT_SYNTAX, &errs[0]}
	}
	//
	log.Debugf("parsed %d instruction(s) from %s", listing.Program.Len(), filename)
	//
	return listing, nil
}

// Read and parse a program file, exiting if this fails.
func readProgramFile(filename string) assembler.Listing {
	listing, err := loadProgram(os.Stdout, filename)
	exitOn(err)
	//
	return listing
}

// Print an error (when one exists) and exit with the appropriate code.
func exitOn(err error) {
	if err == nil {
		return
	} else if e, ok := err.(*exitError); ok {
		if e.code != EXIT_SYNTAX {
			// Syntax errors are reported as they arise
			fmt.Println(e.err)
		}
		//
		os.Exit(e.code)
	}
	//
	fmt.Println(err)
	os.Exit(EXIT_ANALYSIS)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(w io.Writer, err *source.SyntaxError, colour bool) {
	var (
		span   = err.Span()
		line   = err.FirstEnclosingLine()
		offset = span.Start() - line.Start()
		// Don't highlight beyond the enclosing line
		length = max(1, min(line.Length()-offset, span.Length()))
		text   = line.String()
	)
	// Print error + line number
	fmt.Fprintf(w, "%s:%d: %s\n", err.SourceFile().Filename(), line.Number(), err.Message())
	//
	if colour && offset+length <= len([]rune(text)) {
		runes := []rune(text)
		highlight := termio.NewAnsiEscape().FgColour(termio.TERM_RED).Wrap(string(runes[offset : offset+length]))
		fmt.Fprintf(w, "%s%s%s\n", string(runes[:offset]), highlight, string(runes[offset+length:]))
	} else {
		fmt.Fprintln(w, text)
	}
	// Print indent (todo: account for tabs)
	fmt.Fprint(w, strings.Repeat(" ", offset))
	// Print highlight
	fmt.Fprintln(w, strings.Repeat("^", length))
}

// Determine the line on which a given instruction was written.
func lineOf(listing assembler.Listing, index uint) int {
	var (
		srcfile = listing.SourceMap.Source()
		line    = srcfile.FindFirstEnclosingLine(listing.SourceMap.Get(index))
	)
	//
	return line.Number()
}

// Print the contents of every register as a table, highlighting the
// accumulator according to whether or not the program accepts.
func printRegisters(w io.Writer, value func(alu.Variable) string, accepted bool, colour bool) {
	var (
		table  = termio.NewTablePrinter(2, alu.NUM_VARIABLES)
		escape = termio.NewAnsiEscape().FgColour(termio.TERM_RED)
	)
	//
	if accepted {
		escape = termio.NewAnsiEscape().FgColour(termio.TERM_GREEN)
	}
	//
	for v := range alu.Variable(alu.NUM_VARIABLES) {
		table.SetRow(uint(v), v.String(), value(v))
	}
	//
	table.SetEscape(1, uint(alu.ACCUMULATOR), escape)
	table.AnsiEscapes(colour)
	table.Print(w)
}
