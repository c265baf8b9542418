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
package test

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/consensys/go-alu/pkg/alu"
	"github.com/consensys/go-alu/pkg/alu/assembler"
	"github.com/consensys/go-alu/pkg/analysis"
	"github.com/consensys/go-alu/pkg/test/util"
	"github.com/consensys/go-alu/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the program files (alu) and the corresponding inputs (accepts/rejects)
// are found.
const TestDir = "../../testdata"

// Check that a given program is solved as expected, and that all inputs which
// we expect to be accepted are accepted, and all inputs we expect to be
// rejected are rejected.  The expected solution is given by a ";;solution"
// attribute at the beginning of the program file.
func Check(t *testing.T, test string, sat bool) {
	var (
		filename = fmt.Sprintf("%s/%s.alu", TestDir, test)
		srcfile  = readSourceFile(t, filename)
		config   = analysis.DefaultConfig()
	)
	// Enable testing each program in parallel
	t.Parallel()
	//
	listing, errs := assembler.Parse(srcfile)
	if len(errs) > 0 {
		t.Fatalf("Error %s should have compiled: %s", filename, errs[0].Error())
	}
	//
	solutions, attrErrs := util.ExtractAttributes(srcfile, util.ExtractSolution)
	if len(attrErrs) > 0 {
		t.Fatal(errors.Join(attrErrs...))
	} else if len(solutions) != 1 {
		t.Fatalf("Error %s requires exactly one solution", filename)
	}
	//
	config.SAT = sat
	//
	result, err := analysis.Run(listing.Program, config)
	if err != nil {
		t.Fatalf("Error %s failed analysis: %s", filename, err)
	} else if result.MaxString() != solutions[0][0] {
		t.Errorf("Error %s maximum is %s, expected %s", filename, result.MaxString(), solutions[0][0])
	} else if result.MinString() != solutions[0][1] {
		t.Errorf("Error %s minimum is %s, expected %s", filename, result.MinString(), solutions[0][1])
	}
	// Record how many inputs checked
	nInputs := 0
	//
	for _, cfg := range INPUTFILE_EXTENSIONS {
		inputFilename := fmt.Sprintf("%s/%s.%s", TestDir, test, cfg.extension)
		inputs := ReadInputsFile(t, inputFilename)
		checkInputs(t, inputFilename, cfg.expected, inputs, listing.Program)
		//
		nInputs += len(inputs)
	}
	// Sanity check at least one input found.
	if nInputs == 0 {
		t.Fatalf("missing any inputs for %s", test)
	}
}

func checkInputs(t *testing.T, filename string, expected bool, inputs [][]int64, program alu.Program) {
	for i, input := range inputs {
		if input == nil {
			continue
		}
		//
		err := analysis.Verify(program, input)
		accepted := err == nil
		//
		if !accepted && expected {
			t.Errorf("Input rejected incorrectly (%s, line %d): %s", filename, i+1, err)
		} else if accepted && !expected {
			t.Errorf("Input accepted incorrectly (%s, line %d)", filename, i+1)
		}
	}
}

// CheckInvalid checks that a given program fails to parse, producing exactly
// the errors described by its ";;error" attributes.
func CheckInvalid(t *testing.T, test string) {
	var (
		filename = fmt.Sprintf("%s/%s.alu", TestDir, test)
		srcfile  = readSourceFile(t, filename)
	)
	// Enable testing each program in parallel
	t.Parallel()
	//
	_, actual := assembler.Parse(srcfile)
	//
	expected, errs := util.ExtractAttributes(srcfile, util.ExtractSyntaxError)
	if len(errs) > 0 {
		t.Fatal(errors.Join(errs...))
	}
	//
	checkExpectedErrors(t, srcfile, actual, expected)
}

func checkExpectedErrors(t *testing.T, srcfile *source.File, actual, expected []source.SyntaxError) {
	if len(actual) == 0 {
		t.Fatalf("Error %s should not have compiled", srcfile.Filename())
	}
	//
	var (
		failed = false
		msg    = fmt.Sprintf("Error %s\n", srcfile.Filename())
	)
	//
	for i := 0; i < max(len(actual), len(expected)); i++ {
		if i < len(actual) && i < len(expected) {
			if expected[i].Message() == actual[i].Message() && expected[i].Span() == actual[i].Span() {
				continue
			}
		}
		//
		failed = true
		//
		if i < len(actual) {
			msg = fmt.Sprintf("%s unexpected error %s\n", msg, util.ErrorToString(actual[i]))
		}
		//
		if i < len(expected) {
			msg = fmt.Sprintf("%s   expected error %s\n", msg, util.ErrorToString(expected[i]))
		}
	}
	//
	if failed {
		t.Fatal(msg)
	}
}

// InputConfig provides a simple mechanism for searching for input files.
type InputConfig struct {
	extension string
	expected  bool
}

// INPUTFILE_EXTENSIONS identifies the possible file extensions used for
// different test inputs.
var INPUTFILE_EXTENSIONS = []InputConfig{
	// should all pass
	{"accepts", true},
	// should all fail
	{"rejects", false},
}

// ReadInputsFile reads a file of digit sequences, one per line.  Blank lines
// and lines starting with ";;" are returned as nil.  A missing file is treated
// as empty.
func ReadInputsFile(t *testing.T, filename string) [][]int64 {
	bytes, err := os.ReadFile(filename)
	//
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		t.Fatal(err)
	}
	//
	lines := strings.Split(strings.TrimRight(string(bytes), "\n"), "\n")
	inputs := make([][]int64, len(lines))
	//
	for i, line := range lines {
		if line != "" && !strings.HasPrefix(line, ";;") {
			inputs[i] = util.Digits(strings.TrimSpace(line))
		}
	}
	//
	return inputs
}

func readSourceFile(t *testing.T, filename string) *source.File {
	srcfile, err := source.ReadFile(filename)
	// Check test file read ok
	if err != nil {
		t.Fatal(err)
	}
	//
	return srcfile
}
