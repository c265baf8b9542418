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
	"errors"
	"testing"

	"github.com/consensys/go-alu/pkg/alu"
	"github.com/consensys/go-alu/pkg/alu/assembler"
	"github.com/consensys/go-alu/pkg/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Cmd_PrintSyntaxError(t *testing.T) {
	var buf bytes.Buffer
	//
	_, errs := assembler.ParseString("test.alu", "inp w\nadd q 1\n")
	require.Len(t, errs, 1)
	//
	printSyntaxError(&buf, &errs[0], false)
	assert.Equal(t, "test.alu:2: unknown register \"q\"\nadd q 1\n    ^\n", buf.String())
}

func Test_Cmd_PrintSyntaxErrorColour(t *testing.T) {
	var buf bytes.Buffer
	//
	_, errs := assembler.ParseString("test.alu", "jmp x 1\n")
	require.Len(t, errs, 1)
	//
	printSyntaxError(&buf, &errs[0], true)
	assert.Equal(t, "test.alu:1: unknown instruction \"jmp\"\n\033[31mjmp\033[0m x 1\n^^^\n", buf.String())
}

func Test_Cmd_SolveFile(t *testing.T) {
	var buf bytes.Buffer
	//
	err := solveFile(&buf, "../../testdata/alu/pairs.alu", analysis.DefaultConfig(), true)
	require.NoError(t, err)
	assert.Equal(t, "relation (line 11): #0 + -2 == #3 + 0 [#3 == #0 + -2]\n"+
		"relation (line 18): #1 + 3 == #7 + 0 [#7 == #1 + 3]\n"+
		"max: 96979999999999\nmin: 31111114111111\n", buf.String())
}

func Test_Cmd_SolveFileMissing(t *testing.T) {
	var (
		buf  bytes.Buffer
		eerr *exitError
	)
	//
	err := solveFile(&buf, "../../testdata/alu/missing.alu", analysis.DefaultConfig(), false)
	require.True(t, errors.As(err, &eerr))
	assert.Equal(t, EXIT_USAGE, eerr.code)
}

func Test_Cmd_SolveFileSyntaxError(t *testing.T) {
	var (
		buf  bytes.Buffer
		eerr *exitError
	)
	//
	err := solveFile(&buf, "../../testdata/alu/invalid/unknown_register.alu", analysis.DefaultConfig(), false)
	require.True(t, errors.As(err, &eerr))
	assert.Equal(t, EXIT_SYNTAX, eerr.code)
	assert.Contains(t, buf.String(), "unknown register \"q\"")
}

func Test_Cmd_PrintRegisters(t *testing.T) {
	var (
		buf    bytes.Buffer
		values = []string{"7", "0", "0", "12"}
	)
	//
	printRegisters(&buf, func(v alu.Variable) string { return values[v] }, true, false)
	assert.Equal(t, "x | 7 \ny | 0 \nz | 0 \nw | 12\n", buf.String())
	// Accumulator highlighted in red when rejected
	buf.Reset()
	printRegisters(&buf, func(v alu.Variable) string { return values[v] }, false, true)
	assert.Contains(t, buf.String(), "z | \033[31m0 \033[0m\n")
}
