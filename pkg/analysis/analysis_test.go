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
package analysis

import (
	"errors"
	"slices"
	"testing"

	"github.com/consensys/go-alu/pkg/alu"
	"github.com/consensys/go-alu/pkg/alu/assembler"
	"github.com/consensys/go-alu/pkg/alu/machine"
	"github.com/consensys/go-alu/pkg/solver"
	"github.com/consensys/go-alu/pkg/symbolic"
	"github.com/consensys/go-alu/pkg/test/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Program with two independent relations: d0 - d3 = 2 and d1 - d7 = -3.
const pairs = `inp w
add x w
add x -2
inp w
add y w
add y 3
inp w
inp w
eql x w
eql x 0
add z x
inp w
inp w
inp w
inp w
eql y w
eql y 0
add z y
inp w
inp w
inp w
inp w
inp w
inp w
`

func Test_Analysis_Monad(t *testing.T) {
	result := checkRun(t, util.MonadProgram(util.MONAD_BLOCKS...), DefaultConfig())
	//
	assert.Equal(t, util.MONAD_MAX, result.MaxString())
	assert.Equal(t, util.MONAD_MIN, result.MinString())
	assert.Len(t, result.Relations, 7)
	assert.Len(t, result.Constraints, 7)
}

func Test_Analysis_MonadSAT(t *testing.T) {
	config := DefaultConfig()
	config.SAT = true
	//
	result := checkRun(t, util.MonadProgram(util.MONAD_BLOCKS...), config)
	assert.Equal(t, util.MONAD_MAX, result.MaxString())
	assert.Equal(t, util.MONAD_MIN, result.MinString())
}

func Test_Analysis_Pairs(t *testing.T) {
	result := checkRun(t, pairs, DefaultConfig())
	// Relations are recorded in program order
	require.Len(t, result.Relations, 2)
	assert.Equal(t, solver.Difference(0, 3, -2), withoutIndex(result.Constraints[0]))
	assert.Equal(t, solver.Difference(1, 7, 3), withoutIndex(result.Constraints[1]))
	// Constrained positions take their extreme values, others 9 or 1
	assert.Equal(t, []int64{9, 6, 9, 7, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9}, result.Max)
	assert.Equal(t, []int64{3, 1, 1, 1, 1, 1, 1, 4, 1, 1, 1, 1, 1, 1}, result.Min)
}

func Test_Analysis_Extremality(t *testing.T) {
	program := parse(t, util.MonadProgram(util.MONAD_BLOCKS...))
	result, err := Run(program, DefaultConfig())
	require.NoError(t, err)
	// Increasing any digit of the maximum breaks some relation.
	for i := range result.Max {
		if result.Max[i] < 9 {
			checkRejected(t, program, perturb(result.Max, i, 1))
		}
	}
	// Decreasing any digit of the minimum breaks some relation.
	for i := range result.Min {
		if result.Min[i] > 1 {
			checkRejected(t, program, perturb(result.Min, i, -1))
		}
	}
}

func Test_Analysis_PartialInputs(t *testing.T) {
	config := DefaultConfig()
	// Fix the first three digits as the maximum does
	config.Partial = []int64{9, 9, 3}
	//
	result := checkRun(t, util.MonadProgram(util.MONAD_BLOCKS...), config)
	assert.Equal(t, util.MONAD_MAX, result.MaxString())
	assert.Equal(t, "99391126831911", result.MinString())
}

func Test_Analysis_TooManyPartialInputs(t *testing.T) {
	config := DefaultConfig()
	config.Digits = 2
	config.Partial = []int64{1, 2, 3}
	//
	_, err := Run(parse(t, pairs), config)
	assert.Error(t, err)
}

func Test_Analysis_AccumulatorNotZero(t *testing.T) {
	_, err := Run(parse(t, "inp w\nadd z w\n"), DefaultConfig())
	assert.True(t, errors.Is(err, ErrAccumulatorNotZero))
	// Rejecting every undecided comparison leaves digits on the stack
	config := DefaultConfig()
	config.Hints = []int64{0, 0, 0, 0, 0, 0, 0}
	//
	_, err = Run(parse(t, util.MonadProgram(util.MONAD_BLOCKS...)), config)
	assert.True(t, errors.Is(err, ErrAccumulatorNotZero))
}

func Test_Analysis_HintsExhausted(t *testing.T) {
	config := DefaultConfig()
	config.Hints = nil
	//
	_, err := Run(parse(t, pairs), config)
	assert.True(t, errors.Is(err, symbolic.ErrHintsExhausted))
}

func Test_Analysis_Structural(t *testing.T) {
	var serr *symbolic.StructuralError
	//
	_, err := Run(parse(t, "inp w\ninp x\nmul w x\n"), DefaultConfig())
	assert.True(t, errors.As(err, &serr))
}

func Test_Analysis_VerificationFailure(t *testing.T) {
	var verr *VerificationError
	// Coefficient-wise division loses the digit, so the symbolic pass accepts
	// whilst concrete execution does not.
	config := DefaultConfig()
	config.Digits = 1
	//
	_, err := Run(parse(t, "inp w\nadd z w\nadd z 1\ndiv z 2\n"), config)
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []int64{9}, verr.Inputs)
	assert.Equal(t, int64(5), verr.Accumulator)
	assert.Equal(t, "verification of 9 failed (accumulator is 5)", verr.Error())
}

func Test_Analysis_VerifyInputExhausted(t *testing.T) {
	err := Verify(parse(t, "inp w\ninp w\n"), []int64{1})
	assert.True(t, errors.Is(err, machine.ErrInputExhausted))
}

func Test_Analysis_DigitString(t *testing.T) {
	assert.Equal(t, "", DigitString(nil))
	assert.Equal(t, "1234", DigitString([]int64{1, 2, 3, 4}))
}

// ==================================================================
// Framework
// ==================================================================

func checkRun(t *testing.T, text string, config Config) Result {
	program := parse(t, text)
	result, err := Run(program, config)
	//
	require.NoError(t, err)
	assert.Len(t, result.Max, int(config.Digits))
	assert.Len(t, result.Min, int(config.Digits))
	assert.NoError(t, Verify(program, result.Max))
	assert.NoError(t, Verify(program, result.Min))
	//
	return result
}

func checkRejected(t *testing.T, program alu.Program, inputs []int64) {
	var verr *VerificationError
	//
	err := Verify(program, inputs)
	assert.True(t, errors.As(err, &verr), DigitString(inputs))
}

func perturb(digits []int64, index int, delta int64) []int64 {
	perturbed := slices.Clone(digits)
	perturbed[index] += delta
	//
	return perturbed
}

func withoutIndex(c solver.Constraint) solver.Constraint {
	c.Index = 0
	return c
}

func parse(t *testing.T, text string) alu.Program {
	listing, errs := assembler.ParseString("test", text)
	require.Empty(t, errs)
	//
	return listing.Program
}
