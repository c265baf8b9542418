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
package solver

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/consensys/go-alu/pkg/alu/assembler"
	"github.com/consensys/go-alu/pkg/symbolic"
	"github.com/consensys/go-alu/pkg/test/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================================================================
// Normalisation
// ==================================================================

func Test_Normalise_Difference(t *testing.T) {
	// #0 - 2 == #3
	c := checkNormalise(t, symbolic.NewAffine(-2, 1), symbolic.FromDigit(3))
	assert.Equal(t, Difference(0, 3, -2), c)
	assert.Equal(t, "#3 == #0 + -2", c.String())
}

func Test_Normalise_DifferenceSwapped(t *testing.T) {
	// #5 + 6 == #2
	c := checkNormalise(t, symbolic.NewAffine(6, 0, 0, 0, 0, 0, 1), symbolic.FromDigit(2))
	assert.Equal(t, Constraint{DIFFERENCE, 2, 5, -6, 0}, c)
}

func Test_Normalise_Negated(t *testing.T) {
	// -#1 + 10 == -#4 + 3
	c := checkNormalise(t, symbolic.NewAffine(10, 0, -1), symbolic.NewAffine(3, 0, 0, 0, 0, -1))
	assert.Equal(t, Difference(1, 4, -7), c)
}

func Test_Normalise_Sum(t *testing.T) {
	// -#0 + 12 == #1
	c := checkNormalise(t, symbolic.NewAffine(12, -1), symbolic.FromDigit(1))
	assert.Equal(t, Sum(0, 1, 12), c)
	assert.Equal(t, "#0 + #1 == 12", c.String())
}

func Test_Normalise_Fixed(t *testing.T) {
	// 7 == #2 + 2
	c := checkNormalise(t, symbolic.Constant(7), symbolic.NewAffine(2, 0, 0, 1))
	assert.Equal(t, Fixed(2, 5), c)
	// 7 == -#2 + 10
	c = checkNormalise(t, symbolic.Constant(7), symbolic.NewAffine(10, 0, 0, -1))
	assert.Equal(t, Fixed(2, 3), c)
}

func Test_Normalise_Invalid(t *testing.T) {
	invalid := [][2]symbolic.Affine{
		// Constant right-hand side
		{symbolic.FromDigit(0), symbolic.Constant(3)},
		// Two digits on the left
		{symbolic.NewAffine(0, 1, 1), symbolic.FromDigit(2)},
		// Two digits on the right
		{symbolic.FromDigit(0), symbolic.NewAffine(0, 0, 1, 1)},
		// Non-unit coefficients
		{symbolic.NewAffine(0, 2), symbolic.FromDigit(1)},
		{symbolic.FromDigit(0), symbolic.NewAffine(0, 0, 26)},
		// Same digit on both sides
		{symbolic.NewAffine(1, 0, 1), symbolic.FromDigit(1)},
	}
	//
	for _, pq := range invalid {
		var serr *StructuralError
		//
		_, err := Normalise(symbolic.Relation{Index: 7, P: pq[0], Q: pq[1]})
		require.True(t, errors.As(err, &serr), "%s == %s", pq[0], pq[1])
		assert.Equal(t, uint(7), serr.Index)
	}
}

// ==================================================================
// Solving
// ==================================================================

func Test_Solve_Scenario(t *testing.T) {
	// d0 - d3 = 2 and d1 - d7 = -3
	constraints := []Constraint{Difference(0, 3, -2), Difference(1, 7, 3)}
	largest, smallest := checkSolve(t, constraints, 14)
	//
	assert.Equal(t, []int64{9, 6, 9, 7, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9}, largest)
	assert.Equal(t, []int64{3, 1, 1, 1, 1, 1, 1, 4, 1, 1, 1, 1, 1, 1}, smallest)
}

func Test_Solve_Unconstrained(t *testing.T) {
	largest, smallest := checkSolve(t, nil, 3)
	//
	assert.Equal(t, []int64{9, 9, 9}, largest)
	assert.Equal(t, []int64{1, 1, 1}, smallest)
}

func Test_Solve_Fixed(t *testing.T) {
	largest, smallest := checkSolve(t, []Constraint{Fixed(1, 4)}, 3)
	//
	assert.Equal(t, []int64{9, 4, 9}, largest)
	assert.Equal(t, []int64{1, 4, 1}, smallest)
}

func Test_Solve_Sum(t *testing.T) {
	largest, smallest := checkSolve(t, []Constraint{Sum(0, 2, 12)}, 3)
	//
	assert.Equal(t, []int64{9, 9, 3}, largest)
	assert.Equal(t, []int64{3, 1, 9}, smallest)
}

func Test_Solve_Unsatisfiable(t *testing.T) {
	for _, c := range []Constraint{Difference(0, 1, 9), Sum(0, 1, 1), Sum(0, 1, 19), Fixed(0, 0), Fixed(0, 10)} {
		assert.False(t, c.Satisfiable(), c.String())
		//
		_, _, err := Solve([]Constraint{c}, 2)
		assert.True(t, errors.Is(err, ErrUnsatisfiable), c.String())
		//
		_, _, err = SolveSAT([]Constraint{c}, 2)
		assert.True(t, errors.Is(err, ErrUnsatisfiable), c.String())
	}
}

func Test_Solve_Overlapping(t *testing.T) {
	var serr *StructuralError
	//
	_, _, err := Solve([]Constraint{Difference(0, 1, 1), Difference(1, 2, 1)}, 3)
	assert.True(t, errors.As(err, &serr))
	// The SAT solver handles chains
	largest, smallest, err := SolveSAT([]Constraint{Difference(0, 1, 1), Difference(1, 2, 1)}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8, 9}, largest)
	assert.Equal(t, []int64{1, 2, 3}, smallest)
}

func Test_Solve_OutOfBounds(t *testing.T) {
	var serr *StructuralError
	//
	_, _, err := Solve([]Constraint{Difference(0, 4, 1)}, 4)
	assert.True(t, errors.As(err, &serr))
	//
	_, _, err = SolveSAT([]Constraint{Difference(0, 4, 1)}, 4)
	assert.True(t, errors.As(err, &serr))
}

func Test_Solve_Monad(t *testing.T) {
	listing, errs := assembler.ParseString("monad", util.MonadProgram(util.MONAD_BLOCKS...))
	require.Empty(t, errs)
	//
	relations, err := symbolic.NewInterpreter().Simulate(listing.Program, []int64{1, 1, 1, 1, 1, 1, 1}, nil)
	require.NoError(t, err)
	//
	largest, smallest, err := SolveRelations(relations, 14)
	require.NoError(t, err)
	assert.Equal(t, util.Digits(util.MONAD_MAX), largest)
	assert.Equal(t, util.Digits(util.MONAD_MIN), smallest)
}

// Compare both solvers against exhaustive enumeration over random disjoint
// constraint sets.
func Test_Solve_BruteForce(t *testing.T) {
	const n = 4
	//
	rng := rand.New(rand.NewSource(24))
	//
	for range 200 {
		constraints := randomDisjoint(rng, n)
		expMax, expMin, sat := bruteForce(constraints, n)
		//
		largest, smallest, err := Solve(constraints, n)
		satMax, satMin, satErr := SolveSAT(constraints, n)
		//
		if !sat {
			assert.True(t, errors.Is(err, ErrUnsatisfiable), "%v", constraints)
			assert.True(t, errors.Is(satErr, ErrUnsatisfiable), "%v", constraints)
		} else {
			require.NoError(t, err)
			require.NoError(t, satErr)
			assert.Equal(t, expMax, largest, "%v", constraints)
			assert.Equal(t, expMin, smallest, "%v", constraints)
			assert.Equal(t, expMax, satMax, "%v", constraints)
			assert.Equal(t, expMin, satMin, "%v", constraints)
		}
	}
}

// Compare the SAT solver against exhaustive enumeration over random,
// possibly overlapping, constraint sets.
func Test_SolveSAT_BruteForce(t *testing.T) {
	const n = 4
	//
	rng := rand.New(rand.NewSource(42))
	//
	for range 100 {
		var constraints []Constraint
		//
		for range 1 + rng.Intn(3) {
			constraints = append(constraints, randomConstraint(rng, uint(rng.Intn(n)), uint(rng.Intn(n))))
		}
		//
		expMax, expMin, sat := bruteForce(constraints, n)
		largest, smallest, err := SolveSAT(constraints, n)
		//
		if !sat {
			assert.True(t, errors.Is(err, ErrUnsatisfiable), "%v", constraints)
		} else {
			require.NoError(t, err)
			assert.Equal(t, expMax, largest, "%v", constraints)
			assert.Equal(t, expMin, smallest, "%v", constraints)
		}
	}
}

// ==================================================================
// Framework
// ==================================================================

func checkNormalise(t *testing.T, p, q symbolic.Affine) Constraint {
	c, err := Normalise(symbolic.Relation{P: p, Q: q})
	require.NoError(t, err)
	//
	return c
}

func checkSolve(t *testing.T, constraints []Constraint, n uint) ([]int64, []int64) {
	largest, smallest, err := Solve(constraints, n)
	require.NoError(t, err)
	// Both solvers must agree
	satMax, satMin, err := SolveSAT(constraints, n)
	require.NoError(t, err)
	assert.Equal(t, largest, satMax)
	assert.Equal(t, smallest, satMin)
	// Both results must satisfy every constraint
	for _, c := range constraints {
		assert.True(t, c.Holds(largest), c.String())
		assert.True(t, c.Holds(smallest), c.String())
	}
	//
	return largest, smallest
}

func randomDisjoint(rng *rand.Rand, n uint) []Constraint {
	var (
		positions   = rng.Perm(int(n))
		constraints []Constraint
	)
	//
	for len(positions) > 0 && rng.Intn(4) != 0 {
		if len(positions) == 1 || rng.Intn(5) == 0 {
			constraints = append(constraints, randomConstraint(rng, uint(positions[0]), uint(positions[0])))
			positions = positions[1:]
		} else {
			constraints = append(constraints, randomConstraint(rng, uint(positions[0]), uint(positions[1])))
			positions = positions[2:]
		}
	}
	//
	return constraints
}

func randomConstraint(rng *rand.Rand, i, j uint) Constraint {
	switch {
	case i == j:
		return Fixed(i, int64(rng.Intn(11)))
	case rng.Intn(2) == 0:
		return Difference(i, j, int64(rng.Intn(19)-9))
	default:
		return Sum(i, j, int64(rng.Intn(20)))
	}
}

// Enumerate all assignments in ascending lexicographic order, returning the
// last and first which satisfy every constraint.
func bruteForce(constraints []Constraint, n int) ([]int64, []int64, bool) {
	var (
		digits   = slices.Repeat([]int64{1}, n)
		largest  []int64
		smallest []int64
	)
	//
	for {
		if satisfiesAll(constraints, digits) {
			if smallest == nil {
				smallest = slices.Clone(digits)
			}
			//
			largest = slices.Clone(digits)
		}
		// Increment, least significant digit last
		i := n - 1
		for i >= 0 && digits[i] == 9 {
			digits[i] = 1
			i--
		}
		//
		if i < 0 {
			return largest, smallest, largest != nil
		}
		//
		digits[i]++
	}
}

func satisfiesAll(constraints []Constraint, digits []int64) bool {
	for _, c := range constraints {
		if !c.Holds(digits) {
			return false
		}
	}
	//
	return true
}
