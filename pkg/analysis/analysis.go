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
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-alu/pkg/alu"
	"github.com/consensys/go-alu/pkg/alu/machine"
	"github.com/consensys/go-alu/pkg/solver"
	"github.com/consensys/go-alu/pkg/symbolic"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ErrAccumulatorNotZero signals that, after the symbolic pass, the accumulator
// was not the zero affine value.  This typically means the equality hints did
// not describe the comparisons which the program requires to hold.
var ErrAccumulatorNotZero = errors.New("symbolic accumulator not zero")

// VerificationError signals that concrete execution of a solved digit sequence
// left a nonzero accumulator.
type VerificationError struct {
	Inputs      []int64
	Accumulator int64
}

func (p *VerificationError) Error() string {
	return fmt.Sprintf("verification of %s failed (accumulator is %d)", DigitString(p.Inputs), p.Accumulator)
}

// Config determines how an analysis is performed.
type Config struct {
	// Outcomes for equality comparisons which cannot be resolved by range
	// analysis, consumed in program order.
	Hints []int64
	// Inputs whose values are already known, supplied before any unknown digit.
	Partial []int64
	// Total number of inputs (including partial inputs).
	Digits uint
	// Use the SAT solver rather than the pairwise solver.
	SAT bool
}

// DefaultConfig returns the configuration for a fourteen digit validator,
// where every undecided comparison is assumed to hold.
func DefaultConfig() Config {
	return Config{
		Hints:  []int64{1, 1, 1, 1, 1, 1, 1},
		Digits: 14,
	}
}

// Result captures the outcome of a successful analysis.
type Result struct {
	// Relations recorded during the symbolic pass.
	Relations []symbolic.Relation
	// Constraints derived from the relations.
	Constraints []solver.Constraint
	// Largest accepted input sequence (including partial inputs).
	Max []int64
	// Smallest accepted input sequence (including partial inputs).
	Min []int64
}

// MaxString renders the largest accepted input sequence.
func (p Result) MaxString() string {
	return DigitString(p.Max)
}

// MinString renders the smallest accepted input sequence.
func (p Result) MinString() string {
	return DigitString(p.Min)
}

// Run analyses a program to determine the largest and smallest input sequences
// for which it leaves zero in its accumulator.  This performs a single symbolic
// pass, solves the recorded relations and then confirms both results by
// concrete execution.
func Run(program alu.Program, config Config) (Result, error) {
	var (
		interpreter = symbolic.NewInterpreter()
		result      Result
		err         error
	)
	//
	if uint(len(config.Partial)) > config.Digits {
		return result, errors.Errorf("%d partial inputs exceeds %d digits", len(config.Partial), config.Digits)
	}
	//
	if result.Relations, err = interpreter.Simulate(program, config.Hints, config.Partial); err != nil {
		return result, err
	} else if acc := interpreter.Accumulator(); !acc.IsZero() {
		return result, errors.Wrapf(ErrAccumulatorNotZero, "accumulator is %s", acc)
	}
	//
	log.Debugf("recorded %d relation(s)", len(result.Relations))
	//
	if result.Constraints, err = solver.Constraints(result.Relations); err != nil {
		return result, err
	}
	//
	var solve solver.Solver = solver.Solve
	//
	if config.SAT {
		solve = solver.SolveSAT
	}
	//
	largest, smallest, err := solve(result.Constraints, config.Digits-uint(len(config.Partial)))
	if err != nil {
		return result, err
	}
	//
	result.Max = slices.Concat(config.Partial, largest)
	result.Min = slices.Concat(config.Partial, smallest)
	// Both results must be confirmed concretely
	for _, inputs := range [][]int64{result.Max, result.Min} {
		if err = Verify(program, inputs); err != nil {
			return result, err
		}
	}
	//
	log.Debugf("verified %s and %s", result.MaxString(), result.MinString())
	//
	return result, nil
}

// Verify executes a program concretely on a given input sequence, and checks
// that it leaves zero in the accumulator.
func Verify(program alu.Program, inputs []int64) error {
	m := machine.New()
	//
	if err := m.Execute(program, inputs); err != nil {
		return err
	} else if acc := m.Accumulator(); acc != 0 {
		return &VerificationError{slices.Clone(inputs), acc}
	}
	//
	return nil
}

// DigitString renders a sequence of inputs by concatenating their decimal
// representations.
func DigitString(inputs []int64) string {
	var builder strings.Builder
	//
	for _, d := range inputs {
		fmt.Fprintf(&builder, "%d", d)
	}
	//
	return builder.String()
}
