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
	"fmt"
	"slices"

	"github.com/consensys/go-alu/pkg/symbolic"
	"github.com/consensys/go-alu/pkg/util/math"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Solver determines the lexicographically largest and smallest assignments of
// n digits satisfying a given set of constraints.
type Solver func(constraints []Constraint, n uint) (max []int64, min []int64, err error)

// SolveRelations normalises a set of relations and then solves them using the
// pairwise solver.
func SolveRelations(relations []symbolic.Relation, n uint) ([]int64, []int64, error) {
	constraints, err := Constraints(relations)
	if err != nil {
		return nil, nil, err
	}
	//
	return Solve(constraints, n)
}

// Solve determines the largest and smallest digit assignments satisfying a set
// of constraints which cover pairwise disjoint positions.  Since no position is
// shared, each constraint is solved independently: the left (i.e. more
// significant) digit takes its most preferred value for which the right digit
// remains in range.  Positions not covered by any constraint take 9 in the
// largest assignment, and 1 in the smallest.
func Solve(constraints []Constraint, n uint) ([]int64, []int64, error) {
	if err := checkDisjoint(constraints, n); err != nil {
		return nil, nil, err
	}
	//
	var (
		largest  = slices.Repeat([]int64{math.DIGITS.MaxValue()}, int(n))
		smallest = slices.Repeat([]int64{math.DIGITS.MinValue()}, int(n))
	)
	//
	for _, c := range constraints {
		hi, ok1 := extreme(c, math.DIGITS.Descending())
		lo, ok2 := extreme(c, math.DIGITS.Ascending())
		//
		if !ok1 || !ok2 {
			return nil, nil, errors.Wrapf(ErrUnsatisfiable, "%s", c)
		}
		//
		largest[c.Left], largest[c.Right] = hi, c.Partner(hi)
		smallest[c.Left], smallest[c.Right] = lo, c.Partner(lo)
		//
		log.Debugf("%s gives %d..%d for #%d", c, lo, hi, c.Left)
	}
	//
	return largest, smallest, nil
}

// Find the first value of the left digit, in order of preference, for which the
// constraint can be satisfied.
func extreme(c Constraint, preference []int64) (int64, bool) {
	for _, v := range preference {
		if c.Kind == FIXED && v == c.Value {
			return v, true
		} else if c.Kind != FIXED && math.DIGITS.Contains(c.Partner(v)) {
			return v, true
		}
	}
	//
	return 0, false
}

// Check every position lies within bounds and is covered by at most one
// constraint.
func checkDisjoint(constraints []Constraint, n uint) error {
	owners := make(map[uint]Constraint)
	//
	for _, c := range constraints {
		for _, pos := range c.Positions() {
			if pos >= n {
				return &StructuralError{c.Index, fmt.Sprintf("digit #%d out of bounds (%d digits)", pos, n)}
			} else if other, ok := owners[pos]; ok {
				msg := fmt.Sprintf("digit #%d constrained by both %s and %s", pos, other, c)
				return &StructuralError{c.Index, msg}
			}
			//
			owners[pos] = c
		}
	}
	//
	return nil
}
