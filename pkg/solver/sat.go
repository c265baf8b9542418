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
	"github.com/consensys/go-alu/pkg/util/math"
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// SolveSAT determines the largest and smallest digit assignments satisfying a
// set of constraints by encoding them as a boolean satisfiability problem.
// Unlike Solve, this places no restriction on how constraints overlap.  Each
// digit is encoded with one variable per value, and extreme assignments are
// found greedily by fixing digits from most to least significant.
func SolveSAT(constraints []Constraint, n uint) ([]int64, []int64, error) {
	for _, c := range constraints {
		for _, pos := range c.Positions() {
			if pos >= n {
				return nil, nil, &StructuralError{c.Index, "digit out of bounds"}
			}
		}
	}
	//
	g := encode(constraints, n)
	//
	if g.Solve() != 1 {
		return nil, nil, errors.Wrapf(ErrUnsatisfiable, "%d constraint(s) over %d digit(s)", len(constraints), n)
	}
	//
	largest, err := greedy(g, n, math.DIGITS.Descending())
	if err != nil {
		return nil, nil, err
	}
	//
	smallest, err := greedy(g, n, math.DIGITS.Ascending())
	if err != nil {
		return nil, nil, err
	}
	//
	return largest, smallest, nil
}

// Variables are numbered from 1, with one block of nine per digit position.
func digitLit(pos uint, value int64) z.Lit {
	return z.Var(int(pos)*9 + int(value)).Pos()
}

func encode(constraints []Constraint, n uint) *gini.Gini {
	var (
		g       = gini.NewV(int(n) * 9)
		digits  = math.DIGITS.Ascending()
		nclause = 0
	)
	// Add a single clause
	clause := func(lits ...z.Lit) {
		for _, l := range lits {
			g.Add(l)
		}
		//
		g.Add(z.LitNull)
		nclause++
	}
	// Each digit takes exactly one value
	for pos := range n {
		var atLeastOne []z.Lit
		//
		for i, v := range digits {
			atLeastOne = append(atLeastOne, digitLit(pos, v))
			//
			for _, w := range digits[i+1:] {
				clause(digitLit(pos, v).Not(), digitLit(pos, w).Not())
			}
		}
		//
		clause(atLeastOne...)
	}
	//
	for _, c := range constraints {
		for _, v := range digits {
			switch {
			case c.Kind == FIXED && v != c.Value:
				clause(digitLit(c.Left, v).Not())
			case c.Kind == FIXED:
				continue
			case math.DIGITS.Contains(c.Partner(v)):
				clause(digitLit(c.Left, v).Not(), digitLit(c.Right, c.Partner(v)))
			default:
				clause(digitLit(c.Left, v).Not())
			}
		}
	}
	//
	log.Debugf("encoded %d constraint(s) over %d digit(s) as %d clause(s)", len(constraints), n, nclause)
	//
	return g
}

// Fix each digit in turn to its most preferred value consistent with those
// already fixed.
func greedy(g *gini.Gini, n uint, preference []int64) ([]int64, error) {
	var (
		fixed  []z.Lit
		digits = make([]int64, n)
	)
	//
	for pos := range n {
		found := false
		//
		for _, v := range preference {
			lit := digitLit(pos, v)
			// Assumptions only last for a single call to Solve
			g.Assume(fixed...)
			g.Assume(lit)
			//
			if g.Solve() == 1 {
				fixed = append(fixed, lit)
				digits[pos] = v
				found = true
				//
				break
			}
		}
		//
		if !found {
			return nil, errors.Wrapf(ErrUnsatisfiable, "digit #%d", pos)
		}
	}
	//
	return digits, nil
}
