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

	"github.com/consensys/go-alu/pkg/symbolic"
	"github.com/consensys/go-alu/pkg/util/math"
)

// Kind identifies the shape of a constraint between digits.
type Kind uint8

const (
	// FIXED constraints require a single digit to equal a given value.
	FIXED Kind = iota
	// DIFFERENCE constraints require d[Right] == d[Left] + Value.
	DIFFERENCE
	// SUM constraints require d[Left] + d[Right] == Value.
	SUM
)

// Constraint is a normalised relation over at most two digit positions.  For
// two-digit constraints, Left is always strictly less than Right.  For FIXED
// constraints, Left and Right coincide.
type Constraint struct {
	Kind  Kind
	Left  uint
	Right uint
	Value int64
	// Index of the instruction which gave rise to this constraint.
	Index uint
}

// Fixed constructs a constraint requiring digit i to equal v.
func Fixed(i uint, v int64) Constraint {
	return Constraint{FIXED, i, i, v, 0}
}

// Difference constructs a constraint requiring d[j] == d[i] + k.
func Difference(i, j uint, k int64) Constraint {
	if i > j {
		return Constraint{DIFFERENCE, j, i, -k, 0}
	} else if i == j {
		panic("difference constraint requires distinct digits")
	}
	//
	return Constraint{DIFFERENCE, i, j, k, 0}
}

// Sum constructs a constraint requiring d[i] + d[j] == k.
func Sum(i, j uint, k int64) Constraint {
	if i == j {
		panic("sum constraint requires distinct digits")
	}
	//
	return Constraint{SUM, min(i, j), max(i, j), k, 0}
}

// Positions returns the digit positions this constraint covers.
func (p Constraint) Positions() []uint {
	if p.Kind == FIXED {
		return []uint{p.Left}
	}
	//
	return []uint{p.Left, p.Right}
}

// Partner determines the value the right digit must take for a given value of
// the left digit.  For FIXED constraints this is simply the fixed value.
func (p Constraint) Partner(left int64) int64 {
	switch p.Kind {
	case FIXED:
		return p.Value
	case DIFFERENCE:
		return left + p.Value
	case SUM:
		return p.Value - left
	default:
		panic(fmt.Sprintf("unknown constraint kind %d", p.Kind))
	}
}

// Holds checks whether a given digit assignment satisfies this constraint.
func (p Constraint) Holds(digits []int64) bool {
	if p.Kind == FIXED {
		return digits[p.Left] == p.Value
	}
	//
	return digits[p.Right] == p.Partner(digits[p.Left])
}

// Satisfiable determines whether any assignment of digits satisfies this
// constraint in isolation.
func (p Constraint) Satisfiable() bool {
	_, ok := extreme(p, math.DIGITS.Ascending())
	//
	return ok
}

func (p Constraint) String() string {
	switch p.Kind {
	case FIXED:
		return fmt.Sprintf("#%d == %d", p.Left, p.Value)
	case DIFFERENCE:
		return fmt.Sprintf("#%d == #%d + %d", p.Right, p.Left, p.Value)
	case SUM:
		return fmt.Sprintf("#%d + #%d == %d", p.Left, p.Right, p.Value)
	default:
		panic(fmt.Sprintf("unknown constraint kind %d", p.Kind))
	}
}

// Normalise converts a relation P == Q into a constraint.  The right-hand side
// must depend on exactly one digit, and the left-hand side on at most one, with
// all coefficients being either 1 or -1.
func Normalise(r symbolic.Relation) (Constraint, error) {
	var (
		lhs = r.P.Support()
		rhs = r.Q.Support()
		// Difference of constants moved to the right
		delta = r.P.Const() - r.Q.Const()
		c     Constraint
	)
	//
	if len(rhs) != 1 {
		return c, structuralError(r, "right-hand side must depend on exactly one digit")
	} else if len(lhs) > 1 {
		return c, structuralError(r, "left-hand side depends on more than one digit")
	}
	//
	j := rhs[0]
	b := r.Q.Coefficient(j)
	//
	if !isUnit(b) {
		return c, structuralError(r, fmt.Sprintf("coefficient %d of #%d is not a unit", b, j))
	} else if len(lhs) == 0 {
		// b * d[j] == delta, where b is its own inverse
		c = Fixed(j, b*delta)
		c.Index = r.Index
		//
		return c, nil
	}
	//
	i := lhs[0]
	a := r.P.Coefficient(i)
	//
	if !isUnit(a) {
		return c, structuralError(r, fmt.Sprintf("coefficient %d of #%d is not a unit", a, i))
	} else if i == j {
		return c, structuralError(r, fmt.Sprintf("both sides depend on #%d", i))
	}
	// a * d[i] + delta == b * d[j]
	if a == b {
		c = Difference(i, j, b*delta)
	} else {
		c = Sum(i, j, b*delta)
	}
	//
	c.Index = r.Index
	//
	return c, nil
}

// Constraints normalises a sequence of relations, stopping at the first which
// cannot be normalised.
func Constraints(relations []symbolic.Relation) ([]Constraint, error) {
	constraints := make([]Constraint, len(relations))
	//
	for i, r := range relations {
		c, err := Normalise(r)
		if err != nil {
			return nil, err
		}
		//
		constraints[i] = c
	}
	//
	return constraints, nil
}

func isUnit(c int64) bool {
	return c == 1 || c == -1
}
