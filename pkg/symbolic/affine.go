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
package symbolic

import (
	"fmt"
	"slices"
	"strings"

	"github.com/consensys/go-alu/pkg/util/collection/array"
	"github.com/consensys/go-alu/pkg/util/math"
)

// Affine represents the symbolic content of a register as a linear combination
// of (as yet unknown) input digits plus a constant:
//
// c0 * #0 + c1 * #1 + ... + cn * #n + k
//
// Here, #i denotes the i-th unresolved input digit, which is assumed to range
// over 1..9.  Affine values are immutable, and all operations produce fresh
// values.  The coefficient vector is padded lazily, so missing trailing
// coefficients are zero.
//
// Multiplication, division and remainder are only defined when the right-hand
// operand is a constant.  Furthermore, division and remainder are applied to
// each coefficient (and the constant) independently, which is only equivalent
// to dividing the combined value when the programs being analysed arrange for
// this to be exact (as digit-validation checksums do).  Likewise, bounds are
// obtained by evaluating with every digit at its extreme, which is only a
// sound approximation for non-negative coefficients.
type Affine struct {
	coefficients []int64
	constant     int64
}

// Constant constructs an affine value with no digit dependencies.
func Constant(value int64) Affine {
	return Affine{nil, value}
}

// FromDigit constructs an affine value which represents exactly the i-th input
// digit.
func FromDigit(index uint) Affine {
	coefficients := make([]int64, index+1)
	coefficients[index] = 1
	//
	return Affine{coefficients, 0}
}

// NewAffine constructs an affine value from an explicit set of coefficients and
// a constant.
func NewAffine(constant int64, coefficients ...int64) Affine {
	return Affine{slices.Clone(coefficients), constant}
}

// Coefficient returns the coefficient of the i-th digit.
func (p Affine) Coefficient(index uint) int64 {
	if index < uint(len(p.coefficients)) {
		return p.coefficients[index]
	}
	//
	return 0
}

// Const returns the constant term of this affine value.
func (p Affine) Const() int64 {
	return p.constant
}

// Support returns the indices of all digits on which this value depends (i.e.
// those with nonzero coefficients), in ascending order.
func (p Affine) Support() []uint {
	return array.FindAllMatching(p.coefficients, isNonZero)
}

// IsConstant determines whether this value depends on any input digit.
func (p Affine) IsConstant() bool {
	return !slices.ContainsFunc(p.coefficients, isNonZero)
}

// IsZero determines whether this value is exactly the constant zero.
func (p Affine) IsZero() bool {
	return p.IsConstant() && p.constant == 0
}

// Equals determines whether two affine values are syntactically identical,
// ignoring any trailing zero coefficients.
func (p Affine) Equals(q Affine) bool {
	n := uint(max(len(p.coefficients), len(q.coefficients)))
	//
	return p.constant == q.constant &&
		slices.Equal(array.BackPad(p.coefficients, n, 0), array.BackPad(q.coefficients, n, 0))
}

// Add two affine values together, which is always well-defined.
func (p Affine) Add(q Affine) Affine {
	n := uint(max(len(p.coefficients), len(q.coefficients)))
	lhs := array.BackPad(p.coefficients, n, 0)
	rhs := array.BackPad(q.coefficients, n, 0)
	coefficients := make([]int64, n)
	//
	for i := range coefficients {
		coefficients[i] = lhs[i] + rhs[i]
	}
	//
	return Affine{coefficients, p.constant + q.constant}
}

// Mul multiplies this value by a constant.  This will panic if the right-hand
// side is not a constant.
func (p Affine) Mul(q Affine) Affine {
	q.checkConstantOperand("multiply")
	//
	return p.mapTerms(func(c int64) int64 { return c * q.constant })
}

// Div divides each coefficient and the constant of this value independently by
// a constant, truncating towards zero.  This will panic if the right-hand side
// is not a nonzero constant.
func (p Affine) Div(q Affine) Affine {
	q.checkConstantOperand("divide")
	q.checkNonZero()
	//
	return p.mapTerms(func(c int64) int64 { return c / q.constant })
}

// Mod reduces each coefficient and the constant of this value independently
// modulo a constant, where results take the sign of the dividend.  This will
// panic if the right-hand side is not a nonzero constant.
func (p Affine) Mod(q Affine) Affine {
	q.checkConstantOperand("reduce")
	q.checkNonZero()
	//
	return p.mapTerms(func(c int64) int64 { return c % q.constant })
}

// MinBound returns the value obtained by evaluating this value with every digit
// at its smallest value.
func (p Affine) MinBound() int64 {
	return p.evalAll(math.DIGITS.MinValue())
}

// MaxBound returns the value obtained by evaluating this value with every digit
// at its largest value.
func (p Affine) MaxBound() int64 {
	return p.evalAll(math.DIGITS.MaxValue())
}

// Eval evaluates this value for a given assignment of digits.  This will panic
// if the value depends on a digit beyond those assigned.
func (p Affine) Eval(digits []int64) int64 {
	result := p.constant
	//
	for i, c := range p.coefficients {
		if c != 0 {
			result += c * digits[i]
		}
	}
	//
	return result
}

func (p Affine) String() string {
	var builder strings.Builder
	//
	for i, c := range p.coefficients {
		switch c {
		case 0:
			continue
		case 1:
			fmt.Fprintf(&builder, "#%d + ", i)
		default:
			fmt.Fprintf(&builder, "(%d * #%d) + ", c, i)
		}
	}
	//
	fmt.Fprintf(&builder, "%d", p.constant)
	//
	return builder.String()
}

func (p Affine) evalAll(digit int64) int64 {
	result := p.constant
	//
	for _, c := range p.coefficients {
		result += c * digit
	}
	//
	return result
}

func (p Affine) mapTerms(fn func(int64) int64) Affine {
	coefficients := make([]int64, len(p.coefficients))
	//
	for i, c := range p.coefficients {
		coefficients[i] = fn(c)
	}
	//
	return Affine{coefficients, fn(p.constant)}
}

func (p Affine) checkConstantOperand(op string) {
	if !p.IsConstant() {
		panic(fmt.Sprintf("cannot %s by non-constant %s", op, p.String()))
	}
}

func (p Affine) checkNonZero() {
	if p.constant == 0 {
		panic("divide by zero")
	}
}

func isNonZero(c int64) bool {
	return c != 0
}
