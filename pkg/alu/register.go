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
package alu

import (
	"fmt"
	"strconv"
)

// Variable identifies one of the four registers of the machine.
type Variable uint8

const (
	// X is a general purpose register.
	X Variable = iota
	// Y is a general purpose register.
	Y
	// Z is the accumulator, whose final value determines whether a given input
	// sequence is accepted.
	Z
	// W is the register into which programs conventionally read input digits.
	W
)

// NUM_VARIABLES determines the number of registers available on the machine.
const NUM_VARIABLES = 4

// ACCUMULATOR is the designated register which must hold zero at the end of an
// accepting execution.
const ACCUMULATOR = Z

var variableNames = [NUM_VARIABLES]string{"x", "y", "z", "w"}

// ParseVariable converts a register name into a variable, or returns false if
// no such register exists.
func ParseVariable(name string) (Variable, bool) {
	for i, n := range variableNames {
		if n == name {
			return Variable(i), true
		}
	}
	//
	return 0, false
}

func (v Variable) String() string {
	if int(v) < NUM_VARIABLES {
		return variableNames[v]
	}
	//
	panic(fmt.Sprintf("unknown register %d", v))
}

// Argument is the right-hand operand of a binary instruction, which is either
// a register or an integer literal.
type Argument struct {
	// Register read by this argument (when not a literal).
	register Variable
	// Value of this argument (when a literal).
	value int64
	// Indicates whether this is a literal or not.
	literal bool
}

// Register constructs an argument which reads a given register.
func Register(v Variable) Argument {
	return Argument{register: v}
}

// Literal constructs an argument representing a constant value.
func Literal(value int64) Argument {
	return Argument{value: value, literal: true}
}

// IsLiteral determines whether this argument is an integer literal, rather than
// a register.
func (p Argument) IsLiteral() bool {
	return p.literal
}

// Register returns the register read by this argument.  This will panic if the
// argument is a literal.
func (p Argument) Register() Variable {
	if p.literal {
		panic("argument is not a register")
	}
	//
	return p.register
}

// Value returns the value of this literal argument.  This will panic if the
// argument is a register.
func (p Argument) Value() int64 {
	if !p.literal {
		panic("argument is not a literal")
	}
	//
	return p.value
}

func (p Argument) String() string {
	if p.literal {
		return strconv.FormatInt(p.value, 10)
	}
	//
	return p.register.String()
}
