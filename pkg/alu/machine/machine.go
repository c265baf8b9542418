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
package machine

import (
	"fmt"

	"github.com/consensys/go-alu/pkg/alu"
	"github.com/pkg/errors"
)

// ErrInputExhausted signals that a program attempted to read more input digits
// than were supplied.
var ErrInputExhausted = errors.New("input exhausted")

// ErrDivideByZero signals a division or remainder by zero.
var ErrDivideByZero = errors.New("divide by zero")

// Machine is a concrete interpreter for ALU programs.  It holds four 64bit
// registers, all of which are initially zero.
type Machine struct {
	registers [alu.NUM_VARIABLES]int64
}

// New constructs a machine whose registers are all zero.
func New() *Machine {
	return &Machine{}
}

// Get returns the current value of a given register.
func (p *Machine) Get(v alu.Variable) int64 {
	return p.registers[v]
}

// Accumulator returns the current value of the designated accumulator.
func (p *Machine) Accumulator() int64 {
	return p.registers[alu.ACCUMULATOR]
}

// State returns a snapshot of all registers, indexed by variable.
func (p *Machine) State() [alu.NUM_VARIABLES]int64 {
	return p.registers
}

// Execute a given program against a given sequence of input digits, updating
// the machine state accordingly.  Each inp instruction consumes exactly one
// input, and an error is returned if the inputs are exhausted.  Any inputs
// remaining once the program completes are ignored.  Division and remainder
// truncate towards zero, and fail when the divisor is zero.
func (p *Machine) Execute(program alu.Program, inputs []int64) error {
	var next = 0
	//
	for pc, insn := range program.Instructions() {
		var err error
		//
		switch insn := insn.(type) {
		case *alu.Inp:
			if next >= len(inputs) {
				err = ErrInputExhausted
			} else {
				p.registers[insn.Dst] = inputs[next]
				next++
			}
		case *alu.Add:
			p.registers[insn.Dst] += p.read(insn.Src)
		case *alu.Mul:
			p.registers[insn.Dst] *= p.read(insn.Src)
		case *alu.Div:
			if rhs := p.read(insn.Src); rhs == 0 {
				err = ErrDivideByZero
			} else {
				p.registers[insn.Dst] /= rhs
			}
		case *alu.Mod:
			if rhs := p.read(insn.Src); rhs == 0 {
				err = ErrDivideByZero
			} else {
				p.registers[insn.Dst] %= rhs
			}
		case *alu.Eql:
			p.registers[insn.Dst] = boolToInt(p.registers[insn.Dst] == p.read(insn.Src))
		default:
			panic(fmt.Sprintf("unknown instruction \"%s\"", insn.String()))
		}
		//
		if err != nil {
			return errors.Wrapf(err, "instruction %d (%s)", pc, insn)
		}
	}
	//
	return nil
}

func (p *Machine) read(arg alu.Argument) int64 {
	if arg.IsLiteral() {
		return arg.Value()
	}
	//
	return p.registers[arg.Register()]
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	//
	return 0
}
