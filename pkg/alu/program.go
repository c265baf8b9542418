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
	"slices"
	"strings"
)

// Program is an immutable sequence of instructions.  Programs are shared
// (read-only) between the concrete and symbolic interpreters.
type Program struct {
	instructions []Instruction
}

// NewProgram constructs a program from a given sequence of instructions.
func NewProgram(instructions ...Instruction) Program {
	return Program{slices.Clone(instructions)}
}

// Len returns the number of instructions in this program.
func (p Program) Len() uint {
	return uint(len(p.instructions))
}

// Instruction returns the instruction at a given index.
func (p Program) Instruction(index uint) Instruction {
	return p.instructions[index]
}

// Instructions returns the instructions making up this program.
func (p Program) Instructions() []Instruction {
	return slices.Clone(p.instructions)
}

// NumInputs returns the number of input digits this program consumes.
func (p Program) NumInputs() uint {
	count := uint(0)
	//
	for _, insn := range p.instructions {
		if _, ok := insn.(*Inp); ok {
			count++
		}
	}
	//
	return count
}

// String returns the program in the textual format accepted by the assembler,
// with one instruction per line.
func (p Program) String() string {
	var builder strings.Builder
	//
	for _, insn := range p.instructions {
		builder.WriteString(insn.String())
		builder.WriteString("\n")
	}
	//
	return builder.String()
}
