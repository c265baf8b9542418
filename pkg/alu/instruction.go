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

import "fmt"

// Instruction provides an abstract notion of a "machine instruction".  The set
// of instructions is closed: it consists of Inp, Add, Mul, Div, Mod and Eql.
// Every instruction writes exactly one register, and consumers of instructions
// are expected to switch over all six with a panicking default case.
type Instruction interface {
	// Target returns the register written by this instruction.
	Target() Variable
	// Mnemonic returns the textual opcode of this instruction (e.g. "add").
	Mnemonic() string
	// Provide human readable form of instruction
	String() string
}

// Inp reads the next input digit into a register:
//
// inp a
type Inp struct {
	Dst Variable
}

// Add represents an instruction of the following form:
//
// add a b  (i.e. a := a + b)
type Add struct {
	Dst Variable
	Src Argument
}

// Mul represents an instruction of the following form:
//
// mul a b  (i.e. a := a * b)
type Mul struct {
	Dst Variable
	Src Argument
}

// Div represents an instruction of the following form, where division truncates
// towards zero:
//
// div a b  (i.e. a := a / b)
type Div struct {
	Dst Variable
	Src Argument
}

// Mod represents an instruction of the following form, where the result takes
// the sign of the dividend:
//
// mod a b  (i.e. a := a % b)
type Mod struct {
	Dst Variable
	Src Argument
}

// Eql represents an instruction of the following form:
//
// eql a b  (i.e. a := 1 if a == b, otherwise 0)
type Eql struct {
	Dst Variable
	Src Argument
}

// Target implementation for Instruction interface
func (p *Inp) Target() Variable { return p.Dst }

// Target implementation for Instruction interface
func (p *Add) Target() Variable { return p.Dst }

// Target implementation for Instruction interface
func (p *Mul) Target() Variable { return p.Dst }

// Target implementation for Instruction interface
func (p *Div) Target() Variable { return p.Dst }

// Target implementation for Instruction interface
func (p *Mod) Target() Variable { return p.Dst }

// Target implementation for Instruction interface
func (p *Eql) Target() Variable { return p.Dst }

// Mnemonic implementation for Instruction interface
func (p *Inp) Mnemonic() string { return "inp" }

// Mnemonic implementation for Instruction interface
func (p *Add) Mnemonic() string { return "add" }

// Mnemonic implementation for Instruction interface
func (p *Mul) Mnemonic() string { return "mul" }

// Mnemonic implementation for Instruction interface
func (p *Div) Mnemonic() string { return "div" }

// Mnemonic implementation for Instruction interface
func (p *Mod) Mnemonic() string { return "mod" }

// Mnemonic implementation for Instruction interface
func (p *Eql) Mnemonic() string { return "eql" }

func (p *Inp) String() string { return fmt.Sprintf("inp %s", p.Dst) }

func (p *Add) String() string { return binaryString(p, p.Src) }

func (p *Mul) String() string { return binaryString(p, p.Src) }

func (p *Div) String() string { return binaryString(p, p.Src) }

func (p *Mod) String() string { return binaryString(p, p.Src) }

func (p *Eql) String() string { return binaryString(p, p.Src) }

// NewBinary constructs a binary instruction from its mnemonic, or returns nil
// if the mnemonic does not identify a binary instruction.
func NewBinary(mnemonic string, dst Variable, src Argument) Instruction {
	switch mnemonic {
	case "add":
		return &Add{dst, src}
	case "mul":
		return &Mul{dst, src}
	case "div":
		return &Div{dst, src}
	case "mod":
		return &Mod{dst, src}
	case "eql":
		return &Eql{dst, src}
	default:
		return nil
	}
}

func binaryString(insn Instruction, src Argument) string {
	return fmt.Sprintf("%s %s %s", insn.Mnemonic(), insn.Target(), src)
}
