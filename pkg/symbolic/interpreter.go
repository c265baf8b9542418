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

	"github.com/consensys/go-alu/pkg/alu"
	"github.com/consensys/go-alu/pkg/util/math"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Relation is an equality between two affine values which could not be decided
// from their ranges alone.  Each relation must hold for the program to accept,
// and (for the targeted class of programs) relates exactly two input digits.
type Relation struct {
	// Index of the eql instruction which gave rise to this relation.
	Index uint
	// Left-hand side of the comparison (i.e. the target register).
	P Affine
	// Right-hand side of the comparison (i.e. the argument).
	Q Affine
}

func (r Relation) String() string {
	return fmt.Sprintf("%s == %s", r.P.String(), r.Q.String())
}

// Interpreter executes programs over affine values rather than integers.  An
// interpreter owns its registers exclusively, and is intended for a single run.
type Interpreter struct {
	registers [alu.NUM_VARIABLES]Affine
}

// NewInterpreter constructs an interpreter whose registers all hold the
// constant zero.
func NewInterpreter() *Interpreter {
	var p Interpreter
	//
	for i := range p.registers {
		p.registers[i] = Constant(0)
	}
	//
	return &p
}

// Get returns the current symbolic value of a given register.
func (p *Interpreter) Get(v alu.Variable) Affine {
	return p.registers[v]
}

// Accumulator returns the current symbolic value of the designated accumulator.
func (p *Interpreter) Accumulator() Affine {
	return p.registers[alu.ACCUMULATOR]
}

// Simulate a given program in a single pass.  The first inputs read are the
// given partial inputs (as constants), whilst all subsequent inputs are treated
// as unknown digits #0, #1, etc.  Equality instructions are resolved as
// follows:
//
// 1. When the ranges of both sides are disjoint, the outcome is 0.
//
// 2. When the ranges touch at exactly one point, the outcome is 1.
//
// 3. Otherwise, the outcome is taken from the next hint.
//
// Furthermore, any comparison whose right-hand side depends upon an unknown
// digit, and whose ranges overlap, is recorded as a relation.  The relations
// are returned in program order.  Hints beyond those required are ignored.
func (p *Interpreter) Simulate(program alu.Program, hints []int64, partial []int64) ([]Relation, error) {
	var (
		relations []Relation
		inputs    uint
		nextHint  uint
	)
	//
	for pc, insn := range program.Instructions() {
		var (
			index = uint(pc)
			dst   = insn.Target()
			val   Affine
			err   error
		)
		//
		switch insn := insn.(type) {
		case *alu.Inp:
			if inputs < uint(len(partial)) {
				val = Constant(partial[inputs])
			} else {
				val = FromDigit(inputs - uint(len(partial)))
			}
			//
			inputs++
		case *alu.Add:
			val = p.registers[dst].Add(p.read(insn.Src))
		case *alu.Mul:
			lhs, rhs := p.registers[dst], p.read(insn.Src)
			// Normalise so that any non-constant operand is on the left.
			if lhs.IsConstant() && !rhs.IsConstant() {
				lhs, rhs = rhs, lhs
			}
			//
			if err = checkOperand(index, insn, rhs, false); err == nil {
				val = lhs.Mul(rhs)
			}
		case *alu.Div:
			rhs := p.read(insn.Src)
			if err = checkOperand(index, insn, rhs, true); err == nil {
				val = p.registers[dst].Div(rhs)
			}
		case *alu.Mod:
			rhs := p.read(insn.Src)
			if err = checkOperand(index, insn, rhs, true); err == nil {
				val = p.registers[dst].Mod(rhs)
			}
		case *alu.Eql:
			var (
				lhs     = p.registers[dst]
				rhs     = p.read(insn.Src)
				overlap = math.Overlap(lhs.MinBound(), lhs.MaxBound(), rhs.MinBound(), rhs.MaxBound())
				outcome int64
			)
			// Record comparisons genuinely dependent on input
			if !rhs.IsConstant() && overlap > 0 {
				relations = append(relations, Relation{index, lhs, rhs})
			}
			//
			switch {
			case overlap <= 0:
				outcome = 0
			case overlap == 1:
				outcome = 1
			case nextHint < uint(len(hints)):
				outcome = hints[nextHint]
				nextHint++
			default:
				err = errors.Wrapf(ErrHintsExhausted, "instruction %d (%s)", index, insn)
			}
			//
			val = Constant(outcome)
			//
			log.Tracef("%s: %s == %s (overlap %d) gives %d", insn, lhs, rhs, overlap, outcome)
		default:
			panic(fmt.Sprintf("unknown instruction \"%s\"", insn.String()))
		}
		//
		if err != nil {
			return nil, err
		}
		//
		p.registers[dst] = val
	}
	//
	log.Debugf("symbolic execution recorded %d relation(s) using %d hint(s)", len(relations), nextHint)
	//
	return relations, nil
}

func (p *Interpreter) read(arg alu.Argument) Affine {
	if arg.IsLiteral() {
		return Constant(arg.Value())
	}
	//
	return p.registers[arg.Register()]
}

// Check that the right-hand operand of a multiplication, division or remainder
// is constant (and, for division and remainder, nonzero).
func checkOperand(index uint, insn alu.Instruction, rhs Affine, divisor bool) error {
	if !rhs.IsConstant() {
		return &StructuralError{index, insn, fmt.Sprintf("operand %s is not constant", rhs)}
	} else if divisor && rhs.Const() == 0 {
		return errors.Wrapf(ErrDivideByZero, "instruction %d (%s)", index, insn)
	}
	//
	return nil
}
