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
	"github.com/pkg/errors"
)

// ErrHintsExhausted signals that the program contains more undecidable
// equality comparisons than the caller supplied hints for.
var ErrHintsExhausted = errors.New("equality hints exhausted")

// ErrDivideByZero signals a division or remainder by the constant zero.
var ErrDivideByZero = errors.New("divide by zero")

// StructuralError signals that a program lies outside the class of programs
// which can be analysed.  For example, when it multiplies two values which
// both depend upon input digits.
type StructuralError struct {
	// Index of the offending instruction
	Index uint
	// The offending instruction
	Instruction alu.Instruction
	// Explanation of what went wrong
	Message string
}

func (p *StructuralError) Error() string {
	return fmt.Sprintf("instruction %d (%s): %s", p.Index, p.Instruction, p.Message)
}
