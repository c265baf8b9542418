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
package util

import (
	"fmt"
	"strings"
)

// MonadBlock describes the parameters of one digit-checking block of a
// model-number validator.  Each block reads a single digit and either pushes
// it onto a base-26 stack held in z (when Div is 1) or attempts to pop the
// top of that stack (when Div is 26).
type MonadBlock struct {
	// Divisor applied to z (either 1 or 26).
	Div int64
	// Value added to the top of the stack before comparing with the digit.
	Check int64
	// Value added to the digit before it is pushed.
	Offset int64
}

// MONAD_BLOCKS is a balanced validator over 14 digits which accepts exactly
// those model numbers satisfying seven pairwise digit relations.
var MONAD_BLOCKS = []MonadBlock{
	{1, 11, 6}, {1, 13, 14}, {1, 15, 14}, {26, -8, 10}, {1, 13, 9}, {1, 15, 12}, {26, -11, 8},
	{26, -4, 13}, {26, -15, 12}, {1, 14, 6}, {1, 14, 9}, {26, -1, 15}, {26, -8, 4}, {26, -14, 10},
}

// MONAD_MAX is the largest model number accepted by MONAD_BLOCKS.
const MONAD_MAX = "99394899891971"

// MONAD_MIN is the smallest model number accepted by MONAD_BLOCKS.
const MONAD_MIN = "92171126131911"

// MonadProgram generates the program text for a given sequence of blocks, one
// instruction per line.
func MonadProgram(blocks ...MonadBlock) string {
	var builder strings.Builder
	//
	for _, b := range blocks {
		builder.WriteString("inp w\nmul x 0\nadd x z\nmod x 26\n")
		fmt.Fprintf(&builder, "div z %d\nadd x %d\n", b.Div, b.Check)
		builder.WriteString("eql x w\neql x 0\nmul y 0\nadd y 25\nmul y x\nadd y 1\nmul z y\nmul y 0\nadd y w\n")
		fmt.Fprintf(&builder, "add y %d\nmul y x\nadd z y\n", b.Offset)
	}
	//
	return builder.String()
}

// Digits converts a string of decimal digits into the corresponding input
// sequence.  This panics if the string contains anything other than digits.
func Digits(text string) []int64 {
	digits := make([]int64, len(text))
	//
	for i, c := range text {
		if c < '0' || c > '9' {
			panic(fmt.Sprintf("invalid digit '%c' in \"%s\"", c, text))
		}
		//
		digits[i] = int64(c - '0')
	}
	//
	return digits
}
