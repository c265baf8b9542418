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
package lex

import (
	"testing"

	"github.com/consensys/go-alu/pkg/util/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Lexer_00(t *testing.T) {
	checkLexer(t, "", 0,
		Token{END_OF, source.NewSpan(0, 0)})
}

func Test_Lexer_01(t *testing.T) {
	checkLexer(t, "-", 0,
		Token{MINUS, source.NewSpan(0, 1)},
		Token{END_OF, source.NewSpan(1, 1)})
}

func Test_Lexer_02(t *testing.T) {
	checkLexer(t, "x", 1)
}

func Test_Lexer_03(t *testing.T) {
	checkLexer(t, "- 12", 0,
		Token{MINUS, source.NewSpan(0, 1)},
		Token{WSPACE, source.NewSpan(1, 2)},
		Token{NUMBER, source.NewSpan(2, 4)},
		Token{END_OF, source.NewSpan(4, 4)})
}

func Test_Lexer_04(t *testing.T) {
	checkLexer(t, "9 STOP 1 2", 0,
		Token{NUMBER, source.NewSpan(0, 1)},
		Token{WSPACE, source.NewSpan(1, 2)},
		Token{STOP, source.NewSpan(2, 10)},
		Token{END_OF, source.NewSpan(10, 10)})
}

func Test_Lexer_05(t *testing.T) {
	checkLexer(t, "STOP", 0,
		Token{STOP, source.NewSpan(0, 4)},
		Token{END_OF, source.NewSpan(4, 4)})
}

func Test_Lexer_Tokenise(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte("1 - 2"))
	tokens, err := Tokenise(srcfile, rules, WSPACE)
	//
	require.Nil(t, err)
	assert.Equal(t, []uint{NUMBER, MINUS, NUMBER, END_OF}, kinds(tokens))
}

func Test_Lexer_TokeniseError(t *testing.T) {
	srcfile := source.NewSourceFile("test", []byte("1 ? 2\n3"))
	_, err := Tokenise(srcfile, rules, WSPACE)
	//
	require.NotNil(t, err)
	span := err.Span()
	assert.Equal(t, 2, span.Start())
	assert.Equal(t, 5, span.End())
	assert.Equal(t, "test:1: unknown text encountered", err.Error())
}

func Test_Scanner_SequenceNullableLast(t *testing.T) {
	rule := SequenceNullableLast(Unit('a'), Unit('b'), Many(Unit('c')))
	// non-final rule cannot be left unmatched.
	assert.Equal(t, uint(0), rule([]rune{'a', 'c', 'c'}))
	// final rule is allowed to have no match.
	assert.Equal(t, uint(2), rule([]rune{'a', 'b', 'b'}))
	assert.Equal(t, uint(2), rule([]rune{'a', 'b'}))
	assert.Equal(t, uint(4), rule([]rune{'a', 'b', 'c', 'c'}))
}

func Test_Scanner_Until(t *testing.T) {
	assert.Equal(t, uint(3), Until('\n')([]rune("abc\nd")))
	assert.Equal(t, uint(2), Until('\n')([]rune("ab")))
}

// ==================================================================
// Framework
// ==================================================================

const END_OF uint = 0
const WSPACE uint = 1
const MINUS uint = 2
const NUMBER uint = 3
const STOP uint = 4

// lexing rules
var rules = []LexRule[rune]{
	Rule(Unit('-'), MINUS),
	Rule(Many(Or(Unit(' '), Unit('\t'))), WSPACE),
	Rule(Many(Within('0', '9')), NUMBER),
	Rule(SequenceNullableLast(String("STOP"), Rest[rune]()), STOP),
	Rule(Eof[rune](), END_OF),
}

func checkLexer(t *testing.T, input string, remainder uint, expected ...Token) {
	items := []rune(input)
	lexer := NewLexer(items, rules...)
	tokens := lexer.Collect()
	//
	assert.Equal(t, expected, tokens)
	assert.Equal(t, remainder, lexer.Remaining())
}

func kinds(tokens []Token) []uint {
	var result []uint
	for _, t := range tokens {
		result = append(result, t.Kind)
	}
	//
	return result
}
