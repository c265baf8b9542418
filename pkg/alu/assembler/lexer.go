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
package assembler

import (
	"github.com/consensys/go-alu/pkg/util/source"
	"github.com/consensys/go-alu/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace (excluding newlines)
const WHITESPACE uint = 1

// NEWLINE signals the end of a line
const NEWLINE uint = 2

// COMMENT signals ";; ... \n"
const COMMENT uint = 3

// NUMBER signals a (possibly signed) decimal integer
const NUMBER uint = 4

// IDENTIFIER signals a mnemonic or register name
const IDENTIFIER uint = 5

// KEYWORD_EXIT signals the sentinel which truncates a program.  The token
// covers the keyword and everything after it.
const KEYWORD_EXIT uint = 6

// EXIT_KEYWORD is the sentinel which, at the start of a line, causes all
// remaining text to be ignored.
const EXIT_KEYWORD = "EXIT"

// Rule for describing whitespace
var whitespace = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\r')))

// Rule for describing numbers, with an optional leading sign.
var (
	digit  = lex.Within('0', '9')
	sign   = lex.Or(lex.Unit('-'), lex.Unit('+'))
	number = lex.Or(
		lex.SequenceNullableLast(sign, digit, lex.Many(digit)),
		lex.SequenceNullableLast(digit, lex.Many(digit)),
	)
)

var identifierStart = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers
var identifier = lex.And(identifierStart, identifierRest)

// Comments start with ';' and continue until a newline or EOF.
var comment = lex.SequenceNullableLast(lex.Unit(';'), lex.Until('\n'))

// The exit sentinel swallows the remainder of the input.
var exit = lex.SequenceNullableLast(lex.String(EXIT_KEYWORD), lex.Rest[rune]())

// lexing rules
var rules = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(lex.Unit('\n'), NEWLINE),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(number, NUMBER),
	lex.Rule(exit, KEYWORD_EXIT),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Lex a given source file into a sequence of zero or more tokens, along with
// any syntax errors arising.  Whitespace and comments are discarded, but
// newlines are retained since instructions are line oriented.
func Lex(srcfile *source.File) ([]lex.Token, []source.SyntaxError) {
	tokens, err := lex.Tokenise(srcfile, rules, WHITESPACE, COMMENT)
	//
	if err != nil {
		return nil, []source.SyntaxError{*err}
	}
	//
	return tokens, nil
}
