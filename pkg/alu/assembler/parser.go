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
	"fmt"
	"strconv"

	"github.com/consensys/go-alu/pkg/alu"
	"github.com/consensys/go-alu/pkg/util/source"
	"github.com/consensys/go-alu/pkg/util/source/lex"
)

// Listing is the result of assembling a source file.  It retains the mapping
// from instruction indices back to their originating text so that errors
// arising later (e.g. during analysis) can be reported against the source.
type Listing struct {
	Program   alu.Program
	SourceMap source.Map[uint]
}

// Parse accepts a given source file representing an ALU program, and assembles
// it into an instruction sequence which can then be executed.  Each non-blank
// line holds exactly one instruction, and a line starting with the EXIT
// keyword terminates the program.
func Parse(srcfile *source.File) (Listing, []source.SyntaxError) {
	return NewParser(srcfile).Parse()
}

// ParseString is a convenience function for parsing programs held in memory.
func ParseString(name string, text string) (Listing, []source.SyntaxError) {
	return Parse(source.NewSourceFile(name, []byte(text)))
}

// Parser is a parser for ALU programs.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Source mapping
	srcmap *source.Map[uint]
	// Position within the tokens
	index int
}

// NewParser constructs a new parser for a given source file.
func NewParser(srcfile *source.File) *Parser {
	srcmap := source.NewSourceMap[uint](*srcfile)
	//
	return &Parser{srcfile, nil, srcmap, 0}
}

// Parse the given source file into a sequence of zero or more instructions
// and/or some number of syntax errors.
func (p *Parser) Parse() (Listing, []source.SyntaxError) {
	var (
		code   []alu.Instruction
		insn   alu.Instruction
		errors []source.SyntaxError
	)
	// Convert source file into tokens
	if p.tokens, errors = Lex(p.srcfile); len(errors) > 0 {
		return Listing{}, errors
	}
	// Continue going until all consumed
	for {
		// Skip blank lines
		for p.match(NEWLINE) {
		}
		//
		if p.lookahead().Kind == END_OF || p.lookahead().Kind == KEYWORD_EXIT {
			break
		}
		//
		start := p.index
		//
		if insn, errors = p.parseInstruction(); len(errors) > 0 {
			return Listing{}, errors
		}
		//
		p.srcmap.Put(uint(len(code)), p.spanOf(start, p.index-1))
		code = append(code, insn)
		// Instructions must be terminated by the end of a line (or file).
		if errors = p.parseEndOfLine(); len(errors) > 0 {
			return Listing{}, errors
		}
	}
	//
	return Listing{alu.NewProgram(code...), *p.srcmap}, nil
}

func (p *Parser) parseInstruction() (alu.Instruction, []source.SyntaxError) {
	var (
		mnemonic = p.lookahead()
		dst      alu.Variable
		src      alu.Argument
		errs     []source.SyntaxError
	)
	//
	if _, errs = p.expect(IDENTIFIER, "expected instruction"); len(errs) > 0 {
		return nil, errs
	}
	//
	name := p.string(mnemonic)
	// Check mnemonic is known *before* parsing any operands.
	if name != "inp" && alu.NewBinary(name, dst, src) == nil {
		return nil, p.syntaxErrors(mnemonic, fmt.Sprintf("unknown instruction \"%s\"", name))
	} else if dst, errs = p.parseRegister(); len(errs) > 0 {
		return nil, errs
	} else if name == "inp" {
		// Input instructions take only one operand
		return &alu.Inp{Dst: dst}, nil
	} else if src, errs = p.parseArgument(); len(errs) > 0 {
		return nil, errs
	}
	//
	return alu.NewBinary(name, dst, src), nil
}

func (p *Parser) parseRegister() (alu.Variable, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	switch lookahead.Kind {
	case IDENTIFIER:
		p.index++
		//
		if v, ok := alu.ParseVariable(p.string(lookahead)); ok {
			return v, nil
		}
		//
		return 0, p.syntaxErrors(lookahead, fmt.Sprintf("unknown register \"%s\"", p.string(lookahead)))
	case NEWLINE, END_OF:
		return 0, p.syntaxErrors(p.previous(), "missing operand")
	default:
		return 0, p.syntaxErrors(lookahead, "expected register")
	}
}

func (p *Parser) parseArgument() (alu.Argument, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	switch lookahead.Kind {
	case NUMBER:
		p.index++
		//
		value, err := strconv.ParseInt(p.string(lookahead), 10, 64)
		if err != nil {
			return alu.Argument{}, p.syntaxErrors(lookahead, "invalid integer literal")
		}
		//
		return alu.Literal(value), nil
	case NEWLINE, END_OF:
		return alu.Argument{}, p.syntaxErrors(p.previous(), "missing operand")
	default:
		v, errs := p.parseRegister()
		return alu.Register(v), errs
	}
}

func (p *Parser) parseEndOfLine() []source.SyntaxError {
	lookahead := p.lookahead()
	//
	switch lookahead.Kind {
	case END_OF:
		return nil
	case NEWLINE:
		p.index++
		return nil
	default:
		return p.syntaxErrors(lookahead, "too many operands")
	}
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	start, end := token.Span.Start(), token.Span.End()
	return string(p.srcfile.Contents()[start:end])
}

// Lookahead returns the next token.  This must exist because EOF is always
// appended at the end of the token stream.
func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Previous returns the most recently consumed token.
func (p *Parser) previous() lex.Token {
	return p.tokens[max(0, p.index-1)]
}

// Expect returns an error if the next token is not what was expected.
func (p *Parser) expect(kind uint, msg string) (lex.Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		return lookahead, p.syntaxErrors(lookahead, msg)
	}
	//
	p.index++
	//
	return lookahead, nil
}

// Match attempts to match the given token.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

func (p *Parser) spanOf(firstToken, lastToken int) source.Span {
	start := p.tokens[firstToken].Span.Start()
	end := p.tokens[lastToken].Span.End()
	//
	return source.NewSpan(start, end)
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}
