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
	"strconv"
	"strings"

	"github.com/consensys/go-alu/pkg/util/source"
)

// ExtractSyntaxError extracts the syntax error described on a given line of a
// source file, which takes the form ";;error:LINE:START-END:MESSAGE".  Columns
// are numbered from 1, and the end column is exclusive.
func ExtractSyntaxError(lineno int, lines []source.Line, srcfile *source.File) (bool, source.SyntaxError, error) {
	var (
		line     = lines[lineno]
		contents = line.String()
	)
	//
	if !strings.HasPrefix(contents, ";;error") {
		return false, source.SyntaxError{}, nil
	}
	//
	target, start, end, msg, err := parseExpectedErrorLine(contents)
	if err != nil {
		return true, source.SyntaxError{}, err
	}
	//
	span, err := determineFileSpan(target, start, end, lines)
	//
	return true, *srcfile.SyntaxError(span, msg), err
}

// ExtractSolution extracts the expected extreme model numbers described on a
// given line of a source file, which takes the form ";;solution:MAX:MIN".
func ExtractSolution(lineno int, lines []source.Line, _ *source.File) (bool, [2]string, error) {
	var contents = lines[lineno].String()
	//
	if !strings.HasPrefix(contents, ";;solution") {
		return false, [2]string{}, nil
	}
	//
	splits := strings.Split(contents, ":")
	if len(splits) != 3 {
		return true, [2]string{}, fmt.Errorf("malformed solution \"%s\", should be e.g. \";;solution:X:Y\"", contents)
	}
	//
	return true, [2]string{splits[1], splits[2]}, nil
}

func parseExpectedErrorLine(contents string) (line, start, end int, msg string, err error) {
	var splits = strings.Split(contents, ":")
	//
	if len(splits) < 4 {
		return 0, 0, 0, "", fmt.Errorf("malformed expected error \"%s\", should be e.g. \";;error:X:Y-Z:msg\"", contents)
	}
	//
	if line, err = strconv.Atoi(splits[1]); err != nil {
		return 0, 0, 0, "", fmt.Errorf("invalid span \"%s:%s\" (%s)", splits[1], splits[2], err.Error())
	} else if line == 0 {
		return 0, 0, 0, "", fmt.Errorf("invalid span \"%s:%s\" (lines numbered from 1)", splits[1], splits[2])
	}
	//
	if start, end, err = parseExpectedErrorSpan(splits[2]); err != nil {
		return 0, 0, 0, "", err
	}
	// Messages may themselves contain colons
	msg = strings.Join(splits[3:], ":")
	//
	return line, start, end, msg, nil
}

func parseExpectedErrorSpan(text string) (start, end int, err error) {
	var splits = strings.Split(text, "-")
	//
	if len(splits) != 2 {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (malformed, should be X-Y)", text)
	}
	//
	if start, err = strconv.Atoi(splits[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (%s)", text, err.Error())
	} else if start == 0 {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (columns numbered from 1)", text)
	}
	//
	if end, err = strconv.Atoi(splits[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (%s)", text, err.Error())
	} else if end < start {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (ends before it starts)", text)
	}
	//
	return start, end, nil
}

// Determine the file span corresponding to a given line and column range.
func determineFileSpan(lineno, start, end int, lines []source.Line) (source.Span, error) {
	if lineno > len(lines) {
		return source.Span{}, fmt.Errorf("invalid span \"%d:%d-%d\" (non-existent line)", lineno, start, end)
	}
	//
	line := lines[lineno-1]
	// Columns are numbered from 1
	start--
	end--
	//
	if start > line.Length() || end > line.Length() {
		return source.Span{}, fmt.Errorf("invalid span \"%d:%d-%d\" (overflows to following line)", lineno, start, end)
	}
	//
	return source.NewSpan(start+line.Start(), end+line.Start()), nil
}

// ErrorToString converts a syntax error into a human readable string, giving
// its line and column range.
func ErrorToString(err source.SyntaxError) string {
	var (
		span       = err.Span()
		line       = err.FirstEnclosingLine()
		lineOffset = span.Start() - line.Start()
		length     = min(line.Length()-lineOffset, span.Length())
	)
	//
	return fmt.Sprintf("%s:%d:%d-%d %s", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
}
