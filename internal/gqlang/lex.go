// Copyright 2019 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package gqlang

import (
	"strings"
)

// Condense collapses every run of insignificant characters (spaces, tabs, line
// terminators, and commas) outside of string literals into a single space.
// String literals are copied verbatim.
// https://graphql.github.io/graphql-spec/June2018/#sec-Source-Text.Ignored-Tokens
func Condense(src string) string {
	return condense(src, true)
}

// CondenseWhitespace is like Condense, but commas are kept. It is suitable for
// JSON-like text where commas are significant.
func CondenseWhitespace(src string) string {
	return condense(src, false)
}

// StripCommas removes commas outside of string literals without touching
// whitespace.
func StripCommas(src string) string {
	l := &lexer{input: src}
	sb := new(strings.Builder)
	sb.Grow(len(src))
	for len(l.input) > 0 {
		switch c := l.input[0]; {
		case c == '"':
			sb.WriteString(l.simpleString())
		case c == ',':
			l.consume(1)
		default:
			sb.WriteString(l.consume(1))
		}
	}
	return sb.String()
}

func condense(src string, commas bool) string {
	l := &lexer{input: src, commas: commas}
	sb := new(strings.Builder)
	sb.Grow(len(src))
	for len(l.input) > 0 {
		switch c := l.input[0]; {
		case l.isIgnored(c):
			l.skipIgnored()
			sb.WriteByte(' ')
		case c == '"':
			sb.WriteString(l.simpleString())
		default:
			sb.WriteString(l.consume(1))
		}
	}
	return sb.String()
}

type lexer struct {
	input string

	// commas reports whether commas are treated as ignored characters.
	commas bool
}

func (l *lexer) isIgnored(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	case ',':
		return l.commas
	default:
		return false
	}
}

// skipIgnored skips a run of ignored characters.
func (l *lexer) skipIgnored() {
	for len(l.input) > 0 && l.isIgnored(l.input[0]) {
		l.consume(1)
	}
}

// simpleString consumes a quoted string, including its quotes. An
// unterminated string runs to the end of the input.
func (l *lexer) simpleString() string {
	for n := 1; n < len(l.input); n++ {
		switch l.input[n] {
		case '\\':
			n++
		case '"':
			return l.consume(n + 1)
		}
	}
	return l.consume(len(l.input))
}

func (l *lexer) consume(n int) string {
	if n > len(l.input) {
		n = len(l.input)
	}
	s := l.input[:n]
	l.input = l.input[n:]
	return s
}
