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

// Package gqlang provides lexical helpers for producing GraphQL source text:
// literal formatting, insignificant-character condensation, and
// percent-encoding for transport.
package gqlang

import (
	"math"
	"strconv"
	"strings"
)

// Quote returns s as a GraphQL string literal. Only backslash, double quote,
// tab, and newline are escaped; every other character, including non-ASCII
// runes, is copied verbatim.
// https://graphql.github.io/graphql-spec/June2018/#sec-String-Value
func Quote(s string) string {
	sb := new(strings.Builder)
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// FormatFloat formats f as a GraphQL float literal. Integral values keep a
// fractional part, so 5 is formatted as "5.0" rather than "5".
// https://graphql.github.io/graphql-spec/June2018/#sec-Float-Value
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}
