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

import "strings"

const upperhex = "0123456789ABCDEF"

// Escape percent-encodes s for use as a URL query parameter value. The
// unreserved characters of RFC 3986 and the sub-delimiters that are safe
// inside a query value (! $ ' ( ) * , : @ / ?) are left as-is. The
// parameter delimiters & ; = + are escaped, as is every byte of a multi-byte
// UTF-8 sequence.
func Escape(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !shouldEscape(s[i]) {
			continue
		}
		n++
	}
	if n == 0 {
		return s
	}
	sb := new(strings.Builder)
	sb.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !shouldEscape(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&15])
	}
	return sb.String()
}

// shouldEscape reports whether c must be percent-encoded in a query value.
// https://tools.ietf.org/html/rfc3986#section-2.3
func shouldEscape(c byte) bool {
	if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
		return false
	}
	switch c {
	case '-', '.', '_', '~':
		return false
	case '!', '$', '\'', '(', ')', '*', ',', ':', '@', '/', '?':
		return false
	default:
		return true
	}
}
