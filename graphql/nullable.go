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

package graphql

import (
	"reflect"
	"strconv"

	"zombiezen.com/go/graphql-query/internal/gqlang"
)

// Nullable defines the IsGraphQLNull method. IsGraphQLNull reports whether the
// receiver should be represented in GraphQL as null. ValueOf converts any
// Nullable that reports true to null.
type Nullable interface {
	IsGraphQLNull() bool
}

// valuer is implemented by the Null* types in this package.
type valuer interface {
	graphQLValue() Value
}

func isGraphQLNull(v reflect.Value) bool {
	n, ok := v.Interface().(Nullable)
	if !ok {
		return false
	}
	if isNilPointer(v) {
		return true
	}
	return n.IsGraphQLNull()
}

// NullInt represents an Int that may be null. The zero value is null.
type NullInt struct {
	Int   int64
	Valid bool
}

// IsGraphQLNull returns !n.Valid.
func (n NullInt) IsGraphQLNull() bool {
	return !n.Valid
}

// String returns the decimal representation or "null".
func (n NullInt) String() string {
	if !n.Valid {
		return "null"
	}
	return strconv.FormatInt(n.Int, 10)
}

func (n NullInt) graphQLValue() Value {
	return Int(n.Int)
}

// NullFloat represents a Float that may be null. The zero value is null.
type NullFloat struct {
	Float float64
	Valid bool
}

// IsGraphQLNull returns !n.Valid.
func (n NullFloat) IsGraphQLNull() bool {
	return !n.Valid
}

// String returns the GraphQL float literal or "null".
func (n NullFloat) String() string {
	if !n.Valid {
		return "null"
	}
	return gqlang.FormatFloat(n.Float)
}

func (n NullFloat) graphQLValue() Value {
	return Float(n.Float)
}

// NullString represents a String that may be null. The zero value is null.
type NullString struct {
	S     string
	Valid bool
}

// IsGraphQLNull returns !n.Valid.
func (n NullString) IsGraphQLNull() bool {
	return !n.Valid
}

// String returns n.S or "null".
func (n NullString) String() string {
	if !n.Valid {
		return "null"
	}
	return n.S
}

func (n NullString) graphQLValue() Value {
	return String(n.S)
}

// NullBoolean represents a Boolean that may be null. The zero value is null.
type NullBoolean struct {
	Bool  bool
	Valid bool
}

// IsGraphQLNull returns !n.Valid.
func (n NullBoolean) IsGraphQLNull() bool {
	return !n.Valid
}

// String returns "true", "false", or "null".
func (n NullBoolean) String() string {
	switch {
	case n.Valid && n.Bool:
		return "true"
	case n.Valid && !n.Bool:
		return "false"
	default:
		return "null"
	}
}

func (n NullBoolean) graphQLValue() Value {
	return Boolean(n.Bool)
}
