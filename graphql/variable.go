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
	"strings"

	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-query/internal/gqlang"
)

// Variable is a named reference to a variable defined on the operation.
// https://graphql.github.io/graphql-spec/June2018/#sec-Language.Variables
type Variable struct {
	Key string
}

// Var returns a Variable with the given key.
func Var(key string) Variable {
	return Variable{Key: key}
}

// String returns "$" followed by the key.
func (v Variable) String() string {
	return "$" + v.Key
}

// VariableDefinition declares a variable on a named operation. Type is the
// GraphQL type name and is not validated. The default value is sent in the
// variables section of the request.
type VariableDefinition struct {
	Key          string
	Type         string
	NotNullable  bool
	DefaultValue Value
}

// NewVariableDefinition returns a variable definition whose default value is
// converted from a Go value as if by ValueOf.
func NewVariableDefinition(key, typ string, notNullable bool, defaultValue interface{}) (VariableDefinition, error) {
	v, err := ValueOf(defaultValue)
	if err != nil {
		return VariableDefinition{}, xerrors.Errorf("new variable definition $%s: %w", key, err)
	}
	return VariableDefinition{
		Key:          key,
		Type:         typ,
		NotNullable:  notNullable,
		DefaultValue: v,
	}, nil
}

// Variable returns a reference to the defined variable.
func (def VariableDefinition) Variable() Variable {
	return Variable{Key: def.Key}
}

// String returns the declaration form of the definition, like "$count: Int!".
func (def VariableDefinition) String() string {
	p := new(printer)
	p.variableDefinition(def)
	return p.String()
}

func (def VariableDefinition) writeNode(p *printer) {
	p.variableDefinition(def)
}

// valueString returns the definition's entry in the variables section, like
// `"count": 10`.
func (def VariableDefinition) valueString() string {
	sb := new(strings.Builder)
	sb.WriteString(gqlang.Quote(def.Key))
	sb.WriteString(": ")
	writeValue(sb, def.DefaultValue)
	return sb.String()
}
