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
	"golang.org/x/xerrors"
)

// ErrAnonymousVariables is returned when variable definitions are added to an
// anonymous operation. The server has no operation name to bind them to.
var ErrAnonymousVariables = xerrors.New("anonymous operations cannot define variables")

// Operation is a query or a mutation: a set of fields plus the variables they
// use. An operation with an empty name is anonymous.
// https://graphql.github.io/graphql-spec/June2018/#sec-Language.Operations
type Operation struct {
	name     string
	mutation bool
	varDefs  []VariableDefinition
	fields   []Field
}

// NewQuery returns a query operation with the given name. An empty name
// returns an anonymous query.
func NewQuery(name string, fields ...Field) *Operation {
	return &Operation{
		name:   name,
		fields: append([]Field(nil), fields...),
	}
}

// NewMutation returns a mutation operation with the given name. An empty name
// returns an anonymous mutation.
func NewMutation(name string, fields ...Field) *Operation {
	return &Operation{
		name:     name,
		mutation: true,
		fields:   append([]Field(nil), fields...),
	}
}

// NewAnonymousQuery returns a query without a name. Anonymous operations
// cannot define variables.
func NewAnonymousQuery(fields ...Field) *Operation {
	return NewQuery("", fields...)
}

// NewAnonymousMutation returns a mutation without a name. Anonymous
// operations cannot define variables.
func NewAnonymousMutation(fields ...Field) *Operation {
	return NewMutation("", fields...)
}

// Name returns the operation's name or the empty string if the operation is
// anonymous.
func (op *Operation) Name() string {
	return op.name
}

// IsAnonymous reports whether the operation has no name.
func (op *Operation) IsAnonymous() bool {
	return op.name == ""
}

// IsMutation reports whether the operation is a mutation.
func (op *Operation) IsMutation() bool {
	return op.mutation
}

// VariableDefinitions returns a copy of the operation's variable definitions
// in declaration order.
func (op *Operation) VariableDefinitions() []VariableDefinition {
	return append([]VariableDefinition(nil), op.varDefs...)
}

// Fields returns a copy of the operation's top-level fields.
func (op *Operation) Fields() []Field {
	return append([]Field(nil), op.fields...)
}

// WithFields returns a new operation with the fields appended.
func (op *Operation) WithFields(fields ...Field) *Operation {
	op2 := *op
	op2.fields = append(op.fields[:len(op.fields):len(op.fields)], fields...)
	return &op2
}

// WithVariableDefinitions returns a new operation with the definitions
// appended. It returns ErrAnonymousVariables if op is anonymous.
func (op *Operation) WithVariableDefinitions(defs ...VariableDefinition) (*Operation, error) {
	if op.IsAnonymous() && len(defs) > 0 {
		return nil, xerrors.Errorf("add variable definitions: %w", ErrAnonymousVariables)
	}
	op2 := *op
	op2.varDefs = append(op.varDefs[:len(op.varDefs):len(op.varDefs)], defs...)
	return &op2, nil
}

// String renders the operation in the pretty format.
func (op *Operation) String() string {
	p := new(printer)
	p.operation(op)
	return p.String()
}

func (op *Operation) writeNode(p *printer) {
	p.operation(op)
}
