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

// Argument is a named parameter passed to a field.
// https://graphql.github.io/graphql-spec/June2018/#sec-Language.Arguments
type Argument struct {
	Key   string
	Value Value
}

// Arg returns an argument with the given value.
func Arg(key string, v Value) Argument {
	return Argument{Key: key, Value: v}
}

// NewArgument returns an argument whose value is converted from a Go value as
// if by ValueOf.
func NewArgument(key string, x interface{}) (Argument, error) {
	v, err := ValueOf(x)
	if err != nil {
		return Argument{}, xerrors.Errorf("new argument %s: %w", key, err)
	}
	return Argument{Key: key, Value: v}, nil
}

// String renders the argument, like "id: 5".
func (arg Argument) String() string {
	p := new(printer)
	p.argument(arg)
	return p.String()
}

func (arg Argument) writeNode(p *printer) {
	p.argument(arg)
}

// A Field is a discrete piece of information requested from the server. It
// may be aliased, take arguments, carry directives, and select subfields and
// fragments.
//
// Fields are immutable: the With methods return a modified copy and never
// modify the receiver, so a Field may be shared between several parents.
// https://graphql.github.io/graphql-spec/June2018/#sec-Language.Fields
type Field struct {
	name       string
	alias      string
	args       []Argument
	directives []Directive
	subFields  []Field
	fragments  []*Fragment
}

// NewField returns a leaf field with the given name.
func NewField(name string) Field {
	return Field{name: name}
}

// Fields returns a leaf field for each name.
func Fields(names ...string) []Field {
	fields := make([]Field, len(names))
	for i, name := range names {
		fields[i] = Field{name: name}
	}
	return fields
}

// Name returns the field's name.
func (f Field) Name() string {
	return f.name
}

// Alias returns the field's alias or the empty string if it has none.
func (f Field) Alias() string {
	return f.alias
}

// Arguments returns a copy of the field's arguments in declaration order.
func (f Field) Arguments() []Argument {
	return append([]Argument(nil), f.args...)
}

// Directives returns a copy of the field's directives.
func (f Field) Directives() []Directive {
	return append([]Directive(nil), f.directives...)
}

// SubFields returns a copy of the field's subfields.
func (f Field) SubFields() []Field {
	return append([]Field(nil), f.subFields...)
}

// Fragments returns a copy of the fragments spread into the field.
func (f Field) Fragments() []*Fragment {
	return append([]*Fragment(nil), f.fragments...)
}

// IsLeaf reports whether the field selects neither subfields nor fragments.
func (f Field) IsLeaf() bool {
	return len(f.subFields) == 0 && len(f.fragments) == 0
}

// WithAlias returns a copy of f that is returned under the given response key.
func (f Field) WithAlias(alias string) Field {
	f.alias = alias
	return f
}

// WithArguments returns a copy of f with the arguments appended.
func (f Field) WithArguments(args ...Argument) Field {
	f.args = append(f.args[:len(f.args):len(f.args)], args...)
	return f
}

// WithDirectives returns a copy of f with the directives appended.
func (f Field) WithDirectives(directives ...Directive) Field {
	f.directives = append(f.directives[:len(f.directives):len(f.directives)], directives...)
	return f
}

// WithSubFields returns a copy of f with the subfields appended.
func (f Field) WithSubFields(subFields ...Field) Field {
	f.subFields = append(f.subFields[:len(f.subFields):len(f.subFields)], subFields...)
	return f
}

// WithFragments returns a copy of f with the fragments spread into it. The
// fragments must also be registered on the Document, either directly or with
// Document.CollectFragments, for their definitions to be sent. Nil fragments
// are ignored.
func (f Field) WithFragments(fragments ...*Fragment) Field {
	f.fragments = f.fragments[:len(f.fragments):len(f.fragments)]
	for _, frag := range fragments {
		if frag != nil {
			f.fragments = append(f.fragments, frag)
		}
	}
	return f
}

// String renders the field and its selections at the top level in the pretty
// format.
func (f Field) String() string {
	p := new(printer)
	p.field(f, 0)
	return p.String()
}

func (f Field) writeNode(p *printer) {
	p.field(f, 0)
}
