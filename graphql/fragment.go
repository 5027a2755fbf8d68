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

// A Fragment is a named, reusable selection of fields on a type. A fragment is
// spread into fields by name and defined once on the Document. Fragments are
// compared by identity: two separately constructed fragments are distinct even
// if they are structurally equal.
// https://graphql.github.io/graphql-spec/June2018/#sec-Language.Fragments
type Fragment struct {
	name   string
	typ    string
	fields []Field
}

// NewFragment returns a new fragment named name on the given type.
func NewFragment(name, typ string, fields ...Field) *Fragment {
	return &Fragment{
		name:   name,
		typ:    typ,
		fields: append([]Field(nil), fields...),
	}
}

// Name returns the fragment's name.
func (frag *Fragment) Name() string {
	return frag.name
}

// Type returns the name of the type the fragment applies to.
func (frag *Fragment) Type() string {
	return frag.typ
}

// Fields returns a copy of the fragment's fields.
func (frag *Fragment) Fields() []Field {
	return append([]Field(nil), frag.fields...)
}

// WithFields returns a new fragment with the fields appended. The receiver is
// not modified.
func (frag *Fragment) WithFields(fields ...Field) *Fragment {
	return &Fragment{
		name:   frag.name,
		typ:    frag.typ,
		fields: append(frag.fields[:len(frag.fields):len(frag.fields)], fields...),
	}
}

// String renders the fragment's definition in the pretty format.
func (frag *Fragment) String() string {
	p := new(printer)
	p.fragmentDefinition(frag)
	return p.String()
}

func (frag *Fragment) writeNode(p *printer) {
	p.fragmentDefinition(frag)
}
