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
	"fmt"
	"strings"

	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-query/internal/gqlang"
)

// Mode selects how a node or document is rendered.
type Mode int

// Output modes.
const (
	// Pretty renders with newlines, tab indentation, and commas between
	// sibling fields.
	Pretty Mode = iota
	// Compact renders the same text as Pretty with insignificant commas
	// removed and whitespace runs collapsed to a single space.
	Compact
	// Encoded renders Compact text percent-encoded for use in a URL query.
	Encoded
)

// String returns the lowercase name of the mode.
func (mode Mode) String() string {
	switch mode {
	case Pretty:
		return "pretty"
	case Compact:
		return "compact"
	case Encoded:
		return "encoded"
	default:
		return fmt.Sprintf("Mode(%d)", int(mode))
	}
}

// ParseMode returns the mode with the given name, as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "pretty":
		return Pretty, nil
	case "compact":
		return Compact, nil
	case "encoded":
		return Encoded, nil
	default:
		return 0, xerrors.Errorf("unknown output mode %q", s)
	}
}

// A Node is any part of a document that can be rendered: a Value, Argument,
// Directive, VariableDefinition, Field, *Fragment, *Operation, or *Document.
type Node interface {
	fmt.Stringer
	writeNode(p *printer)
}

// Render renders n in the given mode. Fragments render as their definition and
// variable definitions render in their declaration form. Rendering a *Document
// is the same as calling its Stringify method. Unknown modes render as Pretty.
func Render(n Node, mode Mode) string {
	if doc, ok := n.(*Document); ok {
		return doc.Stringify(mode)
	}
	p := new(printer)
	n.writeNode(p)
	switch mode {
	case Compact:
		return gqlang.Condense(p.String())
	case Encoded:
		return gqlang.Escape(gqlang.Condense(p.String()))
	default:
		return p.String()
	}
}

// printer accumulates the pretty form of a tree. Every other mode is derived
// from this text by post-processing.
type printer struct {
	strings.Builder
}

func (p *printer) value(v Value) {
	writeValue(&p.Builder, v)
}

func (p *printer) indent(depth int) {
	for i := 0; i < depth; i++ {
		p.WriteByte('\t')
	}
}

func (p *printer) argument(arg Argument) {
	p.WriteString(arg.Key)
	p.WriteString(": ")
	p.value(arg.Value)
}

func (p *printer) directive(d Directive) {
	switch d.kind {
	case DeprecatedDirective:
		p.WriteString("@deprecated(reason: $")
	case IncludeDirective:
		p.WriteString("@include(if: $")
	case SkipDirective:
		p.WriteString("@skip(if: $")
	default:
		panic("unknown directive kind")
	}
	p.WriteString(d.v.Key)
	p.WriteByte(')')
}

func (p *printer) variableDefinition(def VariableDefinition) {
	p.WriteByte('$')
	p.WriteString(def.Key)
	p.WriteString(": ")
	p.WriteString(def.Type)
	if def.NotNullable {
		p.WriteByte('!')
	}
}

// field writes f indented to depth. Selections are written one level deeper,
// subfields before fragment spreads.
func (p *printer) field(f Field, depth int) {
	p.indent(depth)
	if f.alias != "" {
		p.WriteString(f.alias)
		p.WriteString(": ")
	}
	p.WriteString(f.name)
	if len(f.args) > 0 {
		p.WriteByte('(')
		for i, arg := range f.args {
			if i > 0 {
				p.WriteString(", ")
			}
			p.argument(arg)
		}
		p.WriteByte(')')
	}
	if len(f.directives) > 0 {
		p.WriteByte(' ')
		for i, d := range f.directives {
			if i > 0 {
				p.WriteString(", ")
			}
			p.directive(d)
		}
	}
	if f.IsLeaf() {
		return
	}
	p.WriteString(" {\n")
	p.selections(f.subFields, f.fragments, depth+1)
	p.WriteByte('\n')
	p.indent(depth)
	p.WriteByte('}')
}

// selections writes fields followed by fragment spreads, one per line,
// separated by commas.
func (p *printer) selections(fields []Field, spreads []*Fragment, depth int) {
	for i, f := range fields {
		if i > 0 {
			p.WriteString(",\n")
		}
		p.field(f, depth)
	}
	for i, frag := range spreads {
		if i > 0 || len(fields) > 0 {
			p.WriteString(",\n")
		}
		p.fragmentSpread(frag, depth)
	}
}

func (p *printer) fragmentSpread(frag *Fragment, depth int) {
	p.indent(depth)
	p.WriteString("...")
	p.WriteString(frag.name)
}

func (p *printer) fragmentDefinition(frag *Fragment) {
	p.WriteString("fragment ")
	p.WriteString(frag.name)
	p.WriteString(" on ")
	p.WriteString(frag.typ)
	p.WriteString(" {\n")
	p.selections(frag.fields, nil, 1)
	p.WriteString("\n}")
}

// operation writes op's signature and body. Anonymous queries use the
// shorthand form; anonymous mutations keep their keyword, since the shorthand
// always denotes a query.
func (p *printer) operation(op *Operation) {
	if op.IsAnonymous() && op.mutation {
		p.WriteString("mutation ")
	}
	if !op.IsAnonymous() {
		if op.mutation {
			p.WriteString("mutation ")
		} else {
			p.WriteString("query ")
		}
		p.WriteString(op.name)
		if len(op.varDefs) > 0 {
			p.WriteByte('(')
			for i, def := range op.varDefs {
				if i > 0 {
					p.WriteString(", ")
				}
				p.variableDefinition(def)
			}
			p.WriteByte(')')
		}
		p.WriteByte(' ')
	}
	p.WriteString("{\n")
	p.selections(op.fields, nil, 1)
	p.WriteString("\n}")
}

// variables writes the variables section: a JSON-like object with one entry
// per definition, in declaration order.
func (p *printer) variables(defs []VariableDefinition) {
	p.WriteString("{\n")
	for i, def := range defs {
		if i > 0 {
			p.WriteString(",\n")
		}
		p.WriteByte('\t')
		p.WriteString(def.valueString())
	}
	p.WriteString("\n}")
}

func (v Value) writeNode(p *printer) {
	p.value(v)
}
