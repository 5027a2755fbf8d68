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

	"zombiezen.com/go/graphql-query/internal/gqlang"
)

// Parameter names used by Parameterize and by the Encoded form of Stringify.
const (
	QueryParam         = "query"
	OperationNameParam = "operationName"
	VariablesParam     = "variables"
)

// Document is the unit sent to a GraphQL server: one operation plus the
// definitions of the fragments it spreads. A Document is safe to render from
// multiple goroutines.
// https://graphql.github.io/graphql-spec/June2018/#sec-Language.Document
type Document struct {
	op        *Operation
	fragments []*Fragment
}

// NewDocument returns a document for the given operation. The fragments are
// registered as if by WithFragments.
func NewDocument(op *Operation, fragments ...*Fragment) *Document {
	doc := &Document{op: op}
	return doc.WithFragments(fragments...)
}

// Operation returns the document's operation.
func (doc *Document) Operation() *Operation {
	return doc.op
}

// Fragments returns a copy of the registered fragments in registration order.
func (doc *Document) Fragments() []*Fragment {
	return append([]*Fragment(nil), doc.fragments...)
}

// WithFragments returns a new document with the fragments registered after the
// existing ones. A fragment that is already registered (the same pointer) is
// not registered again.
func (doc *Document) WithFragments(fragments ...*Fragment) *Document {
	doc2 := &Document{
		op:        doc.op,
		fragments: doc.fragments[:len(doc.fragments):len(doc.fragments)],
	}
	for _, frag := range fragments {
		if frag == nil || doc2.hasFragment(frag) {
			continue
		}
		doc2.fragments = append(doc2.fragments, frag)
	}
	return doc2
}

func (doc *Document) hasFragment(frag *Fragment) bool {
	for _, f := range doc.fragments {
		if f == frag {
			return true
		}
	}
	return false
}

func (doc *Document) hasFragmentNamed(name string) bool {
	for _, f := range doc.fragments {
		if f.name == name {
			return true
		}
	}
	return false
}

// CollectFragments returns a new document with every fragment spread in the
// operation registered. Fragments spread inside fragment definitions are
// collected too. Newly found fragments are appended in the order they are
// first encountered; a fragment whose name is already registered is skipped.
func (doc *Document) CollectFragments() *Document {
	c := &fragmentCollector{
		doc: &Document{
			op:        doc.op,
			fragments: doc.fragments[:len(doc.fragments):len(doc.fragments)],
		},
		visited: make(map[*Fragment]bool),
	}
	for _, frag := range doc.fragments {
		c.fragment(frag)
	}
	c.fields(doc.op.fields)
	return c.doc
}

type fragmentCollector struct {
	doc     *Document
	visited map[*Fragment]bool
}

func (c *fragmentCollector) fields(fields []Field) {
	for _, f := range fields {
		c.fields(f.subFields)
		for _, frag := range f.fragments {
			if frag == nil || c.visited[frag] {
				continue
			}
			if !c.doc.hasFragmentNamed(frag.name) {
				c.doc.fragments = append(c.doc.fragments, frag)
			}
			c.fragment(frag)
		}
	}
}

func (c *fragmentCollector) fragment(frag *Fragment) {
	if c.visited[frag] {
		return
	}
	c.visited[frag] = true
	c.fields(frag.fields)
}

// String returns doc.Stringify(Pretty).
func (doc *Document) String() string {
	return doc.Stringify(Pretty)
}

func (doc *Document) writeNode(p *printer) {
	p.WriteString(doc.Stringify(Pretty))
}

// Stringify renders the document as a single string.
//
// In Pretty mode, the result is the operation, each fragment definition
// separated by a blank line, and, if the operation defines variables, a blank
// line followed by the variables section. Compact mode renders the same
// content with insignificant commas removed and whitespace collapsed, so the
// variables section follows the query after a single space. Encoded mode
// renders a URL query string of the form
// "query=...&operationName=...&variables=...", where operationName is present
// only for named operations and variables only if variables are defined.
//
// Unknown modes render as Pretty.
func (doc *Document) Stringify(mode Mode) string {
	switch mode {
	case Compact:
		query := doc.query(Compact)
		if vars, ok := doc.variables(Compact); ok {
			return query + " " + vars
		}
		return query
	case Encoded:
		sb := new(strings.Builder)
		sb.WriteString(QueryParam)
		sb.WriteByte('=')
		sb.WriteString(doc.query(Encoded))
		if name, ok := doc.operationName(Encoded); ok {
			sb.WriteByte('&')
			sb.WriteString(OperationNameParam)
			sb.WriteByte('=')
			sb.WriteString(name)
		}
		if vars, ok := doc.variables(Encoded); ok {
			sb.WriteByte('&')
			sb.WriteString(VariablesParam)
			sb.WriteByte('=')
			sb.WriteString(vars)
		}
		return sb.String()
	default:
		query := doc.query(Pretty)
		if vars, ok := doc.variables(Pretty); ok {
			return query + "\n\n" + vars
		}
		return query
	}
}

// Parameterize renders the document as request parameters. The "query" key is
// always present, "operationName" is present only if the operation is named,
// and "variables" is present only if the operation defines variables. Each
// value is rendered in the given mode; in Encoded mode each value is
// percent-encoded on its own.
func (doc *Document) Parameterize(mode Mode) map[string]string {
	params := map[string]string{
		QueryParam: doc.query(mode),
	}
	if name, ok := doc.operationName(mode); ok {
		params[OperationNameParam] = name
	}
	if vars, ok := doc.variables(mode); ok {
		params[VariablesParam] = vars
	}
	return params
}

// query renders the operation followed by the registered fragment definitions.
func (doc *Document) query(mode Mode) string {
	p := new(printer)
	p.operation(doc.op)
	for _, frag := range doc.fragments {
		p.WriteString("\n\n")
		p.fragmentDefinition(frag)
	}
	switch mode {
	case Compact:
		return gqlang.Condense(p.String())
	case Encoded:
		return gqlang.Escape(gqlang.Condense(p.String()))
	default:
		return p.String()
	}
}

func (doc *Document) operationName(mode Mode) (string, bool) {
	if doc.op.IsAnonymous() {
		return "", false
	}
	if mode == Encoded {
		return gqlang.Escape(doc.op.name), true
	}
	return doc.op.name, true
}

// variables renders the variables section. Its commas are significant, so
// only whitespace is condensed.
func (doc *Document) variables(mode Mode) (string, bool) {
	if len(doc.op.varDefs) == 0 {
		return "", false
	}
	p := new(printer)
	p.variables(doc.op.varDefs)
	switch mode {
	case Compact:
		return gqlang.CondenseWhitespace(p.String()), true
	case Encoded:
		return gqlang.Escape(gqlang.CondenseWhitespace(p.String())), true
	default:
		return p.String(), true
	}
}
