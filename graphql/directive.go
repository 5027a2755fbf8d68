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

import "fmt"

// A Directive conditionally includes, skips, or annotates a field based on a
// variable's runtime value.
// https://graphql.github.io/graphql-spec/June2018/#sec-Language.Directives
type Directive struct {
	kind DirectiveKind
	v    Variable
}

// DirectiveKind is one of the directives a field may carry.
type DirectiveKind int

// Directive kinds.
const (
	DeprecatedDirective DirectiveKind = iota
	IncludeDirective
	SkipDirective
)

// String returns the directive's name without the leading "@".
func (kind DirectiveKind) String() string {
	switch kind {
	case DeprecatedDirective:
		return "deprecated"
	case IncludeDirective:
		return "include"
	case SkipDirective:
		return "skip"
	default:
		return fmt.Sprintf("DirectiveKind(%d)", int(kind))
	}
}

// Deprecated returns a @deprecated directive whose reason is the given variable.
func Deprecated(reason Variable) Directive {
	return Directive{kind: DeprecatedDirective, v: reason}
}

// Include returns an @include directive conditioned on the given variable.
func Include(cond Variable) Directive {
	return Directive{kind: IncludeDirective, v: cond}
}

// Skip returns a @skip directive conditioned on the given variable.
func Skip(cond Variable) Directive {
	return Directive{kind: SkipDirective, v: cond}
}

// Kind returns which directive d is.
func (d Directive) Kind() DirectiveKind {
	return d.kind
}

// Variable returns the variable d is bound to.
func (d Directive) Variable() Variable {
	return d.v
}

// String renders the directive, like "@include(if: $withID)".
func (d Directive) String() string {
	p := new(printer)
	p.directive(d)
	return p.String()
}

func (d Directive) writeNode(p *printer) {
	p.directive(d)
}
