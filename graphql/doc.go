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

/*
Package graphql builds GraphQL request documents and renders them as text.
Documents are assembled from immutable values: fields, arguments, directives,
fragments, and variable definitions, combined into an Operation and then a
Document. This package follows the specification laid out at
https://graphql.github.io/graphql-spec/June2018/

For sending documents over HTTP, see the graphqlhttp package in this module.

Rendering

A Document renders in one of three modes. Pretty is indented with tabs and
meant for people. Compact is the same text with insignificant commas and
whitespace collapsed. Encoded is Compact text percent-encoded for a URL query.
Stringify returns the whole document as one string; Parameterize returns the
"query", "operationName", and "variables" request parameters separately.

Rendering is deterministic: the same document always produces the same bytes.
Arguments, fields, and object literal fields keep the order they were given in.

Fragments

A fragment spread into a field is only referenced by name. The fragment's
definition is sent only if it is registered on the Document, either by passing
it to NewDocument or WithFragments or by calling CollectFragments.

Rendering does not check the document. Validate reports undefined or unused
variables, unregistered or unused fragments, and fragment cycles.

Values

Go values are converted to GraphQL input values by ValueOf, trying the
following in order:

	1) Call a method named IsGraphQLNull if present. If it returns true, then
	convert to null.

	2) Call a method named GraphQLEnum if present and convert to an enum.

	3) Examine the Go type and convert to the matching scalar, list, or object.
*/
package graphql
