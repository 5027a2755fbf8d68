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
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-query/internal/gqlang"
)

func TestField_String(t *testing.T) {
	t.Parallel()

	userFields := NewFragment("userFields", "User", Fields("email")...)
	tests := []struct {
		name  string
		field Field
		want  string
	}{
		{
			name:  "Leaf",
			field: NewField("products"),
			want:  "products",
		},
		{
			name:  "NilFragment",
			field: NewField("a").WithFragments(nil),
			want:  "a",
		},
		{
			name:  "NilFragmentAmongSpreads",
			field: NewField("user").WithFragments(nil, userFields, nil),
			want:  "user {\n\t...userFields\n}",
		},
		{
			name:  "Alias",
			field: NewField("products").WithAlias("items"),
			want:  "items: products",
		},
		{
			name:  "ArgumentOrder",
			field: NewField("f").WithArguments(Arg("a", Int(1)), Arg("b", Int(2))),
			want:  "f(a: 1, b: 2)",
		},
		{
			name: "ArgumentOrderNotSorted",
			field: NewField("f").
				WithArguments(Arg("z", String("last"))).
				WithArguments(Arg("a", Enum("FIRST"))),
			want: `f(z: "last", a: FIRST)`,
		},
		{
			name:  "Directive",
			field: NewField("email").WithDirectives(Include(Var("withEmail"))),
			want:  "email @include(if: $withEmail)",
		},
		{
			name: "Directives",
			field: NewField("email").WithDirectives(
				Skip(Var("anonymous")),
				Deprecated(Var("reason")),
			),
			want: "email @skip(if: $anonymous), @deprecated(reason: $reason)",
		},
		{
			name:  "SubFields",
			field: NewField("user").WithSubFields(Fields("id", "name")...),
			want:  "user {\n\tid,\n\tname\n}",
		},
		{
			name:  "FragmentsOnly",
			field: NewField("user").WithFragments(userFields),
			want:  "user {\n\t...userFields\n}",
		},
		{
			name: "Everything",
			field: NewField("user").
				WithAlias("me").
				WithArguments(Arg("id", Int(4)), Arg("name", String("x"))).
				WithDirectives(Include(Var("withUser")), Skip(Var("noUser"))).
				WithSubFields(
					NewField("id"),
					NewField("friends").WithSubFields(NewField("name")),
				).
				WithFragments(userFields),
			want: "me: user(id: 4, name: \"x\") @include(if: $withUser), @skip(if: $noUser) {\n" +
				"\tid,\n" +
				"\tfriends {\n" +
				"\t\tname\n" +
				"\t},\n" +
				"\t...userFields\n" +
				"}",
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(test.want, test.field.String()); diff != "" {
				t.Errorf("String() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	field := NewField("search").
		WithArguments(Arg("text", String("a,  b")), Arg("limit", Int(5))).
		WithSubFields(Fields("id", "title")...)
	frag := NewFragment("titleFields", "Book", Fields("title", "subtitle")...)
	tests := []struct {
		name string
		node Node
		mode Mode
		want string
	}{
		{
			name: "Field/Pretty",
			node: field,
			mode: Pretty,
			want: "search(text: \"a,  b\", limit: 5) {\n\tid,\n\ttitle\n}",
		},
		{
			name: "Field/Compact",
			node: field,
			mode: Compact,
			want: `search(text: "a,  b" limit: 5) { id title }`,
		},
		{
			name: "Field/Encoded",
			node: field,
			mode: Encoded,
			want: "search(text:%20%22a,%20%20b%22%20limit:%205)%20%7B%20id%20title%20%7D",
		},
		{
			name: "Fragment/Pretty",
			node: frag,
			mode: Pretty,
			want: "fragment titleFields on Book {\n\ttitle,\n\tsubtitle\n}",
		},
		{
			name: "Fragment/Compact",
			node: frag,
			mode: Compact,
			want: "fragment titleFields on Book { title subtitle }",
		},
		{
			name: "VariableDefinition",
			node: VariableDefinition{Key: "id", Type: "ID", NotNullable: true},
			mode: Pretty,
			want: "$id: ID!",
		},
		{
			name: "Argument",
			node: Arg("ids", List(Int(1), Int(2))),
			mode: Compact,
			want: "ids: [1 2]",
		},
		{
			name: "Directive",
			node: Include(Var("x")),
			mode: Encoded,
			want: "@include(if:%20$x)",
		},
		{
			name: "Value",
			node: String("\"quoted\""),
			mode: Pretty,
			want: `"\"quoted\""`,
		},
		{
			name: "UnknownModeIsPretty",
			node: NewField("a").WithSubFields(NewField("b")),
			mode: Mode(42),
			want: "a {\n\tb\n}",
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(test.want, Render(test.node, test.mode)); diff != "" {
				t.Errorf("Render(..., %v) (-want +got):\n%s", test.mode, diff)
			}
		})
	}
}

func TestDocument_Stringify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  *Document
		mode Mode
		want string
	}{
		{
			name: "AnonymousQuery/Pretty",
			doc:  NewDocument(NewAnonymousQuery(NewField("products"))),
			mode: Pretty,
			want: "{\n\tproducts\n}",
		},
		{
			name: "AnonymousQuery/Compact",
			doc:  NewDocument(NewAnonymousQuery(NewField("products"))),
			mode: Compact,
			want: "{ products }",
		},
		{
			name: "AnonymousQuery/Encoded",
			doc:  NewDocument(NewAnonymousQuery(NewField("products"))),
			mode: Encoded,
			want: "query=%7B%20products%20%7D",
		},
		{
			name: "NamedQuery/Pretty",
			doc:  productListDocument(t),
			mode: Pretty,
			want: "query ProductList($count: Int) {\n\tproducts\n}\n\nfragment idFragment on Product {\n\tid\n}\n\n{\n\t\"count\": 10\n}",
		},
		{
			name: "NamedQuery/Compact",
			doc:  productListDocument(t),
			mode: Compact,
			want: `query ProductList($count: Int) { products } fragment idFragment on Product { id } { "count": 10 }`,
		},
		{
			name: "NamedQuery/Encoded",
			doc:  productListDocument(t),
			mode: Encoded,
			want: "query=query%20ProductList($count:%20Int)%20%7B%20products%20%7D%20fragment%20idFragment%20on%20Product%20%7B%20id%20%7D" +
				"&operationName=ProductList" +
				"&variables=%7B%20%22count%22:%2010%20%7D",
		},
		{
			name: "NamedQueryWithoutVariables/Encoded",
			doc:  NewDocument(NewQuery("Products", NewField("products"))),
			mode: Encoded,
			want: "query=query%20Products%20%7B%20products%20%7D&operationName=Products",
		},
		{
			name: "AnonymousMutation/Pretty",
			doc:  NewDocument(NewAnonymousMutation(NewField("like").WithArguments(Arg("id", Int(1))))),
			mode: Pretty,
			want: "mutation {\n\tlike(id: 1)\n}",
		},
		{
			name: "Mutation/Pretty",
			doc:  likeDocument(t),
			mode: Pretty,
			want: "mutation Like($id: ID!, $note: String) {\n" +
				"\tlike(id: $id, note: $note) {\n" +
				"\t\tlikes\n" +
				"\t}\n" +
				"}\n" +
				"\n" +
				"{\n" +
				"\t\"id\": null,\n" +
				"\t\"note\": \"first, of  many\"\n" +
				"}",
		},
		{
			name: "Mutation/Compact",
			doc:  likeDocument(t),
			mode: Compact,
			want: `mutation Like($id: ID! $note: String) { like(id: $id note: $note) { likes } } { "id": null, "note": "first, of  many" }`,
		},
		{
			name: "EmptyOperation/Pretty",
			doc:  NewDocument(NewQuery("Empty")),
			mode: Pretty,
			want: "query Empty {\n\n}",
		},
		{
			name: "UnknownMode",
			doc:  NewDocument(NewAnonymousQuery(NewField("products"))),
			mode: Mode(-1),
			want: "{\n\tproducts\n}",
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(test.want, test.doc.Stringify(test.mode)); diff != "" {
				t.Errorf("Stringify(%v) (-want +got):\n%s", test.mode, diff)
			}
		})
	}
}

func TestDocument_Parameterize(t *testing.T) {
	t.Parallel()

	doc := productListDocument(t)
	tests := []struct {
		mode Mode
		want map[string]string
	}{
		{
			mode: Pretty,
			want: map[string]string{
				"query":         "query ProductList($count: Int) {\n\tproducts\n}\n\nfragment idFragment on Product {\n\tid\n}",
				"operationName": "ProductList",
				"variables":     "{\n\t\"count\": 10\n}",
			},
		},
		{
			mode: Compact,
			want: map[string]string{
				"query":         "query ProductList($count: Int) { products } fragment idFragment on Product { id }",
				"operationName": "ProductList",
				"variables":     `{ "count": 10 }`,
			},
		},
		{
			mode: Encoded,
			want: map[string]string{
				"query":         "query%20ProductList($count:%20Int)%20%7B%20products%20%7D%20fragment%20idFragment%20on%20Product%20%7B%20id%20%7D",
				"operationName": "ProductList",
				"variables":     "%7B%20%22count%22:%2010%20%7D",
			},
		},
	}
	for _, test := range tests {
		if diff := cmp.Diff(test.want, doc.Parameterize(test.mode)); diff != "" {
			t.Errorf("Parameterize(%v) (-want +got):\n%s", test.mode, diff)
		}
	}

	anon := NewDocument(NewAnonymousQuery(NewField("products")))
	want := map[string]string{"query": "{ products }"}
	if diff := cmp.Diff(want, anon.Parameterize(Compact)); diff != "" {
		t.Errorf("anonymous Parameterize(Compact) (-want +got):\n%s", diff)
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	t.Parallel()

	docs := map[string]*Document{
		"Anonymous":   NewDocument(NewAnonymousQuery(NewField("products"))),
		"ProductList": productListDocument(t),
		"Like":        likeDocument(t),
		"Search":      searchDocument(t),
	}
	for name, doc := range docs {
		doc := doc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			pretty := doc.Parameterize(Pretty)
			compact := doc.Parameterize(Compact)
			encoded := doc.Parameterize(Encoded)

			require.Equal(t, gqlang.Condense(pretty[QueryParam]), compact[QueryParam])
			if vars, ok := pretty[VariablesParam]; ok {
				require.Equal(t, gqlang.CondenseWhitespace(vars), compact[VariablesParam])
			}
			require.Len(t, encoded, len(compact))
			for k, v := range encoded {
				decoded, err := url.QueryUnescape(v)
				require.NoError(t, err)
				require.Equal(t, compact[k], decoded, "parameter %s", k)
			}

			q, err := url.ParseQuery(doc.Stringify(Encoded))
			require.NoError(t, err)
			require.Len(t, q, len(compact))
			for k, v := range compact {
				require.Equal(t, v, q.Get(k), "parameter %s", k)
			}
		})
	}
}

func TestDocument_Deterministic(t *testing.T) {
	t.Parallel()

	build := func() *Document {
		filter := MustObject(
			ObjectField{Name: "price", Value: MustObject(
				ObjectField{Name: "lt", Value: Float(100)},
				ObjectField{Name: "gt", Value: Float(10)},
			)},
			ObjectField{Name: "inStock", Value: Boolean(true)},
			ObjectField{Name: "category", Value: Enum("BOOKS")},
		)
		op := NewQuery("Filtered", NewField("products").
			WithArguments(Arg("filter", filter)).
			WithSubFields(Fields("id", "price")...))
		return NewDocument(op)
	}
	for _, mode := range []Mode{Pretty, Compact, Encoded} {
		first := build().Stringify(mode)
		for i := 0; i < 20; i++ {
			if got := build().Stringify(mode); got != first {
				t.Fatalf("Stringify(%v) run %d = %q; first run = %q", mode, i, got, first)
			}
		}
	}
	want := "query Filtered {\n\tproducts(filter: {price: {lt: 100.0, gt: 10.0}, inStock: true, category: BOOKS}) {\n\t\tid,\n\t\tprice\n\t}\n}"
	if diff := cmp.Diff(want, build().Stringify(Pretty)); diff != "" {
		t.Errorf("Stringify(Pretty) (-want +got):\n%s", diff)
	}
}

func TestDocument_NilFragmentSpread(t *testing.T) {
	doc := NewDocument(NewAnonymousQuery(NewField("a").WithFragments(nil)))
	if got, want := doc.Stringify(Pretty), "{\n\ta\n}"; got != want {
		t.Errorf("Stringify(Pretty) = %q; want %q", got, want)
	}
	if errs := doc.Validate(); len(errs) > 0 {
		t.Errorf("Validate() = %q; want no errors", errs)
	}
}

func TestField_CopyOnAppend(t *testing.T) {
	t.Parallel()

	base := NewField("user").WithSubFields(Fields("id", "name", "email")...)
	short := NewField("user").WithSubFields(NewField("id"), NewField("x"))
	a := short.WithSubFields(NewField("a"))
	b := short.WithSubFields(NewField("b"))
	if got, want := a.String(), "user {\n\tid,\n\tx,\n\ta\n}"; got != want {
		t.Errorf("a = %q; want %q", got, want)
	}
	if got, want := b.String(), "user {\n\tid,\n\tx,\n\tb\n}"; got != want {
		t.Errorf("b = %q; want %q", got, want)
	}

	args := NewField("f").WithArguments(Arg("a", Int(1)))
	withB := args.WithArguments(Arg("b", Int(2)))
	withC := args.WithArguments(Arg("c", Int(3)))
	if got := args.String(); got != "f(a: 1)" {
		t.Errorf("receiver modified: %q", got)
	}
	if got := withB.String(); got != "f(a: 1, b: 2)" {
		t.Errorf("withB = %q", got)
	}
	if got := withC.String(); got != "f(a: 1, c: 3)" {
		t.Errorf("withC = %q", got)
	}

	subs := base.SubFields()
	subs[0] = NewField("changed")
	if got := base.SubFields()[0].Name(); got != "id" {
		t.Errorf("SubFields() returned shared slice; base now has %q", got)
	}
}

func TestOperation_WithVariableDefinitions(t *testing.T) {
	t.Parallel()

	def := VariableDefinition{Key: "count", Type: "Int", DefaultValue: Int(10)}
	if _, err := NewAnonymousQuery(NewField("products")).WithVariableDefinitions(def); !xerrors.Is(err, ErrAnonymousVariables) {
		t.Errorf("anonymous query WithVariableDefinitions error = %v; want %v", err, ErrAnonymousVariables)
	}
	if _, err := NewMutation("", NewField("like")).WithVariableDefinitions(def); !xerrors.Is(err, ErrAnonymousVariables) {
		t.Errorf("anonymous mutation WithVariableDefinitions error = %v; want %v", err, ErrAnonymousVariables)
	}
	if _, err := NewAnonymousQuery(NewField("products")).WithVariableDefinitions(); err != nil {
		t.Errorf("anonymous query WithVariableDefinitions() = %v; want <nil>", err)
	}

	base := NewQuery("Q", NewField("products"))
	op, err := base.WithVariableDefinitions(def)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(base.VariableDefinitions()); got != 0 {
		t.Errorf("receiver has %d variable definitions after WithVariableDefinitions; want 0", got)
	}
	if diff := cmp.Diff([]VariableDefinition{def}, op.VariableDefinitions(), cmp.AllowUnexported(Value{})); diff != "" {
		t.Errorf("VariableDefinitions() (-want +got):\n%s", diff)
	}
}

func TestNewVariableDefinition(t *testing.T) {
	t.Parallel()

	def, err := NewVariableDefinition("tags", "[String!]", true, []string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := def.String(), "$tags: [String!]!"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
	if got, want := def.valueString(), `"tags": ["a", "b"]`; got != want {
		t.Errorf("valueString() = %q; want %q", got, want)
	}
	if got, want := def.Variable(), Var("tags"); got != want {
		t.Errorf("Variable() = %v; want %v", got, want)
	}

	_, err = NewVariableDefinition("bad", "Object", false, struct{}{})
	var valueErr *ValueError
	if !xerrors.As(err, &valueErr) {
		t.Errorf("NewVariableDefinition(struct{}{}) error = %v; want *ValueError", err)
	}
}

func TestNewArgument(t *testing.T) {
	t.Parallel()

	arg, err := NewArgument("ids", []int{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := arg.String(), "ids: [1, 2]"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
	if _, err := NewArgument("c", make(chan int)); err == nil {
		t.Error("NewArgument with a channel did not return an error")
	}
}

func TestDocument_WithFragments(t *testing.T) {
	t.Parallel()

	a := NewFragment("a", "T", NewField("x"))
	b := NewFragment("b", "T", NewField("y"))
	doc := NewDocument(NewAnonymousQuery(NewField("f").WithFragments(a, b)), a, a)
	if got := len(doc.Fragments()); got != 1 {
		t.Fatalf("len(NewDocument(op, a, a).Fragments()) = %d; want 1", got)
	}
	doc2 := doc.WithFragments(b, a, b)
	if got := fragmentNames(doc2.Fragments()); !cmp.Equal(got, []string{"a", "b"}) {
		t.Errorf("WithFragments(b, a, b) fragments = %q; want [a b]", got)
	}
	if got := len(doc.Fragments()); got != 1 {
		t.Errorf("receiver has %d fragments after WithFragments; want 1", got)
	}

	// Structurally equal fragments are distinct.
	a2 := NewFragment("a", "T", NewField("x"))
	if got := len(doc.WithFragments(a2).Fragments()); got != 2 {
		t.Errorf("WithFragments(copy of a) has %d fragments; want 2", got)
	}
}

func TestDocument_CollectFragments(t *testing.T) {
	t.Parallel()

	name := NewFragment("nameFields", "User", Fields("first", "last")...)
	user := NewFragment("userFields", "User", NewField("id"), NewField("name").WithFragments(name))
	price := NewFragment("priceFields", "Product", Fields("amount", "currency")...)
	// A fragment that spreads itself must not loop forever.
	cyclic := NewFragment("cyclic", "Node", NewField("id"))
	cyclic.fields[0] = cyclic.fields[0].WithFragments(cyclic)

	op := NewAnonymousQuery(
		NewField("me").WithFragments(user),
		NewField("products").WithSubFields(
			NewField("price").WithFragments(price),
		).WithFragments(cyclic),
		NewField("owner").WithFragments(user),
	)
	doc := NewDocument(op, price).CollectFragments()
	want := []string{"priceFields", "userFields", "nameFields", "cyclic"}
	if diff := cmp.Diff(want, fragmentNames(doc.Fragments())); diff != "" {
		t.Errorf("CollectFragments() fragments (-want +got):\n%s", diff)
	}

	// Without collection, only the registered definitions are sent.
	plain := NewDocument(op, price)
	if got := len(plain.Fragments()); got != 1 {
		t.Errorf("NewDocument(op, price) has %d fragments; want 1", got)
	}

	// Collected documents must parse.
	_, err := parser.ParseQuery(&ast.Source{Input: doc.Stringify(Compact)})
	require.NoError(t, err)
}

func TestDocument_Parses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		doc       *Document
		operation ast.Operation
		fragments int
		variables int
	}{
		{
			name:      "Anonymous",
			doc:       NewDocument(NewAnonymousQuery(NewField("products"))),
			operation: ast.Query,
		},
		{
			name:      "ProductList",
			doc:       productListDocument(t),
			operation: ast.Query,
			fragments: 1,
			variables: 1,
		},
		{
			name:      "Like",
			doc:       likeDocument(t),
			operation: ast.Mutation,
			variables: 2,
		},
		{
			name:      "AnonymousMutation",
			doc:       NewDocument(NewAnonymousMutation(NewField("like"))),
			operation: ast.Mutation,
		},
		{
			name:      "Search",
			doc:       searchDocument(t),
			operation: ast.Query,
			fragments: 1,
			variables: 2,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			for _, mode := range []Mode{Pretty, Compact} {
				src := test.doc.Parameterize(mode)[QueryParam]
				parsed, err := parser.ParseQuery(&ast.Source{Input: src})
				require.NoError(t, err, "mode %v:\n%s", mode, src)
				require.Len(t, parsed.Operations, 1)
				op := parsed.Operations[0]
				require.Equal(t, test.operation, op.Operation)
				require.Equal(t, test.doc.Operation().Name(), op.Name)
				require.Len(t, op.VariableDefinitions, test.variables)
				require.Len(t, parsed.Fragments, test.fragments)
			}
		})
	}
}

func productListDocument(tb testing.TB) *Document {
	tb.Helper()
	def, err := NewVariableDefinition("count", "Int", false, 10)
	if err != nil {
		tb.Fatal(err)
	}
	op, err := NewQuery("ProductList", NewField("products")).WithVariableDefinitions(def)
	if err != nil {
		tb.Fatal(err)
	}
	return NewDocument(op, NewFragment("idFragment", "Product", NewField("id")))
}

func likeDocument(tb testing.TB) *Document {
	tb.Helper()
	id := VariableDefinition{Key: "id", Type: "ID", NotNullable: true}
	note := VariableDefinition{Key: "note", Type: "String", DefaultValue: String("first, of  many")}
	field := NewField("like").
		WithArguments(Arg("id", VariableRef(id.Variable())), Arg("note", VariableRef(note.Variable()))).
		WithSubFields(NewField("likes"))
	op, err := NewMutation("Like", field).WithVariableDefinitions(id, note)
	if err != nil {
		tb.Fatal(err)
	}
	return NewDocument(op)
}

func searchDocument(tb testing.TB) *Document {
	tb.Helper()
	text := VariableDefinition{Key: "text", Type: "String", NotNullable: true, DefaultValue: String("rock & roll; \"live\"")}
	withCover := VariableDefinition{Key: "withCover", Type: "Boolean", DefaultValue: Boolean(false)}
	cover := NewFragment("coverFields", "Album", NewField("url").WithAlias("src"), NewField("width"))
	field := NewField("search").
		WithArguments(
			Arg("text", VariableRef(text.Variable())),
			Arg("filter", MustObject(
				ObjectField{Name: "year", Value: MustObject(ObjectField{Name: "gte", Value: Int(1970)})},
				ObjectField{Name: "genres", Value: List(Enum("ROCK"), Enum("BLUES"))},
			)),
		).
		WithSubFields(
			NewField("title"),
			NewField("cover").WithDirectives(Include(withCover.Variable())).WithFragments(cover),
		)
	op, err := NewQuery("Search", field).WithVariableDefinitions(text, withCover)
	if err != nil {
		tb.Fatal(err)
	}
	return NewDocument(op, cover)
}

func fragmentNames(frags []*Fragment) []string {
	names := make([]string, len(frags))
	for i, f := range frags {
		names[i] = f.Name()
	}
	return names
}
