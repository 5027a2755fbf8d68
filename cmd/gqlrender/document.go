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

package main

import (
	"fmt"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
	"zombiezen.com/go/graphql-query/graphql"
)

// documentSpec is the YAML description of a document.
type documentSpec struct {
	Operation operationSpec  `yaml:"operation"`
	Fragments []fragmentSpec `yaml:"fragments"`
}

type operationSpec struct {
	Name      string         `yaml:"name"`
	Mutation  bool           `yaml:"mutation"`
	Variables []variableSpec `yaml:"variables"`
	Fields    []fieldSpec    `yaml:"fields"`
}

type variableSpec struct {
	Key     string  `yaml:"key"`
	Type    string  `yaml:"type"`
	NotNull bool    `yaml:"notNull"`
	Default literal `yaml:"default"`
}

type fragmentSpec struct {
	Name   string      `yaml:"name"`
	On     string      `yaml:"on"`
	Fields []fieldSpec `yaml:"fields"`
}

// fieldSpec is either a bare field name or a mapping with the field's parts.
type fieldSpec struct {
	Name       string              `yaml:"name"`
	Alias      string              `yaml:"alias"`
	Args       yaml.MapSlice       `yaml:"args"`
	Directives []map[string]string `yaml:"directives"`
	Fields     []fieldSpec         `yaml:"fields"`
	Fragments  []string            `yaml:"fragments"`
}

func (f *fieldSpec) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		*f = fieldSpec{Name: name}
		return nil
	}
	type rawFieldSpec fieldSpec
	return unmarshal((*rawFieldSpec)(f))
}

// literal is a YAML value that keeps the key order of mappings.
type literal struct {
	value graphql.Value
}

func (lit *literal) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var x interface{}
	if err := unmarshal(&x); err != nil {
		return err
	}
	switch x.(type) {
	case map[interface{}]interface{}:
		var ms yaml.MapSlice
		if err := unmarshal(&ms); err != nil {
			return err
		}
		x = ms
	case []interface{}:
		var list []literal
		if err := unmarshal(&list); err != nil {
			return err
		}
		elems := make([]graphql.Value, len(list))
		for i := range list {
			elems[i] = list[i].value
		}
		lit.value = graphql.List(elems...)
		return nil
	}
	v, err := valueFromYAML(x)
	if err != nil {
		return err
	}
	lit.value = v
	return nil
}

// valueFromYAML converts a decoded YAML value to a GraphQL value. A mapping with
// the single key "$var" is a variable reference and one with the single key
// "$enum" is an enum value.
func valueFromYAML(x interface{}) (graphql.Value, error) {
	switch x := x.(type) {
	case yaml.MapSlice:
		if len(x) == 1 {
			switch x[0].Key {
			case "$var":
				return graphql.VariableRef(graphql.Var(fmt.Sprint(x[0].Value))), nil
			case "$enum":
				return graphql.Enum(fmt.Sprint(x[0].Value)), nil
			}
		}
		fields := make([]graphql.ObjectField, 0, len(x))
		for _, item := range x {
			v, err := valueFromYAML(item.Value)
			if err != nil {
				return graphql.Value{}, err
			}
			fields = append(fields, graphql.ObjectField{Name: fmt.Sprint(item.Key), Value: v})
		}
		return graphql.Object(fields...)
	case []interface{}:
		elems := make([]graphql.Value, 0, len(x))
		for _, elem := range x {
			v, err := valueFromYAML(elem)
			if err != nil {
				return graphql.Value{}, err
			}
			elems = append(elems, v)
		}
		return graphql.List(elems...), nil
	case map[interface{}]interface{}:
		return graphql.Value{}, xerrors.New("unordered mapping in value")
	default:
		return graphql.ValueOf(x)
	}
}

// parseDocument decodes a YAML document description. If collect is true, only
// the fragments spread by the operation are registered, in the order they are
// first encountered. Otherwise every declared fragment is registered in
// declaration order.
func parseDocument(data []byte, collect bool) (*graphql.Document, error) {
	var spec documentSpec
	if err := yaml.UnmarshalStrict(data, &spec); err != nil {
		return nil, xerrors.Errorf("parse document: %w", err)
	}
	b := &docBuilder{
		specs:    make(map[string]*fragmentSpec, len(spec.Fragments)),
		frags:    make(map[string]*graphql.Fragment, len(spec.Fragments)),
		building: make(map[string]bool),
	}
	for i := range spec.Fragments {
		fs := &spec.Fragments[i]
		if _, dup := b.specs[fs.Name]; dup {
			return nil, xerrors.Errorf("parse document: fragment %s declared more than once", fs.Name)
		}
		b.specs[fs.Name] = fs
	}
	op, err := b.operation(&spec.Operation)
	if err != nil {
		return nil, xerrors.Errorf("parse document: %w", err)
	}
	if collect {
		return graphql.NewDocument(op).CollectFragments(), nil
	}
	frags := make([]*graphql.Fragment, 0, len(spec.Fragments))
	for _, fs := range spec.Fragments {
		frag, err := b.fragment(fs.Name)
		if err != nil {
			return nil, xerrors.Errorf("parse document: %w", err)
		}
		frags = append(frags, frag)
	}
	return graphql.NewDocument(op, frags...), nil
}

// docBuilder resolves fragment references by name. Each fragment is built once
// so that every spread of a name shares the same *graphql.Fragment.
type docBuilder struct {
	specs    map[string]*fragmentSpec
	frags    map[string]*graphql.Fragment
	building map[string]bool
}

func (b *docBuilder) operation(spec *operationSpec) (*graphql.Operation, error) {
	fields, err := b.fields(spec.Fields)
	if err != nil {
		return nil, err
	}
	var op *graphql.Operation
	if spec.Mutation {
		op = graphql.NewMutation(spec.Name, fields...)
	} else {
		op = graphql.NewQuery(spec.Name, fields...)
	}
	if len(spec.Variables) == 0 {
		return op, nil
	}
	defs := make([]graphql.VariableDefinition, 0, len(spec.Variables))
	for _, vs := range spec.Variables {
		if vs.Key == "" || vs.Type == "" {
			return nil, xerrors.Errorf("variable definitions need a key and a type")
		}
		defs = append(defs, graphql.VariableDefinition{
			Key:          vs.Key,
			Type:         vs.Type,
			NotNullable:  vs.NotNull,
			DefaultValue: vs.Default.value,
		})
	}
	return op.WithVariableDefinitions(defs...)
}

func (b *docBuilder) fragment(name string) (*graphql.Fragment, error) {
	if frag := b.frags[name]; frag != nil {
		return frag, nil
	}
	spec := b.specs[name]
	if spec == nil {
		return nil, xerrors.Errorf("unknown fragment %s", name)
	}
	if b.building[name] {
		return nil, xerrors.Errorf("fragment %s spreads itself", name)
	}
	b.building[name] = true
	defer delete(b.building, name)
	fields, err := b.fields(spec.Fields)
	if err != nil {
		return nil, xerrors.Errorf("fragment %s: %w", name, err)
	}
	frag := graphql.NewFragment(spec.Name, spec.On, fields...)
	b.frags[name] = frag
	return frag, nil
}

func (b *docBuilder) fields(specs []fieldSpec) ([]graphql.Field, error) {
	fields := make([]graphql.Field, 0, len(specs))
	for i := range specs {
		f, err := b.field(&specs[i])
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func (b *docBuilder) field(spec *fieldSpec) (graphql.Field, error) {
	if spec.Name == "" {
		return graphql.Field{}, xerrors.New("field without a name")
	}
	f := graphql.NewField(spec.Name)
	if spec.Alias != "" {
		f = f.WithAlias(spec.Alias)
	}
	for _, item := range spec.Args {
		key := fmt.Sprint(item.Key)
		v, err := valueFromYAML(item.Value)
		if err != nil {
			return graphql.Field{}, xerrors.Errorf("field %s: argument %s: %w", spec.Name, key, err)
		}
		f = f.WithArguments(graphql.Arg(key, v))
	}
	for _, d := range spec.Directives {
		dir, err := directiveFromYAML(d)
		if err != nil {
			return graphql.Field{}, xerrors.Errorf("field %s: %w", spec.Name, err)
		}
		f = f.WithDirectives(dir)
	}
	subFields, err := b.fields(spec.Fields)
	if err != nil {
		return graphql.Field{}, xerrors.Errorf("field %s: %w", spec.Name, err)
	}
	f = f.WithSubFields(subFields...)
	for _, name := range spec.Fragments {
		frag, err := b.fragment(name)
		if err != nil {
			return graphql.Field{}, xerrors.Errorf("field %s: %w", spec.Name, err)
		}
		f = f.WithFragments(frag)
	}
	return f, nil
}

func directiveFromYAML(d map[string]string) (graphql.Directive, error) {
	if len(d) != 1 {
		return graphql.Directive{}, xerrors.Errorf("directive must have exactly one key, found %d", len(d))
	}
	var kind, key string
	for kind, key = range d {
	}
	switch kind {
	case "include":
		return graphql.Include(graphql.Var(key)), nil
	case "skip":
		return graphql.Skip(graphql.Var(key)), nil
	case "deprecated":
		return graphql.Deprecated(graphql.Var(key)), nil
	default:
		return graphql.Directive{}, xerrors.Errorf("unknown directive %q", kind)
	}
}
