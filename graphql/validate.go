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

// Validate checks the document's structure without a schema. It reports
// variables that are defined more than once, referenced without a definition,
// or never used; fragments that are spread without being registered,
// registered more than once under the same name, never spread, or spread into
// themselves; and default values that reference variables. A nil slice means
// the document is well-formed.
//
// Rendering does not require a valid document.
func (doc *Document) Validate() []error {
	v := &validationScope{
		defined:   make(map[string]bool),
		used:      make(map[string]bool),
		fragments: make(map[string]*Fragment),
		spread:    make(map[string]bool),
	}
	var errs []error

	// https://graphql.github.io/graphql-spec/June2018/#sec-Variable-Uniqueness
	for _, def := range doc.op.varDefs {
		if v.defined[def.Key] {
			errs = append(errs, xerrors.Errorf("multiple definitions of variable $%s", def.Key))
			continue
		}
		v.defined[def.Key] = true
		if key, ok := firstVariable(def.DefaultValue); ok {
			errs = append(errs, xerrors.Errorf("default value of $%s references variable $%s", def.Key, key))
		}
	}

	// https://graphql.github.io/graphql-spec/draft/#sec-Fragment-Name-Uniqueness
	for _, frag := range doc.fragments {
		if prev := v.fragments[frag.name]; prev != nil && prev != frag {
			errs = append(errs, xerrors.Errorf("multiple fragments with name %q", frag.name))
			continue
		}
		v.fragments[frag.name] = frag
	}

	// Ensure there are no cycles before walking selections, since otherwise
	// they could have unbounded recursion.
	for _, frag := range doc.fragments {
		if err := detectFragmentCycles(map[*Fragment]struct{}{frag: {}}, frag.fields); err != nil {
			return append(errs, err)
		}
	}

	errs = append(errs, v.fields(doc.op.fields)...)
	for _, frag := range doc.fragments {
		for _, err := range v.fields(frag.fields) {
			errs = append(errs, xerrors.Errorf("fragment %s: %w", frag.name, err))
		}
	}

	// https://graphql.github.io/graphql-spec/June2018/#sec-All-Variables-Used
	for _, def := range doc.op.varDefs {
		if !v.used[def.Key] {
			errs = append(errs, xerrors.Errorf("unused variable $%s", def.Key))
			v.used[def.Key] = true
		}
	}
	// https://graphql.github.io/graphql-spec/draft/#sec-Fragments-Must-Be-Used
	for _, frag := range doc.fragments {
		if !v.spread[frag.name] {
			errs = append(errs, xerrors.Errorf("unused fragment %s", frag.name))
		}
	}
	return errs
}

type validationScope struct {
	defined   map[string]bool
	used      map[string]bool
	fragments map[string]*Fragment
	spread    map[string]bool
}

func (v *validationScope) fields(fields []Field) []error {
	var errs []error
	for _, f := range fields {
		for _, arg := range f.args {
			for _, key := range variablesIn(arg.Value, nil) {
				if err := v.useVariable(key); err != nil {
					errs = append(errs, xerrors.Errorf("field %s: argument %s: %w", f.name, arg.Key, err))
				}
			}
		}
		for _, d := range f.directives {
			if err := v.useVariable(d.v.Key); err != nil {
				errs = append(errs, xerrors.Errorf("field %s: %v: %w", f.name, d, err))
			}
		}
		errs = append(errs, v.fields(f.subFields)...)
		for _, frag := range f.fragments {
			if frag == nil {
				continue
			}
			v.spread[frag.name] = true
			if v.fragments[frag.name] == nil {
				// https://graphql.github.io/graphql-spec/June2018/#sec-Fragment-spread-target-defined
				errs = append(errs, xerrors.Errorf("field %s: fragment %s is not registered on the document", f.name, frag.name))
			}
		}
	}
	return errs
}

// https://graphql.github.io/graphql-spec/June2018/#sec-All-Variable-Uses-Defined
func (v *validationScope) useVariable(key string) error {
	v.used[key] = true
	if !v.defined[key] {
		return xerrors.Errorf("undefined variable $%s", key)
	}
	return nil
}

func detectFragmentCycles(visited map[*Fragment]struct{}, fields []Field) error {
	for _, f := range fields {
		if err := detectFragmentCycles(visited, f.subFields); err != nil {
			return err
		}
		for _, frag := range f.fragments {
			if frag == nil {
				continue
			}
			if _, seen := visited[frag]; seen {
				return xerrors.Errorf("fragment %s is self-referential", frag.name)
			}
			visited[frag] = struct{}{}
			if err := detectFragmentCycles(visited, frag.fields); err != nil {
				return err
			}
			delete(visited, frag)
		}
	}
	return nil
}

// variablesIn appends the keys of the variables referenced in v to keys.
func variablesIn(v Value, keys []string) []string {
	switch val := v.val.(type) {
	case Variable:
		keys = append(keys, val.Key)
	case []Value:
		for _, elem := range val {
			keys = variablesIn(elem, keys)
		}
	case []ObjectField:
		for _, f := range val {
			keys = variablesIn(f.Value, keys)
		}
	}
	return keys
}

func firstVariable(v Value) (string, bool) {
	keys := variablesIn(v, nil)
	if len(keys) == 0 {
		return "", false
	}
	return keys[0], true
}
