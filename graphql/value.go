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
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/xerrors"
	"zombiezen.com/go/graphql-query/internal/gqlang"
)

// A Value is a GraphQL input value: a literal that can appear as an argument
// or as a variable's default value. The zero value is null. Values are
// immutable once constructed.
//
// For more information on GraphQL input values, see
// https://graphql.github.io/graphql-spec/June2018/#sec-Input-Values
type Value struct {
	kind ValueKind
	val  interface{} // one of nil, bool, int64, float64, string, Variable, []Value, or []ObjectField.
}

// ValueKind is the variant of a Value.
type ValueKind int

// Value kinds.
const (
	NullKind ValueKind = iota
	BooleanKind
	IntKind
	FloatKind
	StringKind
	EnumKind
	VariableKind
	ListKind
	ObjectKind
)

// String returns the name of the kind.
func (kind ValueKind) String() string {
	switch kind {
	case NullKind:
		return "Null"
	case BooleanKind:
		return "Boolean"
	case IntKind:
		return "Int"
	case FloatKind:
		return "Float"
	case StringKind:
		return "String"
	case EnumKind:
		return "Enum"
	case VariableKind:
		return "Variable"
	case ListKind:
		return "List"
	case ObjectKind:
		return "Object"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(kind))
	}
}

// ObjectField is a single key/value pair in an object literal.
type ObjectField struct {
	Name  string
	Value Value
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// Boolean returns a Boolean value.
func Boolean(b bool) Value {
	return Value{kind: BooleanKind, val: b}
}

// Int returns an Int value. GraphQL specifies 32-bit integers, but the full
// 64-bit range is accepted and rendered as-is.
func Int(i int64) Value {
	return Value{kind: IntKind, val: i}
}

// Float returns a Float value. NaN and infinities have no GraphQL literal, so
// Float returns null for them; ValueOf rejects them with a *ValueError.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: FloatKind, val: f}
}

// String returns a String value.
func String(s string) Value {
	return Value{kind: StringKind, val: s}
}

// Enum returns an enum value with the given name. The name is rendered
// without quotes.
func Enum(name string) Value {
	return Value{kind: EnumKind, val: name}
}

// VariableRef returns a reference to a variable. The variable must be defined
// on the operation that uses it.
func VariableRef(v Variable) Value {
	return Value{kind: VariableKind, val: v}
}

// List returns a list of values. The slice is copied.
func List(elems ...Value) Value {
	list := make([]Value, len(elems))
	copy(list, elems)
	return Value{kind: ListKind, val: list}
}

// Object returns an object literal with its fields in the given order. Object
// returns a *ValueError if a field name appears more than once.
func Object(fields ...ObjectField) (Value, error) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Name]; dup {
			return Value{}, &ValueError{
				Path: objectFieldPath(f.Name),
				msg:  "duplicate object field",
			}
		}
		seen[f.Name] = struct{}{}
	}
	obj := make([]ObjectField, len(fields))
	copy(obj, fields)
	return Value{kind: ObjectKind, val: obj}, nil
}

// MustObject is like Object but panics if the object is invalid. It is
// intended for literals in tests and package-level variables.
func MustObject(fields ...ObjectField) Value {
	v, err := Object(fields...)
	if err != nil {
		panic(err)
	}
	return v
}

// Kind returns the value's variant.
func (v Value) Kind() ValueKind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == NullKind
}

// Len returns the number of elements in v. Len panics if v is not a list or null.
func (v Value) Len() int {
	if v.kind == NullKind {
		return 0
	}
	return len(v.val.([]Value))
}

// At returns v's i'th element. At panics if v is not a list or i is not in the
// range [0, v.Len()).
func (v Value) At(i int) Value {
	list := v.val.([]Value)
	return list[i]
}

// NumFields returns the number of fields in v. NumFields panics if v is not
// null or an object.
func (v Value) NumFields() int {
	switch val := v.val.(type) {
	case nil:
		return 0
	case []ObjectField:
		return len(val)
	default:
		panic(fmt.Sprintf("invalid value for NumFields: %v", v.kind))
	}
}

// Field returns v's i'th field. Field panics if v is not an object or i is not
// in the range [0, v.NumFields()).
func (v Value) Field(i int) ObjectField {
	fields := v.val.([]ObjectField)
	return fields[i]
}

// ValueFor returns the value of the field with the given name or the zero Value
// if v does not have the given field. ValueFor panics if v is not an object.
func (v Value) ValueFor(name string) Value {
	fields, ok := v.val.([]ObjectField)
	if !ok {
		panic(fmt.Sprintf("invalid value for ValueFor(): %v", v.kind))
	}
	for _, f := range fields {
		if f.Name == name {
			return f.Value
		}
	}
	return Value{}
}

// String renders v as GraphQL source text.
func (v Value) String() string {
	sb := new(strings.Builder)
	writeValue(sb, v)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value) {
	switch val := v.val.(type) {
	case nil:
		sb.WriteString("null")
	case bool:
		sb.WriteString(strconv.FormatBool(val))
	case int64:
		sb.WriteString(strconv.FormatInt(val, 10))
	case float64:
		sb.WriteString(gqlang.FormatFloat(val))
	case string:
		if v.kind == EnumKind {
			sb.WriteString(val)
			return
		}
		sb.WriteString(gqlang.Quote(val))
	case Variable:
		sb.WriteString("$")
		sb.WriteString(val.Key)
	case []Value:
		sb.WriteString("[")
		for i, elem := range val {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeValue(sb, elem)
		}
		sb.WriteString("]")
	case []ObjectField:
		sb.WriteString("{")
		for i, f := range val {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(f.Name)
			sb.WriteString(": ")
			writeValue(sb, f.Value)
		}
		sb.WriteString("}")
	default:
		panic("unknown type in Value.val")
	}
}

// MarshalJSON converts the value to JSON. Enums are encoded as strings and
// object fields keep their order. Variable references have no JSON
// representation and cause an error.
func (v Value) MarshalJSON() ([]byte, error) {
	switch val := v.val.(type) {
	case nil:
		return []byte("null"), nil
	case bool, int64, float64, string:
		return json.Marshal(val)
	case Variable:
		return nil, xerrors.Errorf("marshal GraphQL value: variable $%s has no JSON representation", val.Key)
	case []Value:
		return json.Marshal(val)
	case []ObjectField:
		var buf []byte
		buf = append(buf, '{')
		for i, f := range val {
			if i > 0 {
				buf = append(buf, ',')
			}
			key, err := json.Marshal(f.Name)
			if err != nil {
				return nil, err
			}
			buf = append(buf, key...)
			buf = append(buf, ':')
			fval, err := json.Marshal(f.Value)
			if err != nil {
				return nil, err
			}
			buf = append(buf, fval...)
		}
		buf = append(buf, '}')
		return buf, nil
	default:
		panic("unknown type in Value.val")
	}
}

// ValueError is returned when a Go value cannot be represented as a GraphQL
// input value.
type ValueError struct {
	// Path locates the offending element within the value, like "list[2]" or
	// `object field "x"`. It is empty for the top-level value.
	Path string

	msg string
}

func (e *ValueError) Error() string {
	if e.Path == "" {
		return e.msg
	}
	return e.Path + ": " + e.msg
}

func listElemPath(i int, sub string) string {
	return joinPath(fmt.Sprintf("list[%d]", i), sub)
}

func objectFieldPath(name string) string {
	return fmt.Sprintf("object field %q", name)
}

func joinPath(outer, inner string) string {
	if inner == "" {
		return outer
	}
	return outer + ": " + inner
}
