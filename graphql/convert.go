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
	"math"
	"reflect"
	"sort"
)

// Enumer is implemented by Go types that represent GraphQL enum values.
// GraphQLEnum returns the enum value's name, which is rendered without quotes.
type Enumer interface {
	GraphQLEnum() string
}

// ValueOf converts a Go value into a GraphQL input value.
//
// ValueOf checks for the following, in order:
//
//   - nil, a nil pointer, or a Nullable whose IsGraphQLNull method returns
//     true converts to null.
//   - A Value is returned verbatim and a Variable becomes a variable
//     reference.
//   - An Enumer converts to an enum value.
//   - Booleans, integers, floating point numbers, and strings convert to the
//     corresponding scalar. NaN and infinities are rejected.
//   - A []ObjectField converts to an object with the same field order.
//   - Slices and arrays convert to lists, converting each element.
//   - Maps with string keys convert to objects. Go maps are unordered, so the
//     fields are sorted by key.
//
// Any other type returns a *ValueError. ValueOf never returns a partially
// converted value.
func ValueOf(x interface{}) (Value, error) {
	v, err := valueFromGo(reflect.ValueOf(x))
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

func valueFromGo(goValue reflect.Value) (Value, *ValueError) {
	if !goValue.IsValid() {
		return Value{}, nil
	}
	if goValue.CanInterface() {
		switch x := goValue.Interface().(type) {
		case Value:
			return x, nil
		case Variable:
			return VariableRef(x), nil
		case []ObjectField:
			v, err := Object(x...)
			if err != nil {
				return Value{}, err.(*ValueError)
			}
			return v, nil
		}
		if isGraphQLNull(goValue) {
			return Value{}, nil
		}
		if e, ok := goValue.Interface().(Enumer); ok {
			if isNilPointer(goValue) {
				return Value{}, nil
			}
			return Enum(e.GraphQLEnum()), nil
		}
		if n, ok := goValue.Interface().(valuer); ok {
			return n.graphQLValue(), nil
		}
	}
	switch goValue.Kind() {
	case reflect.Ptr, reflect.Interface:
		if goValue.IsNil() {
			return Value{}, nil
		}
		return valueFromGo(goValue.Elem())
	case reflect.Bool:
		return Boolean(goValue.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(goValue.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := goValue.Uint()
		if u > math.MaxInt64 {
			return Value{}, &ValueError{msg: fmt.Sprintf("integer %d out of range", u)}
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		f := goValue.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, &ValueError{msg: fmt.Sprintf("cannot represent %v as a GraphQL float", f)}
		}
		return Float(f), nil
	case reflect.String:
		return String(goValue.String()), nil
	case reflect.Slice, reflect.Array:
		if goValue.Kind() == reflect.Slice && goValue.IsNil() {
			return Value{}, nil
		}
		n := goValue.Len()
		list := make([]Value, 0, n)
		for i := 0; i < n; i++ {
			elem, err := valueFromGo(goValue.Index(i))
			if err != nil {
				return Value{}, &ValueError{Path: listElemPath(i, err.Path), msg: err.msg}
			}
			list = append(list, elem)
		}
		return Value{kind: ListKind, val: list}, nil
	case reflect.Map:
		if goValue.Type().Key().Kind() != reflect.String {
			return Value{}, &ValueError{msg: fmt.Sprintf("cannot convert %v to a GraphQL object: keys must be strings", goValue.Type())}
		}
		if goValue.IsNil() {
			return Value{}, nil
		}
		keys := goValue.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return keys[i].String() < keys[j].String()
		})
		fields := make([]ObjectField, 0, len(keys))
		for _, k := range keys {
			name := k.String()
			elem, err := valueFromGo(goValue.MapIndex(k))
			if err != nil {
				return Value{}, &ValueError{Path: joinPath(objectFieldPath(name), err.Path), msg: err.msg}
			}
			fields = append(fields, ObjectField{Name: name, Value: elem})
		}
		return Value{kind: ObjectKind, val: fields}, nil
	default:
		return Value{}, &ValueError{msg: fmt.Sprintf("cannot convert %v to a GraphQL value", goValue.Type())}
	}
}

func isNilPointer(v reflect.Value) bool {
	return v.Kind() == reflect.Ptr && v.IsNil()
}
