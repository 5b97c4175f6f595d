// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"strings"
)

// Type describes a value's type. Fields is set only for records and lists
// the record's field names in order.
type Type struct {
	Name   string
	Fields []string
}

func (t Type) String() string {
	if t.Name == "record" {
		return "record<" + strings.Join(t.Fields, ", ") + ">"
	}
	return t.Name
}

// TypeOf returns the short type name of v.
func TypeOf(v Value) Type {
	switch v := v.(type) {
	case Int:
		return Type{Name: "int"}
	case Float:
		return Type{Name: "float"}
	case Str:
		return Type{Name: "string"}
	case Bool:
		return Type{Name: "bool"}
	case Null, nil:
		return Type{Name: "null"}
	case Date:
		return Type{Name: "date"}
	case Filesize:
		return Type{Name: "filesize"}
	case Duration:
		return Type{Name: "duration"}
	case List:
		return Type{Name: "list"}
	case Record:
		return Type{Name: "record", Fields: v.Names()}
	case Table:
		return Type{Name: "table"}
	case Binary:
		return Type{Name: "binary"}
	default:
		panic(fmt.Sprintf("value: unknown variant %T", v))
	}
}

func IsInt(v Value) bool      { return is(v, TagInt) }
func IsFloat(v Value) bool    { return is(v, TagFloat) }
func IsString(v Value) bool   { return is(v, TagString) }
func IsBool(v Value) bool     { return is(v, TagBool) }
func IsNull(v Value) bool     { return v == nil || is(v, TagNull) }
func IsDate(v Value) bool     { return is(v, TagDate) }
func IsFilesize(v Value) bool { return is(v, TagFilesize) }
func IsDuration(v Value) bool { return is(v, TagDuration) }
func IsList(v Value) bool     { return is(v, TagList) }
func IsRecord(v Value) bool   { return is(v, TagRecord) }
func IsTable(v Value) bool    { return is(v, TagTable) }
func IsBinary(v Value) bool   { return is(v, TagBinary) }

func is(v Value, t Tag) bool {
	return v != nil && v.Tag() == t
}
