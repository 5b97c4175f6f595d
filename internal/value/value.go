// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

// Package value implements the shell's tagged data model. Values are
// immutable; build them with the constructors in this package and render
// them with ToString or ToJSON.
package value

import (
	"math/big"
	"slices"
	"time"
)

// Tag is the discriminator carried by every variant.
type Tag string

const (
	TagInt      Tag = "Int"
	TagFloat    Tag = "Float"
	TagString   Tag = "String"
	TagBool     Tag = "Bool"
	TagNull     Tag = "Null"
	TagDate     Tag = "Date"
	TagFilesize Tag = "Filesize"
	TagDuration Tag = "Duration"
	TagList     Tag = "List"
	TagRecord   Tag = "Record"
	TagTable    Tag = "Table"
	TagBinary   Tag = "Binary"
)

// Value is a shell value. The set of implementations is closed.
type Value interface {
	Tag() Tag
	String() string
	sealed()
}

// Int is an arbitrary-precision integer.
type Int struct{ v *big.Int }

// NewInt copies n into an Int. A nil n is zero.
func NewInt(n *big.Int) Int { return Int{copyInt(n)} }

// Int64 returns n as an Int.
func Int64(n int64) Int { return Int{big.NewInt(n)} }

// ParseInt parses a base-10 integer of any size.
func ParseInt(s string) (Int, bool) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Int{}, false
	}
	return Int{n}, true
}

// Big returns a copy of the integer.
func (i Int) Big() *big.Int { return copyInt(i.v) }

func (Int) Tag() Tag { return TagInt }
func (Int) sealed()  {}

// Float is a 64-bit floating point number.
type Float struct{ v float64 }

func NewFloat(f float64) Float { return Float{f} }

func (f Float) Float64() float64 { return f.v }
func (Float) Tag() Tag           { return TagFloat }
func (Float) sealed()            {}

// Str is a string. Its tag is "String".
type Str struct{ v string }

func NewStr(s string) Str { return Str{s} }

func (Str) Tag() Tag { return TagString }
func (Str) sealed()  {}

type Bool struct{ v bool }

func NewBool(b bool) Bool { return Bool{b} }

func (b Bool) Bool() bool { return b.v }
func (Bool) Tag() Tag     { return TagBool }
func (Bool) sealed()      {}

// Null is the absence of a value.
type Null struct{}

func Nil() Null { return Null{} }

func (Null) Tag() Tag { return TagNull }
func (Null) sealed()  {}

// Date is a point in time.
type Date struct{ t time.Time }

func NewDate(t time.Time) Date { return Date{t} }

func (d Date) Time() time.Time { return d.t }
func (Date) Tag() Tag          { return TagDate }
func (Date) sealed()           {}

// Filesize is an integer amount of some size unit (b, kb, mib, ...).
type Filesize struct {
	v    *big.Int
	unit string
}

func NewFilesize(n *big.Int, unit string) Filesize { return Filesize{copyInt(n), unit} }

func (f Filesize) Big() *big.Int { return copyInt(f.v) }
func (f Filesize) Unit() string  { return f.unit }
func (Filesize) Tag() Tag        { return TagFilesize }
func (Filesize) sealed()         {}

// Duration is an integer amount of some time unit (ns, ms, sec, ...).
type Duration struct {
	v    *big.Int
	unit string
}

func NewDuration(n *big.Int, unit string) Duration { return Duration{copyInt(n), unit} }

func (d Duration) Big() *big.Int { return copyInt(d.v) }
func (d Duration) Unit() string  { return d.unit }
func (Duration) Tag() Tag        { return TagDuration }
func (Duration) sealed()         {}

type List struct{ items []Value }

func NewList(items ...Value) List { return List{slices.Clone(items)} }

func (l List) Len() int           { return len(l.items) }
func (l List) Index(i int) Value  { return l.items[i] }
func (l List) Items() []Value     { return slices.Clone(l.items) }
func (List) Tag() Tag             { return TagList }
func (List) sealed()              {}

// Field is a named record entry.
type Field struct {
	Name  string
	Value Value
}

// F is shorthand for a Field literal.
func F(name string, v Value) Field { return Field{name, v} }

// Record is an ordered set of named fields. Iteration order is insertion
// order.
type Record struct {
	names  []string
	fields map[string]Value
}

// NewRecord builds a record from fields in order. A repeated name replaces
// the earlier value but keeps its position.
func NewRecord(fields ...Field) Record {
	r := Record{
		names:  make([]string, 0, len(fields)),
		fields: make(map[string]Value, len(fields)),
	}
	for _, f := range fields {
		if _, ok := r.fields[f.Name]; !ok {
			r.names = append(r.names, f.Name)
		}
		r.fields[f.Name] = f.Value
	}
	return r
}

func (r Record) Names() []string { return slices.Clone(r.names) }
func (r Record) Len() int        { return len(r.names) }

func (r Record) Get(name string) (Value, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Fields returns the fields in order.
func (r Record) Fields() []Field {
	out := make([]Field, len(r.names))
	for i, n := range r.names {
		out[i] = Field{n, r.fields[n]}
	}
	return out
}

func (Record) Tag() Tag { return TagRecord }
func (Record) sealed()  {}

// Table is a list of row records sharing a header. Rows are expected to
// carry the header's fields but this is not enforced.
type Table struct {
	headers []string
	rows    []Record
}

func NewTable(headers []string, rows []Record) Table {
	return Table{slices.Clone(headers), slices.Clone(rows)}
}

func (t Table) Headers() []string { return slices.Clone(t.headers) }
func (t Table) Rows() []Record    { return slices.Clone(t.rows) }
func (t Table) Count() int        { return len(t.rows) }
func (Table) Tag() Tag            { return TagTable }
func (Table) sealed()             {}

type Binary struct{ data []byte }

func NewBinary(b []byte) Binary { return Binary{slices.Clone(b)} }

// BinaryFromString returns the UTF-8 bytes of s.
func BinaryFromString(s string) Binary { return Binary{[]byte(s)} }

func (b Binary) Bytes() []byte { return slices.Clone(b.data) }
func (b Binary) Len() int      { return len(b.data) }
func (Binary) Tag() Tag        { return TagBinary }
func (Binary) sealed()         {}

func copyInt(n *big.Int) *big.Int {
	if n == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(n)
}
