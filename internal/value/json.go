// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
)

// Member is one key of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object that keeps its keys in order.
type Object []Member

// Get returns the value for key.
func (o Object) Get(key string) (any, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

func (o Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", m.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ToJSON projects v onto values encoding/json can marshal: string, float64,
// bool, nil, []any and Object.
//
// Integers become decimal strings so that values beyond 2^53 survive JSON
// consumers that parse numbers as doubles. Dates become ISO-8601 strings.
// Filesize, Duration and Binary become tagged objects that FromJSON decodes
// back to the same variant.
func ToJSON(v Value) any {
	switch v := v.(type) {
	case nil, Null:
		return nil
	case Int:
		return v.String()
	case Float:
		if math.IsNaN(v.v) || math.IsInf(v.v, 0) {
			return nil
		}
		return v.v
	case Str:
		return v.v
	case Bool:
		return v.v
	case Date:
		return formatDate(v.t)
	case Filesize:
		return Object{{"_tag", string(TagFilesize)}, {"value", NewInt(v.v).String()}, {"unit", v.unit}}
	case Duration:
		return Object{{"_tag", string(TagDuration)}, {"value", NewInt(v.v).String()}, {"unit", v.unit}}
	case List:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = ToJSON(item)
		}
		return out
	case Record:
		out := make(Object, len(v.names))
		for i, n := range v.names {
			out[i] = Member{n, ToJSON(v.fields[n])}
		}
		return out
	case Table:
		out := make([]any, len(v.rows))
		for i, row := range v.rows {
			out[i] = ToJSON(row)
		}
		return out
	case Binary:
		return Object{{"_tag", string(TagBinary)}, {"base64", base64.StdEncoding.EncodeToString(v.data)}}
	default:
		panic(fmt.Sprintf("value: unknown variant %T", v))
	}
}

// Marshal encodes the JSON projection of v.
func Marshal(v Value) ([]byte, error) {
	return json.Marshal(ToJSON(v))
}

// FromJSON decodes a JSON document into a Value. Object key order is kept.
// Integral numbers decode as Int, other numbers as Float, and the tagged
// objects produced by ToJSON decode to their original variants.
func FromJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, fmt.Errorf("decode json value: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("decode json value: trailing data")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			var items []Value
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return NewList(items...), nil
		case '{':
			var fields []Field
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := kt.(string)
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				fields = append(fields, Field{key, v})
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return decodeObject(fields)
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return NewStr(t), nil
	case json.Number:
		if n, ok := new(big.Int).SetString(string(t), 10); ok {
			return Int{n}, nil
		}
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return nil, err
		}
		return NewFloat(f), nil
	case bool:
		return NewBool(t), nil
	case nil:
		return Nil(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

// decodeObject recognises the tagged objects written by ToJSON; anything
// else is a Record.
func decodeObject(fields []Field) (Value, error) {
	r := NewRecord(fields...)
	tag, ok := stringField(r, "_tag")
	if !ok {
		return r, nil
	}
	switch Tag(tag) {
	case TagFilesize, TagDuration:
		num, ok1 := stringField(r, "value")
		unit, ok2 := stringField(r, "unit")
		if !ok1 || !ok2 || r.Len() != 3 {
			return r, nil
		}
		n, ok := new(big.Int).SetString(num, 10)
		if !ok {
			return nil, fmt.Errorf("%s value %q is not an integer", tag, num)
		}
		if Tag(tag) == TagFilesize {
			return Filesize{n, unit}, nil
		}
		return Duration{n, unit}, nil
	case TagBinary:
		enc, ok := stringField(r, "base64")
		if !ok || r.Len() != 2 {
			return r, nil
		}
		data, err := base64.StdEncoding.DecodeString(enc)
		if err != nil {
			return nil, fmt.Errorf("binary payload: %w", err)
		}
		return Binary{data}, nil
	}
	return r, nil
}

func stringField(r Record, name string) (string, bool) {
	v, ok := r.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(Str)
	return s.v, ok
}
