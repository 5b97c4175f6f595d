// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// isoLayout matches JavaScript's Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// ToString renders v in its canonical display form.
func ToString(v Value) string {
	if v == nil {
		return Nil().String()
	}
	return v.String()
}

func (i Int) String() string {
	if i.v == nil {
		return "0"
	}
	return i.v.String()
}

func (f Float) String() string { return formatFloat(f.v) }
func (s Str) String() string   { return s.v }
func (b Bool) String() string  { return strconv.FormatBool(b.v) }
func (Null) String() string    { return "null" }
func (d Date) String() string  { return formatDate(d.t) }

func (f Filesize) String() string { return NewInt(f.v).String() + f.unit }
func (d Duration) String() string { return NewInt(d.v).String() + d.unit }

func (l List) String() string {
	parts := make([]string, len(l.items))
	for i, item := range l.items {
		parts[i] = ToString(item)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (r Record) String() string {
	parts := make([]string, len(r.names))
	for i, n := range r.names {
		parts[i] = n + ": " + ToString(r.fields[n])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (t Table) String() string  { return fmt.Sprintf("<table %d rows>", len(t.rows)) }
func (b Binary) String() string { return fmt.Sprintf("<binary %d bytes>", len(b.data)) }

func formatDate(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// formatFloat follows JavaScript's Number#toString: plain decimal notation
// for magnitudes in [1e-6, 1e21), shortest exponent form otherwise.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}
	if abs := math.Abs(f); abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		digits := strings.TrimLeft(exp[1:], "0")
		return mant + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
