// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"encoding/json"
	"fmt"
)

// Operator joins two adjacent commands in a pipeline.
type Operator string

const (
	OpPipe     Operator = "pipe"     // |  stdout → stdin
	OpAnd      Operator = "and"      // && run next if previous succeeded
	OpOr       Operator = "or"       // || run next if previous failed
	OpSequence Operator = "sequence" // ;  run next regardless
)

// Symbol returns the source text of the operator.
func (o Operator) Symbol() string {
	switch o {
	case OpPipe:
		return "|"
	case OpAnd:
		return "&&"
	case OpOr:
		return "||"
	case OpSequence:
		return ";"
	default:
		return string(o)
	}
}

// ArgKind distinguishes the two argument variants.
type ArgKind int

const (
	ArgPositional ArgKind = iota
	ArgFlag
)

func (k ArgKind) String() string {
	switch k {
	case ArgPositional:
		return "Positional"
	case ArgFlag:
		return "Flag"
	default:
		return fmt.Sprintf("argkind(%d)", int(k))
	}
}

// Argument is either a positional value or a flag. For flags, Name has its
// leading dashes removed and Value is set only when HasValue is true
// (--name=value).
type Argument struct {
	Kind     ArgKind
	Value    string
	Name     string
	HasValue bool
}

// Positional returns a positional argument.
func Positional(value string) Argument {
	return Argument{Kind: ArgPositional, Value: value}
}

// Flag returns a flag argument without a value.
func Flag(name string) Argument {
	return Argument{Kind: ArgFlag, Name: name}
}

// FlagValue returns a flag argument carrying a value.
func FlagValue(name, value string) Argument {
	return Argument{Kind: ArgFlag, Name: name, Value: value, HasValue: true}
}

// MarshalJSON encodes the argument as a tagged object.
func (a Argument) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case ArgPositional:
		return json.Marshal(struct {
			Tag   string `json:"_tag"`
			Value string `json:"value"`
		}{a.Kind.String(), a.Value})
	case ArgFlag:
		var v *string
		if a.HasValue {
			v = &a.Value
		}
		return json.Marshal(struct {
			Tag   string  `json:"_tag"`
			Name  string  `json:"name"`
			Value *string `json:"value,omitempty"`
		}{a.Kind.String(), a.Name, v})
	default:
		return nil, fmt.Errorf("marshal argument: unknown kind %v", a.Kind)
	}
}

// Redirect holds a command's file redirections. Append applies to Stdout.
type Redirect struct {
	Stdout string `json:"stdout,omitempty"`
	Append bool   `json:"append"`
	Stdin  string `json:"stdin,omitempty"`
}

// Command is a single simple command within a pipeline.
type Command struct {
	Name     string            `json:"name"`
	Args     []Argument        `json:"args"`
	Env      map[string]string `json:"env"`
	Redirect *Redirect         `json:"redirect,omitempty"`
}

// Pipeline is an ordered chain of commands. Operators[i] joins Commands[i]
// and Commands[i+1], so len(Operators) == len(Commands)-1.
type Pipeline struct {
	Commands  []Command  `json:"commands"`
	Operators []Operator `json:"operators"`
}
