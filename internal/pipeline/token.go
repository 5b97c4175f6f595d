// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import "fmt"

// TokenType identifies the lexical class of a token.
type TokenType int

const (
	TokenWord TokenType = iota
	TokenString
	TokenNumber
	TokenPipe           // |
	TokenAnd            // &&
	TokenOr             // ||
	TokenSemicolon      // ;
	TokenRedirectOut    // >
	TokenRedirectAppend // >>
	TokenRedirectIn     // <
	TokenEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenWord:
		return "Word"
	case TokenString:
		return "String"
	case TokenNumber:
		return "Number"
	case TokenPipe:
		return "Pipe"
	case TokenAnd:
		return "And"
	case TokenOr:
		return "Or"
	case TokenSemicolon:
		return "Semicolon"
	case TokenRedirectOut:
		return "RedirectOut"
	case TokenRedirectAppend:
		return "RedirectAppend"
	case TokenRedirectIn:
		return "RedirectIn"
	case TokenEOF:
		return "EOF"
	default:
		return fmt.Sprintf("token(%d)", int(t))
	}
}

// MarshalText encodes the type by name so JSON output is readable.
func (t TokenType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Token is a single lexical unit. Value holds the literal text: operators
// keep their symbol, strings are unquoted, numbers keep their decimal text.
type Token struct {
	Type  TokenType `json:"type"`
	Value string    `json:"value"`
	Pos   int       `json:"pos"` // byte offset into the input
}

func (t Token) String() string {
	if t.Type == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%s %q", t.Type, t.Value)
}

// operator reports the pipeline operator a separator token stands for.
func (t Token) operator() (Operator, bool) {
	switch t.Type {
	case TokenPipe:
		return OpPipe, true
	case TokenAnd:
		return OpAnd, true
	case TokenOr:
		return OpOr, true
	case TokenSemicolon:
		return OpSequence, true
	default:
		return "", false
	}
}
