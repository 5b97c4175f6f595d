// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import "fmt"

// TokenizeError reports an unterminated quoted string.
type TokenizeError struct {
	Pos   int  // offset of the opening quote
	Quote byte // ' or "
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("unterminated %c quote starting at offset %d", e.Quote, e.Pos)
}

// ParseError reports input that tokenized cleanly but does not form a
// valid pipeline. Token is the offending token when one is known.
type ParseError struct {
	Msg   string
	Token *Token
}

func (e *ParseError) Error() string {
	if e.Token == nil {
		return e.Msg
	}
	return fmt.Sprintf("%s at offset %d", e.Msg, e.Token.Pos)
}

func parseErrorf(tok *Token, format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Token: tok}
}
