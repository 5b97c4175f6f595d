// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import "strings"

// Tokenize converts a line of shell input into a token stream terminated
// by a single EOF token. The only failure is an unterminated quote.
//
// Quoted text at the start of a token yields a String token holding just
// that segment; whatever follows the closing quote starts a new token.
// Quoted text inside a word is unquoted and joined into the Word, so
// FOO="a b" scans as the single Word `FOO=a b`. A number is the longest
// run of digits with at most one '.', so 10s scans as Number 10 then Word
// s. Outside quotes a backslash escapes the next character.
func Tokenize(input string) ([]Token, error) {
	l := &lexer{input: input}
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		var err error
		switch {
		case isSpace(c):
			l.pos++
		case c == '#':
			l.skipComment()
		case c == '&' && l.peek(1) == '&':
			l.emitOp(TokenAnd, 2)
		case c == '|':
			if l.peek(1) == '|' {
				l.emitOp(TokenOr, 2)
			} else {
				l.emitOp(TokenPipe, 1)
			}
		case c == '>':
			if l.peek(1) == '>' {
				l.emitOp(TokenRedirectAppend, 2)
			} else {
				l.emitOp(TokenRedirectOut, 1)
			}
		case c == '<':
			l.emitOp(TokenRedirectIn, 1)
		case c == ';':
			l.emitOp(TokenSemicolon, 1)
		case c == '"' || c == '\'':
			err = l.scanString()
		case isDigit(c):
			l.scanNumber()
		default:
			err = l.scanWord()
		}
		if err != nil {
			return nil, err
		}
	}
	l.tokens = append(l.tokens, Token{Type: TokenEOF, Pos: len(l.input)})
	return l.tokens, nil
}

type lexer struct {
	input  string
	pos    int
	tokens []Token
}

func (l *lexer) peek(n int) byte {
	if l.pos+n < len(l.input) {
		return l.input[l.pos+n]
	}
	return 0
}

func (l *lexer) emitOp(t TokenType, width int) {
	l.tokens = append(l.tokens, Token{Type: t, Value: l.input[l.pos : l.pos+width], Pos: l.pos})
	l.pos += width
}

func (l *lexer) skipComment() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.pos++
	}
}

// boundary reports whether a token ends before input[i].
func (l *lexer) boundary(i int) bool {
	if i >= len(l.input) {
		return true
	}
	switch c := l.input[i]; c {
	case '|', '>', '<', ';':
		return true
	case '&':
		return i+1 < len(l.input) && l.input[i+1] == '&'
	default:
		return isSpace(c)
	}
}

func (l *lexer) scanString() error {
	start := l.pos
	var sb strings.Builder
	if err := l.scanQuoted(&sb); err != nil {
		return err
	}
	l.tokens = append(l.tokens, Token{Type: TokenString, Value: sb.String(), Pos: start})
	return nil
}

func (l *lexer) scanWord() error {
	start := l.pos
	var sb strings.Builder
	if err := l.scanWordTail(&sb); err != nil {
		return err
	}
	l.tokens = append(l.tokens, Token{Type: TokenWord, Value: sb.String(), Pos: start})
	return nil
}

// scanNumber emits the longest run of digits with at most one '.'.
// Whatever follows (3rd, 1.2.3) is left for the next token.
func (l *lexer) scanNumber() {
	i := l.pos
	for i < len(l.input) && isDigit(l.input[i]) {
		i++
	}
	if i < len(l.input) && l.input[i] == '.' {
		i++
		for i < len(l.input) && isDigit(l.input[i]) {
			i++
		}
	}
	l.tokens = append(l.tokens, Token{Type: TokenNumber, Value: l.input[l.pos:i], Pos: l.pos})
	l.pos = i
}

// scanWordTail accumulates word text up to the next boundary, unquoting
// any quoted segments along the way.
func (l *lexer) scanWordTail(sb *strings.Builder) error {
	for !l.boundary(l.pos) {
		switch c := l.input[l.pos]; c {
		case '"', '\'':
			if err := l.scanQuoted(sb); err != nil {
				return err
			}
		case '\\':
			if l.pos+1 < len(l.input) {
				sb.WriteByte(l.input[l.pos+1])
				l.pos += 2
			} else {
				sb.WriteByte(c)
				l.pos++
			}
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return nil
}

// scanQuoted consumes one quoted segment starting at the opening quote and
// writes its content to sb. Single quotes are literal. Inside double quotes
// a backslash escapes ", \, $ and `, and a backslash-newline is dropped.
func (l *lexer) scanQuoted(sb *strings.Builder) error {
	start := l.pos
	quote := l.input[l.pos]
	l.pos++
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == quote:
			l.pos++
			return nil
		case c == '\\' && quote == '"' && l.pos+1 < len(l.input):
			switch next := l.input[l.pos+1]; next {
			case '"', '\\', '$', '`':
				sb.WriteByte(next)
				l.pos += 2
			case '\n':
				l.pos += 2
			default:
				sb.WriteByte(c)
				l.pos++
			}
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
	return &TokenizeError{Pos: start, Quote: quote}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
