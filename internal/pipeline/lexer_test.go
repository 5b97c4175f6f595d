// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type tv struct {
	Type  TokenType
	Value string
}

// kinds strips positions so expectations stay readable.
func kinds(tokens []Token) []tv {
	out := make([]tv, len(tokens))
	for i, t := range tokens {
		out[i] = tv{t.Type, t.Value}
	}
	return out
}

func mustTokenize(t *testing.T, input string) []Token {
	t.Helper()
	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", input, err)
	}
	return tokens
}

func TestTokenize(t *testing.T) {
	eof := tv{TokenEOF, ""}
	tests := []struct {
		name  string
		input string
		want  []tv
	}{
		{"empty", "", []tv{eof}},
		{"whitespace only", " \t\n ", []tv{eof}},
		{"comment only", "# just a comment", []tv{eof}},
		{"trailing comment", "ls # list\n", []tv{{TokenWord, "ls"}, eof}},
		{"hash inside word", "echo a#b", []tv{{TokenWord, "echo"}, {TokenWord, "a#b"}, eof}},
		{"quoted string", `echo "hello world"`, []tv{{TokenWord, "echo"}, {TokenString, "hello world"}, eof}},
		{"single quotes literal", `echo 'a\nb $x'`, []tv{{TokenWord, "echo"}, {TokenString, `a\nb $x`}, eof}},
		{"double quote escapes", `echo "say \"hi\" \\ \$HOME \q"`, []tv{{TokenWord, "echo"}, {TokenString, `say "hi" \ $HOME \q`}, eof}},
		{"empty string", `echo ""`, []tv{{TokenWord, "echo"}, {TokenString, ""}, eof}},
		{"string then word", `echo "a"b`, []tv{{TokenWord, "echo"}, {TokenString, "a"}, {TokenWord, "b"}, eof}},
		{"adjacent strings", `echo "a"'c'`, []tv{{TokenWord, "echo"}, {TokenString, "a"}, {TokenString, "c"}, eof}},
		{"quotes inside word", `FOO="a b" env`, []tv{{TokenWord, "FOO=a b"}, {TokenWord, "env"}, eof}},
		{"backslash escape in word", `echo a\ b\;c`, []tv{{TokenWord, "echo"}, {TokenWord, "a b;c"}, eof}},
		{"integer", "head 20", []tv{{TokenWord, "head"}, {TokenNumber, "20"}, eof}},
		{"float", "sleep 3.14", []tv{{TokenWord, "sleep"}, {TokenNumber, "3.14"}, eof}},
		{"number before operator", "echo 1>out", []tv{{TokenWord, "echo"}, {TokenNumber, "1"}, {TokenRedirectOut, ">"}, {TokenWord, "out"}, eof}},
		{"digits then letters", "sleep 10s 3rd", []tv{
			{TokenWord, "sleep"}, {TokenNumber, "10"}, {TokenWord, "s"}, {TokenNumber, "3"}, {TokenWord, "rd"}, eof,
		}},
		{"version string", "echo 1.2.3", []tv{{TokenWord, "echo"}, {TokenNumber, "1.2"}, {TokenWord, ".3"}, eof}},
		{"trailing dot", "echo 3.", []tv{{TokenWord, "echo"}, {TokenNumber, "3."}, eof}},
		{"word containing digits", "echo a10 x1.5", []tv{{TokenWord, "echo"}, {TokenWord, "a10"}, {TokenWord, "x1.5"}, eof}},
		{"flags and assignments stay words", "FOO=1 ls -la --color=auto", []tv{
			{TokenWord, "FOO=1"}, {TokenWord, "ls"}, {TokenWord, "-la"}, {TokenWord, "--color=auto"}, eof,
		}},
		{"variables stay words", "echo $HOME ${PATH}", []tv{{TokenWord, "echo"}, {TokenWord, "$HOME"}, {TokenWord, "${PATH}"}, eof}},
		{"operators", "a|b||c&&d;e", []tv{
			{TokenWord, "a"}, {TokenPipe, "|"}, {TokenWord, "b"}, {TokenOr, "||"},
			{TokenWord, "c"}, {TokenAnd, "&&"}, {TokenWord, "d"}, {TokenSemicolon, ";"}, {TokenWord, "e"}, eof,
		}},
		{"redirects", "sort < in >> out > x", []tv{
			{TokenWord, "sort"}, {TokenRedirectIn, "<"}, {TokenWord, "in"},
			{TokenRedirectAppend, ">>"}, {TokenWord, "out"}, {TokenRedirectOut, ">"}, {TokenWord, "x"}, eof,
		}},
		{"lone ampersand is word text", "echo a&b &", []tv{{TokenWord, "echo"}, {TokenWord, "a&b"}, {TokenWord, "&"}, eof}},
		{"adjacent separators", "cmd1;;cmd2", []tv{
			{TokenWord, "cmd1"}, {TokenSemicolon, ";"}, {TokenSemicolon, ";"}, {TokenWord, "cmd2"}, eof,
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(mustTokenize(t, tt.input))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens := mustTokenize(t, `ls  -l | "x y"`)
	want := []int{0, 4, 7, 9, 14}
	var got []int
	for _, tok := range tokens {
		got = append(got, tok.Pos)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeSingleEOF(t *testing.T) {
	inputs := []string{"", "a", "a | b", "# c", ";;;", "x > y", `"q"`, "1.5", "&&"}
	for _, in := range inputs {
		tokens := mustTokenize(t, in)
		n := 0
		for _, tok := range tokens {
			if tok.Type == TokenEOF {
				n++
			}
		}
		if n != 1 || tokens[len(tokens)-1].Type != TokenEOF {
			t.Errorf("Tokenize(%q): want exactly one trailing EOF, got %v", in, kinds(tokens))
		}
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	const in = `FOO=bar grep -r "TODO" src/ | sort >> out.txt && echo done # tail`
	first := mustTokenize(t, in)
	second := mustTokenize(t, in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("re-tokenizing differs (-first +second):\n%s", diff)
	}
}

func TestTokenizeQuotedPassthrough(t *testing.T) {
	tokens := mustTokenize(t, `echo "hello world"`)
	var strs, words []Token
	for _, tok := range tokens {
		switch tok.Type {
		case TokenString:
			strs = append(strs, tok)
		case TokenWord:
			words = append(words, tok)
		}
	}
	if len(strs) != 1 || strs[0].Value != "hello world" {
		t.Errorf("expected one String token \"hello world\", got %v", strs)
	}
	if len(words) != 1 || words[0].Value != "echo" {
		t.Errorf("expected one Word token echo, got %v", words)
	}
}

func TestTokenizeUnterminatedQuote(t *testing.T) {
	for _, in := range []string{`echo "abc`, `echo 'abc`, `FOO="x ls`, `echo "a\"`} {
		_, err := Tokenize(in)
		var te *TokenizeError
		if !errors.As(err, &te) {
			t.Errorf("Tokenize(%q): want *TokenizeError, got %v", in, err)
		}
	}

	_, err := Tokenize(`ls 'x`)
	var te *TokenizeError
	if !errors.As(err, &te) {
		t.Fatalf("want *TokenizeError, got %v", err)
	}
	if te.Pos != 3 || te.Quote != '\'' {
		t.Errorf("TokenizeError = %+v, want Pos 3 Quote '", te)
	}
}

func TestTokenTypeJSONName(t *testing.T) {
	b, err := TokenRedirectAppend.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "RedirectAppend" {
		t.Errorf("MarshalText = %q", b)
	}
}
