// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func mustParse(t *testing.T, input string) *Pipeline {
	t.Helper()
	p, err := ParseString(input)
	if err != nil {
		t.Fatalf("ParseString(%q): %v", input, err)
	}
	return p
}

func TestParseSingleCommand(t *testing.T) {
	p := mustParse(t, `grep -r TODO src/`)
	if len(p.Commands) != 1 {
		t.Fatalf("expected 1 command, got %d", len(p.Commands))
	}
	if len(p.Operators) != 0 {
		t.Errorf("expected no operators, got %v", p.Operators)
	}
	want := Command{
		Name: "grep",
		Args: []Argument{Flag("r"), Positional("TODO"), Positional("src/")},
		Env:  map[string]string{},
	}
	if diff := cmp.Diff(want, p.Commands[0]); diff != "" {
		t.Errorf("command mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFlagVsPositional(t *testing.T) {
	p := mustParse(t, "ls -la")
	args := p.Commands[0].Args
	if len(args) != 1 || args[0].Kind != ArgFlag || args[0].Name != "la" {
		t.Errorf("expected Flag la, got %+v", args)
	}
}

func TestParseFlags(t *testing.T) {
	p := mustParse(t, `cmd --color=auto -x=1 --verbose "-q" 42 - -- -n --k=v`)
	want := []Argument{
		FlagValue("color", "auto"),
		FlagValue("x", "1"),
		Flag("verbose"),
		Positional("-q"),
		Positional("42"),
		Positional("-"),
		Positional("--"),
		Positional("-n"),
		Positional("--k=v"),
	}
	if diff := cmp.Diff(want, p.Commands[0].Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEnvAssignment(t *testing.T) {
	p := mustParse(t, "FOO=bar echo hello")
	cmd := p.Commands[0]
	if cmd.Env["FOO"] != "bar" {
		t.Errorf("env FOO = %q, want bar", cmd.Env["FOO"])
	}
	if cmd.Name != "echo" {
		t.Errorf("name = %q, want echo", cmd.Name)
	}
	if diff := cmp.Diff([]Argument{Positional("hello")}, cmd.Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEnvAssignments(t *testing.T) {
	p := mustParse(t, `A=1 B_2="x y" C= make X=after`)
	cmd := p.Commands[0]
	want := map[string]string{"A": "1", "B_2": "x y", "C": ""}
	if diff := cmp.Diff(want, cmd.Env); diff != "" {
		t.Errorf("env mismatch (-want +got):\n%s", diff)
	}
	if cmd.Name != "make" {
		t.Errorf("name = %q, want make", cmd.Name)
	}
	if diff := cmp.Diff([]Argument{Positional("X=after")}, cmd.Args); diff != "" {
		t.Errorf("assignment after name should be positional (-want +got):\n%s", diff)
	}
}

func TestParseNonAssignmentNames(t *testing.T) {
	for _, in := range []string{`"FOO=bar"`, `1X=y`, `=x`} {
		p := mustParse(t, in)
		if len(p.Commands[0].Env) != 0 {
			t.Errorf("ParseString(%q): unexpected env %v", in, p.Commands[0].Env)
		}
	}
}

func TestParseNumberName(t *testing.T) {
	p := mustParse(t, "42 x")
	if p.Commands[0].Name != "42" {
		t.Errorf("name = %q, want 42", p.Commands[0].Name)
	}
}

func TestParseRedirectAppend(t *testing.T) {
	p := mustParse(t, "echo hi >> out.txt")
	r := p.Commands[0].Redirect
	if r == nil || r.Stdout != "out.txt" || !r.Append {
		t.Errorf("redirect = %+v, want stdout out.txt append", r)
	}

	p = mustParse(t, "echo hi > out.txt")
	r = p.Commands[0].Redirect
	if r == nil || r.Stdout != "out.txt" || r.Append {
		t.Errorf("redirect = %+v, want stdout out.txt no append", r)
	}
	if diff := cmp.Diff([]Argument{Positional("hi")}, p.Commands[0].Args); diff != "" {
		t.Errorf("redirect target leaked into args (-want +got):\n%s", diff)
	}
}

func TestParseRedirectIn(t *testing.T) {
	p := mustParse(t, `sort < "in file.txt" | head`)
	r := p.Commands[0].Redirect
	if r == nil || r.Stdin != "in file.txt" || r.Stdout != "" {
		t.Errorf("redirect = %+v, want stdin \"in file.txt\"", r)
	}
	if p.Commands[1].Redirect != nil {
		t.Errorf("second command should have no redirect, got %+v", p.Commands[1].Redirect)
	}
}

func TestParseRedirectBeforeName(t *testing.T) {
	p := mustParse(t, "< in.txt FOO=1 sort -u > out.txt")
	cmd := p.Commands[0]
	want := Command{
		Name:     "sort",
		Args:     []Argument{Flag("u")},
		Env:      map[string]string{"FOO": "1"},
		Redirect: &Redirect{Stdin: "in.txt", Stdout: "out.txt"},
	}
	if diff := cmp.Diff(want, cmd); diff != "" {
		t.Errorf("command mismatch (-want +got):\n%s", diff)
	}
}

func TestParseOperators(t *testing.T) {
	tests := []struct {
		input string
		names []string
		ops   []Operator
	}{
		{"a | b | c", []string{"a", "b", "c"}, []Operator{OpPipe, OpPipe}},
		{"a && b", []string{"a", "b"}, []Operator{OpAnd}},
		{"a || b; c", []string{"a", "b", "c"}, []Operator{OpOr, OpSequence}},
		{"make && ./test || echo failed | tee log", []string{"make", "./test", "echo", "tee"}, []Operator{OpAnd, OpOr, OpPipe}},
	}
	for _, tt := range tests {
		p := mustParse(t, tt.input)
		var names []string
		for _, c := range p.Commands {
			names = append(names, c.Name)
		}
		if diff := cmp.Diff(tt.names, names); diff != "" {
			t.Errorf("%q names mismatch (-want +got):\n%s", tt.input, diff)
		}
		if diff := cmp.Diff(tt.ops, p.Operators); diff != "" {
			t.Errorf("%q operators mismatch (-want +got):\n%s", tt.input, diff)
		}
		if len(p.Operators) != len(p.Commands)-1 {
			t.Errorf("%q: %d operators for %d commands", tt.input, len(p.Operators), len(p.Commands))
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		msg     string
		tokType TokenType
		noToken bool
	}{
		{"empty", "", "empty pipeline", 0, true},
		{"comment only", "# nothing", "empty pipeline", 0, true},
		{"leading pipe", "| grep foo", "missing command before", TokenPipe, false},
		{"trailing pipe", "grep foo |", "missing command after", TokenPipe, false},
		{"trailing semicolon", "ls;", "missing command after", TokenSemicolon, false},
		{"double semicolon", "cmd1;;cmd2", "missing command before", TokenSemicolon, false},
		{"double and", "a && && b", "missing command before", TokenAnd, false},
		{"assignment only", "FOO=bar", "missing command name", TokenEOF, false},
		{"assignment only before op", "FOO=bar | cat", "missing command before", TokenPipe, false},
		{"redirect only", "> out.txt", "missing command name", TokenEOF, false},
		{"redirect missing target", "cat >", "requires a file path", TokenRedirectOut, false},
		{"redirect before operator", "cat > | wc", "requires a file path", TokenRedirectOut, false},
		{"redirect to number", "cat < 5", "requires a file path", TokenRedirectIn, false},
		{"redirect to empty string", "cat > ''", "requires a file path", TokenRedirectOut, false},
		{"stdin from empty string", `sort < "" > out`, "requires a file path", TokenRedirectIn, false},
		{"double stdout", "cat > a.txt >> b.txt", "multiple output redirects", TokenRedirectAppend, false},
		{"double stdin", "cat < a < b", "multiple < redirects", TokenRedirectIn, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.input)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("want *ParseError, got %v", err)
			}
			if !strings.Contains(pe.Msg, tt.msg) {
				t.Errorf("message %q does not contain %q", pe.Msg, tt.msg)
			}
			if tt.noToken {
				if pe.Token != nil {
					t.Errorf("expected no token, got %v", pe.Token)
				}
				return
			}
			if pe.Token == nil {
				t.Fatalf("expected offending token %v, got none", tt.tokType)
			}
			if pe.Token.Type != tt.tokType {
				t.Errorf("offending token = %v, want %v", pe.Token.Type, tt.tokType)
			}
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, err := ParseString("ls ;; pwd")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "offset 4") {
		t.Errorf("error %q should report offset 4", err)
	}
}

func TestParseTokenizeErrorPropagates(t *testing.T) {
	_, err := ParseString(`echo "oops`)
	var te *TokenizeError
	if !errors.As(err, &te) {
		t.Fatalf("want *TokenizeError, got %v", err)
	}
}

func TestParseWithoutEOF(t *testing.T) {
	tokens := []Token{{Type: TokenWord, Value: "ls"}, {Type: TokenWord, Value: "-l"}}
	p, err := Parse(tokens)
	if err != nil {
		t.Fatal(err)
	}
	if p.Commands[0].Name != "ls" || len(p.Commands[0].Args) != 1 {
		t.Errorf("unexpected pipeline %+v", p)
	}
}

func TestPipelineStringRoundTrip(t *testing.T) {
	inputs := []string{
		"ls -la",
		`FOO=bar B="x y" echo "hello world" it\'s`,
		"a | b | c",
		"make && ./test || echo failed; date",
		"sort < in.txt >> out.txt",
		`grep -e "-x" -- -n 42 3rd "" '#tag'`,
		`"A=b" c --name="some value" -v=1`,
		`cat "a|b" 'x;y' 'q"r' p\&\&q`,
		"sleep 10s && echo 1.2.3",
		`echo "a"b 'c'"d" x"e f"`,
		`echo "it's" 'say "hi"' "a'b\"\$c"`,
	}
	opts := cmpopts.EquateEmpty()
	for _, in := range inputs {
		p := mustParse(t, in)
		rendered := p.String()
		q, err := ParseString(rendered)
		if err != nil {
			t.Errorf("%q rendered as %q which fails to parse: %v", in, rendered, err)
			continue
		}
		if diff := cmp.Diff(p, q, opts); diff != "" {
			t.Errorf("%q rendered as %q does not round-trip (-orig +reparsed):\n%s", in, rendered, diff)
		}
	}
}

func TestPipelineString(t *testing.T) {
	p := mustParse(t, `B=2 A=1 echo  "hello world" -n   >>log;ls`)
	want := `A=1 B=2 echo 'hello world' -n >> log; ls`
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		"plain":    "plain",
		"src/a.go": "src/a.go",
		"$HOME":    "$HOME",
		"":         "''",
		"a b":      "'a b'",
		"it's":     `"it's"`,
		`a'b"$c`:   `"a'b\"\$c"`,
		"42":       "'42'",
		"#x":       "'#x'",
		"a|b":      "'a|b'",
	}
	for in, want := range tests {
		if got := Quote(in); got != want {
			t.Errorf("Quote(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPipelineJSON(t *testing.T) {
	p := mustParse(t, "FOO=1 ls -la --color=auto x > out")
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"commands":[{"name":"ls","args":[{"_tag":"Flag","name":"la"},{"_tag":"Flag","name":"color","value":"auto"},{"_tag":"Positional","value":"x"}],"env":{"FOO":"1"},"redirect":{"stdout":"out","append":false}}],"operators":[]}`
	if string(data) != want {
		t.Errorf("JSON mismatch:\n got %s\nwant %s", data, want)
	}
}

func TestParseConcurrent(t *testing.T) {
	const in = "a | b && c"
	done := make(chan *Pipeline, 8)
	for range 8 {
		go func() {
			p, err := ParseString(in)
			if err != nil {
				done <- nil
				return
			}
			done <- p
		}()
	}
	first := mustParse(t, in)
	for range 8 {
		p := <-done
		if p == nil {
			t.Fatal("concurrent parse failed")
		}
		if diff := cmp.Diff(first, p); diff != "" {
			t.Errorf("concurrent parse differs:\n%s", diff)
		}
	}
}
