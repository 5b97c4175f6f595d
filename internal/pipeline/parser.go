// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package pipeline

import (
	"regexp"
	"strings"
)

var assignmentRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*=`)

// ParseString tokenizes and parses a line of input.
func ParseString(input string) (*Pipeline, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// Parse builds a Pipeline from a token stream. The stream is split into
// command segments on |, &&, || and ; (all equal precedence, left to right),
// then each segment is parsed independently.
//
// An operator with no command on either side is an error, so `a;;b`,
// `| a` and `a &&` are all rejected.
func Parse(tokens []Token) (*Pipeline, error) {
	end := len(tokens)
	for i, tok := range tokens {
		if tok.Type == TokenEOF {
			end = i
			break
		}
	}
	if end == 0 {
		return nil, &ParseError{Msg: "empty pipeline"}
	}

	p := &Pipeline{Commands: []Command{}, Operators: []Operator{}}
	start := 0
	var prev *Token // operator that opened the current segment
	for i := 0; i < end; i++ {
		op, ok := tokens[i].operator()
		if !ok {
			continue
		}
		cmd, named, err := parseSegment(tokens[start:i])
		if err != nil {
			return nil, err
		}
		if !named {
			return nil, parseErrorf(&tokens[i], "missing command before %q", tokens[i].Value)
		}
		p.Commands = append(p.Commands, cmd)
		p.Operators = append(p.Operators, op)
		start = i + 1
		prev = &tokens[i]
	}

	cmd, named, err := parseSegment(tokens[start:end])
	if err != nil {
		return nil, err
	}
	if !named {
		if prev != nil {
			return nil, parseErrorf(prev, "missing command after %q", prev.Value)
		}
		var tok *Token
		if end < len(tokens) {
			tok = &tokens[end]
		}
		return nil, parseErrorf(tok, "missing command name")
	}
	p.Commands = append(p.Commands, cmd)
	return p, nil
}

// parseSegment parses the tokens of one command. named is false when the
// segment holds no command name (it is empty or only assignments and
// redirects); the caller reports that with the surrounding operator.
func parseSegment(seg []Token) (cmd Command, named bool, err error) {
	cmd.Args = []Argument{}
	cmd.Env = map[string]string{}
	var sawIn, sawOut, flagsDone bool

	for i := 0; i < len(seg); i++ {
		tok := seg[i]
		switch tok.Type {
		case TokenRedirectOut, TokenRedirectAppend, TokenRedirectIn:
			if i+1 >= len(seg) || (seg[i+1].Type != TokenWord && seg[i+1].Type != TokenString) || seg[i+1].Value == "" {
				return cmd, named, parseErrorf(&seg[i], "%s requires a file path", tok.Value)
			}
			i++
			if cmd.Redirect == nil {
				cmd.Redirect = &Redirect{}
			}
			if tok.Type == TokenRedirectIn {
				if sawIn {
					return cmd, named, parseErrorf(&seg[i-1], "multiple %s redirects", tok.Value)
				}
				sawIn = true
				cmd.Redirect.Stdin = seg[i].Value
			} else {
				if sawOut {
					return cmd, named, parseErrorf(&seg[i-1], "multiple output redirects")
				}
				sawOut = true
				cmd.Redirect.Stdout = seg[i].Value
				cmd.Redirect.Append = tok.Type == TokenRedirectAppend
			}

		case TokenWord, TokenString, TokenNumber:
			if !named {
				if tok.Type == TokenWord && assignmentRE.MatchString(tok.Value) {
					key, val, _ := strings.Cut(tok.Value, "=")
					cmd.Env[key] = val
					continue
				}
				cmd.Name = tok.Value
				named = true
				continue
			}
			cmd.Args = append(cmd.Args, parseArgument(tok, &flagsDone))

		default:
			return cmd, named, parseErrorf(&seg[i], "unexpected %s", tok)
		}
	}
	return cmd, named, nil
}

// parseArgument classifies a word after the command name. Only unquoted
// words can be flags; "-" and "--" are positional, and "--" ends flag
// parsing for the rest of the command.
func parseArgument(tok Token, flagsDone *bool) Argument {
	if tok.Type != TokenWord || *flagsDone || !strings.HasPrefix(tok.Value, "-") || tok.Value == "-" {
		return Positional(tok.Value)
	}
	if tok.Value == "--" {
		*flagsDone = true
		return Positional(tok.Value)
	}
	name := strings.TrimLeft(tok.Value, "-")
	if n, v, ok := strings.Cut(name, "="); ok {
		return FlagValue(n, v)
	}
	return Flag(name)
}
