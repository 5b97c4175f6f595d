// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package complete

// Builtins returns the shell builtins every engine starts with.
func Builtins() []Command {
	return []Command{
		{Name: "alias", Description: "define or list aliases", Flags: []string{"-p"}},
		{Name: "cd", Description: "change the working directory", Flags: []string{"-L", "-P"}},
		{Name: "clear", Description: "clear the screen"},
		{Name: "complete", Description: "list completions for a line", Flags: []string{"--cursor", "--json"}},
		{Name: "echo", Description: "write arguments to stdout", Flags: []string{"-n", "-e", "-E"}},
		{Name: "exit", Description: "exit the shell"},
		{Name: "export", Description: "set environment variables", Flags: []string{"-p", "-n"}},
		{Name: "help", Description: "show help for builtins"},
		{Name: "history", Description: "show command history", Flags: []string{"-c", "-n"}},
		{Name: "pwd", Description: "print the working directory", Flags: []string{"-L", "-P"}},
		{Name: "source", Description: "run commands from a file"},
		{Name: "to-json", Description: "convert input to JSON", Flags: []string{"--indent"}},
		{Name: "type", Description: "describe how a name resolves", Flags: []string{"-a", "-t"}},
		{Name: "unalias", Description: "remove aliases", Flags: []string{"-a"}},
		{Name: "unset", Description: "remove variables", Flags: []string{"-v", "-f"}},
		{Name: "which", Description: "locate a command", Flags: []string{"-a"}},
	}
}
