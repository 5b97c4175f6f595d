// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

package complete

import (
	"fmt"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
	"go.uber.org/zap"
)

// LoadScript runs a Starlark completion script from path. See ExecScript.
func (e *Engine) LoadScript(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read completion script: %w", err)
	}
	return e.ExecScript(path, src)
}

// ExecScript runs a Starlark completion script. The script registers
// commands by calling
//
//	command("git", flags=["--version", "-C"], description="version control")
//
// and may use print, which is logged at info level.
func (e *Engine) ExecScript(filename string, src []byte) error {
	thread := &starlark.Thread{
		Name: "completions",
		Print: func(_ *starlark.Thread, msg string) {
			e.logger.Info(msg, zap.String("script", filename))
		},
	}
	predeclared := starlark.StringDict{
		"command": starlark.NewBuiltin("command", e.scriptCommand),
	}
	if _, err := starlark.ExecFileOptions(&syntax.FileOptions{TopLevelControl: true, While: true}, thread, filename, src, predeclared); err != nil {
		return fmt.Errorf("completion script %s: %w", filename, err)
	}
	return nil
}

func (e *Engine) scriptCommand(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		name        string
		description string
		flags       *starlark.List
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "name", &name, "flags?", &flags, "description?", &description); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("%s: empty command name", b.Name())
	}
	c := Command{Name: name, Description: description}
	if flags != nil {
		for i := 0; i < flags.Len(); i++ {
			s, ok := starlark.AsString(flags.Index(i))
			if !ok {
				return nil, fmt.Errorf("%s: flags[%d] is %s, want string", b.Name(), i, flags.Index(i).Type())
			}
			c.Flags = append(c.Flags, s)
		}
	}
	e.RegisterCommand(c)
	return starlark.None, nil
}
