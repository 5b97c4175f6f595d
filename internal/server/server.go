// Copyright 2026 Marcelo Cantos
// SPDX-License-Identifier: Apache-2.0

// Package server exposes the tokenizer, parser and completion engine as
// MCP tools over stdio.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/marcelocantos/shellfront/internal/complete"
	"github.com/marcelocantos/shellfront/internal/pipeline"
	"github.com/marcelocantos/shellfront/internal/value"
)

// Server answers MCP tool calls.
type Server struct {
	engine     *complete.Engine
	maxResults int
	logger     *zap.Logger
	mcp        *mcpserver.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMaxResults sets the default history result limit.
func WithMaxResults(n int) Option {
	return func(s *Server) { s.maxResults = n }
}

// New returns a server backed by engine.
func New(engine *complete.Engine, version string, opts ...Option) *Server {
	s := &Server{engine: engine, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = mcpserver.NewMCPServer("shellfront", version, mcpserver.WithToolCapabilities(false))
	s.mcp.AddTool(mcp.NewTool("tokenize",
		mcp.WithDescription("Split shell input into tokens"),
		mcp.WithString("input", mcp.Required(), mcp.Description("Shell input")),
	), s.handleTokenize)
	s.mcp.AddTool(mcp.NewTool("parse",
		mcp.WithDescription("Parse shell input into a pipeline of commands"),
		mcp.WithString("input", mcp.Required(), mcp.Description("Shell input")),
	), s.handleParse)
	s.mcp.AddTool(mcp.NewTool("complete",
		mcp.WithDescription("Completion candidates for the word under the cursor"),
		mcp.WithString("input", mcp.Required(), mcp.Description("Partial shell input")),
		mcp.WithNumber("cursor", mcp.Description("Byte offset of the cursor; defaults to the end of input")),
		mcp.WithString("cwd", mcp.Description("Directory for relative file completion")),
		mcp.WithObject("env", mcp.Description("Environment variables offered for $ completion")),
	), s.handleComplete)
	s.mcp.AddTool(mcp.NewTool("history",
		mcp.WithDescription("Previously entered lines starting with a prefix, most recent first"),
		mcp.WithString("prefix", mcp.Description("Line prefix")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of lines")),
	), s.handleHistory)
	return s
}

// Serve answers newline-delimited JSON-RPC requests read from in, writing
// responses to out, until in is exhausted or ctx is done.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("mcp server starting")
	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(zap.NewStdLog(s.logger))
	err := stdio.Listen(ctx, in, out)
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (s *Server) handleTokenize(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := req.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	tokens, err := pipeline.Tokenize(input)
	if err != nil {
		return s.toolError("tokenize", err), nil
	}
	return jsonResult(tokens)
}

func (s *Server) handleParse(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := req.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := pipeline.ParseString(input)
	if err != nil {
		return s.toolError("parse", err), nil
	}
	return jsonResult(struct {
		Pipeline  *pipeline.Pipeline `json:"pipeline"`
		Canonical string             `json:"canonical"`
	}{p, p.String()})
}

func (s *Server) handleComplete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := req.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	env := make(map[string]string)
	if raw, ok := req.GetArguments()["env"].(map[string]any); ok {
		for k, v := range raw {
			if str, ok := v.(string); ok {
				env[k] = str
			}
		}
	}
	items := s.engine.Complete(ctx, complete.Request{
		Input:  input,
		Cursor: req.GetInt("cursor", len(input)),
		Cwd:    req.GetString("cwd", ""),
		Env:    env,
	})
	s.logger.Debug("complete", zap.String("input", input), zap.Int("candidates", len(items)))
	return valueResult(complete.Export(items))
}

func (s *Server) handleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items := s.engine.CompleteHistory(ctx, req.GetString("prefix", ""), req.GetInt("limit", s.maxResults))
	return valueResult(complete.Export(items))
}

func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	s.logger.Debug("tool failed", zap.String("tool", tool), zap.Error(err))
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}

func valueResult(v value.Value) (*mcp.CallToolResult, error) {
	data, err := value.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(data)), nil
}
