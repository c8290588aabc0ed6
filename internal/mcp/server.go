// Package mcp exposes command building as MCP tools, so agents can ask for
// Arthas commands by file and cursor.
package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stoewer/go-strcase"

	"github.com/spachava753/arthas-copy/internal/commands"
	"github.com/spachava753/arthas-copy/internal/editor"
	"github.com/spachava753/arthas-copy/internal/version"
)

// ServerOptions contains options for creating an MCP server
type ServerOptions struct {
	// Modes lists the command modes to expose, one tool each
	Modes []string
	// Command carries everything but the mode, file and cursor
	Command commands.CommandOptions
}

// CommandInput is the input of every command tool
type CommandInput struct {
	File   string `json:"file" jsonschema:"Absolute path of the Java source file"`
	Line   int    `json:"line,omitempty" jsonschema:"1-based line of the cursor, defaults to 1"`
	Column int    `json:"column,omitempty" jsonschema:"1-based column of the cursor, defaults to 1"`
}

// CommandOutput is the structured result of a command tool
type CommandOutput struct {
	Command string `json:"command" jsonschema:"The Arthas command, ready to paste into an Arthas console"`
}

// Server wraps an MCP server that exposes one tool per command mode
type Server struct {
	opts      ServerOptions
	mcpServer *mcp.Server
	tools     []string
}

// ToolName returns the tool name for mode, such as arthas_watch_command.
func ToolName(mode string) string {
	return strcase.SnakeCase("arthas " + mode + " command")
}

// NewServer creates a new MCP server exposing opts.Modes.
func NewServer(opts ServerOptions) (*Server, error) {
	if len(opts.Modes) == 0 {
		return nil, fmt.Errorf("at least one command mode is required")
	}

	outputSchema, err := jsonschema.For[CommandOutput](nil)
	if err != nil {
		return nil, fmt.Errorf("building output schema: %w", err)
	}

	s := &Server{
		opts: opts,
		mcpServer: mcp.NewServer(
			&mcp.Implementation{
				Name:    "arthas-copy",
				Title:   "Arthas command builder",
				Version: version.Get(),
			},
			nil,
		),
	}

	for _, mode := range opts.Modes {
		name := ToolName(mode)
		tool := &mcp.Tool{
			Name:         name,
			Description:  describe(mode),
			OutputSchema: outputSchema,
		}
		mcp.AddTool(s.mcpServer, tool, s.handler(mode))
		s.tools = append(s.tools, name)
	}
	return s, nil
}

func describe(mode string) string {
	switch mode {
	case "watch":
		return "Build the Arthas watch command for the Java method at a cursor position. Resolves the declaring class of the called or enclosing method."
	case "jad":
		return "Build the Arthas jad command that decompiles the class declared in a Java source file."
	}
	return fmt.Sprintf("Build the Arthas command from the %q template for the Java method at a cursor position.", mode)
}

// Tools lists the registered tool names in registration order.
func (s *Server) Tools() []string {
	return s.tools
}

func (s *Server) handler(mode string) mcp.ToolHandlerFor[CommandInput, CommandOutput] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CommandInput) (*mcp.CallToolResult, CommandOutput, error) {
		opts := s.opts.Command
		opts.Mode = mode
		opts.Path = input.File
		opts.Cursor = editor.Cursor{Line: max(input.Line, 1), Column: max(input.Column, 1)}

		command, err := commands.BuildCommand(ctx, opts)
		if err != nil {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: commands.UserMessage(err)}},
				IsError: true,
			}, CommandOutput{}, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: command}},
		}, CommandOutput{Command: command}, nil
	}
}

// Connect serves the protocol over transport until the session ends.
func (s *Server) Connect(ctx context.Context, transport mcp.Transport) (*mcp.ServerSession, error) {
	return s.mcpServer.Connect(ctx, transport, nil)
}

// Serve starts the MCP server and blocks until the context is cancelled
// or the connection is closed. The server communicates via stdio.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
