// Package mcp exposes a synchronized command tree to MCP clients.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/graft/pkg/dispatch"
	"github.com/aretw0/graft/pkg/ports"
	"github.com/aretw0/graft/pkg/suggestion"
	"github.com/goccy/go-json"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// CommandsURI is the resource listing the registered commands.
const CommandsURI = "graft://commands"

// Engine defines what the MCP server needs from a synchronizer.
type Engine[F any] interface {
	SuggestAt(input string, cursor int, source F) *suggestion.Suggestions
	Usage(name string, source F) ([]string, error)
	Commands() []*ports.Handle[F]
}

// Server wraps an Engine and exposes it as an MCP Server.
type Server[F any] struct {
	engine    Engine[F]
	source    func(as string) F
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the server.
type Option func(*settings)

type settings struct {
	logger  *slog.Logger
	version string
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithVersion sets the version reported to clients.
func WithVersion(version string) Option {
	return func(s *settings) { s.version = version }
}

// NewServer creates a new MCP Server instance. source builds the foreign source a call acts as.
func NewServer[F any](engine Engine[F], source func(as string) F, opts ...Option) *Server[F] {
	st := &settings{logger: slog.New(slog.NewTextHandler(io.Discard, nil)), version: "dev"}
	for _, opt := range opts {
		opt(st)
	}
	s := &Server[F]{
		engine: engine,
		source: source,
		logger: st.logger,
		mcpServer: server.NewMCPServer("graft-mcp", st.version,
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server[F]) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server[F]) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP SSE transport on addr until ctx is done.
func (s *Server[F]) ServeSSE(ctx context.Context, addr string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+addr))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server[F]) registerTools() {
	// TOOL: suggest
	s.mcpServer.AddTool(mcp.NewTool("suggest",
		mcp.WithDescription("Propose completions for a partial command line."),
		mcp.WithString("input", mcp.Required(), mcp.Description("The command line typed so far")),
		mcp.WithNumber("cursor", mcp.Description("Offset to complete at (defaults to the end of input)")),
		mcp.WithString("as", mcp.Description("Who is typing, as name or name:perm1,perm2")),
	), s.handleSuggest)

	// TOOL: list_commands
	s.mcpServer.AddTool(mcp.NewTool("list_commands",
		mcp.WithDescription("List the registered commands with their usage."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := s.commandsJSON()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	})

	// TOOL: usage
	s.mcpServer.AddTool(mcp.NewTool("usage",
		mcp.WithDescription("Show the command lines a registered command accepts."),
		mcp.WithString("command", mcp.Required(), mcp.Description("Bare or qualified command name")),
		mcp.WithString("as", mcp.Description("Who is asking, as name or name:perm1,perm2")),
	), s.handleUsage)
}

func (s *Server[F]) handleSuggest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cursor := request.GetInt("cursor", len(input))
	if cursor < 0 || cursor > len(input) {
		return mcp.NewToolResultError(fmt.Sprintf("cursor must be between 0 and %d", len(input))), nil
	}

	result := s.engine.SuggestAt(input, cursor, s.source(request.GetString("as", "")))
	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server[F]) handleUsage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("command")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	usage, err := s.engine.Usage(name, s.source(request.GetString("as", "")))
	if err != nil {
		if !errors.Is(err, dispatch.ErrUnknownCommand) {
			s.logger.Error("usage failed", "command", name, "err", err)
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(usage) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("%s: nothing available", name)), nil
	}
	jsonBytes, _ := json.Marshal(usage)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server[F]) commandsJSON() (string, error) {
	jsonBytes, err := json.Marshal(s.engine.Commands())
	if err != nil {
		return "", fmt.Errorf("failed to encode commands: %w", err)
	}
	return string(jsonBytes), nil
}

func (s *Server[F]) registerResources() {
	// EXPOSE: graft://commands
	s.mcpServer.AddResource(mcp.NewResource(CommandsURI, "Registered Commands",
		mcp.WithMIMEType("application/json"),
	), s.readCommands)
}

func (s *Server[F]) readCommands(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := s.commandsJSON()
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      CommandsURI,
			MIMEType: "application/json",
			Text:     text,
		},
	}, nil
}
