package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/runcmd"
	"github.com/aretw0/runcmd/internal/config"
	"github.com/aretw0/runcmd/internal/logging"
	"github.com/aretw0/runcmd/pkg/domain"
	"github.com/aretw0/runcmd/pkg/headless"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// PresetsURI is the resource listing the configured presets.
const PresetsURI = "runcmd://presets"

// Runner executes headless requests.
type Runner interface {
	Run(ctx context.Context, req headless.Request) (*headless.Response, error)
}

// PlaceholdersResponse lists the placeholders of a command.
type PlaceholdersResponse struct {
	Placeholders []domain.Placeholder `json:"placeholders" jsonschema_description:"Placeholders in order of appearance"`
}

// Server wraps a Runner and exposes it as an MCP Server.
type Server struct {
	runner    Runner
	presets   config.Presets
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithPresets exposes presets as a resource and lets run_command refer to them by caption.
func WithPresets(p config.Presets) Option {
	return func(s *Server) {
		s.presets = p
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(runner Runner, opts ...Option) *Server {
	s := &Server{
		runner:    runner,
		presets:   config.Presets{},
		mcpServer: server.NewMCPServer("runcmd-mcp", runcmd.Version, server.WithToolCapabilities(true)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves over Server-Sent Events on host:port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, host string, port int) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	baseURL := "http://" + addr

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
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

func (s *Server) registerTools() {
	runTool := mcp.NewTool("run_command",
		mcp.WithDescription("Run a shell command over a text buffer. Placeholders not given in 'arguments' take their defaults."),
		mcp.WithString("command", mcp.Description("Command line, may contain ${arg_name|default} placeholders (optional when preset is given)")),
		mcp.WithString("preset", mcp.Description("Caption of a configured preset to start from (optional)")),
		mcp.WithString("text", mcp.Description("Document text the command operates on")),
		mcp.WithString("selections", mcp.Description(`JSON array of {"start","end"} byte offsets (optional)`)),
		mcp.WithString("source", mcp.Description("Input: selection, window or none")),
		mcp.WithString("target", mcp.Description("Output: selection, window or none")),
		mcp.WithString("cwd", mcp.Description("Working directory, or $name of a variable")),
		mcp.WithNumber("timeout", mcp.Description("Timeout in seconds")),
		mcp.WithString("arguments", mcp.Description("JSON object mapping placeholder tokens to values (optional)")),
		mcp.WithString("variables", mcp.Description("JSON object of variables for $name working directories (optional)")),
		mcp.WithOutputSchema[headless.Response](),
	)
	s.mcpServer.AddTool(runTool, mcp.NewStructuredToolHandler(s.handleRun))

	placeholdersTool := mcp.NewTool("list_placeholders",
		mcp.WithDescription("List the ${arg_...} placeholders of a command with their defaults."),
		mcp.WithString("command", mcp.Required(), mcp.Description("Command line to inspect")),
		mcp.WithOutputSchema[PlaceholdersResponse](),
	)
	s.mcpServer.AddTool(placeholdersTool, mcp.NewStructuredToolHandler(s.handlePlaceholders))
}

func (s *Server) handleRun(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (headless.Response, error) {
	req, err := s.buildRequest(args)
	if err != nil {
		return headless.Response{}, err
	}

	resp, err := s.runner.Run(ctx, req)
	if err != nil {
		s.logger.Warn("MCP run_command failed", "error", err)
		return headless.Response{}, err
	}
	return *resp, nil
}

func (s *Server) handlePlaceholders(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (PlaceholdersResponse, error) {
	command, _ := args["command"].(string)
	return PlaceholdersResponse{Placeholders: headless.Placeholders(command)}, nil
}

func (s *Server) buildRequest(args map[string]interface{}) (headless.Request, error) {
	req := headless.Request{Args: map[string]any{}}

	if caption, _ := args["preset"].(string); caption != "" {
		preset, err := s.presets.Find(caption)
		if err != nil {
			return req, err
		}
		for k, v := range preset.Args {
			req.Args[k] = v
		}
	}

	for _, key := range []string{domain.KeyCommand, domain.KeySource, domain.KeyTarget, domain.KeyCwd} {
		if v, ok := args[key].(string); ok && v != "" {
			req.Args[key] = v
		}
	}
	if v, ok := args[domain.KeyTimeout]; ok {
		req.Args[domain.KeyTimeout] = v
	}

	req.Text, _ = args["text"].(string)

	if raw, ok := args["selections"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Selections); err != nil {
			return req, fmt.Errorf("%w: selections: %v", headless.ErrInvalidRequest, err)
		}
	}
	if raw, ok := args["arguments"].(string); ok && raw != "" {
		var subs map[string]any
		if err := json.Unmarshal([]byte(raw), &subs); err != nil {
			return req, fmt.Errorf("%w: arguments: %v", headless.ErrInvalidRequest, err)
		}
		for k, v := range subs {
			req.Args[k] = v
		}
	}
	if raw, ok := args["variables"].(string); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
			return req, fmt.Errorf("%w: variables: %v", headless.ErrInvalidRequest, err)
		}
	}
	return req, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(PresetsURI, "Configured Presets",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.presets.Sorted())
		if err != nil {
			return nil, fmt.Errorf("failed to encode presets: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      PresetsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
