package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/tetrator"
	"github.com/aretw0/tetrator/internal/logging"
	"github.com/aretw0/tetrator/pkg/domain"
	"github.com/aretw0/tetrator/pkg/runner"
	"github.com/aretw0/tetrator/pkg/tetration"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// LimitsURI is the resource describing the evaluator's bounds.
const LimitsURI = "tetrator://limits"

// TetrateResponse is the structured output of the tetrate tool.
type TetrateResponse struct {
	Base      string `json:"base" jsonschema_description:"Base as a decimal string"`
	Height    string `json:"height" jsonschema_description:"Height as a decimal string"`
	Value     string `json:"value,omitempty" jsonschema_description:"Exact decimal value of the tower"`
	Digits    int    `json:"digits" jsonschema_description:"Number of decimal digits in the value"`
	ElapsedNS int64  `json:"elapsed_ns" jsonschema_description:"Evaluation time in nanoseconds"`
	Cached    bool   `json:"cached" jsonschema_description:"Whether the value came from the result cache"`
}

// Limits is the body of the limits resource.
type Limits struct {
	MaxExponent  uint64 `json:"max_exponent"`
	ExponentBits int    `json:"exponent_bits"`
	OperandBits  int    `json:"operand_bits"`
}

// Computer evaluates a request. *tetrator.Service implements it.
type Computer interface {
	Compute(ctx context.Context, req domain.Request) domain.Outcome
}

// Server wraps a Computer and exposes it as an MCP Server.
type Server struct {
	computer  Computer
	logger    *slog.Logger
	maxInput  int
	mcpServer *server.MCPServer
}

// Option defines a functional option for configuring the Server.
type Option func(*Server)

// WithLogger sets the logger used for rejected tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMaxInputSize bounds each tool argument in bytes.
func WithMaxInputSize(limit int) Option {
	return func(s *Server) {
		s.maxInput = limit
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(computer Computer, opts ...Option) *Server {
	s := &Server{
		computer:  computer,
		logger:    logging.NewNop(),
		maxInput:  runner.DefaultMaxInputSize,
		mcpServer: server.NewMCPServer("tetrator-mcp", strings.TrimSpace(tetrator.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

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
	tetrateTool := mcp.NewTool("tetrate",
		mcp.WithDescription("Compute base^^height (a power tower of height copies of base) exactly."),
		mcp.WithString("base", mcp.Required(), mcp.Description("Non-negative decimal integer")),
		mcp.WithString("height", mcp.Required(), mcp.Description("Non-negative decimal integer")),
		mcp.WithBoolean("digits_only", mcp.Description("Return only the digit count")),
		mcp.WithOutputSchema[TetrateResponse](),
	)
	s.mcpServer.AddTool(tetrateTool, mcp.NewStructuredToolHandler(s.handleTetrate))
}

func (s *Server) handleTetrate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (TetrateResponse, error) {
	base, _ := args["base"].(string)
	height, _ := args["height"].(string)
	digitsOnly, _ := args["digits_only"].(bool)

	cleanBase, err := runner.CleanInput(base, s.maxInput)
	if err != nil {
		s.logger.Warn("MCP Tetrate: Input rejected", "error", err, "size", len(base))
		return TetrateResponse{}, fmt.Errorf("input rejected: %w", err)
	}
	cleanHeight, err := runner.CleanInput(height, s.maxInput)
	if err != nil {
		s.logger.Warn("MCP Tetrate: Input rejected", "error", err, "size", len(height))
		return TetrateResponse{}, fmt.Errorf("input rejected: %w", err)
	}

	req, err := runner.ParseRequest(cleanBase, cleanHeight)
	if err != nil {
		return TetrateResponse{}, err
	}

	out := s.computer.Compute(ctx, req)
	if !out.OK() {
		if errors.Is(out.Err, tetration.ErrOverflow) {
			return TetrateResponse{}, fmt.Errorf("%s: %w", req, out.Err)
		}
		return TetrateResponse{}, fmt.Errorf("tetrate failed: %w", out.Err)
	}

	resp := TetrateResponse{
		Base:      req.Base.Dec(),
		Height:    req.Height.Dec(),
		Digits:    out.Digits(),
		ElapsedNS: out.Elapsed.Nanoseconds(),
		Cached:    out.Cached,
	}
	if !digitsOnly {
		resp.Value = out.Decimal()
	}
	return resp, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(LimitsURI, "Evaluator Limits",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, _ := json.Marshal(currentLimits())
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      LimitsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func currentLimits() Limits {
	return Limits{
		MaxExponent:  tetration.MaxExponent,
		ExponentBits: tetration.ExponentBits,
		OperandBits:  256,
	}
}
