// Package mcp exposes the query operations as MCP tools over stdio and
// streamable-HTTP transports.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	service "github.com/unirank/unirank/internal/app"
	"github.com/unirank/unirank/pkg/logger"
)

const (
	serverName    = "unirank-mcp"
	serverVersion = "1.0.0"
)

// Transport selects how the MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout (default, suitable for local agent
	// integrations).
	TransportStdio Transport = "stdio"
	// TransportHTTP uses streamable HTTP (suitable for remote agents or
	// multiple concurrent clients).
	TransportHTTP Transport = "http"
)

// Server wraps an MCP server around the query service.
type Server struct {
	mcp *mcpsrv.MCPServer
	svc *service.Service
	log logger.Logger
}

// New creates an MCP server backed by the given query service. The server is
// populated with all tools but does not start listening until one of the
// Serve* methods is called.
func New(svc *service.Service, log logger.Logger) *Server {
	if log == nil {
		log = logger.Named("mcp")
	}
	s := &Server{
		svc: svc,
		log: log,
	}

	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions),
	)
	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}

	s.mcp = mcpServer
	return s
}

const instructions = `You are connected to a university rankings MCP server.

The dataset holds multi-year world university rankings. Available tools let
you search universities by name, list the top-ranked universities of a year
(optionally by country), compare countries by university counts and scores,
track year-over-year rank movement, inspect the top-100 country distribution,
and fetch per-year summaries.

All data is read-only. Countries accept ISO 3166-1 alpha-2 codes (CN, US,
GB), full names, or common aliases. Call list_available_years first when
unsure which years the dataset covers.`

// tools returns all MCP tools this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolSearchUniversity(),
		s.toolTopUniversities(),
		s.toolCountryStats(),
		s.toolCountryScores(),
		s.toolRankChanges(),
		s.toolTop100Distribution(),
		s.toolSummary(),
		s.toolListYears(),
		s.toolListCountries(),
	}
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.log.Info(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server: %w", err)
	}
	return nil
}

// ServeHTTP runs the MCP server as a streamable HTTP server on addr until
// ctx is cancelled. addr is a host:port string such as "127.0.0.1:9000".
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpSrv := &http.Server{Addr: addr}
	streamSrv := mcpsrv.NewStreamableHTTPServer(s.mcp,
		mcpsrv.WithStreamableHTTPServer(httpSrv),
	)

	s.log.Info(ctx, "mcp server listening on http", logger.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := streamSrv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.log.Info(ctx, "mcp server shutting down")
		if err := streamSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// resultErr wraps an error in a CallToolResult with IsError=true. Query
// failures are tool results, never protocol errors.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultJSON serialises v to JSON and returns it as a CallToolResult.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// stringArg extracts a named string argument from a tool call request.
// Returns ("", false) if the argument is absent or not a string.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg extracts a named int argument from a tool call request. The MCP
// protocol serialises numbers as float64, so convert accordingly.
func intArg(req mcplib.CallToolRequest, name string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return defaultVal
}
