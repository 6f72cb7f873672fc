/*
Package mcp implements the MCP server that exposes exercise search to AI
clients.

The server uses stdio transport and exposes 5 tools:
  - exercise_search: Familiarity-ranked matches plus related exercises
  - exercise_explore: Precision or discovery search with refiners
  - exercise_add: Create a custom exercise (idempotent)
  - exercise_select: Record a selection so future searches learn from it
  - exercise_instructions: Full-text search over exercise instructions
*/
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/khanglvm/liftsearch/internal/engine"
	"github.com/khanglvm/liftsearch/internal/version"
)

// JSON-RPC error codes.
const (
	codeParseError     = -32700
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeToolError      = -32000
)

// Server represents the liftsearch MCP server.
type Server struct {
	engine *engine.Engine

	// learnAliases is the default for exercise_select when the caller
	// does not say.
	learnAliases bool

	in  io.Reader
	out io.Writer
	mu  sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new MCP server over an engine, reading stdin and
// writing stdout.
func NewServer(e *engine.Engine, learnAliases bool) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		engine:       e,
		learnAliases: learnAliases,
		in:           os.Stdin,
		out:          os.Stdout,
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Run starts the MCP server using stdio transport.
// This blocks until stdin is closed or the server is closed.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		if s.ctx.Err() != nil {
			return nil
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		response, err := s.handleRequest(line)
		if err != nil {
			s.sendError(err)
			continue
		}

		if response != nil {
			s.sendResponse(response)
		}
	}

	return scanner.Err()
}

// Close stops the server. The engine is owned by the caller.
func (s *Server) Close() error {
	s.cancel()
	return nil
}

// MCPRequest represents an incoming MCP JSON-RPC request.
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing MCP JSON-RPC response.
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents an MCP error.
type MCPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// handleRequest processes an incoming MCP request. Notifications (no id)
// get no response.
func (s *Server) handleRequest(data []byte) (*MCPResponse, error) {
	var req MCPRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("invalid JSON-RPC request: %w", err)
	}

	switch req.Method {
	case "initialize":
		return s.handleInitialize(&req)
	case "tools/list":
		return s.handleToolsList(&req)
	case "tools/call":
		return s.handleToolsCall(&req)
	case "notifications/initialized":
		return nil, nil
	default:
		return errorResponse(&req, codeMethodNotFound, "Method not found"), nil
	}
}

// handleInitialize handles the MCP initialize request.
func (s *Server) handleInitialize(req *MCPRequest) (*MCPResponse, error) {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "liftsearch",
				"version": version.Version,
			},
		},
	}, nil
}

// handleToolsList returns the tool definitions.
func (s *Server) handleToolsList(req *MCPRequest) (*MCPResponse, error) {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": ToolDefinitions(),
		},
	}, nil
}

// handleToolsCall handles tool execution requests.
func (s *Server) handleToolsCall(req *MCPRequest) (*MCPResponse, error) {
	var params struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}

	if err := json.Unmarshal(req.Params, &params); err != nil {
		return errorResponse(req, codeInvalidParams, fmt.Sprintf("invalid params: %v", err)), nil
	}
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	var (
		result interface{}
		err    error
	)

	switch params.Name {
	case "exercise_search":
		result, err = s.execSearch(params.Arguments)
	case "exercise_explore":
		result, err = s.execExplore(params.Arguments)
	case "exercise_add":
		result, err = s.execAdd(params.Arguments)
	case "exercise_select":
		result, err = s.execSelect(params.Arguments)
	case "exercise_instructions":
		result, err = s.execInstructions(params.Arguments)
	default:
		return errorResponse(req, codeInvalidParams, fmt.Sprintf("Unknown tool: %s", params.Name)), nil
	}

	if err != nil {
		var argErr *argumentError
		if errors.As(err, &argErr) {
			return errorResponse(req, codeInvalidParams, err.Error()), nil
		}
		return errorResponse(req, codeToolError, err.Error()), nil
	}

	text, err := json.Marshal(result)
	if err != nil {
		return errorResponse(req, codeToolError, fmt.Sprintf("failed to encode result: %v", err)), nil
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": string(text),
				},
			},
		},
	}, nil
}

func errorResponse(req *MCPRequest, code int, message string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Error:   &MCPError{Code: code, Message: message},
	}
}

// sendResponse writes a JSON-RPC response line.
func (s *Server) sendResponse(resp *MCPResponse) {
	data, _ := json.Marshal(resp)

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, string(data))
}

// sendError writes a parse error response.
func (s *Server) sendError(err error) {
	s.sendResponse(&MCPResponse{
		JSONRPC: "2.0",
		ID:      nil,
		Error:   &MCPError{Code: codeParseError, Message: err.Error()},
	})
}
