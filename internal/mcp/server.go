// Package mcp serves the tool surface over the Model Context Protocol:
// JSON-RPC 2.0, one JSON object per line, over TCP.
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/snowgate/snowgate/internal/tools"
)

type ctxKey string

const ctxKeyTraceID ctxKey = "trace_id"

type Server struct {
	tools  *tools.Service
	addr   string
	logger *slog.Logger

	ln     net.Listener
	mu     sync.Mutex
	closed bool
}

func NewServer(addr string, toolService *tools.Service, logger *slog.Logger) *Server {
	return &Server{
		tools:  toolService,
		addr:   addr,
		logger: logger,
	}
}

type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ln = ln
	s.mu.Unlock()

	s.logger.Info("mcp server starting", "addr", s.addr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed {
				return nil
			}
			s.logger.Error("mcp accept error", "err", err)
			continue
		}
		go s.handleConn(conn)
	}
}

func (s *Server) Shutdown(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.ln != nil {
		return s.ln.Close()
	}
	return nil
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req jsonRPCRequest
		if err := json.Unmarshal(line, &req); err != nil {
			s.writeResponse(conn, jsonRPCResponse{
				JSONRPC: "2.0",
				ID:      nil,
				Error:   &rpcError{Code: -32700, Message: "parse error"},
			})
			continue
		}

		traceID := uuid.New().String()
		ctx := context.WithValue(context.Background(), ctxKeyTraceID, traceID)
		resp := s.dispatch(ctx, req)
		s.writeResponse(conn, resp)
	}
}

func (s *Server) writeResponse(w io.Writer, resp jsonRPCResponse) {
	data, _ := json.Marshal(resp)
	data = append(data, '\n')
	w.Write(data)
}

func (s *Server) dispatch(ctx context.Context, req jsonRPCRequest) jsonRPCResponse {
	base := jsonRPCResponse{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "initialize":
		base.Result = map[string]any{
			"protocolVersion": "2024-11-05",
			"capabilities":    map[string]any{"tools": map[string]any{"listChanged": false}},
			"serverInfo":      map[string]any{"name": "snowgate", "version": "0.1.0"},
		}
		return base

	case "tools/list":
		base.Result = map[string]any{"tools": tools.Definitions()}
		return base

	case "tools/call":
		return s.handleToolCall(ctx, req, base)

	default:
		base.Error = &rpcError{Code: -32601, Message: fmt.Sprintf("method not found: %s", req.Method)}
		return base
	}
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

func (s *Server) handleToolCall(ctx context.Context, req jsonRPCRequest, base jsonRPCResponse) jsonRPCResponse {
	traceID, _ := ctx.Value(ctxKeyTraceID).(string)

	var params toolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		base.Error = &rpcError{Code: -32602, Message: "invalid params: " + err.Error()}
		return base
	}

	start := time.Now()
	result, err := s.tools.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		// Unknown tool and malformed arguments are the only errors the
		// service returns; both are caller mistakes.
		base.Error = &rpcError{Code: -32602, Message: err.Error()}
		return base
	}

	s.logger.Info("tool call completed",
		"trace_id", traceID,
		"tool_name", params.Name,
		"failed", strings.HasPrefix(result, "Error"),
		"duration", fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
	)

	// Tool outcomes, including remote failures, are text content by
	// contract; only protocol-level problems become JSON-RPC errors.
	base.Result = map[string]any{
		"content": []map[string]any{
			{"type": "text", "text": result},
		},
	}
	return base
}
