package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/snowgate/snowgate/internal/servicenow"
	"github.com/snowgate/snowgate/internal/tools"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Server {
	t.Helper()
	instance := httptest.NewServer(handler)
	t.Cleanup(instance.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client, err := servicenow.NewClient(servicenow.Config{
		InstanceURL: instance.URL,
		Credentials: servicenow.BasicAuth{Username: "admin", Password: "secret"},
		Logger:      logger,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return NewServer("127.0.0.1:0", tools.NewService(client, nil, logger), logger)
}

func TestDispatchInitialize(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	resp := s.dispatch(context.Background(), jsonRPCRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	result, ok := resp.Result.(map[string]any)
	if !ok {
		t.Fatalf("unexpected result type %T", resp.Result)
	}
	if result["protocolVersion"] != "2024-11-05" {
		t.Errorf("protocolVersion = %v", result["protocolVersion"])
	}
	info, _ := result["serverInfo"].(map[string]any)
	if info["name"] != "snowgate" {
		t.Errorf("serverInfo = %v", result["serverInfo"])
	}
}

func TestDispatchToolsList(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	resp := s.dispatch(context.Background(), jsonRPCRequest{JSONRPC: "2.0", ID: 2, Method: "tools/list"})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
	result, _ := resp.Result.(map[string]any)
	defs, ok := result["tools"].([]map[string]any)
	if !ok || len(defs) != 10 {
		t.Fatalf("expected 10 tool definitions, got %v", result["tools"])
	}
}

func TestDispatchMethodNotFound(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	resp := s.dispatch(context.Background(), jsonRPCRequest{JSONRPC: "2.0", ID: 3, Method: "resources/list"})
	if resp.Error == nil || resp.Error.Code != -32601 {
		t.Fatalf("expected -32601, got %v", resp.Error)
	}
}

func TestDispatchToolCall(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"result": {"number": "INC0010001", "sys_id": "abc"}}`)
	})

	params, _ := json.Marshal(map[string]any{
		"name":      "create_incident",
		"arguments": map[string]any{"short_description": "x"},
	})
	resp := s.dispatch(context.Background(), jsonRPCRequest{JSONRPC: "2.0", ID: 4, Method: "tools/call", Params: params})
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}

	result, _ := resp.Result.(map[string]any)
	content, ok := result["content"].([]map[string]any)
	if !ok || len(content) != 1 {
		t.Fatalf("unexpected content: %v", result["content"])
	}
	if content[0]["type"] != "text" {
		t.Errorf("content type = %v", content[0]["type"])
	}
	if content[0]["text"] != "Successfully created incident INC0010001 (Sys ID: abc)." {
		t.Errorf("text = %v", content[0]["text"])
	}
}

func TestDispatchToolCallUnknownTool(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	params, _ := json.Marshal(map[string]any{"name": "bogus_tool"})
	resp := s.dispatch(context.Background(), jsonRPCRequest{JSONRPC: "2.0", ID: 5, Method: "tools/call", Params: params})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Fatalf("expected -32602, got %v", resp.Error)
	}
}

func TestDispatchToolCallBadParams(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	resp := s.dispatch(context.Background(), jsonRPCRequest{
		JSONRPC: "2.0", ID: 6, Method: "tools/call",
		Params: json.RawMessage(`"not an object"`),
	})
	if resp.Error == nil || resp.Error.Code != -32602 {
		t.Fatalf("expected -32602, got %v", resp.Error)
	}
}

func TestServeLineProtocol(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})

	go func() {
		if err := s.ListenAndServe(); err != nil {
			t.Errorf("ListenAndServe: %v", err)
		}
	}()
	t.Cleanup(func() { s.Shutdown(context.Background()) })

	// Wait for the listener to come up.
	var addr string
	for i := 0; i < 100; i++ {
		s.mu.Lock()
		if s.ln != nil {
			addr = s.ln.Addr().String()
		}
		s.mu.Unlock()
		if addr != "" {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if addr == "" {
		t.Fatal("listener never started")
	}

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte(`{"jsonrpc":"2.0","id":1,"method":"initialize"}` + "\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := conn.Write([]byte("this is not json\n")); err != nil {
		t.Fatalf("write: %v", err)
	}

	reader := bufio.NewReader(conn)

	var first jsonRPCResponse
	line, err := reader.ReadBytes('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := json.Unmarshal(line, &first); err != nil {
		t.Fatalf("decode first response: %v", err)
	}
	if first.Error != nil {
		t.Fatalf("initialize failed: %v", first.Error)
	}

	var second jsonRPCResponse
	line, err = reader.ReadBytes('\n')
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := json.Unmarshal(line, &second); err != nil {
		t.Fatalf("decode second response: %v", err)
	}
	if second.Error == nil || second.Error.Code != -32700 {
		t.Fatalf("expected -32700 parse error, got %v", second.Error)
	}
}
