package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/snowgate/snowgate/internal/db"
)

// ToolCallStore persists audit records. *db.DB satisfies it; tests substitute
// an in-memory fake.
type ToolCallStore interface {
	InsertToolCall(ctx context.Context, tc *db.ToolCall) error
	ListToolCalls(ctx context.Context, limit int) ([]db.ToolCall, error)
}

// AuditService records every tool invocation with its request, result text,
// and a SHA-256 evidence hash for tamper detection.
type AuditService struct {
	store ToolCallStore
}

func NewAuditService(store ToolCallStore) *AuditService {
	return &AuditService{store: store}
}

// RecordInput captures what is needed to log a tool call.
type RecordInput struct {
	ToolName string
	Request  json.RawMessage
	Result   string
	Status   string
	Duration time.Duration
}

// Record persists one tool invocation.
func (a *AuditService) Record(ctx context.Context, in RecordInput) (*db.ToolCall, error) {
	reqJSON := in.Request
	if len(reqJSON) == 0 {
		reqJSON = json.RawMessage(`{}`)
	}

	evidence := sha256.Sum256(append(append([]byte{}, reqJSON...), in.Result...))

	tc := &db.ToolCall{
		ToolCallID:   uuid.New().String(),
		ToolName:     in.ToolName,
		Request:      string(reqJSON),
		Result:       in.Result,
		Status:       in.Status,
		DurationMS:   in.Duration.Milliseconds(),
		EvidenceHash: hex.EncodeToString(evidence[:]),
		CreatedAt:    time.Now().UTC(),
	}
	if err := a.store.InsertToolCall(ctx, tc); err != nil {
		return nil, fmt.Errorf("insert tool_call: %w", err)
	}
	return tc, nil
}

// List returns the most recent recorded tool calls.
func (a *AuditService) List(ctx context.Context, limit int) ([]db.ToolCall, error) {
	return a.store.ListToolCalls(ctx, limit)
}
