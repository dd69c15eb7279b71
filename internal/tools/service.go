// Package tools implements the ServiceNow tool surface: one function per
// operation, each taking typed arguments and returning a display string.
// Typed client errors are converted to text at this boundary and never reach
// the transports — the calling host always receives a textual outcome.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/snowgate/snowgate/internal/core"
	"github.com/snowgate/snowgate/internal/servicenow"
	"github.com/snowgate/snowgate/internal/telemetry"
)

// ErrUnknownTool reports a tools/call for a name outside the catalog.
var ErrUnknownTool = errors.New("unknown tool")

type Service struct {
	sn     *servicenow.Client
	audit  *core.AuditService // nil when auditing is disabled
	logger *slog.Logger
}

func NewService(sn *servicenow.Client, audit *core.AuditService, logger *slog.Logger) *Service {
	return &Service{sn: sn, audit: audit, logger: logger}
}

// Call dispatches a tool by name. The returned error covers protocol-level
// problems only (unknown tool, malformed arguments); tool outcomes, including
// remote failures, are always the string result.
func (s *Service) Call(ctx context.Context, name string, raw json.RawMessage) (string, error) {
	start := time.Now()
	result, err := s.dispatch(ctx, name, raw)
	elapsed := time.Since(start)
	telemetry.ObserveToolDuration(name, elapsed)
	if err != nil {
		telemetry.IncToolCall(name, "invalid")
		return "", err
	}

	// Tool results are strings by contract; the Error prefix is the
	// failure marker the listing/creation formatters emit.
	status := "ok"
	if strings.HasPrefix(result, "Error") {
		status = "fail"
	}
	telemetry.IncToolCall(name, status)
	s.record(ctx, name, raw, result, status, elapsed)
	return result, nil
}

func (s *Service) dispatch(ctx context.Context, name string, raw json.RawMessage) (string, error) {
	switch name {
	case "create_incident":
		var args CreateIncidentArgs
		if err := unmarshalArgs(raw, &args); err != nil {
			return "", err
		}
		return s.CreateIncident(ctx, args), nil
	case "create_kb_article":
		var args CreateKBArticleArgs
		if err := unmarshalArgs(raw, &args); err != nil {
			return "", err
		}
		return s.CreateKBArticle(ctx, args), nil
	case "create_client_script":
		var args CreateClientScriptArgs
		if err := unmarshalArgs(raw, &args); err != nil {
			return "", err
		}
		return s.CreateClientScript(ctx, args), nil
	case "create_business_rule":
		var args CreateBusinessRuleArgs
		if err := unmarshalArgs(raw, &args); err != nil {
			return "", err
		}
		return s.CreateBusinessRule(ctx, args), nil
	case "create_sla_definition":
		var args CreateSLADefinitionArgs
		if err := unmarshalArgs(raw, &args); err != nil {
			return "", err
		}
		return s.CreateSLADefinition(ctx, args), nil
	case "create_record_producer":
		var args CreateRecordProducerArgs
		if err := unmarshalArgs(raw, &args); err != nil {
			return "", err
		}
		return s.CreateRecordProducer(ctx, args), nil
	case "create_variable_set":
		var args CreateVariableSetArgs
		if err := unmarshalArgs(raw, &args); err != nil {
			return "", err
		}
		return s.CreateVariableSet(ctx, args), nil
	case "get_incidents":
		var args ListArgs
		if err := unmarshalArgs(raw, &args); err != nil {
			return "", err
		}
		return s.GetIncidents(ctx, args), nil
	case "get_change_requests":
		var args ListArgs
		if err := unmarshalArgs(raw, &args); err != nil {
			return "", err
		}
		return s.GetChangeRequests(ctx, args), nil
	case "get_users":
		var args ListArgs
		if err := unmarshalArgs(raw, &args); err != nil {
			return "", err
		}
		return s.GetUsers(ctx, args), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

func (s *Service) record(ctx context.Context, name string, req json.RawMessage, result, status string, d time.Duration) {
	if s.audit == nil {
		return
	}
	if _, err := s.audit.Record(ctx, core.RecordInput{
		ToolName: name,
		Request:  req,
		Result:   result,
		Status:   status,
		Duration: d,
	}); err != nil {
		telemetry.IncAuditWriteFailure()
		s.logger.Error("audit record failed", "tool_name", name, "err", err)
	}
}

func unmarshalArgs(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}
