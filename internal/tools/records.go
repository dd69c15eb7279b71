package tools

import (
	"context"
	"fmt"
	"strconv"

	"github.com/snowgate/snowgate/internal/servicenow"
)

type CreateIncidentArgs struct {
	ShortDescription string `json:"short_description"`
	Description      string `json:"description,omitempty"`
	CallerID         string `json:"caller_id,omitempty"`
	Urgency          string `json:"urgency,omitempty"`
	Impact           string `json:"impact,omitempty"`
}

// CreateIncident files a new incident and reports its number and sys_id.
func (s *Service) CreateIncident(ctx context.Context, args CreateIncidentArgs) string {
	payload := map[string]any{
		"short_description": args.ShortDescription,
		"description":       stringOrDefault(args.Description, args.ShortDescription),
		"urgency":           stringOrDefault(args.Urgency, "3"),
		"impact":            stringOrDefault(args.Impact, "3"),
	}
	if args.CallerID != "" {
		// The instance resolves a caller name to its sys_id on insert.
		payload["caller_id"] = args.CallerID
	}

	result, err := s.sn.CreateRecord(ctx, "incident", payload)
	if err != nil {
		return fmt.Sprintf("Error creating incident: %v", err)
	}
	return fmt.Sprintf("Successfully created incident %s (Sys ID: %s).",
		stringField(result, "number", "UNKNOWN"),
		stringField(result, "sys_id", "UNKNOWN"))
}

type CreateKBArticleArgs struct {
	ShortDescription string `json:"short_description"`
	ArticleBody      string `json:"article_body"`
	KnowledgeBase    string `json:"kb_knowledge_base,omitempty"`
	WorkflowState    string `json:"workflow_state,omitempty"`
}

// CreateKBArticle creates a knowledge article; the body lands in the
// kb_knowledge table's text field.
func (s *Service) CreateKBArticle(ctx context.Context, args CreateKBArticleArgs) string {
	payload := map[string]any{
		"short_description": args.ShortDescription,
		"text":              args.ArticleBody,
		"workflow_state":    stringOrDefault(args.WorkflowState, "draft"),
		"article_type":      "text",
	}
	if args.KnowledgeBase != "" {
		payload["kb_knowledge_base"] = args.KnowledgeBase
	}

	result, err := s.sn.CreateRecord(ctx, "kb_knowledge", payload)
	if err != nil {
		return fmt.Sprintf("Error creating KB article: %v", err)
	}
	return fmt.Sprintf("Successfully created KB article %s (Sys ID: %s).",
		stringField(result, "number", "UNKNOWN"),
		stringField(result, "sys_id", "UNKNOWN"))
}

type CreateClientScriptArgs struct {
	Name       string `json:"name"`
	Table      string `json:"table"`
	Script     string `json:"script"`
	UIType     string `json:"ui_type,omitempty"`
	ScriptType string `json:"script_type,omitempty"`
	FieldName  string `json:"field_name,omitempty"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

// CreateClientScript creates a sys_script_client row. onChange scripts need a
// triggering field; that check happens before any network call.
func (s *Service) CreateClientScript(ctx context.Context, args CreateClientScriptArgs) string {
	scriptType := stringOrDefault(args.ScriptType, "onChange")
	if scriptType == "onChange" && args.FieldName == "" {
		return "Error: 'field_name' is required when script_type is 'onChange'."
	}

	payload := map[string]any{
		"name":    args.Name,
		"table":   args.Table,
		"script":  args.Script,
		"ui_type": stringOrDefault(args.UIType, "all"),
		"type":    scriptType,
		// The remote schema stores these booleans as strings.
		"active": strconv.FormatBool(boolOrDefault(args.IsActive, true)),
	}
	if args.FieldName != "" {
		payload["field_name"] = args.FieldName
	}

	result, err := s.sn.CreateRecord(ctx, "sys_script_client", payload)
	if err != nil {
		return fmt.Sprintf("Error creating Client Script: %v", err)
	}
	return fmt.Sprintf("Successfully created Client Script '%s' (Sys ID: %s).",
		stringField(result, "name", args.Name),
		stringField(result, "sys_id", "UNKNOWN"))
}

type CreateBusinessRuleArgs struct {
	Name         string `json:"name"`
	Table        string `json:"table"`
	Script       string `json:"script"`
	When         string `json:"when,omitempty"`
	Order        *int   `json:"order,omitempty"`
	ActionInsert *bool  `json:"action_insert,omitempty"`
	ActionUpdate *bool  `json:"action_update,omitempty"`
	ActionDelete *bool  `json:"action_delete,omitempty"`
	ActionQuery  *bool  `json:"action_query,omitempty"`
	IsActive     *bool  `json:"is_active,omitempty"`
}

// CreateBusinessRule creates a sys_script row (the business rule table).
func (s *Service) CreateBusinessRule(ctx context.Context, args CreateBusinessRuleArgs) string {
	payload := map[string]any{
		"name":          args.Name,
		"table":         args.Table,
		"script":        args.Script,
		"when":          stringOrDefault(args.When, "before"),
		"order":         intOrDefault(args.Order, 100),
		"action_insert": strconv.FormatBool(boolOrDefault(args.ActionInsert, true)),
		"action_update": strconv.FormatBool(boolOrDefault(args.ActionUpdate, true)),
		"action_delete": strconv.FormatBool(boolOrDefault(args.ActionDelete, false)),
		"action_query":  strconv.FormatBool(boolOrDefault(args.ActionQuery, false)),
		"active":        strconv.FormatBool(boolOrDefault(args.IsActive, true)),
		// The table lands in both columns; sys_script keys rule lookup
		// off collection.
		"collection": args.Table,
	}

	result, err := s.sn.CreateRecord(ctx, "sys_script", payload)
	if err != nil {
		return fmt.Sprintf("Error creating Business Rule: %v", err)
	}
	return fmt.Sprintf("Successfully created Business Rule '%s' (Sys ID: %s).",
		stringField(result, "name", args.Name),
		stringField(result, "sys_id", "UNKNOWN"))
}

type CreateSLADefinitionArgs struct {
	Name            string `json:"name"`
	Table           string `json:"table"`
	DurationSeconds int    `json:"duration_seconds"`
	StartCondition  string `json:"start_condition,omitempty"`
	StopCondition   string `json:"stop_condition,omitempty"`
	PauseCondition  string `json:"pause_condition,omitempty"`
}

// CreateSLADefinition creates a contract_sla row. Conditions are encoded
// queries and are passed through unvalidated.
func (s *Service) CreateSLADefinition(ctx context.Context, args CreateSLADefinitionArgs) string {
	payload := map[string]any{
		"name":          args.Name,
		"target_table":  args.Table,
		"duration":      servicenow.GlideDuration(args.DurationSeconds),
		"duration_type": "glide_duration",
		"type":          "SLA",
		"active":        "true",
	}
	if args.StartCondition != "" {
		payload["start_condition"] = args.StartCondition
	}
	if args.StopCondition != "" {
		payload["stop_condition"] = args.StopCondition
	}
	if args.PauseCondition != "" {
		payload["pause_condition"] = args.PauseCondition
	}

	result, err := s.sn.CreateRecord(ctx, "contract_sla", payload)
	if err != nil {
		return fmt.Sprintf("Error creating SLA Definition: %v", err)
	}
	return fmt.Sprintf("Successfully created SLA Definition '%s' (Sys ID: %s). Conditions should be verified in ServiceNow UI.",
		stringField(result, "name", args.Name),
		stringField(result, "sys_id", "UNKNOWN"))
}
