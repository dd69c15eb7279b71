package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/snowgate/snowgate/internal/servicenow"
)

type CreateRecordProducerArgs struct {
	Name             string                          `json:"name"`
	TableName        string                          `json:"table_name"`
	ShortDescription string                          `json:"short_description,omitempty"`
	CategorySysID    string                          `json:"category_sys_id,omitempty"`
	Script           string                          `json:"script,omitempty"`
	Variables        []servicenow.VariableDefinition `json:"variables,omitempty"`
	VariableSetIDs   []string                        `json:"variable_set_ids,omitempty"`
}

// CreateRecordProducer creates a catalog record producer and then attaches
// the requested variable sets and variables one at a time. Dependent items
// report success or failure individually; a failed item never rolls back the
// producer or stops its siblings.
func (s *Service) CreateRecordProducer(ctx context.Context, args CreateRecordProducerArgs) string {
	payload := map[string]any{
		"name":              args.Name,
		"table_name":        args.TableName,
		"short_description": stringOrDefault(args.ShortDescription, args.Name),
		"active":            "true",
		"sys_class_name":    "sc_cat_item_producer",
	}
	if args.CategorySysID != "" {
		payload["category"] = args.CategorySysID
	}
	if args.Script != "" {
		payload["script"] = args.Script
	}

	result, err := s.sn.CreateRecord(ctx, "sc_cat_item_producer", payload)
	if err != nil {
		return fmt.Sprintf("Error creating Record Producer: %v", err)
	}
	producerName := stringField(result, "name", args.Name)
	producerSysID := stringField(result, "sys_id", "")
	if producerSysID == "" {
		return "Error creating Record Producer: No sys_id returned from ServiceNow."
	}

	setMessages := make([]string, 0, len(args.VariableSetIDs))
	for _, setID := range args.VariableSetIDs {
		setResult, err := s.sn.CreateRecord(ctx, "io_set_item", map[string]any{
			"sc_cat_item":  producerSysID,
			"variable_set": setID,
		})
		switch {
		case err != nil:
			setMessages = append(setMessages, fmt.Sprintf("Error adding variable set (ID: %s): %v", setID, err))
		case stringField(setResult, "sys_id", "") != "":
			setMessages = append(setMessages, fmt.Sprintf("Added variable set (ID: %s)", setID))
		default:
			setMessages = append(setMessages, fmt.Sprintf("Failed to add variable set (ID: %s)", setID))
		}
	}

	varMessages := s.createVariables(ctx, "item_option_new", "cat_item", producerSysID, args.Variables)

	message := fmt.Sprintf("Successfully created Record Producer '%s' (Sys ID: %s).", producerName, producerSysID)
	if len(setMessages) > 0 {
		message += "\nVariable Sets: " + strings.Join(setMessages, "; ")
	}
	if len(varMessages) > 0 {
		message += "\nVariables: " + strings.Join(varMessages, "; ")
	} else if len(setMessages) == 0 && len(args.Variables) == 0 {
		message += " No variables were added."
	}
	return message
}

type CreateVariableSetArgs struct {
	Name        string                          `json:"name"`
	Description string                          `json:"description,omitempty"`
	Variables   []servicenow.VariableDefinition `json:"variables,omitempty"`
}

// CreateVariableSet creates a reusable io_set and attaches its variables,
// with the same per-item best-effort semantics as CreateRecordProducer.
func (s *Service) CreateVariableSet(ctx context.Context, args CreateVariableSetArgs) string {
	payload := map[string]any{
		"name":        args.Name,
		"description": stringOrDefault(args.Description, args.Name),
		"active":      "true",
	}

	result, err := s.sn.CreateRecord(ctx, "io_set", payload)
	if err != nil {
		return fmt.Sprintf("Error creating Variable Set: %v", err)
	}
	setName := stringField(result, "name", args.Name)
	setSysID := stringField(result, "sys_id", "")
	if setSysID == "" {
		return "Error creating Variable Set: No sys_id returned from ServiceNow."
	}

	varMessages := s.createVariables(ctx, "io_set_variable", "variable_set", setSysID, args.Variables)

	message := fmt.Sprintf("Successfully created Variable Set '%s' (Sys ID: %s).", setName, setSysID)
	if len(varMessages) > 0 {
		message += "\nVariables: " + strings.Join(varMessages, "; ")
	} else {
		message += " No variables were added."
	}
	return message
}

// createVariables issues one dependent creation per definition, strictly
// sequentially. Individual failures are collected per item and never abort
// the remainder.
func (s *Service) createVariables(ctx context.Context, table, parentField, parentSysID string, defs []servicenow.VariableDefinition) []string {
	messages := make([]string, 0, len(defs))
	for idx, def := range defs {
		name := def.DisplayName(idx)
		result, err := s.sn.CreateRecord(ctx, table, def.Payload(parentField, parentSysID, idx))
		switch {
		case err != nil:
			messages = append(messages, fmt.Sprintf("Error adding variable '%s': %v", name, err))
		case stringField(result, "sys_id", "") != "":
			messages = append(messages, fmt.Sprintf("Added variable '%s'", name))
		default:
			messages = append(messages, fmt.Sprintf("Failed to add variable '%s'", name))
		}
	}
	return messages
}
