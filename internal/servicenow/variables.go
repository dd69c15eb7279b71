package servicenow

import (
	"fmt"
	"strconv"
	"strings"
)

// VariableDefinition describes one catalog variable to attach to a record
// producer or variable set.
type VariableDefinition struct {
	Name           string `json:"name"`
	Label          string `json:"label,omitempty"`
	Type           string `json:"type,omitempty"`
	Mandatory      bool   `json:"mandatory,omitempty"`
	DefaultValue   string `json:"default_value,omitempty"`
	ReferenceTable string `json:"reference_table,omitempty"`
	HelpText       string `json:"help_text,omitempty"`
	Description    string `json:"description,omitempty"`
}

// Table API numeric codes for catalog variable types. Unknown names fall back
// to the string code; the remote side's behavior for mismatched types is
// unverified, so the mapping stays permissive.
var variableTypeCodes = map[string]string{
	"string":    "2",
	"integer":   "9",
	"boolean":   "6",
	"reference": "8",
	"choice":    "3",
	"text":      "1",
	"date":      "5",
	"datetime":  "4",
	"currency":  "10",
	"price":     "7",
}

const stringTypeCode = "2"

// VariableTypeCode maps a variable type name to its remote numeric code.
func VariableTypeCode(name string) string {
	if code, ok := variableTypeCodes[strings.ToLower(name)]; ok {
		return code
	}
	return stringTypeCode
}

// DisplayName is the name used in per-item outcome messages; unnamed
// definitions get a positional placeholder.
func (v VariableDefinition) DisplayName(idx int) string {
	if v.Name != "" {
		return v.Name
	}
	return fmt.Sprintf("variable_%d", idx)
}

// Payload builds the child-record row for one variable. parentField names the
// column linking the variable to its parent (cat_item for record producers,
// variable_set for variable sets); idx drives the display order, assigned as
// (idx+1)*100 so later inserts can slot between items.
func (v VariableDefinition) Payload(parentField, parentSysID string, idx int) map[string]any {
	name := v.DisplayName(idx)
	// The form label falls back to the name; a definition with neither gets
	// a capitalized placeholder, unlike the name's variable_<idx>.
	label := v.Label
	if label == "" {
		label = v.Name
	}
	if label == "" {
		label = fmt.Sprintf("Variable %d", idx)
	}

	payload := map[string]any{
		parentField:     parentSysID,
		"name":          name,
		"question_text": label,
		"type":          VariableTypeCode(v.Type),
		"mandatory":     strconv.FormatBool(v.Mandatory),
		"order":         (idx + 1) * 100,
		"help_text":     v.HelpText,
		"description":   v.Description,
	}
	if v.DefaultValue != "" {
		payload["default_value"] = v.DefaultValue
	}
	if strings.EqualFold(v.Type, "reference") && v.ReferenceTable != "" {
		payload["reference"] = v.ReferenceTable
	}
	return payload
}
