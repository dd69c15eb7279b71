package servicenow

import "testing"

func TestVariableTypeCode(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"string", "2"},
		{"integer", "9"},
		{"boolean", "6"},
		{"reference", "8"},
		{"choice", "3"},
		{"text", "1"},
		{"date", "5"},
		{"datetime", "4"},
		{"currency", "10"},
		{"price", "7"},
		{"Reference", "8"},
		{"multi_row", "2"},
		{"", "2"},
	}
	for _, tc := range cases {
		if got := VariableTypeCode(tc.name); got != tc.want {
			t.Errorf("VariableTypeCode(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestVariableDisplayName(t *testing.T) {
	if got := (VariableDefinition{Name: "urgency"}).DisplayName(3); got != "urgency" {
		t.Errorf("got %q, want urgency", got)
	}
	if got := (VariableDefinition{}).DisplayName(3); got != "variable_3" {
		t.Errorf("got %q, want variable_3", got)
	}
}

func TestVariablePayload(t *testing.T) {
	def := VariableDefinition{
		Name:           "assignee",
		Type:           "reference",
		Mandatory:      true,
		DefaultValue:   "abc",
		ReferenceTable: "sys_user",
		HelpText:       "pick a user",
	}
	payload := def.Payload("cat_item", "parent123", 1)

	if payload["cat_item"] != "parent123" {
		t.Errorf("parent link = %v", payload["cat_item"])
	}
	if payload["name"] != "assignee" {
		t.Errorf("name = %v", payload["name"])
	}
	if payload["question_text"] != "assignee" {
		t.Errorf("label should fall back to name, got %v", payload["question_text"])
	}
	if payload["type"] != "8" {
		t.Errorf("type = %v", payload["type"])
	}
	if payload["mandatory"] != "true" {
		t.Errorf("mandatory = %v", payload["mandatory"])
	}
	if payload["order"] != 200 {
		t.Errorf("order = %v, want 200", payload["order"])
	}
	if payload["default_value"] != "abc" {
		t.Errorf("default_value = %v", payload["default_value"])
	}
	if payload["reference"] != "sys_user" {
		t.Errorf("reference = %v", payload["reference"])
	}
	if payload["help_text"] != "pick a user" {
		t.Errorf("help_text = %v", payload["help_text"])
	}
}

func TestVariablePayloadUnnamed(t *testing.T) {
	payload := (VariableDefinition{}).Payload("cat_item", "parent123", 2)

	if payload["name"] != "variable_2" {
		t.Errorf("name = %v, want variable_2", payload["name"])
	}
	if payload["question_text"] != "Variable 2" {
		t.Errorf("question_text = %v, want Variable 2", payload["question_text"])
	}
}

func TestVariablePayloadOmitsOptionalFields(t *testing.T) {
	def := VariableDefinition{Name: "notes", Label: "Notes", Type: "text", ReferenceTable: "sys_user"}
	payload := def.Payload("variable_set", "set1", 0)

	if payload["question_text"] != "Notes" {
		t.Errorf("question_text = %v", payload["question_text"])
	}
	if payload["type"] != "1" {
		t.Errorf("type = %v", payload["type"])
	}
	if payload["order"] != 100 {
		t.Errorf("order = %v, want 100", payload["order"])
	}
	if _, ok := payload["default_value"]; ok {
		t.Error("default_value should be omitted when empty")
	}
	if _, ok := payload["reference"]; ok {
		t.Error("reference should be omitted for non-reference types")
	}
}
