package tools

// Definitions is the tool schema catalog served by tools/list and consumed by
// cmd/mcpdocgen. Names and parameter shapes are the external contract.
func Definitions() []map[string]any {
	variableItems := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"name":            map[string]string{"type": "string", "description": "Variable name"},
			"label":           map[string]string{"type": "string", "description": "User-friendly label shown on the form"},
			"type":            map[string]string{"type": "string", "description": "string, integer, boolean, reference, choice, text, date, datetime, currency, or price"},
			"mandatory":       map[string]string{"type": "boolean"},
			"default_value":   map[string]string{"type": "string"},
			"reference_table": map[string]string{"type": "string", "description": "Target table for reference variables"},
			"help_text":       map[string]string{"type": "string"},
			"description":     map[string]string{"type": "string"},
		},
		"required": []string{"name"},
	}

	return []map[string]any{
		{
			"name":        "create_incident",
			"description": "Creates a new incident record in ServiceNow",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"short_description": map[string]string{"type": "string", "description": "A brief summary of the incident"},
					"description":       map[string]string{"type": "string", "description": "A detailed description (defaults to the summary)"},
					"caller_id":         map[string]string{"type": "string", "description": "The reporting user (name or sys_id)"},
					"urgency":           map[string]string{"type": "string", "description": "1-High, 2-Medium, 3-Low (default 3)"},
					"impact":            map[string]string{"type": "string", "description": "1-High, 2-Medium, 3-Low (default 3)"},
				},
				"required": []string{"short_description"},
			},
		},
		{
			"name":        "create_kb_article",
			"description": "Creates a new knowledge base article in ServiceNow",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"short_description": map[string]string{"type": "string", "description": "The article title"},
					"article_body":      map[string]string{"type": "string", "description": "The article content (HTML or plain text)"},
					"kb_knowledge_base": map[string]string{"type": "string", "description": "Knowledge base sys_id or name"},
					"workflow_state":    map[string]string{"type": "string", "description": "draft, review, or published (default draft)"},
				},
				"required": []string{"short_description", "article_body"},
			},
		},
		{
			"name":        "create_client_script",
			"description": "Creates a new Client Script in ServiceNow",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]string{"type": "string"},
					"table":       map[string]string{"type": "string", "description": "Table the script applies to, e.g. incident"},
					"script":      map[string]string{"type": "string", "description": "The client-side JavaScript"},
					"ui_type":     map[string]string{"type": "string", "description": "all, desktop, mobile, or service_portal (default all)"},
					"script_type": map[string]string{"type": "string", "description": "onLoad, onChange, onSubmit, or onCellEdit (default onChange)"},
					"field_name":  map[string]string{"type": "string", "description": "Triggering field, required for onChange"},
					"is_active":   map[string]string{"type": "boolean"},
				},
				"required": []string{"name", "table", "script"},
			},
		},
		{
			"name":        "create_business_rule",
			"description": "Creates a new Business Rule in ServiceNow",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":          map[string]string{"type": "string"},
					"table":         map[string]string{"type": "string", "description": "Table the rule applies to, e.g. incident"},
					"script":        map[string]string{"type": "string", "description": "The server-side JavaScript"},
					"when":          map[string]string{"type": "string", "description": "before, after, async, or display (default before)"},
					"order":         map[string]string{"type": "integer", "description": "Execution order, lower runs first (default 100)"},
					"action_insert": map[string]string{"type": "boolean"},
					"action_update": map[string]string{"type": "boolean"},
					"action_delete": map[string]string{"type": "boolean"},
					"action_query":  map[string]string{"type": "boolean"},
					"is_active":     map[string]string{"type": "boolean"},
				},
				"required": []string{"name", "table", "script"},
			},
		},
		{
			"name":        "create_sla_definition",
			"description": "Creates a basic SLA Definition in ServiceNow; conditions require encoded queries",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":             map[string]string{"type": "string"},
					"table":            map[string]string{"type": "string", "description": "Table the SLA applies to, e.g. incident"},
					"duration_seconds": map[string]string{"type": "integer", "description": "Target duration in seconds"},
					"start_condition":  map[string]string{"type": "string", "description": "Encoded query for when the SLA attaches"},
					"stop_condition":   map[string]string{"type": "string", "description": "Encoded query for when the SLA completes"},
					"pause_condition":  map[string]string{"type": "string", "description": "Encoded query for when the SLA pauses"},
				},
				"required": []string{"name", "table", "duration_seconds"},
			},
		},
		{
			"name":        "create_record_producer",
			"description": "Creates a Service Catalog Record Producer, optionally with variables and variable sets",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":              map[string]string{"type": "string", "description": "Catalog display name"},
					"table_name":        map[string]string{"type": "string", "description": "Target table for produced records"},
					"short_description": map[string]string{"type": "string"},
					"category_sys_id":   map[string]string{"type": "string", "description": "Service Catalog category sys_id"},
					"script":            map[string]string{"type": "string", "description": "Server-side script run on submission"},
					"variables":         map[string]any{"type": "array", "items": variableItems},
					"variable_set_ids":  map[string]any{"type": "array", "items": map[string]string{"type": "string"}},
				},
				"required": []string{"name", "table_name"},
			},
		},
		{
			"name":        "create_variable_set",
			"description": "Creates a reusable Variable Set, optionally with variables",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]string{"type": "string"},
					"description": map[string]string{"type": "string"},
					"variables":   map[string]any{"type": "array", "items": variableItems},
				},
				"required": []string{"name"},
			},
		},
		{
			"name":        "get_incidents",
			"description": "Retrieve recent incidents from ServiceNow",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"limit": map[string]string{"type": "integer", "description": "Number of records (default 5, max 100)"},
				},
			},
		},
		{
			"name":        "get_change_requests",
			"description": "Retrieve recent change requests from ServiceNow",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"limit": map[string]string{"type": "integer", "description": "Number of records (default 5, max 100)"},
				},
			},
		},
		{
			"name":        "get_users",
			"description": "Retrieve ServiceNow users from the sys_user table",
			"inputSchema": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"limit": map[string]string{"type": "integer", "description": "Number of records (default 5, max 100)"},
				},
			},
		},
	}
}
