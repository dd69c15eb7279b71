package tools

import (
	"context"
	"fmt"
	"strings"
)

const (
	defaultListLimit = 5
	maxListLimit     = 100
)

type ListArgs struct {
	Limit int `json:"limit,omitempty"`
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

type listSpec struct {
	table  string
	plural string
	format func(record map[string]any) string
}

func (s *Service) listRecords(ctx context.Context, spec listSpec, limit int) string {
	result, err := s.sn.GetTable(ctx, spec.table, clampLimit(limit))
	if err != nil {
		return fmt.Sprintf("Error retrieving %s: %v", spec.plural, err)
	}

	raw, ok := result["result"].([]any)
	if !ok {
		return fmt.Sprintf("No %s found or error retrieving %s.", spec.plural, spec.plural)
	}
	if len(raw) == 0 {
		return fmt.Sprintf("No %s found.", spec.plural)
	}

	lines := make([]string, 0, len(raw))
	for _, item := range raw {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		lines = append(lines, spec.format(record))
	}
	return fmt.Sprintf("Retrieved %d %s:\n%s", len(raw), spec.plural, strings.Join(lines, "\n"))
}

// GetIncidents lists recent incidents as one bullet per record.
func (s *Service) GetIncidents(ctx context.Context, args ListArgs) string {
	return s.listRecords(ctx, listSpec{
		table:  "incident",
		plural: "incidents",
		format: func(r map[string]any) string {
			return fmt.Sprintf("• %s: %s (State: %s, Priority: %s)",
				stringField(r, "number", "N/A"),
				stringField(r, "short_description", "No description"),
				stringField(r, "state", "N/A"),
				stringField(r, "priority", "N/A"))
		},
	}, args.Limit)
}

// GetChangeRequests lists recent change requests.
func (s *Service) GetChangeRequests(ctx context.Context, args ListArgs) string {
	return s.listRecords(ctx, listSpec{
		table:  "change_request",
		plural: "change requests",
		format: func(r map[string]any) string {
			return fmt.Sprintf("• %s: %s (State: %s, Risk: %s)",
				stringField(r, "number", "N/A"),
				stringField(r, "short_description", "No description"),
				stringField(r, "state", "N/A"),
				stringField(r, "risk", "N/A"))
		},
	}, args.Limit)
}

// GetUsers lists sys_user records.
func (s *Service) GetUsers(ctx context.Context, args ListArgs) string {
	return s.listRecords(ctx, listSpec{
		table:  "sys_user",
		plural: "users",
		format: func(r map[string]any) string {
			return fmt.Sprintf("• %s: %s (Email: %s, Active: %s)",
				stringField(r, "user_name", "N/A"),
				stringField(r, "name", "No name"),
				stringField(r, "email", "N/A"),
				stringField(r, "active", "N/A"))
		},
	}, args.Limit)
}
