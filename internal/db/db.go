// Package db provides PostgreSQL persistence for SnowGate's audit trail of
// tool invocations.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB wraps the underlying *sql.DB and provides typed query methods.
type DB struct {
	conn *sql.DB
}

// New opens a PostgreSQL connection and verifies connectivity.
func New(databaseURL string) (*DB, error) {
	conn, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	if err := ApplyMigrations(ctx, conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("db migrate: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the database connection pool.
func (d *DB) Close() error {
	return d.conn.Close()
}

// ToolCall is one recorded tool invocation.
type ToolCall struct {
	ToolCallID   string    `json:"tool_call_id"`
	ToolName     string    `json:"tool_name"`
	Request      string    `json:"request"`
	Result       string    `json:"result"`
	Status       string    `json:"status"`
	DurationMS   int64     `json:"duration_ms"`
	EvidenceHash string    `json:"evidence_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// InsertToolCall persists one tool invocation record.
func (d *DB) InsertToolCall(ctx context.Context, tc *ToolCall) error {
	_, err := d.conn.ExecContext(ctx,
		`INSERT INTO tool_calls (tool_call_id, tool_name, request, result, status, duration_ms, evidence_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tc.ToolCallID, tc.ToolName, tc.Request, tc.Result, tc.Status, tc.DurationMS, tc.EvidenceHash, tc.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert tool_call: %w", err)
	}
	return nil
}

// ListToolCalls returns the most recent tool invocations, newest first.
func (d *DB) ListToolCalls(ctx context.Context, limit int) ([]ToolCall, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT tool_call_id, tool_name, request, result, status, duration_ms, evidence_hash, created_at
		 FROM tool_calls ORDER BY created_at DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list tool_calls: %w", err)
	}
	defer rows.Close()

	out := make([]ToolCall, 0)
	for rows.Next() {
		var tc ToolCall
		if err := rows.Scan(&tc.ToolCallID, &tc.ToolName, &tc.Request, &tc.Result, &tc.Status, &tc.DurationMS, &tc.EvidenceHash, &tc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan tool_call: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}
