// Package servicenow is a thin client for one instance's Table API: it builds
// a single authenticated request per call and normalizes the response (or its
// failure) into a map plus a typed error.
package servicenow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/snowgate/snowgate/internal/telemetry"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL    string
	creds      Credentials
	httpClient *http.Client
	logger     *slog.Logger
}

type Config struct {
	// InstanceURL is the instance base URL, e.g. https://dev12345.service-now.com.
	InstanceURL string
	Credentials Credentials
	Timeout     time.Duration
	Logger      *slog.Logger
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.InstanceURL) == "" {
		return nil, fmt.Errorf("instance URL is required")
	}
	if cfg.Credentials == nil {
		return nil, fmt.Errorf("credentials are required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.InstanceURL, "/"),
		creds:      cfg.Credentials,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// CreateRecord inserts one row through the Table API. Creation is a single
// non-transactional POST; there is no rollback once the row exists.
func (c *Client) CreateRecord(ctx context.Context, table string, payload map[string]any) (map[string]any, error) {
	return c.Do(ctx, http.MethodPost, "api/now/table/"+table, payload)
}

// GetTable reads up to limit records from a table's collection endpoint with
// display values resolved. The returned map keeps the "result" envelope so
// callers can range over the record sequence.
func (c *Client) GetTable(ctx context.Context, table string, limit int) (map[string]any, error) {
	params := map[string]any{
		"sysparm_limit":         strconv.Itoa(limit),
		"sysparm_display_value": "true",
	}
	return c.Do(ctx, http.MethodGet, "api/now/table/"+table, params)
}

// Do performs one authenticated call against the instance. POST sends the
// payload as a JSON body, GET as query parameters. Every failure surfaces as
// *APIError, *ConnectionError, or *UnexpectedError; nothing escapes untyped.
func (c *Client) Do(ctx context.Context, method, endpoint string, payload map[string]any) (map[string]any, error) {
	apiURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")

	var req *http.Request
	var err error
	switch method {
	case http.MethodPost:
		body, marshalErr := json.Marshal(payload)
		if marshalErr != nil {
			return nil, &UnexpectedError{Err: fmt.Errorf("marshal payload: %w", marshalErr)}
		}
		req, err = http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	case http.MethodGet:
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
		if err == nil {
			q := req.URL.Query()
			for k, v := range payload {
				q.Set(k, fmt.Sprintf("%v", v))
			}
			req.URL.RawQuery = q.Encode()
		}
	default:
		return nil, &UnexpectedError{Err: fmt.Errorf("unsupported HTTP method: %s", method)}
	}
	if err != nil {
		return nil, &UnexpectedError{Err: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if err := c.creds.Apply(ctx, req); err != nil {
		return nil, &UnexpectedError{Err: fmt.Errorf("authenticate: %w", err)}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("servicenow request failed", "method", method, "endpoint", endpoint, "err", err)
		return nil, &ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnexpectedError{Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("servicenow request",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration", fmt.Sprintf("%dms", time.Since(start).Milliseconds()),
	)

	if resp.StatusCode >= 400 {
		telemetry.IncServiceNowAPIError(endpoint, resp.StatusCode)
		return nil, apiErrorFromBody(resp.StatusCode, body)
	}

	switch resp.StatusCode {
	case http.StatusNoContent:
		return map[string]any{"status": "success", "message": "Operation successful (No Content)"}, nil
	case http.StatusCreated:
		result, ok, err := decodeResult(body)
		if err != nil {
			return nil, &UnexpectedError{Err: err}
		}
		if !ok {
			return map[string]any{"status": "success", "message": "Record created"}, nil
		}
		return result, nil
	default:
		result, ok, err := decodeResult(body)
		if err != nil {
			return nil, &UnexpectedError{Err: err}
		}
		if !ok {
			return map[string]any{}, nil
		}
		return result, nil
	}
}

// decodeResult extracts the "result" field of a success body. A single record
// comes back as-is; a collection keeps its envelope so the sequence survives.
func decodeResult(body []byte) (map[string]any, bool, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, false, nil
	}
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}
	switch result := parsed["result"].(type) {
	case map[string]any:
		return result, true, nil
	case []any:
		return parsed, true, nil
	default:
		return nil, false, nil
	}
}

func apiErrorFromBody(status int, body []byte) *APIError {
	raw := fmt.Sprintf("HTTP Error: %d - %s", status, body)

	var parsed struct {
		Error struct {
			Message string `json:"message"`
			Detail  string `json:"detail"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return &APIError{StatusCode: status, Message: raw}
	}

	message := parsed.Error.Message
	if message == "" {
		message = "Unknown ServiceNow Error"
	}
	detail := parsed.Error.Detail
	if detail == "" {
		detail = string(body)
	}
	return &APIError{StatusCode: status, Message: message, Detail: detail}
}
