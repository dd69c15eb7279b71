package servicenow

import (
	"context"
	"net/http"
)

// Credentials attaches authentication to an outgoing Table API request.
type Credentials interface {
	Apply(ctx context.Context, req *http.Request) error
}

// BasicAuth is the default Table API authentication mode.
type BasicAuth struct {
	Username string
	Password string
}

func (b BasicAuth) Apply(_ context.Context, req *http.Request) error {
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}
