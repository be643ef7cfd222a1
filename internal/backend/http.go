package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/deweydb/dewey/internal/apperr"
)

const maxBodyBytes = 4 << 20

// HTTPInvoker calls commands on a local backend sidecar:
// POST {base}/invoke/{command} with the JSON-encoded args.
type HTTPInvoker struct {
	base   string
	token  string
	client *http.Client
}

// NewHTTPInvoker creates an invoker for baseURL. token, when set, is sent as a bearer token.
func NewHTTPInvoker(baseURL, token string, client *http.Client) (*HTTPInvoker, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse backend url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend url %q: scheme must be http or https", baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPInvoker{
		base:   strings.TrimRight(u.String(), "/"),
		token:  token,
		client: client,
	}, nil
}

// Invoke implements Invoker
func (h *HTTPInvoker) Invoke(ctx context.Context, command string, args, out any) error {
	if args == nil {
		args = struct{}{}
	}
	body, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode %s args: %w", command, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.base+"/invoke/"+url.PathEscape(command), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", command, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return apperr.New(apperr.CategoryConnection, apperr.SeverityError,
			"The backend is not reachable", apperr.SubConnectionFailed,
			map[string]any{"command": command, "cause": err.Error()})
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", command, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Rejection{Command: command, StatusCode: resp.StatusCode, Body: json.RawMessage(bytes.TrimSpace(payload))}
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return fmt.Errorf("decode %s response at offset %d: %w", command, syntaxErr.Offset, err)
		}
		return fmt.Errorf("decode %s response: %w", command, err)
	}
	return nil
}
