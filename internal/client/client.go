// Package client wraps the employee directory REST boundary. It builds the
// requests, attaches the bearer credential when one is available and
// translates failures into the typed errors in errors.go. It never retries.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"empdir/internal/domain/directory"
)

const employeesPath = "/api/employees/"

// TokenSource yields the current bearer token, or "" when the session has
// none. Unauthenticated calls are allowed; the server decides what they may
// do.
type TokenSource func() string

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		token:   tokens,
	}
}

// SetHTTPClient swaps the underlying HTTP client, mainly for tests.
func (c *Client) SetHTTPClient(h *http.Client) { c.http = h }

func (c *Client) List(ctx context.Context) ([]directory.Employee, error) {
	var records []directory.Employee
	if err := c.do(ctx, "list employees", http.MethodGet, employeesPath, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) Create(ctx context.Context, draft directory.Draft) (*directory.Employee, error) {
	var created directory.Employee
	if err := c.do(ctx, "create employee", http.MethodPost, employeesPath, draft, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) Update(ctx context.Context, id int64, draft directory.Draft) (*directory.Employee, error) {
	var updated directory.Employee
	path := fmt.Sprintf("%s%d/", employeesPath, id)
	if err := c.do(ctx, "update employee", http.MethodPut, path, draft, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s%d/", employeesPath, id)
	return c.do(ctx, "delete employee", http.MethodDelete, path, nil, nil)
}

// Login exchanges credentials for a bearer token at the directory's auth
// endpoint.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body := map[string]string{"email": email, "password": password}
	var reply struct {
		AccessToken string `json:"access_token"`
	}
	if err := c.do(ctx, "login", http.MethodPost, "/api/auth/login/", body, &reply); err != nil {
		return "", err
	}
	return reply.AccessToken, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != nil {
		if token := c.token(); token != "" {
			warnIfExpired(token)
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.http.Do(req)
	if err != nil {
		return &ConnectivityError{Op: op, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return errorFromResponse(op, res)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

// errorFromResponse builds a RequestError, parsing the service's field-error
// body when it has one. An unparseable body falls back to a generic message.
func errorFromResponse(op string, res *http.Response) error {
	reqErr := &RequestError{Op: op, Status: res.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil || len(raw) == 0 {
		return reqErr
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		reqErr.Detail = http.StatusText(res.StatusCode)
		return reqErr
	}

	for key, value := range parsed {
		switch v := value.(type) {
		case string:
			if key == "detail" {
				reqErr.Detail = v
				continue
			}
			addField(reqErr, key, v)
		case []any:
			for _, item := range v {
				if msg, ok := item.(string); ok {
					addField(reqErr, key, msg)
				}
			}
		}
	}
	return reqErr
}

func addField(e *RequestError, field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// warnIfExpired logs when the session token already lapsed. The token is
// still sent; rejecting it is the server's call.
func warnIfExpired(token string) {
	claims := jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil || claims.ExpiresAt == nil {
		return
	}
	if claims.ExpiresAt.Before(time.Now()) {
		slog.Warn("session token is expired, request will likely be rejected")
	}
}
