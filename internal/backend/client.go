package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	app_errors "askai/client/internal/errors"
	"askai/client/internal/model"
)

// Client defines the calls the client makes against the AI service.
type Client interface {
	Login(ctx context.Context, creds model.Credentials) (*model.LoginResponse, error)
	Signup(ctx context.Context, creds model.Credentials) error
	Ask(ctx context.Context, token, prompt string) (*model.AskResponse, error)
	History(ctx context.Context, token string) ([]model.HistoryEntry, error)
}

// APIError is a non-2xx answer from the AI service. Detail holds the service's
// own message verbatim when it sent one.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ai service returned status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("ai service returned status %d", e.StatusCode)
}

// Unwrap maps the status code onto the shared sentinel errors.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusUnauthorized:
		return app_errors.ErrUnauthenticated
	case e.StatusCode == http.StatusForbidden:
		return app_errors.ErrPermission
	case e.StatusCode == http.StatusNotFound:
		return app_errors.ErrNotFound
	case e.StatusCode == http.StatusConflict:
		return app_errors.ErrConflict
	case e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusUnprocessableEntity:
		return app_errors.ErrValidation
	default:
		return app_errors.ErrInternal
	}
}

// DetailOf returns the backend-provided detail carried by err, if any.
func DetailOf(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

type httpClient struct {
	client *http.Client
	url    string
}

func NewClient(url string, timeout time.Duration) Client {
	return &httpClient{
		client: &http.Client{Timeout: timeout},
		url:    strings.TrimRight(url, "/"),
	}
}

func (c *httpClient) Login(ctx context.Context, creds model.Credentials) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", "", creds, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("%w: login response has no access_token", app_errors.ErrMalformedResponse)
	}
	return &resp, nil
}

func (c *httpClient) Signup(ctx context.Context, creds model.Credentials) error {
	return c.do(ctx, http.MethodPost, "/signup", "", creds, nil)
}

func (c *httpClient) Ask(ctx context.Context, token, prompt string) (*model.AskResponse, error) {
	var resp model.AskResponse
	if err := c.do(ctx, http.MethodPost, "/ask", token, model.AskRequest{Prompt: prompt}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *httpClient) History(ctx context.Context, token string) ([]model.HistoryEntry, error) {
	var entries []model.HistoryEntry
	if err := c.do(ctx, http.MethodGet, "/history", token, nil, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	return entries, nil
}

// do sends one JSON request. A nil out skips decoding of the success body.
func (c *httpClient) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("could not marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.url+path, body)
	if err != nil {
		return fmt.Errorf("could not create http request: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", app_errors.ErrUnreachable, method, path, err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: could not read response body: %v", app_errors.ErrUnreachable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Detail: parseDetail(bodyBytes)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("%w: could not decode %s %s response: %v", app_errors.ErrMalformedResponse, method, path, err)
	}
	return nil
}

// parseDetail extracts a human-readable message from an error body. Services built
// on FastAPI send {"detail": "..."} or, for validation failures, a list of
// {"msg": "..."} objects.
func parseDetail(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil && detail != "" {
		return detail
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if item.Msg != "" {
				msgs = append(msgs, item.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	return envelope.Error
}
