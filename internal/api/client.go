// Package api talks to the notes REST API. Every mutating call answers with
// the refreshed note collection, which callers install wholesale.
package api

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
	"time"

	"github.com/google/uuid"

	"github.com/kingrea/noteboard/internal/note"
)

// Logger records request outcomes. logging.Logger satisfies it.
type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
}

type nopLogger struct{}

func (nopLogger) Debugw(string, ...any) {}
func (nopLogger) Warnw(string, ...any)  {}

// Error is a non-2xx answer from the API.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *Error) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// envelope is the API's response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
}

// Client issues requests against the notes API.
type Client struct {
	settings Settings
	http     *http.Client
	logger   Logger
	newID    func() string
}

// Option customizes client construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger overrides the default no-op logger.
func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRequestIDs lets tests control X-Request-ID values.
func WithRequestIDs(gen func() string) Option {
	return func(c *Client) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// NewClient prepares a client using the provided settings.
func NewClient(settings Settings, opts ...Option) *Client {
	settings.normalize()
	c := &Client{
		settings: settings,
		http:     &http.Client{Timeout: settings.Timeout},
		logger:   nopLogger{},
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string {
	return c.settings.BaseURL
}

// Timeout returns the resolved per-request deadline.
func (c *Client) Timeout() time.Duration {
	return c.settings.Timeout
}

// ListNotes fetches the user's note collection.
func (c *Client) ListNotes(ctx context.Context) ([]note.Note, error) {
	var notes []note.Note
	if err := c.do(ctx, http.MethodGet, "/note", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote persists a new note and returns the refreshed collection.
func (c *Client) CreateNote(ctx context.Context, n note.Note) ([]note.Note, error) {
	var notes []note.Note
	if err := c.do(ctx, http.MethodPost, "/note", n, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote replaces the stored note with n and returns the refreshed collection.
func (c *Client) UpdateNote(ctx context.Context, n note.Note) ([]note.Note, error) {
	if strings.TrimSpace(n.ID) == "" {
		return nil, note.ErrNotPersisted
	}
	var notes []note.Note
	if err := c.do(ctx, http.MethodPut, "/note/"+url.PathEscape(n.ID), n, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// DeleteNote removes a note permanently and returns the refreshed collection.
func (c *Client) DeleteNote(ctx context.Context, id string) ([]note.Note, error) {
	if strings.TrimSpace(id) == "" {
		return nil, note.ErrNotPersisted
	}
	var notes []note.Note
	if err := c.do(ctx, http.MethodDelete, "/note/"+url.PathEscape(id), nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// ListLabels fetches the user's labels.
func (c *Client) ListLabels(ctx context.Context) ([]note.Label, error) {
	var labels []note.Label
	if err := c.do(ctx, http.MethodGet, "/label", nil, &labels); err != nil {
		return nil, err
	}
	return labels, nil
}

// ListFolders fetches the user's folders.
func (c *Client) ListFolders(ctx context.Context) ([]note.Folder, error) {
	var folders []note.Folder
	if err := c.do(ctx, http.MethodGet, "/folder", nil, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

// CurrentUser fetches the account behind the token.
func (c *Client) CurrentUser(ctx context.Context) (note.User, error) {
	var user note.User
	if err := c.do(ctx, http.MethodGet, "/user/me", nil, &user); err != nil {
		return note.User{}, err
	}
	return user, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.settings.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build %s %s: %w", method, path, err)
	}
	requestID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.settings.UserAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.settings.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.settings.Token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warnw("api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.settings.MaxBodyBytes))
	if err != nil {
		return fmt.Errorf("api: read %s %s: %w", method, path, err)
	}
	c.logger.Debugw("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"elapsed", time.Since(started),
	)

	var env envelope
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("api: decode %s %s: %w", method, path, err)
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Method: method, Path: path, Status: resp.StatusCode, Message: env.Message}
		c.logger.Warnw("api error", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID, "message", env.Message)
		return apiErr
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("api: decode %s %s data: %w", method, path, err)
	}
	return nil
}
