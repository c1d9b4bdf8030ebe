// Package client is a Go client for the capture API. It keeps the
// session token pair internally and transparently refreshes the access
// token once when a request comes back unauthorized.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrServer       = errors.New("server error")
)

// Client talks to a capture API server. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:8080/api/v1".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// TokenPair mirrors the server's session response.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Profile is the authenticated user's public identity.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Record is a stored capture.
type Record struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RecordPage is one page of a record listing.
type RecordPage struct {
	Records []Record `json:"records"`
	Total   int      `json:"total"`
	Page    int      `json:"page"`
	Limit   int      `json:"limit"`
}

// SetTokens seeds the session from previously persisted tokens.
func (c *Client) SetTokens(pair TokenPair) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = pair.AccessToken
	c.refreshToken = pair.RefreshToken
}

// Tokens returns the current session tokens.
func (c *Client) Tokens() TokenPair {
	c.mu.Lock()
	defer c.mu.Unlock()
	return TokenPair{AccessToken: c.accessToken, RefreshToken: c.refreshToken}
}

// Register creates a user and opens a session.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	var pair TokenPair
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &pair, false); err != nil {
		return err
	}
	c.SetTokens(pair)
	return nil
}

// Login opens a session with existing credentials.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var pair TokenPair
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &pair, false); err != nil {
		return err
	}
	c.SetTokens(pair)
	return nil
}

// Logout revokes the refresh token and clears local session state.
func (c *Client) Logout(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()
	if refresh == "" {
		return ErrUnauthorized
	}

	err := c.do(ctx, http.MethodPost, "/auth/logout", map[string]string{"refreshToken": refresh}, nil, false)
	c.SetTokens(TokenPair{})
	return err
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	var out Profile
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &out, true)
	return out, err
}

// ListRecords returns one page of the owner's records. search may be empty.
func (c *Client) ListRecords(ctx context.Context, page, limit int, search string) (RecordPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/records"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out RecordPage
	err := c.do(ctx, http.MethodGet, path, nil, &out, true)
	return out, err
}

// CreateRecord stores a new record and returns it.
func (c *Client) CreateRecord(ctx context.Context, title, content, comment string) (Record, error) {
	var out Record
	body := map[string]string{"title": title, "content": content, "comment": comment}
	err := c.do(ctx, http.MethodPost, "/records", body, &out, true)
	return out, err
}

// GetRecord fetches one record by id.
func (c *Client) GetRecord(ctx context.Context, id string) (Record, error) {
	var out Record
	err := c.do(ctx, http.MethodGet, "/records/"+url.PathEscape(id), nil, &out, true)
	return out, err
}

// UpdateRecord replaces a record's fields.
func (c *Client) UpdateRecord(ctx context.Context, id, title, content, comment string) error {
	body := map[string]string{"title": title, "content": content, "comment": comment}
	return c.do(ctx, http.MethodPut, "/records/"+url.PathEscape(id), body, nil, true)
}

// DeleteRecord removes a record.
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/records/"+url.PathEscape(id), nil, nil, true)
}

// Upload sends an image for recognition and returns the resulting
// rich-text delta.
func (c *Client) Upload(ctx context.Context, fileName string, image []byte) (json.RawMessage, error) {
	build := func() (io.Reader, string, error) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("image", fileName)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(image); err != nil {
			return nil, "", err
		}
		if err := w.Close(); err != nil {
			return nil, "", err
		}
		return &buf, w.FormDataContentType(), nil
	}

	var out struct {
		Delta json.RawMessage `json:"delta"`
	}
	err := c.doRaw(ctx, http.MethodPost, "/records/upload", build, &out, true)
	return out.Delta, err
}

// do sends payload as JSON. Authenticated requests that come back 401
// trigger exactly one refresh followed by one retry.
func (c *Client) do(ctx context.Context, method, path string, payload, out any, authed bool) error {
	build := func() (io.Reader, string, error) {
		if payload == nil {
			return nil, "", nil
		}
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(raw), "application/json", nil
	}
	return c.doRaw(ctx, method, path, build, out, authed)
}

func (c *Client) doRaw(ctx context.Context, method, path string, build func() (io.Reader, string, error), out any, authed bool) error {
	status, err := c.send(ctx, method, path, build, out, authed)
	if err != nil || status != http.StatusUnauthorized || !authed {
		return err
	}

	// One refresh, one retry. A second 401 is returned as-is.
	if rerr := c.refresh(ctx); rerr != nil {
		return rerr
	}
	_, err = c.send(ctx, method, path, build, out, authed)
	return err
}

func (c *Client) send(ctx context.Context, method, path string, build func() (io.Reader, string, error), out any, authed bool) (int, error) {
	body, contentType, err := build()
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		c.mu.Lock()
		token := c.accessToken
		c.mu.Unlock()
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return resp.StatusCode, apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// refresh exchanges the stored refresh token for a new access token.
// On failure the session state is cleared.
func (c *Client) refresh(ctx context.Context) error {
	c.mu.Lock()
	refresh := c.refreshToken
	c.mu.Unlock()
	if refresh == "" {
		return ErrUnauthorized
	}

	var out struct {
		AccessToken string `json:"accessToken"`
	}
	err := c.do(ctx, http.MethodPost, "/auth/refresh", map[string]string{"refreshToken": refresh}, &out, false)
	if err != nil {
		c.SetTokens(TokenPair{})
		return err
	}

	c.mu.Lock()
	c.accessToken = out.AccessToken
	c.mu.Unlock()
	return nil
}

func apiError(resp *http.Response) error {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	msg := resp.Status
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
		msg = envelope.Error.Message
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	case envelope.Error.Code == "conflict":
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrServer, msg)
	default:
		return fmt.Errorf("api error %d: %s", resp.StatusCode, msg)
	}
}
