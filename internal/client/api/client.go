// Package api is the HTTP client for the notekeep server. It handles
// request encoding, bearer-token headers and the mapping of error status
// codes back onto the shared sentinel errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dbelyav/notekeep/internal/common"
)

// User mirrors the server's user representation. The password hash is never
// part of the wire format.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type Note struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner"`
	Accessors []string  `json:"accessors"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// SetToken installs the bearer token sent with every subsequent request.
func (c *Client) SetToken(token string) {
	c.token = token
}

type errResponse struct {
	Error string `json:"error"`
}

// do sends one JSON request and decodes the response into out (unless out is
// nil). Error statuses map onto sentinel errors so callers can branch with
// errors.Is instead of inspecting status codes.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("error building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			if c.token == "" {
				return common.ErrBadCredentials
			}
			return common.ErrInvalidToken
		case http.StatusNotFound:
			return common.ErrorNotFound
		default:
			var er errResponse
			if err := json.NewDecoder(resp.Body).Decode(&er); err == nil && er.Error != "" {
				return fmt.Errorf("server error: %s", er.Error)
			}
			return fmt.Errorf("server error: status %d", resp.StatusCode)
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func (c *Client) Signup(ctx context.Context, username, password string) (*User, error) {
	var user User
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/signup", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var result struct {
		Token string `json:"token"`
	}
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &result); err != nil {
		return "", err
	}
	c.token = result.Token
	return result.Token, nil
}

func (c *Client) CreateNote(ctx context.Context, content string) (*Note, error) {
	var note Note
	if err := c.do(ctx, http.MethodPost, "/notes", map[string]string{"content": content}, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]*Note, error) {
	var notes []*Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (*Note, error) {
	var note Note
	if err := c.do(ctx, http.MethodGet, "/notes/"+url.PathEscape(id), nil, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) UpdateNote(ctx context.Context, id, content string) (*Note, error) {
	var note Note
	if err := c.do(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), map[string]string{"content": content}, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) (int64, error) {
	var result struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	if err := c.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, &result); err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

func (c *Client) ShareNote(ctx context.Context, id string, accessors []string) (*Note, error) {
	if accessors == nil {
		accessors = []string{}
	}
	var note Note
	body := map[string][]string{"accessors": accessors}
	if err := c.do(ctx, http.MethodPost, "/notes/"+url.PathEscape(id)+"/share", body, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) Search(ctx context.Context, query string) ([]*Note, error) {
	var notes []*Note
	if err := c.do(ctx, http.MethodGet, "/search?q="+url.QueryEscape(query), nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
