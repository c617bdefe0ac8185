package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Client wraps HTTP calls to the mediatheque server.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a new mediatheque API client.
func NewClient(serverURL, token string) *Client {
	return &Client{
		baseURL: serverURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) do(method, path string, body any, result any) error {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, result)
}

// API response types (mirror server types)

type StatusResponse struct {
	Status string `json:"status"`
	Auth   bool   `json:"auth"`
	Cache  bool   `json:"cache"`
}

type CategoryResponse struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type MediaItemResponse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	LocalizedTitle string `json:"localizedTitle,omitempty"`
	Path           string `json:"path"`
	Kind           string `json:"type"`
	Genre          string `json:"genre,omitempty"`
	Year           int    `json:"year,omitempty"`
	Artist         string `json:"artist,omitempty"`
	Album          string `json:"album,omitempty"`
	Season         int    `json:"season,omitempty"`
	Episode        int    `json:"episode,omitempty"`
	Sequel         int    `json:"sequel,omitempty"`
}

type ItemResponse struct {
	MediaItemResponse
	IsGroup      bool                `json:"isGroup,omitempty"`
	Episodes     []MediaItemResponse `json:"episodes,omitempty"`
	EpisodeCount int                 `json:"episodeCount,omitempty"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       string `json:"id"`
		Username string `json:"username"`
	} `json:"user"`
}

// API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Categories() ([]CategoryResponse, error) {
	var resp []CategoryResponse
	if err := c.get("/api/v1/categories", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) CategoryItems(category string) ([]ItemResponse, error) {
	var resp []ItemResponse
	if err := c.get("/api/v1/categories/"+url.PathEscape(category), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Search(query string) ([]MediaItemResponse, error) {
	var resp []MediaItemResponse
	if err := c.get("/api/v1/search?q="+url.QueryEscape(query), &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Login(username, password string) (*LoginResponse, error) {
	req := map[string]string{"username": username, "password": password}
	var resp LoginResponse
	if err := c.do(http.MethodPost, "/api/v1/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
