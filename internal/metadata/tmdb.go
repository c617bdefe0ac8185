package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL  = "https://api.themoviedb.org"
	defaultImageURL = "https://image.tmdb.org/t/p"
	defaultLanguage = "fr-FR"
	defaultCacheTTL = 24 * time.Hour
)

// Client is a TMDB search client.
type Client struct {
	apiKey     string
	baseURL    string
	imageURL   string
	language   string
	httpClient *http.Client
	cache      *Cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithLanguage sets the localization language sent to TMDB.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache enables response caching.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// NewClient creates a new TMDB client.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		baseURL:  defaultBaseURL,
		imageURL: defaultImageURL,
		language: defaultLanguage,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Title        string `json:"title"`
	Name         string `json:"name"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
	Overview     string `json:"overview"`
}

// LookupByTitle searches TMDB for a title of the given kind ("movie" or
// "series") and returns the first hit. Returns ErrNotFound when nothing
// matches; music lookups are not supported and report ErrNotFound as well.
func (c *Client) LookupByTitle(ctx context.Context, title string, year int, kind string) (*Result, error) {
	var endpoint, yearParam string
	switch kind {
	case "movie":
		endpoint, yearParam = "/3/search/movie", "year"
	case "series":
		endpoint, yearParam = "/3/search/tv", "first_air_date_year"
	default:
		return nil, ErrNotFound
	}

	cacheKey := fmt.Sprintf("lookup:%s:%s:%d", kind, strings.ToLower(title), year)
	if c.cache != nil {
		if data, ok := c.cache.Get(ctx, cacheKey); ok {
			var r Result
			if err := json.Unmarshal(data, &r); err == nil {
				return &r, nil
			}
		}
	}

	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("query", title)
	q.Set("language", c.language)
	if year > 0 {
		q.Set(yearParam, strconv.Itoa(year))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TMDB API error: %s", resp.Status)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(sr.Results) == 0 {
		return nil, ErrNotFound
	}

	first := sr.Results[0]
	r := &Result{
		LocalizedTitle:       first.Title,
		LocalizedDescription: first.Overview,
	}
	if r.LocalizedTitle == "" {
		r.LocalizedTitle = first.Name // TV results use "name"
	}
	if first.PosterPath != "" {
		r.Poster = c.imageURL + "/w500" + first.PosterPath
	}
	if first.BackdropPath != "" {
		r.Backdrop = c.imageURL + "/w1280" + first.BackdropPath
	}

	if c.cache != nil {
		if data, err := json.Marshal(r); err == nil {
			_ = c.cache.Set(ctx, cacheKey, data, defaultCacheTTL)
		}
	}
	return r, nil
}
