// Package giphy fetches a random festive GIF for embedding into the Secret
// Santa letters. Images are PG-13 rated or below and retrieved through the
// GIPHY random endpoint, which requires an API key.
package giphy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultBaseURL is the public GIPHY API endpoint.
	DefaultBaseURL = "https://api.giphy.com"

	// DefaultTag selects festive GIFs.
	DefaultTag = "Merry Christmas"

	// DefaultRating caps the GIF rating.
	DefaultRating = "PG-13"
)

// GIF is one retrieved image: the downsampled URL used in the letter body,
// the GIPHY ID used as the embed content ID, and the raw image bytes.
type GIF struct {
	ID   string
	URL  string
	Data []byte
}

// Client calls the GIPHY API.
type Client struct {
	baseURL    string
	apiKey     string
	tag        string
	rating     string
	httpClient *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithTag overrides the search tag.
func WithTag(tag string) Option {
	return func(c *Client) {
		if tag != "" {
			c.tag = tag
		}
	}
}

// WithRating overrides the maximum content rating.
func WithRating(rating string) Option {
	return func(c *Client) {
		if rating != "" {
			c.rating = rating
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient returns a GIPHY client for the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		tag:     DefaultTag,
		rating:  DefaultRating,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type randomResponse struct {
	Data struct {
		ID                        string `json:"id"`
		FixedHeightDownsampledURL string `json:"fixed_height_downsampled_url"`
		Images                    struct {
			FixedHeightDownsampled struct {
				URL string `json:"url"`
			} `json:"fixed_height_downsampled"`
		} `json:"images"`
	} `json:"data"`
}

// Random fetches one random GIF matching the client's tag and rating,
// including the image bytes.
func (c *Client) Random(ctx context.Context) (*GIF, error) {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	q.Set("tag", c.tag)
	q.Set("rating", c.rating)
	endpoint := c.baseURL + "/v1/gifs/random?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("giphy random request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("giphy random request failed: %s", resp.Status)
	}

	var decoded randomResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode giphy response: %w", err)
	}

	gifURL := decoded.Data.FixedHeightDownsampledURL
	if gifURL == "" {
		gifURL = decoded.Data.Images.FixedHeightDownsampled.URL
	}
	if decoded.Data.ID == "" || gifURL == "" {
		return nil, fmt.Errorf("giphy response missing id or image url")
	}

	data, err := c.download(ctx, gifURL)
	if err != nil {
		return nil, err
	}

	return &GIF{ID: decoded.Data.ID, URL: gifURL, Data: data}, nil
}

func (c *Client) download(ctx context.Context, gifURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gifURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gif download failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gif download failed: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
