// Package mapbox provides forward geocoding against the Mapbox places API,
// selecting the single best feature from each result set.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// ErrLocationNotFound is returned when the API has no result for the query.
var ErrLocationNotFound = eris.New("mapbox: location not found")

// APIError reports a non-success response from the API, carrying the
// provider-supplied message. The message is for logs, never for end users.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mapbox: status %d: %s", e.StatusCode, e.Message)
}

// Feature is one geocoding candidate.
type Feature struct {
	// Relevance is the provider-assigned confidence score, 0-1, higher is better.
	Relevance float64 `json:"relevance"`

	// PlaceType is an ordered list of type tags; the first element is authoritative.
	PlaceType []string `json:"place_type"`

	// Text is the display name of the feature.
	Text string `json:"text"`

	// Center is the (longitude, latitude) pair of the feature's center.
	Center [2]float64 `json:"center"`

	// Context lists the feature's ancestor administrative units.
	Context []ContextEntry `json:"context"`
}

// ContextEntry is one ancestor entity of a feature. The ID's prefix before
// the first "." names the ancestor's own type (e.g. "region.12345").
type ContextEntry struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// PrimaryType returns the authoritative place-type tag, or "" when absent.
func (f *Feature) PrimaryType() string {
	if len(f.PlaceType) == 0 {
		return ""
	}
	return f.PlaceType[0]
}

// ContextMap indexes the feature's ancestors by their type prefix.
func (f *Feature) ContextMap() map[string]string {
	m := make(map[string]string, len(f.Context))
	for _, c := range f.Context {
		typ, _, _ := strings.Cut(c.ID, ".")
		m[typ] = c.Text
	}
	return m
}

// Client geocodes free-text queries.
type Client interface {
	// Geolocate resolves a query to the single best feature. It returns
	// ErrLocationNotFound when the API has no result, and *APIError for any
	// other non-success response.
	Geolocate(ctx context.Context, query string) (*Feature, error)
}

// Option configures the client.
type Option func(*client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(base string) Option {
	return func(c *client) {
		c.baseURL = base
	}
}

// WithRateLimit sets the requests-per-second limit for API calls.
func WithRateLimit(rps float64) Option {
	return func(c *client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), int(rps))
	}
}

type client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	limiter    *rate.Limiter
}

// NewClient creates a Client with the given access token and options.
func NewClient(token string, opts ...Option) Client {
	c := &client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		token:      token,
		limiter:    rate.NewLimiter(10, 10),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type geocodeResponse struct {
	Features []Feature `json:"features"`
	Message  string    `json:"message"`
}

// Geolocate implements Client.
func (c *client) Geolocate(ctx context.Context, query string) (*Feature, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "mapbox: rate limit")
	}

	params := url.Values{"access_token": {c.token}}
	reqURL := c.baseURL + "/" + url.PathEscape(query) + ".json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "mapbox: build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "mapbox: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "mapbox: read body")
	}

	var parsed geocodeResponse
	// The error branch below still wants the provider message, so a decode
	// failure is only fatal on the success path.
	decodeErr := json.Unmarshal(body, &parsed)

	// 404 means the query found nothing.
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrLocationNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: parsed.Message}
	}
	if decodeErr != nil {
		return nil, eris.Wrap(decodeErr, "mapbox: parse response")
	}

	return BestFeature(parsed.Features)
}
