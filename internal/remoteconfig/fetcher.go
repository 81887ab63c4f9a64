// Package remoteconfig implements the dynamic instrumentation control
// plane client.
package remoteconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Fetcher retrieves the latest configuration from the control plane.
type Fetcher interface {
	// GetConfigurations returns the latest configuration, or
	// (nil, nil) when no update is available. The call may block for
	// an arbitrary external duration and may return arbitrary
	// recoverable errors.
	GetConfigurations(ctx context.Context) (*Configuration, error)
}

// Updater validates and applies an accepted configuration to live
// instrumentation state.
type Updater interface {
	// Accept applies cfg synchronously. An error means the
	// configuration was rejected or only partially applied; the
	// poller treats it like a failed fetch.
	Accept(cfg *Configuration) error
}

// configPath is the agent endpoint serving configuration documents.
const configPath = "/v1/config"

// HTTPFetcher fetches configuration from the trace agent over HTTP.
//
// A 200 response carries a JSON configuration document; 204 and 404
// mean no update is available.
type HTTPFetcher struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// HTTPFetcherOption configures a HTTPFetcher.
type HTTPFetcherOption func(*HTTPFetcher)

// WithAPIKey sets the control-plane API key sent with each request.
func WithAPIKey(key string) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.apiKey = key
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(client *http.Client) HTTPFetcherOption {
	return func(f *HTTPFetcher) {
		f.client = client
	}
}

// NewHTTPFetcher creates a fetcher against the given agent endpoint.
func NewHTTPFetcher(endpoint string, opts ...HTTPFetcherOption) *HTTPFetcher {
	baseURL := endpoint
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	baseURL = strings.TrimSuffix(baseURL, "/")

	f := &HTTPFetcher{
		baseURL: baseURL,
		client: &http.Client{
			// No timeout: the agent long-polls and the poller
			// tolerates an arbitrarily slow fetch.
			Timeout: 0,
		},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// GetConfigurations implements Fetcher.
func (f *HTTPFetcher) GetConfigurations(ctx context.Context) (*Configuration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+configPath, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if f.apiKey != "" {
		req.Header.Set("X-API-Key", f.apiKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch configuration: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound:
		// No update available.
		return nil, nil
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch configuration: unexpected status %d", resp.StatusCode)
	}

	var cfg Configuration
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	return &cfg, nil
}

// fetcherFunc adapts a function to the Fetcher interface.
type fetcherFunc func(ctx context.Context) (*Configuration, error)

func (f fetcherFunc) GetConfigurations(ctx context.Context) (*Configuration, error) {
	return f(ctx)
}

// StaticFetcher returns a Fetcher that always serves the same
// configuration once and then reports no update. Useful for local
// development without an agent.
func StaticFetcher(cfg *Configuration) Fetcher {
	delivered := false
	return fetcherFunc(func(ctx context.Context) (*Configuration, error) {
		if delivered {
			return nil, nil
		}
		delivered = true
		return cfg, nil
	})
}
