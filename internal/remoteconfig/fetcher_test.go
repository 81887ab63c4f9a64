package remoteconfig

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPFetcherSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != configPath {
			t.Errorf("path = %s, want %s", r.URL.Path, configPath)
		}
		if got := r.Header.Get("X-API-Key"); got != "tmck_test" {
			t.Errorf("X-API-Key = %q, want tmck_test", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"revision": "r42",
			"ops": {"poll_interval_seconds": 5},
			"tracing": {"log_level": "debug", "sampling_rate": 0.5}
		}`))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL, WithAPIKey("tmck_test"))

	cfg, err := f.GetConfigurations(context.Background())
	if err != nil {
		t.Fatalf("GetConfigurations() error = %v", err)
	}
	if cfg == nil {
		t.Fatal("expected a configuration")
	}
	if cfg.Revision != "r42" {
		t.Errorf("Revision = %q, want r42", cfg.Revision)
	}
	if cfg.Ops.PollIntervalSeconds != 5 {
		t.Errorf("PollIntervalSeconds = %d, want 5", cfg.Ops.PollIntervalSeconds)
	}
	if cfg.Tracing.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.Tracing.LogLevel)
	}
	if cfg.Tracing.SamplingRate == nil || *cfg.Tracing.SamplingRate != 0.5 {
		t.Errorf("SamplingRate = %v, want 0.5", cfg.Tracing.SamplingRate)
	}
}

func TestHTTPFetcherAbsent(t *testing.T) {
	for _, status := range []int{http.StatusNoContent, http.StatusNotFound} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		f := NewHTTPFetcher(srv.URL)
		cfg, err := f.GetConfigurations(context.Background())
		srv.Close()

		if err != nil {
			t.Errorf("status %d: error = %v, want nil", status, err)
		}
		if cfg != nil {
			t.Errorf("status %d: expected absent result", status)
		}
	}
}

func TestHTTPFetcherServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL)
	if _, err := f.GetConfigurations(context.Background()); err == nil {
		t.Error("expected error for status 500")
	}
}

func TestHTTPFetcherBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"revision": `))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL)
	if _, err := f.GetConfigurations(context.Background()); err == nil {
		t.Error("expected decode error for malformed body")
	}
}

func TestHTTPFetcherUnreachable(t *testing.T) {
	f := NewHTTPFetcher("127.0.0.1:1")
	if _, err := f.GetConfigurations(context.Background()); err == nil {
		t.Error("expected error for unreachable endpoint")
	}
}

func TestNewHTTPFetcherNormalizesEndpoint(t *testing.T) {
	f := NewHTTPFetcher("localhost:5080/")
	if f.baseURL != "http://localhost:5080" {
		t.Errorf("baseURL = %q, want http://localhost:5080", f.baseURL)
	}

	f = NewHTTPFetcher("https://agent.internal")
	if f.baseURL != "https://agent.internal" {
		t.Errorf("baseURL = %q, want https://agent.internal", f.baseURL)
	}
}

func TestStaticFetcher(t *testing.T) {
	cfg := &Configuration{Revision: "static"}
	f := StaticFetcher(cfg)

	got, err := f.GetConfigurations(context.Background())
	if err != nil || got != cfg {
		t.Fatalf("first call = (%v, %v), want (cfg, nil)", got, err)
	}

	got, err = f.GetConfigurations(context.Background())
	if err != nil || got != nil {
		t.Errorf("second call = (%v, %v), want (nil, nil)", got, err)
	}
}
