package command

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newAgentStub fakes the agent intake API, recording the last request.
func newAgentStub(t *testing.T) (*httptest.Server, *stubState) {
	t.Helper()
	state := &stubState{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/spans", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&state.lastBody)
		state.lastPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"code":"OK","message":"success","data":{"trace_id":"tmtr-1","span_id":"tmsp-1","sampled":true}}`))
	})
	mux.HandleFunc("POST /v1/spans/{id}/finish", func(w http.ResponseWriter, r *http.Request) {
		state.lastPath = r.URL.Path
		w.Write([]byte(`{"code":"OK","message":"success"}`))
	})
	mux.HandleFunc("PUT /v1/spans/{id}/tags", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&state.lastBody)
		state.lastPath = r.URL.Path
		w.Write([]byte(`{"code":"OK","message":"success"}`))
	})
	mux.HandleFunc("DELETE /v1/spans/{id}/metrics/{key}", func(w http.ResponseWriter, r *http.Request) {
		state.lastPath = r.URL.Path
		w.Write([]byte(`{"code":"OK","message":"success"}`))
	})
	mux.HandleFunc("GET /v1/status", func(w http.ResponseWriter, r *http.Request) {
		state.lastPath = r.URL.Path
		w.Write([]byte(`{"code":"OK","message":"success","data":{"version":"dev","active_spans":2}}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, state
}

type stubState struct {
	lastPath string
	lastBody map[string]any
}

func TestSpanStart_SendsRequest(t *testing.T) {
	srv, state := newAgentStub(t)

	app := App()
	err := app.Run([]string{
		"tracemesh-cli", "--server", srv.URL, "--output", "json",
		"span", "start", "--name", "http.request", "--service", "checkout",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if state.lastPath != "/v1/spans" {
		t.Errorf("path = %q, want /v1/spans", state.lastPath)
	}
	if state.lastBody["name"] != "http.request" {
		t.Errorf("name = %v, want http.request", state.lastBody["name"])
	}
	if state.lastBody["service"] != "checkout" {
		t.Errorf("service = %v, want checkout", state.lastBody["service"])
	}
}

func TestSpanStart_RequiresName(t *testing.T) {
	app := App()
	err := app.Run([]string{"tracemesh-cli", "span", "start"})
	if err == nil {
		t.Error("span start without --name should fail")
	}
}

func TestSpanFinish_SendsRequest(t *testing.T) {
	srv, state := newAgentStub(t)

	app := App()
	err := app.Run([]string{
		"tracemesh-cli", "--server", srv.URL,
		"span", "finish", "tmsp-42",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if state.lastPath != "/v1/spans/tmsp-42/finish" {
		t.Errorf("path = %q, want /v1/spans/tmsp-42/finish", state.lastPath)
	}
}

func TestSpanFinish_RequiresArg(t *testing.T) {
	app := App()
	err := app.Run([]string{"tracemesh-cli", "span", "finish"})
	if err == nil {
		t.Error("span finish without an ID should fail")
	}
}

func TestSpanTag_SetsTag(t *testing.T) {
	srv, state := newAgentStub(t)

	app := App()
	err := app.Run([]string{
		"tracemesh-cli", "--server", srv.URL,
		"span", "tag", "tmsp-42", "http.method", "GET",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if state.lastPath != "/v1/spans/tmsp-42/tags" {
		t.Errorf("path = %q, want /v1/spans/tmsp-42/tags", state.lastPath)
	}
	if state.lastBody["key"] != "http.method" || state.lastBody["value"] != "GET" {
		t.Errorf("body = %v, want key=http.method value=GET", state.lastBody)
	}
}

func TestSpanMetric_RejectsNonNumeric(t *testing.T) {
	app := App()
	err := app.Run([]string{
		"tracemesh-cli", "span", "metric", "tmsp-42", "retries", "lots",
	})
	if err == nil {
		t.Error("non-numeric metric value should fail")
	}
}

func TestSpanMetric_Unset(t *testing.T) {
	srv, state := newAgentStub(t)

	app := App()
	err := app.Run([]string{
		"tracemesh-cli", "--server", srv.URL,
		"span", "metric", "--unset", "tmsp-42", "retries",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if state.lastPath != "/v1/spans/tmsp-42/metrics/retries" {
		t.Errorf("path = %q, want /v1/spans/tmsp-42/metrics/retries", state.lastPath)
	}
}

func TestStatus_SendsRequest(t *testing.T) {
	srv, state := newAgentStub(t)

	app := App()
	err := app.Run([]string{
		"tracemesh-cli", "--server", srv.URL, "--output", "json", "status",
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if state.lastPath != "/v1/status" {
		t.Errorf("path = %q, want /v1/status", state.lastPath)
	}
}
