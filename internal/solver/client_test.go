package solver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	apperrors "github.com/louisbranch/sympsolve/internal/platform/errors"
	"github.com/louisbranch/sympsolve/internal/solution"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (fn roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return fn(req)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := New(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNewValidatesBaseURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "  ", "ftp://example.com", "://bad"} {
		if _, err := New(Config{BaseURL: raw}); err == nil {
			t.Fatalf("New(%q) error = nil, want error", raw)
		}
	}
	client, err := New(Config{BaseURL: "http://localhost:8000"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.http == nil || client.http.Timeout == 0 {
		t.Fatal("default http client missing timeout")
	}
}

func TestSolveSendsEquationQuery(t *testing.T) {
	t.Parallel()

	var gotPath, gotEquation string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotEquation = r.URL.Query().Get("equation")
		_, _ = w.Write([]byte(`{"result":["2","-2"]}`))
	})

	got, err := client.Solve(context.Background(), "x**2 - 4 = 0")
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if gotPath != "/solve" {
		t.Fatalf("path = %q, want %q", gotPath, "/solve")
	}
	if gotEquation != "x**2 - 4 = 0" {
		t.Fatalf("equation = %q, want %q", gotEquation, "x**2 - 4 = 0")
	}
	if want := solution.List("2", "-2"); !reflect.DeepEqual(got.Result, want) {
		t.Fatalf("Result = %+v, want %+v", got.Result, want)
	}
}

func TestSolveKeepsBasePathPrefix(t *testing.T) {
	t.Parallel()

	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)
	client, err := New(Config{BaseURL: srv.URL + "/api/", HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := client.Solve(context.Background(), "1+1"); err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if gotPath != "/api/solve" {
		t.Fatalf("path = %q, want %q", gotPath, "/api/solve")
	}
}

func TestSolveResolvesFigureURL(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":"[\"1\"]","figure_url":"/static/plots/plot_1.png"}`))
	})

	got, err := client.Solve(context.Background(), "x-1")
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if want := client.BaseURL() + "/static/plots/plot_1.png"; got.FigureURL != want {
		t.Fatalf("FigureURL = %q, want %q", got.FigureURL, want)
	}
}

func TestSolveDropsNonHTTPFigureURL(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":"1","figure_url":"javascript:alert(1)"}`))
	})

	got, err := client.Solve(context.Background(), "x-1")
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if got.FigureURL != "" {
		t.Fatalf("FigureURL = %q, want empty", got.FigureURL)
	}
}

func TestSolveErrorStatusUsesPayloadMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid equation"}`))
	})

	_, err := client.Solve(context.Background(), "x=")
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "invalid equation" {
		t.Fatalf("Error() = %q, want %q", err.Error(), "invalid equation")
	}
	if kind := apperrors.KindOf(err); kind != apperrors.KindSolver {
		t.Fatalf("KindOf() = %q, want %q", kind, apperrors.KindSolver)
	}
	if key := apperrors.LocalizationKey(err); key != "" {
		t.Fatalf("LocalizationKey() = %q, want empty", key)
	}
}

func TestSolveErrorStatusWithoutMessage(t *testing.T) {
	t.Parallel()

	for _, body := range []string{``, `not json`, `{"error":42}`, `{"result":["1"]}`} {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(body))
		})

		_, err := client.Solve(context.Background(), "x")
		if err == nil || err.Error() != "Request failed" {
			t.Fatalf("Solve() with body %q error = %v, want Request failed", body, err)
		}
		if key := apperrors.LocalizationKey(err); key != "errors.request_failed" {
			t.Fatalf("LocalizationKey() = %q, want %q", key, "errors.request_failed")
		}
	}
}

func TestSolveSuccessWithUnsupportedShape(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"x":1}}`))
	})

	got, err := client.Solve(context.Background(), "x")
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if got.Result.Kind != solution.KindEmpty {
		t.Fatalf("Kind = %v, want %v", got.Result.Kind, solution.KindEmpty)
	}
}

func TestSolveTransportFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	client, err := New(Config{
		BaseURL: "http://solver.invalid",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial timeout")
		})},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	_, err = client.Solve(context.Background(), "x")
	if kind := apperrors.KindOf(err); kind != apperrors.KindUnavailable {
		t.Fatalf("KindOf() = %q, want %q", kind, apperrors.KindUnavailable)
	}
	if got := apperrors.HTTPStatus(err); got != http.StatusServiceUnavailable {
		t.Fatalf("HTTPStatus() = %d, want %d", got, http.StatusServiceUnavailable)
	}
}

func TestSolveCanceledContext(t *testing.T) {
	t.Parallel()

	client, err := New(Config{
		BaseURL: "http://solver.invalid",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, req.Context().Err()
		})},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Solve(ctx, "x")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Solve() error = %v, want context.Canceled", err)
	}
}
