// Package solver calls the remote equation-solving service.
package solver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/louisbranch/sympsolve/internal/platform/errors"
	"github.com/louisbranch/sympsolve/internal/platform/timeouts"
	"github.com/louisbranch/sympsolve/internal/solution"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 1 << 20

const requestFailedMessage = "Request failed"

// Config configures a solver Client.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client sends equations to the solving service.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a Client. A nil HTTPClient gets an instrumented client bounded by
// timeouts.SolverRequest.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		return nil, fmt.Errorf("solver base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse solver base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("solver base url %q must use http or https", raw)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   timeouts.SolverRequest,
		}
	}
	return &Client{base: base, http: httpClient}, nil
}

// BaseURL returns the configured service URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Solve asks the service to solve equation.
//
// A non-2xx status yields a KindSolver error whose message is the payload's
// error field, or "Request failed" when it has none. Transport failures yield
// KindUnavailable. A successful response is returned as decoded, including
// shapes that normalize to no expressions.
func (c *Client) Solve(ctx context.Context, equation string) (solution.APIResult, error) {
	endpoint := c.base.JoinPath("solve")
	q := endpoint.Query()
	q.Set("equation", equation)
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return solution.APIResult{}, fmt.Errorf("build solve request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return solution.APIResult{}, fmt.Errorf("solve request: %w", ctx.Err())
		}
		return solution.APIResult{}, apperrors.Wrap(apperrors.KindUnavailable, "errors.unavailable", "solver is unavailable", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return solution.APIResult{}, apperrors.Wrap(apperrors.KindUnavailable, "errors.unavailable", "read solver response", err)
	}
	payload := solution.DecodeAPIResult(body)
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		if message := payload.Error; message != "" {
			return solution.APIResult{}, apperrors.E(apperrors.KindSolver, message)
		}
		return solution.APIResult{}, apperrors.EK(apperrors.KindSolver, "errors.request_failed", requestFailedMessage)
	}
	payload.FigureURL = c.resolve(payload.FigureURL)
	return payload, nil
}

// resolve turns a service-relative path into an absolute URL. Values that do
// not parse are dropped.
func (c *Client) resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	resolved := c.base.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}
