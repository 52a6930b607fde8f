package visitorcookie

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/sympsolve/internal/platform/id"
)

func mustID(t *testing.T) string {
	t.Helper()

	value, err := id.NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	return value
}

func TestRead(t *testing.T) {
	t.Parallel()

	if _, ok := Read(nil); ok {
		t.Fatalf("expected nil request to have no visitor cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	if _, ok := Read(req); ok {
		t.Fatalf("expected missing cookie")
	}

	visitorID := mustID(t)
	req.AddCookie(&http.Cookie{Name: Name, Value: "  " + visitorID + "  "})
	value, ok := Read(req)
	if !ok {
		t.Fatalf("expected cookie to be present")
	}
	if value != visitorID {
		t.Fatalf("value = %q, want %q", value, visitorID)
	}
}

func TestReadRejectsMalformedID(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	req.AddCookie(&http.Cookie{Name: Name, Value: "not-an-id"})
	if _, ok := Read(req); ok {
		t.Fatalf("expected malformed cookie to be rejected")
	}
}

func TestEnsureReusesExistingCookie(t *testing.T) {
	t.Parallel()

	visitorID := mustID(t)
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	req.AddCookie(&http.Cookie{Name: Name, Value: visitorID})
	rr := httptest.NewRecorder()

	got, err := Ensure(rr, req, Policy{})
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if got != visitorID {
		t.Fatalf("Ensure() = %q, want %q", got, visitorID)
	}
	if rr.Header().Get("Set-Cookie") != "" {
		t.Fatalf("expected no Set-Cookie for existing visitor")
	}
}

func TestEnsureIssuesCookie(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	rr := httptest.NewRecorder()

	got, err := Ensure(rr, req, Policy{})
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if !id.Valid(got) {
		t.Fatalf("Ensure() = %q, want valid id", got)
	}
	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cookie.Name != Name || cookie.Value != got {
		t.Fatalf("cookie = %s=%s, want %s=%s", cookie.Name, cookie.Value, Name, got)
	}
	if !cookie.HttpOnly {
		t.Fatalf("expected http-only cookie")
	}
	if cookie.MaxAge <= 0 {
		t.Fatalf("cookie max-age = %d, want > 0", cookie.MaxAge)
	}
}

func TestWriteSecureFlag(t *testing.T) {
	t.Parallel()

	secureReq := httptest.NewRequest(http.MethodGet, "https://app.example.test", nil)
	secureRR := httptest.NewRecorder()
	Write(secureRR, secureReq, "v-1", Policy{})
	secureCookie, err := http.ParseSetCookie(secureRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if !secureCookie.Secure {
		t.Fatalf("expected secure cookie for https request")
	}

	httpReq := httptest.NewRequest(http.MethodGet, "http://app.example.test", nil)
	httpRR := httptest.NewRecorder()
	Write(httpRR, httpReq, "v-1", Policy{})
	httpCookie, err := http.ParseSetCookie(httpRR.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if httpCookie.Secure {
		t.Fatalf("expected non-secure cookie for http request")
	}

	forwardedReq := httptest.NewRequest(http.MethodGet, "http://app.example.test", nil)
	forwardedReq.Header.Set("X-Forwarded-Proto", "https")
	if isHTTPS(forwardedReq, Policy{}) {
		t.Fatalf("expected forwarded header to be ignored by default")
	}
	if !isHTTPS(forwardedReq, Policy{TrustForwardedProto: true}) {
		t.Fatalf("expected forwarded header to be trusted by policy")
	}

	tlsReq := httptest.NewRequest(http.MethodGet, "/", nil)
	tlsReq.TLS = &tls.ConnectionState{}
	if !isHTTPS(tlsReq, Policy{}) {
		t.Fatalf("expected TLS request to be https")
	}
}
