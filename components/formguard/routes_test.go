package formguard

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-recaptcha/pkg/recaptcha"
	"github.com/goliatone/go-recaptcha/pkg/testsupport"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/forms"); got != "/forms/api/recaptcha" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("forms"); got != "/forms/api/recaptcha" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/forms/", WithRoutePath("captcha")); got != "/forms/captcha" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath(""); got != "/api/recaptcha" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes_RegistersHandler(t *testing.T) {
	mux := http.NewServeMux()
	client := newTestClient(t, recaptcha.DefaultVerifyURL)

	pattern, err := RegisterRoutes(mux, "/forms", client)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/forms/api/recaptcha" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, pattern, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRegisterRoutes_RequiresMuxAndClient(t *testing.T) {
	client := newTestClient(t, recaptcha.DefaultVerifyURL)
	if _, err := RegisterRoutes(nil, "/", client); err == nil {
		t.Fatalf("expected error for nil mux")
	}
	if _, err := RegisterRoutes(http.NewServeMux(), "/", nil); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestComponent_SharesConfiguration(t *testing.T) {
	server := testsupport.NewSiteverifyServer(t, testsupport.SiteverifyPayload{Success: true})
	client := newTestClient(t, server.URL)
	c := New(client, WithRoutePath("/captcha"), WithHeaderName("X-Token"))

	if c.Client() != client {
		t.Fatalf("expected component to keep client")
	}
	if got := c.Options().RoutePath; got != "/captcha" {
		t.Fatalf("unexpected route path: %q", got)
	}

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set("X-Token", "token")
	if err := c.Guard()(req); err != nil {
		t.Fatalf("expected header token accepted, got %v", err)
	}

	mux := http.NewServeMux()
	pattern, err := c.RegisterRoutes(mux, "/")
	if err != nil || pattern != "/captcha" {
		t.Fatalf("unexpected registration: %q, %v", pattern, err)
	}
}

func TestComponent_NilIsUsable(t *testing.T) {
	var c *Component
	if c.Client() != nil {
		t.Fatalf("expected nil client")
	}
	if got := c.Options().RoutePath; got != "/api/recaptcha" {
		t.Fatalf("unexpected default route: %q", got)
	}
	if _, err := c.RegisterRoutes(http.NewServeMux(), "/"); err == nil {
		t.Fatalf("expected error for nil client")
	}
}
