package recaptcha_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"

	"github.com/goliatone/go-recaptcha/pkg/recaptcha"
)

func TestVerify_DefaultEndpoint(t *testing.T) {
	transport := httpmock.NewMockTransport()

	var gotQuery map[string][]string
	transport.RegisterResponder(http.MethodGet, recaptcha.DefaultVerifyURL,
		func(req *http.Request) (*http.Response, error) {
			gotQuery = req.URL.Query()
			return httpmock.NewStringResponse(http.StatusOK, `{"success":true,"score":0.9}`), nil
		},
	)

	c := recaptcha.MustNew(
		recaptcha.WithSecretKey("secret"),
		recaptcha.WithVersion(recaptcha.V3),
		recaptcha.WithRemoteIP("198.51.100.23"),
		recaptcha.WithHTTPClient(&http.Client{Transport: transport}),
	)

	ok, err := c.Verify(context.Background(), "token")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected success, codes %v", c.ErrorCodes())
	}
	if transport.GetTotalCallCount() != 1 {
		t.Fatalf("expected one call to the default endpoint, got %d", transport.GetTotalCallCount())
	}
	if gotQuery["remoteip"][0] != "198.51.100.23" || gotQuery["response"][0] != "token" {
		t.Fatalf("unexpected query %v", gotQuery)
	}
}

func TestVerify_DefaultEndpointTransportError(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodGet, recaptcha.DefaultVerifyURL,
		httpmock.NewErrorResponder(context.DeadlineExceeded))

	c := recaptcha.MustNew(
		recaptcha.WithSecretKey("secret"),
		recaptcha.WithHTTPClient(&http.Client{Transport: transport}),
	)

	ok, err := c.Verify(context.Background(), "token")
	if ok || err == nil {
		t.Fatalf("expected transport error, got %v %v", ok, err)
	}
	if codes := c.ErrorCodes(); len(codes) != 1 || codes[0].Code != recaptcha.CodeNetworkError {
		t.Fatalf("expected network-error code, got %v", codes)
	}
}
