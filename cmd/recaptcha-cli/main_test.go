package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-recaptcha/pkg/recaptcha"
	"github.com/goliatone/go-recaptcha/pkg/testsupport"
)

type fakePrompter struct {
	answers map[string]string
	asked   []string
}

func (p *fakePrompter) Input(_ context.Context, message string) (string, error) {
	p.asked = append(p.asked, message)
	return p.answers[message], nil
}

func (p *fakePrompter) Password(_ context.Context, message string) (string, error) {
	p.asked = append(p.asked, message)
	return p.answers[message], nil
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recaptcha.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRun_RenderPrintsSnippet(t *testing.T) {
	path := writeConfig(t, "site_key: file-key\ntheme: dark\nlog_level: error\n")
	t.Setenv("RECAPTCHA_SITE_KEY", "env-key")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-config", path}, &stdout, &stderr, &fakePrompter{})
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}

	out := stdout.String()
	if !strings.Contains(out, recaptcha.DefaultScriptURL) {
		t.Fatalf("expected script tag, got %q", out)
	}
	if !strings.Contains(out, `data-sitekey="env-key"`) {
		t.Fatalf("expected env to override file site key, got %q", out)
	}
	if !strings.Contains(out, `data-theme="dark"`) {
		t.Fatalf("expected theme from file, got %q", out)
	}
}

func TestRun_VerifyPromptsForMissingValues(t *testing.T) {
	server := testsupport.NewSiteverifyServer(t, testsupport.SiteverifyPayload{Success: true})
	path := writeConfig(t, "verify_url: "+server.URL+"\nlog_level: error\n")

	prompter := &fakePrompter{answers: map[string]string{
		"Secret key": "prompted-secret",
		"Token":      "prompted-token",
	}}
	var stdout, stderr bytes.Buffer
	args := []string{"-config", path, "-mode", "verify", "-prompt", "-remote-ip", "203.0.113.9"}
	if code := run(context.Background(), args, &stdout, &stderr, prompter); code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}

	if len(prompter.asked) != 2 {
		t.Fatalf("expected two prompts, got %v", prompter.asked)
	}
	query := server.Queries()[0]
	if query.Get("secret") != "prompted-secret" || query.Get("response") != "prompted-token" {
		t.Fatalf("unexpected verification query: %v", query)
	}
	if query.Get("remoteip") != "203.0.113.9" {
		t.Fatalf("expected remoteip flag forwarded, got %q", query.Get("remoteip"))
	}
	if !strings.Contains(stdout.String(), "verification passed") {
		t.Fatalf("unexpected output: %q", stdout.String())
	}
}

func TestRun_VerifyFailureExitsNonZero(t *testing.T) {
	server := testsupport.NewSiteverifyServer(t, testsupport.SiteverifyPayload{
		ErrorCodes: []string{recaptcha.CodeTimeoutOrDuplicate},
	})
	path := writeConfig(t, "secret_key: s3cret\nverify_url: "+server.URL+"\nlog_level: error\n")

	var stdout, stderr bytes.Buffer
	args := []string{"-config", path, "-mode", "verify", "-token", "used-token"}
	if code := run(context.Background(), args, &stdout, &stderr, &fakePrompter{}); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stdout.String(), "timeout-or-duplicate: Timeout or duplicate.") {
		t.Fatalf("expected error code listing, got %q", stdout.String())
	}
}

func TestRun_VerifyWithoutSecretFails(t *testing.T) {
	path := writeConfig(t, "log_level: error\n")

	var stdout, stderr bytes.Buffer
	args := []string{"-config", path, "-mode", "verify", "-token", "t"}
	if code := run(context.Background(), args, &stdout, &stderr, &fakePrompter{}); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
}

func TestRun_RejectsUnknownMode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(context.Background(), []string{"-mode", "nope"}, &stdout, &stderr, &fakePrompter{}); code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), `unknown mode "nope"`) {
		t.Fatalf("unexpected stderr: %q", stderr.String())
	}
}
