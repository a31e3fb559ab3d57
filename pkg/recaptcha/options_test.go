package recaptcha

import (
	"errors"
	"testing"
	"time"
)

func TestNewOptions_Defaults(t *testing.T) {
	opts := NewOptions()

	if opts.Version != V2 {
		t.Fatalf("expected default version v2, got %q", opts.Version)
	}
	if opts.VerifyTimeout != time.Second {
		t.Fatalf("expected default timeout 1s, got %s", opts.VerifyTimeout)
	}
	if opts.ScoreThreshold != 0.5 {
		t.Fatalf("expected default threshold 0.5, got %v", opts.ScoreThreshold)
	}
	if opts.VerifyURL != DefaultVerifyURL || opts.ScriptURL != DefaultScriptURL {
		t.Fatalf("unexpected endpoints: %q %q", opts.VerifyURL, opts.ScriptURL)
	}
	if opts.Theme != "" || opts.Type != "" {
		t.Fatalf("expected theme and type unset, got %q %q", opts.Theme, opts.Type)
	}
	if opts.Logger == nil {
		t.Fatalf("expected a no-op logger")
	}
}

func TestNewOptions_BlankValuesRestoreDefaults(t *testing.T) {
	opts := NewOptions(
		WithVersion(""),
		WithVerifyTimeout(-time.Second),
		WithVerifyURL(" "),
		WithScriptURL(""),
		nil,
	)
	if opts.Version != V2 || opts.VerifyTimeout != DefaultVerifyTimeout {
		t.Fatalf("expected defaults restored, got %+v", opts)
	}
	if opts.VerifyURL != DefaultVerifyURL || opts.ScriptURL != DefaultScriptURL {
		t.Fatalf("expected default endpoints, got %q %q", opts.VerifyURL, opts.ScriptURL)
	}
}

func TestNewOptions_ExplicitZeroThresholdKept(t *testing.T) {
	opts := NewOptions(WithScoreThreshold(0))
	if opts.ScoreThreshold != 0 {
		t.Fatalf("expected explicit zero threshold, got %v", opts.ScoreThreshold)
	}
}

func TestOptionsValidate(t *testing.T) {
	cases := []struct {
		name    string
		fns     []OptionFn
		wantErr bool
	}{
		{name: "defaults", fns: nil},
		{name: "v3 dark audio", fns: []OptionFn{WithVersion(V3), WithTheme(ThemeDark), WithType(TypeAudio)}},
		{name: "threshold lower bound", fns: []OptionFn{WithScoreThreshold(0)}},
		{name: "threshold upper bound", fns: []OptionFn{WithScoreThreshold(1)}},
		{name: "unknown version", fns: []OptionFn{WithVersion("v4")}, wantErr: true},
		{name: "unknown theme", fns: []OptionFn{WithTheme("blue")}, wantErr: true},
		{name: "unknown type", fns: []OptionFn{WithType("video")}, wantErr: true},
		{name: "threshold above one", fns: []OptionFn{WithScoreThreshold(1.01)}, wantErr: true},
		{name: "threshold negative", fns: []OptionFn{WithScoreThreshold(-0.1)}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := NewOptions(tc.fns...).Validate()
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestParseHelpersNormaliseCase(t *testing.T) {
	if v, err := ParseVersion(" V3 "); err != nil || v != V3 {
		t.Fatalf("ParseVersion: got %q, %v", v, err)
	}
	if th, err := ParseTheme("Dark"); err != nil || th != ThemeDark {
		t.Fatalf("ParseTheme: got %q, %v", th, err)
	}
	if ct, err := ParseChallengeType("AUDIO"); err != nil || ct != TypeAudio {
		t.Fatalf("ParseChallengeType: got %q, %v", ct, err)
	}
}

func TestParseTheme_ErrorListsSupportedThemes(t *testing.T) {
	_, err := ParseTheme("sepia")
	if err == nil {
		t.Fatalf("expected error")
	}
	want := `recaptcha: invalid argument: theme "sepia" is not supported. Available themes: light, dark`
	if err.Error() != want {
		t.Fatalf("unexpected message\nwant: %s\n got: %s", want, err.Error())
	}
}

func TestOptionsValidate_DoesNotMutateReceiver(t *testing.T) {
	opts := NewOptions(WithVersion("V3"), WithTheme("Light"))
	if err := opts.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if opts.Version != "V3" {
		t.Fatalf("Validate works on a copy, got %q", opts.Version)
	}

	if err := opts.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if opts.Version != V3 || opts.Theme != ThemeLight {
		t.Fatalf("expected canonical values, got %q %q", opts.Version, opts.Theme)
	}
}

func TestNew_StoresCanonicalEnums(t *testing.T) {
	c, err := New(WithVersion(" V3"), WithTheme("DARK"), WithType("Image"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.opts.Version != V3 || c.opts.Theme != ThemeDark || c.opts.Type != TypeImage {
		t.Fatalf("expected canonical options, got %q %q %q", c.opts.Version, c.opts.Theme, c.opts.Type)
	}
	if _, err := New(WithVersion("V4")); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
