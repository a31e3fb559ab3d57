package recaptcha

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/goliatone/go-recaptcha/pkg/render/template"
)

const (
	// DefaultVerifyURL is the remote endpoint tokens are checked against.
	DefaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"
	// DefaultScriptURL is the provider's JS loader.
	DefaultScriptURL = "https://www.google.com/recaptcha/api.js"
	// ResponseFieldName is the form field the widget writes its token to.
	ResponseFieldName = "g-recaptcha-response"

	DefaultVerifyTimeout  = time.Second
	DefaultScoreThreshold = 0.5
)

type Version string

const (
	V2 Version = "v2"
	V3 Version = "v3"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type ChallengeType string

const (
	TypeImage ChallengeType = "image"
	TypeAudio ChallengeType = "audio"
)

var (
	supportedVersions = []Version{V2, V3}
	supportedThemes   = []Theme{ThemeLight, ThemeDark}
	supportedTypes    = []ChallengeType{TypeImage, TypeAudio}
)

// ParseVersion validates raw against the supported versions.
func ParseVersion(raw string) (Version, error) {
	v := Version(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range supportedVersions {
		if v == candidate {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: version %q is not supported. Available versions: %s",
		ErrInvalidArgument, raw, joinValues(supportedVersions))
}

// ParseTheme validates raw against the supported themes.
func ParseTheme(raw string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range supportedThemes {
		if t == candidate {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: theme %q is not supported. Available themes: %s",
		ErrInvalidArgument, raw, joinValues(supportedThemes))
}

// ParseChallengeType validates raw against the supported challenge types.
func ParseChallengeType(raw string) (ChallengeType, error) {
	ct := ChallengeType(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range supportedTypes {
		if ct == candidate {
			return ct, nil
		}
	}
	return "", fmt.Errorf("%w: type %q is not supported. Available types: %s",
		ErrInvalidArgument, raw, joinValues(supportedTypes))
}

func validateThreshold(threshold float64) error {
	if threshold >= 0.0 && threshold <= 1.0 {
		return nil
	}
	return fmt.Errorf("%w: score threshold must be between 0.0 and 1.0, got %v", ErrInvalidArgument, threshold)
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

// Options holds the client configuration. Empty Theme, Type, Language and
// Size mean "let the provider decide" and are omitted from the markup.
type Options struct {
	SiteKey   string
	SecretKey string
	Version   Version

	Theme    Theme
	Type     ChallengeType
	Language string
	Size     string

	VerifyTimeout  time.Duration
	ScoreThreshold float64
	RemoteIP       string

	VerifyURL          string
	ScriptURL          string
	InsecureSkipVerify bool
	HTTPClient         *http.Client

	Logger   *zap.Logger
	Metrics  *Metrics
	Renderer template.TemplateRenderer

	// ThemeSelector resolves the widget theme from a go-theme selection
	// when Theme is unset. Only light and dark variants are honoured.
	ThemeSelector theme.ThemeSelector
	ThemeName     string
	ThemeVariant  string

	// Translator localizes error code names for LocalizedErrorCodes, using
	// Language as the locale.
	Translator           Translator
	OnMissingTranslation MissingTranslationHandler
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		Version:        V2,
		VerifyTimeout:  DefaultVerifyTimeout,
		ScoreThreshold: DefaultScoreThreshold,
		VerifyURL:      DefaultVerifyURL,
		ScriptURL:      DefaultScriptURL,
	}
}

// NewOptions applies fns over DefaultOptions and fills blanks back in with
// defaults. It does not validate; see Options.Validate.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.Version == "" {
		opts.Version = V2
	}
	if opts.VerifyTimeout <= 0 {
		opts.VerifyTimeout = DefaultVerifyTimeout
	}
	if strings.TrimSpace(opts.VerifyURL) == "" {
		opts.VerifyURL = DefaultVerifyURL
	}
	if strings.TrimSpace(opts.ScriptURL) == "" {
		opts.ScriptURL = DefaultScriptURL
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

// Validate reports the first unsupported value as an ErrInvalidArgument.
func (o Options) Validate() error {
	return o.normalize()
}

// normalize validates the enum values and stores their canonical form, so
// "V3" or " Dark " behave exactly like V3 and ThemeDark.
func (o *Options) normalize() error {
	v, err := ParseVersion(string(o.Version))
	if err != nil {
		return err
	}
	o.Version = v
	if o.Theme != "" {
		t, err := ParseTheme(string(o.Theme))
		if err != nil {
			return err
		}
		o.Theme = t
	}
	if o.Type != "" {
		ct, err := ParseChallengeType(string(o.Type))
		if err != nil {
			return err
		}
		o.Type = ct
	}
	return validateThreshold(o.ScoreThreshold)
}

func WithSiteKey(key string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SiteKey = key
	}
}

func WithSecretKey(key string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SecretKey = key
	}
}

func WithVersion(v Version) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Version = v
	}
}

func WithTheme(t Theme) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Theme = t
	}
}

func WithType(ct ChallengeType) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Type = ct
	}
}

func WithLanguage(lang string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Language = lang
	}
}

func WithSize(size string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Size = size
	}
}

func WithVerifyTimeout(timeout time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.VerifyTimeout = timeout
	}
}

func WithScoreThreshold(threshold float64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ScoreThreshold = threshold
	}
}

// WithRemoteIP sets the end user's address forwarded as remoteip.
func WithRemoteIP(ip string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RemoteIP = strings.TrimSpace(ip)
	}
}

func WithVerifyURL(u string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.VerifyURL = u
	}
}

func WithScriptURL(u string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ScriptURL = u
	}
}

// WithInsecureSkipVerify disables TLS certificate checks on the
// verification call. Ignored when a custom HTTP client is supplied.
func WithInsecureSkipVerify(skip bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.InsecureSkipVerify = skip
	}
}

func WithHTTPClient(client *http.Client) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.HTTPClient = client
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

func WithMetrics(m *Metrics) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Metrics = m
	}
}

// WithRenderer swaps the template engine used for Script and Markup. The
// renderer must provide script, widget_v2 and widget_v3 templates.
func WithRenderer(r template.TemplateRenderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = r
	}
}

func WithThemeSelector(selector theme.ThemeSelector, name, variant string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ThemeSelector = selector
		o.ThemeName = name
		o.ThemeVariant = variant
	}
}

func WithTranslator(t Translator) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Translator = t
	}
}

func WithMissingTranslationHandler(fn MissingTranslationHandler) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OnMissingTranslation = fn
	}
}
