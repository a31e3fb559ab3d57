// Package config loads client settings from YAML files and environment
// variables and turns them into recaptcha options.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-recaptcha/pkg/recaptcha"
)

// DefaultEnvPrefix is the prefix used by FromEnv when none is given.
const DefaultEnvPrefix = "recaptcha"

// Config is the declarative form of recaptcha.Options. Zero values mean
// "use the client default".
type Config struct {
	SiteKey   string `yaml:"site_key" envconfig:"SITE_KEY"`
	SecretKey string `yaml:"secret_key" envconfig:"SECRET_KEY"`
	Version   string `yaml:"version"`

	Theme    string `yaml:"theme"`
	Type     string `yaml:"type"`
	Language string `yaml:"language"`
	Size     string `yaml:"size"`

	VerifyTimeout  time.Duration `yaml:"verify_timeout" envconfig:"VERIFY_TIMEOUT"`
	ScoreThreshold *float64      `yaml:"score_threshold" envconfig:"SCORE_THRESHOLD"`

	VerifyURL          string `yaml:"verify_url" envconfig:"VERIFY_URL"`
	ScriptURL          string `yaml:"script_url" envconfig:"SCRIPT_URL"`
	InsecureSkipVerify bool   `yaml:"insecure_skip_verify" envconfig:"INSECURE_SKIP_VERIFY"`

	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"`
}

// LoadFile reads a YAML config file.
func LoadFile(path string) (Config, error) {
	if strings.TrimSpace(path) == "" {
		return Config{}, errors.New("config: path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Load(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Load decodes YAML config content.
func Load(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode yaml: %w", err)
	}
	return cfg, nil
}

// FromEnv reads the config from environment variables, e.g.
// RECAPTCHA_SITE_KEY, RECAPTCHA_VERSION, RECAPTCHA_SCORE_THRESHOLD.
func FromEnv(prefix string) (Config, error) {
	if strings.TrimSpace(prefix) == "" {
		prefix = DefaultEnvPrefix
	}
	var cfg Config
	if err := envconfig.Process(prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: env: %w", err)
	}
	return cfg, nil
}

// Merge returns base with every non-zero field of override applied.
func Merge(base, override Config) Config {
	out := base
	setString(&out.SiteKey, override.SiteKey)
	setString(&out.SecretKey, override.SecretKey)
	setString(&out.Version, override.Version)
	setString(&out.Theme, override.Theme)
	setString(&out.Type, override.Type)
	setString(&out.Language, override.Language)
	setString(&out.Size, override.Size)
	setString(&out.VerifyURL, override.VerifyURL)
	setString(&out.ScriptURL, override.ScriptURL)
	setString(&out.LogLevel, override.LogLevel)
	setString(&out.LogFormat, override.LogFormat)
	if override.VerifyTimeout > 0 {
		out.VerifyTimeout = override.VerifyTimeout
	}
	if override.ScoreThreshold != nil {
		v := *override.ScoreThreshold
		out.ScoreThreshold = &v
	}
	if override.InsecureSkipVerify {
		out.InsecureSkipVerify = true
	}
	return out
}

func setString(dst *string, value string) {
	if strings.TrimSpace(value) != "" {
		*dst = strings.TrimSpace(value)
	}
}

// Options converts the config into client options, validating enum
// values up front so errors name the offending setting.
func (c Config) Options() ([]recaptcha.OptionFn, error) {
	fns := []recaptcha.OptionFn{
		recaptcha.WithSiteKey(c.SiteKey),
		recaptcha.WithSecretKey(c.SecretKey),
		recaptcha.WithLanguage(c.Language),
		recaptcha.WithSize(c.Size),
		recaptcha.WithInsecureSkipVerify(c.InsecureSkipVerify),
	}

	if c.Version != "" {
		v, err := recaptcha.ParseVersion(c.Version)
		if err != nil {
			return nil, fmt.Errorf("config: version: %w", err)
		}
		fns = append(fns, recaptcha.WithVersion(v))
	}
	if c.Theme != "" {
		t, err := recaptcha.ParseTheme(c.Theme)
		if err != nil {
			return nil, fmt.Errorf("config: theme: %w", err)
		}
		fns = append(fns, recaptcha.WithTheme(t))
	}
	if c.Type != "" {
		ct, err := recaptcha.ParseChallengeType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("config: type: %w", err)
		}
		fns = append(fns, recaptcha.WithType(ct))
	}
	if c.VerifyTimeout > 0 {
		fns = append(fns, recaptcha.WithVerifyTimeout(c.VerifyTimeout))
	}
	if c.ScoreThreshold != nil {
		fns = append(fns, recaptcha.WithScoreThreshold(*c.ScoreThreshold))
	}
	if c.VerifyURL != "" {
		fns = append(fns, recaptcha.WithVerifyURL(c.VerifyURL))
	}
	if c.ScriptURL != "" {
		fns = append(fns, recaptcha.WithScriptURL(c.ScriptURL))
	}
	return fns, nil
}

// NewClient builds a client from the config plus extra options, which
// take precedence.
func (c Config) NewClient(extra ...recaptcha.OptionFn) (*recaptcha.Client, error) {
	fns, err := c.Options()
	if err != nil {
		return nil, err
	}
	return recaptcha.New(append(fns, extra...)...)
}

// Logger builds a zap logger from LogLevel and LogFormat.
func (c Config) Logger() (*zap.Logger, error) {
	return NewLogger(c.LogLevel, c.LogFormat)
}
