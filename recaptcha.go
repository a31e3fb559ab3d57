package recaptcha

import (
	"github.com/goliatone/go-recaptcha/components/formguard"
	"github.com/goliatone/go-recaptcha/pkg/config"
	core "github.com/goliatone/go-recaptcha/pkg/recaptcha"
)

// Client aliases the core client so callers only need the root import.
type Client = core.Client

// Option configures a Client.
type Option = core.OptionFn

// Result is the decoded verification response.
type Result = core.Result

// Snippet bundles the rendered script and markup.
type Snippet = core.Snippet

// FailedError reports a verification that did not pass.
type FailedError = core.FailedError

// Config is the declarative YAML/env form of the client options.
type Config = config.Config

var (
	ErrInvalidArgument = core.ErrInvalidArgument
	ErrMissingSecret   = core.ErrMissingSecret
	ErrTransport       = core.ErrTransport
	ErrBadResponse     = core.ErrBadResponse
)

// New builds a client. See the pkg/recaptcha With* options.
func New(options ...Option) (*Client, error) {
	return core.New(options...)
}

// NewFromConfig loads path (when non-empty), applies environment overrides
// under envPrefix and builds a client. extra options win over both.
func NewFromConfig(path, envPrefix string, extra ...Option) (*Client, error) {
	var base config.Config
	if path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return nil, err
		}
		base = loaded
	}
	env, err := config.FromEnv(envPrefix)
	if err != nil {
		return nil, err
	}
	return config.Merge(base, env).NewClient(extra...)
}

// NewGuard wraps client in a formguard component for net/http servers.
func NewGuard(client *Client, options ...formguard.OptionFn) *formguard.Component {
	return formguard.New(client, options...)
}
