package recaptcha

import (
	"crypto/tls"
	"net/http"
	"strings"
	"time"
)

// Client renders the widget and verifies submitted tokens. It keeps the
// error codes of the last verification, so a single Client must not be
// shared by concurrent Verify calls; use Clone per request instead.
type Client struct {
	opts       Options
	httpClient *http.Client

	errorCodes []string
	last       Result
}

// New builds a client from DefaultOptions plus fns. Unsupported values
// return an error wrapping ErrInvalidArgument.
func New(fns ...OptionFn) (*Client, error) {
	opts := NewOptions(fns...)
	if err := opts.normalize(); err != nil {
		return nil, err
	}
	return newClient(opts), nil
}

// MustNew is like New but panics on invalid options.
func MustNew(fns ...OptionFn) *Client {
	c, err := New(fns...)
	if err != nil {
		panic(err)
	}
	return c
}

func newClient(opts Options) *Client {
	return &Client{
		opts:       opts,
		httpClient: buildHTTPClient(opts),
	}
}

func buildHTTPClient(opts Options) *http.Client {
	if opts.HTTPClient != nil {
		return opts.HTTPClient
	}
	if !opts.InsecureSkipVerify {
		return &http.Client{}
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	}
	transport.TLSClientConfig.InsecureSkipVerify = true
	return &http.Client{Transport: transport}
}

// Clone returns a client with the same configuration and HTTP client but
// no recorded verification state.
func (c *Client) Clone() *Client {
	if c == nil {
		return newClient(NewOptions())
	}
	return &Client{
		opts:       c.opts,
		httpClient: c.httpClient,
	}
}

// Options returns a copy of the client configuration.
func (c *Client) Options() Options {
	if c == nil {
		return NewOptions()
	}
	return c.opts
}

func (c *Client) Version() Version {
	return c.opts.Version
}

func (c *Client) SiteKey() string {
	return c.opts.SiteKey
}

func (c *Client) SetSiteKey(key string) *Client {
	c.opts.SiteKey = key
	return c
}

func (c *Client) SetSecretKey(key string) *Client {
	c.opts.SecretKey = key
	return c
}

// SetRemoteIP records the end user's address. An empty ip falls back to
// the request origin supplied by the caller.
func (c *Client) SetRemoteIP(ip, fallback string) *Client {
	ip = strings.TrimSpace(ip)
	if ip == "" {
		ip = strings.TrimSpace(fallback)
	}
	c.opts.RemoteIP = ip
	return c
}

func (c *Client) SetTheme(t Theme) (*Client, error) {
	parsed, err := ParseTheme(string(t))
	if err != nil {
		return c, err
	}
	c.opts.Theme = parsed
	return c, nil
}

func (c *Client) SetType(ct ChallengeType) (*Client, error) {
	parsed, err := ParseChallengeType(string(ct))
	if err != nil {
		return c, err
	}
	c.opts.Type = parsed
	return c, nil
}

func (c *Client) SetLanguage(lang string) *Client {
	c.opts.Language = lang
	return c
}

// SetVerifyTimeout bounds the verification request. Non-positive values
// restore the default.
func (c *Client) SetVerifyTimeout(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultVerifyTimeout
	}
	c.opts.VerifyTimeout = timeout
	return c
}

func (c *Client) SetSize(size string) *Client {
	c.opts.Size = size
	return c
}

func (c *Client) SetVersion(v Version) (*Client, error) {
	parsed, err := ParseVersion(string(v))
	if err != nil {
		return c, err
	}
	c.opts.Version = parsed
	return c, nil
}

func (c *Client) SetScoreThreshold(threshold float64) (*Client, error) {
	if err := validateThreshold(threshold); err != nil {
		return c, err
	}
	c.opts.ScoreThreshold = threshold
	return c, nil
}

// ErrorCodes maps the codes recorded by the last verification to their
// human readable names, in the order they were recorded.
func (c *Client) ErrorCodes() []ErrorCode {
	return mapErrorCodes(c.errorCodes)
}

// LastResult returns the decoded response of the last verification.
func (c *Client) LastResult() Result {
	return c.last
}

// Err returns a *FailedError for the recorded codes, or nil when none.
func (c *Client) Err() error {
	if len(c.errorCodes) == 0 {
		return nil
	}
	return &FailedError{Codes: c.ErrorCodes()}
}
