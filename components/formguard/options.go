package formguard

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-recaptcha/pkg/recaptcha"
)

// FailureFunc writes the response for a rejected request. err is the
// StatusError returned by the guard.
type FailureFunc func(w http.ResponseWriter, r *http.Request, err error)

type Options struct {
	RoutePath         string
	FieldName         string
	HeaderName        string
	TrustForwardedFor bool
	ForwardedHeader   string
	FailureStatus     int
	OnFailure         FailureFunc
	Logger            *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:       "/api/recaptcha",
		FieldName:       recaptcha.ResponseFieldName,
		HeaderName:      "X-Recaptcha-Token",
		ForwardedHeader: "X-Forwarded-For",
		FailureStatus:   http.StatusForbidden,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/recaptcha"
	}
	if opts.FieldName == "" {
		opts.FieldName = recaptcha.ResponseFieldName
	}
	if opts.ForwardedHeader == "" {
		opts.ForwardedHeader = "X-Forwarded-For"
	}
	if opts.FailureStatus < 400 || opts.FailureStatus > 599 {
		opts.FailureStatus = http.StatusForbidden
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithFieldName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FieldName = name
	}
}

// WithHeaderName sets the header checked when the form field is empty.
// An empty name disables the header lookup.
func WithHeaderName(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.HeaderName = name
	}
}

// WithTrustForwardedFor makes the guard take the client address from the
// forwarded header. Only enable it behind a proxy that sets the header.
func WithTrustForwardedFor(trust bool) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.TrustForwardedFor = trust
	}
}

func WithForwardedHeader(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.ForwardedHeader = name
	}
}

func WithFailureStatus(code int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.FailureStatus = code
	}
}

func WithOnFailure(fn FailureFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.OnFailure = fn
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
