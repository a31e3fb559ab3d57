package formguard

import (
	"net/http"

	"github.com/goliatone/go-recaptcha/pkg/recaptcha"
)

// Component bundles a client with its guard configuration so handlers,
// middleware and routes share one setup.
type Component struct {
	client *recaptcha.Client
	opts   Options
}

func New(client *recaptcha.Client, fns ...OptionFn) *Component {
	return &Component{client: client, opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return NewOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

func (c *Component) Client() *recaptcha.Client {
	if c == nil {
		return nil
	}
	return c.client
}

func (c *Component) Guard() GuardFunc {
	if c == nil {
		return Guard(nil)
	}
	return GuardWithOptions(c.client, c.opts)
}

func (c *Component) Middleware() func(http.Handler) http.Handler {
	if c == nil {
		return Middleware(nil)
	}
	return MiddlewareWithOptions(c.client, c.opts)
}

func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler(nil)
	}
	return HandlerWithOptions(c.client, c.opts)
}

func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath, nil)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.client, c.opts)
}
