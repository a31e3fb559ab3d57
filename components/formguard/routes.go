package formguard

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-recaptcha/pkg/recaptcha"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for the snippet route under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// RegisterRoutes registers the snippet handler under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, client *recaptcha.Client, fns ...OptionFn) (string, error) {
	return RegisterRoutesWithOptions(mux, basePath, client, NewOptions(fns...))
}

func RegisterRoutesWithOptions(mux Mux, basePath string, client *recaptcha.Client, opts Options) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("formguard: missing mux")
	}
	if client == nil {
		return "", errMissingClient
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	pattern := mountPath(basePath, opts.RoutePath)
	mux.Handle(pattern, HandlerWithOptions(client, opts))
	return pattern, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + routePath
}
