package formguard

import (
	"net/http"

	"github.com/goliatone/go-recaptcha/pkg/recaptcha"
)

// Middleware verifies unsafe requests (anything but GET, HEAD and OPTIONS)
// before calling next. The verification result is available to next via
// ResultFromContext.
func Middleware(client *recaptcha.Client, fns ...OptionFn) func(http.Handler) http.Handler {
	return MiddlewareWithOptions(client, NewOptions(fns...))
}

func MiddlewareWithOptions(client *recaptcha.Client, opts Options) func(http.Handler) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r == nil {
				http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
				return
			}
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			res, err := verifyRequest(client, r, opts)
			if err != nil {
				if opts.OnFailure != nil {
					opts.OnFailure(w, r, err)
					return
				}
				writeGuardError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withResult(r.Context(), res)))
		})
	}
}
