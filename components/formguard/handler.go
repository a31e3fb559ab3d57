package formguard

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-recaptcha/pkg/recaptcha"
)

type snippetResponse struct {
	Data recaptcha.Snippet `json:"data"`
}

// Handler serves the widget snippet for client as JSON.
func Handler(client *recaptcha.Client, fns ...OptionFn) http.Handler {
	return HandlerWithOptions(client, NewOptions(fns...))
}

// HandlerWithOptions builds the snippet handler from a pre-constructed
// Options value.
func HandlerWithOptions(client *recaptcha.Client, opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if client == nil {
			writeGuardError(w, StatusError{Code: http.StatusInternalServerError, Err: errMissingClient})
			return
		}

		snippet, err := client.Snippet()
		if err != nil {
			opts.Logger.Error("render recaptcha snippet", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(snippetResponse{Data: snippet})
	})
}
