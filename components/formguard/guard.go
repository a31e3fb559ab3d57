package formguard

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-recaptcha/pkg/recaptcha"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// GuardFunc inspects a request and returns an error to reject it.
type GuardFunc func(r *http.Request) error

var errMissingClient = errors.New("formguard: missing recaptcha client")

// Guard returns a GuardFunc that verifies the request token with client.
func Guard(client *recaptcha.Client, fns ...OptionFn) GuardFunc {
	return GuardWithOptions(client, NewOptions(fns...))
}

// GuardWithOptions is Guard with a pre-built Options value.
func GuardWithOptions(client *recaptcha.Client, opts Options) GuardFunc {
	opts = NewOptions(func(o *Options) { *o = opts })
	return func(r *http.Request) error {
		_, err := verifyRequest(client, r, opts)
		return err
	}
}

// verifyRequest runs the verification on a clone of client so concurrent
// requests never share recorded error codes.
func verifyRequest(client *recaptcha.Client, r *http.Request, opts Options) (recaptcha.Result, error) {
	if r == nil {
		return recaptcha.Result{}, StatusError{Code: http.StatusBadRequest}
	}
	if client == nil {
		return recaptcha.Result{}, StatusError{Code: http.StatusInternalServerError, Err: errMissingClient}
	}

	remoteIP := RemoteIP(r, opts)
	c := client.Clone().SetRemoteIP("", remoteIP)
	res, err := c.VerifyResult(r.Context(), TokenFromRequest(r, opts))
	if err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, recaptcha.ErrMissingSecret) {
			code = http.StatusInternalServerError
		}
		opts.Logger.Error("recaptcha verification unavailable",
			zap.String("path", r.URL.Path),
			zap.String("remote_ip", remoteIP),
			zap.Error(err),
		)
		return res, StatusError{Code: code, Err: err}
	}
	if !res.Success {
		failed := &recaptcha.FailedError{Codes: c.LocalizedErrorCodes()}
		opts.Logger.Info("recaptcha challenge rejected",
			zap.String("path", r.URL.Path),
			zap.String("remote_ip", remoteIP),
			zap.Strings("error_codes", res.ErrorCodes),
		)
		return res, StatusError{Code: opts.FailureStatus, Err: failed}
	}
	return res, nil
}

// TokenFromRequest reads the widget token from the form field, falling back
// to the configured header.
func TokenFromRequest(r *http.Request, opts Options) string {
	if r == nil {
		return ""
	}
	field := opts.FieldName
	if field == "" {
		field = recaptcha.ResponseFieldName
	}
	if token := strings.TrimSpace(r.FormValue(field)); token != "" {
		return token
	}
	if opts.HeaderName == "" {
		return ""
	}
	return strings.TrimSpace(r.Header.Get(opts.HeaderName))
}

// RemoteIP returns the caller address for r. The forwarded header is only
// consulted when TrustForwardedFor is set and its first entry parses as an
// IP.
func RemoteIP(r *http.Request, opts Options) string {
	if r == nil {
		return ""
	}
	if opts.TrustForwardedFor && opts.ForwardedHeader != "" {
		if raw := r.Header.Get(opts.ForwardedHeader); raw != "" {
			first, _, _ := strings.Cut(raw, ",")
			first = strings.TrimSpace(first)
			if net.ParseIP(first) != nil {
				return first
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}

type resultKey struct{}

func withResult(ctx context.Context, res recaptcha.Result) context.Context {
	return context.WithValue(ctx, resultKey{}, res)
}

// ResultFromContext returns the verification result stored by Middleware.
func ResultFromContext(ctx context.Context) (recaptcha.Result, bool) {
	if ctx == nil {
		return recaptcha.Result{}, false
	}
	res, ok := ctx.Value(resultKey{}).(recaptcha.Result)
	return res, ok
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}

// FailureCodes extracts the recorded error codes from a guard error.
func FailureCodes(err error) []recaptcha.ErrorCode {
	var failed *recaptcha.FailedError
	if errors.As(err, &failed) && failed != nil {
		return append([]recaptcha.ErrorCode(nil), failed.Codes...)
	}
	return nil
}
