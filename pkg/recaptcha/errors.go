package recaptcha

import (
	"errors"
	"strings"
)

var (
	// ErrInvalidArgument marks unsupported configuration values.
	ErrInvalidArgument = errors.New("recaptcha: invalid argument")
	// ErrMissingSecret is returned when verifying without a secret key.
	ErrMissingSecret = errors.New("recaptcha: you must set your secret key")
	// ErrTransport wraps failures reaching the verification endpoint.
	ErrTransport = errors.New("recaptcha: verification request failed")
	// ErrBadResponse wraps undecodable verification responses.
	ErrBadResponse = errors.New("recaptcha: invalid verification response")
)

// Error codes reported by the verification endpoint, plus the ones this
// package records itself.
const (
	CodeTimeoutOrDuplicate    = "timeout-or-duplicate"
	CodeMissingInputSecret    = "missing-input-secret"
	CodeInvalidInputSecret    = "invalid-input-secret"
	CodeMissingInputResponse  = "missing-input-response"
	CodeInvalidInputResponse  = "invalid-input-response"
	CodeBadRequest            = "bad-request"
	CodeInternalEmptyResponse = "internal-empty-response"
	CodeScoreBelowThreshold   = "score-below-threshold"
	CodeNetworkError          = "network-error"
	CodeBadResponse           = "bad-response"
)

var errorCodeNames = map[string]string{
	CodeTimeoutOrDuplicate:    "Timeout or duplicate.",
	CodeMissingInputSecret:    "The secret parameter is missing.",
	CodeInvalidInputSecret:    "The secret parameter is invalid or malformed.",
	CodeMissingInputResponse:  "The response parameter is missing.",
	CodeInvalidInputResponse:  "The response parameter is invalid or malformed.",
	CodeBadRequest:            "The request is invalid or malformed.",
	CodeInternalEmptyResponse: "The recaptcha response is required.",
	CodeScoreBelowThreshold:   "The score is below the threshold.",
	CodeNetworkError:          "The verification service could not be reached.",
	CodeBadResponse:           "The verification service returned an invalid response.",
}

// ErrorCode pairs a raw code with its human readable name.
type ErrorCode struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// ErrorCodeName returns the human readable name for code. Unknown codes
// map to themselves.
func ErrorCodeName(code string) string {
	if name, ok := errorCodeNames[code]; ok {
		return name
	}
	return code
}

// KnownErrorCodes lists the codes with a dedicated name.
func KnownErrorCodes() []string {
	return []string{
		CodeTimeoutOrDuplicate,
		CodeMissingInputSecret,
		CodeInvalidInputSecret,
		CodeMissingInputResponse,
		CodeInvalidInputResponse,
		CodeBadRequest,
		CodeInternalEmptyResponse,
		CodeScoreBelowThreshold,
		CodeNetworkError,
		CodeBadResponse,
	}
}

func mapErrorCodes(codes []string) []ErrorCode {
	out := make([]ErrorCode, 0, len(codes))
	for _, code := range codes {
		out = append(out, ErrorCode{Code: code, Name: ErrorCodeName(code)})
	}
	return out
}

// FailedError reports a verification that completed but did not pass.
type FailedError struct {
	Codes []ErrorCode
}

func (e *FailedError) Error() string {
	if e == nil || len(e.Codes) == 0 {
		return "recaptcha: verification failed"
	}
	raw := make([]string, len(e.Codes))
	for i, code := range e.Codes {
		raw[i] = code.Code
	}
	return "recaptcha: verification failed: " + strings.Join(raw, ", ")
}

// HasCode reports whether code is among the recorded failure codes.
func (e *FailedError) HasCode(code string) bool {
	if e == nil {
		return false
	}
	for _, c := range e.Codes {
		if c.Code == code {
			return true
		}
	}
	return false
}
