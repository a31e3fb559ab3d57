package recaptcha

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Result is the decoded verification response.
type Result struct {
	Success     bool      `json:"success"`
	Score       *float64  `json:"score,omitempty"`
	Action      string    `json:"action,omitempty"`
	Hostname    string    `json:"hostname,omitempty"`
	ChallengeTS time.Time `json:"challenge_ts"`
	ErrorCodes  []string  `json:"error-codes,omitempty"`
}

type siteverifyResponse struct {
	Success     bool     `json:"success"`
	Score       *float64 `json:"score"`
	Action      string   `json:"action"`
	Hostname    string   `json:"hostname"`
	ChallengeTS string   `json:"challenge_ts"`
	ErrorCodes  []string `json:"error-codes"`
}

// maxResponseBytes caps the siteverify body read into memory.
const maxResponseBytes = 1 << 20

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
	outcomeEmpty   = "empty"
	outcomeError   = "error"
)

// Verify checks token against the verification endpoint. A false result
// with a nil error is a failed challenge; ErrorCodes explains why. Errors
// are reserved for a missing secret (ErrMissingSecret) and for transport or
// decoding failures (ErrTransport, ErrBadResponse).
func (c *Client) Verify(ctx context.Context, token string) (bool, error) {
	res, err := c.VerifyResult(ctx, token)
	if err != nil {
		return false, err
	}
	return res.Success, nil
}

// VerifyResult is Verify returning the full decoded response. Success on
// the returned Result already accounts for the v3 score threshold.
func (c *Client) VerifyResult(ctx context.Context, token string) (Result, error) {
	if strings.TrimSpace(c.opts.SecretKey) == "" {
		return Result{}, ErrMissingSecret
	}
	if ctx == nil {
		ctx = context.Background()
	}

	started := time.Now()
	c.last = Result{}

	if strings.TrimSpace(token) == "" {
		c.errorCodes = []string{CodeInternalEmptyResponse}
		c.record(outcomeEmpty, started)
		return c.last, nil
	}

	body, err := c.fetch(ctx, token)
	if err != nil {
		c.errorCodes = []string{CodeNetworkError}
		c.record(outcomeError, started)
		return c.last, err
	}

	var payload siteverifyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		c.errorCodes = []string{CodeBadResponse}
		c.record(outcomeError, started)
		return c.last, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	c.errorCodes = append([]string(nil), payload.ErrorCodes...)
	res := Result{
		Success:  payload.Success,
		Score:    payload.Score,
		Action:   payload.Action,
		Hostname: payload.Hostname,
	}
	if ts, err := time.Parse(time.RFC3339, payload.ChallengeTS); err == nil {
		res.ChallengeTS = ts
	}

	if c.opts.Version == V3 {
		if payload.Score == nil || *payload.Score < c.opts.ScoreThreshold {
			c.errorCodes = append(c.errorCodes, CodeScoreBelowThreshold)
			res.Success = false
		}
	}

	res.ErrorCodes = append([]string(nil), c.errorCodes...)
	c.last = res

	outcome := outcomeFailure
	if res.Success {
		outcome = outcomeSuccess
	}
	c.record(outcome, started)
	return res, nil
}

func (c *Client) fetch(ctx context.Context, token string) ([]byte, error) {
	params := url.Values{}
	params.Set("secret", c.opts.SecretKey)
	params.Set("response", token)
	if c.opts.RemoteIP != "" {
		params.Set("remoteip", c.opts.RemoteIP)
	}

	endpoint := c.opts.VerifyURL
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	endpoint += sep + params.Encode()

	reqCtx, cancel := context.WithTimeout(ctx, c.opts.VerifyTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, redactSecret(err, c.opts.SecretKey))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("%w: empty response (status %d)", ErrTransport, resp.StatusCode)
	}
	// Error pages from proxies or the provider are an availability problem,
	// not a malformed verification answer.
	if (resp.StatusCode < 200 || resp.StatusCode > 299) && !json.Valid(data) {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrTransport, resp.StatusCode)
	}
	return data, nil
}

// redactSecret keeps the secret out of url.Error messages, which embed the
// full request URL.
func redactSecret(err error, secret string) string {
	msg := err.Error()
	if secret == "" {
		return msg
	}
	msg = strings.ReplaceAll(msg, url.QueryEscape(secret), "REDACTED")
	return strings.ReplaceAll(msg, secret, "REDACTED")
}

func (c *Client) record(outcome string, started time.Time) {
	elapsed := time.Since(started)
	fields := []zap.Field{
		zap.String("version", string(c.opts.Version)),
		zap.String("outcome", outcome),
		zap.Strings("error_codes", c.errorCodes),
		zap.Duration("elapsed", elapsed),
	}
	if c.opts.RemoteIP != "" {
		fields = append(fields, zap.String("remote_ip", c.opts.RemoteIP))
	}
	if c.last.Score != nil {
		fields = append(fields, zap.Float64("score", *c.last.Score))
	}

	switch outcome {
	case outcomeSuccess:
		c.logger().Debug("recaptcha verification passed", fields...)
	case outcomeError:
		c.logger().Warn("recaptcha verification errored", fields...)
	default:
		c.logger().Info("recaptcha verification failed", fields...)
	}

	if c.opts.Metrics != nil {
		c.opts.Metrics.observe(c.opts.Version, outcome, c.errorCodes, elapsed, outcome != outcomeEmpty)
	}
}
