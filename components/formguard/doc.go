// Package formguard protects net/http form handlers with reCAPTCHA.
//
// Guard and Middleware read the widget token from the submitted form (or
// the X-Recaptcha-Token header), derive the caller address from the
// request, and verify it with a per-request clone of the configured
// client. Failed challenges are rejected with 403 by default; transport
// problems with 502. Handler serves the widget script and markup as JSON
// for front ends that render the form themselves.
package formguard
