// Package recaptcha renders the reCAPTCHA widget and verifies submitted
// challenge tokens against the remote siteverify endpoint.
//
// A Client carries the site and secret keys plus display options. Script
// and Markup produce the HTML fragments to embed in a form; Verify checks
// the token the widget posted back and, for v3, applies the configured
// score threshold. Failed verifications return false and leave their
// reasons in ErrorCodes.
//
//	client, err := recaptcha.New(
//		recaptcha.WithSiteKey(siteKey),
//		recaptcha.WithSecretKey(secretKey),
//		recaptcha.WithVersion(recaptcha.V3),
//	)
//	ok, err := client.Clone().SetRemoteIP("", remoteAddr).Verify(ctx, token)
package recaptcha
