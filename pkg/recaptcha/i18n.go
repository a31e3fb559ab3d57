package recaptcha

import (
	"errors"
	"strings"
)

// ErrorCodeKeyPrefix prefixes the translation keys looked up for error code
// names, e.g. "recaptcha.errors.timeout-or-duplicate".
const ErrorCodeKeyPrefix = "recaptcha.errors."

// ErrMissingTranslator is passed to the missing handler when no translator
// is configured.
var ErrMissingTranslator = errors.New("recaptcha: translator not configured")

// Translator resolves a message for locale and key.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslatorFunc adapts a function to Translator.
type TranslatorFunc func(locale, key string, args ...any) (string, error)

func (f TranslatorFunc) Translate(locale, key string, args ...any) (string, error) {
	return f(locale, key, args...)
}

// MissingTranslationHandler returns the text used when a key has no
// translation. fallback is the built in English name.
type MissingTranslationHandler func(locale, key, fallback string, err error) string

func missingTranslationDefault(_, key, fallback string, _ error) string {
	if strings.TrimSpace(fallback) != "" {
		return fallback
	}
	return key
}

// LocalizedErrorCodes is ErrorCodes with names translated for the client
// language. Codes without a translation keep their English name.
func (c *Client) LocalizedErrorCodes() []ErrorCode {
	codes := mapErrorCodes(c.errorCodes)
	if c.opts.Translator == nil && c.opts.OnMissingTranslation == nil {
		return codes
	}
	onMissing := c.opts.OnMissingTranslation
	if onMissing == nil {
		onMissing = missingTranslationDefault
	}
	for i := range codes {
		codes[i].Name = translate(c.opts.Translator, c.opts.Language, codes[i].Code, codes[i].Name, onMissing)
	}
	return codes
}

func translate(t Translator, locale, code, fallback string, onMissing MissingTranslationHandler) string {
	key := ErrorCodeKeyPrefix + code
	if t == nil {
		return onMissing(locale, key, fallback, ErrMissingTranslator)
	}
	msg, err := t.Translate(locale, key)
	if err == nil && strings.TrimSpace(msg) != "" {
		return msg
	}
	return onMissing(locale, key, fallback, err)
}
