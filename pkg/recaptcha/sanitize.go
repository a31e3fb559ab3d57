package recaptcha

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

func sanitizeMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(markupSanitizer().Sanitize(trimmed))
}

// markupSanitizer only lets the widget container and the v3 token input
// through.
func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("div", "input")
		policy.AllowDataAttributes()
		policy.AllowAttrs("class").OnElements("div")
		policy.AllowAttrs("type", "id", "name").OnElements("input")
		markupPolicy = policy
	})
	return markupPolicy
}
