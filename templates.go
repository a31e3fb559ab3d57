package recaptcha

import (
	"io/fs"

	core "github.com/goliatone/go-recaptcha/pkg/recaptcha"
)

// EmbeddedTemplates exposes the built-in widget templates so callers can
// copy or extend them for a custom renderer.
func EmbeddedTemplates() fs.FS {
	return core.TemplatesFS()
}
