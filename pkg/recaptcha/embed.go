package recaptcha

import (
	"embed"
	"io/fs"
	"sync"

	"github.com/goliatone/go-recaptcha/pkg/render/template"
	"github.com/goliatone/go-recaptcha/pkg/render/template/gotemplate"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const (
	scriptTemplate   = "script"
	widgetV2Template = "widget_v2"
	widgetV3Template = "widget_v3"
)

var (
	defaultEngineOnce sync.Once
	defaultEngine     *gotemplate.Engine
	defaultEngineErr  error
)

// TemplatesFS exposes the embedded widget templates so callers can copy
// or override them with their own renderer.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

func defaultRenderer() (template.TemplateRenderer, error) {
	defaultEngineOnce.Do(func() {
		defaultEngine, defaultEngineErr = gotemplate.New(
			gotemplate.WithFS(TemplatesFS()),
			gotemplate.WithExtension(".tpl"),
		)
	})
	if defaultEngineErr != nil {
		return nil, defaultEngineErr
	}
	return defaultEngine, nil
}
