package recaptcha

import (
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-recaptcha/pkg/render/template"
)

// Snippet bundles both rendered fragments for JSON consumers.
type Snippet struct {
	Version Version `json:"version"`
	SiteKey string  `json:"site_key,omitempty"`
	Script  string  `json:"script"`
	Markup  string  `json:"markup"`
}

// ScriptURL returns the loader URL with hl and, for v3, render set.
func (c *Client) ScriptURL() string {
	params := url.Values{}
	if c.opts.Language != "" {
		params.Set("hl", c.opts.Language)
	}
	if c.opts.Version == V3 {
		params.Set("render", c.opts.SiteKey)
	}
	src := c.opts.ScriptURL
	if encoded := params.Encode(); encoded != "" {
		sep := "?"
		if strings.Contains(src, "?") {
			sep = "&"
		}
		src += sep + encoded
	}
	return src
}

// Script renders the script tag that loads the provider's JS.
func (c *Client) Script() (string, error) {
	renderer, err := c.renderer()
	if err != nil {
		return "", err
	}
	out, err := renderer.RenderTemplate(scriptTemplate, map[string]any{
		"src": c.ScriptURL(),
	})
	if err != nil {
		return "", fmt.Errorf("recaptcha: render script: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// Markup renders the widget container (v2) or the hidden token input (v3).
// It returns an empty string when no site key is configured.
func (c *Client) Markup() (string, error) {
	if strings.TrimSpace(c.opts.SiteKey) == "" {
		return "", nil
	}
	renderer, err := c.renderer()
	if err != nil {
		return "", err
	}

	name := widgetV2Template
	data := map[string]any{
		"site_key": c.opts.SiteKey,
		"theme":    string(c.resolveTheme()),
		"type":     string(c.opts.Type),
		"size":     c.opts.Size,
	}
	if c.opts.Version == V3 {
		name = widgetV3Template
		data = map[string]any{"field": ResponseFieldName}
	}

	out, err := renderer.RenderTemplate(name, data)
	if err != nil {
		return "", fmt.Errorf("recaptcha: render markup: %w", err)
	}
	return sanitizeMarkup(out), nil
}

// Snippet renders script and markup together.
func (c *Client) Snippet() (Snippet, error) {
	script, err := c.Script()
	if err != nil {
		return Snippet{}, err
	}
	markup, err := c.Markup()
	if err != nil {
		return Snippet{}, err
	}
	return Snippet{
		Version: c.opts.Version,
		SiteKey: c.opts.SiteKey,
		Script:  script,
		Markup:  markup,
	}, nil
}

func (c *Client) renderer() (template.TemplateRenderer, error) {
	if c.opts.Renderer != nil {
		return c.opts.Renderer, nil
	}
	r, err := defaultRenderer()
	if err != nil {
		return nil, fmt.Errorf("recaptcha: load templates: %w", err)
	}
	return r, nil
}

func (c *Client) resolveTheme() Theme {
	if c.opts.Theme != "" || c.opts.ThemeSelector == nil {
		return c.opts.Theme
	}
	selection, err := c.opts.ThemeSelector.Select(c.opts.ThemeName, c.opts.ThemeVariant)
	if err != nil {
		c.logger().Warn("theme selection failed",
			zap.String("theme", c.opts.ThemeName),
			zap.String("variant", c.opts.ThemeVariant),
			zap.Error(err),
		)
		return ""
	}
	if selection == nil {
		return ""
	}
	resolved, err := ParseTheme(selection.Variant)
	if err != nil {
		return ""
	}
	return resolved
}

func (c *Client) logger() *zap.Logger {
	if c.opts.Logger == nil {
		return zap.NewNop()
	}
	return c.opts.Logger
}
