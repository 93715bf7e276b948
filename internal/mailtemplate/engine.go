// Package mailtemplate renders transactional message bodies with the
// Liquid template language.
package mailtemplate

import (
	"fmt"
	"strings"
	"sync"

	"github.com/osteele/liquid"

	"github.com/ignite/mailgate/internal/pkg/logger"
)

// Site holds the bindings available to every template.
type Site struct {
	Name          string
	SenderName    string
	SenderAddress string
	LogoURL       string
	BaseURL       string
}

// Engine parses and renders named templates. Parsed templates are cached;
// Register replaces any previous source under the same name.
type Engine struct {
	engine *liquid.Engine
	site   Site

	mu        sync.RWMutex
	templates map[string]*liquid.Template
}

// NewEngine creates a template engine with the shared filters registered.
func NewEngine(site Site) *Engine {
	e := &Engine{
		engine:    liquid.NewEngine(),
		site:      site,
		templates: make(map[string]*liquid.Template),
	}
	e.registerFilters()
	return e
}

func (e *Engine) registerFilters() {
	e.engine.RegisterFilter("default", func(value interface{}, fallback string) interface{} {
		if value == nil || value == "" {
			return fallback
		}
		return value
	})

	e.engine.RegisterFilter("email_domain", func(email string) string {
		if at := strings.LastIndex(email, "@"); at >= 0 {
			return email[at+1:]
		}
		return ""
	})

	e.engine.RegisterFilter("mask_email", func(email string) string {
		return logger.RedactEmail(email)
	})
}

// Register parses source and stores it under name.
func (e *Engine) Register(name, source string) error {
	tpl, err := e.engine.ParseString(source)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}

	e.mu.Lock()
	e.templates[name] = tpl
	e.mu.Unlock()
	return nil
}

// Render renders the named template. Site bindings are available under
// "site"; data keys override nothing and sit alongside it.
func (e *Engine) Render(name string, data map[string]interface{}) (string, error) {
	e.mu.RLock()
	tpl, ok := e.templates[name]
	e.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown template %q", name)
	}

	bindings := map[string]interface{}{
		"site": map[string]interface{}{
			"name":           e.site.Name,
			"sender_name":    e.site.SenderName,
			"sender_address": e.site.SenderAddress,
			"logo_url":       e.site.LogoURL,
			"base_url":       e.site.BaseURL,
		},
	}
	for k, v := range data {
		bindings[k] = v
	}

	out, err := tpl.RenderString(bindings)
	if err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return out, nil
}
