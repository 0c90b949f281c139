package template

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Renderer parses a template once per distinct source and caches it
type Renderer struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

// NewRenderer creates a new template renderer
func NewRenderer() *Renderer {
	return &Renderer{templates: make(map[string]*template.Template)}
}

// generateTemplateName generates a unique name for a template based on its content
func generateTemplateName(tmpl string) string {
	hash := sha256.Sum256([]byte(tmpl))
	return fmt.Sprintf("tmpl_%s", hex.EncodeToString(hash[:8]))
}

func funcMap() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["clock"] = clock
	fm["weekday"] = weekday
	fm["money"] = money
	fm["addon"] = addon
	return fm
}

// Parse validates tmpl and warms the cache
func (r *Renderer) Parse(tmpl string) (*template.Template, error) {
	name := generateTemplateName(tmpl)
	r.mu.RLock()
	t, ok := r.templates[name]
	r.mu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := template.New(name).Funcs(funcMap()).Option("missingkey=zero").Parse(tmpl)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	r.templates[name] = t
	r.mu.Unlock()
	return t, nil
}

// Render renders tmpl with data
func (r *Renderer) Render(tmpl string, data any) (string, error) {
	t, err := r.Parse(tmpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
