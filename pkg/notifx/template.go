package notifx

import (
	"bytes"
	"html/template"
	"strings"
	"sync"
)

// TemplateRegistry stores named html/templates in one set, so a template
// can invoke any other registered template.
type TemplateRegistry struct {
	root *template.Template
	mu   sync.RWMutex
}

// NewTemplateRegistry creates a new template registry.
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		root: template.New("").Funcs(template.FuncMap{
			"paragraphs": Paragraphs,
		}),
	}
}

// Register parses and stores a template by name. Registering a name again
// replaces it. html/template forbids parsing into a set that has already
// executed, so register every template before the first Render.
func (r *TemplateRegistry) Register(name, tmplString string) error {
	if name == "" {
		return notifxErrors.New(ErrTemplateParse).WithDetail("reason", "empty template name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.root.New(name).Parse(tmplString); err != nil {
		return notifxErrors.NewWithCause(ErrTemplateParse, err).WithDetail("template", name)
	}
	return nil
}

// Render executes a named template with the given data and returns the result.
func (r *TemplateRegistry) Render(name string, data any) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t := r.root.Lookup(name)
	if t == nil || name == "" {
		return "", notifxErrors.New(ErrTemplateNotFound).WithDetail("template", name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", notifxErrors.NewWithCause(ErrTemplateRender, err).WithDetail("template", name)
	}

	return buf.String(), nil
}

// Paragraphs splits plain text on blank lines. Lines inside a paragraph
// are kept as separate entries.
func Paragraphs(text string) [][]string {
	var out [][]string
	for _, block := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		block = strings.Trim(block, "\n")
		if strings.TrimSpace(block) == "" {
			continue
		}
		out = append(out, strings.Split(block, "\n"))
	}
	return out
}
