package formspec

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Registry holds the loaded forms.
type Registry struct {
	forms map[string]*Form
	names []string
}

type document struct {
	Forms yaml.Node `yaml:"forms"`
}

// Parse decodes a YAML document with a top level "forms" mapping.
func Parse(data []byte) (*Registry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	if doc.Forms.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: missing forms mapping", ErrInvalidDefinition)
	}

	reg := &Registry{forms: make(map[string]*Form)}
	content := doc.Forms.Content
	for i := 0; i+1 < len(content); i += 2 {
		name := content[i].Value
		if _, ok := reg.forms[name]; ok {
			return nil, fmt.Errorf("%w: form %q declared twice", ErrInvalidDefinition, name)
		}
		form := &Form{}
		if err := content[i+1].Decode(form); err != nil {
			return nil, fmt.Errorf("form %q: %w", name, err)
		}
		form.Name = name
		if err := form.check(); err != nil {
			return nil, err
		}
		reg.forms[name] = form
		reg.names = append(reg.names, name)
	}
	return reg, nil
}

// Load reads definitions from a file on disk.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}
	return Parse(data)
}

// LoadFS reads definitions from fsys, typically an embed.FS.
func LoadFS(fsys fs.FS, name string) (*Registry, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}
	return Parse(data)
}

// Form returns the named form.
func (r *Registry) Form(name string) (*Form, error) {
	f, ok := r.forms[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFormNotFound, name)
	}
	return f, nil
}

// Names lists the forms in file order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}
