package formspec

import (
	"fmt"
	"mime/multipart"
	"net/url"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/jsvalidation/pkg/jsvalidation"
	"github.com/dmitrymomot/jsvalidation/pkg/validator"
)

// Rule is one attribute with its rule specification, either a pipe
// separated string or a list.
type Rule struct {
	Attribute string
	Spec      any
}

// Rules keeps attributes in declaration order.
type Rules []Rule

// UnmarshalYAML decodes a mapping while preserving key order.
func (r *Rules) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: rules must be a mapping (line %d)", ErrInvalidDefinition, node.Line)
	}
	seen := make(map[string]bool, len(node.Content)/2)
	out := make(Rules, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if seen[key.Value] {
			return fmt.Errorf("%w: %q (line %d)", ErrDuplicateField, key.Value, key.Line)
		}
		seen[key.Value] = true

		var spec any
		switch val.Kind {
		case yaml.ScalarNode:
			spec = val.Value
		case yaml.SequenceNode:
			var list []string
			if err := val.Decode(&list); err != nil {
				return fmt.Errorf("%w: rules of %q: %v", ErrInvalidDefinition, key.Value, err)
			}
			spec = list
		default:
			return fmt.Errorf("%w: rules of %q must be a string or a list (line %d)", ErrInvalidDefinition, key.Value, val.Line)
		}
		out = append(out, Rule{Attribute: key.Value, Spec: spec})
	}
	*r = out
	return nil
}

// Map returns the rules keyed by attribute.
func (r Rules) Map() map[string]any {
	m := make(map[string]any, len(r))
	for _, rule := range r {
		m[rule.Attribute] = rule.Spec
	}
	return m
}

// Order returns the attributes in declaration order.
func (r Rules) Order() []string {
	order := make([]string, len(r))
	for i, rule := range r {
		order[i] = rule.Attribute
	}
	return order
}

// Sometimes adds rules to attributes under a condition. Definitions
// cannot express conditions, so they always apply on the server and are
// re-checked remotely on the client.
type Sometimes struct {
	Attributes []string `yaml:"attributes"`
	Rules      any      `yaml:"rules"`
}

// Form is one named form definition.
type Form struct {
	Name       string            `yaml:"-"`
	Selector   string            `yaml:"selector"`
	Ignore     string            `yaml:"ignore"`
	Remote     *bool             `yaml:"remote"`
	Rules      Rules             `yaml:"rules"`
	Messages   map[string]string `yaml:"messages"`
	Attributes map[string]string `yaml:"attributes"`
	Sometimes  []Sometimes       `yaml:"sometimes"`
}

func (f *Form) check() error {
	if len(f.Rules) == 0 {
		return fmt.Errorf("%w: form %q has no rules", ErrInvalidDefinition, f.Name)
	}
	for i, s := range f.Sometimes {
		if len(s.Attributes) == 0 || s.Rules == nil {
			return fmt.Errorf("%w: form %q sometimes[%d] needs attributes and rules", ErrInvalidDefinition, f.Name, i)
		}
	}
	return nil
}

func (f *Form) options(extra []validator.Option) []validator.Option {
	opts := []validator.Option{
		validator.WithAttributeOrder(f.Rules.Order()),
		validator.WithMessages(f.Messages),
		validator.WithAttributes(f.Attributes),
	}
	return append(opts, extra...)
}

// Validator builds the host validator for submitted data. Conditional
// rules are applied unconditionally.
func (f *Form) Validator(data url.Values, files map[string][]*multipart.FileHeader, opts ...validator.Option) (*validator.Validator, error) {
	if files != nil {
		opts = append(opts, validator.WithFiles(files))
	}
	v, err := validator.New(data, f.Rules.Map(), f.options(opts)...)
	if err != nil {
		return nil, err
	}
	for _, s := range f.Sometimes {
		if err := v.Sometimes(s.Attributes, s.Rules, validator.Always); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// JavascriptValidator compiles the form for the page through factory.
func (f *Form) JavascriptValidator(factory *jsvalidation.Factory, opts ...validator.Option) (*jsvalidation.JavascriptValidator, error) {
	j, err := factory.Make(f.Rules.Map(), f.options(opts)...)
	if err != nil {
		return nil, err
	}
	for _, s := range f.Sometimes {
		if err := j.Sometimes(s.Attributes, s.Rules); err != nil {
			return nil, err
		}
	}
	if f.Selector != "" {
		j.Selector(f.Selector)
	}
	if f.Ignore != "" {
		j.Ignore(f.Ignore)
	}
	if f.Remote != nil {
		j.Remote(*f.Remote)
	}
	return j, nil
}
