package jsvalidation

import (
	"sync/atomic"

	"github.com/dmitrymomot/jsvalidation/pkg/validator"
)

// Rules that always need the server, whatever the client can do.
var remoteRules = map[string]bool{
	"unique":     true,
	"exists":     true,
	"active_url": true,
}

// DelegatedValidator is the view of the host validator the compiler works
// with.
type DelegatedValidator struct {
	v *validator.Validator
}

// NewDelegatedValidator wraps v.
func NewDelegatedValidator(v *validator.Validator) (*DelegatedValidator, error) {
	if v == nil {
		return nil, ErrNilValidator
	}
	return &DelegatedValidator{v: v}, nil
}

// Validator returns the wrapped host validator.
func (d *DelegatedValidator) Validator() *validator.Validator {
	return d.v
}

// Rules returns a snapshot of the rule set.
func (d *DelegatedValidator) Rules() validator.RuleSet {
	return d.v.Rules()
}

// Attributes returns the attributes in declaration order.
func (d *DelegatedValidator) Attributes() []string {
	return d.v.Attributes()
}

// HasAttribute reports whether attribute has declared rules.
func (d *DelegatedValidator) HasAttribute(attribute string) bool {
	return d.v.Declares(attribute)
}

// ParseRule splits a raw rule into its normalised name and parameters.
func (d *DelegatedValidator) ParseRule(raw string) (string, []string, error) {
	return d.v.ParseRule(raw)
}

// HasRule reports whether attribute carries any of rules.
func (d *DelegatedValidator) HasRule(attribute string, rules ...string) bool {
	return d.v.HasRule(attribute, rules...)
}

// IsImplicit reports whether rule runs on missing values.
func (d *DelegatedValidator) IsImplicit(rule string) bool {
	return d.v.IsImplicit(rule)
}

// Sometimes registers rules for attributes under cond.
func (d *DelegatedValidator) Sometimes(attributes []string, rules any, cond validator.Condition) error {
	return d.v.Sometimes(attributes, rules, cond)
}

// ExplodeRules normalises a rule specification into raw rule strings.
func (d *DelegatedValidator) ExplodeRules(spec any) ([]string, error) {
	return d.v.ExplodeRules(spec)
}

// Message resolves the host message for rule. variant is empty for rules
// without size flavours.
func (d *DelegatedValidator) Message(attribute, rule, variant string, params []string) string {
	return d.v.Message(attribute, rule, variant, params)
}

// KnowsRule reports whether the host can check rule.
func (d *DelegatedValidator) KnowsRule(rule string) bool {
	return d.v.Knows(rule)
}

// IsRemoteRule reports whether rule can only be checked by the server:
// database and DNS rules plus every custom extension.
func (d *DelegatedValidator) IsRemoteRule(rule string) bool {
	rule = validator.NormalizeRuleName(rule)
	return remoteRules[rule] || d.v.IsExtension(rule)
}

// AttributeName returns the display name of attribute.
func (d *DelegatedValidator) AttributeName(attribute string) string {
	return d.v.AttributeName(attribute)
}

// validatorCell is shared by the handler and both parsers so that one swap
// is observed by all of them.
type validatorCell struct {
	p atomic.Pointer[DelegatedValidator]
}

func newValidatorCell(d *DelegatedValidator) *validatorCell {
	c := &validatorCell{}
	c.p.Store(d)
	return c
}

func (c *validatorCell) load() *DelegatedValidator {
	return c.p.Load()
}

func (c *validatorCell) store(d *DelegatedValidator) {
	c.p.Store(d)
}
