package jsvalidation

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dmitrymomot/jsvalidation/pkg/logger"
	"github.com/dmitrymomot/jsvalidation/pkg/validator"
)

// ValidatorHandler compiles the rules of one host validator into
// ValidationData. It is not safe for concurrent use; build one per request.
type ValidatorHandler struct {
	cell        *validatorCell
	rules       *RuleParser
	messages    *MessageParser
	conditional map[string][]string
	log         *slog.Logger
}

// HandlerOption configures a ValidatorHandler.
type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	parser []RuleParserOption
	log    *slog.Logger
}

// WithRuleParserOptions passes options to the rule parser.
func WithRuleParserOptions(opts ...RuleParserOption) HandlerOption {
	return func(o *handlerOptions) {
		o.parser = append(o.parser, opts...)
	}
}

// WithLogger sets the logger for skipped rules and attributes.
func WithLogger(l *slog.Logger) HandlerOption {
	return func(o *handlerOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// NewValidatorHandler builds a handler over v.
func NewValidatorHandler(v *validator.Validator, opts ...HandlerOption) (*ValidatorHandler, error) {
	d, err := NewDelegatedValidator(v)
	if err != nil {
		return nil, err
	}
	o := handlerOptions{log: logger.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	cell := newValidatorCell(d)
	return &ValidatorHandler{
		cell:        cell,
		rules:       newRuleParser(cell, o.parser...),
		messages:    newMessageParser(cell),
		conditional: make(map[string][]string),
		log:         o.log.With(logger.Component("jsvalidation")),
	}, nil
}

// DelegatedValidator returns the validator currently in use.
func (h *ValidatorHandler) DelegatedValidator() *DelegatedValidator {
	return h.cell.load()
}

// SetDelegatedValidator swaps the validator for the handler and both parsers.
func (h *ValidatorHandler) SetDelegatedValidator(d *DelegatedValidator) error {
	if d == nil {
		return ErrNilValidator
	}
	h.cell.store(d)
	return nil
}

// RuleParser exposes the parser, mainly to register custom recipes.
func (h *ValidatorHandler) RuleParser() *RuleParser {
	return h.rules
}

// JsValidationEnabled reports whether attribute takes part in client
// validation, i.e. it does not carry DisableRule.
func (h *ValidatorHandler) JsValidationEnabled(attribute string) bool {
	return !h.cell.load().HasRule(attribute, DisableRule)
}

// ValidationData compiles every enabled attribute. Remote rules are
// included only when remote is true. Messages is always empty.
func (h *ValidatorHandler) ValidationData(remote bool) (ValidationData, error) {
	rules, err := h.generateJavascriptValidations(remote)
	if err != nil {
		return ValidationData{}, err
	}
	return ValidationData{Rules: rules, Messages: MessageMap{}}, nil
}

// Sometimes marks rules of attributes as conditional. They are registered
// with the host under an always true condition so the server keeps
// enforcing them, and every conversion of them is forced remote. Repeated
// calls add to earlier ones.
func (h *ValidatorHandler) Sometimes(attributes []string, rules any) error {
	d := h.cell.load()
	if err := d.Sometimes(attributes, rules, validator.Always); err != nil {
		return err
	}
	exploded, err := d.ExplodeRules(rules)
	if err != nil {
		return err
	}
	for _, attr := range attributes {
		current := h.conditional[attr]
		for _, rule := range exploded {
			if !slices.Contains(current, rule) {
				current = append(current, rule)
			}
		}
		h.conditional[attr] = current
	}
	return nil
}

func (h *ValidatorHandler) generateJavascriptValidations(includeRemote bool) (RuleMap, error) {
	d := h.cell.load()
	rules := d.Rules()
	out := make(RuleMap)
	for _, attr := range d.Attributes() {
		if !h.JsValidationEnabled(attr) {
			h.log.Debug("client validation disabled", logger.Attribute(attr))
			continue
		}
		converted, err := h.jsConvertRules(attr, rules[attr], includeRemote)
		if err != nil {
			return nil, err
		}
		out.merge(converted)
	}
	return out, nil
}

func (h *ValidatorHandler) jsConvertRules(attribute string, rawRules []string, includeRemote bool) (RuleMap, error) {
	d := h.cell.load()
	out := make(RuleMap)
	for _, raw := range rawRules {
		rule, params, err := d.ParseRule(raw)
		if err != nil {
			return nil, errors.Join(ErrConversionFailed, fmt.Errorf("attribute %q: %w", attribute, err))
		}
		forceRemote := h.isConditionalRule(attribute, raw, rule)

		conv, ok := h.rules.Rule(attribute, rule, params, forceRemote)
		if !ok {
			h.log.Debug("rule has no client recipe", logger.Attribute(attribute), logger.Rule(rule))
			continue
		}
		if !includeRemote && conv.Rule == RemoteRule {
			h.log.Debug("remote rule dropped", logger.Attribute(attribute), logger.Rule(rule))
			continue
		}

		out.add(conv.Attribute, conv.Rule, ConvertedRule{
			Rule:     rule,
			Params:   conv.Params,
			Message:  h.messages.Message(attribute, rule, params),
			Implicit: d.IsImplicit(rule),
		})
	}
	return out, nil
}

// isConditionalRule matches the raw rule registered through Sometimes, or
// a bare registered name ("unique") against the parsed rule name
// ("unique:users,email").
func (h *ValidatorHandler) isConditionalRule(attribute, raw, rule string) bool {
	registered, ok := h.conditional[attribute]
	if !ok {
		return false
	}
	for _, r := range registered {
		if r == raw || validator.NormalizeRuleName(r) == rule {
			return true
		}
	}
	return false
}
