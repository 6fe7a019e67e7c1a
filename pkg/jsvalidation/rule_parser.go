package jsvalidation

import (
	"maps"
	"strings"

	"github.com/dmitrymomot/jsvalidation/pkg/validator"
)

// Conversion is the client form of one server rule.
type Conversion struct {
	Attribute string
	Rule      string
	Params    []any
}

// Recipe converts one server rule for the client. Returning false marks the
// rule as not convertible.
type Recipe func(d *DelegatedValidator, attribute, rule string, params []string) (Conversion, bool)

// RuleParser turns server rules into client rules using a recipe table.
type RuleParser struct {
	cell        *validatorCell
	recipes     map[string]Recipe
	remoteToken string
}

// RuleParserOption configures a RuleParser.
type RuleParserOption func(*RuleParser)

// WithRemoteToken sets the token sent back with remote validation requests.
func WithRemoteToken(token string) RuleParserOption {
	return func(p *RuleParser) {
		p.remoteToken = token
	}
}

// WithRecipe registers or overrides the recipe for rule.
func WithRecipe(rule string, recipe Recipe) RuleParserOption {
	return func(p *RuleParser) {
		p.RegisterRecipe(rule, recipe)
	}
}

func newRuleParser(cell *validatorCell, opts ...RuleParserOption) *RuleParser {
	p := &RuleParser{
		cell:    cell,
		recipes: maps.Clone(builtinRecipes),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RegisterRecipe adds or replaces the recipe for rule.
func (p *RuleParser) RegisterRecipe(rule string, recipe Recipe) {
	if rule == "" || recipe == nil {
		return
	}
	p.recipes[validator.NormalizeRuleName(rule)] = recipe
}

// Rule converts rule on attribute. Remote rules become RemoteRule entries
// without a recipe. Forcing remote applies only to rules that have a recipe
// or that the host can check; unknown rules and flow markers never convert.
func (p *RuleParser) Rule(attribute, rule string, params []string, forceRemote bool) (Conversion, bool) {
	d := p.cell.load()
	if d.IsRemoteRule(rule) {
		return p.remoteConversion(attribute, forceRemote), true
	}

	recipe, ok := p.recipes[rule]
	if forceRemote && !validator.IsMarker(rule) && (ok || d.KnowsRule(rule)) {
		return p.remoteConversion(attribute, true), true
	}
	if !ok {
		return Conversion{}, false
	}
	return recipe(d, attribute, rule, params)
}

func (p *RuleParser) remoteConversion(attribute string, forceRemote bool) Conversion {
	client := ClientAttribute(attribute)
	return Conversion{
		Attribute: client,
		Rule:      RemoteRule,
		Params:    []any{client, p.remoteToken, forceRemote},
	}
}

// ClientAttribute converts a dotted attribute to its HTML form name:
// "user.address.city" becomes "user[address][city]", "tags.*" becomes
// "tags[*]".
func ClientAttribute(attribute string) string {
	head, rest, ok := strings.Cut(attribute, ".")
	if !ok {
		return attribute
	}
	return head + "[" + strings.ReplaceAll(rest, ".", "][") + "]"
}
