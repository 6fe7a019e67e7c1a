package jsvalidation

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	// JavascriptRule is the client rule that evaluates converted rules in the browser.
	JavascriptRule = "laravelValidation"

	// RemoteRule is the client rule that defers the check to a server round trip.
	RemoteRule = "laravelValidationRemote"

	// DisableRule opts an attribute out of client side validation.
	DisableRule = "NoJsValidation"
)

// ConvertedRule is one server rule compiled for the client. It encodes as
// the array [rule, params, message, implicit].
type ConvertedRule struct {
	Rule     string
	Params   []any
	Message  string
	Implicit bool
}

func (r ConvertedRule) MarshalJSON() ([]byte, error) {
	params := r.Params
	if params == nil {
		params = []any{}
	}
	return json.Marshal([]any{r.Rule, params, r.Message, r.Implicit})
}

func (r *ConvertedRule) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 4 {
		return fmt.Errorf("converted rule: want 4 elements, got %d", len(raw))
	}
	return errors.Join(
		json.Unmarshal(raw[0], &r.Rule),
		json.Unmarshal(raw[1], &r.Params),
		json.Unmarshal(raw[2], &r.Message),
		json.Unmarshal(raw[3], &r.Implicit),
	)
}

// RuleMap maps client attribute -> client rule -> converted rules in
// insertion order.
type RuleMap map[string]map[string][]ConvertedRule

// add appends entries, never replacing existing client rules.
func (m RuleMap) add(attribute, clientRule string, rules ...ConvertedRule) {
	byRule, ok := m[attribute]
	if !ok {
		byRule = make(map[string][]ConvertedRule)
		m[attribute] = byRule
	}
	byRule[clientRule] = append(byRule[clientRule], rules...)
}

// merge unions other into m at the client rule level.
func (m RuleMap) merge(other RuleMap) {
	for attr, byRule := range other {
		for clientRule, rules := range byRule {
			m.add(attr, clientRule, rules...)
		}
	}
}

// MessageMap holds messages keyed globally. Messages travel inside each
// ConvertedRule, so the compiled artifact always carries an empty map.
type MessageMap map[string]string

// ValidationData is the compiled artifact handed to the client engine.
type ValidationData struct {
	Rules    RuleMap    `json:"rules"`
	Messages MessageMap `json:"messages"`
}
