package jsvalidation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// ViewData is everything the page script needs to wire a form.
type ViewData struct {
	Selector        string     `json:"selector"`
	Ignore          string     `json:"ignore"`
	FocusOnError    bool       `json:"focus_on_error"`
	AnimateDuration int        `json:"animate_duration"`
	Remote          bool       `json:"remote"`
	RemoteField     string     `json:"remote_field"`
	Escape          bool       `json:"escape"`
	Rules           RuleMap    `json:"rules"`
	Messages        MessageMap `json:"messages"`
}

// JavascriptValidator binds compiled rules to a form on the page.
type JavascriptValidator struct {
	handler  *ValidatorHandler
	cfg      Config
	selector string
	ignore   string
	remote   bool
}

func newJavascriptValidator(h *ValidatorHandler, cfg Config) *JavascriptValidator {
	return &JavascriptValidator{
		handler:  h,
		cfg:      cfg,
		selector: cfg.FormSelector,
		ignore:   cfg.Ignore,
		remote:   !cfg.DisableRemoteValidation,
	}
}

// Handler returns the underlying compiler.
func (j *JavascriptValidator) Handler() *ValidatorHandler {
	return j.handler
}

// Selector sets the CSS selector of the form.
func (j *JavascriptValidator) Selector(selector string) *JavascriptValidator {
	j.selector = selector
	return j
}

// Ignore sets the selector of fields the client skips.
func (j *JavascriptValidator) Ignore(ignore string) *JavascriptValidator {
	j.ignore = ignore
	return j
}

// Remote toggles remote rules in the output.
func (j *JavascriptValidator) Remote(enabled bool) *JavascriptValidator {
	j.remote = enabled
	return j
}

// Sometimes marks rules as conditional; they are checked remotely.
func (j *JavascriptValidator) Sometimes(attributes []string, rules any) error {
	return j.handler.Sometimes(attributes, rules)
}

// ViewData compiles the rules. With Escape set, messages are HTML escaped.
func (j *JavascriptValidator) ViewData() (ViewData, error) {
	data, err := j.handler.ValidationData(j.remote)
	if err != nil {
		return ViewData{}, err
	}
	if j.cfg.Escape {
		escapeMessages(data.Rules)
	}
	return ViewData{
		Selector:        j.selector,
		Ignore:          j.ignore,
		FocusOnError:    j.cfg.FocusOnError,
		AnimateDuration: j.cfg.AnimateDuration,
		Remote:          j.remote,
		RemoteField:     j.cfg.RemoteValidationField,
		Escape:          j.cfg.Escape,
		Rules:           data.Rules,
		Messages:        data.Messages,
	}, nil
}

func escapeMessages(rules RuleMap) {
	for _, byRule := range rules {
		for _, entries := range byRule {
			for i := range entries {
				entries[i].Message = templ.EscapeString(entries[i].Message)
			}
		}
	}
}

// Render writes the initialisation script and implements templ.Component,
// so the validator can be placed directly in a templ page: @form.Validator.
func (j *JavascriptValidator) Render(ctx context.Context, w io.Writer) error {
	data, err := j.ViewData()
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}
	return Script(data).Render(ctx, w)
}

// Script renders a jQuery Validation bootstrap for data. JSON values are
// encoded with HTML escaping, so they are safe inside a script element.
func Script(data ViewData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		selector, err := json.Marshal(data.Selector)
		if err != nil {
			return errors.Join(ErrRenderFailed, err)
		}
		options, err := json.Marshal(scriptOptions{
			Ignore:          data.Ignore,
			FocusInvalid:    data.FocusOnError,
			AnimateDuration: data.AnimateDuration,
			RemoteField:     data.RemoteField,
			Rules:           data.Rules,
			Messages:        data.Messages,
		})
		if err != nil {
			return errors.Join(ErrRenderFailed, err)
		}
		_, err = fmt.Fprintf(w, scriptTemplate, selector, options)
		return err
	})
}

type scriptOptions struct {
	Ignore          string     `json:"ignore"`
	FocusInvalid    bool       `json:"focusInvalid"`
	AnimateDuration int        `json:"animateDuration"`
	RemoteField     string     `json:"remoteField"`
	Rules           RuleMap    `json:"rules"`
	Messages        MessageMap `json:"messages"`
}

const scriptTemplate = `<script>
jQuery(document).ready(function () {
	var options = %[2]s;
	$(%[1]s).each(function () {
		$(this).validate({
			ignore: options.ignore,
			focusInvalid: options.focusInvalid,
			errorElement: "span",
			errorClass: "invalid-feedback",
			rules: options.rules,
			messages: options.messages,
			invalidHandler: function (event, validator) {
				if (!options.focusInvalid || !validator.errorList.length) {
					return;
				}
				$("html, body").animate({scrollTop: $(validator.errorList[0].element).offset().top}, options.animateDuration);
			}
		});
	});
});
</script>
`
