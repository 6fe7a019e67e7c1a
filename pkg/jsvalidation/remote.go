package jsvalidation

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/jsvalidation/pkg/logger"
	"github.com/dmitrymomot/jsvalidation/pkg/validator"
)

// RemoteResult answers a remote validation request: true when the
// attribute passes, otherwise the list of messages.
type RemoteResult struct {
	Valid    bool
	Messages []string
}

func (r RemoteResult) MarshalJSON() ([]byte, error) {
	if r.Valid {
		return []byte("true"), nil
	}
	return json.Marshal(r.Messages)
}

// RemoteValidator checks single attributes on behalf of the browser.
type RemoteValidator struct {
	d *DelegatedValidator
}

// NewRemoteValidator wraps v. Its rules are used; its data is replaced on
// every call.
func NewRemoteValidator(v *validator.Validator) (*RemoteValidator, error) {
	d, err := NewDelegatedValidator(v)
	if err != nil {
		return nil, err
	}
	return &RemoteValidator{d: d}, nil
}

// AttributeFromClient turns an HTML form name back into an attribute:
// "user[address][city]" becomes "user.address.city", "tags[]" becomes
// "tags.*".
func AttributeFromClient(field string) string {
	field = strings.ReplaceAll(field, "[]", "[*]")
	field = strings.ReplaceAll(field, "][", ".")
	field = strings.ReplaceAll(field, "[", ".")
	return strings.TrimSuffix(field, "]")
}

// Validate checks field against data. Only remote rules run unless
// validateAll is set, which the client does for rules forced remote. An
// attribute opted out of client validation always passes.
func (r *RemoteValidator) Validate(ctx context.Context, data url.Values, files map[string][]*multipart.FileHeader, field string, validateAll bool) (RemoteResult, error) {
	attribute := AttributeFromClient(field)
	if !r.d.HasAttribute(attribute) {
		return RemoteResult{}, ErrUnknownAttribute
	}
	if r.d.HasRule(attribute, DisableRule) {
		return RemoteResult{Valid: true}, nil
	}

	v := r.d.Validator().WithData(data, files).Only(attribute)
	if !validateAll {
		v = v.Filter(func(_, rule string) bool {
			return r.d.IsRemoteRule(rule)
		})
	}

	err := v.Validate(ctx)
	if err == nil {
		return RemoteResult{Valid: true}, nil
	}
	verrs := validator.ExtractValidationErrors(err)
	if verrs == nil {
		return RemoteResult{}, err
	}
	var messages []string
	for _, e := range verrs {
		messages = append(messages, e.Message)
	}
	return RemoteResult{Messages: messages}, nil
}

// ValidatorProvider returns the host validator that guards the request.
type ValidatorProvider func(r *http.Request) (*validator.Validator, error)

// RemoteMiddleware answers remote validation requests, recognised by the
// configured remote field, and passes every other request through.
func RemoteMiddleware(cfg Config, provider ValidatorProvider, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := parseForm(r); err != nil {
				next.ServeHTTP(w, r)
				return
			}
			field := r.Form.Get(cfg.RemoteValidationField)
			if field == "" {
				next.ServeHTTP(w, r)
				return
			}

			v, err := provider(r)
			if err != nil {
				log.ErrorContext(r.Context(), "remote validation: no validator", logger.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "validation unavailable"})
				return
			}
			rv, err := NewRemoteValidator(v)
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "validation unavailable"})
				return
			}

			var files map[string][]*multipart.FileHeader
			if r.MultipartForm != nil {
				files = r.MultipartForm.File
			}
			validateAll := r.Form.Get(cfg.ValidateAllField()) == "true"
			result, err := rv.Validate(r.Context(), r.Form, files, field, validateAll)
			switch {
			case errors.Is(err, ErrUnknownAttribute):
				writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
			case err != nil:
				log.ErrorContext(r.Context(), "remote validation failed", logger.Attribute(field), logger.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "validation unavailable"})
			case result.Valid:
				writeJSON(w, http.StatusOK, result)
			default:
				writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
					"message": result.Messages[0],
					"errors":  map[string][]string{field: result.Messages},
				})
			}
		})
	}
}

const maxMultipartMemory = 32 << 20

func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxMultipartMemory)
	}
	return r.ParseForm()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
