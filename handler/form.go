package handler

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
)

// MaxMultipartMemory bounds the in-memory part of multipart forms.
const MaxMultipartMemory = 32 << 20

// FormRequest is a submitted form. Values merges the query string and
// the body, as http.Request.Form does.
type FormRequest struct {
	Name   string
	Values url.Values
	Files  map[string][]*multipart.FileHeader
}

// BindForm parses urlencoded and multipart bodies into a FormRequest.
func BindForm() Bind {
	return func(r *http.Request, v any) error {
		req, ok := v.(*FormRequest)
		if !ok {
			return ErrBinderNotApplicable
		}

		ct := r.Header.Get("Content-Type")
		mediaType := ""
		if ct != "" {
			var err error
			if mediaType, _, err = mime.ParseMediaType(ct); err != nil {
				return errors.Join(ErrUnsupportedMediaType, err)
			}
		}

		switch mediaType {
		case "multipart/form-data":
			if err := r.ParseMultipartForm(MaxMultipartMemory); err != nil {
				return errors.Join(ErrBadRequest, err)
			}
			req.Files = r.MultipartForm.File
		case "", "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return errors.Join(ErrBadRequest, err)
			}
		default:
			return ErrUnsupportedMediaType
		}
		req.Values = r.Form
		return nil
	}
}

// BindFormName takes the form name from a path parameter, e.g.
// BindFormName(chi.URLParam, "form").
func BindFormName(extract func(r *http.Request, key string) string, key string) Bind {
	return func(r *http.Request, v any) error {
		req, ok := v.(*FormRequest)
		if !ok {
			return ErrBinderNotApplicable
		}
		req.Name = extract(r, key)
		if req.Name == "" {
			return ErrNotFound
		}
		return nil
	}
}
