package validator

import (
	"context"
	"mime"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"
)

var imageExtensions = []string{"bmp", "gif", "jpeg", "jpg", "png", "svg", "webp"}

func fileExtension(fh *multipart.FileHeader) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
}

func fileMimeType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			return mt
		}
	}
	return mime.TypeByExtension(filepath.Ext(fh.Filename))
}

func checkFile(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	return len(in.field.files) > 0, nil
}

func checkImage(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	if len(in.field.files) == 0 {
		return false, nil
	}
	for _, fh := range in.field.files {
		if !slices.Contains(imageExtensions, fileExtension(fh)) {
			return false, nil
		}
	}
	return true, nil
}

func checkMimes(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	if err := needParams(in, 1); err != nil {
		return false, err
	}
	if len(in.field.files) == 0 {
		return false, nil
	}
	for _, fh := range in.field.files {
		ext := fileExtension(fh)
		if ext == "jpeg" {
			ext = "jpg"
		}
		if !slices.Contains(in.params, ext) && !slices.Contains(in.params, fileExtension(fh)) {
			return false, nil
		}
	}
	return true, nil
}

func checkMimeTypes(_ context.Context, _ *Validator, in checkInput) (bool, error) {
	if err := needParams(in, 1); err != nil {
		return false, err
	}
	if len(in.field.files) == 0 {
		return false, nil
	}
	for _, fh := range in.field.files {
		mt := fileMimeType(fh)
		matched := slices.ContainsFunc(in.params, func(p string) bool {
			if prefix, ok := strings.CutSuffix(p, "/*"); ok {
				return strings.HasPrefix(mt, prefix+"/")
			}
			return p == mt
		})
		if !matched {
			return false, nil
		}
	}
	return true, nil
}
