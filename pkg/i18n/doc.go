// Package i18n provides the message catalogue used to render validation
// messages in the visitor's language.
//
// Translations are nested maps keyed by language code and loaded once through a
// TranslationAdapter (in-memory map, single file, or embedded directory). Keys
// use dot notation ("validation.min.numeric") and templates use named
// placeholders in the form %{name}.
//
// # Usage
//
//	adapter := i18n.NewEmbeddedFsAdapter(i18n.NewYAMLParser(), langFS, "lang")
//	translator, err := i18n.NewTranslator(ctx, adapter,
//		i18n.WithDefaultLanguage("en"),
//	)
//	if err != nil {
//		return err
//	}
//
//	msg := translator.T("en", "validation.required", "attribute", "email")
//	// msg == "The email field is required."
//
// Lookup returns the raw template without substitution, which lets callers
// implement their own replacement rules on top of Format.
//
// # HTTP Middleware
//
// Middleware negotiates the request language against the translator's
// supported languages using golang.org/x/text/language and stores the result
// in the request context (see GetLocale).
//
// # Error Handling
//
// Loading errors wrap the package sentinels, so errors.Is works:
//
//	if errors.Is(err, i18n.ErrFailedToParseYAML) {
//		// broken translation file
//	}
package i18n
