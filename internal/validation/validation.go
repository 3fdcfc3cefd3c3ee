// Package validation builds go-playground validators with English messages
// keyed by struct tag names.
package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/spf13/afero"
)

type options struct {
	fs afero.Fs
}

type Option func(*options)

// WithFileRule registers the "file" tag, which accepts paths to readable
// regular files on fs.
func WithFileRule(fs afero.Fs) Option {
	return func(o *options) {
		o.fs = fs
	}
}

// New returns a validator that reports fields by the name in tagName
// ("mapstructure", "json") and its English translator.
func New(tagName string, opts ...Option) (*validator.Validate, ut.Translator, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get(tagName), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if o.fs == nil {
		return validate, trans, nil
	}
	if err := validate.RegisterValidation("file", func(fl validator.FieldLevel) bool {
		return isFileReadable(o.fs, fl.Field().String())
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register file validation: %w", err)
	}
	if err := validate.RegisterTranslation("file", trans, func(ut ut.Translator) error {
		return ut.Add("file", "{0} must be an existing and readable file", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("file", fieldPath(fe.Namespace()))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register file translation: %w", err)
	}

	return validate, trans, nil
}

// fieldPath drops the root struct name from a namespace such as
// "Config.templates.word_sheet_template".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func isFileReadable(fs afero.Fs, path string) bool {
	if path == "" {
		return false
	}

	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	if info.IsDir() {
		return false
	}

	// Check if the owner has read permission
	return info.Mode().Perm()&0o400 != 0
}
