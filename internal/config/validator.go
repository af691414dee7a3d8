package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

// keyMessages replace the default messages so every problem names the full YAML key,
// e.g. "review.limit" rather than "limit".
var keyMessages = map[string]string{
	"required": "{0} is required",
	"url":      "{0} must be an absolute URL such as https://lms.example.com/api",
	"gte":      "{0} must be {1} or greater",
	"lte":      "{0} must be {1} or less",
	"file":     "{0} must be an existing and readable template file",
}

type configValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newConfigValidator() (*configValidator, error) {
	validate := validator.New()

	enLocale := en.New()
	trans, _ := ut.New(enLocale, enLocale).GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("file", isFileReadable); err != nil {
		return nil, fmt.Errorf("failed to register file validation: %w", err)
	}
	for tag, message := range keyMessages {
		register := func(trans ut.Translator) error {
			return trans.Add(tag, message, true)
		}
		if err := validate.RegisterTranslation(tag, trans, register, translateKey); err != nil {
			return nil, fmt.Errorf("failed to register %s translation: %w", tag, err)
		}
	}

	return &configValidator{
		validate:   validate,
		translator: trans,
	}, nil
}

// translateKey renders a field error with its YAML key. A missing value that an
// environment variable can supply mentions that variable.
func translateKey(trans ut.Translator, fe validator.FieldError) string {
	key := strings.TrimPrefix(fe.Namespace(), "Config.")
	message, err := trans.T(fe.Tag(), key, fe.Param())
	if err != nil {
		return fe.Error()
	}
	if env, ok := envBindings[key]; ok && fe.Tag() == "required" {
		message += fmt.Sprintf(" (set it in the config file or %s)", env)
	}
	return message
}

// check validates cfg and joins every problem into one error.
func (v *configValidator) check(cfg Config) error {
	err := v.validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validator.Struct() > %w", err)
	}
	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, fieldErr.Translate(v.translator))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, ", "))
}

// isFileReadable accepts a regular file the owner can read.
func isFileReadable(fl validator.FieldLevel) bool {
	path := fl.Field().String()
	if path == "" {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return info.Mode().Perm()&0o400 != 0
}
