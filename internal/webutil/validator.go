package webutil

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"go_vocab_quiz/internal/model"
)

// Validator is shared by every handler.
var Validator *validator.Validate

// Trans translates validation errors into messages.
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"words":        "Number of words",
	"recent_words": "Number of recent words",
	"recent_days":  "Recent window (days)",
	"mode":         "Quiz mode",
	"answer":       "Answer",
}

func init() {
	Validator = validator.New()

	// report json tag names
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	var found bool
	Trans, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	registerTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, displayName(fe.Field()), fe.Param())
			return t
		})
	}

	registerTranslation("required", "{0} is required.")
	registerTranslation("oneof", "{0} must be one of [{1}].")
	registerTranslation("min", "{0} must be at least {1}.")
	registerTranslation("max", "{0} must be at most {1}.")
}

func displayName(field string) string {
	if name, ok := fieldNameTranslations[field]; ok {
		return name
	}
	return field
}

// Validate checks v against its validate tags. The first failure is returned
// as a VALIDATION_ERROR AppError wrapping model.ErrInvalidInput.
func Validate(v any) error {
	err := Validator.Struct(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	firstErr := validationErrors[0]
	return model.NewAppError(
		"VALIDATION_ERROR",
		firstErr.Translate(Trans),
		firstErr.Field(),
		model.ErrInvalidInput,
	)
}
