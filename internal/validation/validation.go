// Package validation builds go-playground validators with English messages
// and the custom tags the rest of the module relies on.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/alexanderramin/studysync/internal/domain"
)

// Validator pairs a validate instance with its English translator.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// New builds a Validator that reports fields by the given struct tag,
// usually "json" or "mapstructure".
func New(tagKey string) (*Validator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("registering default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get(tagKey), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	if err := register(validate, trans, "unitkind", isUnitKind, "{0} must be one of Questions, Sections, Articles, Pages"); err != nil {
		return nil, err
	}
	if err := register(validate, trans, "stage", isStage, "{0} must be one of Foundation, Review, Sprint"); err != nil {
		return nil, err
	}
	return &Validator{validate: validate, trans: trans}, nil
}

// MustNew is New for package-level validators whose setup cannot fail at
// runtime.
func MustNew(tagKey string) *Validator {
	v, err := New(tagKey)
	if err != nil {
		panic(err)
	}
	return v
}

// Struct validates s and joins every failure into one error wrapping
// domain.ErrValidation.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Translate(v.trans))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func register(validate *validator.Validate, trans ut.Translator, tag string, fn validator.Func, msg string) error {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		return fmt.Errorf("registering %s validation: %w", tag, err)
	}
	if err := validate.RegisterTranslation(tag, trans, func(ut ut.Translator) error {
		return ut.Add(tag, msg, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(tag, fe.Namespace())
		return t
	}); err != nil {
		return fmt.Errorf("registering %s translation: %w", tag, err)
	}
	return nil
}

func isUnitKind(fl validator.FieldLevel) bool {
	return domain.ValidUnitKinds[domain.UnitKind(fl.Field().String())]
}

func isStage(fl validator.FieldLevel) bool {
	return domain.StudyStage(fl.Field().String()).Valid()
}
