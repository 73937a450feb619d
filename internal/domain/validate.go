package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("event_kind", func(fl validator.FieldLevel) bool {
		return ValidEventKinds[EventKind(fl.Field().String())]
	})
}

// Validator returns the shared validator instance so other packages can
// validate their own tagged structs with the same custom rules.
func Validator() *validator.Validate {
	return validate
}

// metaMessages maps EventMeta fields to the inline message shown when the
// field fails validation.
var metaMessages = map[string]string{
	"Kind":    "행사 유형을 선택해주세요.",
	"Name":    "행사명을 입력해주세요.",
	"MCCount": "사회자 수는 1명 또는 2명이어야 합니다.",
}

// ValidateEventMeta checks the required scenario fields and returns the
// first failure as a *ValidationError.
// A name made only of whitespace counts as missing.
func ValidateEventMeta(meta EventMeta) error {
	meta.Name = strings.TrimSpace(meta.Name)
	err := validate.Struct(meta)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	first := verrs[0]
	msg, ok := metaMessages[first.Field()]
	if !ok {
		msg = first.Error()
	}
	return NewValidationError(first.Field(), msg)
}
