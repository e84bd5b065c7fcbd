// Package validator はechoのValidatorにgo-playground/validatorを繋ぐ。
// スキーマ検証の失敗はフィールド別メッセージとして返す。
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors はフィールド名→メッセージ。400レスポンスのfieldsにそのまま載せる。
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return "validation failed"
}

// AsFieldErrors はerrからFieldErrorsを取り出す。
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	ok := errors.As(err, &fe)
	return fe, ok
}

// EchoValidator はecho.Validatorの実装。
type EchoValidator struct {
	validate *validator.Validate
}

func New() *EchoValidator {
	v := validator.New()

	// エラーにはjsonタグ名を使う
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &EchoValidator{validate: v}
}

// Validate は構造体タグを検証し、失敗ならFieldErrorsを返す。
func (ev *EchoValidator) Validate(i interface{}) error {
	err := ev.validate.Struct(i)
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}

	fields := FieldErrors{}
	for _, fe := range ves {
		fields[fe.Field()] = message(fe)
	}
	return fields
}

// message はタグごとの定型メッセージを組み立てる。
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be no longer than %s characters", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
