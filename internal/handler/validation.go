package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hitoshi/startuplaunch/internal/model"
)

var validate = newValidator()

// newValidator はエラーメッセージにJSONフィールド名を使うvalidatorを生成する。
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest はリクエスト構造体を検証し、失敗内容をAPIErrorに変換する。
// 必須項目の欠落はすべてまとめて1つのMISSING_FIELDSとして返す。
func validateRequest(req any) *model.APIError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return model.NewInvalidRequestError("Invalid request")
	}

	var missing []string
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
		}
	}
	if len(missing) > 0 {
		return model.NewMissingFieldsError(missing...)
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "oneof":
		return model.NewInvalidDifficultyError(fmt.Sprint(fe.Value()))
	case "min":
		return model.NewInvalidRequestError(fmt.Sprintf("%s must not be empty", fe.Field()))
	case "email":
		return model.NewInvalidRequestError(fmt.Sprintf("%s must be a valid email address", fe.Field()))
	default:
		return model.NewInvalidRequestError(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}

// normalizeMetadata はonboardingMetadataの入力を正規化する。
// 未指定とJSONのnullはどちらも「変更しない」を意味するためnilを返す。
func normalizeMetadata(raw json.RawMessage) (json.RawMessage, *model.APIError) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '{' {
		return nil, model.NewInvalidRequestError("onboardingMetadata must be a JSON object")
	}
	return json.RawMessage(trimmed), nil
}
