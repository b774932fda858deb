package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Optional clinical fields. When one of these is the field that failed,
// the message tells the caller it can simply be left out.
var optionalFields = map[string]bool{
	"hypertension":        true,
	"hba1c_level":         true,
	"blood_glucose_level": true,
}

const omitHint = "; you may omit this field and the system will estimate it from your other inputs"

// newValidator builds a validator that reports json field names instead of
// Go struct field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// validationMessage renders only the first violated rule as a
// user-actionable message naming the field.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	field := fe.Field()

	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", field, strings.Join(strings.Fields(fe.Param()), ", "))
	case "email":
		msg = fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}

	return withOmitHint(field, msg)
}

// bindMessage renders an echo bind failure; json type errors are unwrapped
// so the message can still name the offending field.
func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		var ute *json.UnmarshalTypeError
		if errors.As(he.Internal, &ute) && ute.Field != "" {
			msg := fmt.Sprintf("%s must be a %s", ute.Field, jsonKind(ute.Type))
			return withOmitHint(ute.Field, msg)
		}
		return fmt.Sprintf("%v", he.Message)
	}

	return err.Error()
}

func withOmitHint(field, msg string) string {
	if optionalFields[field] {
		return msg + omitHint
	}

	return msg
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.String:
		return "string"
	default:
		return t.String()
	}
}
