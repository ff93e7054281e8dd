package service

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/msp-aci-api/internal/models"
)

// NewValidator returns a validator that reports JSON field names so
// validation details match the request body the client sent. Nullable patch
// fields are validated on the value they carry.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(nullableValue, models.Nullable[string]{}, models.Nullable[int]{})
	return v
}

func nullableValue(field reflect.Value) interface{} {
	if n, ok := field.Interface().(interface{ Any() interface{} }); ok {
		return n.Any()
	}
	return nil
}
