package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/courier_ledger/internal/apperrors"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// RegisterValidations teaches v about the DTO types. It is applied to the
// service-side validator and to gin's binding validator.
func RegisterValidations(v *validator.Validate) {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(Date); ok && !d.IsZero() {
			return d.Time
		}
		return nil
	}, Date{})
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.SetTagName("binding")
		RegisterValidations(validate)
	})
	return validate
}

// Validate checks req against its binding tags and wraps failures in apperrors.ErrValidation.
func Validate(req any) error {
	err := validatorInstance().Struct(req)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		msgs := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
}
