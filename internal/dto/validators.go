package dto

import (
	"fmt"
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterValidators installs the decimal-aware tags on gin's validator:
// dgt0 (strictly positive) and dgte0 (zero or more).
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return registerDecimalTags(v)
}

func registerDecimalTags(v *validator.Validate) error {
	// Decimals are structs; hand the validator their string form so field
	// tags apply to the value instead of descending into the struct.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		switch d := field.Interface().(type) {
		case decimal.Decimal:
			return d.String()
		case Amount:
			return d.String()
		}
		return nil
	}, decimal.Decimal{}, Amount{})

	if err := v.RegisterValidation("dgt0", func(fl validator.FieldLevel) bool {
		d, ok := decimalField(fl.Field())
		return ok && d.IsPositive()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("dgte0", func(fl validator.FieldLevel) bool {
		d, ok := decimalField(fl.Field())
		return ok && !d.IsNegative()
	})
}

func decimalField(field reflect.Value) (decimal.Decimal, bool) {
	if field.Kind() != reflect.String {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(field.String())
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
