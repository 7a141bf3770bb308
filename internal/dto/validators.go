package dto

import (
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterDecimalValidators teaches v to validate decimal.Decimal fields. Decimals are
// presented to the validator as their string form so that dgt0 (> 0), dgte0 (>= 0) and
// dplaces=N (at most N decimal places) keep full precision.
func RegisterDecimalValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("dgt0", decimalCompare(func(d decimal.Decimal) bool { return d.IsPositive() })); err != nil {
		return err
	}
	if err := v.RegisterValidation("dgte0", decimalCompare(func(d decimal.Decimal) bool { return !d.IsNegative() })); err != nil {
		return err
	}
	return v.RegisterValidation("dplaces", decimalPlaces)
}

func decimalPlaces(fl validator.FieldLevel) bool {
	places, err := strconv.ParseInt(fl.Param(), 10, 32)
	if err != nil {
		return false
	}
	return decimalCompare(func(d decimal.Decimal) bool {
		return d.Equal(d.Round(int32(places)))
	})(fl)
}

func decimalCompare(ok func(decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s, isString := fl.Field().Interface().(string)
		if !isString {
			return false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return false
		}
		return ok(d)
	}
}
