// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"budgetplaner/internal/models"
)

// validCurrencies contains ISO 4217 currency codes.
var validCurrencies = map[string]bool{
	"AED": true, "AFN": true, "ALL": true, "AMD": true, "ANG": true,
	"AOA": true, "ARS": true, "AUD": true, "AWG": true, "AZN": true,
	"BAM": true, "BBD": true, "BDT": true, "BGN": true, "BHD": true,
	"BIF": true, "BMD": true, "BND": true, "BOB": true, "BRL": true,
	"BSD": true, "BTN": true, "BWP": true, "BYN": true, "BZD": true,
	"CAD": true, "CDF": true, "CHF": true, "CLP": true, "CNY": true,
	"COP": true, "CRC": true, "CUP": true, "CVE": true, "CZK": true,
	"DJF": true, "DKK": true, "DOP": true, "DZD": true, "EGP": true,
	"ERN": true, "ETB": true, "EUR": true, "FJD": true, "FKP": true,
	"GBP": true, "GEL": true, "GHS": true, "GIP": true, "GMD": true,
	"GNF": true, "GTQ": true, "GYD": true, "HKD": true, "HNL": true,
	"HRK": true, "HTG": true, "HUF": true, "IDR": true, "ILS": true,
	"INR": true, "IQD": true, "IRR": true, "ISK": true, "JMD": true,
	"JOD": true, "JPY": true, "KES": true, "KGS": true, "KHR": true,
	"KMF": true, "KPW": true, "KRW": true, "KWD": true, "KYD": true,
	"KZT": true, "LAK": true, "LBP": true, "LKR": true, "LRD": true,
	"LSL": true, "LYD": true, "MAD": true, "MDL": true, "MGA": true,
	"MKD": true, "MMK": true, "MNT": true, "MOP": true, "MRU": true,
	"MUR": true, "MVR": true, "MWK": true, "MXN": true, "MYR": true,
	"MZN": true, "NAD": true, "NGN": true, "NIO": true, "NOK": true,
	"NPR": true, "NZD": true, "OMR": true, "PAB": true, "PEN": true,
	"PGK": true, "PHP": true, "PKR": true, "PLN": true, "PYG": true,
	"QAR": true, "RON": true, "RSD": true, "RUB": true, "RWF": true,
	"SAR": true, "SBD": true, "SCR": true, "SDG": true, "SEK": true,
	"SGD": true, "SHP": true, "SLE": true, "SOS": true, "SRD": true,
	"SSP": true, "STN": true, "SVC": true, "SYP": true, "SZL": true,
	"THB": true, "TJS": true, "TMT": true, "TND": true, "TOP": true,
	"TRY": true, "TTD": true, "TWD": true, "TZS": true, "UAH": true,
	"UGX": true, "USD": true, "UYU": true, "UZS": true, "VES": true,
	"VND": true, "VUV": true, "WST": true, "XAF": true, "XCD": true,
	"XOF": true, "XPF": true, "YER": true, "ZAR": true, "ZMW": true,
	"ZWL": true,
}

// maxAmount bounds a DECIMAL(10,2) column.
var maxAmount = decimal.New(1, 8)

// Register registers all custom validators with the Gin binding engine and
// makes validation errors report JSON field names.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("iso4217", validateISO4217)
		_ = v.RegisterValidation("category_type", validateCategoryType)
		_ = v.RegisterValidation("input_mode", validateInputMode)
		_ = v.RegisterValidation("reduction_type", validateReductionType)
		_ = v.RegisterValidation("dec_gte0", validateDecimalNonNegative)
		_ = v.RegisterValidation("dec_lte100", validateDecimalAtMostHundred)
		_ = v.RegisterValidation("money", validateMoney)
	}
}

// Struct validates s with the same engine and tags used for request binding.
func Struct(s any) error {
	return binding.Validator.ValidateStruct(s)
}

// FieldErrors flattens a validation error into JSON field name -> message.
// It returns nil when err carries no field errors.
func FieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if _, seen := fields[name]; !seen {
			fields[name] = message(fe)
		}
	}
	return fields
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be less than or equal to %s", fe.Param())
	case "uuid":
		return "Must be a valid id"
	case "iso4217":
		return "Must be a three-letter ISO 4217 currency code"
	case "category_type":
		return "Must be one of INCOME, FIXED_EXPENSE, VARIABLE_EXPENSE, SAVINGS"
	case "input_mode":
		return "Must be one of MONTHLY, YEARLY, CUSTOM"
	case "reduction_type":
		return "Must be one of PERCENTAGE, FIXED"
	case "dec_gte0":
		return "Must not be negative"
	case "dec_lte100":
		return "Must not exceed 100"
	case "money":
		return "Must have at most 8 integer digits and 2 decimal places"
	}
	return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		tag = f.Tag.Get("form")
	}
	name := strings.SplitN(tag, ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[fl.Field().String()]
}

func validateCategoryType(fl validator.FieldLevel) bool {
	return models.CategoryType(fl.Field().String()).Valid()
}

func validateInputMode(fl validator.FieldLevel) bool {
	switch models.InputMode(fl.Field().String()) {
	case models.InputModeMonthly, models.InputModeYearly, models.InputModeCustom:
		return true
	}
	return false
}

func validateReductionType(fl validator.FieldLevel) bool {
	switch models.ReductionType(fl.Field().String()) {
	case models.ReductionTypePercentage, models.ReductionTypeFixed:
		return true
	}
	return false
}

// decimalValue extracts a decimal from a Decimal, *Decimal or NullDecimal
// field. ok is false for absent values, which pass every decimal rule.
func decimalValue(fl validator.FieldLevel) (d decimal.Decimal, ok bool) {
	switch v := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return v, true
	case *decimal.Decimal:
		if v == nil {
			return decimal.Zero, false
		}
		return *v, true
	case decimal.NullDecimal:
		return v.Decimal, v.Valid
	case *decimal.NullDecimal:
		if v == nil {
			return decimal.Zero, false
		}
		return v.Decimal, v.Valid
	}
	return decimal.Zero, false
}

func validateDecimalNonNegative(fl validator.FieldLevel) bool {
	d, ok := decimalValue(fl)
	return !ok || !d.IsNegative()
}

func validateDecimalAtMostHundred(fl validator.FieldLevel) bool {
	d, ok := decimalValue(fl)
	return !ok || d.LessThanOrEqual(decimal.NewFromInt(100))
}

func validateMoney(fl validator.FieldLevel) bool {
	d, ok := decimalValue(fl)
	if !ok {
		return true
	}
	return d.Equal(d.Truncate(2)) && d.Abs().LessThan(maxAmount)
}
