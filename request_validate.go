package walletpay

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)
	regionPattern   = regexp.MustCompile(`^[A-Z]{2}$`)
	validate        = newValidator()
)

var knownNetworks = map[Network]struct{}{
	NetworkVisa:       {},
	NetworkMastercard: {},
	NetworkAmex:       {},
	NetworkDiscover:   {},
	NetworkJCB:        {},
	NetworkMaestro:    {},
	NetworkGirocard:   {},
}

// Validate checks the merchant configuration with go-playground/validator
// rules plus the custom currency, region, network, and capability constraints.
func (c RequestConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return normalizeValidationError(err)
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})

	if err := v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return currencyPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	if err := v.RegisterValidation("region", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return regionPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	if err := v.RegisterValidation("network", func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		_, ok := knownNetworks[Network(fl.Field().String())]
		return ok
	}); err != nil {
		panic(err)
	}

	if err := v.RegisterValidation("capabilities", func(fl validator.FieldLevel) bool {
		if !fl.Field().CanUint() {
			return false
		}
		return fl.Field().Uint()&^uint64(capabilityAll) == 0
	}); err != nil {
		panic(err)
	}

	return v
}

// fieldViolation is a single failed constraint, keeping the JSON path
// addressable for error reporting.
type fieldViolation struct {
	Path    string
	Message string
}

func (v *fieldViolation) Error() string {
	return v.Path + " " + v.Message
}

func normalizeValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	first := validationErrs[0]
	return &fieldViolation{
		Path:    jsonPath(first),
		Message: validationMessage(first),
	}
}

func jsonPath(fe validator.FieldError) string {
	path := fe.Namespace()
	if idx := strings.Index(path, "."); idx >= 0 {
		path = path[idx+1:]
	}
	if path == "" {
		return fe.Field()
	}
	return path
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "max":
		return fmt.Sprintf("cannot exceed %s characters", fe.Param())
	case "currency":
		return "must be an uppercase 3-letter ISO-4217 code"
	case "region":
		return "must be an uppercase 2-letter ISO-3166 code"
	case "network":
		return "must be a known card network"
	case "capabilities":
		return "contains unknown capability bits"
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}
