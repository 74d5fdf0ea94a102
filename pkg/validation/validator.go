package validation

import (
	"encoding/json"
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// namePattern allows alphabetic characters and whitespace only; the empty
// string is deliberately valid, optionality is modelled with nil pointers.
var namePattern = regexp.MustCompile(`^[a-zA-Z\s]*$`)

func alphaSpace(fl validator.FieldLevel) bool {
	return namePattern.MatchString(fl.Field().String())
}

func register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("alphaspace", alphaSpace)
	v.RegisterAlias("pwd", "min=8,max=255") // credential length bounds
}

// Init configures the global validator used by Gin's binding.
// - Uses JSON tag names in errors.
// - Registers the alphaspace rule and the pwd alias.
func Init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
}

var (
	std     *validator.Validate
	stdOnce sync.Once
)

// Instance returns a standalone validator configured identically to the one
// wired into Gin. The application layer uses it so field rules hold no matter
// which transport invoked the operation.
func Instance() *validator.Validate {
	stdOnce.Do(func() {
		std = validator.New()
		register(std)
	})
	return std
}

// ToDetails converts validation/binding errors into a map[field]message
// suitable for the error payload of an API response.
func ToDetails(err error) map[string]string {
	if err == nil {
		return nil
	}

	// Invalid JSON payloads
	var se *json.SyntaxError
	var ute *json.UnmarshalTypeError
	if errors.As(err, &se) || errors.As(err, &ute) {
		return map[string]string{"payload": "invalid json"}
	}

	// Validation errors from validator.v10
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			out[fe.Field()] = formatFieldError(fe)
		}
		return out
	}

	// Fallback
	return map[string]string{"payload": "invalid payload"}
}

func formatFieldError(fe validator.FieldError) string {
	param := fe.Param()
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "alphaspace":
		return "must contain only letters and spaces"
	case "min", "pwd":
		return "must be at least " + minParam(fe) + " characters"
	case "max":
		return "must be at most " + param + " characters"
	case "oneof":
		return "must be one of " + param
	case "uuid":
		return "must be a valid UUID"
	default:
		return "is invalid"
	}
}

func minParam(fe validator.FieldError) string {
	if p := fe.Param(); p != "" {
		return p
	}
	return "8"
}
