package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shop/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// SetupValidator makes gin's validator report json (or form) field names and
// validate decimal amounts as numbers, so `required` rejects a zero amount
// and `gt=0` works on prices
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(fieldName)
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// FormatValidationErrors turns a binding error into the error envelope. Field
// rule violations and wrongly typed json values list the offending fields;
// anything else is reported as a malformed body.
func FormatValidationErrors(err error, requestID string) dto.Response {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]dto.ValidationDetail, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			details = append(details, dto.ValidationDetail{Field: fe.Field(), Message: validationMessage(fe)})
		}
		return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return dto.NewValidationErrorResponse("Request validation failed", requestID, []dto.ValidationDetail{
			{Field: typeErr.Field, Message: "Must be of type " + typeErr.Type.String()},
		})
	}

	return dto.NewErrorResponseWithRequestID(dto.ErrCodeInvalidJSON, "Malformed request body", requestID)
}

// HandleValidationError writes a binding failure. Bodies cut off by BodyLimit
// get 413, everything else 400.
func HandleValidationError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		abortWithError(c, http.StatusRequestEntityTooLarge, dto.ErrCodeRequestTooLarge, "Request body exceeds maximum allowed size")
		return
	}
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

func sizeUnit(fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Array, reflect.Map:
		return " items"
	}
	return ""
}

var validationMessages = map[string]func(validator.FieldError) string{
	"required": func(validator.FieldError) string { return "This field is required" },
	"email":    func(validator.FieldError) string { return "Invalid email format" },
	"url":      func(validator.FieldError) string { return "Invalid URL format" },
	"uuid":     func(validator.FieldError) string { return "Invalid UUID format" },
	"oneof":    func(fe validator.FieldError) string { return "Must be one of: " + fe.Param() },
	"min":      func(fe validator.FieldError) string { return "Must be at least " + fe.Param() + sizeUnit(fe) },
	"max":      func(fe validator.FieldError) string { return "Must be at most " + fe.Param() + sizeUnit(fe) },
	"len":      func(fe validator.FieldError) string { return "Must be exactly " + fe.Param() + sizeUnit(fe) },
	"gt":       func(fe validator.FieldError) string { return "Must be greater than " + fe.Param() },
	"gte":      func(fe validator.FieldError) string { return "Must be at least " + fe.Param() },
	"lt":       func(fe validator.FieldError) string { return "Must be less than " + fe.Param() },
	"lte":      func(fe validator.FieldError) string { return "Must be at most " + fe.Param() },
}

func validationMessage(fe validator.FieldError) string {
	if msg, ok := validationMessages[fe.Tag()]; ok {
		return msg(fe)
	}
	return "Invalid value"
}
