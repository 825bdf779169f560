package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"taskboard/internal/service"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	// bcrypt принимает не больше 72 байт, а max считает символы.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= limit
	})
	return v
}

// check прогоняет теги validate и переводит нарушения в ошибки полей.
func check(req any) []service.FieldError {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []service.FieldError{{Field: "body", Message: err.Error()}}
	}

	fields := make([]service.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, service.FieldError{Field: fe.Field(), Message: message(fe.Field(), fe.Tag(), fe.Param())})
	}
	return fields
}

func message(field, tag, param string) string {
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, param)
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters", field, param)
	case "email":
		return "Please provide a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "uuid":
		return fmt.Sprintf("%s must be a valid identifier", field)
	case "maxbytes":
		return fmt.Sprintf("%s must not exceed %s bytes", field, param)
	case "date":
		return fmt.Sprintf("%s must be a valid date", field)
	}
	return fmt.Sprintf("%s is invalid", field)
}

// fieldChecks копит ошибки ручных проверок в том же виде, что и check.
type fieldChecks []service.FieldError

func (c *fieldChecks) add(field, tag, param string) {
	*c = append(*c, service.FieldError{Field: field, Message: message(field, tag, param)})
}

// length проверяет длину в символах, как теги min/max.
func (c *fieldChecks) length(field, value string, min, max int) {
	n := len([]rune(value))
	switch {
	case n < min && min == 1:
		c.add(field, "required", "")
	case n < min:
		c.add(field, "min", fmt.Sprint(min))
	case n > max:
		c.add(field, "max", fmt.Sprint(max))
	}
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// emptyToNil: пустая строка после обрезки пробелов означает отсутствие значения.
func emptyToNil(s *string) *string {
	s = trimPtr(s)
	if s == nil || *s == "" {
		return nil
	}
	return s
}
