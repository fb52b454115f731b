package service

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"gin-gorm-users/internal/domain"
)

// CreateUserInput is the body of POST /users/save.
type CreateUserInput struct {
	Name     string `json:"name"     validate:"required"`
	Surname  string `json:"surname"  validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,bytesmax=72"`
	Phone    string `json:"phone"    validate:"required,min=7"`
	Age      int    `json:"age"      validate:"min=1,max=100"`
	Country  string `json:"country"  validate:"required"`
	District string `json:"district" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=user admin"`
}

// UpdateUserInput is the body of PUT /users/update/:id. A nil field keeps its stored value.
type UpdateUserInput struct {
	Name     *string `json:"name"     validate:"omitnil,min=1"`
	Surname  *string `json:"surname"  validate:"omitnil,min=1"`
	Email    *string `json:"email"    validate:"omitnil,email"`
	Password *string `json:"password" validate:"omitnil,min=1,bytesmax=72"`
	Phone    *string `json:"phone"    validate:"omitnil,min=7"`
	Age      *int    `json:"age"      validate:"omitnil,min=1,max=100"`
	Country  *string `json:"country"  validate:"omitnil,min=1"`
	District *string `json:"district" validate:"omitnil,min=1"`
	Role     *string `json:"role"     validate:"omitnil,oneof=user admin"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names so the caller sees the field it actually sent
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// bcrypt refuses input over 72 bytes; max= would count runes
	_ = v.RegisterValidation("bytesmax", func(fl validator.FieldLevel) bool {
		n, err := strconv.Atoi(fl.Param())
		return err == nil && len(fl.Field().String()) <= n
	})
	return v
}

// Validate checks in against its struct tags and converts failures into a
// domain validation error listing every bad field.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Validation(err.Error())
	}
	fields := make([]domain.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, domain.FieldError{Field: fe.Field(), Reason: reason(fe)})
	}
	return domain.Validation("invalid input", fields...)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "bytesmax":
		return fmt.Sprintf("must be at most %s bytes", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	}
	return "failed " + fe.Tag() + " check"
}
