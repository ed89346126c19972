package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// Validator обёртка над validator/v10, возвращающая имена полей из json тегов
type Validator struct {
	validate *validator.Validate
}

// FieldError ошибка валидации одного поля
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Reason человекочитаемое описание нарушенного правила
func (e FieldError) Reason() string {
	switch e.Tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param)
	case "gte", "min":
		return fmt.Sprintf("must be at least %s", e.Param)
	case "lte", "max":
		return fmt.Sprintf("must be at most %s", e.Param)
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.Join(strings.Fields(e.Param), ", "))
	case "isodate":
		return "must be a date in YYYY-MM-DD format"
	case "notblank":
		return "must not be blank"
	default:
		return fmt.Sprintf("failed %q validation", e.Tag)
	}
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Reason()
}

// New создает валидатор с json-именами полей и дополнительными правилами
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Ошибки регистрации возможны только при пустом теге или nil функции
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v}
}

// Struct валидирует структуру по тегам validate
// Возвращает FieldError для первого нарушения
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return FieldError{Field: first.Field(), Tag: first.Tag(), Param: first.Param()}
	}

	return err
}
