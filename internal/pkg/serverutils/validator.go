package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"reflecta-be/internal/apperror"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation on a request DTO and wraps
// failures as invalid-input errors so the error middleware maps them to
// a 400.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %s", apperror.ErrInvalidInput, err.Error())
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", apperror.ErrInvalidInput, strings.Join(fields, ", "))
}
