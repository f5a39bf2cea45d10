package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags and flattens violations into a
// single error message suitable for the API envelope.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var violations []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		violations = append(violations, fmt.Sprintf("%s failed on '%s'", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("validation failed: %s", strings.Join(violations, ", "))
}
