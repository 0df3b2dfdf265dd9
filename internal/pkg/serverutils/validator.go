package serverutils

import (
	"fmt"

	"ai-chat-be/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return apperr.Validation(fmt.Sprintf("invalid field %s (%s)", first.Field(), first.Tag()))
		}
		return apperr.Validation("invalid request")
	}
	return nil
}
