package utils

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Kenyan phone numbers: +254XXXXXXXXX or 0XXXXXXXXX
var kenyanPhonePattern = regexp.MustCompile(`^(\+254|0)\d{9}$`)

// RegisterValidators attaches custom binding validators to gin's validator engine
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("kenyanphone", func(fl validator.FieldLevel) bool {
			return kenyanPhonePattern.MatchString(fl.Field().String())
		})
	}
}
