package handler

import (
	"github.com/gstbill/backend/internal/domain/partner"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs custom request validators on gin's
// validator engine. Call once at startup.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return partner.ValidGSTIN(fl.Field().String())
	})
}
