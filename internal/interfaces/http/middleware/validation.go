package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// maxMarkupPercent caps per-import markup overrides. Anything above this is
// a typo, not a pricing strategy.
const maxMarkupPercent = 500

// SetupValidator registers custom binding validations with gin's validator.
// Call once at startup before handling requests.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// markup: a sane markup percentage. Zero means "use the default".
	_ = v.RegisterValidation("markup", func(fl validator.FieldLevel) bool {
		markup := fl.Field().Float()
		return markup >= 0 && markup <= maxMarkupPercent
	})
}
