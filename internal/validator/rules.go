package validator

import (
	"log"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
)

var phoneRegexp = regexp.MustCompile(`^\+?[0-9()\-\s]{3,20}$`)

// registerCustomRules wires the project-specific validation tags into
// the shared validator instance.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// A broken rule set is a startup error, not a request error.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'phone': loose international phone number check for contacts.
	mustRegister("phone", validatePhone)

	// 'birthdate': calendar date in YYYY-MM-DD form.
	mustRegister("birthdate", validateBirthdate)
}

func validatePhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is handled by 'required'
	}
	return phoneRegexp.MatchString(value)
}

func validateBirthdate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
