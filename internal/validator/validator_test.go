package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleDTO struct {
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone_number" validate:"required,phone"`
	Birthday  string `json:"birthday" validate:"omitempty,birthdate"`
	FirstName string `json:"first_name" validate:"required,min=2"`
}

func TestValidate_OK(t *testing.T) {
	v := New()
	err := v.Validate(sampleDTO{
		Email:     "a@x.com",
		Phone:     "+7 (777) 123-45-67",
		Birthday:  "1990-05-21",
		FirstName: "Ann",
	})
	assert.NoError(t, err)
}

func TestValidate_FieldNamesFromJSONTags(t *testing.T) {
	v := New()
	err := v.Validate(sampleDTO{
		Email:     "not-an-email",
		Phone:     "abc",
		FirstName: "A",
	})
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "email")
	assert.Contains(t, verr.Errors, "phone_number")
	assert.Contains(t, verr.Errors, "first_name")
}

func TestValidate_Birthdate(t *testing.T) {
	v := New()

	err := v.Validate(sampleDTO{Email: "a@x.com", Phone: "+77771234567", FirstName: "Ann", Birthday: "21-05-1990"})
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "birthday")

	err = v.Validate(sampleDTO{Email: "a@x.com", Phone: "+77771234567", FirstName: "Ann", Birthday: "1990-02-30"})
	assert.Error(t, err)
}
