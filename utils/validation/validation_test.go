package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"places-server/utils/errors"
)

type signupPayload struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type placePayload struct {
	Title       string `validate:"required"`
	Description string `validate:"required,min=5"`
	Address     string `validate:"required"`
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(signupPayload{Name: "Ann", Email: "ann@x.com", Password: "secret1"}))
	assert.NoError(t, Struct(placePayload{Title: "T", Description: "12345", Address: "A"}))
}

func TestStructInvalid(t *testing.T) {
	cases := map[string]any{
		"missing name":         signupPayload{Email: "ann@x.com", Password: "secret1"},
		"bad email":            signupPayload{Name: "Ann", Email: "not-an-email", Password: "secret1"},
		"short password":       signupPayload{Name: "Ann", Email: "ann@x.com", Password: "12345"},
		"short description":    placePayload{Title: "T", Description: "1234", Address: "A"},
		"missing address":      placePayload{Title: "T", Description: "12345"},
		"empty place payload":  placePayload{},
		"empty signup payload": signupPayload{},
	}
	for name, payload := range cases {
		err := Struct(payload)
		assert.Error(t, err, name)
		apiErr, ok := err.(*errors.APIError)
		assert.True(t, ok, name)
		assert.Equal(t, errors.ErrInvalidInput.Status, apiErr.Status, name)
		assert.Equal(t, "Invalid inputs passed, please check your data.", apiErr.Message, name)
	}
}
