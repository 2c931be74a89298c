package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type registerInput struct {
	Username string `form:"username" validate:"required,min=3,max=50"`
	Password string `form:"password" validate:"required,min=6"`
	State    string `json:"state" validate:"oneof=enter leave"`
}

func TestFromBindError(t *testing.T) {
	in := registerInput{Username: "ab", State: "hover"}
	err := validator.New().Struct(&in)

	got := FromBindError(err, &in)
	assert.Equal(t, FieldErrors{
		"username": "Must be at least 3 characters.",
		"password": "This field is required.",
		"state":    "Must be one of: enter leave.",
	}, got)
}

func TestFromBindErrorOther(t *testing.T) {
	got := FromBindError(errors.New("EOF"), &registerInput{})
	assert.Equal(t, FieldErrors{"_": "The submitted form is invalid."}, got)
}
