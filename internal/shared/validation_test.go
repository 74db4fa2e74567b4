package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=candidate recruiter"`
}

func TestValidateStructReportsJSONFieldNames(t *testing.T) {
	v := NewValidator()

	err := ValidateStruct(v, signupForm{Email: "nope", Password: "abc", Role: "admin"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, map[string]string{
		"email":    "must be a valid email",
		"password": "must be at least 6",
		"role":     "must be one of candidate recruiter",
	}, verr.Fields)

	require.NoError(t, ValidateStruct(v, signupForm{Email: "a@b.co", Password: "secret", Role: "candidate"}))
}
