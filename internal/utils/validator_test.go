// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type phoneFixture struct {
	Phone string `validate:"phone"`
}

type passwordFixture struct {
	Password string `validate:"strong_password"`
}

type usernameFixture struct {
	Username string `validate:"username"`
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"", "+15555550123", "5550123", "+34 600 123 456"}
	for _, phone := range valid {
		assert.NoError(t, ValidateStruct(&phoneFixture{Phone: phone}), phone)
	}

	invalid := []string{"123", "phone-number", "+1 (555) 555-0123", "123456789012345678"}
	for _, phone := range invalid {
		assert.Error(t, ValidateStruct(&phoneFixture{Phone: phone}), phone)
	}
}

func TestValidateStrongPassword(t *testing.T) {
	assert.NoError(t, ValidateStruct(&passwordFixture{Password: "Sunr1se!Motors"}))

	invalid := []string{
		"short1!",     // too short
		"alllower1!",  // no uppercase
		"ALLUPPER1!",  // no lowercase
		"NoNumbers!",  // no digit
		"NoSpecial12", // no symbol
	}
	for _, password := range invalid {
		assert.Error(t, ValidateStruct(&passwordFixture{Password: password}), password)
	}
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateStruct(&usernameFixture{Username: "seller_01"}))
	assert.Error(t, ValidateStruct(&usernameFixture{Username: "ab"}))
	assert.Error(t, ValidateStruct(&usernameFixture{Username: "bad name"}))
	assert.Error(t, ValidateStruct(&usernameFixture{Username: "bad-name"}))
}

func TestGetValidationErrors(t *testing.T) {
	type fixture struct {
		Email string `validate:"required,email"`
		Name  string `validate:"required"`
	}

	err := ValidateStruct(&fixture{Email: "not-an-email"})
	require.Error(t, err)

	errors := GetValidationErrors(err)
	require.Len(t, errors, 2)

	fields := map[string]string{}
	for _, e := range errors {
		fields[e.Field] = e.Tag
	}
	assert.Equal(t, "email", fields["email"])
	assert.Equal(t, "required", fields["name"])
}
