package services

import (
	"testing"

	"github.com/ArowuTest/conomy-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStructMapsFieldErrors(t *testing.T) {
	valid := models.RegisterRequest{
		FullName: "Erin Doe",
		Email:    "erin@example.com",
		Contact:  "0772000000",
		District: "Kampala",
		Password: "secret1",
	}
	require.NoError(t, validateStruct(&valid))

	tests := []struct {
		name    string
		mutate  func(*models.RegisterRequest)
		field   string
		message string
	}{
		{"missing name", func(r *models.RegisterRequest) { r.FullName = "" }, "fullName", "fullName is required"},
		{"bad email", func(r *models.RegisterRequest) { r.Email = "erin@" }, "email", "a valid email address is required"},
		{"short password", func(r *models.RegisterRequest) { r.Password = "abc" }, "password", "password must be at least 6 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			var validation *ValidationError
			require.ErrorAs(t, validateStruct(&req), &validation)
			assert.Equal(t, tt.field, validation.Field)
			assert.Equal(t, tt.message, validation.Message)
		})
	}
}

func TestValidateStructChecksLoginRequest(t *testing.T) {
	err := validateStruct(&models.LoginRequest{Email: "erin@example.com"})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "password", validation.Field)
}
