package session_test

import (
	"testing"

	"github.com/goliatone/go-session"
	"github.com/stretchr/testify/assert"
)

func TestCredentialsValidate(t *testing.T) {
	tests := []struct {
		name    string
		creds   session.Credentials
		wantErr bool
	}{
		{
			name:  "valid",
			creds: session.Credentials{Email: "jane@example.com", Password: "pw"},
		},
		{
			name:    "missing email",
			creds:   session.Credentials{Password: "pw"},
			wantErr: true,
		},
		{
			name:    "invalid email",
			creds:   session.Credentials{Email: "not-an-email", Password: "pw"},
			wantErr: true,
		},
		{
			name:    "missing password",
			creds:   session.Credentials{Email: "jane@example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRegistrationValidate(t *testing.T) {
	valid := session.Registration{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		Password:        "password-123",
		ConfirmPassword: "password-123",
	}
	assert.NoError(t, valid.Validate())

	mismatch := valid
	mismatch.ConfirmPassword = "password-456"
	assert.Error(t, mismatch.Validate())

	short := valid
	short.Password = "short"
	short.ConfirmPassword = "short"
	assert.Error(t, short.Validate())

	badPhone := valid
	badPhone.Phone = "not-digits!"
	assert.Error(t, badPhone.Validate())

	withPhone := valid
	withPhone.Phone = "5551234567"
	assert.NoError(t, withPhone.Validate())

	noName := valid
	noName.FirstName = ""
	assert.Error(t, noName.Validate())
}
