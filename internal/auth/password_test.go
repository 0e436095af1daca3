package auth

import (
	"errors"
	"testing"

	"github.com/minarizkaus-cell/reclaim-journey-app-zgioby-sub000/internal/model"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"valid mixed case with digit", "Passw0rd", true},
		{"valid long", "Abcdefg123456", true},
		{"too short", "Pass1", false},
		{"no uppercase or digit", "password", false},
		{"no uppercase", "passw0rd", false},
		{"no lowercase", "PASSW0RD", false},
		{"no digit", "Password", false},
		{"space present", "Pass word1", false},
		{"symbol present", "Passw0rd!", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantOK && err != nil {
				t.Errorf("ValidatePassword(%q) = %v, want nil", tt.password, err)
			}
			if !tt.wantOK && err == nil {
				t.Errorf("ValidatePassword(%q) = nil, want error", tt.password)
			}
		})
	}
}

func TestValidatePassword_ReturnsAPIError(t *testing.T) {
	err := ValidatePassword("short")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T", err)
	}
	if apiErr.Code != model.ErrCodeInvalidPassword {
		t.Errorf("Code = %q, want %q", apiErr.Code, model.ErrCodeInvalidPassword)
	}
	if apiErr.Category != model.CategoryValidation {
		t.Errorf("Category = %q, want %q", apiErr.Category, model.CategoryValidation)
	}
}
