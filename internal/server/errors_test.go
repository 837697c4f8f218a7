package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	authdomain "github.com/energoledger/energoledger/internal/auth/domain"
	clientdomain "github.com/energoledger/energoledger/internal/client/domain"
	paymentdomain "github.com/energoledger/energoledger/internal/payment/domain"
	roledomain "github.com/energoledger/energoledger/internal/role/domain"
	userdomain "github.com/energoledger/energoledger/internal/user/domain"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"missing credential", ErrMissingCredential, http.StatusUnauthorized, "authentication required"},
		{"bad login", authdomain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{"bad token", authdomain.ErrInvalidToken, http.StatusForbidden, "invalid or expired token"},
		{"inactive user", authdomain.ErrUserInactiveOrMissing, http.StatusForbidden, "user is inactive or no longer exists"},
		{"role rejected", ErrRoleNotAuthorized, http.StatusForbidden, "role not authorized"},
		{"permission denied", ErrPermissionDenied, http.StatusForbidden, "permission denied"},
		{"bad body", errInvalidBody, http.StatusBadRequest, "invalid request body"},
		{"weak password", userdomain.ErrWeakPassword, http.StatusBadRequest, "password must be at least 8 characters"},
		{"unknown link target", paymentdomain.ErrTargetUnknown, http.StatusBadRequest, "link target does not exist"},
		{"not found", userdomain.ErrNotFound, http.StatusNotFound, "user not found"},
		{"client not found", clientdomain.ErrNotFound, http.StatusNotFound, "client not found"},
		{"role in use", roledomain.ErrInUse, http.StatusConflict, "role is assigned to users and cannot be deleted"},
		{
			"duplicate email",
			errors.New(`ERROR: duplicate key value violates unique constraint "ux_users_email" (SQLSTATE 23505)`),
			http.StatusConflict,
			"a record with this email already exists",
		},
		{
			"duplicate without field",
			errors.New(`UNIQUE constraint failed`),
			http.StatusConflict,
			"record already exists",
		},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := mapError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}
