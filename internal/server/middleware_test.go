package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	authdomain "github.com/energoledger/energoledger/internal/auth/domain"
	"github.com/energoledger/energoledger/internal/identity"
	userdomain "github.com/energoledger/energoledger/internal/user/domain"
)

type stubAuth struct {
	identity identity.Identity
	err      error
	gotToken string
}

func (s *stubAuth) Login(ctx context.Context, req authdomain.LoginRequest) (authdomain.LoginResult, error) {
	return authdomain.LoginResult{}, authdomain.ErrInvalidCredentials
}

func (s *stubAuth) Identify(ctx context.Context, rawToken string) (identity.Identity, error) {
	s.gotToken = rawToken
	if s.err != nil {
		return identity.Identity{}, s.err
	}
	return s.identity, nil
}

func (s *stubAuth) CurrentUser(ctx context.Context) (userdomain.User, error) {
	return userdomain.User{}, authdomain.ErrUnauthenticated
}

func newTestRouter(auth authdomain.Service, invoked *bool, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(ErrorHandlingMiddleware(zap.NewNop()))

	chain := append([]gin.HandlerFunc{Authenticate(auth)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		if invoked != nil {
			*invoked = true
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	e.GET("/protected", chain...)
	return e
}

func doRequest(e *gin.Engine, configure func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if configure != nil {
		configure(req)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingCredential(t *testing.T) {
	invoked := false
	e := newTestRouter(&stubAuth{}, &invoked)

	w := doRequest(e, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"authentication required"}`, w.Body.String())
	assert.False(t, invoked)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	invoked := false
	e := newTestRouter(&stubAuth{err: authdomain.ErrInvalidToken}, &invoked)

	w := doRequest(e, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer garbage")
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, invoked)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	invoked := false
	e := newTestRouter(&stubAuth{err: authdomain.ErrUserInactiveOrMissing}, &invoked)

	w := doRequest(e, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer some-token")
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, invoked)
}

func TestAuthenticateReadsCookie(t *testing.T) {
	auth := &stubAuth{identity: identity.Identity{RoleName: "Manager"}}
	e := newTestRouter(auth, nil)

	w := doRequest(e, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "cookie-token"})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cookie-token", auth.gotToken)
}

func TestAuthenticatePrefersCookieOverHeader(t *testing.T) {
	auth := &stubAuth{identity: identity.Identity{RoleName: "Manager"}}
	e := newTestRouter(auth, nil)

	w := doRequest(e, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AuthCookieName, Value: "cookie-token"})
		r.Header.Set("Authorization", "Bearer header-token")
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "cookie-token", auth.gotToken)
}

func TestAuthenticateReadsBearerHeader(t *testing.T) {
	auth := &stubAuth{identity: identity.Identity{RoleName: "Manager"}}
	e := newTestRouter(auth, nil)

	w := doRequest(e, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer header-token")
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "header-token", auth.gotToken)
}

func TestRequireRolesRejectsOtherRole(t *testing.T) {
	invoked := false
	auth := &stubAuth{identity: identity.Identity{RoleName: "Operator"}}
	e := newTestRouter(auth, &invoked, RequireRoles("Admin", "Manager"))

	w := doRequest(e, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer t")
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"role not authorized"}`, w.Body.String())
	assert.False(t, invoked)
}

func TestRequireRolesMatchesCaseInsensitively(t *testing.T) {
	auth := &stubAuth{identity: identity.Identity{RoleName: "manager"}}
	e := newTestRouter(auth, nil, RequireRoles("Admin", "Manager"))

	w := doRequest(e, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer t")
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissionDenied(t *testing.T) {
	invoked := false
	auth := &stubAuth{identity: identity.Identity{
		RoleName:    "Operator",
		Permissions: []identity.Permission{{Action: "READ", Resource: "WORK"}},
	}}
	e := newTestRouter(auth, &invoked,
		RequireRoles("Operator"),
		RequirePermission(identity.MustParsePermission("delete:work")),
	)

	w := doRequest(e, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer t")
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"permission denied"}`, w.Body.String())
	assert.False(t, invoked)
}

func TestRequirePermissionHeld(t *testing.T) {
	auth := &stubAuth{identity: identity.Identity{
		RoleName:    "Operator",
		Permissions: []identity.Permission{{Action: "READ", Resource: "WORK"}},
	}}
	e := newTestRouter(auth, nil, RequirePermission(identity.MustParsePermission("read:work")))

	w := doRequest(e, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer t")
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissionAdminBypass(t *testing.T) {
	auth := &stubAuth{identity: identity.Identity{RoleName: "Admin"}}
	e := newTestRouter(auth, nil, RequirePermission(identity.MustParsePermission("delete:payment")))

	w := doRequest(e, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer t")
	})
	require.Equal(t, http.StatusOK, w.Code)
}
