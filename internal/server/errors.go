package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authdomain "github.com/energoledger/energoledger/internal/auth/domain"
	clientdomain "github.com/energoledger/energoledger/internal/client/domain"
	"github.com/energoledger/energoledger/internal/identity"
	paymentdomain "github.com/energoledger/energoledger/internal/payment/domain"
	permissiondomain "github.com/energoledger/energoledger/internal/permission/domain"
	"github.com/energoledger/energoledger/internal/property"
	roledomain "github.com/energoledger/energoledger/internal/role/domain"
	servicedomain "github.com/energoledger/energoledger/internal/service/domain"
	"github.com/energoledger/energoledger/internal/servicetype"
	"github.com/energoledger/energoledger/internal/subject"
	userdomain "github.com/energoledger/energoledger/internal/user/domain"
	workdomain "github.com/energoledger/energoledger/internal/work/domain"
	"github.com/energoledger/energoledger/pkg/db"
)

// Access-control failures raised by the middleware chain.
var (
	ErrMissingCredential = errors.New("authentication required")
	ErrRoleNotFound      = errors.New("role not found")
	ErrRoleNotAuthorized = errors.New("role not authorized")
	ErrPermissionDenied  = errors.New("permission denied")
)

var (
	errInvalidBody  = errors.New("invalid request body")
	errInvalidQuery = errors.New("invalid query parameter")
)

// AbortWithError records err on the request and stops the handler chain.
// The error-handling middleware turns it into the response.
func AbortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandlingMiddleware renders the last recorded error as
// {"message": ...} with the mapped status code.
func ErrorHandlingMiddleware(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		status, message := mapError(err)
		if status == http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
		c.JSON(status, gin.H{"message": message})
	}
}

var badRequestErrs = []error{
	errInvalidBody,
	errInvalidQuery,
	identity.ErrInvalidPermission,
	userdomain.ErrEmailRequired,
	userdomain.ErrWeakPassword,
	userdomain.ErrRoleUnknown,
	userdomain.ErrInvalidID,
	roledomain.ErrNameRequired,
	roledomain.ErrInvalidID,
	roledomain.ErrPermissionUnknown,
	permissiondomain.ErrActionRequired,
	permissiondomain.ErrResourceRequired,
	permissiondomain.ErrInvalidID,
	clientdomain.ErrNameRequired,
	clientdomain.ErrInvalidID,
	clientdomain.ErrSubjectUnknown,
	subject.ErrNameRequired,
	subject.ErrInvalidID,
	property.ErrAddressRequired,
	property.ErrClientUnknown,
	property.ErrInvalidID,
	servicetype.ErrNameRequired,
	servicetype.ErrInvalidID,
	workdomain.ErrDescriptionRequired,
	workdomain.ErrClientUnknown,
	workdomain.ErrPropertyUnknown,
	workdomain.ErrInvalidID,
	servicedomain.ErrClientUnknown,
	servicedomain.ErrServiceTypeUnknown,
	servicedomain.ErrInvalidID,
	paymentdomain.ErrAmountRequired,
	paymentdomain.ErrInvalidStatus,
	paymentdomain.ErrInvalidID,
	paymentdomain.ErrInvalidTarget,
	paymentdomain.ErrTargetUnknown,
}

var notFoundErrs = []error{
	userdomain.ErrNotFound,
	roledomain.ErrNotFound,
	permissiondomain.ErrNotFound,
	clientdomain.ErrNotFound,
	subject.ErrNotFound,
	property.ErrNotFound,
	servicetype.ErrNotFound,
	workdomain.ErrNotFound,
	servicedomain.ErrNotFound,
	paymentdomain.ErrNotFound,
}

var conflictErrs = []error{
	roledomain.ErrInUse,
	clientdomain.ErrInUse,
	servicetype.ErrInUse,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrMissingCredential),
		errors.Is(err, authdomain.ErrUnauthenticated),
		errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()

	case errors.Is(err, authdomain.ErrInvalidToken),
		errors.Is(err, authdomain.ErrUserInactiveOrMissing),
		errors.Is(err, ErrRoleNotFound),
		errors.Is(err, ErrRoleNotAuthorized),
		errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden, err.Error()

	case isAny(err, badRequestErrs):
		return http.StatusBadRequest, err.Error()

	case isAny(err, notFoundErrs):
		return http.StatusNotFound, err.Error()

	case isAny(err, conflictErrs):
		return http.StatusConflict, err.Error()

	case db.IsDuplicateKeyErr(err):
		if field := db.DuplicateKeyField(err); field != "" {
			return http.StatusConflict, "a record with this " + field + " already exists"
		}
		return http.StatusConflict, "record already exists"
	}

	return http.StatusInternalServerError, "internal server error"
}
