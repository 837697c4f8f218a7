package identity

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// AdminRole is the role name that bypasses fine-grained permission checks.
const AdminRole = "Admin"

// Identity is the request-scoped caller description populated by the
// authenticate middleware. It is the sole channel through which handlers
// learn who is calling.
type Identity struct {
	UserID      snowflake.ID `json:"user_id"`
	Email       string       `json:"email"`
	RoleID      snowflake.ID `json:"role_id"`
	RoleName    string       `json:"role_name"`
	Permissions []Permission `json:"permissions"`
}

func (id Identity) IsAdmin() bool {
	return strings.EqualFold(id.RoleName, AdminRole)
}

// Allows reports whether the identity may perform the given permission.
// An Admin-named role is always authorized.
func (id Identity) Allows(p Permission) bool {
	if id.IsAdmin() {
		return true
	}
	for _, held := range id.Permissions {
		if held.Equal(p) {
			return true
		}
	}
	return false
}

// CacheKey is the cache key under which an identity snapshot is stored.
func CacheKey(userID snowflake.ID) string {
	return "identity:" + userID.String()
}

type contextKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

func FromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}
