package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePermission(t *testing.T) {
	p, err := ParsePermission("create:client")
	require.NoError(t, err)
	assert.Equal(t, Permission{Action: "create", Resource: "client"}, p)

	p, err = ParsePermission("  READ : Work ")
	require.NoError(t, err)
	assert.Equal(t, Permission{Action: "READ", Resource: "Work"}, p)
}

func TestParsePermissionRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "create", ":client", "create:", " : "} {
		_, err := ParsePermission(raw)
		assert.ErrorIs(t, err, ErrInvalidPermission, "raw=%q", raw)
	}
}

func TestPermissionEqualIsCaseInsensitive(t *testing.T) {
	a := Permission{Action: "CREATE", Resource: "CLIENT"}
	b := Permission{Action: "create", Resource: "client"}
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(Permission{Action: "create", Resource: "work"}))
}

func TestPermissionNormalize(t *testing.T) {
	p := Permission{Action: " create ", Resource: " client "}
	assert.Equal(t, Permission{Action: "CREATE", Resource: "CLIENT"}, p.Normalize())
	assert.Equal(t, "create:client", p.Normalize().String())
}

func TestIdentityAllows(t *testing.T) {
	id := Identity{
		RoleName: "Operator",
		Permissions: []Permission{
			{Action: "READ", Resource: "WORK"},
		},
	}
	assert.True(t, id.Allows(Permission{Action: "read", Resource: "work"}))
	assert.False(t, id.Allows(Permission{Action: "delete", Resource: "work"}))
}

func TestAdminBypassesPermissionCheck(t *testing.T) {
	id := Identity{RoleName: "admin"}
	assert.True(t, id.IsAdmin())
	assert.True(t, id.Allows(Permission{Action: "delete", Resource: "payment"}))
}

func TestIdentityContextRoundTrip(t *testing.T) {
	id := Identity{UserID: 42, Email: "ops@example.com", RoleName: "Manager"}
	ctx := WithIdentity(t.Context(), id)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = FromContext(t.Context())
	assert.False(t, ok)
}
