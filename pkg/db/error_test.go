package db

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsDuplicateKeyErr(t *testing.T) {
	assert.False(t, IsDuplicateKeyErr(nil))
	assert.False(t, IsDuplicateKeyErr(errors.New("connection refused")))

	assert.True(t, IsDuplicateKeyErr(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyErr(errors.New(
		`ERROR: duplicate key value violates unique constraint "ux_users_email" (SQLSTATE 23505)`)))
	assert.True(t, IsDuplicateKeyErr(errors.New(
		`Error 1062 (23000): Duplicate entry 'x@y.z' for key 'users.ux_users_email'`)))
	assert.True(t, IsDuplicateKeyErr(errors.New(
		`UNIQUE constraint failed: users.email`)))
}

func TestDuplicateKeyField(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "postgres",
			err:  errors.New(`ERROR: duplicate key value violates unique constraint "ux_users_email" (SQLSTATE 23505)`),
			want: "email",
		},
		{
			name: "postgres composite",
			err:  errors.New(`ERROR: duplicate key value violates unique constraint "ux_permissions_action_resource"`),
			want: "action_resource",
		},
		{
			name: "sqlite",
			err:  errors.New(`UNIQUE constraint failed: users.email`),
			want: "email",
		},
		{
			name: "mysql",
			err:  errors.New(`Error 1062 (23000): Duplicate entry 'x@y.z' for key 'users.ux_users_email'`),
			want: "email",
		},
		{
			name: "unknown shape",
			err:  errors.New("something else entirely"),
			want: "",
		},
		{
			name: "nil",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DuplicateKeyField(tt.err))
		})
	}
}
