package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/energoledger/energoledger/internal/auth/password"
	"github.com/energoledger/energoledger/internal/config"
	"github.com/energoledger/energoledger/internal/identity"
	permissiondomain "github.com/energoledger/energoledger/internal/permission/domain"
	roledomain "github.com/energoledger/energoledger/internal/role/domain"
	userdomain "github.com/energoledger/energoledger/internal/user/domain"
)

var resources = []string{
	"USER", "ROLE", "PERMISSION",
	"CLIENT", "SUBJECT", "PROPERTY",
	"SERVICE_TYPE", "SERVICE", "WORK", "PAYMENT",
}

var actions = []string{"CREATE", "READ", "UPDATE", "DELETE"}

// rolePermissions maps each seeded role to the permissions it starts with,
// in "action:resource" form. Admin bypasses permission checks by role name,
// so it carries none.
var rolePermissions = map[string][]string{
	identity.AdminRole: nil,
	"Manager": {
		"create:client", "read:client", "update:client", "delete:client",
		"create:subject", "read:subject", "update:subject", "delete:subject",
		"create:property", "read:property", "update:property", "delete:property",
		"create:service_type", "read:service_type", "update:service_type", "delete:service_type",
		"create:service", "read:service", "update:service", "delete:service",
		"create:work", "read:work", "update:work", "delete:work",
		"create:payment", "read:payment", "update:payment", "delete:payment",
	},
	"Operator": {
		"read:client", "read:subject", "read:property",
		"read:service_type", "read:service", "read:work",
		"create:service", "update:service",
		"create:work", "update:work",
	},
}

type Params struct {
	fx.In

	Cfg   config.Config
	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

// Run inserts the default permission matrix, the Admin, Manager and
// Operator roles, and the bootstrap admin user. It is idempotent.
func Run(p Params) error {
	ctx := context.Background()
	log := p.Log.Named("seed")

	permsByKey, err := ensurePermissions(ctx, p.DB, p.GenID)
	if err != nil {
		return err
	}
	rolesByName, err := ensureRoles(ctx, p.DB, p.GenID, permsByKey)
	if err != nil {
		return err
	}
	if err := ensureAdminUser(ctx, p.Cfg, p.DB, p.GenID, rolesByName, log); err != nil {
		return err
	}

	log.Info("seed complete")
	return nil
}

func ensurePermissions(ctx context.Context, db *gorm.DB, genID *snowflake.Node) (map[string]permissiondomain.Permission, error) {
	byKey := make(map[string]permissiondomain.Permission, len(resources)*len(actions))
	for _, resource := range resources {
		for _, action := range actions {
			var existing permissiondomain.Permission
			err := db.WithContext(ctx).
				First(&existing, "action = ? AND resource = ?", action, resource).Error
			if err == nil {
				byKey[strings.ToLower(action+":"+resource)] = existing
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}

			now := time.Now().UTC()
			created := permissiondomain.Permission{
				ID:        genID.Generate(),
				Action:    action,
				Resource:  resource,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := db.WithContext(ctx).Create(&created).Error; err != nil {
				return nil, err
			}
			byKey[strings.ToLower(action+":"+resource)] = created
		}
	}
	return byKey, nil
}

func ensureRoles(ctx context.Context, db *gorm.DB, genID *snowflake.Node, permsByKey map[string]permissiondomain.Permission) (map[string]roledomain.Role, error) {
	byName := make(map[string]roledomain.Role, len(rolePermissions))
	for name, grants := range rolePermissions {
		var role roledomain.Role
		err := db.WithContext(ctx).First(&role, "name = ?", name).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			now := time.Now().UTC()
			role = roledomain.Role{
				ID:        genID.Generate(),
				Name:      name,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := db.WithContext(ctx).Omit("Permissions").Create(&role).Error; err != nil {
				return nil, err
			}
			for _, grant := range grants {
				perm, ok := permsByKey[strings.ToLower(grant)]
				if !ok {
					continue
				}
				err := db.WithContext(ctx).Exec(
					`INSERT INTO role_permissions (role_id, permission_id) VALUES (?, ?)`,
					role.ID, perm.ID,
				).Error
				if err != nil {
					return nil, err
				}
			}
		} else if err != nil {
			return nil, err
		}
		byName[name] = role
	}
	return byName, nil
}

func ensureAdminUser(ctx context.Context, cfg config.Config, db *gorm.DB, genID *snowflake.Node, rolesByName map[string]roledomain.Role, log *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Info("no admin credentials configured, skipping admin user")
		return nil
	}

	email := strings.ToLower(cfg.AdminEmail)
	var existing userdomain.User
	err := db.WithContext(ctx).First(&existing, "email = ?", email).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := password.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := userdomain.User{
		ID:           genID.Generate(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Admin",
		RoleID:       rolesByName[identity.AdminRole].ID,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.WithContext(ctx).Omit("Role").Create(&admin).Error; err != nil {
		return err
	}

	log.Info("admin user created", zap.String("email", email))
	return nil
}

var Module = fx.Module("seed",
	fx.Invoke(Run),
)
