package migration

import (
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	clientdomain "github.com/energoledger/energoledger/internal/client/domain"
	"github.com/energoledger/energoledger/internal/config"
	paymentdomain "github.com/energoledger/energoledger/internal/payment/domain"
	permissiondomain "github.com/energoledger/energoledger/internal/permission/domain"
	"github.com/energoledger/energoledger/internal/property"
	roledomain "github.com/energoledger/energoledger/internal/role/domain"
	servicedomain "github.com/energoledger/energoledger/internal/service/domain"
	"github.com/energoledger/energoledger/internal/servicetype"
	"github.com/energoledger/energoledger/internal/subject"
	userdomain "github.com/energoledger/energoledger/internal/user/domain"
	workdomain "github.com/energoledger/energoledger/internal/work/domain"
)

// Models is every persisted type, in dependency order. Sqlite instances
// are AutoMigrated from it.
var Models = []any{
	&permissiondomain.Permission{},
	&roledomain.Role{},
	&userdomain.User{},
	&clientdomain.Client{},
	&subject.Subject{},
	&property.Property{},
	&servicetype.ServiceType{},
	&servicedomain.Service{},
	&workdomain.Work{},
	&paymentdomain.Payment{},
	&paymentdomain.WorkPayment{},
	&paymentdomain.ServicePayment{},
}

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Run applies pending schema migrations. Only the postgres dialect is
// migrated here; sqlite instances (tests, scratch setups) build their
// schema with AutoMigrate.
func Run(cfg config.Config, conn *gorm.DB, log *zap.Logger) error {
	if cfg.DBType == "sqlite" {
		log.Info("auto-migrating sqlite schema")
		return conn.AutoMigrate(Models...)
	}
	if cfg.DBType != "postgres" {
		log.Info("skipping migrations", zap.String("db_type", cfg.DBType))
		return nil
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return err
	}
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.DBName, driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	log.Info("migrations applied")
	return nil
}

var Module = fx.Module("migration",
	fx.Invoke(Run),
)
