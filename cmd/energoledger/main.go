package main

import (
	"hash/fnv"
	"os"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/energoledger/energoledger/internal/auth"
	"github.com/energoledger/energoledger/internal/cache"
	"github.com/energoledger/energoledger/internal/client"
	"github.com/energoledger/energoledger/internal/config"
	"github.com/energoledger/energoledger/internal/logger"
	"github.com/energoledger/energoledger/internal/metrics"
	"github.com/energoledger/energoledger/internal/migration"
	"github.com/energoledger/energoledger/internal/payment"
	"github.com/energoledger/energoledger/internal/permission"
	"github.com/energoledger/energoledger/internal/property"
	"github.com/energoledger/energoledger/internal/reconcile"
	"github.com/energoledger/energoledger/internal/role"
	"github.com/energoledger/energoledger/internal/seed"
	"github.com/energoledger/energoledger/internal/server"
	"github.com/energoledger/energoledger/internal/service"
	"github.com/energoledger/energoledger/internal/servicetype"
	"github.com/energoledger/energoledger/internal/subject"
	"github.com/energoledger/energoledger/internal/token"
	"github.com/energoledger/energoledger/internal/user"
	"github.com/energoledger/energoledger/internal/work"
	"github.com/energoledger/energoledger/pkg/db"
)

// newSnowflake derives the node id from the hostname so replicas do not
// mint colliding ids.
func newSnowflake() (*snowflake.Node, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "energoledger"
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(hostname))
	return snowflake.NewNode(int64(h.Sum32() % 1024))
}

func main() {
	fx.New(
		config.Module,
		logger.Module,
		fx.Provide(newSnowflake),
		db.Module,
		cache.Module,
		metrics.Module,
		token.Module,

		migration.Module,
		seed.Module,

		reconcile.Module,
		permission.Module,
		role.Module,
		user.Module,
		auth.Module,
		client.Module,
		subject.Module,
		property.Module,
		servicetype.Module,
		service.Module,
		work.Module,
		payment.Module,

		server.Module,
	).Run()
}
