package permission

import (
	"github.com/energoledger/energoledger/internal/permission/repository"
	"github.com/energoledger/energoledger/internal/permission/service"
	"go.uber.org/fx"
)

var Module = fx.Module("permission.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
