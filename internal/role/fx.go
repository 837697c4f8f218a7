package role

import (
	"github.com/energoledger/energoledger/internal/role/repository"
	"github.com/energoledger/energoledger/internal/role/service"
	"go.uber.org/fx"
)

var Module = fx.Module("role.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
