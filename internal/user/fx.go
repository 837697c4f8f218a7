package user

import (
	"github.com/energoledger/energoledger/internal/user/repository"
	"github.com/energoledger/energoledger/internal/user/service"
	"go.uber.org/fx"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
