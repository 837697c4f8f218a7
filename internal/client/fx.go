package client

import (
	"github.com/energoledger/energoledger/internal/client/repository"
	"github.com/energoledger/energoledger/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
