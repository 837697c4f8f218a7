package service

import (
	"github.com/energoledger/energoledger/internal/service/repository"
	svc "github.com/energoledger/energoledger/internal/service/service"
	"go.uber.org/fx"
)

var Module = fx.Module("service.service",
	fx.Provide(repository.Provide),
	fx.Provide(svc.New),
)
