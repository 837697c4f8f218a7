package work

import (
	"github.com/energoledger/energoledger/internal/work/repository"
	"github.com/energoledger/energoledger/internal/work/service"
	"go.uber.org/fx"
)

var Module = fx.Module("work.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
