package payment

import (
	"github.com/energoledger/energoledger/internal/payment/repository"
	"github.com/energoledger/energoledger/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
