package server

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	authdomain "github.com/energoledger/energoledger/internal/auth/domain"
	clientdomain "github.com/energoledger/energoledger/internal/client/domain"
	"github.com/energoledger/energoledger/internal/config"
	"github.com/energoledger/energoledger/internal/metrics"
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

type Params struct {
	fx.In

	Cfg config.Config
	Log *zap.Logger

	Auth         authdomain.Service
	Users        userdomain.Service
	Roles        roledomain.Service
	Permissions  permissiondomain.Service
	Clients      clientdomain.Service
	Subjects     subject.Service
	Properties   property.Service
	ServiceTypes servicetype.Service
	Services     servicedomain.Manager
	Works        workdomain.Service
	Payments     paymentdomain.Service

	Metrics *metrics.Metrics `optional:"true"`
}

type Server struct {
	cfg config.Config
	log *zap.Logger

	auth         authdomain.Service
	users        userdomain.Service
	roles        roledomain.Service
	permissions  permissiondomain.Service
	clients      clientdomain.Service
	subjects     subject.Service
	properties   property.Service
	serviceTypes servicetype.Service
	services     servicedomain.Manager
	works        workdomain.Service
	payments     paymentdomain.Service

	metrics *metrics.Metrics
}

func New(p Params) *Server {
	return &Server{
		cfg:          p.Cfg,
		log:          p.Log.Named("server"),
		auth:         p.Auth,
		users:        p.Users,
		roles:        p.Roles,
		permissions:  p.Permissions,
		clients:      p.Clients,
		subjects:     p.Subjects,
		properties:   p.Properties,
		serviceTypes: p.ServiceTypes,
		services:     p.Services,
		works:        p.Works,
		payments:     p.Payments,
		metrics:      p.Metrics,
	}
}

// Engine assembles the gin engine with the middleware stack and all routes.
func (s *Server) Engine() *gin.Engine {
	if s.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(RequestLogger(s.log))
	if s.metrics != nil {
		engine.Use(metrics.GinMiddleware(s.metrics))
	}
	engine.Use(ErrorHandlingMiddleware(s.log))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": s.cfg.AppName,
			"version": s.cfg.AppVersion,
		})
	})
	if s.metrics != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))
	}

	s.registerRoutes(engine)
	return engine
}

func registerHooks(lc fx.Lifecycle, s *Server, log *zap.Logger, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: s.Engine(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Module("server",
	fx.Provide(New),
	fx.Invoke(registerHooks),
)
