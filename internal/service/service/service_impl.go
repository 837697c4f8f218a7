package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/reconcile"
	"github.com/energoledger/energoledger/internal/service/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Repo   domain.Repository
	Engine reconcile.Engine
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	repo   domain.Repository
	engine reconcile.Engine
}

func New(p Params) domain.Manager {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("service.service"),
		genID:  p.GenID,
		repo:   p.Repo,
		engine: p.Engine,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateServiceRequest) (domain.Service, error) {
	clientID, err := s.resolveClient(ctx, req.ClientID)
	if err != nil {
		return domain.Service{}, err
	}
	serviceTypeID, err := s.resolveServiceType(ctx, req.ServiceTypeID)
	if err != nil {
		return domain.Service{}, err
	}

	now := time.Now().UTC()
	svc := domain.Service{
		ID:            s.genID.Generate(),
		ClientID:      clientID,
		ServiceTypeID: serviceTypeID,
		Description:   strings.TrimSpace(req.Description),
		Amount:        req.Amount,
		PaymentStatus: reconcile.DeriveStatus(req.Amount, nil),
		PerformedAt:   req.PerformedAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Insert(ctx, s.db, &svc); err != nil {
		return domain.Service{}, err
	}
	return svc, nil
}

func (s *Service) List(ctx context.Context, req domain.ListServiceRequest) (domain.ListServiceResponse, error) {
	req.Page = req.Page.Normalize()

	items, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return domain.ListServiceResponse{}, err
	}

	resp := domain.ListServiceResponse{Items: items}
	resp.Page = req.Page.Page
	resp.PageSize = req.Page.PageSize
	resp.Total = total
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Service, error) {
	svc, err := s.load(ctx, id)
	if err != nil {
		return domain.Service{}, err
	}
	return *svc, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateServiceRequest) (domain.Service, error) {
	svc, err := s.load(ctx, id)
	if err != nil {
		return domain.Service{}, err
	}

	amountChanged := false
	if req.ClientID != nil {
		clientID, err := s.resolveClient(ctx, *req.ClientID)
		if err != nil {
			return domain.Service{}, err
		}
		svc.ClientID = clientID
	}
	if req.ServiceTypeID != nil {
		serviceTypeID, err := s.resolveServiceType(ctx, *req.ServiceTypeID)
		if err != nil {
			return domain.Service{}, err
		}
		svc.ServiceTypeID = serviceTypeID
	}
	if req.Description != nil {
		svc.Description = strings.TrimSpace(*req.Description)
	}
	if req.AmountSet {
		svc.Amount = req.Amount
		amountChanged = true
	}
	if req.PerformedAt != nil {
		svc.PerformedAt = req.PerformedAt
	}
	svc.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, svc); err != nil {
		return domain.Service{}, err
	}

	if amountChanged {
		s.engine.Recompute(ctx, reconcile.ServiceTarget(svc.ID))
		if fresh, err := s.repo.FindByID(ctx, s.db, svc.ID); err == nil && fresh != nil {
			svc = fresh
		}
	}
	return *svc, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	svc, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, svc.ID)
}

func (s *Service) resolveClient(ctx context.Context, raw string) (snowflake.ID, error) {
	clientID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || clientID == 0 {
		return 0, domain.ErrClientUnknown
	}
	exists, err := s.repo.ClientExists(ctx, s.db, clientID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.ErrClientUnknown
	}
	return clientID, nil
}

func (s *Service) resolveServiceType(ctx context.Context, raw string) (snowflake.ID, error) {
	serviceTypeID, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil || serviceTypeID == 0 {
		return 0, domain.ErrServiceTypeUnknown
	}
	exists, err := s.repo.ServiceTypeExists(ctx, s.db, serviceTypeID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, domain.ErrServiceTypeUnknown
	}
	return serviceTypeID, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Service, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}
	svc, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, domain.ErrNotFound
	}
	return svc, nil
}
