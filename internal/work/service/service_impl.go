package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/reconcile"
	"github.com/energoledger/energoledger/internal/work/domain"
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

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("work.service"),
		genID:  p.GenID,
		repo:   p.Repo,
		engine: p.Engine,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateWorkRequest) (domain.Work, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return domain.Work{}, domain.ErrDescriptionRequired
	}

	clientID, err := s.resolveClient(ctx, req.ClientID)
	if err != nil {
		return domain.Work{}, err
	}
	propertyID, err := s.resolveProperty(ctx, req.PropertyID)
	if err != nil {
		return domain.Work{}, err
	}

	now := time.Now().UTC()
	work := domain.Work{
		ID:            s.genID.Generate(),
		ClientID:      clientID,
		PropertyID:    propertyID,
		Description:   description,
		Amount:        req.Amount,
		PaymentStatus: reconcile.DeriveStatus(req.Amount, nil),
		StartedAt:     req.StartedAt,
		CompletedAt:   req.CompletedAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repo.Insert(ctx, s.db, &work); err != nil {
		return domain.Work{}, err
	}
	return work, nil
}

func (s *Service) List(ctx context.Context, req domain.ListWorkRequest) (domain.ListWorkResponse, error) {
	req.Page = req.Page.Normalize()

	items, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return domain.ListWorkResponse{}, err
	}

	resp := domain.ListWorkResponse{Items: items}
	resp.Page = req.Page.Page
	resp.PageSize = req.Page.PageSize
	resp.Total = total
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Work, error) {
	work, err := s.load(ctx, id)
	if err != nil {
		return domain.Work{}, err
	}
	return *work, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateWorkRequest) (domain.Work, error) {
	work, err := s.load(ctx, id)
	if err != nil {
		return domain.Work{}, err
	}

	amountChanged := false
	if req.ClientID != nil {
		clientID, err := s.resolveClient(ctx, *req.ClientID)
		if err != nil {
			return domain.Work{}, err
		}
		work.ClientID = clientID
	}
	if req.PropertyID != nil {
		propertyID, err := s.resolveProperty(ctx, req.PropertyID)
		if err != nil {
			return domain.Work{}, err
		}
		work.PropertyID = propertyID
	}
	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		if description == "" {
			return domain.Work{}, domain.ErrDescriptionRequired
		}
		work.Description = description
	}
	if req.AmountSet {
		work.Amount = req.Amount
		amountChanged = true
	}
	if req.StartedAt != nil {
		work.StartedAt = req.StartedAt
	}
	if req.CompletedAt != nil {
		work.CompletedAt = req.CompletedAt
	}
	work.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, work); err != nil {
		return domain.Work{}, err
	}

	if amountChanged {
		s.engine.Recompute(ctx, reconcile.WorkTarget(work.ID))
		if fresh, err := s.repo.FindByID(ctx, s.db, work.ID); err == nil && fresh != nil {
			work = fresh
		}
	}
	return *work, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	work, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, work.ID)
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

func (s *Service) resolveProperty(ctx context.Context, raw *string) (*snowflake.ID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	propertyID, err := snowflake.ParseString(strings.TrimSpace(*raw))
	if err != nil || propertyID == 0 {
		return nil, domain.ErrPropertyUnknown
	}
	exists, err := s.repo.PropertyExists(ctx, s.db, propertyID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrPropertyUnknown
	}
	return &propertyID, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Work, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}
	work, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if work == nil {
		return nil, domain.ErrNotFound
	}
	return work, nil
}
