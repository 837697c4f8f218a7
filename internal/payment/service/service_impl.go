package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/payment/domain"
	"github.com/energoledger/energoledger/internal/reconcile"
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
		log:    p.Log.Named("payment.service"),
		genID:  p.GenID,
		repo:   p.Repo,
		engine: p.Engine,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePaymentRequest) (domain.PaymentDetail, error) {
	if req.Amount <= 0 {
		return domain.PaymentDetail{}, domain.ErrAmountRequired
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = domain.StatusPending
	}
	if !domain.ValidStatus(status) {
		return domain.PaymentDetail{}, domain.ErrInvalidStatus
	}

	targets, err := s.resolveTargets(ctx, req.Targets)
	if err != nil {
		return domain.PaymentDetail{}, err
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		ID:        s.genID.Generate(),
		Amount:    req.Amount,
		IsRefund:  req.IsRefund,
		Status:    status,
		Method:    strings.TrimSpace(req.Method),
		Comment:   strings.TrimSpace(req.Comment),
		PaidAt:    req.PaidAt,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Insert(ctx, tx, &payment); err != nil {
			return err
		}
		if len(targets) > 0 {
			return s.repo.InsertLinks(ctx, tx, payment.ID, targets)
		}
		return nil
	})
	if err != nil {
		return domain.PaymentDetail{}, err
	}

	s.engine.RecomputeMany(ctx, targets)
	return domain.PaymentDetail{Payment: payment, Targets: targets}, nil
}

func (s *Service) List(ctx context.Context, req domain.ListPaymentRequest) (domain.ListPaymentResponse, error) {
	req.Status = strings.ToUpper(strings.TrimSpace(req.Status))
	req.Page = req.Page.Normalize()

	items, total, err := s.repo.List(ctx, s.db, req)
	if err != nil {
		return domain.ListPaymentResponse{}, err
	}

	resp := domain.ListPaymentResponse{Items: items}
	resp.Page = req.Page.Page
	resp.PageSize = req.Page.PageSize
	resp.Total = total
	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.PaymentDetail, error) {
	payment, err := s.load(ctx, id)
	if err != nil {
		return domain.PaymentDetail{}, err
	}
	return s.detail(ctx, payment)
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdatePaymentRequest) (domain.PaymentDetail, error) {
	payment, err := s.load(ctx, id)
	if err != nil {
		return domain.PaymentDetail{}, err
	}

	if req.Amount != nil {
		if *req.Amount <= 0 {
			return domain.PaymentDetail{}, domain.ErrAmountRequired
		}
		payment.Amount = *req.Amount
	}
	if req.IsRefund != nil {
		payment.IsRefund = *req.IsRefund
	}
	if req.Status != nil {
		status := strings.ToUpper(strings.TrimSpace(*req.Status))
		if !domain.ValidStatus(status) {
			return domain.PaymentDetail{}, domain.ErrInvalidStatus
		}
		payment.Status = status
	}
	if req.Method != nil {
		payment.Method = strings.TrimSpace(*req.Method)
	}
	if req.Comment != nil {
		payment.Comment = strings.TrimSpace(*req.Comment)
	}
	if req.PaidAt != nil {
		payment.PaidAt = req.PaidAt
	}
	payment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, payment); err != nil {
		return domain.PaymentDetail{}, err
	}

	targets, err := s.repo.Links(ctx, s.db, payment.ID)
	if err != nil {
		return domain.PaymentDetail{}, err
	}
	s.engine.RecomputeMany(ctx, targets)
	return domain.PaymentDetail{Payment: *payment, Targets: targets}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	payment, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	targets, err := s.repo.Links(ctx, s.db, payment.ID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, s.db, payment.ID); err != nil {
		return err
	}
	s.engine.RecomputeMany(ctx, targets)
	return nil
}

func (s *Service) Link(ctx context.Context, id string, refs []domain.TargetRef) (domain.PaymentDetail, error) {
	payment, err := s.load(ctx, id)
	if err != nil {
		return domain.PaymentDetail{}, err
	}

	targets, err := s.resolveTargets(ctx, refs)
	if err != nil {
		return domain.PaymentDetail{}, err
	}
	if err := s.repo.InsertLinks(ctx, s.db, payment.ID, targets); err != nil {
		return domain.PaymentDetail{}, err
	}

	s.engine.RecomputeMany(ctx, targets)
	return s.detail(ctx, payment)
}

func (s *Service) Unlink(ctx context.Context, id string, refs []domain.TargetRef) (domain.PaymentDetail, error) {
	payment, err := s.load(ctx, id)
	if err != nil {
		return domain.PaymentDetail{}, err
	}

	targets, err := s.parseTargets(refs)
	if err != nil {
		return domain.PaymentDetail{}, err
	}
	if err := s.engine.UnlinkPayment(ctx, payment.ID, targets); err != nil {
		return domain.PaymentDetail{}, err
	}

	s.engine.RecomputeMany(ctx, targets)
	return s.detail(ctx, payment)
}

func (s *Service) detail(ctx context.Context, payment *domain.Payment) (domain.PaymentDetail, error) {
	targets, err := s.repo.Links(ctx, s.db, payment.ID)
	if err != nil {
		return domain.PaymentDetail{}, err
	}
	return domain.PaymentDetail{Payment: *payment, Targets: targets}, nil
}

func (s *Service) parseTargets(refs []domain.TargetRef) ([]reconcile.Target, error) {
	targets := make([]reconcile.Target, 0, len(refs))
	seen := make(map[reconcile.Target]struct{}, len(refs))
	for _, ref := range refs {
		kind := reconcile.Kind(strings.ToLower(strings.TrimSpace(ref.Kind)))
		if kind != reconcile.KindWork && kind != reconcile.KindService {
			return nil, domain.ErrInvalidTarget
		}
		id, err := snowflake.ParseString(strings.TrimSpace(ref.ID))
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidTarget
		}
		target := reconcile.Target{Kind: kind, ID: id}
		if _, ok := seen[target]; ok {
			continue
		}
		seen[target] = struct{}{}
		targets = append(targets, target)
	}
	return targets, nil
}

func (s *Service) resolveTargets(ctx context.Context, refs []domain.TargetRef) ([]reconcile.Target, error) {
	targets, err := s.parseTargets(refs)
	if err != nil {
		return nil, err
	}
	for _, target := range targets {
		exists, err := s.repo.TargetExists(ctx, s.db, target)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, domain.ErrTargetUnknown
		}
	}
	return targets, nil
}

func (s *Service) load(ctx context.Context, id string) (*domain.Payment, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || parsed == 0 {
		return nil, domain.ErrInvalidID
	}
	payment, err := s.repo.FindByID(ctx, s.db, parsed)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, domain.ErrNotFound
	}
	return payment, nil
}
