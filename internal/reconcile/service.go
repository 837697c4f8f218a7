package reconcile

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/energoledger/energoledger/internal/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Engine recomputes derived payment statuses. Recompute and RecomputeMany
// run as best-effort post-mutation hooks: they log failures and return
// normally so the primary mutation's response is never affected. They run
// outside the mutation's transaction; concurrent recomputes for the same
// target may interleave and the last write wins.
type Engine interface {
	Recompute(ctx context.Context, target Target)
	RecomputeMany(ctx context.Context, targets []Target)
	UnlinkPayment(ctx context.Context, paymentID snowflake.ID, targets []Target) error
}

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    Repository
	Metrics *metrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    Repository
	metrics *metrics.Metrics
}

func New(p Params) Engine {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("reconcile"),
		repo:    p.Repo,
		metrics: p.Metrics,
	}
}

func (s *Service) Recompute(ctx context.Context, target Target) {
	if err := s.recompute(ctx, target); err != nil {
		if s.metrics != nil {
			s.metrics.ReconcileFails.Inc()
		}
		s.log.Error("payment status recompute failed",
			zap.String("kind", string(target.Kind)),
			zap.String("id", target.ID.String()),
			zap.Error(err),
		)
	}
}

func (s *Service) recompute(ctx context.Context, target Target) error {
	if s.metrics != nil {
		s.metrics.ReconcileRuns.WithLabelValues(string(target.Kind)).Inc()
	}

	state, err := s.repo.FindTarget(ctx, s.db, target)
	if err != nil {
		return err
	}
	if state == nil {
		// The target was deleted between the mutation and this hook.
		if s.metrics != nil {
			s.metrics.ReconcileSkips.Inc()
		}
		s.log.Warn("recompute target missing",
			zap.String("kind", string(target.Kind)),
			zap.String("id", target.ID.String()),
		)
		return nil
	}

	payments, err := s.repo.LinkedPayments(ctx, s.db, target)
	if err != nil {
		return err
	}

	next := DeriveStatus(state.Amount, payments)
	if next == state.Status {
		return nil
	}
	return s.repo.UpdateStatus(ctx, s.db, target, next)
}

// RecomputeMany expands each target to everything it is transitively linked
// to through shared payments, then recomputes the deduplicated union
// sequentially in collection order.
func (s *Service) RecomputeMany(ctx context.Context, targets []Target) {
	seen := make(map[Target]struct{}, len(targets))
	order := make([]Target, 0, len(targets))
	add := func(t Target) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		order = append(order, t)
	}

	for _, target := range targets {
		add(target)
		paymentIDs, err := s.repo.PaymentIDs(ctx, s.db, target)
		if err != nil {
			s.log.Error("recompute expansion failed",
				zap.String("kind", string(target.Kind)),
				zap.String("id", target.ID.String()),
				zap.Error(err),
			)
			continue
		}
		for _, paymentID := range paymentIDs {
			linked, err := s.repo.TargetsForPayment(ctx, s.db, paymentID)
			if err != nil {
				s.log.Error("recompute expansion failed",
					zap.String("payment_id", paymentID.String()),
					zap.Error(err),
				)
				continue
			}
			for _, t := range linked {
				add(t)
			}
		}
	}

	for _, target := range order {
		s.Recompute(ctx, target)
	}
}

// UnlinkPayment removes the join rows between a payment and the given
// targets. It deliberately does not recompute; callers recompute the
// affected targets afterwards.
func (s *Service) UnlinkPayment(ctx context.Context, paymentID snowflake.ID, targets []Target) error {
	return s.repo.DeleteLinks(ctx, s.db, paymentID, targets)
}
