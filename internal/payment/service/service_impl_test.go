package service_test

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/energoledger/energoledger/internal/migration"
	"github.com/energoledger/energoledger/internal/payment/domain"
	"github.com/energoledger/energoledger/internal/payment/repository"
	"github.com/energoledger/energoledger/internal/payment/service"
	"github.com/energoledger/energoledger/internal/reconcile"
	workdomain "github.com/energoledger/energoledger/internal/work/domain"
)

func newFixture(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(migration.Models...))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	engine := reconcile.New(reconcile.Params{
		DB:   conn,
		Log:  zap.NewNop(),
		Repo: reconcile.ProvideRepository(),
	})
	svc := service.New(service.Params{
		DB:     conn,
		Log:    zap.NewNop(),
		GenID:  node,
		Repo:   repository.Provide(),
		Engine: engine,
	})
	return svc, conn
}

func createWork(t *testing.T, conn *gorm.DB, id int64, amount int64) workdomain.Work {
	t.Helper()
	work := workdomain.Work{
		ID:            snowflake.ID(id),
		ClientID:      snowflake.ID(1),
		Description:   "boiler maintenance",
		Amount:        &amount,
		PaymentStatus: reconcile.StatusPending,
	}
	require.NoError(t, conn.Create(&work).Error)
	return work
}

func workStatus(t *testing.T, conn *gorm.DB, id snowflake.ID) reconcile.Status {
	t.Helper()
	var work workdomain.Work
	require.NoError(t, conn.First(&work, "id = ?", id).Error)
	return work.PaymentStatus
}

func TestCreatePaymentReconcilesLinkedWork(t *testing.T) {
	svc, conn := newFixture(t)
	ctx := context.Background()
	work := createWork(t, conn, 1, 5000)

	detail, err := svc.Create(ctx, domain.CreatePaymentRequest{
		Amount: 5000,
		Status: domain.StatusCompleted,
		Targets: []domain.TargetRef{
			{Kind: "work", ID: work.ID.String()},
		},
	})
	require.NoError(t, err)
	assert.Len(t, detail.Targets, 1)
	assert.Equal(t, reconcile.StatusPaid, workStatus(t, conn, work.ID))
}

func TestCreatePaymentRejectsUnknownTarget(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.Create(context.Background(), domain.CreatePaymentRequest{
		Amount: 1000,
		Status: domain.StatusCompleted,
		Targets: []domain.TargetRef{
			{Kind: "work", ID: "12345"},
		},
	})
	assert.ErrorIs(t, err, domain.ErrTargetUnknown)
}

func TestCreatePaymentValidation(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreatePaymentRequest{Amount: 0})
	assert.ErrorIs(t, err, domain.ErrAmountRequired)

	_, err = svc.Create(ctx, domain.CreatePaymentRequest{Amount: 100, Status: "SETTLED"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestUpdatePaymentStatusReconciles(t *testing.T) {
	svc, conn := newFixture(t)
	ctx := context.Background()
	work := createWork(t, conn, 1, 5000)

	detail, err := svc.Create(ctx, domain.CreatePaymentRequest{
		Amount: 5000,
		Status: domain.StatusCompleted,
		Targets: []domain.TargetRef{
			{Kind: "work", ID: work.ID.String()},
		},
	})
	require.NoError(t, err)
	require.Equal(t, reconcile.StatusPaid, workStatus(t, conn, work.ID))

	failed := domain.StatusFailed
	_, err = svc.Update(ctx, detail.ID.String(), domain.UpdatePaymentRequest{Status: &failed})
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusPending, workStatus(t, conn, work.ID))
}

func TestUnlinkPaymentReconciles(t *testing.T) {
	svc, conn := newFixture(t)
	ctx := context.Background()
	work := createWork(t, conn, 1, 5000)

	detail, err := svc.Create(ctx, domain.CreatePaymentRequest{
		Amount: 5000,
		Status: domain.StatusCompleted,
		Targets: []domain.TargetRef{
			{Kind: "work", ID: work.ID.String()},
		},
	})
	require.NoError(t, err)

	after, err := svc.Unlink(ctx, detail.ID.String(), []domain.TargetRef{
		{Kind: "work", ID: work.ID.String()},
	})
	require.NoError(t, err)
	assert.Empty(t, after.Targets)
	assert.Equal(t, reconcile.StatusPending, workStatus(t, conn, work.ID))
}

func TestDeletePaymentReconciles(t *testing.T) {
	svc, conn := newFixture(t)
	ctx := context.Background()
	work := createWork(t, conn, 1, 2000)

	detail, err := svc.Create(ctx, domain.CreatePaymentRequest{
		Amount: 2000,
		Status: domain.StatusCompleted,
		Targets: []domain.TargetRef{
			{Kind: "work", ID: work.ID.String()},
		},
	})
	require.NoError(t, err)
	require.Equal(t, reconcile.StatusPaid, workStatus(t, conn, work.ID))

	require.NoError(t, svc.Delete(ctx, detail.ID.String()))
	assert.Equal(t, reconcile.StatusPending, workStatus(t, conn, work.ID))

	_, err = svc.GetByID(ctx, detail.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLinkSharedPaymentReconcilesBothWorks(t *testing.T) {
	svc, conn := newFixture(t)
	ctx := context.Background()
	first := createWork(t, conn, 1, 1000)
	second := createWork(t, conn, 2, 1000)

	detail, err := svc.Create(ctx, domain.CreatePaymentRequest{
		Amount: 2000,
		Status: domain.StatusCompleted,
	})
	require.NoError(t, err)

	_, err = svc.Link(ctx, detail.ID.String(), []domain.TargetRef{
		{Kind: "work", ID: first.ID.String()},
		{Kind: "work", ID: second.ID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusPaid, workStatus(t, conn, first.ID))
	assert.Equal(t, reconcile.StatusPaid, workStatus(t, conn, second.ID))
}
