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

	clientdomain "github.com/energoledger/energoledger/internal/client/domain"
	"github.com/energoledger/energoledger/internal/migration"
	paymentdomain "github.com/energoledger/energoledger/internal/payment/domain"
	"github.com/energoledger/energoledger/internal/reconcile"
	"github.com/energoledger/energoledger/internal/work/domain"
	"github.com/energoledger/energoledger/internal/work/repository"
	"github.com/energoledger/energoledger/internal/work/service"
)

func newFixture(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(migration.Models...))

	node, err := snowflake.NewNode(2)
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

func createClient(t *testing.T, conn *gorm.DB, id int64) clientdomain.Client {
	t.Helper()
	client := clientdomain.Client{ID: snowflake.ID(id), Name: "HOA Vostok"}
	require.NoError(t, conn.Omit("Subjects").Create(&client).Error)
	return client
}

func i64(v int64) *int64 { return &v }

func TestCreateWorkDerivesInitialStatus(t *testing.T) {
	svc, conn := newFixture(t)
	ctx := context.Background()
	client := createClient(t, conn, 1)

	withAmount, err := svc.Create(ctx, domain.CreateWorkRequest{
		ClientID:    client.ID.String(),
		Description: "roof repair",
		Amount:      i64(5000),
	})
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusPending, withAmount.PaymentStatus)

	withoutAmount, err := svc.Create(ctx, domain.CreateWorkRequest{
		ClientID:    client.ID.String(),
		Description: "inspection",
	})
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusNoAmount, withoutAmount.PaymentStatus)
}

func TestCreateWorkValidatesReferences(t *testing.T) {
	svc, conn := newFixture(t)
	ctx := context.Background()
	createClient(t, conn, 1)

	_, err := svc.Create(ctx, domain.CreateWorkRequest{
		ClientID:    "999",
		Description: "roof repair",
	})
	assert.ErrorIs(t, err, domain.ErrClientUnknown)

	_, err = svc.Create(ctx, domain.CreateWorkRequest{
		ClientID:    "1",
		Description: "",
	})
	assert.ErrorIs(t, err, domain.ErrDescriptionRequired)
}

func TestUpdateWorkAmountTriggersRecompute(t *testing.T) {
	svc, conn := newFixture(t)
	ctx := context.Background()
	client := createClient(t, conn, 1)

	work, err := svc.Create(ctx, domain.CreateWorkRequest{
		ClientID:    client.ID.String(),
		Description: "roof repair",
		Amount:      i64(5000),
	})
	require.NoError(t, err)

	payment := paymentdomain.Payment{
		ID:     snowflake.ID(100),
		Amount: 3000,
		Status: paymentdomain.StatusCompleted,
	}
	require.NoError(t, conn.Create(&payment).Error)
	require.NoError(t, conn.Create(&paymentdomain.WorkPayment{
		WorkID:    work.ID,
		PaymentID: payment.ID,
	}).Error)

	// Lowering the amount below the paid total flips the status to PAID.
	updated, err := svc.Update(ctx, work.ID.String(), domain.UpdateWorkRequest{
		Amount:    i64(3000),
		AmountSet: true,
	})
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusPaid, updated.PaymentStatus)

	// Clearing the amount derives NO_AMOUNT regardless of payments.
	updated, err = svc.Update(ctx, work.ID.String(), domain.UpdateWorkRequest{AmountSet: true})
	require.NoError(t, err)
	assert.Equal(t, reconcile.StatusNoAmount, updated.PaymentStatus)
}

func TestDeleteWorkRemovesLinks(t *testing.T) {
	svc, conn := newFixture(t)
	ctx := context.Background()
	client := createClient(t, conn, 1)

	work, err := svc.Create(ctx, domain.CreateWorkRequest{
		ClientID:    client.ID.String(),
		Description: "roof repair",
		Amount:      i64(5000),
	})
	require.NoError(t, err)

	require.NoError(t, conn.Create(&paymentdomain.Payment{
		ID:     snowflake.ID(100),
		Amount: 5000,
		Status: paymentdomain.StatusCompleted,
	}).Error)
	require.NoError(t, conn.Create(&paymentdomain.WorkPayment{
		WorkID:    work.ID,
		PaymentID: snowflake.ID(100),
	}).Error)

	require.NoError(t, svc.Delete(ctx, work.ID.String()))

	var links int64
	require.NoError(t, conn.Table("work_payments").Where("work_id = ?", work.ID).Count(&links).Error)
	assert.Zero(t, links)

	_, err = svc.GetByID(ctx, work.ID.String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
