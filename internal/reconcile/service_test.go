package reconcile_test

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/energoledger/energoledger/internal/reconcile"
)

var schema = []string{
	`CREATE TABLE works (
		id INTEGER PRIMARY KEY,
		amount INTEGER,
		payment_status TEXT NOT NULL DEFAULT 'PENDING'
	)`,
	`CREATE TABLE services (
		id INTEGER PRIMARY KEY,
		amount INTEGER,
		payment_status TEXT NOT NULL DEFAULT 'PENDING'
	)`,
	`CREATE TABLE payments (
		id INTEGER PRIMARY KEY,
		amount INTEGER NOT NULL,
		is_refund BOOLEAN NOT NULL DEFAULT FALSE,
		status TEXT NOT NULL DEFAULT 'PENDING'
	)`,
	`CREATE TABLE work_payments (
		work_id INTEGER NOT NULL,
		payment_id INTEGER NOT NULL,
		PRIMARY KEY (work_id, payment_id)
	)`,
	`CREATE TABLE service_payments (
		service_id INTEGER NOT NULL,
		payment_id INTEGER NOT NULL,
		PRIMARY KEY (service_id, payment_id)
	)`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	for _, ddl := range schema {
		require.NoError(t, conn.Exec(ddl).Error)
	}
	return conn
}

func newEngine(t *testing.T, conn *gorm.DB) reconcile.Engine {
	t.Helper()
	return reconcile.New(reconcile.Params{
		DB:   conn,
		Log:  zap.NewNop(),
		Repo: reconcile.ProvideRepository(),
	})
}

func workStatus(t *testing.T, conn *gorm.DB, id int64) string {
	t.Helper()
	var status string
	require.NoError(t, conn.Raw(`SELECT payment_status FROM works WHERE id = ?`, id).Scan(&status).Error)
	return status
}

func insertWork(t *testing.T, conn *gorm.DB, id int64, amount *int64) {
	t.Helper()
	require.NoError(t, conn.Exec(`INSERT INTO works (id, amount) VALUES (?, ?)`, id, amount).Error)
}

func insertPayment(t *testing.T, conn *gorm.DB, id, amount int64, isRefund bool, status string) {
	t.Helper()
	require.NoError(t, conn.Exec(
		`INSERT INTO payments (id, amount, is_refund, status) VALUES (?, ?, ?, ?)`,
		id, amount, isRefund, status,
	).Error)
}

func linkWork(t *testing.T, conn *gorm.DB, workID, paymentID int64) {
	t.Helper()
	require.NoError(t, conn.Exec(
		`INSERT INTO work_payments (work_id, payment_id) VALUES (?, ?)`, workID, paymentID,
	).Error)
}

func i64(v int64) *int64 { return &v }

func TestRecomputeLifecycle(t *testing.T) {
	conn := newTestDB(t)
	engine := newEngine(t, conn)
	ctx := context.Background()

	insertWork(t, conn, 1, i64(5000))
	target := reconcile.WorkTarget(snowflake.ID(1))

	engine.Recompute(ctx, target)
	require.Equal(t, "PENDING", workStatus(t, conn, 1))

	insertPayment(t, conn, 10, 5000, false, "COMPLETED")
	linkWork(t, conn, 1, 10)
	engine.Recompute(ctx, target)
	require.Equal(t, "PAID", workStatus(t, conn, 1))

	insertPayment(t, conn, 11, 5000, true, "COMPLETED")
	linkWork(t, conn, 1, 11)
	engine.Recompute(ctx, target)
	require.Equal(t, "REFUNDED", workStatus(t, conn, 1))
}

func TestRecomputePartial(t *testing.T) {
	conn := newTestDB(t)
	engine := newEngine(t, conn)
	ctx := context.Background()

	insertWork(t, conn, 1, i64(2000))
	insertPayment(t, conn, 10, 1000, false, "COMPLETED")
	linkWork(t, conn, 1, 10)

	engine.Recompute(ctx, reconcile.WorkTarget(snowflake.ID(1)))
	require.Equal(t, "PARTIALLY_PAID", workStatus(t, conn, 1))
}

func TestRecomputeAfterUnlink(t *testing.T) {
	conn := newTestDB(t)
	engine := newEngine(t, conn)
	ctx := context.Background()

	insertWork(t, conn, 1, i64(5000))
	insertPayment(t, conn, 10, 5000, false, "COMPLETED")
	linkWork(t, conn, 1, 10)

	target := reconcile.WorkTarget(snowflake.ID(1))
	engine.Recompute(ctx, target)
	require.Equal(t, "PAID", workStatus(t, conn, 1))

	require.NoError(t, engine.UnlinkPayment(ctx, snowflake.ID(10), []reconcile.Target{target}))
	engine.RecomputeMany(ctx, []reconcile.Target{target})
	require.Equal(t, "PENDING", workStatus(t, conn, 1))
}

func TestRecomputeMissingTargetIsQuiet(t *testing.T) {
	conn := newTestDB(t)
	engine := newEngine(t, conn)

	// Must not panic or write anything.
	engine.Recompute(context.Background(), reconcile.WorkTarget(snowflake.ID(999)))
}

func TestRecomputeManyExpandsThroughSharedPayments(t *testing.T) {
	conn := newTestDB(t)
	engine := newEngine(t, conn)
	ctx := context.Background()

	insertWork(t, conn, 1, i64(1000))
	insertWork(t, conn, 2, i64(1000))
	insertPayment(t, conn, 10, 2000, false, "COMPLETED")
	linkWork(t, conn, 1, 10)
	linkWork(t, conn, 2, 10)

	// Only work 1 is named; work 2 is reached through the shared payment.
	engine.RecomputeMany(ctx, []reconcile.Target{reconcile.WorkTarget(snowflake.ID(1))})
	require.Equal(t, "PAID", workStatus(t, conn, 1))
	require.Equal(t, "PAID", workStatus(t, conn, 2))
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) FindTarget(ctx context.Context, db *gorm.DB, target reconcile.Target) (*reconcile.TargetState, error) {
	args := m.Called(ctx, db, target)
	if state := args.Get(0); state != nil {
		return state.(*reconcile.TargetState), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) LinkedPayments(ctx context.Context, db *gorm.DB, target reconcile.Target) ([]reconcile.LinkedPayment, error) {
	args := m.Called(ctx, db, target)
	return args.Get(0).([]reconcile.LinkedPayment), args.Error(1)
}

func (m *mockRepo) PaymentIDs(ctx context.Context, db *gorm.DB, target reconcile.Target) ([]snowflake.ID, error) {
	args := m.Called(ctx, db, target)
	return args.Get(0).([]snowflake.ID), args.Error(1)
}

func (m *mockRepo) TargetsForPayment(ctx context.Context, db *gorm.DB, paymentID snowflake.ID) ([]reconcile.Target, error) {
	args := m.Called(ctx, db, paymentID)
	return args.Get(0).([]reconcile.Target), args.Error(1)
}

func (m *mockRepo) UpdateStatus(ctx context.Context, db *gorm.DB, target reconcile.Target, status reconcile.Status) error {
	args := m.Called(ctx, db, target, status)
	return args.Error(0)
}

func (m *mockRepo) DeleteLinks(ctx context.Context, db *gorm.DB, paymentID snowflake.ID, targets []reconcile.Target) error {
	args := m.Called(ctx, db, paymentID, targets)
	return args.Error(0)
}

func TestRecomputeSkipsWriteWhenUnchanged(t *testing.T) {
	repo := &mockRepo{}
	engine := reconcile.New(reconcile.Params{
		DB:   nil,
		Log:  zap.NewNop(),
		Repo: repo,
	})

	target := reconcile.WorkTarget(snowflake.ID(1))
	repo.On("FindTarget", mock.Anything, mock.Anything, target).
		Return(&reconcile.TargetState{Amount: i64(5000), Status: reconcile.StatusPaid}, nil)
	repo.On("LinkedPayments", mock.Anything, mock.Anything, target).
		Return([]reconcile.LinkedPayment{{Amount: 5000, Status: "COMPLETED"}}, nil)

	engine.Recompute(context.Background(), target)

	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
