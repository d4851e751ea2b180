package paymentrepo_test

import (
	"context"
	"testing"
	"time"

	"refill/internal/adapters/out/postgres/paymentrepo"
	"refill/internal/core/domain/model/kernel"
	"refill/internal/core/domain/model/order"
	"refill/internal/core/domain/model/payment"
	"refill/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// PaymentRepositoryIntegrationTestSuite provides integration tests for
// PaymentRepository using PostgreSQL containers, in particular the unique
// index backing webhook deduplication.
type PaymentRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *paymentrepo.GormPaymentRepository
	tracker    *MockAggregateTracker
}

func (suite *PaymentRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&paymentrepo.PaymentDTO{},
		&paymentrepo.EventDTO{},
	))
}

func (suite *PaymentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE payments, payment_events").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = paymentrepo.NewGormPaymentRepository(suite.db, suite.tracker)
}

func (suite *PaymentRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestAdd_ValidPayment_Success() {
	ctx := context.Background()
	aggregate := suite.createTestPayment("pi_it_1")

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().NoError(err)

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(payment.StatePending, restored.State())
	suite.Equal("pi_it_1", restored.IntentID())
	suite.True(aggregate.Amount().IsEqual(restored.Amount()))
	suite.Nil(restored.PaidAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestUpdate_PersistsStateAndPaidAt() {
	ctx := context.Background()
	aggregate := suite.createTestPayment("pi_it_2")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	paidAt := time.Now().UTC().Truncate(time.Second)
	aggregate.MarkPaid(paidAt)
	suite.Require().NoError(suite.repository.Update(ctx, aggregate))

	restored, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(payment.StatePaid, restored.State())
	suite.Require().NotNil(restored.PaidAt())
	suite.True(paidAt.Equal(restored.PaidAt().UTC()))
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestGetByIntentID_ResolvesPayment() {
	ctx := context.Background()
	aggregate := suite.createTestPayment("pi_it_3")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	restored, err := suite.repository.GetByIntentID(ctx, "pi_it_3")
	suite.Require().NoError(err)
	suite.True(restored.ID().IsEqual(aggregate.ID()))
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestGetByIntentID_UnknownIntent_NotFound() {
	_, err := suite.repository.GetByIntentID(context.Background(), "pi_missing")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestAppendEvent_DuplicateEvent_AlreadyProcessed() {
	ctx := context.Background()

	first, err := payment.NewEvent(kernel.NewUUID(), "paymongo", "evt_1",
		payment.EventTypePaid, "pi_it_4", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AppendEvent(ctx, first))

	// redelivery of the same provider event must hit the unique index
	duplicate, err := payment.NewEvent(kernel.NewUUID(), "paymongo", "evt_1",
		payment.EventTypePaid, "pi_it_4", time.Now())
	suite.Require().NoError(err)

	err = suite.repository.AppendEvent(ctx, duplicate)
	suite.Require().ErrorIs(err, payment.ErrEventAlreadyProcessed)

	var count int64
	suite.Require().NoError(suite.db.Model(&paymentrepo.EventDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestAppendEvent_SameEventIDOtherProvider_Allowed() {
	ctx := context.Background()

	first, err := payment.NewEvent(kernel.NewUUID(), "paymongo", "evt_2",
		payment.EventTypePaid, "pi_it_5", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AppendEvent(ctx, first))

	other, err := payment.NewEvent(kernel.NewUUID(), "other", "evt_2",
		payment.EventTypePaid, "pi_it_5", time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.AppendEvent(ctx, other))
}

func (suite *PaymentRepositoryIntegrationTestSuite) TestGetAllStalePending_SweepsOnlyOldPending() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	stale := suite.createTestPayment("pi_stale")
	fresh := suite.createTestPayment("pi_fresh")
	settled := suite.createTestPayment("pi_settled")
	settled.MarkPaid(time.Now())

	for _, p := range []*payment.Payment{stale, fresh, settled} {
		suite.Require().NoError(suite.repository.Add(ctx, p))
	}

	// age the stale row behind the cutoff
	suite.Require().NoError(suite.db.Model(&paymentrepo.PaymentDTO{}).
		Where("id = ?", stale.ID().Bytes()).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	suite.Require().NoError(suite.db.Model(&paymentrepo.PaymentDTO{}).
		Where("id = ?", settled.ID().Bytes()).
		Update("created_at", time.Now().Add(-time.Hour)).Error)

	stalePayments, err := suite.repository.GetAllStalePending(ctx, time.Now().Add(-30*time.Minute))
	suite.Require().NoError(err)
	suite.Require().Len(stalePayments, 1)
	suite.True(stalePayments[0].ID().IsEqual(stale.ID()))
}

func (suite *PaymentRepositoryIntegrationTestSuite) createTestPayment(intentID string) *payment.Payment {
	amount, err := kernel.NewMoney(7500)
	suite.Require().NoError(err)

	aggregate, err := payment.NewPayment(kernel.NewUUID(), kernel.NewUUID(),
		"paymongo", order.PaymentMethodGCash, intentID, amount)
	suite.Require().NoError(err)
	return aggregate
}

func TestPaymentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentRepositoryIntegrationTestSuite))
}
