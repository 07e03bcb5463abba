package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "procserve/internal/adapters/out/postgres"
	"procserve/internal/adapters/out/postgres/bidrepo"
	"procserve/internal/adapters/out/postgres/draftrepo"
	"procserve/internal/adapters/out/postgres/orderrepo"
	"procserve/internal/core/domain/model/bid"
	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"
	"procserve/internal/core/ports"
	"procserve/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM-based unit of work and
// all three repositories against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite starts the PostgreSQL container and migrates the schema.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.RecipientDTO{},
		&draftrepo.DraftDTO{},
		&bidrepo.BidDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables so tests cannot interfere.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_recipients, drafts, bids").Error
	suite.Require().NoError(err)
}

// TearDownSuite terminates the PostgreSQL container.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func ptr[T any](v T) *T { return &v }

// newSubmittedOrder builds an order with two recipients, one of them already
// collecting bids.
func (suite *UnitOfWorkIntegrationTestSuite) newSubmittedOrder() (*order.Order, kernel.UUID) {
	draft, err := order.NewDraft(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)

	var first kernel.UUID
	for i, name := range []string{"Jane Roe", "John Doe"} {
		recipient, err := draft.AddRecipient(kernel.NewUUID())
		suite.Require().NoError(err)
		suite.Require().NoError(draft.UpdateRecipient(recipient.ID(), order.RecipientPatch{
			Name:           ptr(name),
			Address:        ptr("12 Main St"),
			City:           ptr("Austin"),
			State:          ptr("TX"),
			ZipCode:        ptr("78701"),
			ProcessService: ptr(true),
		}))
		if i == 0 {
			first = recipient.ID()
		}
	}

	deadline := time.Now().UTC().AddDate(0, 0, 14)
	suite.Require().NoError(draft.ApplyPatch(order.Patch{Deadline: &deadline}))
	suite.Require().NoError(draft.Submit("PS-20260115-ABCD1234", time.Now().UTC()))
	suite.Require().NoError(draft.MarkRecipientBidding(first, time.Now().UTC()))
	return draft, first
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_AddAndGet() {
	ctx := context.Background()
	aggregate, biddingID := suite.newSubmittedOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))
	_ = uow.Rollback(ctx)

	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal("PS-20260115-ABCD1234", loaded.OrderNumber())
	suite.Equal(order.Bidding, loaded.Status())
	suite.Equal(int64(1), loaded.Version())
	suite.Require().Len(loaded.Recipients(), 2)

	// Insertion order survives the round trip.
	suite.True(loaded.Recipients()[0].ID().IsEqual(biddingID))
	suite.Equal(order.RecipientBidding, loaded.Recipients()[0].Status())
	suite.Equal("Jane Roe", loaded.Recipients()[0].Name())
	suite.Equal(order.RecipientOpen, loaded.Recipients()[1].Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_GetNotFound() {
	ctx := context.Background()

	_, err := suite.factory.Create().OrderRepository().Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_UpdateBumpsVersion() {
	ctx := context.Background()
	aggregate, biddingID := suite.newSubmittedOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))
	_ = uow.Rollback(ctx)

	repo := suite.factory.Create().OrderRepository()
	loaded, err := repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	price, err := kernel.NewMoneyFromCents(9000)
	suite.Require().NoError(err)
	suite.Require().NoError(loaded.BindServer(biddingID, kernel.NewUUID(), price, time.Now().UTC()))

	uow = suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Commit(ctx))
	_ = uow.Rollback(ctx)

	reloaded, err := repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(int64(2), reloaded.Version())
	suite.Equal(order.PartiallyAssigned, reloaded.Status())
	suite.Require().NotNil(reloaded.Recipients()[0].FinalAgreedPrice())
	suite.Equal(int64(9000), reloaded.Recipients()[0].FinalAgreedPrice().Cents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestOrderRepository_ConcurrentUpdateConflicts() {
	ctx := context.Background()
	aggregate, biddingID := suite.newSubmittedOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))
	_ = uow.Rollback(ctx)

	repo := suite.factory.Create().OrderRepository()

	// Two sessions load the same version.
	first, err := repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	second, err := repo.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)

	price, _ := kernel.NewMoneyFromCents(9000)
	suite.Require().NoError(first.BindServer(biddingID, kernel.NewUUID(), price, time.Now().UTC()))
	suite.Require().NoError(second.BindServer(biddingID, kernel.NewUUID(), price, time.Now().UTC()))

	suite.Require().NoError(repo.Update(ctx, first))

	err = repo.Update(ctx, second)
	suite.Require().Error(err)
	var conflict *errs.ConflictError
	suite.ErrorAs(err, &conflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDraftRepository_UpsertOrdersByEditSeq() {
	ctx := context.Background()
	draft, err := order.NewDraft(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)

	repo := suite.factory.Create().DraftRepository()
	suite.Require().NoError(repo.Add(ctx, draft, 0))

	// Save 2 lands first.
	suite.Require().NoError(draft.ApplyPatch(order.Patch{CaseNumber: ptr("CV-2")}))
	suite.Require().NoError(repo.Upsert(ctx, draft, 2))

	// A stale save 1 arrives late and must be dropped silently.
	stale, err := order.NewDraft(draft.ID(), draft.TenantID(), draft.CustomerID(), draft.CreatedAt())
	suite.Require().NoError(err)
	suite.Require().NoError(stale.ApplyPatch(order.Patch{CaseNumber: ptr("CV-STALE")}))
	suite.Require().NoError(repo.Upsert(ctx, stale, 1))

	loaded, err := repo.Get(ctx, draft.ID())
	suite.Require().NoError(err)
	suite.Equal("CV-2", loaded.CaseNumber())

	// A newer save wins.
	suite.Require().NoError(draft.ApplyPatch(order.Patch{CaseNumber: ptr("CV-3")}))
	suite.Require().NoError(repo.Upsert(ctx, draft, 3))

	loaded, err = repo.Get(ctx, draft.ID())
	suite.Require().NoError(err)
	suite.Equal("CV-3", loaded.CaseNumber())

	// Replaying the same save is a no-op, not an error.
	suite.Require().NoError(repo.Upsert(ctx, draft, 3))
	loaded, err = repo.Get(ctx, draft.ID())
	suite.Require().NoError(err)
	suite.Equal("CV-3", loaded.CaseNumber())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDraftRepository_RoundTripRecipients() {
	ctx := context.Background()
	draft, err := order.NewDraft(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)
	recipient, err := draft.AddRecipient(kernel.NewUUID())
	suite.Require().NoError(err)
	quote, _ := kernel.NewMoneyFromCents(6500)
	suite.Require().NoError(draft.UpdateRecipient(recipient.ID(), order.RecipientPatch{
		Name:        ptr("Jane Roe"),
		QuotedPrice: &quote,
	}))

	repo := suite.factory.Create().DraftRepository()
	suite.Require().NoError(repo.Add(ctx, draft, 0))

	loaded, err := repo.Get(ctx, draft.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Draft, loaded.Status())
	suite.Require().Len(loaded.Recipients(), 1)
	suite.Equal("Jane Roe", loaded.Recipients()[0].Name())
	suite.Equal(order.PriceQuoted, loaded.Recipients()[0].PriceStatus())
	suite.Require().NotNil(loaded.Recipients()[0].QuotedPrice())
	suite.Equal(int64(6500), loaded.Recipients()[0].QuotedPrice().Cents())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestDraftRepository_DeleteAndDeleteStale() {
	ctx := context.Background()
	repo := suite.factory.Create().DraftRepository()

	fresh, err := order.NewDraft(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, fresh, 0))

	stale, err := order.NewDraft(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(repo.Add(ctx, stale, 0))
	err = suite.db.Exec("UPDATE drafts SET updated_at = ? WHERE id = ?",
		time.Now().UTC().Add(-96*time.Hour), stale.ID().Bytes()).Error
	suite.Require().NoError(err)

	purged, err := repo.DeleteStale(ctx, time.Now().UTC().Add(-72*time.Hour))
	suite.Require().NoError(err)
	suite.Equal(int64(1), purged)

	_, err = repo.Get(ctx, stale.ID())
	suite.Require().Error(err)
	_, err = repo.Get(ctx, fresh.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(repo.Delete(ctx, fresh.ID()))
	err = repo.Delete(ctx, fresh.ID())
	suite.Require().Error(err)
	var notFound *errs.ObjectNotFoundError
	suite.ErrorAs(err, &notFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBidRepository_PendingForRecipient() {
	ctx := context.Background()
	aggregate, biddingID := suite.newSubmittedOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))

	bidRepo := uow.BidRepository()
	amount, _ := kernel.NewMoneyFromCents(8800)
	first, err := bid.NewBid(kernel.NewUUID(), aggregate.ID(), biddingID, kernel.NewUUID(),
		amount, "same day", time.Now().UTC().Add(-time.Minute))
	suite.Require().NoError(err)
	second, err := bid.NewBid(kernel.NewUUID(), aggregate.ID(), biddingID, kernel.NewUUID(),
		amount, "", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(bidRepo.Add(ctx, first))
	suite.Require().NoError(bidRepo.Add(ctx, second))
	suite.Require().NoError(uow.Commit(ctx))
	_ = uow.Rollback(ctx)

	repo := suite.factory.Create().BidRepository()
	suite.Require().NoError(first.Reject())
	suite.Require().NoError(repo.Update(ctx, first))

	pending, err := repo.GetPendingForRecipient(ctx, biddingID)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.True(pending[0].ID().IsEqual(second.ID()))

	all, err := repo.GetForRecipient(ctx, biddingID)
	suite.Require().NoError(err)
	suite.Require().Len(all, 2)
	suite.True(all[0].ID().IsEqual(first.ID()), "oldest first")
	suite.Equal(bid.Rejected, all[0].Status())
	suite.Equal("same day", all[0].Comment())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSubmitTransaction_MovesDraftToOrders() {
	ctx := context.Background()
	aggregate, _ := suite.newSubmittedOrder()

	// Seed the draft row as the autosave path would have.
	seed, err := order.NewDraft(aggregate.ID(), aggregate.TenantID(), aggregate.CustomerID(), aggregate.CreatedAt())
	suite.Require().NoError(err)
	draftRepo := suite.factory.Create().DraftRepository()
	suite.Require().NoError(draftRepo.Add(ctx, seed, 0))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.DraftRepository().Delete(ctx, aggregate.ID()))
	suite.Require().NoError(uow.Commit(ctx))
	_ = uow.Rollback(ctx)

	_, err = draftRepo.Get(ctx, aggregate.ID())
	suite.Require().Error(err)
	loaded, err := suite.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Bidding, loaded.Status())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsWrites() {
	ctx := context.Background()
	aggregate, _ := suite.newSubmittedOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, aggregate.ID())
	suite.Require().Error(err)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
