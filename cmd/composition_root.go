package cmd

import (
	"procserve/internal/adapters/out/docstore"
	"procserve/internal/adapters/out/geo"
	"procserve/internal/adapters/out/kafka"
	"procserve/internal/adapters/out/postgres"
	"procserve/internal/core/application/usecases/commands"
	"procserve/internal/core/application/usecases/queries"
	"procserve/internal/core/domain/services"
	"procserve/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	geography  ports.GeographyService
	documents  ports.DocumentStore
	publisher  *kafka.Publisher
	pricing    services.PricingEngine
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		geography:  geo.NewClient(config.GeoServiceURL),
		documents:  docstore.NewStore(config.DocumentRoot, config.DocumentBaseURL),
		publisher:  kafka.NewPublisher([]string{config.KafkaHost}, config.KafkaOrderChangedTopic),
		pricing:    services.NewPricingEngine(),
	}
}

// ClosePublisher flushes the Kafka writer during shutdown.
func (c *CompositionRoot) ClosePublisher() error {
	return c.publisher.Close()
}

func (c *CompositionRoot) draftUoWFactory() commands.DraftUoWFactory {
	return FuncDraftUoWFactory(func() commands.DraftUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) submitUoWFactory() commands.SubmitUoWFactory {
	return FuncSubmitUoWFactory(func() commands.SubmitUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) bidUoWFactory() commands.BidUoWFactory {
	return FuncBidUoWFactory(func() commands.BidUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateDraftCommandHandler() commands.CreateDraftCommandHandler {
	return commands.NewCreateDraftCommandHandler(c.draftUoWFactory())
}

func (c *CompositionRoot) CreateUpdateDraftCommandHandler() commands.UpdateDraftCommandHandler {
	return commands.NewUpdateDraftCommandHandler(c.draftUoWFactory())
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.submitUoWFactory(), c.geography, c.publisher)
}

func (c *CompositionRoot) CreateUpdateOrderCommandHandler() commands.UpdateOrderCommandHandler {
	return commands.NewUpdateOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateAttachDocumentCommandHandler() commands.AttachDocumentCommandHandler {
	return commands.NewAttachDocumentCommandHandler(c.orderUoWFactory(), c.documents)
}

func (c *CompositionRoot) CreateSubmitBidCommandHandler() commands.SubmitBidCommandHandler {
	return commands.NewSubmitBidCommandHandler(c.bidUoWFactory())
}

func (c *CompositionRoot) CreateAcceptBidCommandHandler() commands.AcceptBidCommandHandler {
	return commands.NewAcceptBidCommandHandler(c.bidUoWFactory(), c.pricing, c.publisher)
}

func (c *CompositionRoot) CreateRejectBidCommandHandler() commands.RejectBidCommandHandler {
	return commands.NewRejectBidCommandHandler(c.bidUoWFactory())
}

func (c *CompositionRoot) CreateRecordDeliveryAttemptCommandHandler() commands.RecordDeliveryAttemptCommandHandler {
	return commands.NewRecordDeliveryAttemptCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreatePurgeStaleDraftsCommandHandler() commands.PurgeStaleDraftsCommandHandler {
	return commands.NewPurgeStaleDraftsCommandHandler(c.draftUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetOrderQueryHandler(uow.OrderRepository(), uow.DraftRepository(), c.pricing)
}

func (c *CompositionRoot) CreateGetOrderEditabilityQueryHandler() queries.GetOrderEditabilityQueryHandler {
	return queries.NewGetOrderEditabilityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRecipientBidsQueryHandler() queries.GetRecipientBidsQueryHandler {
	return queries.NewGetRecipientBidsQueryHandler(c.gormDB)
}

type FuncDraftUoWFactory func() commands.DraftUoW

func (f FuncDraftUoWFactory) Create() commands.DraftUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncSubmitUoWFactory func() commands.SubmitUoW

func (f FuncSubmitUoWFactory) Create() commands.SubmitUoW {
	return f()
}

type FuncBidUoWFactory func() commands.BidUoW

func (f FuncBidUoWFactory) Create() commands.BidUoW {
	return f()
}
