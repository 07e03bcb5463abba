// Package http is the inbound HTTP adapter. Handlers translate between the
// JSON surface and application commands/queries; no business rules live
// here.
package http

import (
	"net/http"

	"procserve/internal/core/application/usecases/commands"
	"procserve/internal/core/application/usecases/queries"
	"procserve/internal/core/domain/model/kernel"
	"procserve/internal/core/domain/model/order"
	"procserve/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createDraftHandler    commands.CreateDraftCommandHandler
	updateDraftHandler    commands.UpdateDraftCommandHandler
	submitOrderHandler    commands.SubmitOrderCommandHandler
	updateOrderHandler    commands.UpdateOrderCommandHandler
	cancelOrderHandler    commands.CancelOrderCommandHandler
	attachDocumentHandler commands.AttachDocumentCommandHandler
	submitBidHandler      commands.SubmitBidCommandHandler
	acceptBidHandler      commands.AcceptBidCommandHandler
	rejectBidHandler      commands.RejectBidCommandHandler
	recordAttemptHandler  commands.RecordDeliveryAttemptCommandHandler

	// Query handlers
	getOrderHandler         queries.GetOrderQueryHandler
	getEditabilityHandler   queries.GetOrderEditabilityQueryHandler
	listOrdersHandler       queries.ListOrdersQueryHandler
	getRecipientBidsHandler queries.GetRecipientBidsQueryHandler
}

// NewServer creates the HTTP server with its command and query handlers.
func NewServer(
	createDraftHandler commands.CreateDraftCommandHandler,
	updateDraftHandler commands.UpdateDraftCommandHandler,
	submitOrderHandler commands.SubmitOrderCommandHandler,
	updateOrderHandler commands.UpdateOrderCommandHandler,
	cancelOrderHandler commands.CancelOrderCommandHandler,
	attachDocumentHandler commands.AttachDocumentCommandHandler,
	submitBidHandler commands.SubmitBidCommandHandler,
	acceptBidHandler commands.AcceptBidCommandHandler,
	rejectBidHandler commands.RejectBidCommandHandler,
	recordAttemptHandler commands.RecordDeliveryAttemptCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getEditabilityHandler queries.GetOrderEditabilityQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	getRecipientBidsHandler queries.GetRecipientBidsQueryHandler,
) *Server {
	return &Server{
		createDraftHandler:      createDraftHandler,
		updateDraftHandler:      updateDraftHandler,
		submitOrderHandler:      submitOrderHandler,
		updateOrderHandler:      updateOrderHandler,
		cancelOrderHandler:      cancelOrderHandler,
		attachDocumentHandler:   attachDocumentHandler,
		submitBidHandler:        submitBidHandler,
		acceptBidHandler:        acceptBidHandler,
		rejectBidHandler:        rejectBidHandler,
		recordAttemptHandler:    recordAttemptHandler,
		getOrderHandler:         getOrderHandler,
		getEditabilityHandler:   getEditabilityHandler,
		listOrdersHandler:       listOrdersHandler,
		getRecipientBidsHandler: getRecipientBidsHandler,
	}
}

// RegisterRoutes mounts every endpoint under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/drafts", s.CreateDraft)
	api.PUT("/drafts/:draftId", s.SaveDraft)
	api.POST("/drafts/:draftId/submit", s.SubmitOrder)

	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.GET("/orders/:orderId/editability", s.GetEditability)
	api.PATCH("/orders/:orderId", s.UpdateOrder)
	api.POST("/orders/:orderId/cancel", s.CancelOrder)
	api.POST("/orders/:orderId/documents", s.AttachDocument)

	api.POST("/orders/:orderId/recipients/:recipientId/bids", s.SubmitBid)
	api.POST("/orders/:orderId/recipients/:recipientId/attempts", s.RecordAttempt)
	api.GET("/recipients/:recipientId/bids", s.GetRecipientBids)
	api.POST("/bids/:bidId/accept", s.AcceptBid)
	api.POST("/bids/:bidId/reject", s.RejectBid)
}

// CreateDraft handles POST /api/v1/drafts.
func (s *Server) CreateDraft(ctx echo.Context) error {
	identity, err := identityFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	draftID := kernel.NewUUID()
	cmd, err := commands.NewCreateDraftCommand(draftID, identity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createDraftHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: draftID.String()})
}

// SaveDraft handles PUT /api/v1/drafts/:draftId, the autosave endpoint.
// A stale edit sequence is not an error; the save is simply a no-op.
func (s *Server) SaveDraft(ctx echo.Context) error {
	identity, err := identityFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	draftID, err := kernel.UUIDFromString(ctx.Param("draftId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid draft id"})
	}

	var req DraftSaveRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	inputs := make([]commands.RecipientInput, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		input, inputErr := r.toInput()
		if inputErr != nil {
			return respondError(ctx, inputErr)
		}
		inputs = append(inputs, input)
	}

	cmd, err := commands.NewUpdateDraftCommand(draftID, req.EditSeq, identity, req.toPatch(), inputs)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateDraftHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitOrder handles POST /api/v1/drafts/:draftId/submit.
func (s *Server) SubmitOrder(ctx echo.Context) error {
	identity, err := identityFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	draftID, err := kernel.UUIDFromString(ctx.Param("draftId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid draft id"})
	}

	cmd, err := commands.NewSubmitOrderCommand(draftID, identity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.submitOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, IDResponse{ID: draftID.String()})
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context) error {
	identity, err := identityFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var statusFilter *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, parseErr := parseOrderStatus(raw)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		statusFilter = &parsed
	}

	limit := intQueryParam(ctx, "limit", 20)
	offset := intQueryParam(ctx, "offset", 0)

	query, err := queries.NewListOrdersQuery(
		identity,
		statusFilter,
		ctx.QueryParam("sortBy"),
		ctx.QueryParam("sortDir") == "desc",
		limit,
		offset,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]OrderSummaryDTO, 0, len(rows))
	for _, row := range rows {
		response = append(response, OrderSummaryDTO{
			ID:             row.ID.String(),
			OrderNumber:    row.OrderNumber,
			Status:         row.Status,
			CaseNumber:     row.CaseNumber,
			Deadline:       row.Deadline,
			CreatedAt:      row.CreatedAt,
			RecipientCount: row.RecipientCount,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/:orderId. Serves drafts too.
func (s *Server) GetOrder(ctx echo.Context) error {
	identity, err := identityFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid order id"})
	}

	query, err := queries.NewGetOrderQuery(orderID, identity)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderFromResponse(resp))
}

// GetEditability handles GET /api/v1/orders/:orderId/editability.
func (s *Server) GetEditability(ctx echo.Context) error {
	identity, err := identityFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid order id"})
	}

	query, err := queries.NewGetOrderEditabilityQuery(orderID, identity)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.getEditabilityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, EditabilityDTO{
		Status:   resp.Status,
		Editable: resp.Editable,
		Reason:   resp.Reason,
	})
}

// UpdateOrder handles PATCH /api/v1/orders/:orderId.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	identity, err := identityFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid order id"})
	}

	var req OrderPatchRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	updates := make([]order.RecipientUpdate, 0, len(req.Recipients))
	for _, r := range req.Recipients {
		if r.ID == nil {
			return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "recipient id is required"})
		}
		recipientID, idErr := kernel.UUIDFromString(*r.ID)
		if idErr != nil {
			return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid recipient id"})
		}
		patch, patchErr := r.toRecipientPatch()
		if patchErr != nil {
			return respondError(ctx, patchErr)
		}
		updates = append(updates, order.RecipientUpdate{
			RecipientID: recipientID,
			Patch:       patch,
		})
	}

	cmd, err := commands.NewUpdateOrderCommand(orderID, identity, req.toPatch(), updates)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.updateOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderId/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	identity, err := identityFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid order id"})
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, identity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AttachDocument handles POST /api/v1/orders/:orderId/documents. The body is
// multipart form data with a single "document" file.
func (s *Server) AttachDocument(ctx echo.Context) error {
	identity, err := identityFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid order id"})
	}

	fileHeader, err := ctx.FormFile("document")
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "document file is required"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "cannot read document"})
	}
	defer file.Close()

	cmd, err := commands.NewAttachDocumentCommand(orderID, identity, fileHeader.Filename, file)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.attachDocumentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SubmitBid handles POST /api/v1/orders/:orderId/recipients/:recipientId/bids.
func (s *Server) SubmitBid(ctx echo.Context) error {
	identity, err := identityFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid order id"})
	}
	recipientID, err := kernel.UUIDFromString(ctx.Param("recipientId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid recipient id"})
	}

	var req BidRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	amount, err := kernel.NewMoneyFromCents(req.AmountCents)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("amountCents", err))
	}

	bidID := kernel.NewUUID()
	cmd, err := commands.NewSubmitBidCommand(
		bidID, orderID, recipientID,
		identity,
		amount,
		req.Comment,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.submitBidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, IDResponse{ID: bidID.String()})
}

// GetRecipientBids handles GET /api/v1/recipients/:recipientId/bids.
func (s *Server) GetRecipientBids(ctx echo.Context) error {
	identity, err := identityFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	recipientID, err := kernel.UUIDFromString(ctx.Param("recipientId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid recipient id"})
	}

	query, err := queries.NewGetRecipientBidsQuery(recipientID, identity)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.getRecipientBidsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]BidDTO, 0, len(rows))
	for _, row := range rows {
		response = append(response, BidDTO{
			ID:              row.ID.String(),
			ProcessServerID: row.ProcessServerID.String(),
			AmountCents:     row.AmountCents,
			Comment:         row.Comment,
			Status:          row.Status,
			CreatedAt:       row.CreatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// AcceptBid handles POST /api/v1/bids/:bidId/accept.
func (s *Server) AcceptBid(ctx echo.Context) error {
	identity, err := identityFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	bidID, err := kernel.UUIDFromString(ctx.Param("bidId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid bid id"})
	}

	cmd, err := commands.NewAcceptBidCommand(bidID, identity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.acceptBidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RejectBid handles POST /api/v1/bids/:bidId/reject.
func (s *Server) RejectBid(ctx echo.Context) error {
	identity, err := identityFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	bidID, err := kernel.UUIDFromString(ctx.Param("bidId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid bid id"})
	}

	cmd, err := commands.NewRejectBidCommand(bidID, identity)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.rejectBidHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordAttempt handles POST /api/v1/orders/:orderId/recipients/:recipientId/attempts.
func (s *Server) RecordAttempt(ctx echo.Context) error {
	identity, err := identityFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid order id"})
	}
	recipientID, err := kernel.UUIDFromString(ctx.Param("recipientId"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid recipient id"})
	}

	var req AttemptRequest
	if err = ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorDTO{Code: http.StatusBadRequest, Message: "invalid request body"})
	}

	cmd, err := commands.NewRecordDeliveryAttemptCommand(
		orderID, recipientID,
		identity,
		commands.AttemptOutcome(req.Outcome),
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.recordAttemptHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
