package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
	"github.com/SscSPs/quarry_billing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// receiptHandler handles HTTP requests related to receipts and their credit payments.
type receiptHandler struct {
	receiptService       portssvc.ReceiptSvcFacade
	creditPaymentService portssvc.CreditPaymentSvcFacade
}

func newReceiptHandler(rs portssvc.ReceiptSvcFacade, cps portssvc.CreditPaymentSvcFacade) *receiptHandler {
	return &receiptHandler{
		receiptService:       rs,
		creditPaymentService: cps,
	}
}

// registerReceiptRoutes registers routes related to receipts.
func registerReceiptRoutes(rg *gin.RouterGroup, rs portssvc.ReceiptSvcFacade, cps portssvc.CreditPaymentSvcFacade) {
	h := newReceiptHandler(rs, cps)

	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.createReceipt)
		receipts.GET("", h.listReceipts)
		receipts.GET("/:id", h.getReceipt)
		receipts.PATCH("/:id/payment", h.updateReceiptPayment)
		receipts.DELETE("/:id", h.deleteReceipt)
		receipts.POST("/:id/credit-payments", h.recordCreditPayment)
		receipts.GET("/:id/credit-payments", h.listCreditPayments)
	}
}

// requireUserID fetches the authenticated user or aborts with 401.
func requireUserID(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return userID, ok
}

// createReceipt issues a gate pass: rate resolution, deposit deduction and numbering.
// @Summary Create a receipt
// @Description Resolves the rate, deducts deposit if asked, numbers and stores a gate pass
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   receipt body dto.CreateReceiptRequest true "Gate pass details"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Concurrent update, try again"
// @Failure 500 {object} ErrorResponse "Failed to create receipt"
// @Security BearerAuth
// @Router /receipts [post]
func (h *receiptHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "receipt request")
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create receipt",
		slog.String("truck_owner", req.TruckOwner), slog.String("vehicle_number", req.VehicleNumber))

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to create receipt")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

// getReceipt godoc
// @Summary Get a receipt by ID
// @Tags receipts
// @Produce  json
// @Param   id path string true "Receipt ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Receipt not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve receipt"
// @Security BearerAuth
// @Router /receipts/{id} [get]
func (h *receiptHandler) getReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("id")

	receipt, err := h.receiptService.GetReceiptByID(c.Request.Context(), receiptID)
	if err != nil {
		respondError(c, logger.With(slog.String("receipt_id", receiptID)), err, "Failed to retrieve receipt")
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// listReceipts returns active receipts newest first with a cursor for the next page.
// @Summary List receipts
// @Tags receipts
// @Produce  json
// @Param   owner query string false "Truck owner name"
// @Param   from query string false "First day, YYYY-MM-DD inclusive"
// @Param   to query string false "Last day, YYYY-MM-DD inclusive"
// @Param   status query string false "Payment status" Enums(paid, partial, unpaid)
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Cursor from the previous page"
// @Success 200 {object} dto.ListReceiptsResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list receipts"
// @Security BearerAuth
// @Router /receipts [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListReceiptsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}

	receipts, nextToken, err := h.receiptService.ListReceipts(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list receipts")
		return
	}

	c.JSON(http.StatusOK, dto.ToListReceiptsResponse(receipts, nextToken))
}

// updateReceiptPayment godoc
// @Summary Update receipt payment
// @Description A new cash amount recomputes credit and status; a status on its own is stored as given
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   id path string true "Receipt ID"
// @Param   payment body dto.UpdateReceiptPaymentRequest true "Payment fields to change"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Receipt not found"
// @Failure 500 {object} ErrorResponse "Failed to update receipt"
// @Security BearerAuth
// @Router /receipts/{id}/payment [patch]
func (h *receiptHandler) updateReceiptPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("id")
	var req dto.UpdateReceiptPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "payment update")
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	receipt, err := h.receiptService.UpdateReceiptPayment(c.Request.Context(), receiptID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("receipt_id", receiptID)), err, "Failed to update receipt payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// deleteReceipt soft deletes a receipt. Deposit history is left as is.
// @Summary Delete a receipt
// @Tags receipts
// @Param   id path string true "Receipt ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Receipt not found"
// @Failure 500 {object} ErrorResponse "Failed to delete receipt"
// @Security BearerAuth
// @Router /receipts/{id} [delete]
func (h *receiptHandler) deleteReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("id")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.receiptService.DeactivateReceipt(c.Request.Context(), receiptID, userID); err != nil {
		respondError(c, logger.With(slog.String("receipt_id", receiptID)), err, "Failed to delete receipt")
		return
	}

	c.Status(http.StatusNoContent)
}

// recordCreditPayment godoc
// @Summary Record a credit payment
// @Description Moves an amount from outstanding credit to cash on the receipt
// @Tags receipts
// @Accept  json
// @Produce  json
// @Param   id path string true "Receipt ID"
// @Param   payment body dto.RecordCreditPaymentRequest true "Payment details"
// @Success 201 {object} domain.CreditPayment
// @Failure 400 {object} ErrorResponse "Invalid input or more than outstanding"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Receipt not found"
// @Failure 500 {object} ErrorResponse "Failed to record payment"
// @Security BearerAuth
// @Router /receipts/{id}/credit-payments [post]
func (h *receiptHandler) recordCreditPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("id")
	var req dto.RecordCreditPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "credit payment")
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	payment, err := h.creditPaymentService.RecordCreditPayment(c.Request.Context(), receiptID, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("receipt_id", receiptID)), err, "Failed to record credit payment")
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// listCreditPayments godoc
// @Summary List credit payments of a receipt
// @Tags receipts
// @Produce  json
// @Param   id path string true "Receipt ID"
// @Success 200 {object} map[string][]domain.CreditPayment
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Receipt not found"
// @Failure 500 {object} ErrorResponse "Failed to list payments"
// @Security BearerAuth
// @Router /receipts/{id}/credit-payments [get]
func (h *receiptHandler) listCreditPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	receiptID := c.Param("id")

	payments, err := h.creditPaymentService.ListCreditPayments(c.Request.Context(), receiptID)
	if err != nil {
		respondError(c, logger.With(slog.String("receipt_id", receiptID)), err, "Failed to list credit payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"payments": payments})
}
