package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
	"github.com/SscSPs/quarry_billing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ownerHandler serves the owner directory and each owner's deposit ledger.
type ownerHandler struct {
	ownerService   portssvc.OwnerSvcFacade
	depositService portssvc.DepositSvcFacade
}

func newOwnerHandler(os portssvc.OwnerSvcFacade, ds portssvc.DepositSvcFacade) *ownerHandler {
	return &ownerHandler{
		ownerService:   os,
		depositService: ds,
	}
}

// registerOwnerRoutes registers routes related to truck owners. Owners are
// addressed by their unique name.
func registerOwnerRoutes(rg *gin.RouterGroup, os portssvc.OwnerSvcFacade, ds portssvc.DepositSvcFacade) {
	h := newOwnerHandler(os, ds)

	owners := rg.Group("/owners")
	{
		owners.POST("", h.createOwner)
		owners.GET("", h.listOwners)
		owners.GET("/:name", h.getOwner)
		owners.PUT("/:name", h.updateOwner)
		owners.DELETE("/:name", h.deleteOwner)

		owners.POST("/:name/deposits", h.recordDeposit)
		owners.GET("/:name/deposits", h.listDeposits)
		owners.GET("/:name/deposits/verify", h.verifyDeposits)
	}
}

// createOwner godoc
// @Summary Create a truck owner
// @Tags owners
// @Accept  json
// @Produce  json
// @Param   owner body dto.CreateOwnerRequest true "Owner details"
// @Success 201 {object} dto.OwnerResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Owner name already exists"
// @Failure 500 {object} ErrorResponse "Failed to create owner"
// @Security BearerAuth
// @Router /owners [post]
func (h *ownerHandler) createOwner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "owner request")
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	owner, err := h.ownerService.CreateOwner(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("owner", req.Name)), err, "Failed to create owner")
		return
	}

	c.JSON(http.StatusCreated, dto.ToOwnerResponse(owner))
}

// getOwner godoc
// @Summary Get a truck owner by name
// @Tags owners
// @Produce  json
// @Param   name path string true "Owner name"
// @Success 200 {object} dto.OwnerResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Owner not found"
// @Failure 500 {object} ErrorResponse "Failed to retrieve owner"
// @Security BearerAuth
// @Router /owners/{name} [get]
func (h *ownerHandler) getOwner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	owner, err := h.ownerService.GetOwnerByName(c.Request.Context(), name)
	if err != nil {
		respondError(c, logger.With(slog.String("owner", name)), err, "Failed to retrieve owner")
		return
	}

	c.JSON(http.StatusOK, dto.ToOwnerResponse(owner))
}

// listOwners godoc
// @Summary List truck owners
// @Tags owners
// @Produce  json
// @Param   includeInactive query bool false "Include deactivated owners"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Rows to skip" default(0)
// @Success 200 {array} dto.OwnerResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list owners"
// @Security BearerAuth
// @Router /owners [get]
func (h *ownerHandler) listOwners(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListOwnersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}

	owners, err := h.ownerService.ListOwners(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list owners")
		return
	}

	c.JSON(http.StatusOK, dto.ToListOwnerResponse(owners))
}

// updateOwner godoc
// @Summary Update a truck owner
// @Tags owners
// @Accept  json
// @Produce  json
// @Param   name path string true "Owner name"
// @Param   owner body dto.UpdateOwnerRequest true "Fields to change"
// @Success 200 {object} dto.OwnerResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Owner not found"
// @Failure 500 {object} ErrorResponse "Failed to update owner"
// @Security BearerAuth
// @Router /owners/{name} [put]
func (h *ownerHandler) updateOwner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")
	var req dto.UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "owner update")
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	owner, err := h.ownerService.UpdateOwner(c.Request.Context(), name, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("owner", name)), err, "Failed to update owner")
		return
	}

	c.JSON(http.StatusOK, dto.ToOwnerResponse(owner))
}

// deleteOwner godoc
// @Summary Deactivate a truck owner
// @Tags owners
// @Param   name path string true "Owner name"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Owner not found"
// @Failure 500 {object} ErrorResponse "Failed to deactivate owner"
// @Security BearerAuth
// @Router /owners/{name} [delete]
func (h *ownerHandler) deleteOwner(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.ownerService.DeactivateOwner(c.Request.Context(), name, userID); err != nil {
		respondError(c, logger.With(slog.String("owner", name)), err, "Failed to deactivate owner")
		return
	}

	c.Status(http.StatusNoContent)
}

// recordDeposit adds to or deducts from the owner's deposit.
// @Summary Add or deduct deposit
// @Description A deduction is capped at the current balance
// @Tags deposits
// @Accept  json
// @Produce  json
// @Param   name path string true "Owner name"
// @Param   deposit body dto.RecordDepositRequest true "Transaction type and amount"
// @Success 201 {object} domain.DepositTransaction
// @Failure 400 {object} ErrorResponse "Invalid input, unknown owner or empty balance"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 409 {object} ErrorResponse "Concurrent update, try again"
// @Failure 500 {object} ErrorResponse "Failed to record deposit"
// @Security BearerAuth
// @Router /owners/{name}/deposits [post]
func (h *ownerHandler) recordDeposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")
	var req dto.RecordDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err, "deposit request")
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	txn, err := h.depositService.RecordDepositTransaction(c.Request.Context(), name, req, userID)
	if err != nil {
		respondError(c, logger.With(slog.String("owner", name)), err, "Failed to record deposit transaction")
		return
	}

	c.JSON(http.StatusCreated, txn)
}

// listDeposits godoc
// @Summary Deposit history of an owner
// @Tags deposits
// @Produce  json
// @Param   name path string true "Owner name"
// @Success 200 {object} dto.DepositHistoryResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Owner not found"
// @Failure 500 {object} ErrorResponse "Failed to list deposits"
// @Security BearerAuth
// @Router /owners/{name}/deposits [get]
func (h *ownerHandler) listDeposits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	owner, entries, err := h.depositService.ListDepositTransactions(c.Request.Context(), name)
	if err != nil {
		respondError(c, logger.With(slog.String("owner", name)), err, "Failed to list deposit transactions")
		return
	}

	c.JSON(http.StatusOK, dto.DepositHistoryResponse{
		Owner:          owner.Name,
		DepositBalance: owner.DepositBalance,
		Transactions:   entries,
	})
}

// verifyDeposits replays the ledger against the stored balance.
// @Summary Verify an owner's deposit balance
// @Tags deposits
// @Produce  json
// @Param   name path string true "Owner name"
// @Success 200 {object} domain.DepositBalanceCheck
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Owner not found"
// @Failure 500 {object} ErrorResponse "Failed to verify deposits"
// @Security BearerAuth
// @Router /owners/{name}/deposits/verify [get]
func (h *ownerHandler) verifyDeposits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	name := c.Param("name")

	check, err := h.depositService.VerifyDepositBalance(c.Request.Context(), name)
	if err != nil {
		respondError(c, logger.With(slog.String("owner", name)), err, "Failed to verify deposit balance")
		return
	}

	c.JSON(http.StatusOK, check)
}
