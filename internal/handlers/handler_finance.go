package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tokotrack/backoffice/internal/apperrors"
	"github.com/tokotrack/backoffice/internal/core/domain"
	portssvc "github.com/tokotrack/backoffice/internal/core/ports/services"
	"github.com/tokotrack/backoffice/internal/dto"
	"github.com/tokotrack/backoffice/internal/middleware"
)

// financeHandler handles HTTP requests for payables and receivables. Invoice
// creation and payments are postings, so it carries both services.
type financeHandler struct {
	postingService portssvc.PostingSvcFacade
	financeService portssvc.FinanceSvcFacade
}

func newFinanceHandler(ps portssvc.PostingSvcFacade, fs portssvc.FinanceSvcFacade) *financeHandler {
	return &financeHandler{
		postingService: ps,
		financeService: fs,
	}
}

// registerFinanceRoutes registers the AP/AR routes.
func registerFinanceRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade, financeService portssvc.FinanceSvcFacade) {
	h := newFinanceHandler(postingService, financeService)

	finances := rg.Group("/finances")
	{
		finances.POST("", h.createFinance)
		finances.POST("/payments", h.payInvoice)
		finances.GET("", h.listFinances)
		finances.GET("/outstanding", h.outstandingBalance)
		finances.DELETE("/:id", h.deleteFinance)
	}
}

func (h *financeHandler) createFinance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateFinanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateFinance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("finance_type", string(req.FinanceType)), slog.Int64("contact_id", req.ContactID))
	logger.Info("Received request to create finance invoice")

	resp, err := h.postingService.CreateFinanceInvoice(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating finance invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Referenced entity not found creating finance invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create finance invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create finance invoice"})
		}
		return
	}

	logger.Info("Finance invoice created successfully", slog.String("invoice", resp.Invoice))
	c.JSON(http.StatusCreated, resp)
}

func (h *financeHandler) payInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PayInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("invoice", req.Invoice))
	logger.Info("Received request to pay finance invoice")

	resp, err := h.postingService.PayFinanceInvoice(c.Request.Context(), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrOverpayment) {
			logger.Warn("Payment exceeds outstanding balance", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error paying finance invoice", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Finance invoice not found for payment")
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.Error("Failed to pay finance invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		}
		return
	}

	logger.Info("Payment recorded successfully")
	c.JSON(http.StatusCreated, resp)
}

func (h *financeHandler) listFinances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	financeType := domain.FinanceType(c.DefaultQuery("type", string(domain.Payable)))
	if financeType != domain.Payable && financeType != domain.Receivable {
		logger.Warn("Invalid finance type for listing", slog.String("type", string(financeType)))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type: expected Payable or Receivable"})
		return
	}

	var contactID *int64
	if raw := c.Query("contactID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logger.Warn("Invalid contact ID for finance listing", slog.String("contact_id", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contactID: " + raw})
			return
		}
		contactID = &id
	}

	resp, err := h.financeService.ListFinances(c.Request.Context(), financeType, contactID)
	if err != nil {
		logger.Error("Failed to list finances from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list finances"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *financeHandler) outstandingBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	invoice := c.Query("invoice")
	if invoice == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter invoice"})
		return
	}

	outstanding, err := h.financeService.OutstandingBalance(c.Request.Context(), invoice)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Finance invoice not found for outstanding query", slog.String("invoice", invoice))
			c.JSON(http.StatusNotFound, gin.H{"error": "Invoice not found"})
		} else {
			logger.Error("Failed to compute outstanding balance", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute outstanding balance"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoice": invoice, "outstanding": outstanding})
}

func (h *financeHandler) deleteFinance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	financeID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("finance_id", financeID), slog.String("deleter_user_id", userID))
	logger.Info("Received request to delete finance record")

	err := h.financeService.DeleteFinance(c.Request.Context(), financeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Finance record not found for deletion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Finance record not found"})
		} else if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Finance record already has payments")
			c.JSON(http.StatusConflict, gin.H{"error": "Invoice has payments; delete the payments first"})
		} else if errors.Is(err, apperrors.ErrInUse) {
			logger.Warn("Finance record referenced by inventory transactions")
			c.JSON(http.StatusConflict, gin.H{"error": "Invoice is referenced by inventory transactions"})
		} else {
			logger.Error("Failed to delete finance record in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete finance record"})
		}
		return
	}

	logger.Info("Finance record deleted successfully")
	c.Status(http.StatusNoContent)
}
