package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tokotrack/backoffice/internal/apperrors"
	portssvc "github.com/tokotrack/backoffice/internal/core/ports/services"
	"github.com/tokotrack/backoffice/internal/dto"
	"github.com/tokotrack/backoffice/internal/middleware"
)

// journalHandler handles HTTP requests for posting business events and for
// reading and correcting journal lines.
type journalHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newJournalHandler(ps portssvc.PostingSvcFacade) *journalHandler {
	return &journalHandler{
		postingService: ps,
	}
}

// registerJournalRoutes registers the posting and journal routes.
func registerJournalRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newJournalHandler(postingService)

	journals := rg.Group("/journals")
	{
		journals.POST("/transfer", h.createTransfer)
		journals.POST("/mutation", h.createMutation)
		journals.POST("/voucher-sale", h.createVoucherSale)
		journals.POST("/deposit-sale", h.createDepositSale)
		journals.POST("/sales", h.createSalesByValue)
		journals.POST("/checkout", h.checkoutCart)
		journals.POST("/stock-adjustment", h.createStockAdjustment)
		journals.GET("", h.listJournals)
		journals.GET("/:id", h.getJournal)
		journals.PUT("/:id", h.updateJournal)
		journals.DELETE("/:id", h.deleteJournal)
	}
}

// postingCall is the shape every posting endpoint shares once its request has
// been bound.
type postingCall func(userID string) (*dto.PostingResponse, error)

// handlePosting runs a posting service call and writes the shared response and
// error mapping. The caller has already bound and logged its request.
func (h *journalHandler) handlePosting(c *gin.Context, operation string, call postingCall) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context", slog.String("operation", operation))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := call(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error posting event", slog.String("operation", operation), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Referenced entity not found posting event", slog.String("operation", operation), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrOverpayment) {
			logger.Warn("Overpayment rejected", slog.String("operation", operation), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to post event", slog.String("operation", operation), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to post " + operation})
		}
		return
	}

	logger.Info("Event posted successfully", slog.String("operation", operation), slog.String("invoice", resp.Invoice))
	c.JSON(http.StatusCreated, resp)
}

func (h *journalHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.handlePosting(c, "transfer", func(userID string) (*dto.PostingResponse, error) {
		return h.postingService.CreateTransfer(c.Request.Context(), req, userID)
	})
}

func (h *journalHandler) createMutation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMutation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.handlePosting(c, "mutation", func(userID string) (*dto.PostingResponse, error) {
		return h.postingService.CreateMutation(c.Request.Context(), req, userID)
	})
}

func (h *journalHandler) createVoucherSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.VoucherSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for VoucherSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.handlePosting(c, "voucher sale", func(userID string) (*dto.PostingResponse, error) {
		return h.postingService.CreateVoucherSale(c.Request.Context(), req, userID)
	})
}

func (h *journalHandler) createDepositSale(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DepositSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for DepositSale", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.handlePosting(c, "deposit sale", func(userID string) (*dto.PostingResponse, error) {
		return h.postingService.CreateDepositSale(c.Request.Context(), req, userID)
	})
}

func (h *journalHandler) createSalesByValue(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SalesByValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SalesByValue", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.handlePosting(c, "goods sale", func(userID string) (*dto.PostingResponse, error) {
		return h.postingService.CreateSalesByValue(c.Request.Context(), req, userID)
	})
}

func (h *journalHandler) checkoutCart(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CheckoutCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CheckoutCart", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.handlePosting(c, "checkout", func(userID string) (*dto.PostingResponse, error) {
		return h.postingService.CheckoutCart(c.Request.Context(), req, userID)
	})
}

func (h *journalHandler) createStockAdjustment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.StockAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for StockAdjustment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	h.handlePosting(c, "stock adjustment", func(userID string) (*dto.PostingResponse, error) {
		return h.postingService.CreateStockAdjustment(c.Request.Context(), req, userID)
	})
}

func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	start, err := requireDateQuery(c, "start")
	if err != nil {
		logger.Warn("Invalid start date for journal listing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := parseDateQuery(c, "end", time.Now())
	if err != nil {
		logger.Warn("Invalid end date for journal listing", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var warehouseID *int64
	if raw := c.Query("warehouseID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			logger.Warn("Invalid warehouse ID for journal listing", slog.String("warehouse_id", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid warehouseID: " + raw})
			return
		}
		warehouseID = &id
	}

	lines, err := h.postingService.ListJournals(c.Request.Context(), start, end, warehouseID)
	if err != nil {
		logger.Error("Failed to list journals from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"journals": dto.ToJournalResponses(lines)})
}

func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	line, err := h.postingService.GetJournalByID(c.Request.Context(), journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Journal not found", slog.String("journal_id", journalID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
		} else {
			logger.Error("Failed to get journal from service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(line))
}

func (h *journalHandler) updateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	var req dto.UpdateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("journal_id", journalID), slog.String("updater_user_id", userID))
	logger.Info("Received request to update journal")

	line, err := h.postingService.UpdateJournal(c.Request.Context(), journalID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Journal not found for update")
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error updating journal", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to update journal in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update journal"})
		}
		return
	}

	logger.Info("Journal updated successfully")
	c.JSON(http.StatusOK, dto.ToJournalResponse(line))
}

func (h *journalHandler) deleteJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("journal_id", journalID), slog.String("deleter_user_id", userID))
	logger.Info("Received request to delete journal invoice")

	err := h.postingService.DeleteJournalInvoice(c.Request.Context(), journalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Journal not found for deletion")
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal not found"})
		} else if errors.Is(err, apperrors.ErrInUse) {
			logger.Warn("Journal invoice referenced by finance records")
			c.JSON(http.StatusConflict, gin.H{"error": "Invoice is referenced by finance records; delete the finance record instead"})
		} else {
			logger.Error("Failed to delete journal invoice in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete journal"})
		}
		return
	}

	logger.Info("Journal invoice deleted successfully")
	c.Status(http.StatusNoContent)
}
