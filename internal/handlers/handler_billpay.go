package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/finly-app/finly_backend/internal/middleware"
)

// billPaymentHandler handles the composite bill payment endpoint.
type billPaymentHandler struct {
	billPaymentService portssvc.BillPaymentSvc
}

// newBillPaymentHandler creates a new billPaymentHandler.
func newBillPaymentHandler(bp portssvc.BillPaymentSvc) *billPaymentHandler {
	return &billPaymentHandler{billPaymentService: bp}
}

// registerBillPaymentRoutes registers the bill payment route.
func registerBillPaymentRoutes(rg *gin.RouterGroup, billPaymentService portssvc.BillPaymentSvc) {
	h := newBillPaymentHandler(billPaymentService)
	rg.POST("/bill-payments", h.payBill)
}

// payBill godoc
// @Summary Pay a credit card bill from a bank account
// @Description Creates the expense/income transaction pair across the bank and credit accounts atomically; on failure nothing is persisted and the request is safe to retry
// @Tags bill-payments
// @Accept  json
// @Produce  json
// @Param   payment body dto.PayBillRequest true "Bill payment details"
// @Success 201 {object} dto.PayBillResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Account types do not fit a bill payment"
// @Failure 500 {object} map[string]string "Payment failed; nothing was saved"
// @Security BearerAuth
// @Router /bill-payments [post]
func (h *billPaymentHandler) payBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.PayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for PayBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.billPaymentService.PayBill(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
