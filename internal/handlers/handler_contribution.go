package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finly-app/finly_backend/internal/core/ports/services"
	"github.com/finly-app/finly_backend/internal/dto"
	"github.com/finly-app/finly_backend/internal/middleware"
)

// contributionHandler handles HTTP requests related to goal contributions.
type contributionHandler struct {
	contributionService portssvc.ContributionSvcFacade
}

// newContributionHandler creates a new contributionHandler.
func newContributionHandler(cs portssvc.ContributionSvcFacade) *contributionHandler {
	return &contributionHandler{contributionService: cs}
}

// registerContributionRoutes registers routes related to contributions.
func registerContributionRoutes(rg *gin.RouterGroup, contributionService portssvc.ContributionSvcFacade) {
	h := newContributionHandler(contributionService)

	contributions := rg.Group("/contributions")
	{
		contributions.POST("", h.createContribution)
		contributions.DELETE("/:id", h.deleteContribution)
	}

	// Per-budget contribution listing lives under the budgets prefix.
	rg.GET("/budgets/:id/contributions", h.listContributionsByBudget)
}

// createContribution godoc
// @Summary Contribute toward a savings goal
// @Description Moves money from a funding account into a goal as one atomic unit; the account's projected balance drops by exactly the contribution amount
// @Tags contributions
// @Accept  json
// @Produce  json
// @Param   contribution body dto.CreateContributionRequest true "Contribution details"
// @Success 201 {object} dto.ContributionResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Budget or account not found"
// @Failure 422 {object} map[string]string "Budget is not a goal, or funding account is a credit account"
// @Security BearerAuth
// @Router /contributions [post]
func (h *contributionHandler) createContribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateContribution", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contribution, err := h.contributionService.CreateContribution(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToContributionResponse(contribution))
}

// deleteContribution godoc
// @Summary Delete a contribution
// @Description Removes a contribution owned by the user; the funding account's projected balance rises by the contribution amount
// @Tags contributions
// @Produce  json
// @Param   id path string true "Contribution ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Contribution not found"
// @Security BearerAuth
// @Router /contributions/{id} [delete]
func (h *contributionHandler) deleteContribution(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	contributionID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.contributionService.DeleteContribution(c.Request.Context(), contributionID, userID); err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// listContributionsByBudget godoc
// @Summary List a goal's contributions
// @Description Lists the contributions feeding a budget owned by the user
// @Tags contributions
// @Produce  json
// @Param   id path string true "Budget ID"
// @Success 200 {object} dto.ListContributionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Budget not found"
// @Security BearerAuth
// @Router /budgets/{id}/contributions [get]
func (h *contributionHandler) listContributionsByBudget(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	budgetID := c.Param("id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	contributions, err := h.contributionService.ListContributionsByBudget(c.Request.Context(), budgetID, userID)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListContributionsResponse{Contributions: dto.ToContributionResponses(contributions)})
}
