package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/peraplan/peraplan_backend/internal/core/ports/services"
	"github.com/peraplan/peraplan_backend/internal/dto"
	"github.com/peraplan/peraplan_backend/internal/middleware"
)

// defaultReportingCurrency is used when a summary request omits the currency
// filter. Forecast totals only include entries in this currency.
const defaultReportingCurrency = "USD"

// planningHandler holds dependencies for projection and aggregation routes.
// All derived views are computed on demand; nothing here writes.
type planningHandler struct {
	planningService portssvc.PlanningSvcFacade
}

func newPlanningHandler(planningService portssvc.PlanningSvcFacade) *planningHandler {
	return &planningHandler{planningService: planningService}
}

// registerPlanningRoutes sets up the routes for derived planning views.
func registerPlanningRoutes(rg *gin.RouterGroup, planningService portssvc.PlanningSvcFacade) {
	h := newPlanningHandler(planningService)

	planningRoutes := rg.Group("/planning")
	{
		planningRoutes.GET("/summary", h.getPeriodSummary)
		planningRoutes.GET("/reminders", h.getReminders)
		planningRoutes.GET("/upcoming-payments", h.getUpcomingPayments)
		planningRoutes.GET("/envelopes", h.getEnvelopeUsages)
		planningRoutes.GET("/category-insights", h.getCategoryInsights)
	}
}

// currentMonthRange returns the first instant of the current month and the
// last moment of its final day.
func currentMonthRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// resolveRange fills in missing range bounds from the current month.
func resolveRange(from, to *time.Time, now time.Time) (time.Time, time.Time) {
	monthStart, monthEnd := currentMonthRange(now)
	rangeStart, rangeEnd := monthStart, monthEnd
	if from != nil {
		rangeStart = *from
	}
	if to != nil {
		// Treat a bare date as inclusive of the whole day.
		rangeEnd = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return rangeStart, rangeEnd
}

// getPeriodSummary godoc
// @Summary Get period summary
// @Description Aggregates realized and projected activity over a reporting window. Defaults to the current calendar month.
// @Tags planning
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Param currency query string false "Reporting currency for forecast totals" default(USD)
// @Success 200 {object} planning.PeriodSummary
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /planning/summary [get]
func (h *planningHandler) getPeriodSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var params dto.PeriodSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	rangeStart, rangeEnd := resolveRange(params.From, params.To, time.Now())
	if rangeEnd.Before(rangeStart) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Range end must not precede range start"})
		return
	}

	currencyCode := params.CurrencyCode
	if currencyCode == "" {
		currencyCode = defaultReportingCurrency
	}

	summary, err := h.planningService.GetPeriodSummary(c.Request.Context(), userID, rangeStart, rangeEnd, currencyCode)
	if err != nil {
		logger.Error("Failed to compute period summary", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute period summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// getReminders godoc
// @Summary Get upcoming reminders
// @Description Derives lead-time-adjusted reminders for schedule entries due in the next 30 days.
// @Tags planning
// @Produce json
// @Success 200 {object} dto.RemindersResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /planning/reminders [get]
func (h *planningHandler) getReminders(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	reminders, err := h.planningService.GetReminders(c.Request.Context(), userID, time.Now())
	if err != nil {
		logger.Error("Failed to derive reminders", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to derive reminders"})
		return
	}

	c.JSON(http.StatusOK, dto.RemindersResponse{Reminders: reminders})
}

// getUpcomingPayments godoc
// @Summary Get at-risk upcoming payments
// @Description Flags this month's remaining expense occurrences that their linked accounts cannot absorb.
// @Tags planning
// @Produce json
// @Success 200 {object} dto.UpcomingPaymentsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /planning/upcoming-payments [get]
func (h *planningHandler) getUpcomingPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	payments, err := h.planningService.GetUpcomingPayments(c.Request.Context(), userID, time.Now())
	if err != nil {
		logger.Error("Failed to evaluate upcoming payments", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to evaluate upcoming payments"})
		return
	}

	c.JSON(http.StatusOK, dto.UpcomingPaymentsResponse{Payments: payments})
}

// getEnvelopeUsages godoc
// @Summary Get envelope usage
// @Description Computes usage and progress metrics for the user's budget envelopes and goals.
// @Tags planning
// @Produce json
// @Success 200 {object} dto.EnvelopeUsagesResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /planning/envelopes [get]
func (h *planningHandler) getEnvelopeUsages(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	envelopes, err := h.planningService.GetEnvelopeUsages(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to compute envelope usage", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute envelope usage"})
		return
	}

	c.JSON(http.StatusOK, dto.EnvelopeUsagesResponse{Envelopes: envelopes})
}

// getCategoryInsights godoc
// @Summary Get category insights
// @Description Ranks the user's top expense categories over a window. Defaults to the current calendar month.
// @Tags planning
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.CategoryInsightsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /planning/category-insights [get]
func (h *planningHandler) getCategoryInsights(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "User not authenticated"})
		return
	}

	var params dto.CategoryInsightsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	rangeStart, rangeEnd := resolveRange(params.From, params.To, time.Now())
	if rangeEnd.Before(rangeStart) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Range end must not precede range start"})
		return
	}

	insights, err := h.planningService.GetCategoryInsights(c.Request.Context(), userID, rangeStart, rangeEnd)
	if err != nil {
		logger.Error("Failed to compute category insights", "error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute category insights"})
		return
	}

	c.JSON(http.StatusOK, dto.CategoryInsightsResponse{Insights: insights})
}
