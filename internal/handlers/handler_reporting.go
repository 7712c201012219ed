package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/quarry_billing_app/internal/apperrors"
	portssvc "github.com/SscSPs/quarry_billing_app/internal/core/ports/services"
	"github.com/SscSPs/quarry_billing_app/internal/dto"
	"github.com/SscSPs/quarry_billing_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

const reportDateLayout = "2006-01-02"

// reportingHandler handles HTTP requests related to reports
type reportingHandler struct {
	reportingService portssvc.ReportingService
	now              func() time.Time
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		now:              time.Now,
	}
}

// registerReportingRoutes registers routes related to reports
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/summary", h.getFinancialSummary)
		reportingGroup.GET("/credit-aging", h.getCreditAging)
		reportingGroup.GET("/partners", h.getPartnerSummary)
	}
}

// period turns inclusive YYYY-MM-DD dates into a half-open [from, to) range.
// Missing ends default to the current month.
func (h *reportingHandler) period(params dto.ReportPeriodParams) (time.Time, time.Time, error) {
	now := h.now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	if params.From != "" {
		parsed, err := time.Parse(reportDateLayout, params.From)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid from date '%s', expected YYYY-MM-DD", apperrors.ErrValidation, params.From)
		}
		from = parsed
	}
	if params.To != "" {
		parsed, err := time.Parse(reportDateLayout, params.To)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid to date '%s', expected YYYY-MM-DD", apperrors.ErrValidation, params.To)
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}

// getFinancialSummary godoc
// @Summary Financial summary
// @Description Totals active receipts dated within the period, by payment method
// @Tags reports
// @Produce  json
// @Param   from query string false "First day, YYYY-MM-DD inclusive (default start of month)"
// @Param   to query string false "Last day, YYYY-MM-DD inclusive (default end of month)"
// @Success 200 {object} domain.FinancialSummary
// @Failure 400 {object} ErrorResponse "Invalid date range"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build summary"
// @Security BearerAuth
// @Router /reports/summary [get]
func (h *reportingHandler) getFinancialSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}
	from, to, err := h.period(params)
	if err != nil {
		respondError(c, logger, err, "Invalid report period")
		return
	}

	summary, err := h.reportingService.FinancialSummary(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to generate financial summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// getCreditAging reports outstanding credit as of the end of asOf (default today).
// @Summary Credit aging
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Day, YYYY-MM-DD (default today)"
// @Success 200 {object} map[string]interface{} "asOf and rows of domain.CreditAgingRow"
// @Failure 400 {object} ErrorResponse "Invalid date"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build credit aging"
// @Security BearerAuth
// @Router /reports/credit-aging [get]
func (h *reportingHandler) getCreditAging(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.CreditAgingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}

	asOf := h.now().UTC()
	if params.AsOf != "" {
		parsed, err := time.Parse(reportDateLayout, params.AsOf)
		if err != nil {
			respondError(c, logger, fmt.Errorf("%w: invalid asOf date '%s', expected YYYY-MM-DD", apperrors.ErrValidation, params.AsOf), "Invalid as-of date")
			return
		}
		asOf = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	rows, err := h.reportingService.CreditAging(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to generate credit aging report")
		return
	}

	c.JSON(http.StatusOK, gin.H{"asOf": asOf, "rows": rows})
}

// getPartnerSummary godoc
// @Summary Partner summary
// @Tags reports
// @Produce  json
// @Param   from query string false "First day, YYYY-MM-DD inclusive (default start of month)"
// @Param   to query string false "Last day, YYYY-MM-DD inclusive (default end of month)"
// @Success 200 {object} map[string]interface{} "from, to and rows of domain.PartnerSummaryRow"
// @Failure 400 {object} ErrorResponse "Invalid date range"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to build partner summary"
// @Security BearerAuth
// @Router /reports/partners [get]
func (h *reportingHandler) getPartnerSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, logger, err, "query parameters")
		return
	}
	from, to, err := h.period(params)
	if err != nil {
		respondError(c, logger, err, "Invalid report period")
		return
	}

	rows, err := h.reportingService.PartnerSummary(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to generate partner summary")
		return
	}

	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "rows": rows})
}
