package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockcharts/internal/domain/dto"
	"github.com/guttosm/stockcharts/internal/middleware"
	"github.com/guttosm/stockcharts/internal/service"
)

// Handler provides the HTTP handlers for the chart and metrics widgets.
//
// Responsibilities:
//   - Parse the optional "companies" query parameter
//   - Delegate to the stocks service
//   - Translate domain errors into status codes via middleware.StatusFor
type Handler struct {
	svc service.StocksService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.StocksService) *Handler {
	return &Handler{svc: svc}
}

// Home handles GET /.
//
// Home godoc
// @Summary      Welcome message
// @Tags         stocks
// @Produce      json
// @Success      200  {object}  dto.HomeResponse
// @Router       / [get]
func (h *Handler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HomeResponse{Home: "Welcome to this stocks API"})
}

// GetData handles GET /data.
//
// GetData godoc
// @Summary      Chart payload
// @Description  Prices of the configured companies over the business-day window, indexed to 100 at the first day
// @Tags         stocks
// @Produce      json
// @Param        companies  query     string  false  "Comma-separated company names or tickers" example(Google,Amazon)
// @Success      200        {object}  dto.ChartPayload
// @Failure      404        {object}  dto.ErrorResponse  "Unknown company"
// @Failure      502        {object}  dto.ErrorResponse  "Market-data provider failure"
// @Failure      500        {object}  dto.ErrorResponse  "Internal Error"
// @Router       /data [get]
func (h *Handler) GetData(c *gin.Context) {
	payload, err := h.svc.Chart(c.Request.Context(), companiesParam(c))
	if err != nil {
		middleware.AbortWithError(c, middleware.StatusFor(err), "failed to build chart data", err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// GetMetrics handles GET /metrics.
//
// GetMetrics godoc
// @Summary      Metrics table
// @Description  Total return, annualized return and annualized volatility per company as fixed-width rows
// @Tags         stocks
// @Produce      json
// @Param        companies  query     string  false  "Comma-separated company names or tickers" example(Microsoft)
// @Success      200        {object}  dto.MetricsPayload
// @Failure      404        {object}  dto.ErrorResponse  "Unknown company"
// @Failure      502        {object}  dto.ErrorResponse  "Market-data provider failure"
// @Failure      500        {object}  dto.ErrorResponse  "Internal Error"
// @Router       /metrics [get]
func (h *Handler) GetMetrics(c *gin.Context) {
	payload, err := h.svc.Metrics(c.Request.Context(), companiesParam(c))
	if err != nil {
		middleware.AbortWithError(c, middleware.StatusFor(err), "failed to compute metrics", err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// companiesParam splits ?companies=a,b (repeatable) into trimmed names.
func companiesParam(c *gin.Context) []string {
	var out []string
	for _, raw := range c.QueryArray("companies") {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
