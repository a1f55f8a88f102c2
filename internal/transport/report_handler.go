package transport

import (
	"net/http"

	"supermarket/internal/middleware"
	"supermarket/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// TrendingItemResponse is one row of the trending report
type TrendingItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	TotalSold int64  `json:"total_sold"`
}

type ReportHandler struct {
	reports service.ReportService
	logger  *zap.Logger
}

func NewReportHandler(reports service.ReportService, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{reports: reports, logger: logger}
}

func (h *ReportHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/reports/trending", h.Trending)
}

// Trending handles GET /api/reports/trending. An empty window is a 200 with [].
func (h *ReportHandler) Trending(w http.ResponseWriter, r *http.Request) {
	items, err := h.reports.Trending(r.Context())
	if err != nil {
		h.logger.Error("Failed to build trending report", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to build trending report")
		return
	}

	response := make([]TrendingItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, TrendingItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Category:  item.Category,
			TotalSold: item.TotalSold,
		})
	}
	middleware.RespondWithJSON(w, http.StatusOK, response)
}
