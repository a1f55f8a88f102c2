package transport

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"supermarket/internal/domain"
	"supermarket/internal/middleware"
	"supermarket/internal/repository"
	"supermarket/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductQuery selects one of the inventory views: all products, one
// category, or an inclusive price range. Category and a range are exclusive.
type ProductQuery struct {
	Category string `query:"category" validate:"omitempty,max=255,excluded_with=MinPrice MaxPrice"`
	MinPrice string `query:"min_price" validate:"required_with=MaxPrice,omitempty,numeric"`
	MaxPrice string `query:"max_price" validate:"required_with=MinPrice,omitempty,numeric"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     string    `json:"price"`
	Quantity  int       `json:"quantity"`
	NetPrice  string    `json:"net_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Price:     p.Price.StringFixed(2),
		Quantity:  p.Quantity,
		NetPrice:  p.NetPrice().StringFixed(2),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ProductHandler serves the read-only inventory views
type ProductHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalog service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})
}

// List handles GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	var q ProductQuery
	if err := middleware.DecodeQuery(r, &q); err != nil {
		if details := middleware.FormatValidationErrors(err); len(details) > 0 {
			middleware.RespondWithValidationErrors(w, details)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid query")
		return
	}

	var (
		products []*domain.Product
		err      error
	)
	switch {
	case q.MinPrice != "":
		min, minErr := decimal.NewFromString(q.MinPrice)
		max, maxErr := decimal.NewFromString(q.MaxPrice)
		if minErr != nil || maxErr != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid price range")
			return
		}
		products, err = h.catalog.ListByPriceRange(r.Context(), min, max)
	case q.Category != "":
		products, err = h.catalog.ListByCategory(r.Context(), q.Category)
	default:
		products, err = h.catalog.ListAll(r.Context())
	}
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	response := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		response = append(response, toProductResponse(p))
	}
	middleware.RespondWithJSON(w, http.StatusOK, response)
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Int64("product_id", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductResponse(product))
}
