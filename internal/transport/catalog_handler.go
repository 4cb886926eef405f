package transport

import (
	"net/http"
	"strconv"

	"pgclosets-api/internal/catalog"
	"pgclosets-api/internal/domain"
	"pgclosets-api/internal/middleware"
	"pgclosets-api/internal/pricing"
	"pgclosets-api/internal/repository"
	"pgclosets-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductView is the display shape for a catalog product. URL is empty when
// no usable slug could be derived; the storefront then renders the card
// without a detail link.
type ProductView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	Category     string `json:"category"`
	Price        *int64 `json:"price,omitempty"`
	PriceDisplay string `json:"price_display"`
	InStock      bool   `json:"in_stock"`
	ImageURL     string `json:"image_url,omitempty"`
	URL          string `json:"url,omitempty"`
}

// ProductPageResponse is one page of catalog search results
type ProductPageResponse struct {
	Items   []ProductView `json:"items"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	Limit   int           `json:"limit"`
	HasMore bool          `json:"has_more"`
}

// CategoryView is the display shape for a category
type CategoryView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CatalogHandler handles HTTP requests for catalog browsing
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/{slug}", h.GetProduct)
	})
	r.Get("/api/categories", h.ListCategories)
}

// ListProducts handles catalog search. Query parameters map onto the filter
// criteria; absent or unparseable values are treated as "no constraint", so
// a garbled URL still renders a product list instead of an error page.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria := catalog.Criteria{
		Category:   q.Get("category"),
		SearchText: q.Get("q"),
	}
	if v, err := strconv.ParseInt(q.Get("min_price"), 10, 64); err == nil {
		criteria.MinPrice = &v
	}
	if v, err := strconv.ParseInt(q.Get("max_price"), 10, 64); err == nil {
		criteria.MaxPrice = &v
	}
	if v, err := strconv.ParseBool(q.Get("in_stock")); err == nil {
		criteria.InStock = &v
	}

	pg := catalog.Pagination{}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		pg.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		pg.Limit = v
	}

	page, err := h.catalogService.SearchProducts(r.Context(), criteria, catalog.Sort(q.Get("sort")), pg)
	if err != nil {
		h.logger.Error("Product search failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	response := ProductPageResponse{
		Items:   make([]ProductView, 0, len(page.Items)),
		Total:   page.Total,
		Page:    page.Page,
		Limit:   page.Limit,
		HasMore: page.HasMore,
	}
	for _, p := range page.Items {
		response.Items = append(response.Items, toProductView(p))
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}

// GetProduct handles a product detail page lookup by slug
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.catalogService.GetProductBySlug(r.Context(), slug)
	if err != nil {
		if err == repository.ErrProductNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Product lookup failed", zap.Error(err), zap.String("slug", slug))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toProductView(product))
}

// ListCategories handles the category taxonomy listing
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("Category listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load categories")
		return
	}

	views := make([]CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, CategoryView{
			ID:          c.ID.String(),
			Name:        c.Name,
			Description: c.Description,
		})
	}

	middleware.RespondWithJSON(w, http.StatusOK, views)
}

func toProductView(p *domain.Product) ProductView {
	view := ProductView{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		InStock:     p.InStock,
		ImageURL:    p.ImageURL,
	}

	if p.Price != nil {
		view.PriceDisplay = pricing.FormatPrice(p.Price, "")
	} else {
		view.PriceDisplay = pricing.FormatPriceRange(p.PriceMin, p.PriceMax, "")
	}

	if slug := catalog.DeriveSlug(p.Slug, p.Handle, p.Name); slug != "" {
		view.URL = "/products/" + slug
	}

	return view
}
