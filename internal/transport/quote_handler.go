package transport

import (
	"errors"
	"net/http"
	"time"

	"pgclosets-api/internal/domain"
	"pgclosets-api/internal/middleware"
	"pgclosets-api/internal/pricing"
	"pgclosets-api/internal/repository"
	"pgclosets-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PriceQuoteRequest represents the configurator pricing request payload
type PriceQuoteRequest struct {
	Type                  string `json:"type" validate:"required"`
	HardwareCost          int64  `json:"hardware_cost"`
	InstallationRequested bool   `json:"installation_requested"`
}

// QuoteTotalsResponse carries the computed totals plus display strings
type QuoteTotalsResponse struct {
	Subtotal        int64  `json:"subtotal"`
	Tax             int64  `json:"tax"`
	Total           int64  `json:"total"`
	SubtotalDisplay string `json:"subtotal_display"`
	TaxDisplay      string `json:"tax_display"`
	TotalDisplay    string `json:"total_display"`
}

// SubmitQuoteRequest represents the quote submission payload
type SubmitQuoteRequest struct {
	CustomerName          string `json:"customer_name" validate:"required"`
	CustomerEmail         string `json:"customer_email" validate:"required,email"`
	CustomerPhone         string `json:"customer_phone"`
	Type                  string `json:"type" validate:"required"`
	HardwareCost          int64  `json:"hardware_cost"`
	InstallationRequested bool   `json:"installation_requested"`
	Notes                 string `json:"notes"`
	PreferredDate         string `json:"preferred_date"` // YYYY-MM-DD, optional
}

// UpdateQuoteStatusRequest represents the quote status update payload
type UpdateQuoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending contacted closed"`
}

// QuoteRequestView is the display shape for a submitted quote request
type QuoteRequestView struct {
	ID            string                   `json:"id"`
	CustomerName  string                   `json:"customer_name"`
	CustomerEmail string                   `json:"customer_email"`
	CustomerPhone string                   `json:"customer_phone,omitempty"`
	Configuration domain.DoorConfiguration `json:"configuration"`
	Totals        QuoteTotalsResponse      `json:"totals"`
	Notes         string                   `json:"notes,omitempty"`
	PreferredDate string                   `json:"preferred_date,omitempty"`
	Status        string                   `json:"status"`
	CreatedAt     time.Time                `json:"created_at"`
}

// QuoteHandler handles HTTP requests for pricing and quote requests
type QuoteHandler struct {
	quoteService service.QuoteService
	logger       *zap.Logger
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService service.QuoteService, logger *zap.Logger) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
		logger:       logger,
	}
}

// RegisterRoutes registers all quote routes. The submit endpoint is public
// and rate limited; the follow-up endpoints are for staff tooling.
func (h *QuoteHandler) RegisterRoutes(r chi.Router, submitLimiter func(http.Handler) http.Handler) {
	r.Route("/api/quotes", func(r chi.Router) {
		r.Post("/price", h.PriceQuote)
		r.With(submitLimiter).Post("/", h.SubmitQuote)

		r.Get("/", h.ListQuotes)
		r.Get("/{id}", h.GetQuote)
		r.Patch("/{id}/status", h.UpdateQuoteStatus)
	})
}

// PriceQuote prices a door configuration without persisting anything
func (h *QuoteHandler) PriceQuote(w http.ResponseWriter, r *http.Request) {
	var req PriceQuoteRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Price quote validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	totals, err := h.quoteService.PriceConfiguration(domain.DoorConfiguration{
		Type:                  domain.DoorType(req.Type),
		HardwareCost:          req.HardwareCost,
		InstallationRequested: req.InstallationRequested,
	})
	if err != nil {
		var cfgErr *pricing.InvalidConfigurationError
		if errors.As(err, &cfgErr) {
			middleware.RespondWithError(w, http.StatusBadRequest, cfgErr.Error())
			return
		}

		h.logger.Error("Pricing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to price configuration")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toTotalsResponse(totals))
}

// SubmitQuote persists a quote request for staff follow-up
func (h *QuoteHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	var req SubmitQuoteRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Quote submission validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	input := service.SubmitQuoteInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Configuration: domain.DoorConfiguration{
			Type:                  domain.DoorType(req.Type),
			HardwareCost:          req.HardwareCost,
			InstallationRequested: req.InstallationRequested,
		},
		Notes: req.Notes,
	}

	if req.PreferredDate != "" {
		date, err := time.Parse("2006-01-02", req.PreferredDate)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "preferred_date must be YYYY-MM-DD")
			return
		}
		input.PreferredDate = &date
	}

	quote, err := h.quoteService.SubmitQuoteRequest(r.Context(), input)
	if err != nil {
		var cfgErr *pricing.InvalidConfigurationError
		if errors.As(err, &cfgErr) {
			middleware.RespondWithError(w, http.StatusBadRequest, cfgErr.Error())
			return
		}

		h.logger.Error("Quote submission failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit quote request")
		return
	}

	h.logger.Info("Quote request submitted",
		zap.String("quote_id", quote.ID.String()),
		zap.String("door_type", string(quote.Configuration.Type)),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, toQuoteView(quote))
}

// GetQuote retrieves a single quote request
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetQuoteRequest(r.Context(), id)
	if err != nil {
		if err == repository.ErrQuoteRequestNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "quote request not found")
			return
		}

		h.logger.Error("Quote lookup failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load quote request")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toQuoteView(quote))
}

// ListQuotes retrieves all quote requests, newest first
func (h *QuoteHandler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.quoteService.ListQuoteRequests(r.Context())
	if err != nil {
		h.logger.Error("Quote listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load quote requests")
		return
	}

	views := make([]QuoteRequestView, 0, len(quotes))
	for _, q := range quotes {
		views = append(views, toQuoteView(q))
	}

	middleware.RespondWithJSON(w, http.StatusOK, views)
}

// UpdateQuoteStatus moves a quote request through its contact workflow
func (h *QuoteHandler) UpdateQuoteStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid quote ID")
		return
	}

	var req UpdateQuoteStatusRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.quoteService.UpdateQuoteStatus(r.Context(), id, req.Status); err != nil {
		switch {
		case err == repository.ErrQuoteRequestNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "quote request not found")
		case err == service.ErrInvalidQuoteStatus:
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid quote status")
		default:
			h.logger.Error("Quote status update failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update quote status")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": req.Status})
}

func toTotalsResponse(totals domain.QuoteTotals) QuoteTotalsResponse {
	return QuoteTotalsResponse{
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Total:           totals.Total,
		SubtotalDisplay: pricing.FormatPrice(&totals.Subtotal, ""),
		TaxDisplay:      pricing.FormatPrice(&totals.Tax, ""),
		TotalDisplay:    pricing.FormatPrice(&totals.Total, ""),
	}
}

func toQuoteView(q *domain.QuoteRequest) QuoteRequestView {
	view := QuoteRequestView{
		ID:            q.ID.String(),
		CustomerName:  q.CustomerName,
		CustomerEmail: q.CustomerEmail,
		CustomerPhone: q.CustomerPhone,
		Configuration: q.Configuration,
		Totals:        toTotalsResponse(q.Totals),
		Notes:         q.Notes,
		Status:        q.Status,
		CreatedAt:     q.CreatedAt,
	}
	if q.PreferredDate != nil {
		view.PreferredDate = q.PreferredDate.Format("2006-01-02")
	}
	return view
}
