package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pgclosets-api/internal/domain"
	"pgclosets-api/internal/repository"
	"pgclosets-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Mock repositories for testing
type mockQuoteRequestRepository struct {
	quotes map[uuid.UUID]*domain.QuoteRequest
}

func newMockQuoteRequestRepository() *mockQuoteRequestRepository {
	return &mockQuoteRequestRepository{quotes: make(map[uuid.UUID]*domain.QuoteRequest)}
}

func (m *mockQuoteRequestRepository) Create(ctx context.Context, quote *domain.QuoteRequest) error {
	m.quotes[quote.ID] = quote
	return nil
}

func (m *mockQuoteRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error) {
	quote, exists := m.quotes[id]
	if !exists {
		return nil, repository.ErrQuoteRequestNotFound
	}
	return quote, nil
}

func (m *mockQuoteRequestRepository) List(ctx context.Context) ([]*domain.QuoteRequest, error) {
	quotes := make([]*domain.QuoteRequest, 0, len(m.quotes))
	for _, q := range m.quotes {
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (m *mockQuoteRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	quote, exists := m.quotes[id]
	if !exists {
		return repository.ErrQuoteRequestNotFound
	}
	quote.Status = status
	return nil
}

func noopLimiter(next http.Handler) http.Handler { return next }

func setupQuoteRouter(repo repository.QuoteRequestRepository) chi.Router {
	handler := NewQuoteHandler(service.NewQuoteService(repo), zap.NewNop())
	router := chi.NewRouter()
	handler.RegisterRoutes(router, noopLimiter)
	return router
}

func TestQuoteHandler_PriceQuote(t *testing.T) {
	router := setupQuoteRouter(newMockQuoteRequestRepository())

	body := []byte(`{"type":"barn","hardware_cost":149,"installation_requested":true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/price", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	var resp QuoteTotalsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Subtotal != 1247 {
		t.Errorf("subtotal = %d, want 1247", resp.Subtotal)
	}
	if resp.Total != resp.Subtotal+resp.Tax {
		t.Errorf("total %d != subtotal %d + tax %d", resp.Total, resp.Subtotal, resp.Tax)
	}
	if resp.TotalDisplay != "$1,409 CAD" {
		t.Errorf("total display = %q, want %q", resp.TotalDisplay, "$1,409 CAD")
	}
}

func TestQuoteHandler_PriceQuoteInvalidType(t *testing.T) {
	router := setupQuoteRouter(newMockQuoteRequestRepository())

	body := []byte(`{"type":"french"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/quotes/price", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
	}
}

func TestQuoteHandler_SubmitQuote(t *testing.T) {
	repo := newMockQuoteRequestRepository()
	router := setupQuoteRouter(repo)

	body := []byte(`{
		"customer_name": "Dana Moreau",
		"customer_email": "dana@example.com",
		"type": "bypass",
		"hardware_cost": 59,
		"preferred_date": "2026-10-15"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", rec.Code, rec.Body.String())
	}

	var resp QuoteRequestView
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Status != domain.QuoteStatusPending {
		t.Errorf("status = %q, want pending", resp.Status)
	}
	if resp.Totals.Subtotal != 608 {
		t.Errorf("subtotal = %d, want 608", resp.Totals.Subtotal)
	}
	if resp.PreferredDate != "2026-10-15" {
		t.Errorf("preferred date = %q, want 2026-10-15", resp.PreferredDate)
	}
	if len(repo.quotes) != 1 {
		t.Errorf("persisted quotes = %d, want 1", len(repo.quotes))
	}
}

func TestQuoteHandler_SubmitQuoteValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing customer name", `{"customer_email":"a@b.com","type":"barn"}`},
		{"bad email", `{"customer_name":"X","customer_email":"not-an-email","type":"barn"}`},
		{"missing type", `{"customer_name":"X","customer_email":"a@b.com"}`},
		{"malformed json", `{`},
		{"bad preferred date", `{"customer_name":"X","customer_email":"a@b.com","type":"barn","preferred_date":"soon"}`},
		{"absurd hardware cost", `{"customer_name":"X","customer_email":"a@b.com","type":"barn","hardware_cost":9223372036854775000}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockQuoteRequestRepository()
			router := setupQuoteRouter(repo)

			req := httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", rec.Code, rec.Body.String())
			}
			if len(repo.quotes) != 0 {
				t.Error("nothing should be persisted for a rejected submission")
			}
		})
	}
}

func TestQuoteHandler_StatusWorkflow(t *testing.T) {
	repo := newMockQuoteRequestRepository()
	router := setupQuoteRouter(repo)

	// Seed one quote through the public endpoint.
	body := []byte(`{"customer_name":"Sam Oduya","customer_email":"sam@example.com","type":"bifold"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("seed submission failed: %d", rec.Code)
	}

	var created QuoteRequestView
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode seed response: %v", err)
	}

	req = httptest.NewRequest(http.MethodPatch, "/api/quotes/"+created.ID+"/status", bytes.NewReader([]byte(`{"status":"contacted"}`)))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status update = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/quotes/"+created.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get quote = %d, want 200", rec.Code)
	}

	var fetched QuoteRequestView
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("failed to decode quote: %v", err)
	}
	if fetched.Status != domain.QuoteStatusContacted {
		t.Errorf("status = %q, want contacted", fetched.Status)
	}

	// Unknown status is rejected by validation.
	req = httptest.NewRequest(http.MethodPatch, "/api/quotes/"+created.ID+"/status", bytes.NewReader([]byte(`{"status":"archived"}`)))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid status update = %d, want 400", rec.Code)
	}

	// Unknown quote is a 404.
	req = httptest.NewRequest(http.MethodGet, "/api/quotes/"+uuid.New().String(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing quote = %d, want 404", rec.Code)
	}
}
