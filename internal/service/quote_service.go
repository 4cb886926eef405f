package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pgclosets-api/internal/domain"
	"pgclosets-api/internal/pricing"
	"pgclosets-api/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidQuoteStatus = errors.New("invalid quote status")
)

// QuoteService defines the interface for quote pricing and quote request handling
type QuoteService interface {
	PriceConfiguration(cfg domain.DoorConfiguration) (domain.QuoteTotals, error)
	SubmitQuoteRequest(ctx context.Context, input SubmitQuoteInput) (*domain.QuoteRequest, error)
	GetQuoteRequest(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error)
	ListQuoteRequests(ctx context.Context) ([]*domain.QuoteRequest, error)
	UpdateQuoteStatus(ctx context.Context, id uuid.UUID, status string) error
}

// SubmitQuoteInput holds the parameters for submitting a quote request
type SubmitQuoteInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Configuration domain.DoorConfiguration
	Notes         string
	PreferredDate *time.Time
}

type quoteService struct {
	quoteRepo repository.QuoteRequestRepository
}

// NewQuoteService creates a new instance of QuoteService
func NewQuoteService(quoteRepo repository.QuoteRequestRepository) QuoteService {
	return &quoteService{quoteRepo: quoteRepo}
}

// PriceConfiguration prices a door configuration without persisting anything.
// The storefront calls this on every configurator change.
func (s *quoteService) PriceConfiguration(cfg domain.DoorConfiguration) (domain.QuoteTotals, error) {
	return pricing.Price(cfg)
}

// SubmitQuoteRequest prices the configuration, snapshots the totals, and
// persists the request for staff follow-up. An unpriceable configuration
// fails with *pricing.InvalidConfigurationError before anything is stored.
func (s *quoteService) SubmitQuoteRequest(ctx context.Context, input SubmitQuoteInput) (*domain.QuoteRequest, error) {
	totals, err := pricing.Price(input.Configuration)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	quote := &domain.QuoteRequest{
		ID:            uuid.New(),
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Configuration: input.Configuration,
		Totals:        totals,
		Notes:         input.Notes,
		PreferredDate: input.PreferredDate,
		Status:        domain.QuoteStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to create quote request: %w", err)
	}

	return quote, nil
}

// GetQuoteRequest retrieves a quote request by ID
func (s *quoteService) GetQuoteRequest(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error) {
	quote, err := s.quoteRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrQuoteRequestNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get quote request: %w", err)
	}
	return quote, nil
}

// ListQuoteRequests retrieves all quote requests, newest first
func (s *quoteService) ListQuoteRequests(ctx context.Context) ([]*domain.QuoteRequest, error) {
	quotes, err := s.quoteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list quote requests: %w", err)
	}
	return quotes, nil
}

// UpdateQuoteStatus moves a quote request through its contact workflow
func (s *quoteService) UpdateQuoteStatus(ctx context.Context, id uuid.UUID, status string) error {
	switch status {
	case domain.QuoteStatusPending, domain.QuoteStatusContacted, domain.QuoteStatusClosed:
	default:
		return ErrInvalidQuoteStatus
	}

	if err := s.quoteRepo.UpdateStatus(ctx, id, status); err != nil {
		if err == repository.ErrQuoteRequestNotFound {
			return err
		}
		return fmt.Errorf("failed to update quote status: %w", err)
	}

	return nil
}
