package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pgclosets-api/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrQuoteRequestNotFound = errors.New("quote request not found")
)

// QuoteRequestRepository defines the interface for quote request persistence
type QuoteRequestRepository interface {
	Create(ctx context.Context, quote *domain.QuoteRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error)
	List(ctx context.Context) ([]*domain.QuoteRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type quoteRequestRepository struct {
	db *sql.DB
}

// NewQuoteRequestRepository creates a new instance of QuoteRequestRepository
func NewQuoteRequestRepository(db *sql.DB) QuoteRequestRepository {
	return &quoteRequestRepository{db: db}
}

const quoteColumns = `id, customer_name, customer_email, customer_phone, door_type, hardware_cost, installation_requested, subtotal, tax, total, notes, preferred_date, status, created_at, updated_at`

// Create inserts a new quote request into the database using parameterized queries
func (r *quoteRequestRepository) Create(ctx context.Context, quote *domain.QuoteRequest) error {
	query := `
		INSERT INTO quote_requests (id, customer_name, customer_email, customer_phone, door_type, hardware_cost, installation_requested, subtotal, tax, total, notes, preferred_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		quote.ID,
		quote.CustomerName,
		quote.CustomerEmail,
		quote.CustomerPhone,
		string(quote.Configuration.Type),
		quote.Configuration.HardwareCost,
		quote.Configuration.InstallationRequested,
		quote.Totals.Subtotal,
		quote.Totals.Tax,
		quote.Totals.Total,
		quote.Notes,
		quote.PreferredDate,
		quote.Status,
		quote.CreatedAt,
		quote.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create quote request: %w", err)
	}

	return nil
}

// FindByID retrieves a quote request by ID using parameterized queries
func (r *quoteRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.QuoteRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM quote_requests WHERE id = $1`, quoteColumns)

	quote, err := scanQuoteRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrQuoteRequestNotFound
		}
		return nil, fmt.Errorf("failed to find quote request by ID: %w", err)
	}

	return quote, nil
}

// List retrieves all quote requests, newest first
func (r *quoteRequestRepository) List(ctx context.Context) ([]*domain.QuoteRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM quote_requests ORDER BY created_at DESC`, quoteColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list quote requests: %w", err)
	}
	defer rows.Close()

	quotes := []*domain.QuoteRequest{}
	for rows.Next() {
		quote, err := scanQuoteRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote request: %w", err)
		}
		quotes = append(quotes, quote)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quote requests: %w", err)
	}

	return quotes, nil
}

// UpdateStatus moves a quote request through its contact workflow
func (r *quoteRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	query := `UPDATE quote_requests SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update quote request status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrQuoteRequestNotFound
	}

	return nil
}

func scanQuoteRequest(row rowScanner) (*domain.QuoteRequest, error) {
	quote := &domain.QuoteRequest{}
	var doorType string
	var preferredDate sql.NullTime

	err := row.Scan(
		&quote.ID,
		&quote.CustomerName,
		&quote.CustomerEmail,
		&quote.CustomerPhone,
		&doorType,
		&quote.Configuration.HardwareCost,
		&quote.Configuration.InstallationRequested,
		&quote.Totals.Subtotal,
		&quote.Totals.Tax,
		&quote.Totals.Total,
		&quote.Notes,
		&preferredDate,
		&quote.Status,
		&quote.CreatedAt,
		&quote.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	quote.Configuration.Type = domain.DoorType(doorType)
	if preferredDate.Valid {
		quote.PreferredDate = &preferredDate.Time
	}

	return quote, nil
}
