package domain

import (
	"time"

	"github.com/google/uuid"
)

// DoorType identifies one of the door styles we sell.
type DoorType string

const (
	DoorTypeBarn   DoorType = "barn"
	DoorTypeBypass DoorType = "bypass"
	DoorTypeBifold DoorType = "bifold"
	DoorTypePivot  DoorType = "pivot"
)

// Valid reports whether the door type is one of the known styles.
func (t DoorType) Valid() bool {
	switch t {
	case DoorTypeBarn, DoorTypeBypass, DoorTypeBifold, DoorTypePivot:
		return true
	}
	return false
}

// DoorConfiguration is what the customer picked on the configurator:
// a door style, the hardware add-on cost in whole CAD dollars, and
// whether they want us to install it.
type DoorConfiguration struct {
	Type                  DoorType `json:"type"`
	HardwareCost          int64    `json:"hardware_cost"`
	InstallationRequested bool     `json:"installation_requested"`
}

// QuoteTotals holds the money amounts for a priced configuration,
// all whole CAD dollars.
type QuoteTotals struct {
	Subtotal int64 `json:"subtotal"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// Quote request statuses.
const (
	QuoteStatusPending   = "pending"
	QuoteStatusContacted = "contacted"
	QuoteStatusClosed    = "closed"
)

// QuoteRequest is a submitted quote: the customer's contact details, the
// configuration they priced, and a snapshot of the totals at submission time.
type QuoteRequest struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	CustomerName  string            `json:"customer_name" db:"customer_name"`
	CustomerEmail string            `json:"customer_email" db:"customer_email"`
	CustomerPhone string            `json:"customer_phone" db:"customer_phone"`
	Configuration DoorConfiguration `json:"configuration"`
	Totals        QuoteTotals       `json:"totals"`
	Notes         string            `json:"notes,omitempty" db:"notes"`
	PreferredDate *time.Time        `json:"preferred_date,omitempty" db:"preferred_date"`
	Status        string            `json:"status" db:"status"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}
