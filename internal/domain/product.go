package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product categories form a fixed taxonomy.
const (
	CategoryBarnDoors    = "barn-doors"
	CategoryBypassDoors  = "bypass-doors"
	CategoryBifoldDoors  = "bifold-doors"
	CategoryPivotDoors   = "pivot-doors"
	CategoryHardware     = "hardware"
	CategoryTrackSystems = "track-systems"
	CategoryMirrors      = "mirrors"
)

// Product represents a product in the catalog. Prices are whole CAD dollars;
// a nil Price means the product has no listed price ("Price TBD" on display).
// PriceMin/PriceMax carry the range for variant-bearing products.
type Product struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Price       *int64    `json:"price,omitempty" db:"price"`
	PriceMin    *int64    `json:"price_min,omitempty" db:"price_min"`
	PriceMax    *int64    `json:"price_max,omitempty" db:"price_max"`
	InStock     bool      `json:"in_stock" db:"in_stock"`
	Slug        string    `json:"slug" db:"slug"`
	Handle      string    `json:"handle" db:"handle"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// EffectivePrice returns the price used for filtering and sorting: the listed
// price if present, otherwise the low end of the variant range. Nil means the
// product has no usable price at all.
func (p *Product) EffectivePrice() *int64 {
	if p.Price != nil {
		return p.Price
	}
	return p.PriceMin
}

// Category represents a product category
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
