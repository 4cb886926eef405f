package pricing

import (
	"fmt"

	"pgclosets-api/internal/domain"
)

// Fixed pricing constants, all whole CAD dollars. The business operates in
// Ontario only, so the tax rate is a constant rather than configuration.
const (
	BasePriceBarn   int64 = 799
	BasePriceBypass int64 = 549
	BasePriceBifold int64 = 449
	BasePricePivot  int64 = 499

	// InstallationSurcharge is the flat fee added when the customer
	// requests professional installation.
	InstallationSurcharge int64 = 299

	// MaxHardwareCost bounds the hardware add-on. No kit in the catalog
	// costs remotely this much; anything larger is a corrupt request,
	// and an unbounded value would overflow the subtotal arithmetic.
	MaxHardwareCost int64 = 100_000

	// HSTRate is the Ontario harmonized sales tax rate.
	HSTRate = 0.13
)

var basePrices = map[domain.DoorType]int64{
	domain.DoorTypeBarn:   BasePriceBarn,
	domain.DoorTypeBypass: BasePriceBypass,
	domain.DoorTypeBifold: BasePriceBifold,
	domain.DoorTypePivot:  BasePricePivot,
}

// InvalidConfigurationError reports a door configuration that cannot be
// priced. It names the offending field so the caller can surface a useful
// message; it indicates a caller bug, not a recoverable runtime condition.
type InvalidConfigurationError struct {
	Field   string
	Message string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid door configuration: %s: %s", e.Field, e.Message)
}

// BasePrice returns the base price for a door type.
func BasePrice(doorType domain.DoorType) (int64, error) {
	price, ok := basePrices[doorType]
	if !ok {
		return 0, &InvalidConfigurationError{
			Field:   "type",
			Message: fmt.Sprintf("unknown door type %q", string(doorType)),
		}
	}
	return price, nil
}

// ComputeSubtotal prices a door configuration: the base price for the door
// type, plus the hardware add-on, plus the flat installation surcharge when
// requested. The result is always at least the base price for the type.
func ComputeSubtotal(doorType domain.DoorType, hardwareCost int64, installationRequested bool) (int64, error) {
	base, err := BasePrice(doorType)
	if err != nil {
		return 0, err
	}

	if hardwareCost < 0 {
		return 0, &InvalidConfigurationError{
			Field:   "hardware_cost",
			Message: fmt.Sprintf("must not be negative, got %d", hardwareCost),
		}
	}
	if hardwareCost > MaxHardwareCost {
		return 0, &InvalidConfigurationError{
			Field:   "hardware_cost",
			Message: fmt.Sprintf("must not exceed %d, got %d", MaxHardwareCost, hardwareCost),
		}
	}

	subtotal := base + hardwareCost
	if installationRequested {
		subtotal += InstallationSurcharge
	}

	return subtotal, nil
}

// ComputeTotals applies Ontario HST to a subtotal. Tax is rounded to the
// nearest whole dollar, with exact halves rounding away from zero.
func ComputeTotals(subtotal int64) domain.QuoteTotals {
	// subtotal * 0.13 rounded half away from zero, in integer arithmetic.
	tax := (subtotal*13 + 50) / 100

	return domain.QuoteTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// Price prices a full configuration in one step.
func Price(cfg domain.DoorConfiguration) (domain.QuoteTotals, error) {
	subtotal, err := ComputeSubtotal(cfg.Type, cfg.HardwareCost, cfg.InstallationRequested)
	if err != nil {
		return domain.QuoteTotals{}, err
	}
	return ComputeTotals(subtotal), nil
}
