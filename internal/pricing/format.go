package pricing

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PriceTBD is displayed for products and quotes with no usable price.
// Formatting degrades to this sentinel instead of failing; the storefront
// always has something to render.
const PriceTBD = "Price TBD"

// DefaultCurrency is used when the caller passes an empty currency code.
const DefaultCurrency = "CAD"

var printer = message.NewPrinter(language.English)

// FormatPrice renders a whole-dollar price as a locale-grouped numeral
// followed by the currency code, e.g. "$1,234 CAD". A nil price renders
// as PriceTBD.
func FormatPrice(price *int64, currency string) string {
	if price == nil {
		return PriceTBD
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	return printer.Sprintf("$%d %s", *price, currency)
}

// FormatPriceRange renders a price range. With both bounds it produces
// "$MIN–$MAX CAD" (en dash); with only a minimum, "From $MIN CAD"; with no
// minimum, PriceTBD.
func FormatPriceRange(min, max *int64, currency string) string {
	if min == nil {
		return PriceTBD
	}
	if currency == "" {
		currency = DefaultCurrency
	}
	if max != nil {
		return printer.Sprintf("$%d–$%d %s", *min, *max, currency)
	}
	return printer.Sprintf("From $%d %s", *min, currency)
}
