package pricing

import "testing"

func int64p(v int64) *int64 { return &v }

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name     string
		price    *int64
		currency string
		want     string
	}{
		{"nil price", nil, "", "Price TBD"},
		{"grouped thousands", int64p(1234), "", "$1,234 CAD"},
		{"small amount", int64p(59), "", "$59 CAD"},
		{"zero", int64p(0), "", "$0 CAD"},
		{"large amount", int64p(1234567), "", "$1,234,567 CAD"},
		{"explicit currency", int64p(799), "CAD", "$799 CAD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPrice(tt.price, tt.currency); got != tt.want {
				t.Errorf("FormatPrice() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPriceRange(t *testing.T) {
	tests := []struct {
		name string
		min  *int64
		max  *int64
		want string
	}{
		{"both bounds", int64p(100), int64p(200), "$100–$200 CAD"},
		{"min only", int64p(100), nil, "From $100 CAD"},
		{"nil min", nil, int64p(200), "Price TBD"},
		{"nil both", nil, nil, "Price TBD"},
		{"grouped bounds", int64p(1199), int64p(2499), "$1,199–$2,499 CAD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPriceRange(tt.min, tt.max, ""); got != tt.want {
				t.Errorf("FormatPriceRange() = %q, want %q", got, tt.want)
			}
		})
	}
}
