package dashboard

import "testing"

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "lakhs", value: 125490, want: "₹1.3L"},
		{name: "exactly one lakh", value: 100000, want: "₹1.0L"},
		{name: "large", value: 2650000000, want: "₹26500.0L"},
		{name: "grouped", value: 93132.12, want: "₹93,132.12"},
		{name: "small", value: 125.49, want: "₹125.49"},
		{name: "placeholder", value: 68.2, want: "₹68.2"},
		{name: "zero", value: 0, want: "₹0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCurrency(tt.value); got != tt.want {
				t.Errorf("FormatCurrency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatTableCurrency(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "zero", value: 0, want: "₹0"},
		{name: "small", value: 9.5, want: "₹9.50"},
		{name: "grouped", value: 8526.32, want: "₹8,526.32"},
		{name: "lakhs", value: 1234567, want: "₹12.35L"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTableCurrency(tt.value); got != tt.want {
				t.Errorf("FormatTableCurrency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{value: 0, want: "0"},
		{value: 999, want: "999"},
		{value: 1000, want: "1,000"},
		{value: 12303, want: "12,303"},
		{value: 261768, want: "2,61,768"},
		{value: 12345678.456, want: "1,23,45,678.46"},
		{value: -1500, want: "-1,500"},
		{value: 1931.9, want: "1,931.9"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatNumber(tt.value); got != tt.want {
				t.Errorf("FormatNumber() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatChange(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{value: 1.8, want: "+1.8%"},
		{value: -3.3, want: "-3.3%"},
		{value: 0, want: "+0.0%"},
		{value: 2.25, want: "+2.3%"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatChange(tt.value); got != tt.want {
				t.Errorf("FormatChange() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatTotal(t *testing.T) {
	def := DefaultDefinition()
	sales, _ := def.Card(SalesCardID)
	qty, _ := def.Card(QuantityCardID)
	if got := FormatTotal(sales, 125490); got != "₹1.3L" {
		t.Errorf("FormatTotal(sales) = %v, want ₹1.3L", got)
	}
	if got := FormatTotal(qty, 125490); got != "1,25,490" {
		t.Errorf("FormatTotal(qty) = %v, want 1,25,490", got)
	}
}
