package currency

import (
	"slices"

	"ratelock/internal/domain"
)

var catalog = []domain.Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$", Flag: "🇺🇸"},
	{Code: "EUR", Name: "Euro", Symbol: "€", Flag: "🇪🇺"},
	{Code: "GBP", Name: "British Pound", Symbol: "£", Flag: "🇬🇧"},
	{Code: "JPY", Name: "Japanese Yen", Symbol: "¥", Flag: "🇯🇵"},
	{Code: "CAD", Name: "Canadian Dollar", Symbol: "C$", Flag: "🇨🇦"},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Flag: "🇦🇺"},
	{Code: "CHF", Name: "Swiss Franc", Symbol: "Fr", Flag: "🇨🇭"},
	{Code: "CNY", Name: "Chinese Yuan", Symbol: "¥", Flag: "🇨🇳"},
	{Code: "INR", Name: "Indian Rupee", Symbol: "₹", Flag: "🇮🇳"},
	{Code: "MXN", Name: "Mexican Peso", Symbol: "$", Flag: "🇲🇽"},
}

// List returns the supported currencies in catalog order. Callers get their own copy.
func List() []domain.Currency {
	return slices.Clone(catalog)
}

// Codes returns the supported codes in catalog order.
func Codes() []string {
	codes := make([]string, 0, len(catalog))
	for _, c := range catalog {
		codes = append(codes, c.Code)
	}
	return codes
}

func Lookup(code string) (domain.Currency, bool) {
	for _, c := range catalog {
		if c.Code == code {
			return c, true
		}
	}
	return domain.Currency{}, false
}
