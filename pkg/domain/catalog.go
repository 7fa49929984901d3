package domain

// Currency is a supported display currency.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Label  string `json:"label"`
}

// DefaultCurrency is used when no valid preference is stored.
const DefaultCurrency = "USD"

// Currencies lists the supported currencies in display order.
var Currencies = []Currency{
	{Code: "USD", Symbol: "$", Label: "US Dollar ($)"},
	{Code: "EUR", Symbol: "€", Label: "Euro (€)"},
	{Code: "GBP", Symbol: "£", Label: "British Pound (£)"},
	{Code: "JPY", Symbol: "¥", Label: "Japanese Yen (¥)"},
	{Code: "CAD", Symbol: "C$", Label: "Canadian Dollar (C$)"},
	{Code: "AUD", Symbol: "A$", Label: "Australian Dollar (A$)"},
	{Code: "ZAR", Symbol: "R", Label: "South African Rand (R)"},
}

// Categories are the built-in item categories offered before any are used.
var Categories = []string{
	"Furniture",
	"Electronics",
	"Appliances",
	"Decor",
	"Clothing",
	"Tools",
	"Other",
}

// Colors is the fixed project tag palette.
var Colors = []string{
	"bg-red-500",
	"bg-orange-500",
	"bg-amber-500",
	"bg-green-500",
	"bg-emerald-500",
	"bg-teal-500",
	"bg-cyan-500",
	"bg-blue-500",
	"bg-indigo-500",
	"bg-violet-500",
	"bg-purple-500",
	"bg-fuchsia-500",
	"bg-pink-500",
	"bg-rose-500",
}

// CurrencySymbol returns the symbol for an ISO code, "$" when unknown.
func CurrencySymbol(code string) string {
	for _, c := range Currencies {
		if c.Code == code {
			return c.Symbol
		}
	}
	return "$"
}

// IsCurrencyCode reports whether code is in the supported list.
func IsCurrencyCode(code string) bool {
	for _, c := range Currencies {
		if c.Code == code {
			return true
		}
	}
	return false
}

// ResolveCurrency normalises a stored currency preference. Valid codes pass
// through; legacy symbol values ("£") migrate to their code; anything else
// yields DefaultCurrency.
func ResolveCurrency(raw string) string {
	if raw == "" {
		return DefaultCurrency
	}
	if IsCurrencyCode(raw) {
		return raw
	}
	for _, c := range Currencies {
		if c.Symbol == raw {
			return c.Code
		}
	}
	return DefaultCurrency
}

// IsPaletteColor reports whether color belongs to the project palette.
func IsPaletteColor(color string) bool {
	return containsString(Colors, color)
}
