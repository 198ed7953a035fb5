// Package model defines the domain data for invoice generation: the
// parties, the bill metadata and the billed line items.
package model

import "time"

// DateLayout is the ISO 8601 calendar date format (YYYY-MM-DD) used for
// all dates of an invoice.
const DateLayout = "2006-01-02"

// Address is the postal address of a supplier or buyer.
type Address struct {
	// AddressLine is the first line of the address, usually the street
	// name and number or a P.O. box.
	AddressLine string `toml:"address_line" json:"address_line"`

	// City is the city, town or village of the address.
	City string `toml:"city" json:"city"`

	// PostCode is the country-specific post code.
	PostCode string `toml:"post_code" json:"post_code"`

	// CountryCode is the ISO 3166-1 alpha-2 code of the country.
	CountryCode string `toml:"country_code" json:"country_code"`
}

// Supplier is the party issuing the invoice, including the bank account
// the invoice amount should be transferred to.
type Supplier struct {
	Name string `toml:"name" json:"name"`

	// TaxIdentification is the identifier assigned to the supplier by the
	// tax office, e.g. the VAT number.
	TaxIdentification string `toml:"tax_identification" json:"tax_identification"`

	Address Address `toml:"address" json:"address"`

	// Phone and Email identify the contact person at the supplier. The
	// email address doubles as the electronic endpoint of the party.
	Phone string `toml:"phone" json:"phone"`
	Email string `toml:"email" json:"email"`

	IBAN string `toml:"iban" json:"iban"`
	BIC  string `toml:"bic" json:"bic"`
}

// Buyer is the party the invoice is billed to.
type Buyer struct {
	Name string `toml:"name" json:"name"`

	// TaxIdentification is the identifier assigned to the buyer by the
	// tax office, e.g. the VAT number.
	TaxIdentification string `toml:"tax_identification" json:"tax_identification"`

	Address Address `toml:"address" json:"address"`

	Email string `toml:"email" json:"email"`

	// Reference can be an order number, an internal project number, a
	// contact at the buyer, or simply N/A.
	Reference string `toml:"reference" json:"reference"`

	// DueAfterDays is the payment term of this buyer in calendar days
	// after the issue date.
	DueAfterDays int `toml:"due_after_days" json:"due_after_days"`
}

// Config is the data for one invoice run: the supplier, the single
// selected buyer, and the tax and currency settings shared by all lines.
type Config struct {
	Currency   string
	VATPercent float64
	Supplier   Supplier
	Buyer      Buyer
}

// Period is a date range, used for the billing period of an invoice.
type Period struct {
	Start time.Time
	End   time.Time
}

// Bill holds the metadata of one invoice.
type Bill struct {
	// Number is the unique number of the invoice, as required by law.
	Number string

	Currency   string
	VATPercent float64

	IssueDate time.Time
	DueDate   time.Time

	// Period is the billing period, if applicable.
	Period *Period
}

// NewBill derives the bill metadata for an invoice. Currency and VAT come
// from the configuration; the due date is the issue date plus the buyer's
// payment term in calendar days.
func NewBill(number string, issueDate time.Time, period *Period, cfg *Config) Bill {
	return Bill{
		Number:     number,
		Currency:   cfg.Currency,
		VATPercent: cfg.VATPercent,
		IssueDate:  issueDate,
		DueDate:    issueDate.AddDate(0, 0, cfg.Buyer.DueAfterDays),
		Period:     period,
	}
}

// HoursItem is one invoice line for hours worked at an hourly rate.
type HoursItem struct {
	// Name describes the line item, e.g. "Development" or "Consulting".
	Name string `json:"name"`

	// Quantity is the number of hours worked, possibly fractional.
	Quantity float64 `json:"quantity"`

	// HourlyRate is the rate per hour in the invoice currency.
	HourlyRate float64 `json:"hourly_rate"`

	// Date is the day the hours were worked, in ISO 8601 format
	// (YYYY-MM-DD). Empty if the line is not tied to a single day.
	Date string `json:"date,omitempty"`
}
