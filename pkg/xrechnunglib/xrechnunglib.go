// Package xrechnunglib provides a public API for generating XRechnung
// e-invoices (UBL Invoice-2, XRechnung 3.0 / PEPPOL billing profile).
//
// Example usage:
//
//	cfg, err := xrechnunglib.LoadConfig("config.toml", "Client Company")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	items, err := xrechnunglib.ReadHours("hours.csv")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bill := xrechnunglib.NewBill("2026-001", issueDate, nil, cfg)
//	root, err := xrechnunglib.BuildInvoice(&cfg.Supplier, &cfg.Buyer, &bill, items)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := xrechnunglib.WriteFile("invoice.xml", root); err != nil {
//	    log.Fatal(err)
//	}
package xrechnunglib

import (
	"io"
	"time"

	"github.com/awinterstein/xrechnung/internal/config"
	"github.com/awinterstein/xrechnung/internal/hours"
	"github.com/awinterstein/xrechnung/internal/model"
	"github.com/awinterstein/xrechnung/internal/ubl"
	"github.com/awinterstein/xrechnung/internal/xmldoc"
)

// Re-export core types for public API
type (
	Address   = model.Address
	Supplier  = model.Supplier
	Buyer     = model.Buyer
	Config    = model.Config
	Period    = model.Period
	Bill      = model.Bill
	HoursItem = model.HoursItem

	Element = xmldoc.Element
	Attr    = xmldoc.Attr
)

// Re-export error types
type (
	ParseError = model.ParseError
)

// DateLayout is the ISO 8601 calendar date format used for all dates.
const DateLayout = model.DateLayout

// LoadConfig loads the configuration for one buyer from a TOML file.
func LoadConfig(path, buyerName string) (*Config, error) {
	return config.Load(path, buyerName)
}

// ReadHours reads invoice line items from a CSV file.
func ReadHours(path string) ([]HoursItem, error) {
	return hours.ReadFile(path)
}

// NewBill derives the bill metadata for an invoice from the configuration.
func NewBill(number string, issueDate time.Time, period *Period, cfg *Config) Bill {
	return model.NewBill(number, issueDate, period, cfg)
}

// BuildInvoice creates the UBL document tree for one invoice.
func BuildInvoice(supplier *Supplier, buyer *Buyer, bill *Bill, items []HoursItem) (*Element, error) {
	return ubl.BuildInvoice(supplier, buyer, bill, items)
}

// Serialize writes the document tree as indented UTF-8 XML.
func Serialize(w io.Writer, root *Element) error {
	return xmldoc.Serialize(w, root)
}

// WriteFile serializes the document tree into the named file.
func WriteFile(path string, root *Element) error {
	return xmldoc.WriteFile(path, root)
}
