// Package config loads the supplier, buyer and tax configuration for
// invoice generation from a TOML file.
//
// A configuration file contains one [supplier] table and one or more
// [[buyer]] tables; an invoice run uses exactly one buyer, selected by
// name:
//
//	currency = "EUR"
//	vat_percent = 19.0
//
//	[supplier]
//	name = "Hans Muster"
//	...
//
//	[[buyer]]
//	name = "Client Company"
//	...
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/awinterstein/xrechnung/internal/model"
)

// File is the full contents of a configuration file: the shared currency
// and VAT settings, one supplier and all configured buyers.
type File struct {
	Currency   string         `toml:"currency"`
	VATPercent float64        `toml:"vat_percent"`
	Supplier   model.Supplier `toml:"supplier"`
	Buyers     []model.Buyer  `toml:"buyer"`
}

// LoadFile reads and decodes a configuration file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return &f, nil
}

// ForBuyer reduces the file to the configuration for one invoice run,
// selecting the buyer with the given name.
func (f *File) ForBuyer(name string) (*model.Config, error) {
	for _, buyer := range f.Buyers {
		if buyer.Name == name {
			return &model.Config{
				Currency:   f.Currency,
				VATPercent: f.VATPercent,
				Supplier:   f.Supplier,
				Buyer:      buyer,
			}, nil
		}
	}
	return nil, fmt.Errorf("could not find buyer %q in the configuration file", name)
}

// Load is a convenience for LoadFile followed by ForBuyer.
func Load(path, buyerName string) (*model.Config, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return f.ForBuyer(buyerName)
}
