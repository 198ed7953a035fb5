// Package ubl assembles a UBL Invoice-2 document tree for the XRechnung
// 3.0 / PEPPOL billing profile from the domain data. The resulting tree is
// handed to the xmldoc serializer to produce the invoice file.
package ubl

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/awinterstein/xrechnung/internal/model"
	"github.com/awinterstein/xrechnung/internal/money"
	"github.com/awinterstein/xrechnung/internal/xmldoc"
)

// Fixed schema identifiers of the XRechnung/PEPPOL billing profile.
const (
	xmlnsUBL = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	xmlnsCAC = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	xmlnsCBC = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"

	customizationID = "urn:cen.eu:en16931:2017#compliant#urn:xeinkauf.de:kosit:xrechnung_3.0"
	profileID       = "urn:fdc:peppol.eu:2017:poacc:billing:01:1.0"

	// invoiceTypeCode 380 is a commercial invoice
	invoiceTypeCode = "380"

	// paymentMeansCode 42 is payment to a bank account
	paymentMeansCode = "42"

	// endpointSchemeID EM selects email addresses as the contact points
	endpointSchemeID = "EM"

	// quantityUnitCode HUR is the unit-of-measure code for hours
	quantityUnitCode = "HUR"

	// taxCategoryID S is the standard VAT rate category
	taxCategoryID = "S"
)

// BuildInvoice creates the UBL document tree for one invoice from the
// supplier, buyer, bill metadata and line items. It returns a ParseError
// if a line item carries a date that is not a valid ISO 8601 calendar
// date.
func BuildInvoice(supplier *model.Supplier, buyer *model.Buyer, bill *model.Bill, items []model.HoursItem) (*xmldoc.Element, error) {
	net := money.Zero
	for _, item := range items {
		net = net.Add(money.FromFloat(item.Quantity).Mul(money.FromFloat(item.HourlyRate)))
	}

	root := rootElement()

	root.Append(xmldoc.Leaf("cbc:ID", nil, bill.Number))
	root.Append(xmldoc.Leaf("cbc:IssueDate", nil, bill.IssueDate.Format(model.DateLayout)))
	root.Append(xmldoc.Leaf("cbc:DueDate", nil, bill.DueDate.Format(model.DateLayout)))
	root.Append(xmldoc.Leaf("cbc:InvoiceTypeCode", nil, invoiceTypeCode))
	root.Append(xmldoc.Leaf("cbc:DocumentCurrencyCode", nil, bill.Currency))
	root.Append(xmldoc.Leaf("cbc:BuyerReference", nil, buyer.Reference))

	if bill.Period != nil {
		root.Append(periodElement(bill.Period))
	}

	root.Append(supplierParty(supplier))
	root.Append(customerParty(buyer))
	root.Append(delivery(bill.IssueDate))
	root.Append(paymentMeans(supplier.Name, supplier.IBAN, supplier.BIC))
	root.Append(taxTotal(bill, net))
	root.Append(monetaryTotal(bill, net))

	for i, item := range items {
		line, err := invoiceLine(strconv.Itoa(i+1), bill.Currency, bill.VATPercent, item)
		if err != nil {
			return nil, err
		}
		root.Append(line)
	}

	return root, nil
}

func rootElement() *xmldoc.Element {
	return xmldoc.Branch("ubl:Invoice",
		[]xmldoc.Attr{
			{Key: "xmlns:ubl", Value: xmlnsUBL},
			{Key: "xmlns:cac", Value: xmlnsCAC},
			{Key: "xmlns:cbc", Value: xmlnsCBC},
		},
		xmldoc.Leaf("cbc:CustomizationID", nil, customizationID),
		xmldoc.Leaf("cbc:ProfileID", nil, profileID),
	)
}

func endpointID(endpoint string) *xmldoc.Element {
	return xmldoc.Leaf("cbc:EndpointID",
		[]xmldoc.Attr{{Key: "schemeID", Value: endpointSchemeID}},
		endpoint)
}

func periodElement(period *model.Period) *xmldoc.Element {
	return xmldoc.Branch("cac:InvoicePeriod", nil,
		xmldoc.Leaf("cbc:StartDate", nil, period.Start.Format(model.DateLayout)),
		xmldoc.Leaf("cbc:EndDate", nil, period.End.Format(model.DateLayout)),
	)
}

// supplierParty holds a single party with tax scheme and contact data.
func supplierParty(supplier *model.Supplier) *xmldoc.Element {
	return xmldoc.Branch("cac:AccountingSupplierParty", nil,
		xmldoc.Branch("cac:Party", nil,
			endpointID(supplier.Email),
			addressElement(&supplier.Address),
			partyTaxScheme(supplier.TaxIdentification),
			legalEntity(supplier.Name, supplier.TaxIdentification),
			contact(supplier.Name, supplier.Phone, supplier.Email),
		),
	)
}

// customerParty holds a single party; unlike the supplier the buyer gets
// neither a tax scheme nor a contact block.
func customerParty(buyer *model.Buyer) *xmldoc.Element {
	return xmldoc.Branch("cac:AccountingCustomerParty", nil,
		xmldoc.Branch("cac:Party", nil,
			endpointID(buyer.Email),
			addressElement(&buyer.Address),
			legalEntity(buyer.Name, buyer.TaxIdentification),
		),
	)
}

func delivery(issueDate time.Time) *xmldoc.Element {
	return xmldoc.Branch("cac:Delivery", nil,
		xmldoc.Leaf("cbc:ActualDeliveryDate", nil, issueDate.Format(model.DateLayout)),
	)
}

func paymentMeans(name, iban, bic string) *xmldoc.Element {
	return xmldoc.Branch("cac:PaymentMeans", nil,
		xmldoc.Leaf("cbc:PaymentMeansCode", nil, paymentMeansCode),
		xmldoc.Branch("cac:PayeeFinancialAccount", nil,
			xmldoc.Leaf("cbc:ID", nil, iban),
			xmldoc.Leaf("cbc:Name", nil, name),
			xmldoc.Branch("cac:FinancialInstitutionBranch", nil,
				xmldoc.Leaf("cbc:ID", nil, bic),
			),
		),
	)
}

// taxTotal carries the tax amounts with a single VAT subtotal.
func taxTotal(bill *model.Bill, net decimal.Decimal) *xmldoc.Element {
	tax := money.Percent(net, bill.VATPercent)

	return xmldoc.Branch("cac:TaxTotal", nil,
		currencyLeaf("cbc:TaxAmount", bill.Currency, money.Format(tax)),
		xmldoc.Branch("cac:TaxSubtotal", nil,
			currencyLeaf("cbc:TaxableAmount", bill.Currency, money.Format(net)),
			currencyLeaf("cbc:TaxAmount", bill.Currency, money.Format(tax)),
			xmldoc.Branch("cac:TaxCategory", nil,
				xmldoc.Leaf("cbc:ID", nil, taxCategoryID),
				xmldoc.Leaf("cbc:Percent", nil, money.FormatFloat(bill.VATPercent)),
				taxSchemeVAT(),
			),
		),
	)
}

func monetaryTotal(bill *model.Bill, net decimal.Decimal) *xmldoc.Element {
	gross := net.Add(money.Percent(net, bill.VATPercent))

	return xmldoc.Branch("cac:LegalMonetaryTotal", nil,
		currencyLeaf("cbc:LineExtensionAmount", bill.Currency, money.Format(net)),
		currencyLeaf("cbc:TaxExclusiveAmount", bill.Currency, money.Format(net)),
		currencyLeaf("cbc:TaxInclusiveAmount", bill.Currency, money.Format(gross)),
		currencyLeaf("cbc:AllowanceTotalAmount", bill.Currency, "0.00"),
		currencyLeaf("cbc:ChargeTotalAmount", bill.Currency, "0.00"),
		currencyLeaf("cbc:PrepaidAmount", bill.Currency, "0.00"),
		currencyLeaf("cbc:PayableRoundingAmount", bill.Currency, "0.00"),
		currencyLeaf("cbc:PayableAmount", bill.Currency, money.Format(gross)),
	)
}

func currencyLeaf(name, currency, text string) *xmldoc.Element {
	return xmldoc.Leaf(name,
		[]xmldoc.Attr{{Key: "currencyID", Value: currency}},
		text)
}

func addressElement(address *model.Address) *xmldoc.Element {
	return xmldoc.Branch("cac:PostalAddress", nil,
		xmldoc.Leaf("cbc:StreetName", nil, address.AddressLine),
		xmldoc.Leaf("cbc:CityName", nil, address.City),
		xmldoc.Leaf("cbc:PostalZone", nil, address.PostCode),
		xmldoc.Branch("cac:Country", nil,
			xmldoc.Leaf("cbc:IdentificationCode", nil, address.CountryCode),
		),
	)
}

func taxSchemeVAT() *xmldoc.Element {
	return xmldoc.Branch("cac:TaxScheme", nil,
		xmldoc.Leaf("cbc:ID", nil, "VAT"),
	)
}

func partyTaxScheme(companyID string) *xmldoc.Element {
	return xmldoc.Branch("cac:PartyTaxScheme", nil,
		xmldoc.Leaf("cbc:CompanyID", nil, companyID),
		taxSchemeVAT(),
	)
}

func classifiedTaxCategory(vatPercent float64) *xmldoc.Element {
	return xmldoc.Branch("cac:ClassifiedTaxCategory", nil,
		xmldoc.Leaf("cbc:ID", nil, taxCategoryID),
		xmldoc.Leaf("cbc:Percent", nil, money.FormatFloat(vatPercent)),
		taxSchemeVAT(),
	)
}

func legalEntity(name, id string) *xmldoc.Element {
	return xmldoc.Branch("cac:PartyLegalEntity", nil,
		xmldoc.Leaf("cbc:RegistrationName", nil, name),
		xmldoc.Leaf("cbc:CompanyID", nil, id),
	)
}

func contact(name, phone, email string) *xmldoc.Element {
	return xmldoc.Branch("cac:Contact", nil,
		xmldoc.Leaf("cbc:Name", nil, name),
		xmldoc.Leaf("cbc:Telephone", nil, phone),
		xmldoc.Leaf("cbc:ElectronicMail", nil, email),
	)
}

func invoiceLine(id, currency string, vatPercent float64, item model.HoursItem) (*xmldoc.Element, error) {
	quantity := money.FromFloat(item.Quantity)
	rate := money.FromFloat(item.HourlyRate)

	line := xmldoc.Branch("cac:InvoiceLine", nil,
		xmldoc.Leaf("cbc:ID", nil, id),
		xmldoc.Leaf("cbc:InvoicedQuantity",
			[]xmldoc.Attr{{Key: "unitCode", Value: quantityUnitCode}},
			money.Format(quantity)),
		currencyLeaf("cbc:LineExtensionAmount", currency, money.Format(quantity.Mul(rate))),
	)

	if item.Date != "" {
		date, err := time.Parse(model.DateLayout, item.Date)
		if err != nil {
			return nil, model.NewParseError("date", item.Date, "not an ISO 8601 calendar date", err)
		}
		line.Append(periodElement(&model.Period{Start: date, End: date}))
	}

	line.Append(xmldoc.Branch("cac:Item", nil,
		xmldoc.Leaf("cbc:Name", nil, item.Name),
		classifiedTaxCategory(vatPercent),
	))

	line.Append(xmldoc.Branch("cac:Price", nil,
		currencyLeaf("cbc:PriceAmount", currency, money.Format(rate)),
	))

	return line, nil
}
