package ubl_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awinterstein/xrechnung/internal/model"
	"github.com/awinterstein/xrechnung/internal/ubl"
	"github.com/awinterstein/xrechnung/internal/xmldoc"
)

func date(s string) time.Time {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func testSupplier() *model.Supplier {
	return &model.Supplier{
		Name:              "Hans Muster",
		TaxIdentification: "DE123456789",
		Address: model.Address{
			AddressLine: "Musterstraße 1",
			City:        "Berlin",
			PostCode:    "10115",
			CountryCode: "DE",
		},
		Phone: "+49 30 1234567",
		Email: "hans@muster.example.com",
		IBAN:  "DE02120300000000202051",
		BIC:   "BYLADEM1001",
	}
}

func testBuyer() *model.Buyer {
	return &model.Buyer{
		Name:              "Client Company",
		TaxIdentification: "DE987654321",
		Address: model.Address{
			AddressLine: "Kundenweg 2",
			City:        "München",
			PostCode:    "80331",
			CountryCode: "DE",
		},
		Email:        "mail@client.example.com",
		Reference:    "04011000-12345-03",
		DueAfterDays: 14,
	}
}

func testBill(period *model.Period) *model.Bill {
	return &model.Bill{
		Number:     "2026-001",
		Currency:   "EUR",
		VATPercent: 19,
		IssueDate:  date("2026-08-31"),
		DueDate:    date("2026-09-14"),
		Period:     period,
	}
}

// find walks a path of direct-child names starting at root.
func find(t *testing.T, root *xmldoc.Element, path ...string) *xmldoc.Element {
	t.Helper()
	e := root
	for _, name := range path {
		e = e.Find(name)
		require.NotNil(t, e, "element %s not found", name)
	}
	return e
}

func leafText(t *testing.T, root *xmldoc.Element, path ...string) string {
	t.Helper()
	return find(t, root, path...).Text()
}

func TestBuildInvoice_Header(t *testing.T) {
	root, err := ubl.BuildInvoice(testSupplier(), testBuyer(), testBill(nil), nil)
	require.NoError(t, err)

	assert.Equal(t, "ubl:Invoice", root.Name())
	assert.Equal(t, []xmldoc.Attr{
		{Key: "xmlns:ubl", Value: "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"},
		{Key: "xmlns:cac", Value: "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"},
		{Key: "xmlns:cbc", Value: "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"},
	}, root.Attrs())

	assert.Equal(t,
		"urn:cen.eu:en16931:2017#compliant#urn:xeinkauf.de:kosit:xrechnung_3.0",
		leafText(t, root, "cbc:CustomizationID"))
	assert.Equal(t,
		"urn:fdc:peppol.eu:2017:poacc:billing:01:1.0",
		leafText(t, root, "cbc:ProfileID"))

	assert.Equal(t, "2026-001", leafText(t, root, "cbc:ID"))
	assert.Equal(t, "2026-08-31", leafText(t, root, "cbc:IssueDate"))
	assert.Equal(t, "2026-09-14", leafText(t, root, "cbc:DueDate"))
	assert.Equal(t, "380", leafText(t, root, "cbc:InvoiceTypeCode"))
	assert.Equal(t, "EUR", leafText(t, root, "cbc:DocumentCurrencyCode"))
	assert.Equal(t, "04011000-12345-03", leafText(t, root, "cbc:BuyerReference"))
}

func TestBuildInvoice_ChildOrder(t *testing.T) {
	period := &model.Period{Start: date("2026-08-01"), End: date("2026-08-31")}
	items := []model.HoursItem{{Name: "Development", Quantity: 8, HourlyRate: 100}}

	root, err := ubl.BuildInvoice(testSupplier(), testBuyer(), testBill(period), items)
	require.NoError(t, err)

	var names []string
	for _, child := range root.Children() {
		names = append(names, child.Name())
	}

	assert.Equal(t, []string{
		"cbc:CustomizationID",
		"cbc:ProfileID",
		"cbc:ID",
		"cbc:IssueDate",
		"cbc:DueDate",
		"cbc:InvoiceTypeCode",
		"cbc:DocumentCurrencyCode",
		"cbc:BuyerReference",
		"cac:InvoicePeriod",
		"cac:AccountingSupplierParty",
		"cac:AccountingCustomerParty",
		"cac:Delivery",
		"cac:PaymentMeans",
		"cac:TaxTotal",
		"cac:LegalMonetaryTotal",
		"cac:InvoiceLine",
	}, names)
}

func TestBuildInvoice_Scenario(t *testing.T) {
	// VAT 19%, 8h @ 100 plus 2h @ 50: net 900.00, tax 171.00, gross 1071.00
	items := []model.HoursItem{
		{Name: "Development", Quantity: 8, HourlyRate: 100},
		{Name: "Consulting", Quantity: 2, HourlyRate: 50},
	}

	root, err := ubl.BuildInvoice(testSupplier(), testBuyer(), testBill(nil), items)
	require.NoError(t, err)

	assert.Equal(t, "171.00", leafText(t, root, "cac:TaxTotal", "cbc:TaxAmount"))
	assert.Equal(t, "900.00", leafText(t, root, "cac:TaxTotal", "cac:TaxSubtotal", "cbc:TaxableAmount"))
	assert.Equal(t, "171.00", leafText(t, root, "cac:TaxTotal", "cac:TaxSubtotal", "cbc:TaxAmount"))

	total := find(t, root, "cac:LegalMonetaryTotal")
	assert.Equal(t, "900.00", leafText(t, total, "cbc:LineExtensionAmount"))
	assert.Equal(t, "900.00", leafText(t, total, "cbc:TaxExclusiveAmount"))
	assert.Equal(t, "1071.00", leafText(t, total, "cbc:TaxInclusiveAmount"))
	assert.Equal(t, "1071.00", leafText(t, total, "cbc:PayableAmount"))
	assert.Equal(t, "0.00", leafText(t, total, "cbc:AllowanceTotalAmount"))
	assert.Equal(t, "0.00", leafText(t, total, "cbc:ChargeTotalAmount"))
	assert.Equal(t, "0.00", leafText(t, total, "cbc:PrepaidAmount"))
	assert.Equal(t, "0.00", leafText(t, total, "cbc:PayableRoundingAmount"))

	category := find(t, root, "cac:TaxTotal", "cac:TaxSubtotal", "cac:TaxCategory")
	assert.Equal(t, "S", leafText(t, category, "cbc:ID"))
	assert.Equal(t, "19.00", leafText(t, category, "cbc:Percent"))
	assert.Equal(t, "VAT", leafText(t, category, "cac:TaxScheme", "cbc:ID"))
}

func TestBuildInvoice_CurrencyQualifiedAmounts(t *testing.T) {
	items := []model.HoursItem{{Name: "Development", Quantity: 1, HourlyRate: 100}}

	root, err := ubl.BuildInvoice(testSupplier(), testBuyer(), testBill(nil), items)
	require.NoError(t, err)

	taxAmount := find(t, root, "cac:TaxTotal", "cbc:TaxAmount")
	assert.Equal(t, []xmldoc.Attr{{Key: "currencyID", Value: "EUR"}}, taxAmount.Attrs())

	payable := find(t, root, "cac:LegalMonetaryTotal", "cbc:PayableAmount")
	assert.Equal(t, []xmldoc.Attr{{Key: "currencyID", Value: "EUR"}}, payable.Attrs())
}

func TestBuildInvoice_LineIDsSequential(t *testing.T) {
	// IDs follow input order regardless of which items carry dates.
	items := []model.HoursItem{
		{Name: "Development", Quantity: 3, HourlyRate: 90, Date: "2026-08-20"},
		{Name: "Consulting", Quantity: 1.5, HourlyRate: 120},
		{Name: "Review", Quantity: 2, HourlyRate: 90, Date: "2026-08-05"},
		{Name: "Support", Quantity: 0.25, HourlyRate: 150},
	}

	root, err := ubl.BuildInvoice(testSupplier(), testBuyer(), testBill(nil), items)
	require.NoError(t, err)

	lines := root.FindAll("cac:InvoiceLine")
	require.Len(t, lines, len(items))

	for i, line := range lines {
		assert.Equal(t, strconv.Itoa(i+1), leafText(t, line, "cbc:ID"))
		assert.Equal(t, items[i].Name, leafText(t, line, "cac:Item", "cbc:Name"))
	}
}

func TestBuildInvoice_LineContent(t *testing.T) {
	items := []model.HoursItem{{Name: "Development", Quantity: 7.5, HourlyRate: 95.5}}

	root, err := ubl.BuildInvoice(testSupplier(), testBuyer(), testBill(nil), items)
	require.NoError(t, err)

	line := find(t, root, "cac:InvoiceLine")

	quantity := find(t, line, "cbc:InvoicedQuantity")
	assert.Equal(t, []xmldoc.Attr{{Key: "unitCode", Value: "HUR"}}, quantity.Attrs())
	assert.Equal(t, "7.50", quantity.Text())

	// 7.5 * 95.5 = 716.25
	assert.Equal(t, "716.25", leafText(t, line, "cbc:LineExtensionAmount"))
	assert.Equal(t, "95.50", leafText(t, line, "cac:Price", "cbc:PriceAmount"))

	category := find(t, line, "cac:Item", "cac:ClassifiedTaxCategory")
	assert.Equal(t, "S", leafText(t, category, "cbc:ID"))
	assert.Equal(t, "19.00", leafText(t, category, "cbc:Percent"))
	assert.Equal(t, "VAT", leafText(t, category, "cac:TaxScheme", "cbc:ID"))
}

func TestBuildInvoice_InvoicePeriod(t *testing.T) {
	t.Run("absent without period", func(t *testing.T) {
		root, err := ubl.BuildInvoice(testSupplier(), testBuyer(), testBill(nil), nil)
		require.NoError(t, err)
		assert.Empty(t, root.FindAll("cac:InvoicePeriod"))
	})

	t.Run("present with period", func(t *testing.T) {
		period := &model.Period{Start: date("2026-08-01"), End: date("2026-08-31")}
		root, err := ubl.BuildInvoice(testSupplier(), testBuyer(), testBill(period), nil)
		require.NoError(t, err)

		periods := root.FindAll("cac:InvoicePeriod")
		require.Len(t, periods, 1)
		assert.Equal(t, "2026-08-01", leafText(t, periods[0], "cbc:StartDate"))
		assert.Equal(t, "2026-08-31", leafText(t, periods[0], "cbc:EndDate"))
	})
}

func TestBuildInvoice_LinePeriodOnlyWithDate(t *testing.T) {
	items := []model.HoursItem{
		{Name: "Development", Quantity: 8, HourlyRate: 100, Date: "2026-08-20"},
		{Name: "Consulting", Quantity: 2, HourlyRate: 50},
	}

	root, err := ubl.BuildInvoice(testSupplier(), testBuyer(), testBill(nil), items)
	require.NoError(t, err)

	lines := root.FindAll("cac:InvoiceLine")
	require.Len(t, lines, 2)

	dated := lines[0].Find("cac:InvoicePeriod")
	require.NotNil(t, dated)
	assert.Equal(t, "2026-08-20", leafText(t, dated, "cbc:StartDate"))
	assert.Equal(t, "2026-08-20", leafText(t, dated, "cbc:EndDate"))

	assert.Nil(t, lines[1].Find("cac:InvoicePeriod"))
}

func TestBuildInvoice_InvalidLineDate(t *testing.T) {
	tests := []string{"20.08.2026", "2026-13-01", "2026-02-30", "yesterday"}

	for _, bad := range tests {
		t.Run(bad, func(t *testing.T) {
			items := []model.HoursItem{{Name: "Development", Quantity: 1, HourlyRate: 100, Date: bad}}

			_, err := ubl.BuildInvoice(testSupplier(), testBuyer(), testBill(nil), items)
			require.Error(t, err)

			var parseErr *model.ParseError
			assert.ErrorAs(t, err, &parseErr)
			assert.Equal(t, bad, parseErr.Value)
		})
	}
}

func TestBuildInvoice_SupplierParty(t *testing.T) {
	root, err := ubl.BuildInvoice(testSupplier(), testBuyer(), testBill(nil), nil)
	require.NoError(t, err)

	party := find(t, root, "cac:AccountingSupplierParty", "cac:Party")

	endpoint := find(t, party, "cbc:EndpointID")
	assert.Equal(t, []xmldoc.Attr{{Key: "schemeID", Value: "EM"}}, endpoint.Attrs())
	assert.Equal(t, "hans@muster.example.com", endpoint.Text())

	address := find(t, party, "cac:PostalAddress")
	assert.Equal(t, "Musterstraße 1", leafText(t, address, "cbc:StreetName"))
	assert.Equal(t, "Berlin", leafText(t, address, "cbc:CityName"))
	assert.Equal(t, "10115", leafText(t, address, "cbc:PostalZone"))
	assert.Equal(t, "DE", leafText(t, address, "cac:Country", "cbc:IdentificationCode"))

	taxScheme := find(t, party, "cac:PartyTaxScheme")
	assert.Equal(t, "DE123456789", leafText(t, taxScheme, "cbc:CompanyID"))
	assert.Equal(t, "VAT", leafText(t, taxScheme, "cac:TaxScheme", "cbc:ID"))

	entity := find(t, party, "cac:PartyLegalEntity")
	assert.Equal(t, "Hans Muster", leafText(t, entity, "cbc:RegistrationName"))
	assert.Equal(t, "DE123456789", leafText(t, entity, "cbc:CompanyID"))

	contact := find(t, party, "cac:Contact")
	assert.Equal(t, "Hans Muster", leafText(t, contact, "cbc:Name"))
	assert.Equal(t, "+49 30 1234567", leafText(t, contact, "cbc:Telephone"))
	assert.Equal(t, "hans@muster.example.com", leafText(t, contact, "cbc:ElectronicMail"))
}

func TestBuildInvoice_CustomerParty(t *testing.T) {
	root, err := ubl.BuildInvoice(testSupplier(), testBuyer(), testBill(nil), nil)
	require.NoError(t, err)

	party := find(t, root, "cac:AccountingCustomerParty", "cac:Party")

	endpoint := find(t, party, "cbc:EndpointID")
	assert.Equal(t, "mail@client.example.com", endpoint.Text())

	entity := find(t, party, "cac:PartyLegalEntity")
	assert.Equal(t, "Client Company", leafText(t, entity, "cbc:RegistrationName"))
	assert.Equal(t, "DE987654321", leafText(t, entity, "cbc:CompanyID"))

	// The buyer gets neither tax scheme nor contact block.
	assert.Nil(t, party.Find("cac:PartyTaxScheme"))
	assert.Nil(t, party.Find("cac:Contact"))
}

func TestBuildInvoice_DeliveryAndPaymentMeans(t *testing.T) {
	root, err := ubl.BuildInvoice(testSupplier(), testBuyer(), testBill(nil), nil)
	require.NoError(t, err)

	assert.Equal(t, "2026-08-31", leafText(t, root, "cac:Delivery", "cbc:ActualDeliveryDate"))

	means := find(t, root, "cac:PaymentMeans")
	assert.Equal(t, "42", leafText(t, means, "cbc:PaymentMeansCode"))

	account := find(t, means, "cac:PayeeFinancialAccount")
	assert.Equal(t, "DE02120300000000202051", leafText(t, account, "cbc:ID"))
	assert.Equal(t, "Hans Muster", leafText(t, account, "cbc:Name"))
	assert.Equal(t, "BYLADEM1001", leafText(t, account, "cac:FinancialInstitutionBranch", "cbc:ID"))
}

func TestBuildInvoice_NetMatchesLineSum(t *testing.T) {
	items := []model.HoursItem{
		{Name: "Development", Quantity: 7.25, HourlyRate: 93.7},
		{Name: "Consulting", Quantity: 1.1, HourlyRate: 140.55},
		{Name: "Review", Quantity: 0.75, HourlyRate: 87.33},
		{Name: "Support", Quantity: 12.5, HourlyRate: 60.2},
	}

	root, err := ubl.BuildInvoice(testSupplier(), testBuyer(), testBill(nil), items)
	require.NoError(t, err)

	var lineSum float64
	for _, line := range root.FindAll("cac:InvoiceLine") {
		amount, err := strconv.ParseFloat(leafText(t, line, "cbc:LineExtensionAmount"), 64)
		require.NoError(t, err)
		lineSum += amount
	}

	taxable, err := strconv.ParseFloat(leafText(t, root, "cac:TaxTotal", "cac:TaxSubtotal", "cbc:TaxableAmount"), 64)
	require.NoError(t, err)
	assert.InDelta(t, lineSum, taxable, 0.011)

	net, err := strconv.ParseFloat(leafText(t, root, "cac:LegalMonetaryTotal", "cbc:LineExtensionAmount"), 64)
	require.NoError(t, err)
	assert.InDelta(t, lineSum, net, 0.011)
}
