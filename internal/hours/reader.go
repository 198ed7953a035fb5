// Package hours reads invoice line items from CSV input. The first row
// names the columns; name, quantity and hourly_rate are required, date is
// optional and may be left empty per row.
package hours

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/awinterstein/xrechnung/internal/model"
)

var requiredColumns = []string{"name", "quantity", "hourly_rate"}

// Read parses line items from CSV data, in input order.
func Read(r io.Reader) ([]model.HoursItem, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return nil, model.NewParseError("header", strings.Join(header, ","),
				fmt.Sprintf("missing column %q", name), nil)
		}
	}

	var items []model.HoursItem
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		item := model.HoursItem{Name: record[columns["name"]]}

		item.Quantity, err = strconv.ParseFloat(record[columns["quantity"]], 64)
		if err != nil {
			return nil, model.NewParseError("quantity", record[columns["quantity"]],
				fmt.Sprintf("line %d: not a number", line), err)
		}

		item.HourlyRate, err = strconv.ParseFloat(record[columns["hourly_rate"]], 64)
		if err != nil {
			return nil, model.NewParseError("hourly_rate", record[columns["hourly_rate"]],
				fmt.Sprintf("line %d: not a number", line), err)
		}

		if i, ok := columns["date"]; ok {
			item.Date = strings.TrimSpace(record[i])
		}

		items = append(items, item)
	}

	return items, nil
}

// ReadFile reads line items from the named CSV file.
func ReadFile(path string) ([]model.HoursItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}
