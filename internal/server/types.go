package server

import (
	"github.com/awinterstein/xrechnung/internal/model"
)

// GenerateRequest is the body for the invoice generation endpoint
type GenerateRequest struct {
	// Number is the unique invoice number.
	Number string `json:"number" binding:"required"`

	// Buyer selects one of the configured buyers by name.
	Buyer string `json:"buyer" binding:"required"`

	// IssueDate is the issue date in ISO 8601 format (YYYY-MM-DD).
	IssueDate string `json:"issue_date" binding:"required"`

	// Period is the optional billing period.
	Period *PeriodInput `json:"period,omitempty"`

	// LineItems are the hours to bill, in invoice order.
	LineItems []model.HoursItem `json:"line_items" binding:"required"`
}

// PeriodInput is a date range in ISO 8601 format
type PeriodInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
