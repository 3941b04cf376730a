package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FineType classifies why a fine was assessed.
type FineType string

// FineState is the settlement state of a fine.
type FineState string

// Fine is the persistence model for a monetary charge.
type Fine struct {
	FineID       string          `json:"fineID"`
	LoanID       *string         `json:"loanID,omitempty"`
	BookID       *string         `json:"bookID,omitempty"`
	BorrowerName string          `json:"borrowerName"`
	BorrowerID   string          `json:"borrowerID"`
	Type         FineType        `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	State        FineState       `json:"state"`
	Description  string          `json:"description"`
	IssuedAt     time.Time       `json:"issuedAt"`
	DueDate      *time.Time      `json:"dueDate,omitempty"`
	PaymentDate  *time.Time      `json:"paymentDate,omitempty"`
	Receipt      *string         `json:"receipt,omitempty"`
	AuditFields
}
