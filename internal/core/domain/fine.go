package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FineType classifies why a fine was assessed.
type FineType string

const (
	FineOverdue FineType = "OVERDUE"
	FineDamage  FineType = "DAMAGE"
	FineLoss    FineType = "LOSS"
	FineOther   FineType = "OTHER"
)

// FineState is the settlement state of a fine. PAID and CONDONED are terminal.
type FineState string

const (
	FinePending  FineState = "PENDING"
	FinePaid     FineState = "PAID"
	FineCondoned FineState = "CONDONED"
)

// Fine represents a monetary charge against a borrower. Loan and book links are
// optional: a fine can exist standalone (manual damage/loss charges).
type Fine struct {
	FineID       string          `json:"fineID"` // Primary Key (UUID)
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
