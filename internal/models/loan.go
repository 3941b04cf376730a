package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanState is the persisted last-transition tag of a loan.
type LoanState string

// Loan is the persistence model for a checkout. Borrower identity is
// denormalized onto the row, matching the domain shape.
type Loan struct {
	LoanID        string          `json:"loanID"`
	BookID        string          `json:"bookID"`
	BorrowerName  string          `json:"borrowerName"`
	BorrowerID    string          `json:"borrowerID"`
	BorrowerGrade *string         `json:"borrowerGrade,omitempty"`
	BorrowerGroup *string         `json:"borrowerGroup,omitempty"`
	BorrowerPhone *string         `json:"borrowerPhone,omitempty"`
	LoanDate      time.Time       `json:"loanDate"`
	DueDate       time.Time       `json:"dueDate"`
	ReturnDate    *time.Time      `json:"returnDate,omitempty"`
	Active        bool            `json:"active"`
	State         LoanState       `json:"state"`
	RenewalCount  int             `json:"renewalCount"`
	LoanNotes     *string         `json:"loanNotes,omitempty"`
	ReturnNotes   *string         `json:"returnNotes,omitempty"`
	HasFine       bool            `json:"hasFine"`
	FineAmount    decimal.Decimal `json:"fineAmount"`
	FinePaid      bool            `json:"finePaid"`
	IssuedBy      string          `json:"issuedBy"`
	ReceivedBy    *string         `json:"receivedBy,omitempty"`
	AuditFields
}
