package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanState is the historical last-transition tag persisted on a loan.
// It is informational only: business rules consult Active and the dates, never
// this tag. The authoritative read-time status is computed by DeriveLoanStatus.
type LoanState string

const (
	LoanStateActive   LoanState = "ACTIVE"
	LoanStateReturned LoanState = "RETURNED"
	LoanStateOverdue  LoanState = "OVERDUE"
	LoanStateRenewed  LoanState = "RENEWED"
)

// Borrower identifies the person a loan or fine is attributed to. It is a
// denormalized copy captured at checkout time, not a managed entity.
type Borrower struct {
	Name  string  `json:"name"`
	ID    string  `json:"id"` // external identity, e.g. student id
	Grade *string `json:"grade,omitempty"`
	Group *string `json:"group,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// Loan represents one checkout of one book. Active == true iff ReturnDate is nil.
type Loan struct {
	LoanID       string          `json:"loanID"` // Primary Key (UUID)
	BookID       string          `json:"bookID"` // immutable after creation
	Borrower     Borrower        `json:"borrower"`
	LoanDate     time.Time       `json:"loanDate"`
	DueDate      time.Time       `json:"dueDate"`
	ReturnDate   *time.Time      `json:"returnDate,omitempty"`
	Active       bool            `json:"active"`
	State        LoanState       `json:"state"`
	RenewalCount int             `json:"renewalCount"`
	LoanNotes    *string         `json:"loanNotes,omitempty"`
	ReturnNotes  *string         `json:"returnNotes,omitempty"`
	HasFine      bool            `json:"hasFine"`
	FineAmount   decimal.Decimal `json:"fineAmount"`
	FinePaid     bool            `json:"finePaid"`
	IssuedBy     string          `json:"issuedBy"`
	ReceivedBy   *string         `json:"receivedBy,omitempty"`
	AuditFields
}

// DeriveLoanStatus computes the descriptive status of a loan from its
// operational fields at read time. The persisted State tag can drift (a renewed
// loan is still operationally active), so responses report this instead.
func DeriveLoanStatus(l Loan, today time.Time) LoanState {
	if !l.Active {
		return LoanStateReturned
	}
	if DateOf(today).After(DateOf(l.DueDate)) {
		return LoanStateOverdue
	}
	if l.RenewalCount > 0 {
		return LoanStateRenewed
	}
	return LoanStateActive
}

// DateOf truncates a timestamp to its UTC calendar date. Due dates, return
// dates and fine math all work on whole days.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
