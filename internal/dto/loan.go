package dto

import (
	"time"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CheckoutRequest defines the data needed to check a book out.
type CheckoutRequest struct {
	BookID        string  `json:"bookID" binding:"required"`
	BorrowerName  string  `json:"borrowerName" binding:"required"`
	BorrowerID    string  `json:"borrowerID" binding:"required"`
	BorrowerGrade *string `json:"borrowerGrade"`
	BorrowerGroup *string `json:"borrowerGroup"`
	BorrowerPhone *string `json:"borrowerPhone"`
	// DueDate overrides the policy-computed due date when supplied.
	DueDate *time.Time `json:"dueDate"`
	Notes   *string    `json:"notes"`
}

// ReturnLoanRequest defines the data accompanying a return.
type ReturnLoanRequest struct {
	Notes *string `json:"notes"`
	// ReturnDate defaults to today when not supplied (backdated returns are
	// allowed for desk corrections).
	ReturnDate *time.Time `json:"returnDate"`
}

// ListLoansParams holds the query parameters for listing loans.
type ListLoansParams struct {
	Active      *bool   `form:"active"`
	BorrowerID  *string `form:"borrowerID"`
	OverdueOnly bool    `form:"overdueOnly"`
	Limit       int     `form:"limit"`
	NextToken   *string `form:"nextToken"`
}

// LoanResponse defines the data returned for a loan. Status is derived from the
// operational fields at read time; State is the persisted last-transition tag.
type LoanResponse struct {
	LoanID        string           `json:"loanID"`
	BookID        string           `json:"bookID"`
	BorrowerName  string           `json:"borrowerName"`
	BorrowerID    string           `json:"borrowerID"`
	BorrowerGrade *string          `json:"borrowerGrade,omitempty"`
	BorrowerGroup *string          `json:"borrowerGroup,omitempty"`
	BorrowerPhone *string          `json:"borrowerPhone,omitempty"`
	LoanDate      time.Time        `json:"loanDate"`
	DueDate       time.Time        `json:"dueDate"`
	ReturnDate    *time.Time       `json:"returnDate,omitempty"`
	Active        bool             `json:"active"`
	Status        domain.LoanState `json:"status"`
	State         domain.LoanState `json:"state"`
	RenewalCount  int              `json:"renewalCount"`
	LoanNotes     *string          `json:"loanNotes,omitempty"`
	ReturnNotes   *string          `json:"returnNotes,omitempty"`
	HasFine       bool             `json:"hasFine"`
	FineAmount    decimal.Decimal  `json:"fineAmount"`
	FinePaid      bool             `json:"finePaid"`
	IssuedBy      string           `json:"issuedBy"`
	ReceivedBy    *string          `json:"receivedBy,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// ListLoansResponse wraps a page of loans plus the pagination cursor.
type ListLoansResponse struct {
	Loans     []LoanResponse `json:"loans"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToLoanResponse converts a domain.Loan to a LoanResponse DTO, deriving the
// descriptive status as of now.
func ToLoanResponse(l *domain.Loan, now time.Time) LoanResponse {
	return LoanResponse{
		LoanID:        l.LoanID,
		BookID:        l.BookID,
		BorrowerName:  l.Borrower.Name,
		BorrowerID:    l.Borrower.ID,
		BorrowerGrade: l.Borrower.Grade,
		BorrowerGroup: l.Borrower.Group,
		BorrowerPhone: l.Borrower.Phone,
		LoanDate:      l.LoanDate,
		DueDate:       l.DueDate,
		ReturnDate:    l.ReturnDate,
		Active:        l.Active,
		Status:        domain.DeriveLoanStatus(*l, now),
		State:         l.State,
		RenewalCount:  l.RenewalCount,
		LoanNotes:     l.LoanNotes,
		ReturnNotes:   l.ReturnNotes,
		HasFine:       l.HasFine,
		FineAmount:    l.FineAmount,
		FinePaid:      l.FinePaid,
		IssuedBy:      l.IssuedBy,
		ReceivedBy:    l.ReceivedBy,
		CreatedAt:     l.CreatedAt,
		LastUpdatedAt: l.LastUpdatedAt,
	}
}

// ToLoanResponses converts a slice of domain loans to response DTOs.
func ToLoanResponses(loans []domain.Loan, now time.Time) []LoanResponse {
	resp := make([]LoanResponse, len(loans))
	for i := range loans {
		resp[i] = ToLoanResponse(&loans[i], now)
	}
	return resp
}
