package dto

import (
	"time"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateFineRequest defines a manually recorded fine (damage, loss, other).
// Loan and book links are optional; the fine can stand alone.
type CreateFineRequest struct {
	LoanID       *string         `json:"loanID"`
	BookID       *string         `json:"bookID"`
	BorrowerName string          `json:"borrowerName" binding:"required"`
	BorrowerID   string          `json:"borrowerID" binding:"required"`
	Type         domain.FineType `json:"type" binding:"required,oneof=OVERDUE DAMAGE LOSS OTHER"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	Description  string          `json:"description" binding:"required"`
	DueDate      *time.Time      `json:"dueDate"`
}

// PayFineRequest carries the receipt reference recorded with a payment.
type PayFineRequest struct {
	Receipt string `json:"receipt" binding:"required"`
}

// ListFinesParams holds the query parameters for listing fines.
type ListFinesParams struct {
	State      *string `form:"state"`
	Type       *string `form:"type"`
	BorrowerID *string `form:"borrowerID"`
	Limit      int     `form:"limit"`
	NextToken  *string `form:"nextToken"`
}

// FineResponse defines the data returned for a fine.
type FineResponse struct {
	FineID        string           `json:"fineID"`
	LoanID        *string          `json:"loanID,omitempty"`
	BookID        *string          `json:"bookID,omitempty"`
	BorrowerName  string           `json:"borrowerName"`
	BorrowerID    string           `json:"borrowerID"`
	Type          domain.FineType  `json:"type"`
	Amount        decimal.Decimal  `json:"amount"`
	State         domain.FineState `json:"state"`
	Description   string           `json:"description"`
	IssuedAt      time.Time        `json:"issuedAt"`
	DueDate       *time.Time       `json:"dueDate,omitempty"`
	PaymentDate   *time.Time       `json:"paymentDate,omitempty"`
	Receipt       *string          `json:"receipt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
}

// ListFinesResponse wraps a page of fines plus the pagination cursor.
type ListFinesResponse struct {
	Fines     []FineResponse `json:"fines"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToFineResponse converts a domain.Fine to a FineResponse DTO.
func ToFineResponse(f *domain.Fine) FineResponse {
	return FineResponse{
		FineID:        f.FineID,
		LoanID:        f.LoanID,
		BookID:        f.BookID,
		BorrowerName:  f.BorrowerName,
		BorrowerID:    f.BorrowerID,
		Type:          f.Type,
		Amount:        f.Amount,
		State:         f.State,
		Description:   f.Description,
		IssuedAt:      f.IssuedAt,
		DueDate:       f.DueDate,
		PaymentDate:   f.PaymentDate,
		Receipt:       f.Receipt,
		CreatedAt:     f.CreatedAt,
		LastUpdatedAt: f.LastUpdatedAt,
	}
}

// ToFineResponses converts a slice of domain fines to response DTOs.
func ToFineResponses(fines []domain.Fine) []FineResponse {
	resp := make([]FineResponse, len(fines))
	for i := range fines {
		resp[i] = ToFineResponse(&fines[i])
	}
	return resp
}
