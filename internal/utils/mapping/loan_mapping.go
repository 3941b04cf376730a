package mapping

import (
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/SscSPs/library_circulation_app/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan, flattening the borrower.
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:        d.LoanID,
		BookID:        d.BookID,
		BorrowerName:  d.Borrower.Name,
		BorrowerID:    d.Borrower.ID,
		BorrowerGrade: d.Borrower.Grade,
		BorrowerGroup: d.Borrower.Group,
		BorrowerPhone: d.Borrower.Phone,
		LoanDate:      d.LoanDate,
		DueDate:       d.DueDate,
		ReturnDate:    d.ReturnDate,
		Active:        d.Active,
		State:         models.LoanState(d.State),
		RenewalCount:  d.RenewalCount,
		LoanNotes:     d.LoanNotes,
		ReturnNotes:   d.ReturnNotes,
		HasFine:       d.HasFine,
		FineAmount:    d.FineAmount,
		FinePaid:      d.FinePaid,
		IssuedBy:      d.IssuedBy,
		ReceivedBy:    d.ReceivedBy,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLoan converts a model Loan to a domain Loan.
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID: m.LoanID,
		BookID: m.BookID,
		Borrower: domain.Borrower{
			Name:  m.BorrowerName,
			ID:    m.BorrowerID,
			Grade: m.BorrowerGrade,
			Group: m.BorrowerGroup,
			Phone: m.BorrowerPhone,
		},
		LoanDate:     m.LoanDate,
		DueDate:      m.DueDate,
		ReturnDate:   m.ReturnDate,
		Active:       m.Active,
		State:        domain.LoanState(m.State),
		RenewalCount: m.RenewalCount,
		LoanNotes:    m.LoanNotes,
		ReturnNotes:  m.ReturnNotes,
		HasFine:      m.HasFine,
		FineAmount:   m.FineAmount,
		FinePaid:     m.FinePaid,
		IssuedBy:     m.IssuedBy,
		ReceivedBy:   m.ReceivedBy,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLoanSlice converts a slice of model Loans to domain Loans.
func ToDomainLoanSlice(ms []models.Loan) []domain.Loan {
	ds := make([]domain.Loan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoan(m)
	}
	return ds
}
