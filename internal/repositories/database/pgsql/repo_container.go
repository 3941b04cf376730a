package pgsql

import (
	portsrepo "github.com/SscSPs/library_circulation_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	bookRepo := newPgxBookRepository(dbPool)
	loanRepo := newPgxLoanRepository(dbPool)
	fineRepo := newPgxFineRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)
	policyRepo := newPgxPolicyRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		BookRepo:      bookRepo,
		LoanRepo:      loanRepo,
		FineRepo:      fineRepo,
		AuditRepo:     auditRepo,
		PolicyRepo:    policyRepo,
		ReportingRepo: reportingRepo,
	}
}
