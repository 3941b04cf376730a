package services

import (
	portsrepo "github.com/SscSPs/library_circulation_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/library_circulation_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	// Create the container structure first
	container := &portssvc.ServiceContainer{}

	// Initialize policy service first since loan checkout/renewal depends on it
	container.Policy = NewPolicyService(repos.PolicyRepo)

	container.Catalog = NewCatalogService(repos.BookRepo)
	container.Loan = NewLoanService(repos.LoanRepo, repos.BookRepo, repos.FineRepo, container.Policy)
	container.Fine = NewFineService(repos.FineRepo, repos.LoanRepo, repos.BookRepo)
	container.Audit = NewAuditService(repos.AuditRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CatalogSvcFacade   = (*catalogService)(nil)
	_ portssvc.LoanSvcFacade      = (*loanService)(nil)
	_ portssvc.FineSvcFacade      = (*fineService)(nil)
	_ portssvc.AuditSvcFacade     = (*auditService)(nil)
	_ portssvc.PolicySvcFacade    = (*policyService)(nil)
	_ portssvc.ReportingSvcFacade = (*reportingService)(nil)
)
