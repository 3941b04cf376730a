package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/library_circulation_app/internal/apperrors"
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation_app/internal/core/ports/repositories"
	"github.com/SscSPs/library_circulation_app/internal/models"
	"github.com/SscSPs/library_circulation_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

const policyColumns = `config_id, loan_period_days, max_renewals, max_concurrent_loans, fine_per_day, grace_days, library_name, address, phone, email, opening_hours, last_updated_at, last_updated_by`

type PgxPolicyRepository struct {
	BaseRepository
}

// newPgxPolicyRepository creates a new repository for the singleton policy row.
func newPgxPolicyRepository(pool *pgxpool.Pool) portsrepo.PolicyRepositoryFacade {
	return &PgxPolicyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.PolicyRepositoryFacade = (*PgxPolicyRepository)(nil)

// LoadPolicy returns the singleton policy row, creating it with defaults when
// absent. Concurrent first loads race on the same fixed key; ON CONFLICT DO
// NOTHING lets every racer fall through to the select and read one row.
func (r *PgxPolicyRepository) LoadPolicy(ctx context.Context) (*domain.PolicyConfiguration, error) {
	defaults := mapping.ToModelPolicyConfiguration(domain.DefaultPolicyConfiguration())
	defaults.LastUpdatedAt = time.Now().UTC()

	insertQuery := `
		INSERT INTO policy_configuration (` + policyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (config_id) DO NOTHING;
	`
	_, err := r.Pool.Exec(ctx, insertQuery,
		defaults.ConfigID,
		defaults.LoanPeriodDays,
		defaults.MaxRenewals,
		defaults.MaxConcurrentLoans,
		defaults.FinePerDay,
		defaults.GraceDays,
		defaults.LibraryName,
		defaults.Address,
		defaults.Phone,
		defaults.Email,
		defaults.OpeningHours,
		defaults.LastUpdatedAt,
		defaults.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to ensure policy configuration row", err)
	}

	selectQuery := `SELECT ` + policyColumns + ` FROM policy_configuration WHERE config_id = $1;`
	var modelPolicy models.PolicyConfiguration
	err = r.Pool.QueryRow(ctx, selectQuery, domain.PolicyConfigID).Scan(
		&modelPolicy.ConfigID,
		&modelPolicy.LoanPeriodDays,
		&modelPolicy.MaxRenewals,
		&modelPolicy.MaxConcurrentLoans,
		&modelPolicy.FinePerDay,
		&modelPolicy.GraceDays,
		&modelPolicy.LibraryName,
		&modelPolicy.Address,
		&modelPolicy.Phone,
		&modelPolicy.Email,
		&modelPolicy.OpeningHours,
		&modelPolicy.LastUpdatedAt,
		&modelPolicy.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to load policy configuration", err)
	}

	domainPolicy := mapping.ToDomainPolicyConfiguration(modelPolicy)
	return &domainPolicy, nil
}

// UpdatePolicy replaces the singleton's values in place. The fixed key means
// an update can never create a second row.
func (r *PgxPolicyRepository) UpdatePolicy(ctx context.Context, policy domain.PolicyConfiguration) error {
	modelPolicy := mapping.ToModelPolicyConfiguration(policy)
	query := `
		UPDATE policy_configuration SET
			loan_period_days = $2,
			max_renewals = $3,
			max_concurrent_loans = $4,
			fine_per_day = $5,
			grace_days = $6,
			library_name = $7,
			address = $8,
			phone = $9,
			email = $10,
			opening_hours = $11,
			last_updated_at = $12,
			last_updated_by = $13
		WHERE config_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		domain.PolicyConfigID,
		modelPolicy.LoanPeriodDays,
		modelPolicy.MaxRenewals,
		modelPolicy.MaxConcurrentLoans,
		modelPolicy.FinePerDay,
		modelPolicy.GraceDays,
		modelPolicy.LibraryName,
		modelPolicy.Address,
		modelPolicy.Phone,
		modelPolicy.Email,
		modelPolicy.OpeningHours,
		modelPolicy.LastUpdatedAt,
		modelPolicy.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update policy configuration", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
