package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/SscSPs/library_circulation_app/internal/apperrors"
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	portsrepo "github.com/SscSPs/library_circulation_app/internal/core/ports/repositories"
	"github.com/SscSPs/library_circulation_app/internal/models"
	"github.com/SscSPs/library_circulation_app/internal/utils/mapping"
	"github.com/SscSPs/library_circulation_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `book_id, inventory_code, isbn, title, subtitle, author, publisher, publication_year, edition, category, pages, language, shelf_location, condition, available, acquired_at, acquisition_price, description, created_at, created_by, last_updated_at, last_updated_by`

type PgxBookRepository struct {
	BaseRepository
}

// newPgxBookRepository creates a new repository for catalog data.
func newPgxBookRepository(pool *pgxpool.Pool) portsrepo.BookRepositoryFacade {
	return &PgxBookRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.BookRepositoryFacade = (*PgxBookRepository)(nil)

func scanBook(row pgx.Row) (models.Book, error) {
	var b models.Book
	err := row.Scan(
		&b.BookID,
		&b.InventoryCode,
		&b.ISBN,
		&b.Title,
		&b.Subtitle,
		&b.Author,
		&b.Publisher,
		&b.PublicationYear,
		&b.Edition,
		&b.Category,
		&b.Pages,
		&b.Language,
		&b.ShelfLocation,
		&b.Condition,
		&b.Available,
		&b.AcquiredAt,
		&b.AcquisitionPrice,
		&b.Description,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	return b, err
}

// SaveBook inserts a new catalog entry and its BOOK_ADDED trail row in one
// transaction. A duplicate inventory code surfaces as apperrors.ErrDuplicate.
func (r *PgxBookRepository) SaveBook(ctx context.Context, book domain.Book, entry domain.AuditEntry) error {
	modelBook := mapping.ToModelBook(book)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO books (` + bookColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22);
	`
	_, err = tx.Exec(ctx, query,
		modelBook.BookID,
		modelBook.InventoryCode,
		modelBook.ISBN,
		modelBook.Title,
		modelBook.Subtitle,
		modelBook.Author,
		modelBook.Publisher,
		modelBook.PublicationYear,
		modelBook.Edition,
		modelBook.Category,
		modelBook.Pages,
		modelBook.Language,
		modelBook.ShelfLocation,
		modelBook.Condition,
		modelBook.Available,
		modelBook.AcquiredAt,
		modelBook.AcquisitionPrice,
		modelBook.Description,
		modelBook.CreatedAt,
		modelBook.CreatedBy,
		modelBook.LastUpdatedAt,
		modelBook.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.ErrDuplicate
			}
		}
		return apperrors.NewAppError(500, "failed to insert book "+modelBook.BookID, err)
	}

	if err := insertAuditEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateBook rewrites catalog metadata for an existing book. Availability is
// deliberately absent from the column list; only the loan lifecycle moves it.
func (r *PgxBookRepository) UpdateBook(ctx context.Context, book domain.Book) error {
	modelBook := mapping.ToModelBook(book)
	query := `
		UPDATE books SET
			isbn = $2,
			title = $3,
			subtitle = $4,
			author = $5,
			publisher = $6,
			publication_year = $7,
			edition = $8,
			category = $9,
			pages = $10,
			language = $11,
			shelf_location = $12,
			condition = $13,
			acquisition_price = $14,
			description = $15,
			last_updated_at = $16,
			last_updated_by = $17
		WHERE book_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelBook.BookID,
		modelBook.ISBN,
		modelBook.Title,
		modelBook.Subtitle,
		modelBook.Author,
		modelBook.Publisher,
		modelBook.PublicationYear,
		modelBook.Edition,
		modelBook.Category,
		modelBook.Pages,
		modelBook.Language,
		modelBook.ShelfLocation,
		modelBook.Condition,
		modelBook.AcquisitionPrice,
		modelBook.Description,
		modelBook.LastUpdatedAt,
		modelBook.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update book "+modelBook.BookID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBook removes a book and appends its BOOK_REMOVED trail row in one
// transaction. The book row is locked first so a concurrent checkout cannot
// slip in between the active-loan check and the delete.
func (r *PgxBookRepository) DeleteBook(ctx context.Context, bookID string, entry domain.AuditEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var lockedID string
	err = tx.QueryRow(ctx, `SELECT book_id FROM books WHERE book_id = $1 FOR UPDATE;`, bookID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock book "+bookID, err)
	}

	var activeLoans int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM loans WHERE book_id = $1 AND active = TRUE;`, bookID).Scan(&activeLoans)
	if err != nil {
		return apperrors.NewAppError(500, "failed to count active loans for book "+bookID, err)
	}
	if activeLoans > 0 {
		return apperrors.ErrConflict
	}

	_, err = tx.Exec(ctx, `DELETE FROM books WHERE book_id = $1;`, bookID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete book "+bookID, err)
	}

	if err := insertAuditEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindBookByID retrieves a book by its unique identifier.
func (r *PgxBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE book_id = $1;`
	modelBook, err := scanBook(r.Pool.QueryRow(ctx, query, bookID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find book by ID "+bookID, err)
	}
	domainBook := mapping.ToDomainBook(modelBook)
	return &domainBook, nil
}

// FindBookByInventoryCode retrieves a book by its unique inventory code.
func (r *PgxBookRepository) FindBookByInventoryCode(ctx context.Context, inventoryCode string) (*domain.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM books WHERE inventory_code = $1;`
	modelBook, err := scanBook(r.Pool.QueryRow(ctx, query, inventoryCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find book by inventory code "+inventoryCode, err)
	}
	domainBook := mapping.ToDomainBook(modelBook)
	return &domainBook, nil
}

// ListBooks retrieves a filtered, token-paginated page of the catalog ordered
// by acquisition date, newest first.
func (r *PgxBookRepository) ListBooks(ctx context.Context, filter portsrepo.BookListFilter, limit int, nextToken *string) ([]domain.Book, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + bookColumns + ` FROM books WHERE 1=1`
	args := []interface{}{}

	if filter.Available != nil {
		args = append(args, *filter.Available)
		baseQuery += ` AND available = $` + strconv.Itoa(len(args))
	}
	if filter.Category != nil {
		args = append(args, string(*filter.Category))
		baseQuery += ` AND category = $` + strconv.Itoa(len(args))
	}
	if filter.Search != nil && *filter.Search != "" {
		args = append(args, "%"+*filter.Search+"%")
		n := strconv.Itoa(len(args))
		baseQuery += ` AND (title ILIKE $` + n + ` OR author ILIKE $` + n + ` OR inventory_code ILIKE $` + n + `)`
	}

	if nextToken != nil && *nextToken != "" {
		lastAcquiredAt, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastAcquiredAt, lastCreatedAt)
		baseQuery += ` AND (acquired_at, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY acquired_at DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query books", err)
	}
	defer rows.Close()

	modelBooks := make([]models.Book, 0, fetchLimit)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan book row", err)
		}
		modelBooks = append(modelBooks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating book rows", err)
	}

	var newNextToken *string
	if len(modelBooks) == fetchLimit {
		lastItem := modelBooks[limit-1]
		token := pagination.EncodeToken(lastItem.AcquiredAt, lastItem.CreatedAt)
		newNextToken = &token
		modelBooks = modelBooks[:limit]
	}

	return mapping.ToDomainBookSlice(modelBooks), newNextToken, nil
}
