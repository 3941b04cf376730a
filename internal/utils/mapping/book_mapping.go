package mapping

import (
	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/SscSPs/library_circulation_app/internal/models"
)

// ToModelBook converts a domain Book to a model Book.
func ToModelBook(d domain.Book) models.Book {
	return models.Book{
		BookID:           d.BookID,
		InventoryCode:    d.InventoryCode,
		ISBN:             d.ISBN,
		Title:            d.Title,
		Subtitle:         d.Subtitle,
		Author:           d.Author,
		Publisher:        d.Publisher,
		PublicationYear:  d.PublicationYear,
		Edition:          d.Edition,
		Category:         models.BookCategory(d.Category),
		Pages:            d.Pages,
		Language:         d.Language,
		ShelfLocation:    d.ShelfLocation,
		Condition:        models.BookCondition(d.Condition),
		Available:        d.Available,
		AcquiredAt:       d.AcquiredAt,
		AcquisitionPrice: d.AcquisitionPrice,
		Description:      d.Description,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBook converts a model Book to a domain Book.
func ToDomainBook(m models.Book) domain.Book {
	return domain.Book{
		BookID:           m.BookID,
		InventoryCode:    m.InventoryCode,
		ISBN:             m.ISBN,
		Title:            m.Title,
		Subtitle:         m.Subtitle,
		Author:           m.Author,
		Publisher:        m.Publisher,
		PublicationYear:  m.PublicationYear,
		Edition:          m.Edition,
		Category:         domain.BookCategory(m.Category),
		Pages:            m.Pages,
		Language:         m.Language,
		ShelfLocation:    m.ShelfLocation,
		Condition:        domain.BookCondition(m.Condition),
		Available:        m.Available,
		AcquiredAt:       m.AcquiredAt,
		AcquisitionPrice: m.AcquisitionPrice,
		Description:      m.Description,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBookSlice converts a slice of model Books to domain Books.
func ToDomainBookSlice(ms []models.Book) []domain.Book {
	ds := make([]domain.Book, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBook(m)
	}
	return ds
}
