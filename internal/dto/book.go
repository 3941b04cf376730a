package dto

import (
	"time"

	"github.com/SscSPs/library_circulation_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBookRequest defines the data needed to add a book to the catalog.
type CreateBookRequest struct {
	InventoryCode    string               `json:"inventoryCode" binding:"required"`
	ISBN             *string              `json:"isbn"`
	Title            string               `json:"title" binding:"required"`
	Subtitle         *string              `json:"subtitle"`
	Author           string               `json:"author" binding:"required"`
	Publisher        *string              `json:"publisher"`
	PublicationYear  int                  `json:"publicationYear" binding:"required,min=1000,max=9999"`
	Edition          *string              `json:"edition"`
	Category         domain.BookCategory  `json:"category" binding:"required,oneof=FICTION NON_FICTION SCIENCE TECHNOLOGY HISTORY MATHEMATICS LITERATURE REFERENCE ART OTHER"`
	Pages            *int                 `json:"pages"`
	Language         string               `json:"language"`
	ShelfLocation    string               `json:"shelfLocation" binding:"required"`
	Condition        domain.BookCondition `json:"condition" binding:"omitempty,oneof=EXCELLENT GOOD FAIR POOR"`
	AcquisitionPrice *decimal.Decimal     `json:"acquisitionPrice"`
	Description      *string              `json:"description"`
}

// UpdateBookRequest defines catalog metadata updates. Pointers distinguish
// zero-value updates from fields not provided. Availability is absent on
// purpose: it is owned by the loan lifecycle.
type UpdateBookRequest struct {
	ISBN            *string               `json:"isbn"`
	Title           *string               `json:"title"`
	Subtitle        *string               `json:"subtitle"`
	Author          *string               `json:"author"`
	Publisher       *string               `json:"publisher"`
	PublicationYear *int                  `json:"publicationYear" binding:"omitempty,min=1000,max=9999"`
	Edition         *string               `json:"edition"`
	Category        *domain.BookCategory  `json:"category" binding:"omitempty,oneof=FICTION NON_FICTION SCIENCE TECHNOLOGY HISTORY MATHEMATICS LITERATURE REFERENCE ART OTHER"`
	Pages           *int                  `json:"pages"`
	Language        *string               `json:"language"`
	ShelfLocation   *string               `json:"shelfLocation"`
	Condition       *domain.BookCondition `json:"condition" binding:"omitempty,oneof=EXCELLENT GOOD FAIR POOR"`
	Description     *string               `json:"description"`
}

// ListBooksParams holds the query parameters for listing books.
type ListBooksParams struct {
	Available *bool   `form:"available"`
	Category  *string `form:"category"`
	Search    *string `form:"q"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// BookResponse defines the data returned for a book.
type BookResponse struct {
	BookID           string               `json:"bookID"`
	InventoryCode    string               `json:"inventoryCode"`
	ISBN             *string              `json:"isbn,omitempty"`
	Title            string               `json:"title"`
	Subtitle         *string              `json:"subtitle,omitempty"`
	Author           string               `json:"author"`
	Publisher        *string              `json:"publisher,omitempty"`
	PublicationYear  int                  `json:"publicationYear"`
	Edition          *string              `json:"edition,omitempty"`
	Category         domain.BookCategory  `json:"category"`
	Pages            *int                 `json:"pages,omitempty"`
	Language         string               `json:"language"`
	ShelfLocation    string               `json:"shelfLocation"`
	Condition        domain.BookCondition `json:"condition"`
	Available        bool                 `json:"available"`
	AcquiredAt       time.Time            `json:"acquiredAt"`
	AcquisitionPrice *decimal.Decimal     `json:"acquisitionPrice,omitempty"`
	Description      *string              `json:"description,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	CreatedBy        string               `json:"createdBy"`
	LastUpdatedAt    time.Time            `json:"lastUpdatedAt"`
	LastUpdatedBy    string               `json:"lastUpdatedBy"`
}

// ListBooksResponse wraps a page of books plus the pagination cursor.
type ListBooksResponse struct {
	Books     []BookResponse `json:"books"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToBookResponse converts a domain.Book to a BookResponse DTO.
func ToBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		BookID:           b.BookID,
		InventoryCode:    b.InventoryCode,
		ISBN:             b.ISBN,
		Title:            b.Title,
		Subtitle:         b.Subtitle,
		Author:           b.Author,
		Publisher:        b.Publisher,
		PublicationYear:  b.PublicationYear,
		Edition:          b.Edition,
		Category:         b.Category,
		Pages:            b.Pages,
		Language:         b.Language,
		ShelfLocation:    b.ShelfLocation,
		Condition:        b.Condition,
		Available:        b.Available,
		AcquiredAt:       b.AcquiredAt,
		AcquisitionPrice: b.AcquisitionPrice,
		Description:      b.Description,
		CreatedAt:        b.CreatedAt,
		CreatedBy:        b.CreatedBy,
		LastUpdatedAt:    b.LastUpdatedAt,
		LastUpdatedBy:    b.LastUpdatedBy,
	}
}

// ToBookResponses converts a slice of domain books to response DTOs.
func ToBookResponses(books []domain.Book) []BookResponse {
	resp := make([]BookResponse, len(books))
	for i := range books {
		resp[i] = ToBookResponse(&books[i])
	}
	return resp
}
