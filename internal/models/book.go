package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookCategory classifies a catalog entry.
type BookCategory string

// BookCondition describes the physical state of a copy.
type BookCondition string

// Book is the persistence model for a catalog entry.
type Book struct {
	BookID           string           `json:"bookID"`
	InventoryCode    string           `json:"inventoryCode"`
	ISBN             *string          `json:"isbn,omitempty"`
	Title            string           `json:"title"`
	Subtitle         *string          `json:"subtitle,omitempty"`
	Author           string           `json:"author"`
	Publisher        *string          `json:"publisher,omitempty"`
	PublicationYear  int              `json:"publicationYear"`
	Edition          *string          `json:"edition,omitempty"`
	Category         BookCategory     `json:"category"`
	Pages            *int             `json:"pages,omitempty"`
	Language         string           `json:"language"`
	ShelfLocation    string           `json:"shelfLocation"`
	Condition        BookCondition    `json:"condition"`
	Available        bool             `json:"available"`
	AcquiredAt       time.Time        `json:"acquiredAt"`
	AcquisitionPrice *decimal.Decimal `json:"acquisitionPrice,omitempty"`
	Description      *string          `json:"description,omitempty"`
	AuditFields
}
