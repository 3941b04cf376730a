package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookCategory classifies a catalog entry.
type BookCategory string

const (
	CategoryFiction     BookCategory = "FICTION"
	CategoryNonFiction  BookCategory = "NON_FICTION"
	CategoryScience     BookCategory = "SCIENCE"
	CategoryTechnology  BookCategory = "TECHNOLOGY"
	CategoryHistory     BookCategory = "HISTORY"
	CategoryMathematics BookCategory = "MATHEMATICS"
	CategoryLiterature  BookCategory = "LITERATURE"
	CategoryReference   BookCategory = "REFERENCE"
	CategoryArt         BookCategory = "ART"
	CategoryOther       BookCategory = "OTHER"
)

// BookCondition describes the physical state of a copy.
type BookCondition string

const (
	ConditionExcellent BookCondition = "EXCELLENT"
	ConditionGood      BookCondition = "GOOD"
	ConditionFair      BookCondition = "FAIR"
	ConditionPoor      BookCondition = "POOR"
)

// Book represents a single physical copy in the catalog.
// InventoryCode is the unique business key; Available is owned exclusively by
// the loan lifecycle and never mutated through catalog updates.
type Book struct {
	BookID           string           `json:"bookID"` // Primary Key (UUID)
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
	ShelfLocation    string           `json:"shelfLocation"` // e.g. "Shelf A, Level 2"
	Condition        BookCondition    `json:"condition"`
	Available        bool             `json:"available"`
	AcquiredAt       time.Time        `json:"acquiredAt"`
	AcquisitionPrice *decimal.Decimal `json:"acquisitionPrice,omitempty"`
	Description      *string          `json:"description,omitempty"`
	AuditFields
}

// Summary returns the human-readable description stored on audit entries so
// they remain meaningful after the book itself is deleted.
func (b Book) Summary() string {
	return b.Title + " - " + b.Author + " [" + b.InventoryCode + "]"
}
