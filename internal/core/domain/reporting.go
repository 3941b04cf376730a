package domain

// CatalogReportRow is one line of the catalog export. Field order matches the
// report column order: inventory code, title, author, category, year, availability.
type CatalogReportRow struct {
	InventoryCode   string       `json:"inventoryCode"`
	Title           string       `json:"title"`
	Author          string       `json:"author"`
	Category        BookCategory `json:"category"`
	PublicationYear int          `json:"publicationYear"`
	Available       bool         `json:"available"`
}
