package domain

// Book represents a single catalog entry available for lending.
type Book struct {
	Record
	Name      string `json:"name"`
	Author    string `json:"author"`
	Image     string `json:"image,omitempty"`
	Language  string `json:"language,omitempty"`
	Publisher string `json:"publisher,omitempty"`
	// IsAvailable is a derived-but-stored flag. True means no open
	// (approved, unreturned) loan exists for this book.
	IsAvailable bool `json:"is_available"`
	// CategoryID references a Category. May be empty for uncategorized books.
	CategoryID string `json:"category_id,omitempty"`
}
