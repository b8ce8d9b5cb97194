package domain

// Category groups books under a named heading, e.g. "Science Fiction".
// Category names are unique across the catalog.
type Category struct {
	Record
	Name string `json:"name"`
}
