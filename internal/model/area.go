package model

// Area is one administrative unit registered from the catalog.
// Immutable for the session; the slice order from the loader is the
// tie-break order for rankings.
type Area struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}
