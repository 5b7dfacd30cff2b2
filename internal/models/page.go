package models

// Page is one renderable HTML fragment of a paginated document.
type Page struct {
	Index int    `json:"index"`
	HTML  string `json:"html"`
}

// Number is the 1-based page number shown to a reader.
func (p Page) Number() int {
	return p.Index + 1
}
