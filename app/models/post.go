package models

import "strings"

// Normalize trims leading and trailing whitespace from title and content.
func (p *Post) Normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Content = strings.TrimSpace(p.Content)
}

// Validate checks the post against its field rules. It does not trim.
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// ValidateFields checks title and content only, for posts that have not been
// assigned an id yet.
func (p *Post) ValidateFields() error {
	return validate.StructPartial(p, "Title", "Content")
}
