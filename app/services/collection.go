package services

import (
	"fmt"
	"slices"
	"strings"

	"postboard/app/models"
)

// SortField names a post field the list can be ordered by.
type SortField string

// SortDirection is ascending or descending order.
type SortDirection string

const (
	SortByTitle   SortField = "title"
	SortByContent SortField = "content"

	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

type sortKey struct {
	field SortField
	dir   SortDirection
}

// comparators maps every supported (field, direction) pair to its ordering.
// Comparison is byte-wise, so it is case sensitive.
var comparators = map[sortKey]func(a, b models.Post) int{
	{SortByTitle, Ascending}:    func(a, b models.Post) int { return strings.Compare(a.Title, b.Title) },
	{SortByTitle, Descending}:   func(a, b models.Post) int { return strings.Compare(b.Title, a.Title) },
	{SortByContent, Ascending}:  func(a, b models.Post) int { return strings.Compare(a.Content, b.Content) },
	{SortByContent, Descending}: func(a, b models.Post) int { return strings.Compare(b.Content, a.Content) },
}

// ParseSortField parses a case-insensitive, whitespace-trimmed field name.
func ParseSortField(s string) (SortField, bool) {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByTitle, SortByContent:
		return f, true
	}
	return "", false
}

// ParseSortDirection parses a case-insensitive, whitespace-trimmed direction.
func ParseSortDirection(s string) (SortDirection, bool) {
	switch d := SortDirection(strings.ToLower(strings.TrimSpace(s))); d {
	case Ascending, Descending:
		return d, true
	}
	return "", false
}

// SortPosts returns a stably sorted copy of posts.
func SortPosts(posts []models.Post, field SortField, dir SortDirection) ([]models.Post, error) {
	cmp, ok := comparators[sortKey{field, dir}]
	if !ok {
		return nil, fmt.Errorf("unsupported sort %q %q", field, dir)
	}
	sorted := slices.Clone(posts)
	if sorted == nil {
		sorted = []models.Post{}
	}
	slices.SortStableFunc(sorted, cmp)
	return sorted, nil
}

// SearchPosts returns the posts whose title and/or content contain the given
// queries, case-insensitively, in their stored order. Blank queries are
// ignored; if both are blank nothing matches.
func SearchPosts(posts []models.Post, title, content string) []models.Post {
	title = strings.ToLower(strings.TrimSpace(title))
	content = strings.ToLower(strings.TrimSpace(content))

	matches := []models.Post{}
	if title == "" && content == "" {
		return matches
	}
	for _, p := range posts {
		if title != "" && !strings.Contains(strings.ToLower(p.Title), title) {
			continue
		}
		if content != "" && !strings.Contains(strings.ToLower(p.Content), content) {
			continue
		}
		matches = append(matches, p)
	}
	return matches
}

// NextID returns one more than the highest id, or 1 for an empty collection.
// It scans the whole collection.
func NextID(posts []models.Post) int {
	maxID := 0
	for _, p := range posts {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	return maxID + 1
}

// FindIndex returns the position of the post with id, or -1.
func FindIndex(posts []models.Post, id int) int {
	return slices.IndexFunc(posts, func(p models.Post) bool { return p.ID == id })
}

// MergeUpdate returns post with title and content replaced by the supplied
// values. A nil or blank value keeps the existing field.
func MergeUpdate(post models.Post, title, content *string) models.Post {
	if v := trimmed(title); v != "" {
		post.Title = v
	}
	if v := trimmed(content); v != "" {
		post.Content = v
	}
	return post
}

// RemoveByID returns the collection without the post with id and whether it
// was present. Other ids are left unchanged.
func RemoveByID(posts []models.Post, id int) ([]models.Post, bool) {
	i := FindIndex(posts, id)
	if i < 0 {
		return posts, false
	}
	return slices.Delete(slices.Clone(posts), i, i+1), true
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
