package repositories

import "postboard/app/models"

// PostStore loads and saves the whole post collection. Implementations never
// read or write part of it and do not lock across calls.
type PostStore interface {
	Load() ([]models.Post, error)
	Save(posts []models.Post) error
}
