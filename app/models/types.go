package models

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Post is a single entry of the persisted collection.
type Post struct {
	ID      int    `json:"id" validate:"gte=1"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}
