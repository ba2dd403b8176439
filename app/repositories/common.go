package repositories

import (
	"bytes"
	"encoding/json"
	"fmt"

	"postboard/app/models"
)

// marshalCollection encodes posts as an indented JSON array with a trailing
// newline. A nil slice is written as [].
func marshalCollection(posts []models.Post) ([]byte, error) {
	if posts == nil {
		posts = []models.Post{}
	}
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal collection: %w", err)
	}
	return append(data, '\n'), nil
}

// unmarshalCollection decodes a JSON array of posts. Blank input decodes to an
// empty collection.
func unmarshalCollection(data []byte) ([]models.Post, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Post{}, nil
	}
	var posts []models.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collection: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return posts, nil
}
