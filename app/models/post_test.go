package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostValidation(t *testing.T) {
	tests := []struct {
		name    string
		post    *Post
		wantErr bool
	}{
		{
			name:    "valid post",
			post:    &Post{ID: 1, Title: "Hi", Content: "World"},
			wantErr: false,
		},
		{
			name:    "zero id",
			post:    &Post{ID: 0, Title: "Hi", Content: "World"},
			wantErr: true,
		},
		{
			name:    "empty title",
			post:    &Post{ID: 1, Title: "", Content: "World"},
			wantErr: true,
		},
		{
			name:    "empty content",
			post:    &Post{ID: 1, Title: "Hi", Content: ""},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.post.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPostNormalize(t *testing.T) {
	post := &Post{ID: 1, Title: "  Hello \n", Content: "\tWorld  "}
	post.Normalize()

	assert.Equal(t, "Hello", post.Title)
	assert.Equal(t, "World", post.Content)
}

func TestPostValidateFields(t *testing.T) {
	assert.NoError(t, (&Post{Title: "a", Content: "b"}).ValidateFields())

	blank := &Post{Title: "   ", Content: "b"}
	assert.NoError(t, blank.ValidateFields(), "whitespace survives until Normalize")
	blank.Normalize()
	assert.Error(t, blank.ValidateFields())

	assert.Error(t, (&Post{Title: "a"}).ValidateFields())
}
