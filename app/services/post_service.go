package services

import (
	"strings"
	"sync"

	"postboard/app/models"
	"postboard/app/repositories"
)

// PostService applies collection operations to the stored posts. Every call
// loads the full collection; mutating calls save it back.
type PostService struct {
	store repositories.PostStore

	// mu serializes load-modify-save cycles so concurrent mutations do not
	// overwrite each other. Reads are not locked.
	mu sync.Mutex
}

// NewPostService creates a new PostService
func NewPostService(store repositories.PostStore) *PostService {
	return &PostService{store: store}
}

// ListPosts returns all posts, optionally sorted. sort and direction must be
// supplied together; an unknown value of either is a validation error.
func (s *PostService) ListPosts(sort, direction string) ([]models.Post, error) {
	sort = strings.TrimSpace(sort)
	direction = strings.TrimSpace(direction)

	var (
		field    SortField
		dir      SortDirection
		fieldOK  bool
		dirOK    bool
		sortMode = sort != "" || direction != ""
	)
	if sort != "" {
		if field, fieldOK = ParseSortField(sort); !fieldOK {
			return nil, newValidationError(MsgBadRequest)
		}
	}
	if direction != "" {
		if dir, dirOK = ParseSortDirection(direction); !dirOK {
			return nil, newValidationError(MsgBadRequest)
		}
	}
	if sortMode && !(fieldOK && dirOK) {
		return nil, newValidationError(MsgBadRequest)
	}

	posts, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if !sortMode {
		return posts, nil
	}
	return SortPosts(posts, field, dir)
}

// GetPost returns the post with the given id.
func (s *PostService) GetPost(id int) (*models.Post, error) {
	posts, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	i := FindIndex(posts, id)
	if i < 0 {
		return nil, newNotFoundError(MsgPostAbsent, id)
	}
	return &posts[i], nil
}

// CreatePost appends a new post with the next free id and persists the
// collection. A nil title or content means the field was not supplied.
func (s *PostService) CreatePost(title, content *string) (*models.Post, error) {
	if title == nil || content == nil {
		return nil, newValidationError(MsgInvalidData)
	}
	post := models.Post{Title: *title, Content: *content}
	post.Normalize()
	if err := post.ValidateFields(); err != nil {
		return nil, newValidationError(MsgEmptyFields)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	post.ID = NextID(posts)

	posts = append(posts, post)
	if err := s.store.Save(posts); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost replaces the non-blank supplied fields of the post with id and
// persists the collection.
func (s *PostService) UpdatePost(id int, title, content *string) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	i := FindIndex(posts, id)
	if i < 0 {
		return nil, newNotFoundError(MsgPostAbsent, id)
	}

	posts[i] = MergeUpdate(posts[i], title, content)
	if err := s.store.Save(posts); err != nil {
		return nil, err
	}
	updated := posts[i]
	return &updated, nil
}

// DeletePost removes the post with id and persists the collection.
func (s *PostService) DeletePost(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.store.Load()
	if err != nil {
		return err
	}
	remaining, found := RemoveByID(posts, id)
	if !found {
		return newNotFoundError(MsgDeleteAbsent, id)
	}
	return s.store.Save(remaining)
}

// SearchPosts returns the posts matching the title and/or content queries.
// When both are blank the store is not read and the result is empty.
func (s *PostService) SearchPosts(title, content string) ([]models.Post, error) {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(content) == "" {
		return []models.Post{}, nil
	}
	posts, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return SearchPosts(posts, title, content), nil
}
