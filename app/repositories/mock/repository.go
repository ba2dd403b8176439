package mock

import (
	"sync"

	"postboard/app/models"
)

// PostStore is an in-memory repositories.PostStore. LoadErr and SaveErr, when
// set, are returned by the next calls instead of touching the data.
type PostStore struct {
	posts     []models.Post
	mutex     sync.Mutex
	LoadErr   error
	SaveErr   error
	LoadCalls int
	SaveCalls int
}

// NewPostStore returns a store seeded with a copy of posts.
func NewPostStore(posts ...models.Post) *PostStore {
	return &PostStore{posts: clonePosts(posts)}
}

func (m *PostStore) Load() ([]models.Post, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.LoadCalls++
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return clonePosts(m.posts), nil
}

func (m *PostStore) Save(posts []models.Post) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.posts = clonePosts(posts)
	return nil
}

// Posts returns a copy of the stored collection.
func (m *PostStore) Posts() []models.Post {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return clonePosts(m.posts)
}

// Clear empties the store and resets the call counters.
func (m *PostStore) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.posts = []models.Post{}
	m.LoadCalls = 0
	m.SaveCalls = 0
}

func clonePosts(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	return out
}
