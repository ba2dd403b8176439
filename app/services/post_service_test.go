package services

import (
	"errors"
	"sync"
	"testing"

	"postboard/app/models"
	"postboard/app/repositories"
	"postboard/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func strPtr(s string) *string { return &s }

func TestPostService(t *testing.T) {
	store := mock.NewPostStore()
	service := NewPostService(store)

	t.Run("create post on empty store", func(t *testing.T) {
		post, err := service.CreatePost(strPtr("  Hi "), strPtr("World\n"))
		require.NoError(t, err)
		assert.Equal(t, models.Post{ID: 1, Title: "Hi", Content: "World"}, *post)
		assert.Equal(t, []models.Post{*post}, store.Posts())
	})

	t.Run("create assigns max id plus one", func(t *testing.T) {
		store.Clear()
		require.NoError(t, store.Save([]models.Post{{ID: 4, Title: "a", Content: "b"}, {ID: 2, Title: "c", Content: "d"}}))

		post, err := service.CreatePost(strPtr("New"), strPtr("Post"))
		require.NoError(t, err)
		assert.Equal(t, 5, post.ID)
		assert.Equal(t, []int{4, 2, 5}, ids(store.Posts()))
	})

	t.Run("get post", func(t *testing.T) {
		post, err := service.GetPost(2)
		require.NoError(t, err)
		assert.Equal(t, "c", post.Title)

		_, err = service.GetPost(99)
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "No post found with id 99", notFound.Error())
	})

	t.Run("update title only", func(t *testing.T) {
		post, err := service.UpdatePost(4, strPtr("Renamed"), nil)
		require.NoError(t, err)
		assert.Equal(t, models.Post{ID: 4, Title: "Renamed", Content: "b"}, *post)
		assert.Equal(t, *post, store.Posts()[0])
	})

	t.Run("update with blank title keeps old value", func(t *testing.T) {
		post, err := service.UpdatePost(4, strPtr("   "), strPtr("New body"))
		require.NoError(t, err)
		assert.Equal(t, models.Post{ID: 4, Title: "Renamed", Content: "New body"}, *post)
	})

	t.Run("update missing post", func(t *testing.T) {
		saves := store.SaveCalls
		_, err := service.UpdatePost(999, strPtr("x"), nil)
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, 999, notFound.ID)
		assert.Equal(t, "No post found with id 999", err.Error())
		assert.Equal(t, saves, store.SaveCalls, "nothing is persisted on a miss")
	})

	t.Run("delete post", func(t *testing.T) {
		require.NoError(t, service.DeletePost(2))
		assert.Equal(t, []int{4, 5}, ids(store.Posts()))

		err := service.DeletePost(2)
		var notFound *NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "Post with id 2 not found.", err.Error())
	})

	t.Run("deleting the highest id frees it", func(t *testing.T) {
		require.NoError(t, service.DeletePost(5))
		post, err := service.CreatePost(strPtr("t"), strPtr("c"))
		require.NoError(t, err)
		assert.Equal(t, 5, post.ID)
	})
}

func TestPostServiceCreateValidation(t *testing.T) {
	store := mock.NewPostStore()
	service := NewPostService(store)

	tests := []struct {
		name    string
		title   *string
		content *string
		wantMsg string
	}{
		{"missing title", nil, strPtr("c"), MsgInvalidData},
		{"missing content", strPtr("t"), nil, MsgInvalidData},
		{"blank title", strPtr("  "), strPtr("c"), MsgEmptyFields},
		{"blank content", strPtr("t"), strPtr("\n\t"), MsgEmptyFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CreatePost(tt.title, tt.content)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.wantMsg, validation.Message)
		})
	}
	assert.Zero(t, store.SaveCalls)
}

func TestPostServiceListPosts(t *testing.T) {
	store := mock.NewPostStore(samplePosts()...)
	service := NewPostService(store)

	t.Run("no parameters keeps persisted order", func(t *testing.T) {
		posts, err := service.ListPosts("", "")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(posts))
	})

	t.Run("sorted", func(t *testing.T) {
		posts, err := service.ListPosts(" Title", "DESC ")
		require.NoError(t, err)
		assert.Equal(t, []int{3, 1, 5, 4, 2}, ids(posts))
		assert.Equal(t, samplePosts(), store.Posts(), "sorting must not be persisted")
	})

	invalid := []struct {
		name      string
		sort      string
		direction string
	}{
		{"invalid sort", "id", "asc"},
		{"invalid direction", "title", "sideways"},
		{"both invalid", "x", "y"},
		{"invalid sort without direction", "id", ""},
		{"sort without direction", "title", ""},
		{"direction without sort", "", "asc"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ListPosts(tt.sort, tt.direction)
			var validation *ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, MsgBadRequest, validation.Message)
		})
	}
}

func TestPostServiceSearchPosts(t *testing.T) {
	store := mock.NewPostStore(samplePosts()...)
	service := NewPostService(store)

	t.Run("blank queries do not read the store", func(t *testing.T) {
		posts, err := service.SearchPosts(" ", "")
		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
		assert.Zero(t, store.LoadCalls)
	})

	t.Run("and semantics", func(t *testing.T) {
		posts, err := service.SearchPosts("APPLE", "fruit")
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4}, ids(posts))
	})
}

func TestPostServiceStorageErrors(t *testing.T) {
	storageErr := &repositories.StorageError{Op: "load", Err: errors.New("boom")}
	store := mock.NewPostStore()
	store.LoadErr = storageErr
	service := NewPostService(store)

	_, err := service.ListPosts("", "")
	assert.ErrorIs(t, err, storageErr)

	_, err = service.CreatePost(strPtr("t"), strPtr("c"))
	assert.ErrorIs(t, err, storageErr)

	_, err = service.UpdatePost(1, strPtr("t"), nil)
	assert.ErrorIs(t, err, storageErr)

	assert.ErrorIs(t, service.DeletePost(1), storageErr)

	_, err = service.SearchPosts("t", "")
	assert.ErrorIs(t, err, storageErr)

	store.LoadErr = nil
	store.SaveErr = &repositories.StorageError{Op: "save", Err: errors.New("disk full")}
	_, err = service.CreatePost(strPtr("t"), strPtr("c"))
	var target *repositories.StorageError
	require.ErrorAs(t, err, &target)
	assert.Equal(t, "save", target.Op)
	assert.Empty(t, store.Posts())
}

func TestPostServiceConcurrentCreates(t *testing.T) {
	store := mock.NewPostStore()
	service := NewPostService(store)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CreatePost(strPtr("title"), strPtr("content"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	posts := store.Posts()
	require.Len(t, posts, n)
	seen := make(map[int]bool, n)
	for _, p := range posts {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
	}
	assert.Equal(t, n+1, NextID(posts))
}
