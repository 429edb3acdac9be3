// Copyright (c) 2025 Red Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	uuid "github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	interrors "github.com/redsocial/api/interactions/errors"
	"github.com/redsocial/api/interactions/models"
	"github.com/redsocial/api/internal/types"
	postsmodels "github.com/redsocial/api/posts/models"
)

// memStore is an in-memory LikeRepository, PostLocker, and comment sink
// with faithful lock semantics: a per-post mutex serializes every
// WithPostLock closure the way the row lock serializes transactions.
type memStore struct {
	mu        sync.Mutex
	postLocks map[uuid.UUID]*sync.Mutex
	posts     map[uuid.UUID]*postsmodels.Post
	likes     map[uuid.UUID]map[uuid.UUID]models.Like
	comments  []postsmodels.Comment
}

func newMemStore() *memStore {
	return &memStore{
		postLocks: make(map[uuid.UUID]*sync.Mutex),
		posts:     make(map[uuid.UUID]*postsmodels.Post),
		likes:     make(map[uuid.UUID]map[uuid.UUID]models.Like),
	}
}

func (s *memStore) addPost(post postsmodels.Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[post.ObjectId] = &post
	s.postLocks[post.ObjectId] = &sync.Mutex{}
	s.likes[post.ObjectId] = make(map[uuid.UUID]models.Like)
}

func (s *memStore) FindByUserAndPost(ctx context.Context, userID, postID uuid.UUID) (*models.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if like, ok := s.likes[postID][userID]; ok {
		copied := like
		return &copied, nil
	}
	return nil, nil
}

func (s *memStore) Insert(ctx context.Context, like *models.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	byUser, ok := s.likes[like.PostId]
	if !ok {
		return interrors.ErrStorage
	}
	if _, exists := byUser[like.UserId]; exists {
		return interrors.ErrConflict
	}
	if like.CreatedAt.IsZero() {
		like.CreatedAt = time.Now()
	}
	byUser[like.UserId] = *like
	return nil
}

func (s *memStore) Delete(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byUser, ok := s.likes[postID]
	if !ok {
		return false, nil
	}
	if _, exists := byUser[userID]; !exists {
		return false, nil
	}
	delete(byUser, userID)
	return true, nil
}

func (s *memStore) CountForPost(ctx context.Context, postID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.likes[postID])), nil
}

func (s *memStore) WithPostLock(ctx context.Context, postID uuid.UUID, fn func(txCtx context.Context, post *postsmodels.Post) error) error {
	s.mu.Lock()
	lock, ok := s.postLocks[postID]
	s.mu.Unlock()
	if !ok {
		return interrors.ErrPostNotFound
	}

	lock.Lock()
	defer lock.Unlock()

	s.mu.Lock()
	snapshot := *s.posts[postID]
	s.mu.Unlock()

	return fn(ctx, &snapshot)
}

func (s *memStore) AddLikesCount(ctx context.Context, postID uuid.UUID, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return 0, interrors.ErrPostNotFound
	}
	post.LikesCount += delta
	if post.LikesCount < 0 {
		post.LikesCount = 0
	}
	return post.LikesCount, nil
}

func (s *memStore) AddCommentsCount(ctx context.Context, postID uuid.UUID, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	post, ok := s.posts[postID]
	if !ok {
		return 0, interrors.ErrPostNotFound
	}
	post.CommentsCount += delta
	if post.CommentsCount < 0 {
		post.CommentsCount = 0
	}
	return post.CommentsCount, nil
}

func (s *memStore) CreateComment(ctx context.Context, comment *postsmodels.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}
	s.comments = append(s.comments, *comment)
	return nil
}

func (s *memStore) post(id uuid.UUID) postsmodels.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.posts[id]
}

// commentSink adapts memStore to the comment repository contract
type commentSink struct{ store *memStore }

func (c commentSink) Create(ctx context.Context, comment *postsmodels.Comment) error {
	return c.store.CreateComment(ctx, comment)
}

func (c commentSink) FindByID(ctx context.Context, id uuid.UUID) (*postsmodels.Comment, error) {
	return nil, nil
}

func (c commentSink) ListByPost(ctx context.Context, postID uuid.UUID) ([]postsmodels.CommentWithAuthor, error) {
	return nil, nil
}

func (c commentSink) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func newEngine(store *memStore) InteractionService {
	return NewInteractionService(store, store, commentSink{store: store}, nil)
}

func seedPost(store *memStore) uuid.UUID {
	postID := uuid.Must(uuid.NewV4())
	store.addPost(postsmodels.Post{
		ObjectId:    postID,
		Content:     "seeded",
		OwnerUserId: uuid.Must(uuid.NewV4()),
		CreatedAt:   time.Now(),
	})
	return postID
}

func TestInteractionService_ToggleLike(t *testing.T) {
	ctx := context.Background()
	user := types.UserContext{UserID: uuid.Must(uuid.NewV4()), Username: "ana"}

	t.Run("first toggle likes the post", func(t *testing.T) {
		store := newMemStore()
		postID := seedPost(store)
		engine := newEngine(store)

		update, err := engine.ToggleLike(ctx, user, postID)

		require.NoError(t, err)
		assert.True(t, update.Liked)
		assert.Equal(t, int64(1), update.LikesCount)
		assert.Equal(t, postID.String(), update.PostId)
		assert.Equal(t, user.UserID.String(), update.UserId)
		assert.Equal(t, int64(1), store.post(postID).LikesCount)
	})

	t.Run("update carries the post row", func(t *testing.T) {
		store := newMemStore()
		postID := seedPost(store)
		engine := newEngine(store)
		post := store.post(postID)

		update, err := engine.ToggleLike(ctx, user, postID)

		require.NoError(t, err)
		assert.Equal(t, post.Content, update.Content)
		assert.Equal(t, post.OwnerUserId.String(), update.OwnerUserId)
		assert.Equal(t, post.CreatedAt, update.CreatedAt)
		assert.Equal(t, post.CommentsCount, update.CommentsCount)
		assert.False(t, update.CreatedAt.IsZero())
	})

	t.Run("second toggle removes the like", func(t *testing.T) {
		store := newMemStore()
		postID := seedPost(store)
		engine := newEngine(store)

		_, err := engine.ToggleLike(ctx, user, postID)
		require.NoError(t, err)

		update, err := engine.ToggleLike(ctx, user, postID)

		require.NoError(t, err)
		assert.False(t, update.Liked)
		assert.Equal(t, int64(0), update.LikesCount)
		assert.Equal(t, int64(0), store.post(postID).LikesCount)

		count, err := store.CountForPost(ctx, postID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("unknown post", func(t *testing.T) {
		engine := newEngine(newMemStore())

		_, err := engine.ToggleLike(ctx, user, uuid.Must(uuid.NewV4()))
		assert.ErrorIs(t, err, interrors.ErrPostNotFound)
	})

	t.Run("counter never goes negative", func(t *testing.T) {
		store := newMemStore()
		postID := seedPost(store)
		engine := newEngine(store)

		// Simulate prior drift: a like row exists but the counter is zero
		err := store.Insert(ctx, &models.Like{
			ObjectId: uuid.Must(uuid.NewV4()),
			UserId:   user.UserID,
			PostId:   postID,
		})
		require.NoError(t, err)

		update, err := engine.ToggleLike(ctx, user, postID)

		require.NoError(t, err)
		assert.False(t, update.Liked)
		assert.Equal(t, int64(0), update.LikesCount)
	})
}

func TestInteractionService_AddComment(t *testing.T) {
	ctx := context.Background()
	user := types.UserContext{UserID: uuid.Must(uuid.NewV4()), Username: "ana"}

	t.Run("persists comment and bumps counter", func(t *testing.T) {
		store := newMemStore()
		postID := seedPost(store)
		engine := newEngine(store)

		result, err := engine.AddComment(ctx, user, postID, "nice post")

		require.NoError(t, err)
		assert.Equal(t, "nice post", result.Content)
		assert.Equal(t, "ana", result.Username)
		assert.Equal(t, int64(1), result.CommentsCount)
		assert.Equal(t, int64(1), store.post(postID).CommentsCount)
		assert.Len(t, store.comments, 1)
	})

	t.Run("content is trimmed", func(t *testing.T) {
		store := newMemStore()
		postID := seedPost(store)
		engine := newEngine(store)

		result, err := engine.AddComment(ctx, user, postID, "  padded  ")

		require.NoError(t, err)
		assert.Equal(t, "padded", result.Content)
	})

	t.Run("content length bounds", func(t *testing.T) {
		store := newMemStore()
		postID := seedPost(store)
		engine := newEngine(store)

		cases := []struct {
			name    string
			content string
			valid   bool
		}{
			{"empty", "", false},
			{"whitespace only", "   \t  ", false},
			{"single char", "a", true},
			{"at limit", strings.Repeat("x", 500), true},
			{"over limit", strings.Repeat("x", 501), false},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := engine.AddComment(ctx, user, postID, tc.content)
				if tc.valid {
					assert.NoError(t, err)
				} else {
					assert.ErrorIs(t, err, interrors.ErrInvalidContent)
				}
			})
		}
	})

	t.Run("invalid content rejected before any write", func(t *testing.T) {
		store := newMemStore()
		postID := seedPost(store)
		engine := newEngine(store)

		_, err := engine.AddComment(ctx, user, postID, "  ")

		assert.ErrorIs(t, err, interrors.ErrInvalidContent)
		assert.Empty(t, store.comments)
		assert.Equal(t, int64(0), store.post(postID).CommentsCount)
	})

	t.Run("unknown post", func(t *testing.T) {
		engine := newEngine(newMemStore())

		_, err := engine.AddComment(ctx, user, uuid.Must(uuid.NewV4()), "hello")
		assert.ErrorIs(t, err, interrors.ErrPostNotFound)
	})
}
