// Copyright (c) 2025 Litboard
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	posterrors "github.com/litboard/api/posts/errors"
	"github.com/litboard/api/posts/models"
)

// makeFeed builds count posts in feed order, newest first.
func makeFeed(count int) []models.Post {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		posts = append(posts, models.Post{
			ID:              int64(count - i),
			Title:           fmt.Sprintf("post %d", count-i),
			Text:            "body",
			CreatedAt:       base.Add(-time.Duration(i) * time.Minute),
			CreatorID:       1,
			CreatorUsername: "alice",
		})
	}
	return posts
}

func TestList_FewerThanLimit(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	repo.On("FindPage", mock.Anything, 16, (*models.Cursor)(nil)).Return(makeFeed(10), nil)

	posts, hasMore, err := svc.List(context.Background(), 15, "")
	require.NoError(t, err)
	assert.Len(t, posts, 10)
	assert.False(t, hasMore)
	repo.AssertExpectations(t)
}

func TestList_HasMore(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	repo.On("FindPage", mock.Anything, 6, (*models.Cursor)(nil)).Return(makeFeed(6), nil)

	posts, hasMore, err := svc.List(context.Background(), 5, "")
	require.NoError(t, err)
	assert.Len(t, posts, 5)
	assert.True(t, hasMore)
	// The probe row never leaks into the page.
	assert.Equal(t, int64(6), posts[0].ID)
	assert.Equal(t, int64(2), posts[4].ID)
}

func TestList_ClampsLimit(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	repo.On("FindPage", mock.Anything, models.MaxLimit+1, (*models.Cursor)(nil)).Return(makeFeed(3), nil)

	_, _, err := svc.List(context.Background(), 1000, "")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestList_DefaultLimit(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	repo.On("FindPage", mock.Anything, models.DefaultLimit+1, (*models.Cursor)(nil)).Return(makeFeed(0), nil)

	_, _, err := svc.List(context.Background(), 0, "")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestList_PassesDecodedCursor(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	last := &models.Post{ID: 7, CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	encoded, err := models.EncodeCursor(models.CursorFromPost(last))
	require.NoError(t, err)

	expected := &models.Cursor{CreatedAt: last.CreatedAt.UnixMicro(), ID: 7}
	repo.On("FindPage", mock.Anything, 6, expected).Return(makeFeed(0), nil)

	_, _, err = svc.List(context.Background(), 5, encoded)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestList_InvalidCursor(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	_, _, err := svc.List(context.Background(), 5, "!!broken!!")
	assert.ErrorIs(t, err, posterrors.ErrInvalidCursor)
	repo.AssertNotCalled(t, "FindPage", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreate_Validation(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	_, err := svc.Create(context.Background(), 1, &models.CreatePostRequest{Title: "", Text: "body"})
	assert.ErrorIs(t, err, posterrors.ErrInvalidPostData)

	_, err = svc.Create(context.Background(), 1, &models.CreatePostRequest{Title: "title", Text: "  "})
	assert.ErrorIs(t, err, posterrors.ErrInvalidPostData)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_Success(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*models.Post")).
		Run(func(args mock.Arguments) {
			post := args.Get(1).(*models.Post)
			post.ID = 11
		}).
		Return(nil)

	stored := &models.Post{ID: 11, Title: "hello", Text: "body", CreatorID: 3, CreatorUsername: "carol"}
	repo.On("FindByID", mock.Anything, int64(11)).Return(stored, nil)

	post, err := svc.Create(context.Background(), 3, &models.CreatePostRequest{Title: "hello", Text: "body"})
	require.NoError(t, err)
	assert.Equal(t, int64(11), post.ID)
	assert.Equal(t, "carol", post.CreatorUsername)
	repo.AssertExpectations(t)
}

func TestUpdateTitle_NilTitleLeavesPostUntouched(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	stored := &models.Post{ID: 4, Title: "unchanged"}
	repo.On("FindByID", mock.Anything, int64(4)).Return(stored, nil)

	post, err := svc.UpdateTitle(context.Background(), 4, nil)
	require.NoError(t, err)
	assert.Equal(t, "unchanged", post.Title)
	repo.AssertNotCalled(t, "UpdateTitle", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateTitle_MissingPost(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	title := "new title"
	repo.On("UpdateTitle", mock.Anything, int64(404), title).Return(posterrors.ErrPostNotFound)

	post, err := svc.UpdateTitle(context.Background(), 404, &title)
	require.NoError(t, err)
	assert.Nil(t, post)
}

func TestDelete(t *testing.T) {
	repo := new(MockPostRepository)
	svc := NewPostService(repo)

	repo.On("Delete", mock.Anything, int64(5)).Return(nil)
	repo.On("Delete", mock.Anything, int64(404)).Return(posterrors.ErrPostNotFound)

	deleted, err := svc.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Delete(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, deleted)
}

// feedRepository serves FindPage from an in-memory feed using the same
// (created_at, id) row comparison and ordering as the SQL page query.
type feedRepository struct {
	MockPostRepository
	feed []models.Post
}

func (f *feedRepository) FindPage(ctx context.Context, limit int, cursor *models.Cursor) ([]models.Post, error) {
	sorted := make([]models.Post, len(f.feed))
	copy(sorted, f.feed)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	page := []models.Post{}
	for _, p := range sorted {
		if cursor != nil {
			before := p.CreatedAt.Before(cursor.Time()) ||
				(p.CreatedAt.Equal(cursor.Time()) && p.ID < cursor.ID)
			if !before {
				continue
			}
		}
		page = append(page, p)
		if len(page) == limit {
			break
		}
	}
	return page, nil
}

func TestList_PaginatesWithoutOverlapOrGap(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Seven posts: two share one timestamp exactly (id tie-break), and a
	// page boundary falls between two posts 200µs apart inside the same
	// millisecond.
	feed := []models.Post{
		{ID: 7, CreatedAt: base.Add(3 * time.Second)},
		{ID: 6, CreatedAt: base.Add(2 * time.Second)},
		{ID: 5, CreatedAt: base.Add(2 * time.Second)},
		{ID: 4, CreatedAt: base.Add(time.Second).Add(300 * time.Microsecond)},
		{ID: 3, CreatedAt: base.Add(time.Second).Add(100 * time.Microsecond)},
		{ID: 2, CreatedAt: base.Add(time.Second)},
		{ID: 1, CreatedAt: base},
	}

	svc := NewPostService(&feedRepository{feed: feed})

	var seen []int64
	cursor := ""
	for page := 0; ; page++ {
		require.Less(t, page, 10, "pagination did not terminate")

		posts, hasMore, err := svc.List(context.Background(), 2, cursor)
		require.NoError(t, err)
		for _, p := range posts {
			seen = append(seen, p.ID)
		}
		if !hasMore {
			break
		}
		require.NotEmpty(t, posts)
		cursor, err = models.EncodeCursor(models.CursorFromPost(&posts[len(posts)-1]))
		require.NoError(t, err)
	}

	// Every post exactly once, newest first.
	assert.Equal(t, []int64{7, 6, 5, 4, 3, 2, 1}, seen)
}
