package postapp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/page"
	postEntity "socialgraph/internal/core/post"
	"socialgraph/internal/core/user"
	postPort "socialgraph/internal/ports/post"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type identityStub map[uuid.UUID]bool

func (s identityStub) Resolve(_ context.Context, id uuid.UUID) (*user.Ref, error) {
	if !s[id] {
		return nil, apperr.NotFound("User", id)
	}
	return &user.Ref{ID: id, Active: true}, nil
}

func (s identityStub) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	return s[id], nil
}

type postRepoStub struct {
	postPort.PostRepository

	createFn         func(context.Context, *postEntity.Post) (*postEntity.Post, error)
	findActiveByIDFn func(context.Context, uuid.UUID) (*postEntity.Post, error)
	softDeleteFn     func(context.Context, uuid.UUID, time.Time) (int64, error)
	deleteFn         func(context.Context, uuid.UUID) (int64, error)
	findPurgeableFn  func(context.Context, time.Time, int) ([]uuid.UUID, error)
}

func (s *postRepoStub) Create(ctx context.Context, p *postEntity.Post) (*postEntity.Post, error) {
	return s.createFn(ctx, p)
}
func (s *postRepoStub) FindActiveByID(ctx context.Context, id uuid.UUID) (*postEntity.Post, error) {
	return s.findActiveByIDFn(ctx, id)
}
func (s *postRepoStub) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	return s.softDeleteFn(ctx, id, at)
}
func (s *postRepoStub) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) FindPurgeable(ctx context.Context, before time.Time, limit int) ([]uuid.UUID, error) {
	return s.findPurgeableFn(ctx, before, limit)
}

type imageRepoStub struct {
	postPort.ImageRepository

	createFn      func(context.Context, *postEntity.Image) (*postEntity.Image, error)
	countFn       func(context.Context, uuid.UUID) (int64, error)
	deleteByIDsFn func(context.Context, []uuid.UUID) (int64, error)
}

func (s *imageRepoStub) Create(ctx context.Context, img *postEntity.Image) (*postEntity.Image, error) {
	return s.createFn(ctx, img)
}
func (s *imageRepoStub) CountByPostID(ctx context.Context, postID uuid.UUID) (int64, error) {
	return s.countFn(ctx, postID)
}
func (s *imageRepoStub) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.deleteByIDsFn(ctx, ids)
}

var fixedNow = time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

func newService(t *testing.T, posts *postRepoStub, images *imageRepoStub, ids ...uuid.UUID) *PostService {
	identity := identityStub{}
	for _, id := range ids {
		identity[id] = true
	}
	svc := NewPostService(posts, images, identity, zaptest.NewLogger(t))
	svc.Now = func() time.Time { return fixedNow }
	return svc
}

func TestCreatePost(t *testing.T) {
	author := uuid.Must(uuid.NewV4())
	echo := &postRepoStub{
		createFn: func(_ context.Context, p *postEntity.Post) (*postEntity.Post, error) { return p, nil },
	}

	t.Run("valid post", func(t *testing.T) {
		p, err := newService(t, echo, nil, author).CreatePost(context.Background(), author, "Hello", "World")
		require.NoError(t, err)
		assert.False(t, p.IsDeleted)
		assert.Equal(t, author, p.UserID)
		assert.Equal(t, fixedNow, p.CreatedAt)
		assert.NotEqual(t, uuid.Nil, p.ID)
	})

	cases := []struct {
		name, title, content string
	}{
		{"blank title", "   ", "body"},
		{"title too long", strings.Repeat("x", postEntity.MaxTitleLength+1), "body"},
		{"blank content", "title", "\n\t"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			repo := &postRepoStub{createFn: func(_ context.Context, p *postEntity.Post) (*postEntity.Post, error) {
				called = true
				return p, nil
			}}
			_, err := newService(t, repo, nil, author).CreatePost(context.Background(), author, tc.title, tc.content)
			assert.True(t, errors.Is(err, apperr.ErrValidationFailed))
			assert.False(t, called)
		})
	}

	t.Run("title at the limit", func(t *testing.T) {
		_, err := newService(t, echo, nil, author).CreatePost(context.Background(), author, strings.Repeat("é", postEntity.MaxTitleLength), "body")
		assert.NoError(t, err)
	})

	t.Run("unknown author", func(t *testing.T) {
		_, err := newService(t, echo, nil).CreatePost(context.Background(), author, "t", "c")
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}

func TestSoftDeleteAndDeleteAreIdempotent(t *testing.T) {
	repo := &postRepoStub{
		softDeleteFn: func(context.Context, uuid.UUID, time.Time) (int64, error) { return 0, nil },
		deleteFn:     func(context.Context, uuid.UUID) (int64, error) { return 0, nil },
	}
	svc := newService(t, repo, nil)
	assert.NoError(t, svc.SoftDelete(context.Background(), uuid.Must(uuid.NewV4())))
	assert.NoError(t, svc.DeletePost(context.Background(), uuid.Must(uuid.NewV4())))
}

func TestAddImage(t *testing.T) {
	postID := uuid.Must(uuid.NewV4())
	active := &postRepoStub{
		findActiveByIDFn: func(_ context.Context, id uuid.UUID) (*postEntity.Post, error) {
			if id != postID {
				return nil, apperr.NotFound("Post", id)
			}
			return &postEntity.Post{ID: postID}, nil
		},
	}
	images := &imageRepoStub{
		createFn: func(_ context.Context, img *postEntity.Image) (*postEntity.Image, error) { return img, nil },
	}
	svc := newService(t, active, images)
	ctx := context.Background()

	size := int64(10)
	img, err := svc.AddImage(ctx, postID, "https://cdn/a.png", "a.png", &size)
	require.NoError(t, err)
	assert.Equal(t, postID, img.PostID)
	assert.Equal(t, fixedNow, img.UploadDate)

	negative := int64(-1)
	_, err = svc.AddImage(ctx, postID, "https://cdn/a.png", "a.png", &negative)
	assert.True(t, errors.Is(err, apperr.ErrValidationFailed))

	_, err = svc.AddImage(ctx, postID, strings.Repeat("u", postEntity.MaxURLLength+1), "a.png", nil)
	assert.True(t, errors.Is(err, apperr.ErrValidationFailed))

	_, err = svc.AddImage(ctx, postID, "https://cdn/a.png", "", nil)
	assert.True(t, errors.Is(err, apperr.ErrValidationFailed))

	_, err = svc.AddImage(ctx, uuid.Must(uuid.NewV4()), "https://cdn/a.png", "a.png", nil)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestCountAndRemoveImages(t *testing.T) {
	postID := uuid.Must(uuid.NewV4())
	stored := map[uuid.UUID]bool{uuid.Must(uuid.NewV4()): true, uuid.Must(uuid.NewV4()): true}
	images := &imageRepoStub{
		countFn: func(_ context.Context, id uuid.UUID) (int64, error) {
			if id != postID {
				return 0, nil
			}
			return int64(len(stored)), nil
		},
		deleteByIDsFn: func(_ context.Context, ids []uuid.UUID) (int64, error) {
			var n int64
			for _, id := range ids {
				if stored[id] {
					delete(stored, id)
					n++
				}
			}
			return n, nil
		},
	}
	svc := newService(t, &postRepoStub{}, images)
	ctx := context.Background()

	n, err := svc.CountImages(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var ids []uuid.UUID
	for id := range stored {
		ids = append(ids, id)
	}
	removed, err := svc.RemoveImages(ctx, []uuid.UUID{ids[0], uuid.Must(uuid.NewV4())})
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	n, err = svc.CountImages(ctx, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = svc.CountImages(ctx, uuid.Must(uuid.NewV4()))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFindInDateRangeRejectsInvertedRange(t *testing.T) {
	svc := newService(t, &postRepoStub{}, nil)
	_, err := svc.FindInDateRange(context.Background(), fixedNow, fixedNow.Add(-time.Second), page0())
	assert.True(t, errors.Is(err, apperr.ErrValidationFailed))
}

func TestPurgeDeleted(t *testing.T) {
	ids := []uuid.UUID{uuid.Must(uuid.NewV4()), uuid.Must(uuid.NewV4())}
	var deleted []uuid.UUID
	repo := &postRepoStub{
		findPurgeableFn: func(_ context.Context, before time.Time, limit int) ([]uuid.UUID, error) {
			assert.Equal(t, fixedNow, before)
			assert.Equal(t, 50, limit)
			return ids, nil
		},
		deleteFn: func(_ context.Context, id uuid.UUID) (int64, error) {
			deleted = append(deleted, id)
			return 1, nil
		},
	}
	n, err := newService(t, repo, nil).PurgeDeleted(context.Background(), fixedNow, 50)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, ids, deleted)
}

func page0() page.Request { return page.Of(0, 10) }
