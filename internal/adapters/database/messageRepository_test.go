package database

import (
	"context"
	"errors"
	"testing"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/message"
	"socialgraph/internal/core/page"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_Conversation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepositoryDatabase(db)
	ctx := context.Background()
	clk := newClock()

	a := seedUser(t, db, "a")
	b := seedUser(t, db, "b")
	c := seedUser(t, db, "c")

	for i := 0; i < 18; i++ {
		from, to := a, b
		if i%2 == 1 {
			from, to = b, a
		}
		_, err := repo.Create(ctx, message.New(from.ID, to.ID, "hi", clk.next()))
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, message.New(c.ID, a.ID, "other thread", clk.next()))
	require.NoError(t, err)

	t.Run("symmetric and paged", func(t *testing.T) {
		ab, err := repo.Conversation(ctx, a.ID, b.ID, page.Of(0, 5))
		require.NoError(t, err)
		ba, err := repo.Conversation(ctx, b.ID, a.ID, page.Of(0, 5))
		require.NoError(t, err)

		assert.Equal(t, int64(18), ab.TotalElements)
		assert.Equal(t, 4, ab.TotalPages)
		assert.Equal(t, ab.Items, ba.Items)

		last, err := repo.Conversation(ctx, a.ID, b.ID, page.Of(3, 5))
		require.NoError(t, err)
		assert.Len(t, last.Items, 3)

		for i := 1; i < len(ab.Items); i++ {
			assert.True(t, ab.Items[i-1].CreatedAt.After(ab.Items[i].CreatedAt))
		}
	})

	t.Run("unread counts and mark read", func(t *testing.T) {
		count, err := repo.CountUnread(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), count)

		n, err := repo.MarkReadBySenderReceiver(ctx, a.ID, b.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(9), n)

		n, err = repo.MarkReadBySenderReceiver(ctx, a.ID, b.ID)
		require.NoError(t, err)
		assert.Zero(t, n)

		unread, err := repo.ListAllUnread(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, unread, 1)
		assert.Equal(t, c.ID, unread[0].SenderID)
	})

	t.Run("mark read by ids", func(t *testing.T) {
		inbox, err := repo.ListByReceiver(ctx, b.ID, page.Of(0, 2))
		require.NoError(t, err)
		require.Len(t, inbox.Items, 2)

		ids := []uuid.UUID{inbox.Items[0].ID, inbox.Items[1].ID, uuid.Must(uuid.NewV4())}
		n, receivers, err := repo.MarkReadByIDs(ctx, ids)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.Equal(t, []uuid.UUID{b.ID}, receivers)

		got, err := repo.FindByID(ctx, inbox.Items[0].ID)
		require.NoError(t, err)
		assert.True(t, got.IsRead)

		n, receivers, err = repo.MarkReadByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, receivers)
	})

	t.Run("sent box", func(t *testing.T) {
		sent, err := repo.ListBySender(ctx, c.ID, page.Of(0, 10))
		require.NoError(t, err)
		require.Len(t, sent.Items, 1)
		assert.Equal(t, "other thread", sent.Items[0].Content)
	})

	t.Run("missing message", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.Must(uuid.NewV4()))
		assert.True(t, errors.Is(err, apperr.ErrNotFound))
	})
}
