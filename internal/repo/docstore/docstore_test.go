package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/tenant-task-api/internal/model"
	"github.com/BuzzLyutic/tenant-task-api/internal/repo"
	"github.com/BuzzLyutic/tenant-task-api/internal/testutil"
)

func TestMongoRepos(t *testing.T) {
	db, cleanup := testutil.SetupTestMongo(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, EnsureIndexes(ctx, db))
	require.NoError(t, EnsureIndexes(ctx, db), "index creation should be idempotent")

	tasks := NewTaskRepo(db)
	users := NewUserRepo(db)

	t.Run("sub-millisecond due date reads back as written", func(t *testing.T) {
		due := time.Date(2025, 1, 1, 10, 0, 0, 123456789, time.UTC)
		created, err := tasks.Create(ctx, model.Task{
			Title: "Precise", Description: "nanosecond due date", DueDate: due,
			Priority: model.PriorityMedium, TenantID: "tenant-precise",
		})
		require.NoError(t, err)

		got, err := tasks.Get(ctx, "tenant-precise", created.ID)
		require.NoError(t, err)
		assert.True(t, created.DueDate.Equal(got.DueDate), "create=%s get=%s", created.DueDate, got.DueDate)

		upd := created
		upd.DueDate = due.Add(time.Hour)
		updated, err := tasks.Update(ctx, upd)
		require.NoError(t, err)

		list, err := tasks.List(ctx, "tenant-precise")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, updated.DueDate.Equal(list[0].DueDate))
		assert.True(t, due.Add(time.Hour).Truncate(time.Millisecond).Equal(list[0].DueDate))
	})

	t.Run("task lifecycle and isolation", func(t *testing.T) {
		due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		created, err := tasks.Create(ctx, model.Task{
			Title: "Buy milk", Description: "2 liters", DueDate: due,
			Priority: model.PriorityLow, TenantID: "tenant-a",
		})
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		_, err = tasks.Create(ctx, model.Task{
			Title: "Other", Description: "other tenant", DueDate: due,
			Priority: model.PriorityHigh, TenantID: "tenant-b",
		})
		require.NoError(t, err)

		list, err := tasks.List(ctx, "tenant-a")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, created.ID, list[0].ID)
		assert.True(t, due.Equal(list[0].DueDate))

		_, err = tasks.Get(ctx, "tenant-b", created.ID)
		assert.ErrorIs(t, err, repo.ErrorNotFound)

		hijack := created
		hijack.TenantID = "tenant-b"
		_, err = tasks.Update(ctx, hijack)
		assert.ErrorIs(t, err, repo.ErrorNotFound)
		assert.ErrorIs(t, tasks.Delete(ctx, "tenant-b", created.ID), repo.ErrorNotFound)

		upd := created
		upd.Description = "3 liters"
		updated, err := tasks.Update(ctx, upd)
		require.NoError(t, err)
		assert.Equal(t, "3 liters", updated.Description)

		require.NoError(t, tasks.Delete(ctx, "tenant-a", created.ID))
		assert.ErrorIs(t, tasks.Delete(ctx, "tenant-a", created.ID), repo.ErrorNotFound)
	})

	t.Run("users", func(t *testing.T) {
		u, err := users.Create(ctx, model.User{Username: "alice", Email: "a@x.com", PasswordHash: "hash", TenantID: "t1"})
		require.NoError(t, err)

		_, err = users.Create(ctx, model.User{Username: "dup", Email: "a@x.com", PasswordHash: "hash", TenantID: "t2"})
		assert.ErrorIs(t, err, repo.ErrorConflict)

		got, err := users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "hash", got.PasswordHash)

		_, err = users.GetByEmail(ctx, "nobody@x.com")
		assert.ErrorIs(t, err, repo.ErrorNotFound)
	})
}

func TestToMillis(t *testing.T) {
	in := time.Date(2025, 1, 1, 13, 0, 0, 123456789, time.FixedZone("UTC+3", 3*3600))
	got := toMillis(in)

	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 123000000, got.Nanosecond())
	assert.True(t, got.Equal(time.Date(2025, 1, 1, 10, 0, 0, 123000000, time.UTC)))
}
