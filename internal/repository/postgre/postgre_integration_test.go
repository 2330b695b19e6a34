//go:build integration

package postgre_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/asyncopatedsoul/health-protocol/internal/model"
	"github.com/asyncopatedsoul/health-protocol/internal/repository"
	"github.com/asyncopatedsoul/health-protocol/internal/repository/postgre"
	"github.com/asyncopatedsoul/health-protocol/pkg/log"
)

func newStore(t *testing.T) repository.Store {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("journal"),
		postgrescontainer.WithUsername("journal"),
		postgrescontainer.WithPassword("journal"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var pool *pgxpool.Pool
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err = pgxpool.New(ctx, connStr)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				break
			}
			pool.Close()
		}
		if time.Now().After(deadline) {
			t.Fatalf("database not ready: %v", err)
		}
		time.Sleep(500 * time.Millisecond)
	}

	require.NoError(t, postgre.EnsureSchema(ctx, pool))
	store := postgre.New(pool, log.NewNop())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStoreAgainstPostgres(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	note, err := store.CreateNote(ctx, repository.CreateNoteOptions{UserID: "u1", Content: "Squat\n100 x 5", CreatedAtMs: 1000})
	require.NoError(t, err)

	ts := int64(5000)
	updated, err := store.UpdateNote(ctx, repository.UpdateNoteOptions{ID: note.ID, ActivityTimestampMs: &ts})
	require.NoError(t, err)
	require.Equal(t, ts, *updated.ActivityTimestampMs)

	_, err = store.UpdateNote(ctx, repository.UpdateNoteOptions{ID: "missing"})
	require.ErrorIs(t, err, repository.ErrNotFound)

	act, err := store.InsertActivity(ctx, repository.InsertActivityOptions{Name: "Back Squat", Slug: "back-squat", Equipment: []string{"barbell"}})
	require.NoError(t, err)
	_, err = store.InsertActivity(ctx, repository.InsertActivityOptions{Name: "Back Squat", Slug: "back-squat"})
	require.ErrorIs(t, err, repository.ErrDuplicate)

	found, err := store.FindActivitiesByName(ctx, "squat", 1)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, act.ID, found[0].ID)
	require.Equal(t, []string{"barbell"}, found[0].Equipment)

	_, err = store.InsertEvent(ctx, repository.InsertEventOptions{
		UserID:      "u1",
		Type:        model.EventTypeActivity,
		Status:      model.EventStatusCompleted,
		TimestampMs: ts,
		Context:     model.EventContext{ActivityID: act.ID, NoteID: note.ID},
		Metadata:    model.EventMetadata{Activity: &act},
	})
	require.NoError(t, err)

	events, err := store.ListEventsForUser(ctx, repository.ListEventsOptions{UserID: "u1", Type: model.EventTypeActivity})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "Back Squat", events[0].Metadata.Activity.Name)

	deleted, err := store.DeleteEventsForNote(ctx, note.ID)
	require.NoError(t, err)
	require.Equal(t, 1, deleted)

	user, err := store.CreateUser(ctx, model.User{Email: "lifter@example.com"})
	require.NoError(t, err)
	got, err := store.FindUser(ctx, model.UserSelector{Email: "Lifter@Example.com"})
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	planned, err := store.InsertPlannedActivities(ctx, []model.PlannedActivity{
		{UserID: "u1", ActivityID: act.ID, ActivitySlug: act.Slug, ProgramID: "p1", PlannedTimeUtcMs: 10},
	})
	require.NoError(t, err)
	listed, err := store.ListPlannedActivities(ctx, repository.ListPlannedActivitiesOptions{ProgramID: "p1"})
	require.NoError(t, err)
	require.Equal(t, planned, listed)
}
