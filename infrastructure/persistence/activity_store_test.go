package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitschema/gitschema/domain/issue"
	"github.com/gitschema/gitschema/infrastructure/persistence"
	"github.com/gitschema/gitschema/internal/testdb"
)

func TestActivityStore_Create(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewActivityStore(db)
	ctx := context.Background()

	created, err := store.Create(ctx, issue.ActivityCreate{
		CreatorID:   issue.SystemBotID,
		ContainerID: 1,
		Type:        issue.ActivityRepositoryPush,
		Level:       issue.ActivityWarn,
		Comment:     `Ignored committed file "migrations/notes.txt", file does not match file path template.`,
		Payload:     `{"pushEvent":{}}`,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID())
	assert.Equal(t, issue.ActivityWarn, created.Level())

	_, err = store.Create(ctx, issue.ActivityCreate{
		CreatorID:   issue.SystemBotID,
		ContainerID: 2,
		Type:        issue.ActivityRepositoryPush,
		Level:       issue.ActivityInfo,
		Comment:     `Created issue "Add note column".`,
	})
	require.NoError(t, err)

	t.Run("filter by container", func(t *testing.T) {
		activities, err := store.Find(ctx, issue.WithContainerID(1))
		require.NoError(t, err)
		require.Len(t, activities, 1)
		assert.Contains(t, activities[0].Comment(), "Ignored committed file")
	})

	t.Run("filter by level", func(t *testing.T) {
		count, err := store.Count(ctx, issue.WithLevel(issue.ActivityInfo))
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})
}
