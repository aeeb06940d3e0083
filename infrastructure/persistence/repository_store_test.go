package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitschema/gitschema/domain/vcs"
	"github.com/gitschema/gitschema/infrastructure/persistence"
	"github.com/gitschema/gitschema/internal/database"
	"github.com/gitschema/gitschema/internal/testdb"
)

func TestRepositoryStore_FindByWebhookEndpointID(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewRepositoryStore(db)
	ctx := context.Background()

	saved, err := store.Save(ctx, vcs.NewRepository(vcs.RepositoryParams{
		ProjectID:          3,
		Provider:           vcs.ProviderGitLab,
		InstanceURL:        "https://gitlab.example.com",
		ExternalID:         "42",
		Name:               "payments",
		FullPath:           "acme/payments",
		BranchFilter:       "main",
		BaseDirectory:      "migrations",
		FilePathTemplate:   "{{DB_NAME}}__{{VERSION}}.sql",
		SchemaPathTemplate: "{{DB_NAME}}__LATEST.sql",
		WebhookEndpointID:  "ep-1",
		WebhookSecret:      "s3cret",
		AccessToken:        "glpat-token",
	}))
	require.NoError(t, err)
	require.NotZero(t, saved.ID())

	got, err := store.FindByWebhookEndpointID(ctx, "ep-1")
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), got.ID())
	assert.Equal(t, int64(3), got.ProjectID())
	assert.Equal(t, "42", got.ExternalID())
	assert.Equal(t, "main", got.BranchFilter())
	assert.Equal(t, "migrations", got.BaseDirectory())
	assert.Equal(t, "{{DB_NAME}}__{{VERSION}}.sql", got.FilePathTemplate())
	assert.Equal(t, "s3cret", got.WebhookSecret())
	assert.Equal(t, "glpat-token", got.AccessToken())
}

func TestRepositoryStore_UnknownEndpoint(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewRepositoryStore(db)

	_, err := store.FindByWebhookEndpointID(context.Background(), "ep-missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepositoryStore_SaveUpdates(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewRepositoryStore(db)
	ctx := context.Background()

	saved, err := store.Save(ctx, vcs.NewRepository(vcs.RepositoryParams{
		WebhookEndpointID: "ep-1",
		BranchFilter:      "main",
	}))
	require.NoError(t, err)

	updated := vcs.ReconstructRepository(saved.ID(), vcs.RepositoryParams{
		WebhookEndpointID: "ep-1",
		BranchFilter:      "release",
	}, saved.CreatedAt(), saved.UpdatedAt())
	_, err = store.Save(ctx, updated)
	require.NoError(t, err)

	got, err := store.FindByWebhookEndpointID(ctx, "ep-1")
	require.NoError(t, err)
	assert.Equal(t, "release", got.BranchFilter())
}
