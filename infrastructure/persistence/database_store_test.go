package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitschema/gitschema/domain/project"
	"github.com/gitschema/gitschema/infrastructure/persistence"
	"github.com/gitschema/gitschema/internal/testdb"
)

func TestDatabaseStore_FindByProjectAndName(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewDatabaseStore(db)
	ctx := context.Background()

	dev, err := store.SaveEnvironment(ctx, project.NewEnvironment("dev", 0))
	require.NoError(t, err)
	prod, err := store.SaveEnvironment(ctx, project.NewEnvironment("prod", 1))
	require.NoError(t, err)

	devPG, err := store.SaveInstance(ctx, project.NewInstance(dev, "dev-pg", "db.dev", 5432))
	require.NoError(t, err)
	prodPG, err := store.SaveInstance(ctx, project.NewInstance(prod, "prod-pg", "db.prod", 5432))
	require.NoError(t, err)

	_, err = store.Save(ctx, project.NewDatabase(1, devPG, "orders"))
	require.NoError(t, err)
	_, err = store.Save(ctx, project.NewDatabase(1, prodPG, "orders"))
	require.NoError(t, err)
	_, err = store.Save(ctx, project.NewDatabase(1, devPG, "billing"))
	require.NoError(t, err)
	_, err = store.Save(ctx, project.NewDatabase(2, devPG, "orders"))
	require.NoError(t, err)

	t.Run("hydrates instance and environment", func(t *testing.T) {
		databases, err := store.FindByProjectAndName(ctx, 1, "orders")
		require.NoError(t, err)
		require.Len(t, databases, 2)

		assert.Equal(t, "orders", databases[0].Name())
		assert.Equal(t, "dev-pg", databases[0].Instance().Name())
		assert.Equal(t, "dev", databases[0].Instance().Environment().Name())
		assert.Equal(t, 0, databases[0].Instance().Environment().Order())
		assert.Equal(t, "prod", databases[1].Instance().Environment().Name())
	})

	t.Run("scoped to the owning project", func(t *testing.T) {
		databases, err := store.FindByProjectAndName(ctx, 2, "orders")
		require.NoError(t, err)
		require.Len(t, databases, 1)
		assert.Equal(t, int64(2), databases[0].ProjectID())
	})

	t.Run("unknown name yields nothing", func(t *testing.T) {
		databases, err := store.FindByProjectAndName(ctx, 1, "inventory")
		require.NoError(t, err)
		assert.Empty(t, databases)
	})
}
