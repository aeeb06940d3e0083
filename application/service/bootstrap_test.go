package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitschema/gitschema/application/service"
	"github.com/gitschema/gitschema/infrastructure/persistence"
	"github.com/gitschema/gitschema/internal/testdb"
)

const validSeed = `
projects:
  - key: PAY
    name: Payments
environments:
  - name: dev
    order: 0
  - name: prod
    order: 1
instances:
  - name: dev-pg
    environment: dev
    host: db.dev
    port: 5432
databases:
  - name: orders
    project: PAY
    instance: dev-pg
policies:
  - environment: prod
    approval: MANUAL_APPROVAL_ALWAYS
repositories:
  - project: PAY
    external_id: "42"
    name: payments
    base_directory: migrations
    file_path_template: "{{DB_NAME}}__{{VERSION}}.sql"
    webhook_endpoint_id: ep-1
    webhook_secret: s3cret
`

func TestParseSeed(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		seed, err := service.ParseSeed([]byte(validSeed))
		require.NoError(t, err)
		require.Len(t, seed.Projects, 1)
		assert.Equal(t, "PAY", seed.Projects[0].Key)
		require.Len(t, seed.Instances, 1)
		assert.Equal(t, "dev", seed.Instances[0].Environment)
		require.Len(t, seed.Repositories, 1)
		assert.Equal(t, "ep-1", seed.Repositories[0].WebhookEndpointID)
	})

	t.Run("malformed YAML", func(t *testing.T) {
		_, err := service.ParseSeed([]byte("projects: [}"))
		assert.Error(t, err)
	})
}

func newBootstrapFixture(t *testing.T) (*service.Bootstrap, persistence.RepositoryStore, persistence.DatabaseStore) {
	t.Helper()
	db := testdb.New(t)
	projectStore := persistence.NewProjectStore(db)
	databaseStore := persistence.NewDatabaseStore(db)
	policyStore := persistence.NewPolicyStore(db)
	repositoryStore := persistence.NewRepositoryStore(db)

	bootstrap := service.NewBootstrap(
		projectStore, databaseStore, databaseStore, policyStore, repositoryStore, nil,
	)
	return bootstrap, repositoryStore, databaseStore
}

func TestBootstrap_Apply(t *testing.T) {
	bootstrap, repositoryStore, databaseStore := newBootstrapFixture(t)
	ctx := context.Background()

	seed, err := service.ParseSeed([]byte(validSeed))
	require.NoError(t, err)
	require.NoError(t, bootstrap.Apply(ctx, seed))

	repo, err := repositoryStore.FindByWebhookEndpointID(ctx, "ep-1")
	require.NoError(t, err)
	assert.Equal(t, "42", repo.ExternalID())
	assert.Equal(t, "migrations", repo.BaseDirectory())
	assert.NotZero(t, repo.ProjectID())

	databases, err := databaseStore.FindByProjectAndName(ctx, repo.ProjectID(), "orders")
	require.NoError(t, err)
	require.Len(t, databases, 1)
	assert.Equal(t, "dev", databases[0].Instance().Environment().Name())
}

func TestBootstrap_Apply_DanglingReferences(t *testing.T) {
	ctx := context.Background()

	t.Run("instance names unknown environment", func(t *testing.T) {
		bootstrap, _, _ := newBootstrapFixture(t)
		err := bootstrap.Apply(ctx, service.Seed{
			Instances: []service.SeedInstance{{Name: "dev-pg", Environment: "staging"}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown environment "staging"`)
	})

	t.Run("database names unknown project", func(t *testing.T) {
		bootstrap, _, _ := newBootstrapFixture(t)
		err := bootstrap.Apply(ctx, service.Seed{
			Databases: []service.SeedDatabase{{Name: "orders", Project: "NOPE", Instance: "dev-pg"}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown project "NOPE"`)
	})

	t.Run("unknown approval value", func(t *testing.T) {
		bootstrap, _, _ := newBootstrapFixture(t)
		err := bootstrap.Apply(ctx, service.Seed{
			Environments: []service.SeedEnvironment{{Name: "dev"}},
			Policies:     []service.SeedPolicy{{Environment: "dev", Approval: "SOMETIMES"}},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown approval value "SOMETIMES"`)
	})
}
