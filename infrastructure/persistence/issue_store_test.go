package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitschema/gitschema/domain/issue"
	"github.com/gitschema/gitschema/domain/migration"
	"github.com/gitschema/gitschema/infrastructure/persistence"
	"github.com/gitschema/gitschema/internal/database"
	"github.com/gitschema/gitschema/internal/testdb"
)

func schemaUpdateTask(name string, status issue.Status) issue.TaskCreate {
	return issue.TaskCreate{
		InstanceID: 1,
		DatabaseID: 1,
		Name:       name,
		Status:     status,
		Payload: issue.SchemaUpdatePayload{
			Statement:     "ALTER TABLE orders ADD COLUMN note TEXT;",
			MigrationType: migration.TypeMigrate,
		},
	}
}

func TestIssueStore_Create(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewIssueStore(db)
	ctx := context.Background()

	created, err := store.Create(ctx, issue.IssueCreate{
		ProjectID:   1,
		Name:        "Add note column",
		Kind:        issue.IssueKindSchemaUpdate,
		Description: "Add note column to orders",
		CreatorID:   issue.SystemBotID,
		AssigneeID:  issue.SystemBotID,
		Pipeline: issue.PipelineCreate{
			Name: "Pipeline - Add note column",
			Stages: []issue.StageCreate{
				{EnvironmentID: 1, Name: "dev", Tasks: []issue.TaskCreate{schemaUpdateTask("Add note column", issue.StatusPending)}},
				{EnvironmentID: 2, Name: "prod", Tasks: []issue.TaskCreate{schemaUpdateTask("Add note column", issue.StatusPendingApproval)}},
			},
		},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID())
	assert.Equal(t, issue.IssueOpen, created.Status())

	got, err := store.Get(ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, "Add note column", got.Name())
	assert.Equal(t, created.PipelineID(), got.PipelineID())

	pipeline, err := store.Pipeline(ctx, created.PipelineID())
	require.NoError(t, err)
	assert.Equal(t, "Pipeline - Add note column", pipeline.Name())

	stages := pipeline.Stages()
	require.Len(t, stages, 2)
	assert.Equal(t, "dev", stages[0].Name())
	assert.Equal(t, "prod", stages[1].Name())

	tasks := stages[1].Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, issue.StatusPendingApproval, tasks[0].Status())
	assert.Equal(t, issue.KindSchemaUpdate, tasks[0].Kind())

	payload, err := tasks[0].SchemaUpdate()
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE orders ADD COLUMN note TEXT;", payload.Statement)
}

func TestIssueStore_CreateRollsBackOnBadTask(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewIssueStore(db)
	ctx := context.Background()

	_, err := store.Create(ctx, issue.IssueCreate{
		ProjectID: 1,
		Name:      "Broken",
		Kind:      issue.IssueKindSchemaUpdate,
		Pipeline: issue.PipelineCreate{
			Name: "Pipeline - Broken",
			Stages: []issue.StageCreate{
				// Task without a payload fails mid-transaction.
				{EnvironmentID: 1, Name: "dev", Tasks: []issue.TaskCreate{{Name: "no payload"}}},
			},
		},
	})
	require.Error(t, err)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	// The pipeline created before the failing task must be rolled back too.
	_, err = store.Pipeline(ctx, 1)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestIssueStore_FindByProject(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewIssueStore(db)
	ctx := context.Background()

	for i, projectID := range []int64{1, 1, 2} {
		_, err := store.Create(ctx, issue.IssueCreate{
			ProjectID: projectID,
			Name:      "Issue",
			Kind:      issue.IssueKindSchemaUpdate,
			Pipeline:  issue.PipelineCreate{Name: "Pipeline"},
		})
		require.NoError(t, err, "issue %d", i)
	}

	issues, err := store.Find(ctx, issue.WithProjectID(1))
	require.NoError(t, err)
	assert.Len(t, issues, 2)

	count, err := store.Count(ctx, issue.WithProjectID(2))
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestIssueStore_PipelineNotFound(t *testing.T) {
	db := testdb.New(t)
	store := persistence.NewIssueStore(db)

	_, err := store.Pipeline(context.Background(), 999)
	assert.ErrorIs(t, err, database.ErrNotFound)
}
