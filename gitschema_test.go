package gitschema_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitschema/gitschema"
	"github.com/gitschema/gitschema/application/service"
	"github.com/gitschema/gitschema/domain/issue"
	"github.com/gitschema/gitschema/domain/migration"
	"github.com/gitschema/gitschema/domain/vcs"
)

type staticFetcher string

func (s staticFetcher) FetchFileContent(context.Context, vcs.Repository, string, string) ([]byte, error) {
	return []byte(s), nil
}

const seedYAML = `
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
    host: db.dev.internal
    port: 5432
  - name: prod-pg
    environment: prod
    host: db.prod.internal
    port: 5432
databases:
  - name: orders
    project: PAY
    instance: dev-pg
  - name: orders
    project: PAY
    instance: prod-pg
policies:
  - environment: dev
    approval: MANUAL_APPROVAL_NEVER
  - environment: prod
    approval: MANUAL_APPROVAL_ALWAYS
repositories:
  - project: PAY
    provider: GITLAB
    instance_url: https://gitlab.example.com
    external_id: "42"
    name: payments
    full_path: acme/payments
    base_directory: migrations
    file_path_template: "{{DB_NAME}}__{{VERSION}}__{{TYPE}}__{{DESCRIPTION}}.sql"
    schema_path_template: "{{DB_NAME}}__LATEST.sql"
    webhook_endpoint_id: ep-1
    webhook_secret: s3cret
`

func newSeededClient(t *testing.T) *gitschema.Client {
	t.Helper()

	client, err := gitschema.New(
		gitschema.WithDatabaseURL("sqlite:///:memory:"),
		gitschema.WithContentFetcher(staticFetcher("ALTER TABLE orders ADD COLUMN note TEXT;")),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	seed, err := service.ParseSeed([]byte(seedYAML))
	require.NoError(t, err)
	require.NoError(t, client.Bootstrap.Apply(context.Background(), seed))

	return client
}

func TestClient_PushToPipeline(t *testing.T) {
	client := newSeededClient(t)
	ctx := context.Background()

	added := "migrations/orders__20260823__migrate__add_note_column.sql"
	event := vcs.PushEvent{
		ObjectKind: vcs.EventKindPush,
		Ref:        "refs/heads/main",
		AuthorName: "Alex",
		Project:    vcs.ProjectPayload{ID: 42, FullPath: "acme/payments"},
		Commits: []vcs.Commit{{
			ID:        "abc123",
			Title:     "Add note column",
			Message:   "Add note column to orders",
			Timestamp: "2026-08-23T10:00:00Z",
			Author:    vcs.CommitAuthor{Name: "Alex"},
			Added:     []string{added},
		}},
	}

	messages, err := client.Webhook.ProcessPush(ctx, "ep-1", "s3cret", event)
	require.NoError(t, err)
	require.Equal(t, []string{fmt.Sprintf("Created issue %q on adding %s", "Add note column", added)}, messages)

	issues, total, err := client.Issues.List(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, issues, 1)
	assert.Equal(t, "Add note column", issues[0].Name())
	assert.Equal(t, issue.IssueOpen, issues[0].Status())

	detail, err := client.Issues.Get(ctx, issues[0].ID())
	require.NoError(t, err)
	assert.Equal(t, "Pipeline - Add note column", detail.Pipeline.Name())

	stages := detail.Pipeline.Stages()
	require.Len(t, stages, 2)
	assert.Equal(t, "dev", stages[0].Name())
	assert.Equal(t, "prod", stages[1].Name())

	devTasks := stages[0].Tasks()
	require.Len(t, devTasks, 1)
	assert.Equal(t, issue.StatusPending, devTasks[0].Status())

	prodTasks := stages[1].Tasks()
	require.Len(t, prodTasks, 1)
	assert.Equal(t, issue.StatusPendingApproval, prodTasks[0].Status())

	payload, err := devTasks[0].SchemaUpdate()
	require.NoError(t, err)
	assert.Equal(t, "ALTER TABLE orders ADD COLUMN note TEXT;", payload.Statement)
	assert.Equal(t, migration.TypeMigrate, payload.MigrationType)
	assert.Equal(t, added, payload.Push.FileCommit.Added)

	activities, total, err := client.Issues.Activities(ctx, 1, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	assert.Equal(t, issue.ActivityInfo, activities[0].Level())
}

func TestClient_ReplayCreatesSecondIssue(t *testing.T) {
	client := newSeededClient(t)
	ctx := context.Background()

	event := vcs.PushEvent{
		ObjectKind: vcs.EventKindPush,
		Ref:        "refs/heads/main",
		Project:    vcs.ProjectPayload{ID: 42},
		Commits: []vcs.Commit{{
			ID:        "abc123",
			Title:     "Add note column",
			Timestamp: "2026-08-23T10:00:00Z",
			Added:     []string{"migrations/orders__20260823__migrate__add_note_column.sql"},
		}},
	}

	_, err := client.Webhook.ProcessPush(ctx, "ep-1", "s3cret", event)
	require.NoError(t, err)
	_, err = client.Webhook.ProcessPush(ctx, "ep-1", "s3cret", event)
	require.NoError(t, err)

	// No dedup key: replaying an identical push creates a second issue.
	_, total, err := client.Issues.List(ctx, 1, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestClient_RequiresDatabase(t *testing.T) {
	_, err := gitschema.New()
	assert.ErrorIs(t, err, gitschema.ErrNoDatabase)
}

func TestClient_CloseTwice(t *testing.T) {
	client, err := gitschema.New(gitschema.WithDatabaseURL("sqlite:///:memory:"))
	require.NoError(t, err)

	require.NoError(t, client.Close())
	assert.ErrorIs(t, client.Close(), gitschema.ErrClientClosed)
}
