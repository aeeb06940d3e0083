package issue

import (
	"context"
	"time"

	"github.com/gitschema/gitschema/domain/store"
)

// SystemBotID is the non-human actor that creates and is assigned issues
// produced automatically from push events.
const SystemBotID int64 = 1

// IssueKind identifies what an issue tracks.
type IssueKind string

// IssueKind values.
const (
	IssueKindSchemaUpdate IssueKind = "gitschema.issue.database.schema.update"
)

// IssueStatus is an issue's lifecycle status.
type IssueStatus string

// IssueStatus values.
const (
	IssueOpen     IssueStatus = "OPEN"
	IssueDone     IssueStatus = "DONE"
	IssueCanceled IssueStatus = "CANCELED"
)

// IssueCreate describes a new issue and the pipeline it owns. The store
// persists issue, pipeline, stages, and tasks in one transaction: either
// the whole tree exists afterwards or none of it does.
type IssueCreate struct {
	ProjectID   int64
	Name        string
	Kind        IssueKind
	Description string
	CreatorID   int64
	AssigneeID  int64
	Pipeline    PipelineCreate
}

// Issue is the top-level tracked record owning exactly one pipeline.
type Issue struct {
	id          int64
	projectID   int64
	pipelineID  int64
	name        string
	status      IssueStatus
	kind        IssueKind
	description string
	creatorID   int64
	assigneeID  int64
	createdAt   time.Time
	updatedAt   time.Time
}

// ReconstructIssue rebuilds an Issue from persisted state.
func ReconstructIssue(
	id, projectID, pipelineID int64,
	name string,
	status IssueStatus,
	kind IssueKind,
	description string,
	creatorID, assigneeID int64,
	createdAt, updatedAt time.Time,
) Issue {
	return Issue{
		id:          id,
		projectID:   projectID,
		pipelineID:  pipelineID,
		name:        name,
		status:      status,
		kind:        kind,
		description: description,
		creatorID:   creatorID,
		assigneeID:  assigneeID,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the issue ID.
func (i Issue) ID() int64 { return i.id }

// ProjectID returns the owning project's ID.
func (i Issue) ProjectID() int64 { return i.projectID }

// PipelineID returns the owned pipeline's ID.
func (i Issue) PipelineID() int64 { return i.pipelineID }

// Name returns the issue name (the commit title for push-created issues).
func (i Issue) Name() string { return i.name }

// Status returns the issue status.
func (i Issue) Status() IssueStatus { return i.status }

// Kind returns the issue kind.
func (i Issue) Kind() IssueKind { return i.kind }

// Description returns the issue description (the commit message for
// push-created issues).
func (i Issue) Description() string { return i.description }

// CreatorID returns the creating principal's ID.
func (i Issue) CreatorID() int64 { return i.creatorID }

// AssigneeID returns the assigned principal's ID.
func (i Issue) AssigneeID() int64 { return i.assigneeID }

// CreatedAt returns when the issue was created.
func (i Issue) CreatedAt() time.Time { return i.createdAt }

// UpdatedAt returns when the issue was last updated.
func (i Issue) UpdatedAt() time.Time { return i.updatedAt }

// IssueStore persists issues and their pipelines.
type IssueStore interface {
	// Create persists the issue together with its pipeline, stages, and
	// tasks atomically.
	Create(ctx context.Context, create IssueCreate) (Issue, error)
	Get(ctx context.Context, id int64) (Issue, error)
	Find(ctx context.Context, options ...store.Option) ([]Issue, error)
	Count(ctx context.Context, options ...store.Option) (int64, error)
	// Pipeline loads the full pipeline tree owned by an issue.
	Pipeline(ctx context.Context, pipelineID int64) (Pipeline, error)
}

// WithProjectID filters issues by the "project_id" column.
func WithProjectID(id int64) store.Option {
	return store.WithCondition("project_id", id)
}

// WithKind filters issues by the "kind" column.
func WithKind(kind IssueKind) store.Option {
	return store.WithCondition("kind", string(kind))
}
