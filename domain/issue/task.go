// Package issue provides the change-tracking domain: issues owning
// pipelines of stages and tasks, and project audit activities.
package issue

import (
	"encoding/json"
	"fmt"

	"github.com/gitschema/gitschema/domain/migration"
	"github.com/gitschema/gitschema/domain/vcs"
)

// Status is a task's execution status. Tasks created from a push start at
// StatusPendingApproval or StatusPending depending on the environment's
// approval policy; the downstream scheduler owns every later transition.
type Status string

// Status values.
const (
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusPending         Status = "PENDING"
	StatusRunning         Status = "RUNNING"
	StatusDone            Status = "DONE"
	StatusFailed          Status = "FAILED"
	StatusCanceled        Status = "CANCELED"
)

// Kind discriminates task payload variants. Only the schema-update kind is
// produced by the push flow; new kinds slot in by implementing TaskPayload.
type Kind string

// Kind values.
const (
	KindSchemaUpdate Kind = "gitschema.task.database.schema.update"
)

// TaskPayload is the tagged variant carried by a task. Implementations
// must be JSON-marshalable.
type TaskPayload interface {
	TaskKind() Kind
}

// SchemaUpdatePayload is the payload of a schema-update task: the statement
// to run, its migration type, and the push provenance that produced it.
type SchemaUpdatePayload struct {
	Statement     string         `json:"statement"`
	MigrationType migration.Type `json:"migrationType"`
	Push          vcs.PushDetail `json:"pushEvent"`
}

// TaskKind returns KindSchemaUpdate.
func (SchemaUpdatePayload) TaskKind() Kind { return KindSchemaUpdate }

// TaskCreate describes one task to persist as part of an issue's pipeline.
type TaskCreate struct {
	InstanceID int64
	DatabaseID int64
	Name       string
	Status     Status
	Payload    TaskPayload
}

// MarshalPayload encodes the tagged payload for storage.
func (t TaskCreate) MarshalPayload() (Kind, []byte, error) {
	if t.Payload == nil {
		return "", nil, fmt.Errorf("task %q has no payload", t.Name)
	}
	raw, err := json.Marshal(t.Payload)
	if err != nil {
		return "", nil, fmt.Errorf("marshal task payload: %w", err)
	}
	return t.Payload.TaskKind(), raw, nil
}

// Task is a persisted unit of pending work inside a stage.
type Task struct {
	id         int64
	stageID    int64
	instanceID int64
	databaseID int64
	name       string
	status     Status
	kind       Kind
	payload    []byte
}

// ReconstructTask rebuilds a Task from persisted state.
func ReconstructTask(id, stageID, instanceID, databaseID int64, name string, status Status, kind Kind, payload []byte) Task {
	return Task{
		id:         id,
		stageID:    stageID,
		instanceID: instanceID,
		databaseID: databaseID,
		name:       name,
		status:     status,
		kind:       kind,
		payload:    payload,
	}
}

// ID returns the task ID.
func (t Task) ID() int64 { return t.id }

// StageID returns the owning stage's ID.
func (t Task) StageID() int64 { return t.stageID }

// InstanceID returns the target instance's ID.
func (t Task) InstanceID() int64 { return t.instanceID }

// DatabaseID returns the target database's ID.
func (t Task) DatabaseID() int64 { return t.databaseID }

// Name returns the task name.
func (t Task) Name() string { return t.name }

// Status returns the task status.
func (t Task) Status() Status { return t.status }

// Kind returns the payload kind.
func (t Task) Kind() Kind { return t.kind }

// SchemaUpdate decodes the payload as a SchemaUpdatePayload.
func (t Task) SchemaUpdate() (SchemaUpdatePayload, error) {
	if t.kind != KindSchemaUpdate {
		return SchemaUpdatePayload{}, fmt.Errorf("task %d is %s, not a schema update", t.id, t.kind)
	}
	var p SchemaUpdatePayload
	if err := json.Unmarshal(t.payload, &p); err != nil {
		return SchemaUpdatePayload{}, fmt.Errorf("decode schema update payload: %w", err)
	}
	return p, nil
}
