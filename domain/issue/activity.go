package issue

import (
	"context"
	"time"

	"github.com/gitschema/gitschema/domain/store"
	"github.com/gitschema/gitschema/domain/vcs"
)

// ActivityType identifies what an audit activity records.
type ActivityType string

// ActivityType values.
const (
	ActivityRepositoryPush ActivityType = "gitschema.project.repository.push"
)

// ActivityLevel is the severity of an audit activity.
type ActivityLevel string

// ActivityLevel values.
const (
	ActivityInfo ActivityLevel = "INFO"
	ActivityWarn ActivityLevel = "WARN"
)

// PushActivityPayload is the structured payload of a repository-push
// activity. IssueID and IssueName are set only on the success notice.
type PushActivityPayload struct {
	Push      vcs.PushDetail `json:"pushEvent"`
	IssueID   int64          `json:"issueId,omitempty"`
	IssueName string         `json:"issueName,omitempty"`
}

// ActivityCreate describes a new audit activity attached to a project.
type ActivityCreate struct {
	CreatorID   int64
	ContainerID int64
	Type        ActivityType
	Level       ActivityLevel
	Comment     string
	Payload     string
}

// Activity is an immutable audit entry attached to a project.
type Activity struct {
	id          int64
	creatorID   int64
	containerID int64
	typ         ActivityType
	level       ActivityLevel
	comment     string
	payload     string
	createdAt   time.Time
}

// ReconstructActivity rebuilds an Activity from persisted state.
func ReconstructActivity(
	id, creatorID, containerID int64,
	typ ActivityType,
	level ActivityLevel,
	comment, payload string,
	createdAt time.Time,
) Activity {
	return Activity{
		id:          id,
		creatorID:   creatorID,
		containerID: containerID,
		typ:         typ,
		level:       level,
		comment:     comment,
		payload:     payload,
		createdAt:   createdAt,
	}
}

// ID returns the activity ID.
func (a Activity) ID() int64 { return a.id }

// CreatorID returns the creating principal's ID.
func (a Activity) CreatorID() int64 { return a.creatorID }

// ContainerID returns the ID of the project the activity is attached to.
func (a Activity) ContainerID() int64 { return a.containerID }

// Type returns the activity type.
func (a Activity) Type() ActivityType { return a.typ }

// Level returns the activity level.
func (a Activity) Level() ActivityLevel { return a.level }

// Comment returns the human-readable comment.
func (a Activity) Comment() string { return a.comment }

// Payload returns the JSON payload.
func (a Activity) Payload() string { return a.payload }

// CreatedAt returns when the activity was recorded.
func (a Activity) CreatedAt() time.Time { return a.createdAt }

// ActivityStore persists audit activities.
type ActivityStore interface {
	Create(ctx context.Context, create ActivityCreate) (Activity, error)
	Find(ctx context.Context, options ...store.Option) ([]Activity, error)
	Count(ctx context.Context, options ...store.Option) (int64, error)
}

// WithContainerID filters activities by the "container_id" column.
func WithContainerID(id int64) store.Option {
	return store.WithCondition("container_id", id)
}

// WithLevel filters activities by the "level" column.
func WithLevel(level ActivityLevel) store.Option {
	return store.WithCondition("level", string(level))
}
