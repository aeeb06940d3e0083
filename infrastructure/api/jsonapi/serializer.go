package jsonapi

import (
	"strconv"
	"time"

	"github.com/gitschema/gitschema/domain/issue"
)

// IssueAttributes represents issue attributes in JSON:API format.
type IssueAttributes struct {
	ProjectID   int64      `json:"project_id"`
	PipelineID  int64      `json:"pipeline_id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Kind        string     `json:"kind"`
	Description string     `json:"description"`
	CreatorID   int64      `json:"creator_id"`
	AssigneeID  int64      `json:"assignee_id"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// TaskAttributes represents a pipeline task in API responses.
type TaskAttributes struct {
	ID         int64  `json:"id"`
	InstanceID int64  `json:"instance_id"`
	DatabaseID int64  `json:"database_id"`
	Name       string `json:"name"`
	Status     string `json:"status"`
	Kind       string `json:"kind"`
}

// StageAttributes represents a pipeline stage in API responses.
type StageAttributes struct {
	ID            int64            `json:"id"`
	EnvironmentID int64            `json:"environment_id"`
	Name          string           `json:"name"`
	Tasks         []TaskAttributes `json:"tasks"`
}

// PipelineAttributes represents a full pipeline tree in API responses.
type PipelineAttributes struct {
	ID     int64             `json:"id"`
	Name   string            `json:"name"`
	Stages []StageAttributes `json:"stages"`
}

// ActivityAttributes represents an audit activity in JSON:API format.
type ActivityAttributes struct {
	ContainerID int64      `json:"container_id"`
	CreatorID   int64      `json:"creator_id"`
	Type        string     `json:"type"`
	Level       string     `json:"level"`
	Comment     string     `json:"comment"`
	Payload     string     `json:"payload"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// IssueToResource converts an issue to a JSON:API resource.
func IssueToResource(i issue.Issue) *Resource {
	return NewResource("issue", strconv.FormatInt(i.ID(), 10), issueAttributes(i))
}

// IssuesToResources converts a list of issues to JSON:API resources.
func IssuesToResources(issues []issue.Issue) []*Resource {
	resources := make([]*Resource, 0, len(issues))
	for _, i := range issues {
		resources = append(resources, IssueToResource(i))
	}
	return resources
}

// IssueWithPipelineToResource converts an issue plus its pipeline tree to a
// JSON:API resource, with the pipeline carried in the resource meta.
func IssueWithPipelineToResource(i issue.Issue, pipeline issue.Pipeline) *Resource {
	resource := IssueToResource(i)
	resource.Meta = &Meta{"pipeline": PipelineToAttributes(pipeline)}
	return resource
}

// PipelineToAttributes converts a pipeline tree to its API representation.
func PipelineToAttributes(p issue.Pipeline) PipelineAttributes {
	stages := make([]StageAttributes, 0, len(p.Stages()))
	for _, stage := range p.Stages() {
		tasks := make([]TaskAttributes, 0, len(stage.Tasks()))
		for _, task := range stage.Tasks() {
			tasks = append(tasks, TaskAttributes{
				ID:         task.ID(),
				InstanceID: task.InstanceID(),
				DatabaseID: task.DatabaseID(),
				Name:       task.Name(),
				Status:     string(task.Status()),
				Kind:       string(task.Kind()),
			})
		}
		stages = append(stages, StageAttributes{
			ID:            stage.ID(),
			EnvironmentID: stage.EnvironmentID(),
			Name:          stage.Name(),
			Tasks:         tasks,
		})
	}
	return PipelineAttributes{ID: p.ID(), Name: p.Name(), Stages: stages}
}

// ActivityToResource converts an audit activity to a JSON:API resource.
func ActivityToResource(a issue.Activity) *Resource {
	attrs := ActivityAttributes{
		ContainerID: a.ContainerID(),
		CreatorID:   a.CreatorID(),
		Type:        string(a.Type()),
		Level:       string(a.Level()),
		Comment:     a.Comment(),
		Payload:     a.Payload(),
	}
	if t := a.CreatedAt(); !t.IsZero() {
		attrs.CreatedAt = &t
	}
	return NewResource("activity", strconv.FormatInt(a.ID(), 10), attrs)
}

// ActivitiesToResources converts a list of activities to JSON:API resources.
func ActivitiesToResources(activities []issue.Activity) []*Resource {
	resources := make([]*Resource, 0, len(activities))
	for _, a := range activities {
		resources = append(resources, ActivityToResource(a))
	}
	return resources
}

func issueAttributes(i issue.Issue) IssueAttributes {
	attrs := IssueAttributes{
		ProjectID:   i.ProjectID(),
		PipelineID:  i.PipelineID(),
		Name:        i.Name(),
		Status:      string(i.Status()),
		Kind:        string(i.Kind()),
		Description: i.Description(),
		CreatorID:   i.CreatorID(),
		AssigneeID:  i.AssigneeID(),
	}
	if t := i.CreatedAt(); !t.IsZero() {
		attrs.CreatedAt = &t
	}
	if t := i.UpdatedAt(); !t.IsZero() {
		attrs.UpdatedAt = &t
	}
	return attrs
}
