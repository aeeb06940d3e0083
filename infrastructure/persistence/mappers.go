package persistence

import (
	"github.com/gitschema/gitschema/domain/issue"
	"github.com/gitschema/gitschema/domain/project"
	"github.com/gitschema/gitschema/domain/vcs"
)

// ProjectMapper maps between domain Project and ProjectModel.
type ProjectMapper struct{}

// ToDomain converts a ProjectModel to a domain Project.
func (m ProjectMapper) ToDomain(e ProjectModel) project.Project {
	return project.ReconstructProject(e.ID, e.Key, e.Name, e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a domain Project to a ProjectModel.
func (m ProjectMapper) ToModel(p project.Project) ProjectModel {
	return ProjectModel{
		ID:        p.ID(),
		Key:       p.Key(),
		Name:      p.Name(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

// RepositoryMapper maps between domain vcs.Repository and RepositoryModel.
type RepositoryMapper struct{}

// ToDomain converts a RepositoryModel to a domain Repository.
func (m RepositoryMapper) ToDomain(e RepositoryModel) vcs.Repository {
	return vcs.ReconstructRepository(e.ID, vcs.RepositoryParams{
		ProjectID:          e.ProjectID,
		Provider:           vcs.Provider(e.Provider),
		InstanceURL:        e.InstanceURL,
		ExternalID:         e.ExternalID,
		Name:               e.Name,
		FullPath:           e.FullPath,
		WebURL:             e.WebURL,
		BranchFilter:       e.BranchFilter,
		BaseDirectory:      e.BaseDirectory,
		FilePathTemplate:   e.FilePathTemplate,
		SchemaPathTemplate: e.SchemaPathTemplate,
		WebhookEndpointID:  e.WebhookEndpointID,
		WebhookSecret:      e.WebhookSecret,
		AccessToken:        e.AccessToken,
	}, e.CreatedAt, e.UpdatedAt)
}

// ToModel converts a domain Repository to a RepositoryModel.
func (m RepositoryMapper) ToModel(r vcs.Repository) RepositoryModel {
	return RepositoryModel{
		ID:                 r.ID(),
		ProjectID:          r.ProjectID(),
		Provider:           string(r.Provider()),
		InstanceURL:        r.InstanceURL(),
		ExternalID:         r.ExternalID(),
		Name:               r.Name(),
		FullPath:           r.FullPath(),
		WebURL:             r.WebURL(),
		BranchFilter:       r.BranchFilter(),
		BaseDirectory:      r.BaseDirectory(),
		FilePathTemplate:   r.FilePathTemplate(),
		SchemaPathTemplate: r.SchemaPathTemplate(),
		WebhookEndpointID:  r.WebhookEndpointID(),
		WebhookSecret:      r.WebhookSecret(),
		AccessToken:        r.AccessToken(),
		CreatedAt:          r.CreatedAt(),
		UpdatedAt:          r.UpdatedAt(),
	}
}

// IssueMapper maps between domain Issue and IssueModel.
type IssueMapper struct{}

// ToDomain converts an IssueModel to a domain Issue.
func (m IssueMapper) ToDomain(e IssueModel) issue.Issue {
	return issue.ReconstructIssue(
		e.ID,
		e.ProjectID,
		e.PipelineID,
		e.Name,
		issue.IssueStatus(e.Status),
		issue.IssueKind(e.Kind),
		e.Description,
		e.CreatorID,
		e.AssigneeID,
		e.CreatedAt,
		e.UpdatedAt,
	)
}

// ToModel converts a domain Issue to an IssueModel.
func (m IssueMapper) ToModel(i issue.Issue) IssueModel {
	return IssueModel{
		ID:          i.ID(),
		ProjectID:   i.ProjectID(),
		PipelineID:  i.PipelineID(),
		Name:        i.Name(),
		Status:      string(i.Status()),
		Kind:        string(i.Kind()),
		Description: i.Description(),
		CreatorID:   i.CreatorID(),
		AssigneeID:  i.AssigneeID(),
		CreatedAt:   i.CreatedAt(),
		UpdatedAt:   i.UpdatedAt(),
	}
}

// ActivityMapper maps between domain Activity and ActivityModel.
type ActivityMapper struct{}

// ToDomain converts an ActivityModel to a domain Activity.
func (m ActivityMapper) ToDomain(e ActivityModel) issue.Activity {
	return issue.ReconstructActivity(
		e.ID,
		e.CreatorID,
		e.ContainerID,
		issue.ActivityType(e.Type),
		issue.ActivityLevel(e.Level),
		e.Comment,
		e.Payload,
		e.CreatedAt,
	)
}

// ToModel converts a domain Activity to an ActivityModel.
func (m ActivityMapper) ToModel(a issue.Activity) ActivityModel {
	return ActivityModel{
		ID:          a.ID(),
		CreatorID:   a.CreatorID(),
		ContainerID: a.ContainerID(),
		Type:        string(a.Type()),
		Level:       string(a.Level()),
		Comment:     a.Comment(),
		Payload:     a.Payload(),
		CreatedAt:   a.CreatedAt(),
	}
}
