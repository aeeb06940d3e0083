package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gitschema/gitschema/domain/issue"
	"github.com/gitschema/gitschema/domain/store"
	"github.com/gitschema/gitschema/internal/database"
)

// IssueDetail is an issue together with its full pipeline tree.
type IssueDetail struct {
	Issue    issue.Issue
	Pipeline issue.Pipeline
}

// Issues serves read access to push-created issues and their audit trail.
type Issues struct {
	issueStore    issue.IssueStore
	activityStore issue.ActivityStore
}

// NewIssues creates an Issues service.
func NewIssues(issueStore issue.IssueStore, activityStore issue.ActivityStore) *Issues {
	return &Issues{issueStore: issueStore, activityStore: activityStore}
}

// Get loads one issue with its pipeline, stages, and tasks.
func (s *Issues) Get(ctx context.Context, id int64) (IssueDetail, error) {
	iss, err := s.issueStore.Get(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return IssueDetail{}, fmt.Errorf("issue %d: %w", id, err)
		}
		return IssueDetail{}, NewDependencyError(err, "get issue %d", id)
	}

	pipeline, err := s.issueStore.Pipeline(ctx, iss.PipelineID())
	if err != nil {
		return IssueDetail{}, NewDependencyError(err, "load pipeline %d for issue %d", iss.PipelineID(), id)
	}

	return IssueDetail{Issue: iss, Pipeline: pipeline}, nil
}

// List returns a page of a project's issues, most recent first, together
// with the total issue count for the project.
func (s *Issues) List(ctx context.Context, projectID int64, limit, offset int) ([]issue.Issue, int64, error) {
	options := []store.Option{
		issue.WithProjectID(projectID),
		store.WithOrderDesc("id"),
	}
	if limit > 0 {
		options = append(options, store.WithLimit(limit))
	}
	if offset > 0 {
		options = append(options, store.WithOffset(offset))
	}

	issues, err := s.issueStore.Find(ctx, options...)
	if err != nil {
		return nil, 0, NewDependencyError(err, "list issues for project %d", projectID)
	}

	total, err := s.issueStore.Count(ctx, issue.WithProjectID(projectID))
	if err != nil {
		return nil, 0, NewDependencyError(err, "count issues for project %d", projectID)
	}
	return issues, total, nil
}

// Activities returns a page of the audit activities recorded against a
// project, most recent first, together with the total activity count.
func (s *Issues) Activities(ctx context.Context, projectID int64, limit, offset int) ([]issue.Activity, int64, error) {
	options := []store.Option{
		issue.WithContainerID(projectID),
		store.WithOrderDesc("id"),
	}
	if limit > 0 {
		options = append(options, store.WithLimit(limit))
	}
	if offset > 0 {
		options = append(options, store.WithOffset(offset))
	}

	activities, err := s.activityStore.Find(ctx, options...)
	if err != nil {
		return nil, 0, NewDependencyError(err, "list activities for project %d", projectID)
	}

	total, err := s.activityStore.Count(ctx, issue.WithContainerID(projectID))
	if err != nil {
		return nil, 0, NewDependencyError(err, "count activities for project %d", projectID)
	}
	return activities, total, nil
}
