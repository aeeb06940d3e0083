// Package service provides the application services orchestrating domain
// stores and provider clients.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/gitschema/gitschema/domain/issue"
	"github.com/gitschema/gitschema/domain/migration"
	"github.com/gitschema/gitschema/domain/project"
	"github.com/gitschema/gitschema/domain/vcs"
	"github.com/gitschema/gitschema/internal/database"
)

// Webhook turns provider push events into schema-update issues. One push
// is processed strictly sequentially: commits in payload order, added
// files in payload order, each file independent of the others.
type Webhook struct {
	repoStore     vcs.RepositoryStore
	projectStore  project.Store
	databaseStore project.DatabaseStore
	policyStore   project.PolicyStore
	issueStore    issue.IssueStore
	activityStore issue.ActivityStore
	fetcher       vcs.ContentFetcher
	logger        *slog.Logger
}

// NewWebhook creates a Webhook service.
func NewWebhook(
	repoStore vcs.RepositoryStore,
	projectStore project.Store,
	databaseStore project.DatabaseStore,
	policyStore project.PolicyStore,
	issueStore issue.IssueStore,
	activityStore issue.ActivityStore,
	fetcher vcs.ContentFetcher,
	logger *slog.Logger,
) *Webhook {
	if logger == nil {
		logger = slog.Default()
	}
	return &Webhook{
		repoStore:     repoStore,
		projectStore:  projectStore,
		databaseStore: databaseStore,
		policyStore:   policyStore,
		issueStore:    issueStore,
		activityStore: activityStore,
		fetcher:       fetcher,
		logger:        logger,
	}
}

// ProcessPush validates the push event against the endpoint's repository
// configuration and processes every added file of every commit. It returns
// one "Created issue ..." line per file that produced an issue, in
// processing order.
//
// Validation failures abort the whole request: a *ValidationError for
// anything the caller got wrong, database.ErrNotFound for an unknown
// endpoint, and a *DependencyError when the owning project cannot be
// resolved. Per-file failures never abort the request — with one
// deliberate exception: failing to record the success activity for an
// already-created issue escalates to a *DependencyError, because at that
// point the audit trail no longer matches the persisted state.
func (s *Webhook) ProcessPush(ctx context.Context, endpointID, secret string, event vcs.PushEvent) ([]string, error) {
	if event.ObjectKind != vcs.EventKindPush {
		return nil, NewValidationError("invalid webhook event kind, got %q, want %q", event.ObjectKind, vcs.EventKindPush)
	}

	repo, err := s.repoStore.FindByWebhookEndpointID(ctx, endpointID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, fmt.Errorf("webhook endpoint %q: %w", endpointID, err)
		}
		return nil, NewDependencyError(err, "find repository for webhook endpoint %q", endpointID)
	}

	if secret != repo.WebhookSecret() {
		return nil, NewValidationError("secret token mismatch")
	}

	if strconv.FormatInt(event.Project.ID, 10) != repo.ExternalID() {
		return nil, NewValidationError("project mismatch, got %d, want %s", event.Project.ID, repo.ExternalID())
	}

	proj, err := s.projectStore.Get(ctx, repo.ProjectID())
	if err != nil {
		return nil, NewDependencyError(err, "resolve project %d for repository %q", repo.ProjectID(), repo.Name())
	}

	if !repo.MatchesRef(event.Ref) {
		s.logger.Debug("ignored push for unwatched ref",
			slog.String("ref", event.Ref),
			slog.String("branch_filter", repo.BranchFilter()),
		)
		return nil, nil
	}

	classifier, err := migration.NewClassifier(repo.BaseDirectory(), repo.FilePathTemplate(), repo.SchemaPathTemplate())
	if err != nil {
		return nil, NewDependencyError(err, "compile path templates for repository %q", repo.Name())
	}

	var created []string
	for _, commit := range event.Commits {
		for _, added := range commit.Added {
			message, err := s.processFile(ctx, repo, proj, classifier, event, commit, added)
			if err != nil {
				return created, err
			}
			if message != "" {
				created = append(created, message)
			}
		}
	}
	return created, nil
}

// processFile runs one added file through classification, resolution,
// policy lookup, and pipeline construction. It returns the response line
// on success and "" when the file was skipped. The only error it returns
// is the post-success activity escalation.
func (s *Webhook) processFile(
	ctx context.Context,
	repo vcs.Repository,
	proj project.Project,
	classifier migration.Classifier,
	event vcs.PushEvent,
	commit vcs.Commit,
	added string,
) (string, error) {
	detail := s.pushDetail(repo, event, commit, added)

	descriptor, ignore := classifier.Classify(added)
	if ignore != nil {
		s.handleIgnore(ctx, proj.ID(), detail, added, *ignore)
		return "", nil
	}

	content, err := s.fetcher.FetchFileContent(ctx, repo, added, commit.ID)
	if err != nil {
		s.recordIgnoredFile(ctx, proj.ID(), detail, added, fmt.Sprintf("failed to read file content, %v", err))
		return "", nil
	}

	targets, ignore, err := s.resolveDatabases(ctx, proj, descriptor, added)
	if err != nil {
		// Store failure on lookup, not a per-candidate miss.
		s.recordIgnoredFile(ctx, proj.ID(), detail, added, fmt.Sprintf("failed to find database %q, %v", descriptor.Database(), err))
		return "", nil
	}
	if ignore != nil {
		s.handleIgnore(ctx, proj.ID(), detail, added, *ignore)
		return "", nil
	}

	// The approval policy map lives for exactly one file pass. It is
	// never shared across files or requests.
	policies, err := s.loadPolicies(ctx, targets)
	if err != nil {
		s.recordIgnoredFile(ctx, proj.ID(), detail, added, fmt.Sprintf("failed to find pipeline approval policy, %v", err))
		return "", nil
	}

	create := s.buildIssue(proj, commit, descriptor, targets, policies, string(content), detail)
	created, err := s.issueStore.Create(ctx, create)
	if err != nil {
		s.recordIgnoredFile(ctx, proj.ID(), detail, added, fmt.Sprintf("failed to create issue, %v", err))
		return "", nil
	}

	if err := s.recordCreatedIssue(ctx, proj.ID(), detail, created); err != nil {
		return "", err
	}

	return fmt.Sprintf("Created issue %q on adding %s", created.Name(), added), nil
}

// resolveDatabases maps a descriptor to one database per environment.
// A nil target slice with a non-nil ignore means the file is skipped; the
// returned error signals a store failure.
func (s *Webhook) resolveDatabases(
	ctx context.Context,
	proj project.Project,
	descriptor migration.Descriptor,
	added string,
) ([]project.Database, *migration.Ignore, error) {
	candidates, err := s.databaseStore.FindByProjectAndName(ctx, proj.ID(), descriptor.Database())
	if err != nil {
		return nil, nil, err
	}
	if len(candidates) == 0 {
		ignore := migration.NewRecordedIgnore(fmt.Sprintf("project %q does not own database %q", proj.Name(), descriptor.Database()))
		return nil, &ignore, nil
	}

	if env := descriptor.Environment(); env != "" {
		filtered := candidates[:0]
		for _, database := range candidates {
			// Environment name comparison is case insensitive.
			if strings.EqualFold(database.Instance().Environment().Name(), env) {
				filtered = append(filtered, database)
			}
		}
		if len(filtered) == 0 {
			ignore := migration.NewRecordedIgnore(fmt.Sprintf("project %q does not own database %q in environment %q", proj.Name(), descriptor.Database(), env))
			return nil, &ignore, nil
		}
		candidates = filtered
	}

	// A project may legitimately reuse a database name across
	// environments; within a single environment the name must be unique
	// or the migration target is ambiguous. Ambiguity skips the whole
	// file: creating a pipeline against an unresolvable target is worse
	// than dropping the file.
	byEnvironment := map[int64][]project.Database{}
	for _, database := range candidates {
		byEnvironment[database.EnvironmentID()] = append(byEnvironment[database.EnvironmentID()], database)
	}
	for environmentID, bucket := range byEnvironment {
		if len(bucket) > 1 {
			s.logger.Warn("ignored committed file, ambiguous databases in one environment",
				slog.Int64("project_id", proj.ID()),
				slog.Int64("environment_id", environmentID),
				slog.String("database", descriptor.Database()),
				slog.String("file", added),
			)
			ignore := migration.NewSilentIgnore("ambiguous database targets")
			return nil, &ignore, nil
		}
	}

	// Deterministic stage order: environment rollout order, then ID.
	sort.Slice(candidates, func(i, j int) bool {
		ei, ej := candidates[i].Instance().Environment(), candidates[j].Instance().Environment()
		if ei.Order() != ej.Order() {
			return ei.Order() < ej.Order()
		}
		return ei.ID() < ej.ID()
	})
	return candidates, nil, nil
}

// loadPolicies fetches the pipeline-approval policy once per distinct
// environment in the target set.
func (s *Webhook) loadPolicies(ctx context.Context, targets []project.Database) (map[int64]project.ApprovalPolicy, error) {
	policies := map[int64]project.ApprovalPolicy{}
	for _, database := range targets {
		environmentID := database.EnvironmentID()
		if _, ok := policies[environmentID]; ok {
			continue
		}
		policy, err := s.policyStore.PipelineApproval(ctx, environmentID)
		if err != nil {
			return nil, fmt.Errorf("environment %d: %w", environmentID, err)
		}
		policies[environmentID] = policy
	}
	return policies, nil
}

// buildIssue assembles one stage per resolved database and wraps them
// into an issue-creation request named after the commit.
func (s *Webhook) buildIssue(
	proj project.Project,
	commit vcs.Commit,
	descriptor migration.Descriptor,
	targets []project.Database,
	policies map[int64]project.ApprovalPolicy,
	statement string,
	detail vcs.PushDetail,
) issue.IssueCreate {
	stages := make([]issue.StageCreate, 0, len(targets))
	for _, database := range targets {
		status := issue.StatusPendingApproval
		if !policies[database.EnvironmentID()].RequiresApproval() {
			status = issue.StatusPending
		}

		task := issue.TaskCreate{
			InstanceID: database.Instance().ID(),
			DatabaseID: database.ID(),
			Name:       descriptor.Description(),
			Status:     status,
			Payload: issue.SchemaUpdatePayload{
				Statement:     statement,
				MigrationType: descriptor.Type(),
				Push:          detail,
			},
		}
		stages = append(stages, issue.StageCreate{
			EnvironmentID: database.EnvironmentID(),
			Name:          database.Instance().Environment().Name(),
			Tasks:         []issue.TaskCreate{task},
		})
	}

	return issue.IssueCreate{
		ProjectID:   proj.ID(),
		Name:        commit.Title,
		Kind:        issue.IssueKindSchemaUpdate,
		Description: commit.Message,
		CreatorID:   issue.SystemBotID,
		AssigneeID:  issue.SystemBotID,
		Pipeline: issue.PipelineCreate{
			Name:   fmt.Sprintf("Pipeline - %s", commit.Title),
			Stages: stages,
		},
	}
}

// pushDetail builds the provenance attached to tasks and activities.
func (s *Webhook) pushDetail(repo vcs.Repository, event vcs.PushEvent, commit vcs.Commit, added string) vcs.PushDetail {
	createdTime, err := commit.CreatedTime()
	if err != nil {
		s.logger.Warn("failed to parse commit timestamp",
			slog.String("commit", commit.ID),
			slog.String("timestamp", commit.Timestamp),
			slog.String("error", err.Error()),
		)
	}

	return vcs.PushDetail{
		VCSType:            repo.Provider(),
		BaseDirectory:      repo.BaseDirectory(),
		Ref:                event.Ref,
		RepositoryID:       strconv.FormatInt(event.Project.ID, 10),
		RepositoryURL:      event.Project.WebURL,
		RepositoryFullPath: event.Project.FullPath,
		AuthorName:         event.AuthorName,
		FileCommit: vcs.FileCommit{
			ID:         commit.ID,
			Title:      commit.Title,
			Message:    commit.Message,
			CreatedTs:  createdTime.Unix(),
			URL:        commit.URL,
			AuthorName: commit.Author.Name,
			Added:      added,
		},
	}
}

// handleIgnore routes an ignore to its destiny: silent ones are only
// logged, recorded ones additionally leave a WARN activity.
func (s *Webhook) handleIgnore(ctx context.Context, projectID int64, detail vcs.PushDetail, added string, ignore migration.Ignore) {
	if ignore.Silent() {
		s.logger.Debug("ignored committed file",
			slog.String("file", added),
			slog.String("reason", ignore.Reason()),
		)
		return
	}
	s.recordIgnoredFile(ctx, projectID, detail, added, ignore.Reason())
}

// recordIgnoredFile emits the WARN audit activity for a recorded ignore.
// Activity failures here are logged and swallowed; an ignored file must
// never fail the request.
func (s *Webhook) recordIgnoredFile(ctx context.Context, projectID int64, detail vcs.PushDetail, added, reason string) {
	s.logger.Warn("ignored committed file",
		slog.String("file", added),
		slog.String("reason", reason),
	)

	payload, err := json.Marshal(issue.PushActivityPayload{Push: detail})
	if err != nil {
		s.logger.Warn("failed to marshal ignored-file activity payload", slog.String("error", err.Error()))
		return
	}

	_, err = s.activityStore.Create(ctx, issue.ActivityCreate{
		CreatorID:   issue.SystemBotID,
		ContainerID: projectID,
		Type:        issue.ActivityRepositoryPush,
		Level:       issue.ActivityWarn,
		Comment:     fmt.Sprintf("Ignored committed file %q, %s.", added, reason),
		Payload:     string(payload),
	})
	if err != nil {
		s.logger.Warn("failed to create ignored-file activity", slog.String("error", err.Error()))
	}
}

// recordCreatedIssue emits the INFO audit activity for a created issue.
// Unlike every other per-file failure, an error here escalates: the issue
// already exists, so a missing audit record is a server-side
// inconsistency the caller must hear about.
func (s *Webhook) recordCreatedIssue(ctx context.Context, projectID int64, detail vcs.PushDetail, created issue.Issue) error {
	payload, err := json.Marshal(issue.PushActivityPayload{
		Push:      detail,
		IssueID:   created.ID(),
		IssueName: created.Name(),
	})
	if err != nil {
		return NewDependencyError(err, "marshal activity payload for issue %d", created.ID())
	}

	_, err = s.activityStore.Create(ctx, issue.ActivityCreate{
		CreatorID:   issue.SystemBotID,
		ContainerID: projectID,
		Type:        issue.ActivityRepositoryPush,
		Level:       issue.ActivityInfo,
		Comment:     fmt.Sprintf("Created issue %q.", created.Name()),
		Payload:     string(payload),
	})
	if err != nil {
		return NewDependencyError(err, "create activity for issue %d", created.ID())
	}
	return nil
}
