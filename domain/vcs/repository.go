package vcs

import (
	"context"
	"strings"
	"time"
)

// Provider identifies a VCS hosting provider.
type Provider string

// Provider values.
const (
	ProviderGitLab Provider = "GITLAB"
)

// Repository is the webhook-linked configuration binding a provider project
// to a gitschema project. Exactly one Repository exists per webhook endpoint
// ID.
type Repository struct {
	id                 int64
	projectID          int64
	provider           Provider
	instanceURL        string
	externalID         string
	name               string
	fullPath           string
	webURL             string
	branchFilter       string
	baseDirectory      string
	filePathTemplate   string
	schemaPathTemplate string
	webhookEndpointID  string
	webhookSecret      string
	accessToken        string
	createdAt          time.Time
	updatedAt          time.Time
}

// RepositoryParams carries the fields needed to create a Repository.
type RepositoryParams struct {
	ProjectID          int64
	Provider           Provider
	InstanceURL        string
	ExternalID         string
	Name               string
	FullPath           string
	WebURL             string
	BranchFilter       string
	BaseDirectory      string
	FilePathTemplate   string
	SchemaPathTemplate string
	WebhookEndpointID  string
	WebhookSecret      string
	AccessToken        string
}

// NewRepository creates a repository configuration.
func NewRepository(p RepositoryParams) Repository {
	return Repository{
		projectID:          p.ProjectID,
		provider:           p.Provider,
		instanceURL:        p.InstanceURL,
		externalID:         p.ExternalID,
		name:               p.Name,
		fullPath:           p.FullPath,
		webURL:             p.WebURL,
		branchFilter:       p.BranchFilter,
		baseDirectory:      p.BaseDirectory,
		filePathTemplate:   p.FilePathTemplate,
		schemaPathTemplate: p.SchemaPathTemplate,
		webhookEndpointID:  p.WebhookEndpointID,
		webhookSecret:      p.WebhookSecret,
		accessToken:        p.AccessToken,
	}
}

// ReconstructRepository rebuilds a Repository from persisted state.
func ReconstructRepository(id int64, p RepositoryParams, createdAt, updatedAt time.Time) Repository {
	r := NewRepository(p)
	r.id = id
	r.createdAt = createdAt
	r.updatedAt = updatedAt
	return r
}

// ID returns the repository ID.
func (r Repository) ID() int64 { return r.id }

// ProjectID returns the owning project's ID.
func (r Repository) ProjectID() int64 { return r.projectID }

// Provider returns the VCS provider.
func (r Repository) Provider() Provider { return r.provider }

// InstanceURL returns the provider instance base URL.
func (r Repository) InstanceURL() string { return r.instanceURL }

// ExternalID returns the provider-side project identifier.
func (r Repository) ExternalID() string { return r.externalID }

// Name returns the repository display name.
func (r Repository) Name() string { return r.name }

// FullPath returns the provider-side full path (namespace/repo).
func (r Repository) FullPath() string { return r.fullPath }

// WebURL returns the provider-side web URL.
func (r Repository) WebURL() string { return r.webURL }

// BranchFilter returns the branch this webhook is provisioned for.
func (r Repository) BranchFilter() string { return r.branchFilter }

// BaseDirectory returns the directory under which migration files live.
func (r Repository) BaseDirectory() string { return r.baseDirectory }

// FilePathTemplate returns the migration file path template, relative to
// the base directory.
func (r Repository) FilePathTemplate() string { return r.filePathTemplate }

// SchemaPathTemplate returns the template for generated schema dump files,
// or empty if none is configured.
func (r Repository) SchemaPathTemplate() string { return r.schemaPathTemplate }

// WebhookEndpointID returns the path-embedded webhook endpoint identifier.
func (r Repository) WebhookEndpointID() string { return r.webhookEndpointID }

// WebhookSecret returns the shared secret presented by the provider.
func (r Repository) WebhookSecret() string { return r.webhookSecret }

// AccessToken returns the provider API token used to fetch file content.
func (r Repository) AccessToken() string { return r.accessToken }

// CreatedAt returns when the configuration was created.
func (r Repository) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns when the configuration was last updated.
func (r Repository) UpdatedAt() time.Time { return r.updatedAt }

// MatchesRef reports whether a push ref targets the configured branch.
// An empty branch filter matches every ref.
func (r Repository) MatchesRef(ref string) bool {
	if r.branchFilter == "" {
		return true
	}
	return strings.TrimPrefix(ref, "refs/heads/") == r.branchFilter
}

// RepositoryStore provides webhook-endpoint lookups of repository
// configurations.
type RepositoryStore interface {
	FindByWebhookEndpointID(ctx context.Context, endpointID string) (Repository, error)
	Save(ctx context.Context, r Repository) (Repository, error)
}

// ContentFetcher fetches raw file content from the hosting provider.
type ContentFetcher interface {
	// FetchFileContent returns the content of path at ref in the provider
	// project the repository is bound to.
	FetchFileContent(ctx context.Context, repo Repository, path, ref string) ([]byte, error)
}
