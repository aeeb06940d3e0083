package service

import (
	"context"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/gitschema/gitschema/domain/project"
	"github.com/gitschema/gitschema/domain/vcs"
)

// Seed declares the projects, topology, policies, and webhook-bound
// repositories to provision. Entries reference each other by name: instances
// name their environment, databases name their project and instance,
// repositories name their project.
type Seed struct {
	Projects     []SeedProject     `yaml:"projects"`
	Environments []SeedEnvironment `yaml:"environments"`
	Instances    []SeedInstance    `yaml:"instances"`
	Databases    []SeedDatabase    `yaml:"databases"`
	Policies     []SeedPolicy      `yaml:"policies"`
	Repositories []SeedRepository  `yaml:"repositories"`
}

// SeedProject declares one project.
type SeedProject struct {
	Key  string `yaml:"key"`
	Name string `yaml:"name"`
}

// SeedEnvironment declares one environment.
type SeedEnvironment struct {
	Name  string `yaml:"name"`
	Order int    `yaml:"order"`
}

// SeedInstance declares one instance inside an environment.
type SeedInstance struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
}

// SeedDatabase declares one database on an instance, owned by a project.
type SeedDatabase struct {
	Name     string `yaml:"name"`
	Project  string `yaml:"project"`
	Instance string `yaml:"instance"`
}

// SeedPolicy declares the pipeline-approval policy for an environment.
type SeedPolicy struct {
	Environment string `yaml:"environment"`
	Approval    string `yaml:"approval"`
}

// SeedRepository declares one webhook-bound repository configuration.
type SeedRepository struct {
	Project            string `yaml:"project"`
	Provider           string `yaml:"provider"`
	InstanceURL        string `yaml:"instance_url"`
	ExternalID         string `yaml:"external_id"`
	Name               string `yaml:"name"`
	FullPath           string `yaml:"full_path"`
	WebURL             string `yaml:"web_url"`
	BranchFilter       string `yaml:"branch_filter"`
	BaseDirectory      string `yaml:"base_directory"`
	FilePathTemplate   string `yaml:"file_path_template"`
	SchemaPathTemplate string `yaml:"schema_path_template"`
	WebhookEndpointID  string `yaml:"webhook_endpoint_id"`
	WebhookSecret      string `yaml:"webhook_secret"`
	AccessToken        string `yaml:"access_token"`
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(data []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	return seed, nil
}

// Bootstrap provisions the records the webhook flow depends on. It stands
// in for a full CRUD surface: apply a seed once, then deliveries against
// the provisioned endpoints work.
type Bootstrap struct {
	projectStore     project.Store
	databaseStore    project.DatabaseStore
	environmentStore project.EnvironmentStore
	policyStore      project.PolicyStore
	repositoryStore  vcs.RepositoryStore
	logger           *slog.Logger
}

// NewBootstrap creates a Bootstrap service.
func NewBootstrap(
	projectStore project.Store,
	databaseStore project.DatabaseStore,
	environmentStore project.EnvironmentStore,
	policyStore project.PolicyStore,
	repositoryStore vcs.RepositoryStore,
	logger *slog.Logger,
) *Bootstrap {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bootstrap{
		projectStore:     projectStore,
		databaseStore:    databaseStore,
		environmentStore: environmentStore,
		policyStore:      policyStore,
		repositoryStore:  repositoryStore,
		logger:           logger,
	}
}

// Apply provisions every record the seed declares, in dependency order.
// References are resolved by name within the seed itself; a dangling
// reference fails the whole apply.
func (s *Bootstrap) Apply(ctx context.Context, seed Seed) error {
	projects := map[string]project.Project{}
	for _, sp := range seed.Projects {
		p, err := s.projectStore.Save(ctx, project.NewProject(sp.Key, sp.Name))
		if err != nil {
			return fmt.Errorf("seed project %q: %w", sp.Key, err)
		}
		projects[sp.Key] = p
		s.logger.Info("seeded project", slog.String("key", p.Key()), slog.Int64("id", p.ID()))
	}

	environments := map[string]project.Environment{}
	for _, se := range seed.Environments {
		e, err := s.environmentStore.SaveEnvironment(ctx, project.NewEnvironment(se.Name, se.Order))
		if err != nil {
			return fmt.Errorf("seed environment %q: %w", se.Name, err)
		}
		environments[se.Name] = e
		s.logger.Info("seeded environment", slog.String("name", e.Name()), slog.Int64("id", e.ID()))
	}

	instances := map[string]project.Instance{}
	for _, si := range seed.Instances {
		env, ok := environments[si.Environment]
		if !ok {
			return fmt.Errorf("seed instance %q: unknown environment %q", si.Name, si.Environment)
		}
		inst, err := s.environmentStore.SaveInstance(ctx, project.NewInstance(env, si.Name, si.Host, si.Port))
		if err != nil {
			return fmt.Errorf("seed instance %q: %w", si.Name, err)
		}
		instances[si.Name] = inst
	}

	for _, sd := range seed.Databases {
		proj, ok := projects[sd.Project]
		if !ok {
			return fmt.Errorf("seed database %q: unknown project %q", sd.Name, sd.Project)
		}
		inst, ok := instances[sd.Instance]
		if !ok {
			return fmt.Errorf("seed database %q: unknown instance %q", sd.Name, sd.Instance)
		}
		if _, err := s.databaseStore.Save(ctx, project.NewDatabase(proj.ID(), inst, sd.Name)); err != nil {
			return fmt.Errorf("seed database %q: %w", sd.Name, err)
		}
	}

	for _, sp := range seed.Policies {
		env, ok := environments[sp.Environment]
		if !ok {
			return fmt.Errorf("seed policy: unknown environment %q", sp.Environment)
		}
		value := project.ApprovalValue(sp.Approval)
		switch value {
		case project.ApprovalManualAlways, project.ApprovalManualNever:
		default:
			return fmt.Errorf("seed policy for %q: unknown approval value %q", sp.Environment, sp.Approval)
		}
		if _, err := s.policyStore.Save(ctx, project.NewApprovalPolicy(env.ID(), value)); err != nil {
			return fmt.Errorf("seed policy for %q: %w", sp.Environment, err)
		}
	}

	for _, sr := range seed.Repositories {
		proj, ok := projects[sr.Project]
		if !ok {
			return fmt.Errorf("seed repository %q: unknown project %q", sr.Name, sr.Project)
		}
		provider := vcs.Provider(sr.Provider)
		if provider == "" {
			provider = vcs.ProviderGitLab
		}
		_, err := s.repositoryStore.Save(ctx, vcs.NewRepository(vcs.RepositoryParams{
			ProjectID:          proj.ID(),
			Provider:           provider,
			InstanceURL:        sr.InstanceURL,
			ExternalID:         sr.ExternalID,
			Name:               sr.Name,
			FullPath:           sr.FullPath,
			WebURL:             sr.WebURL,
			BranchFilter:       sr.BranchFilter,
			BaseDirectory:      sr.BaseDirectory,
			FilePathTemplate:   sr.FilePathTemplate,
			SchemaPathTemplate: sr.SchemaPathTemplate,
			WebhookEndpointID:  sr.WebhookEndpointID,
			WebhookSecret:      sr.WebhookSecret,
			AccessToken:        sr.AccessToken,
		}))
		if err != nil {
			return fmt.Errorf("seed repository %q: %w", sr.Name, err)
		}
		s.logger.Info("seeded repository",
			slog.String("name", sr.Name),
			slog.String("webhook_endpoint_id", sr.WebhookEndpointID),
		)
	}

	return nil
}
