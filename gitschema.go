// Package gitschema turns VCS push events into database schema migration
// pipelines.
//
// A GitLab-style push webhook is validated against a provisioned repository
// configuration, each added file is classified against the repository's path
// templates, matched to project databases per environment, and turned into
// an issue owning a pipeline of per-environment stages. Every decision
// leaves an audit activity on the owning project.
//
// Basic usage:
//
//	client, err := gitschema.New(
//	    gitschema.WithSQLite(".gitschema/gitschema.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	messages, err := client.Webhook.ProcessPush(ctx, endpointID, secret, event)
package gitschema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gitschema/gitschema/application/service"
	"github.com/gitschema/gitschema/domain/vcs"
	"github.com/gitschema/gitschema/infrastructure/persistence"
	"github.com/gitschema/gitschema/infrastructure/provider"
	"github.com/gitschema/gitschema/internal/database"
	"github.com/gitschema/gitschema/internal/log"
)

// ErrNoDatabase is returned by New when no database option was given.
var ErrNoDatabase = errors.New("no database configured: use WithSQLite, WithPostgres, or WithDatabaseURL")

// ErrClientClosed is returned when operations are attempted on a closed Client.
var ErrClientClosed = errors.New("client is closed")

// Client is the main entry point for the gitschema library.
//
// Access services via struct fields:
//
//	client.Webhook.ProcessPush(ctx, endpointID, secret, event)
//	client.Issues.Get(ctx, id)
//	client.Bootstrap.Apply(ctx, seed)
type Client struct {
	// Public service fields.
	Webhook   *service.Webhook
	Issues    *service.Issues
	Bootstrap *service.Bootstrap

	db      database.Database
	fetcher vcs.ContentFetcher
	logger  *slog.Logger
	apiKeys []string
	closed  atomic.Bool
	mu      sync.Mutex
}

// New creates a new Client with the given options.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.dbURL == "" {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = log.Default().Slog()
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, cfg.dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	projectStore := persistence.NewProjectStore(db)
	repositoryStore := persistence.NewRepositoryStore(db)
	databaseStore := persistence.NewDatabaseStore(db)
	policyStore := persistence.NewPolicyStore(db)
	issueStore := persistence.NewIssueStore(db)
	activityStore := persistence.NewActivityStore(db)

	fetcher := cfg.fetcher
	if fetcher == nil {
		fetcher = provider.NewGitLabClient(
			provider.WithTimeout(cfg.vcsTimeout),
			provider.WithMaxRetries(cfg.vcsMaxRetries),
		)
	}

	client := &Client{
		db:      db,
		fetcher: fetcher,
		logger:  logger,
		apiKeys: cfg.apiKeys,
	}

	client.Webhook = service.NewWebhook(
		repositoryStore, projectStore, databaseStore, policyStore,
		issueStore, activityStore, fetcher, logger,
	)
	client.Issues = service.NewIssues(issueStore, activityStore)
	client.Bootstrap = service.NewBootstrap(
		projectStore, databaseStore, databaseStore, policyStore, repositoryStore, logger,
	)

	return client, nil
}

// Close releases the database connection.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("gitschema client closed")
	return nil
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// APIKeys returns the configured API keys for HTTP write protection.
func (c *Client) APIKeys() []string {
	return c.apiKeys
}

// Database returns the underlying database handle.
func (c *Client) Database() database.Database {
	return c.db
}
