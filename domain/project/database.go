package project

import "context"

// Database is a named database owned by one project on one instance.
// Several databases may share a name across environments; within a single
// environment a shared name makes a migration target ambiguous.
type Database struct {
	id        int64
	projectID int64
	instance  Instance
	name      string
}

// NewDatabase creates a database record.
func NewDatabase(projectID int64, instance Instance, name string) Database {
	return Database{projectID: projectID, instance: instance, name: name}
}

// ReconstructDatabase rebuilds a Database from persisted state.
func ReconstructDatabase(id, projectID int64, instance Instance, name string) Database {
	return Database{id: id, projectID: projectID, instance: instance, name: name}
}

// ID returns the database ID.
func (d Database) ID() int64 { return d.id }

// ProjectID returns the owning project's ID.
func (d Database) ProjectID() int64 { return d.projectID }

// Instance returns the hosting instance (with its environment).
func (d Database) Instance() Instance { return d.instance }

// EnvironmentID returns the ID of the environment hosting this database.
func (d Database) EnvironmentID() int64 { return d.instance.EnvironmentID() }

// Name returns the database name.
func (d Database) Name() string { return d.name }

// Store provides persistence for projects.
type Store interface {
	Get(ctx context.Context, id int64) (Project, error)
	Save(ctx context.Context, p Project) (Project, error)
}

// DatabaseStore provides lookups of databases hydrated with their instance
// and environment.
type DatabaseStore interface {
	// FindByProjectAndName returns every database with the given name owned
	// by the project, across all environments.
	FindByProjectAndName(ctx context.Context, projectID int64, name string) ([]Database, error)
	Save(ctx context.Context, d Database) (Database, error)
}
