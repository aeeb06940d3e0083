// Package project provides the project domain: projects, environments,
// instances, the databases they host, and per-environment approval policy.
package project

import "time"

// Project groups databases and repositories under one tenant-visible unit.
// Issues and activities are always attached to a project.
type Project struct {
	id        int64
	key       string
	name      string
	createdAt time.Time
	updatedAt time.Time
}

// NewProject creates a project with the given key and display name.
func NewProject(key, name string) Project {
	return Project{key: key, name: name}
}

// ReconstructProject rebuilds a Project from persisted state (used by stores).
func ReconstructProject(id int64, key, name string, createdAt, updatedAt time.Time) Project {
	return Project{
		id:        id,
		key:       key,
		name:      name,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the project ID.
func (p Project) ID() int64 { return p.id }

// Key returns the short unique project key.
func (p Project) Key() string { return p.key }

// Name returns the display name.
func (p Project) Name() string { return p.name }

// CreatedAt returns when the project was created.
func (p Project) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns when the project was last updated.
func (p Project) UpdatedAt() time.Time { return p.updatedAt }
